package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"cabsy/internal/models"
	"cabsy/internal/repositories"
)

// In-memory stores mirroring the repositories package contracts.

var testHasher = BcryptHasher{Cost: bcrypt.MinCost}

type fakeUsers struct {
	mu   sync.Mutex
	next uint
	byID map[uint]models.User
}

func newFakeUsers() *fakeUsers { return &fakeUsers{byID: map[uint]models.User{}} }

func (f *fakeUsers) clash(u *models.User) bool {
	for id, o := range f.byID {
		if id != u.ID && (strings.EqualFold(o.Email, u.Email) || o.Phone == u.Phone) {
			return true
		}
	}
	return false
}

func (f *fakeUsers) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clash(u) {
		return repositories.ErrDuplicate
	}
	f.next++
	u.ID = f.next
	f.byID[u.ID] = *u
	return nil
}

func (f *fakeUsers) Save(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clash(u) {
		return repositories.ErrDuplicate
	}
	f.byID[u.ID] = *u
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (f *fakeUsers) find(match func(models.User) bool) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if match(u) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return f.find(func(u models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (f *fakeUsers) FindByPhone(_ context.Context, phone string) (*models.User, error) {
	return f.find(func(u models.User) bool { return u.Phone == phone })
}

func (f *fakeUsers) List(context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.User{}
	for _, u := range f.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeDrivers struct {
	mu   sync.Mutex
	next uint
	byID map[uint]models.Driver
}

func newFakeDrivers() *fakeDrivers { return &fakeDrivers{byID: map[uint]models.Driver{}} }

func (f *fakeDrivers) Create(_ context.Context, d *models.Driver) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	d.ID = f.next
	f.byID[d.ID] = *d
	return nil
}

func (f *fakeDrivers) Save(_ context.Context, d *models.Driver) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[d.ID] = *d
	return nil
}

func (f *fakeDrivers) FindByID(_ context.Context, id uint) (*models.Driver, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.byID[id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (f *fakeDrivers) find(match func(models.Driver) bool) (*models.Driver, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, d := range f.byID {
		if match(d) {
			d := d
			return &d, nil
		}
	}
	return nil, nil
}

func (f *fakeDrivers) FindByEmail(_ context.Context, email string) (*models.Driver, error) {
	return f.find(func(d models.Driver) bool { return strings.EqualFold(d.Email, email) })
}

func (f *fakeDrivers) FindByPhone(_ context.Context, phone string) (*models.Driver, error) {
	return f.find(func(d models.Driver) bool { return d.Phone == phone })
}

func (f *fakeDrivers) FindByLicense(_ context.Context, license string) (*models.Driver, error) {
	return f.find(func(d models.Driver) bool { return d.LicenseNumber == license })
}

func (f *fakeDrivers) List(context.Context) ([]models.Driver, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Driver{}
	for _, d := range f.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeDrivers) UpdateStatus(_ context.Context, id uint, status models.DriverStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.byID[id]
	if !ok {
		return false, nil
	}
	d.Status = status
	f.byID[id] = d
	return true, nil
}

func (f *fakeDrivers) UpdateRating(_ context.Context, id uint, rating float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.byID[id]
	d.Rating = rating
	f.byID[id] = d
	return nil
}

type fakeCabs struct {
	mu   sync.Mutex
	next uint
	byID map[uint]models.Cab
}

func newFakeCabs() *fakeCabs { return &fakeCabs{byID: map[uint]models.Cab{}} }

func (f *fakeCabs) Create(_ context.Context, c *models.Cab) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	c.ID = f.next
	f.byID[c.ID] = *c
	return nil
}

func (f *fakeCabs) Save(_ context.Context, c *models.Cab) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[c.ID] = *c
	return nil
}

func (f *fakeCabs) Delete(_ context.Context, id uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return false, nil
	}
	delete(f.byID, id)
	return true, nil
}

func (f *fakeCabs) FindByID(_ context.Context, id uint) (*models.Cab, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.byID[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (f *fakeCabs) filter(match func(models.Cab) bool) []models.Cab {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Cab{}
	for _, c := range f.byID {
		if match(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeCabs) FindByLicensePlate(_ context.Context, plate string) (*models.Cab, error) {
	if cabs := f.filter(func(c models.Cab) bool { return c.LicensePlate == plate }); len(cabs) > 0 {
		return &cabs[0], nil
	}
	return nil, nil
}

func (f *fakeCabs) List(context.Context) ([]models.Cab, error) {
	return f.filter(func(models.Cab) bool { return true }), nil
}

func (f *fakeCabs) ListByStatus(_ context.Context, status models.CabStatus) ([]models.Cab, error) {
	return f.filter(func(c models.Cab) bool { return c.Status == status }), nil
}

func (f *fakeCabs) ListByDriver(_ context.Context, driverID uint) ([]models.Cab, error) {
	return f.filter(func(c models.Cab) bool { return c.DriverID == driverID }), nil
}

func (f *fakeCabs) FirstInService(_ context.Context, driverID uint) (*models.Cab, error) {
	cabs := f.filter(func(c models.Cab) bool { return c.DriverID == driverID && c.Status == models.CabInService })
	if len(cabs) == 0 {
		return nil, nil
	}
	return &cabs[0], nil
}

// fakeRides serializes every operation on one mutex, standing in for the
// conditional UPDATE and row lock of the real store.
type fakeRides struct {
	mu   sync.Mutex
	next uint
	byID map[uint]models.Ride
}

func newFakeRides() *fakeRides { return &fakeRides{byID: map[uint]models.Ride{}} }

func (f *fakeRides) Create(_ context.Context, r *models.Ride) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	r.ID = f.next
	f.byID[r.ID] = *r
	return nil
}

func (f *fakeRides) FindByID(_ context.Context, id uint) (*models.Ride, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.byID[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeRides) AssignDriver(_ context.Context, rideID, driverID, cabID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[rideID]
	if !ok || r.DriverID != nil || r.Status != models.RideRequested {
		return false, nil
	}
	r.DriverID, r.CabID = &driverID, &cabID
	r.Status = models.RideAccepted
	f.byID[rideID] = r
	return true, nil
}

func (f *fakeRides) UpdateWithLock(_ context.Context, id uint, fn func(*models.Ride) error) (*models.Ride, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	if err := fn(&r); err != nil {
		return nil, err
	}
	f.byID[id] = r
	return &r, nil
}

func (f *fakeRides) filter(match func(models.Ride) bool, less func(a, b models.Ride) bool) []models.Ride {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Ride{}
	for _, r := range f.byID {
		if match(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func (f *fakeRides) ListByUser(_ context.Context, userID uint) ([]models.Ride, error) {
	return f.filter(
		func(r models.Ride) bool { return r.UserID == userID },
		func(a, b models.Ride) bool { return a.RequestTime.After(b.RequestTime) },
	), nil
}

func (f *fakeRides) ListCompletedByDriver(_ context.Context, driverID uint) ([]models.Ride, error) {
	return f.filter(
		func(r models.Ride) bool {
			return r.Status == models.RideCompleted && r.DriverID != nil && *r.DriverID == driverID
		},
		func(a, b models.Ride) bool { return a.EndTime.After(*b.EndTime) },
	), nil
}

func (f *fakeRides) ListByStatus(_ context.Context, status models.RideStatus) ([]models.Ride, error) {
	return f.filter(
		func(r models.Ride) bool { return r.Status == status },
		func(a, b models.Ride) bool { return a.RequestTime.Before(b.RequestTime) },
	), nil
}

type fakePayments struct {
	mu   sync.Mutex
	next uint
	byID map[uint]models.Payment

	saveErr error
}

func newFakePayments() *fakePayments { return &fakePayments{byID: map[uint]models.Payment{}} }

func (f *fakePayments) Create(_ context.Context, p *models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.byID {
		if o.RideID == p.RideID {
			return repositories.ErrDuplicate
		}
	}
	f.next++
	p.ID = f.next
	f.byID[p.ID] = *p
	return nil
}

func (f *fakePayments) Save(_ context.Context, p *models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.byID[p.ID] = *p
	return nil
}

func (f *fakePayments) FindByID(_ context.Context, id uint) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.byID[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (f *fakePayments) FindByRide(_ context.Context, rideID uint) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.byID {
		if p.RideID == rideID {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

type fakeRatings struct {
	mu     sync.Mutex
	next   uint
	byRide map[uint]models.Rating
}

func newFakeRatings() *fakeRatings { return &fakeRatings{byRide: map[uint]models.Rating{}} }

func (f *fakeRatings) Create(_ context.Context, r *models.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byRide[r.RideID]; ok {
		return repositories.ErrDuplicate
	}
	f.next++
	r.ID = f.next
	f.byRide[r.RideID] = *r
	return nil
}

func (f *fakeRatings) FindByRide(_ context.Context, rideID uint) (*models.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.byRide[rideID]; ok {
		return &r, nil
	}
	return nil, nil
}

func (f *fakeRatings) AverageForDriver(_ context.Context, driverID uint) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sum, n := 0, 0
	for _, r := range f.byRide {
		if r.ToDriverID == driverID {
			sum += r.Score
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return float64(sum) / float64(n), nil
}

// fixedClock returns a clock that advances by step on every call.
func fixedClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	t := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := t
		t = t.Add(step)
		return now
	}
}
