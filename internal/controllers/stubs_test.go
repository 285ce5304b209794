package controllers

import (
	"context"
	"fmt"

	"cabsy/internal/models"
	"cabsy/internal/services"
)

type stubUsers struct {
	user *models.User
	err  error

	lastField string
	lastValue string
}

func (s *stubUsers) Register(_ context.Context, in services.RegisterUserInput) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u := &models.User{Name: in.Name, Email: in.Email, Phone: in.Phone}
	u.ID = 1
	return u, nil
}

func (s *stubUsers) Login(context.Context, string, string) (*models.User, error) { return s.user, s.err }
func (s *stubUsers) Get(context.Context, uint) (*models.User, error)            { return s.user, s.err }

func (s *stubUsers) List(context.Context) ([]models.User, error) {
	if s.user == nil {
		return []models.User{}, s.err
	}
	return []models.User{*s.user}, s.err
}

func (s *stubUsers) set(field, value string) (*models.User, error) {
	s.lastField, s.lastValue = field, value
	return s.user, s.err
}

func (s *stubUsers) UpdateName(_ context.Context, _ uint, v string) (*models.User, error) {
	return s.set("name", v)
}

func (s *stubUsers) UpdateEmail(_ context.Context, _ uint, v string) (*models.User, error) {
	return s.set("email", v)
}

func (s *stubUsers) UpdatePhone(_ context.Context, _ uint, v string) (*models.User, error) {
	return s.set("phone", v)
}

func (s *stubUsers) UpdatePassword(_ context.Context, _ uint, oldPw, newPw string) (*models.User, error) {
	return s.set("password", oldPw+"->"+newPw)
}

type stubDrivers struct {
	driver *models.Driver
	err    error
}

func (s *stubDrivers) Register(_ context.Context, in services.RegisterDriverInput) (*models.Driver, error) {
	if s.err != nil {
		return nil, s.err
	}
	d := &models.Driver{Name: in.Name, Email: in.Email, LicenseNumber: in.LicenseNumber, Status: models.DriverApprovalPending}
	d.ID = 2
	return d, nil
}

func (s *stubDrivers) Login(context.Context, string, string) (*models.Driver, error) {
	return s.driver, s.err
}
func (s *stubDrivers) Get(context.Context, uint) (*models.Driver, error) { return s.driver, s.err }
func (s *stubDrivers) List(context.Context) ([]models.Driver, error)    { return []models.Driver{}, s.err }

func (s *stubDrivers) UpdateProfile(context.Context, uint, services.UpdateDriverInput) (*models.Driver, error) {
	return s.driver, s.err
}

func (s *stubDrivers) UpdateStatus(_ context.Context, _ uint, status models.DriverStatus) (*models.Driver, error) {
	if s.err != nil {
		return nil, s.err
	}
	d := *s.driver
	d.Status = status
	return &d, nil
}

type stubCabs struct {
	cab     *models.Cab
	err     error
	deleted uint
}

func (s *stubCabs) Create(_ context.Context, in services.CabInput) (*models.Cab, error) {
	if s.err != nil {
		return nil, s.err
	}
	c := &models.Cab{DriverID: in.DriverID, Make: in.Make, Model: in.Model, LicensePlate: in.LicensePlate,
		Capacity: in.Capacity, Status: models.CabPendingApproval}
	c.ID = 5
	return c, nil
}

func (s *stubCabs) Update(context.Context, uint, services.CabInput) (*models.Cab, error) {
	return s.cab, s.err
}

func (s *stubCabs) Delete(_ context.Context, id uint) error {
	s.deleted = id
	return s.err
}

func (s *stubCabs) Get(context.Context, uint) (*models.Cab, error) { return s.cab, s.err }
func (s *stubCabs) GetByLicensePlate(context.Context, string) (*models.Cab, error) {
	return s.cab, s.err
}
func (s *stubCabs) List(context.Context) ([]models.Cab, error) { return []models.Cab{}, s.err }
func (s *stubCabs) ListByStatus(context.Context, models.CabStatus) ([]models.Cab, error) {
	return []models.Cab{}, s.err
}
func (s *stubCabs) ListByDriver(context.Context, uint) ([]models.Cab, error) {
	if s.cab == nil {
		return []models.Cab{}, s.err
	}
	return []models.Cab{*s.cab}, s.err
}

type stubRides struct {
	ride *models.Ride
	err  error

	gotInput  services.RequestRideInput
	gotDriver uint
	gotCab    *uint
	gotStatus models.RideStatus
	gotActor  services.Actor
}

func (s *stubRides) RequestRide(_ context.Context, in services.RequestRideInput) (*models.Ride, error) {
	s.gotInput = in
	return s.ride, s.err
}

func (s *stubRides) AssignDriver(_ context.Context, _ uint, driverID uint, cabID *uint) (*models.Ride, error) {
	s.gotDriver, s.gotCab = driverID, cabID
	return s.ride, s.err
}

func (s *stubRides) UpdateStatusAs(_ context.Context, actor services.Actor, _ uint, status models.RideStatus) (*models.Ride, error) {
	s.gotActor, s.gotStatus = actor, status
	return s.ride, s.err
}

func (s *stubRides) GetRide(context.Context, uint) (*models.Ride, error) { return s.ride, s.err }
func (s *stubRides) ListByUser(context.Context, uint) ([]models.Ride, error) {
	return []models.Ride{}, s.err
}
func (s *stubRides) ListCompletedByDriver(context.Context, uint) ([]services.RideDetail, error) {
	return []services.RideDetail{}, s.err
}
func (s *stubRides) ListAvailable(context.Context) ([]services.RideDetail, error) {
	if s.ride == nil {
		return []services.RideDetail{}, s.err
	}
	return []services.RideDetail{{Ride: *s.ride, Rider: &services.RiderContact{Name: "Asha"}}}, s.err
}

type stubRatings struct {
	err error
}

func (s *stubRatings) RateRide(_ context.Context, rideID uint, score int, comment string) (*models.Rating, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Rating{RideID: rideID, Score: score, Comment: comment}, nil
}

type stubPayments struct {
	payment *models.Payment
	err     error

	gotPayer uint
}

func (s *stubPayments) Settle(_ context.Context, payerID, rideID uint, amount float64, method string) (*models.Payment, error) {
	s.gotPayer = payerID
	if s.err != nil {
		return nil, s.err
	}
	txn := "TXN-test"
	return &models.Payment{RideID: rideID, Amount: amount, Method: method, Status: models.PaymentCompleted, TransactionID: &txn}, nil
}

func (s *stubPayments) GetPayment(context.Context, uint) (*models.Payment, error) {
	return s.payment, s.err
}

func (s *stubPayments) GetPaymentByRide(context.Context, uint) (*models.Payment, error) {
	return s.payment, s.err
}

type stubTokens struct{}

func (stubTokens) GenerateToken(id uint, role string) (string, error) {
	return fmt.Sprintf("token-%s-%d", role, id), nil
}
