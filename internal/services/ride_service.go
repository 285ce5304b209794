package services

import (
	"context"
	"strings"
	"time"

	logrus "github.com/sirupsen/logrus"

	"cabsy/internal/fare"
	"cabsy/internal/geo"
	"cabsy/internal/models"
)

type RequestRideInput struct {
	UserID             uint
	Pickup             geo.Point
	Destination        geo.Point
	PickupAddress      string
	DestinationAddress string
}

// RiderContact is the part of a user a driver sees when picking up a ride.
type RiderContact struct {
	Name  string `json:"user_name"`
	Email string `json:"user_email"`
	Phone string `json:"user_phone"`
}

// RideDetail is a ride together with its rider's contact details.
type RideDetail struct {
	models.Ride
	Rider *RiderContact `json:"rider,omitempty"`
}

// RideService drives a ride from request to a terminal state.
type RideService struct {
	rides   RideStore
	users   UserStore
	drivers DriverStore
	cabs    CabStore
	fares   fare.Estimator
	now     func() time.Time
}

func NewRideService(rides RideStore, users UserStore, drivers DriverStore, cabs CabStore, fares fare.Estimator) *RideService {
	return &RideService{
		rides:   rides,
		users:   users,
		drivers: drivers,
		cabs:    cabs,
		fares:   fares,
		now:     time.Now,
	}
}

func (s *RideService) RequestRide(ctx context.Context, in RequestRideInput) (*models.Ride, error) {
	for _, p := range []geo.Point{in.Pickup, in.Destination} {
		if err := geo.ValidateCoordinates(p); err != nil {
			return nil, validationError("%v", err)
		}
	}
	pickupAddr := strings.TrimSpace(in.PickupAddress)
	destAddr := strings.TrimSpace(in.DestinationAddress)
	if pickupAddr == "" || destAddr == "" {
		return nil, validationError("pickup and destination addresses are required")
	}

	u, err := s.users.FindByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, notFound("user", in.UserID)
	}

	route, err := geo.RouteLine(in.Pickup, in.Destination)
	if err != nil {
		return nil, err
	}
	ride := &models.Ride{
		UserID:             u.ID,
		PickupLat:          in.Pickup.Lat,
		PickupLon:          in.Pickup.Lon,
		DestinationLat:     in.Destination.Lat,
		DestinationLon:     in.Destination.Lon,
		PickupAddress:      pickupAddr,
		DestinationAddress: destAddr,
		RouteGeometry:      route,
		Status:             models.RideRequested,
		EstimatedFare:      s.fares.Estimate(in.Pickup, in.Destination),
		RequestTime:        s.now(),
	}
	if err := s.rides.Create(ctx, ride); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{
		"ride_id":        ride.ID,
		"user_id":        u.ID,
		"estimated_fare": ride.EstimatedFare,
	}).Info("ride requested")
	return ride, nil
}

// AssignDriver attaches a driver and one of their in-service cabs to a
// requested ride. Assignment happens once; later calls get ErrInvalidState.
// With a nil cabID the driver's first in-service cab is used.
func (s *RideService) AssignDriver(ctx context.Context, rideID, driverID uint, cabID *uint) (*models.Ride, error) {
	ride, err := s.rides.FindByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, notFound("ride", rideID)
	}
	if ride.HasDriver() {
		return nil, invalidState("ride %d already has a driver", rideID)
	}
	if ride.Status != models.RideRequested {
		return nil, invalidState("ride %d is %s", rideID, ride.Status)
	}

	d, err := s.drivers.FindByID(ctx, driverID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, notFound("driver", driverID)
	}
	cab, err := s.pickCab(ctx, driverID, cabID)
	if err != nil {
		return nil, err
	}

	ok, err := s.rides.AssignDriver(ctx, rideID, driverID, cab.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// another assignment or status change got there first
		return nil, invalidState("ride %d is no longer open for assignment", rideID)
	}

	logrus.WithFields(logrus.Fields{
		"ride_id":   rideID,
		"driver_id": driverID,
		"cab_id":    cab.ID,
	}).Info("driver assigned")
	return s.mustFind(ctx, rideID)
}

func (s *RideService) pickCab(ctx context.Context, driverID uint, cabID *uint) (*models.Cab, error) {
	if cabID == nil {
		cab, err := s.cabs.FirstInService(ctx, driverID)
		if err != nil {
			return nil, err
		}
		if cab == nil {
			return nil, validationError("driver %d has no cab in service", driverID)
		}
		return cab, nil
	}

	cab, err := s.cabs.FindByID(ctx, *cabID)
	if err != nil {
		return nil, err
	}
	if cab == nil {
		return nil, notFound("cab", *cabID)
	}
	if cab.DriverID != driverID {
		return nil, validationError("cab %d does not belong to driver %d", cab.ID, driverID)
	}
	if cab.Status != models.CabInService {
		return nil, validationError("cab %d is %s", cab.ID, cab.Status)
	}
	return cab, nil
}

// Actor is the account asking for a ride change.
type Actor struct {
	ID     uint
	Driver bool
}

// mayMoveTo reports whether the actor may put the ride into status. Drivers
// progress, complete or cancel rides assigned to them; riders cancel their
// own rides or give up waiting for a driver.
func (a Actor) mayMoveTo(r *models.Ride, status models.RideStatus) error {
	if a.Driver {
		if r.DriverID == nil || *r.DriverID != a.ID {
			return forbidden("ride %d is not assigned to driver %d", r.ID, a.ID)
		}
		switch status {
		case models.RideDriverOnTheWay, models.RideArrivedAtPickup, models.RideInProgress,
			models.RideCompleted, models.RideCancelledByDriver:
			return nil
		}
		return forbidden("a driver cannot set %s", status)
	}

	if r.UserID != a.ID {
		return forbidden("ride %d belongs to another user", r.ID)
	}
	switch status {
	case models.RideCancelledByUser, models.RideNoDriverFound:
		return nil
	}
	return forbidden("a rider cannot set %s", status)
}

// UpdateStatusAs is UpdateStatus on behalf of an account. The permission
// check runs against the locked row.
func (s *RideService) UpdateStatusAs(ctx context.Context, actor Actor, rideID uint, status models.RideStatus) (*models.Ride, error) {
	return s.updateStatus(ctx, rideID, status, func(r *models.Ride) error {
		return actor.mayMoveTo(r, status)
	})
}

// UpdateStatus moves the ride along its state graph under a row lock.
// Entering IN_PROGRESS stamps the start time; entering COMPLETED stamps the
// end time and finalizes the fare. Each of those happens at most once.
func (s *RideService) UpdateStatus(ctx context.Context, rideID uint, status models.RideStatus) (*models.Ride, error) {
	return s.updateStatus(ctx, rideID, status, nil)
}

func (s *RideService) updateStatus(ctx context.Context, rideID uint, status models.RideStatus, allow func(*models.Ride) error) (*models.Ride, error) {
	var from models.RideStatus
	ride, err := s.rides.UpdateWithLock(ctx, rideID, func(r *models.Ride) error {
		from = r.Status
		if allow != nil {
			if err := allow(r); err != nil {
				return err
			}
		}
		if !models.CanTransition(r.Status, status, r.HasDriver()) {
			return invalidState("ride %d cannot move from %s to %s", r.ID, r.Status, status)
		}
		r.Status = status

		now := s.now()
		switch status {
		case models.RideInProgress:
			r.MarkStarted(now)
		case models.RideCompleted:
			r.MarkEnded(now)
			r.FinalizeFare(s.fares.Finalize)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, notFound("ride", rideID)
	}

	if from != status {
		logrus.WithFields(logrus.Fields{
			"ride_id": rideID,
			"from":    from,
			"to":      status,
		}).Info("ride status changed")
	}
	return ride, nil
}

// GetRide returns nil when the ride does not exist.
func (s *RideService) GetRide(ctx context.Context, id uint) (*models.Ride, error) {
	return s.rides.FindByID(ctx, id)
}

// ListByUser returns the user's rides, most recent first.
func (s *RideService) ListByUser(ctx context.Context, userID uint) ([]models.Ride, error) {
	return s.rides.ListByUser(ctx, userID)
}

// ListCompletedByDriver returns the driver's past rides, latest first.
func (s *RideService) ListCompletedByDriver(ctx context.Context, driverID uint) ([]RideDetail, error) {
	rides, err := s.rides.ListCompletedByDriver(ctx, driverID)
	if err != nil {
		return nil, err
	}
	return s.withRiders(ctx, rides)
}

// ListAvailable returns rides still waiting for a driver, oldest first.
func (s *RideService) ListAvailable(ctx context.Context) ([]RideDetail, error) {
	rides, err := s.rides.ListByStatus(ctx, models.RideRequested)
	if err != nil {
		return nil, err
	}
	return s.withRiders(ctx, rides)
}

func (s *RideService) withRiders(ctx context.Context, rides []models.Ride) ([]RideDetail, error) {
	out := make([]RideDetail, 0, len(rides))
	seen := map[uint]*RiderContact{}
	for _, r := range rides {
		contact, ok := seen[r.UserID]
		if !ok {
			u, err := s.users.FindByID(ctx, r.UserID)
			if err != nil {
				return nil, err
			}
			if u != nil {
				contact = &RiderContact{Name: u.Name, Email: u.Email, Phone: u.Phone}
			}
			seen[r.UserID] = contact
		}
		out = append(out, RideDetail{Ride: r, Rider: contact})
	}
	return out, nil
}

func (s *RideService) mustFind(ctx context.Context, id uint) (*models.Ride, error) {
	ride, err := s.rides.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, notFound("ride", id)
	}
	return ride, nil
}
