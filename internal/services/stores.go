package services

import (
	"context"

	"cabsy/internal/models"
)

// The repositories package satisfies these; tests use in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Save(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type DriverStore interface {
	Create(ctx context.Context, d *models.Driver) error
	Save(ctx context.Context, d *models.Driver) error
	FindByID(ctx context.Context, id uint) (*models.Driver, error)
	FindByEmail(ctx context.Context, email string) (*models.Driver, error)
	FindByPhone(ctx context.Context, phone string) (*models.Driver, error)
	FindByLicense(ctx context.Context, license string) (*models.Driver, error)
	List(ctx context.Context) ([]models.Driver, error)
	UpdateStatus(ctx context.Context, id uint, status models.DriverStatus) (bool, error)
	UpdateRating(ctx context.Context, id uint, rating float64) error
}

type CabStore interface {
	Create(ctx context.Context, c *models.Cab) error
	Save(ctx context.Context, c *models.Cab) error
	Delete(ctx context.Context, id uint) (bool, error)
	FindByID(ctx context.Context, id uint) (*models.Cab, error)
	FindByLicensePlate(ctx context.Context, plate string) (*models.Cab, error)
	List(ctx context.Context) ([]models.Cab, error)
	ListByStatus(ctx context.Context, status models.CabStatus) ([]models.Cab, error)
	ListByDriver(ctx context.Context, driverID uint) ([]models.Cab, error)
	FirstInService(ctx context.Context, driverID uint) (*models.Cab, error)
}

type RideStore interface {
	Create(ctx context.Context, ride *models.Ride) error
	FindByID(ctx context.Context, id uint) (*models.Ride, error)
	AssignDriver(ctx context.Context, rideID, driverID, cabID uint) (bool, error)
	UpdateWithLock(ctx context.Context, id uint, fn func(*models.Ride) error) (*models.Ride, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Ride, error)
	ListCompletedByDriver(ctx context.Context, driverID uint) ([]models.Ride, error)
	ListByStatus(ctx context.Context, status models.RideStatus) ([]models.Ride, error)
}

type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	Save(ctx context.Context, p *models.Payment) error
	FindByID(ctx context.Context, id uint) (*models.Payment, error)
	FindByRide(ctx context.Context, rideID uint) (*models.Payment, error)
}

type RatingStore interface {
	Create(ctx context.Context, r *models.Rating) error
	FindByRide(ctx context.Context, rideID uint) (*models.Rating, error)
	AverageForDriver(ctx context.Context, driverID uint) (float64, error)
}
