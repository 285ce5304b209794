package controllers

import (
	"context"

	"cabsy/internal/models"
	"cabsy/internal/services"
)

// Handlers depend on these; the services package provides the implementations.

type UserManager interface {
	Register(ctx context.Context, in services.RegisterUserInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateName(ctx context.Context, id uint, name string) (*models.User, error)
	UpdateEmail(ctx context.Context, id uint, email string) (*models.User, error)
	UpdatePhone(ctx context.Context, id uint, phone string) (*models.User, error)
	UpdatePassword(ctx context.Context, id uint, oldPassword, newPassword string) (*models.User, error)
}

type DriverManager interface {
	Register(ctx context.Context, in services.RegisterDriverInput) (*models.Driver, error)
	Login(ctx context.Context, email, password string) (*models.Driver, error)
	Get(ctx context.Context, id uint) (*models.Driver, error)
	List(ctx context.Context) ([]models.Driver, error)
	UpdateProfile(ctx context.Context, id uint, in services.UpdateDriverInput) (*models.Driver, error)
	UpdateStatus(ctx context.Context, id uint, status models.DriverStatus) (*models.Driver, error)
}

type CabManager interface {
	Create(ctx context.Context, in services.CabInput) (*models.Cab, error)
	Update(ctx context.Context, id uint, in services.CabInput) (*models.Cab, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*models.Cab, error)
	GetByLicensePlate(ctx context.Context, plate string) (*models.Cab, error)
	List(ctx context.Context) ([]models.Cab, error)
	ListByStatus(ctx context.Context, status models.CabStatus) ([]models.Cab, error)
	ListByDriver(ctx context.Context, driverID uint) ([]models.Cab, error)
}

type RideManager interface {
	RequestRide(ctx context.Context, in services.RequestRideInput) (*models.Ride, error)
	AssignDriver(ctx context.Context, rideID, driverID uint, cabID *uint) (*models.Ride, error)
	UpdateStatusAs(ctx context.Context, actor services.Actor, rideID uint, status models.RideStatus) (*models.Ride, error)
	GetRide(ctx context.Context, id uint) (*models.Ride, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Ride, error)
	ListCompletedByDriver(ctx context.Context, driverID uint) ([]services.RideDetail, error)
	ListAvailable(ctx context.Context) ([]services.RideDetail, error)
}

type RatingManager interface {
	RateRide(ctx context.Context, rideID uint, score int, comment string) (*models.Rating, error)
}

type PaymentManager interface {
	Settle(ctx context.Context, payerID, rideID uint, amount float64, method string) (*models.Payment, error)
	GetPayment(ctx context.Context, id uint) (*models.Payment, error)
	GetPaymentByRide(ctx context.Context, rideID uint) (*models.Payment, error)
}

// TokenIssuer signs session tokens for logged-in accounts.
type TokenIssuer interface {
	GenerateToken(id uint, role string) (string, error)
}

var (
	_ UserManager    = (*services.UserService)(nil)
	_ DriverManager  = (*services.DriverService)(nil)
	_ CabManager     = (*services.CabService)(nil)
	_ RideManager    = (*services.RideService)(nil)
	_ RatingManager  = (*services.RatingService)(nil)
	_ PaymentManager = (*services.PaymentService)(nil)
)
