package services

import (
	"context"
	"strings"

	logrus "github.com/sirupsen/logrus"

	"cabsy/internal/geo"
	"cabsy/internal/models"
)

type RegisterDriverInput struct {
	Name          string
	Email         string
	Phone         string
	LicenseNumber string
	Password      string
}

// UpdateDriverInput carries the profile fields to change; nil leaves a field as is.
type UpdateDriverInput struct {
	Name          *string
	Email         *string
	Phone         *string
	LicenseNumber *string
	CurrentLat    *float64
	CurrentLon    *float64
}

type DriverService struct {
	drivers     DriverStore
	hasher      PasswordHasher
	minPassword int
}

func NewDriverService(drivers DriverStore, hasher PasswordHasher, minPassword int) *DriverService {
	if minPassword <= 0 {
		minPassword = DefaultPasswordMinLength
	}
	return &DriverService{drivers: drivers, hasher: hasher, minPassword: minPassword}
}

// Register creates a driver awaiting approval with no rating yet.
func (s *DriverService) Register(ctx context.Context, in RegisterDriverInput) (*models.Driver, error) {
	name, err := checkName(in.Name)
	if err != nil {
		return nil, err
	}
	email, err := checkEmail(in.Email)
	if err != nil {
		return nil, err
	}
	phone, err := checkPhone(in.Phone)
	if err != nil {
		return nil, err
	}
	license, err := checkLicense(in.LicenseNumber)
	if err != nil {
		return nil, err
	}
	if err := checkPassword(in.Password, s.minPassword); err != nil {
		return nil, err
	}
	if err := s.ensureUnique(ctx, 0, email, phone, license); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	d := &models.Driver{
		Name:          name,
		Email:         email,
		Phone:         phone,
		LicenseNumber: license,
		Password:      hash,
		Status:        models.DriverApprovalPending,
	}
	if err := s.drivers.Create(ctx, d); err != nil {
		return nil, conflict(err, "email, phone or license number")
	}
	logrus.WithField("driver_id", d.ID).Info("driver registered")
	return d, nil
}

func (s *DriverService) Login(ctx context.Context, email, password string) (*models.Driver, error) {
	d, err := s.drivers.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if d == nil || !s.hasher.Compare(d.Password, password) {
		return nil, ErrUnauthorized
	}
	return d, nil
}

// Get returns nil when the driver does not exist.
func (s *DriverService) Get(ctx context.Context, id uint) (*models.Driver, error) {
	return s.drivers.FindByID(ctx, id)
}

func (s *DriverService) List(ctx context.Context) ([]models.Driver, error) {
	return s.drivers.List(ctx)
}

func (s *DriverService) UpdateProfile(ctx context.Context, id uint, in UpdateDriverInput) (*models.Driver, error) {
	d, err := s.drivers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, notFound("driver", id)
	}

	if in.Name != nil {
		if d.Name, err = checkName(*in.Name); err != nil {
			return nil, err
		}
	}
	if in.Email != nil {
		if d.Email, err = checkEmail(*in.Email); err != nil {
			return nil, err
		}
	}
	if in.Phone != nil {
		if d.Phone, err = checkPhone(*in.Phone); err != nil {
			return nil, err
		}
	}
	if in.LicenseNumber != nil {
		if d.LicenseNumber, err = checkLicense(*in.LicenseNumber); err != nil {
			return nil, err
		}
	}
	if (in.CurrentLat == nil) != (in.CurrentLon == nil) {
		return nil, validationError("current location needs both latitude and longitude")
	}
	if in.CurrentLat != nil {
		if err := geo.ValidateCoordinates(geo.Point{Lat: *in.CurrentLat, Lon: *in.CurrentLon}); err != nil {
			return nil, validationError("%v", err)
		}
		d.CurrentLat, d.CurrentLon = in.CurrentLat, in.CurrentLon
	}

	if err := s.ensureUnique(ctx, d.ID, d.Email, d.Phone, d.LicenseNumber); err != nil {
		return nil, err
	}
	if err := s.drivers.Save(ctx, d); err != nil {
		return nil, conflict(err, "email, phone or license number")
	}
	return d, nil
}

// UpdateStatus overwrites the driver's status without transition checks.
func (s *DriverService) UpdateStatus(ctx context.Context, id uint, status models.DriverStatus) (*models.Driver, error) {
	d, err := s.drivers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, notFound("driver", id)
	}
	ok, err := s.drivers.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("driver", id)
	}
	logrus.WithFields(logrus.Fields{"driver_id": id, "from": d.Status, "to": status}).Info("driver status changed")
	d.Status = status
	return d, nil
}

func (s *DriverService) ensureUnique(ctx context.Context, self uint, email, phone, license string) error {
	if other, err := s.drivers.FindByEmail(ctx, email); err != nil {
		return err
	} else if other != nil && other.ID != self {
		return validationError("email already in use")
	}
	if other, err := s.drivers.FindByPhone(ctx, phone); err != nil {
		return err
	} else if other != nil && other.ID != self {
		return validationError("phone already in use")
	}
	if other, err := s.drivers.FindByLicense(ctx, license); err != nil {
		return err
	} else if other != nil && other.ID != self {
		return validationError("license number already in use")
	}
	return nil
}

func checkLicense(license string) (string, error) {
	license = strings.TrimSpace(license)
	if license == "" {
		return "", validationError("license number must not be blank")
	}
	return license, nil
}
