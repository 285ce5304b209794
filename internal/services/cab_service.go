package services

import (
	"context"
	"strings"

	logrus "github.com/sirupsen/logrus"

	"cabsy/internal/models"
)

// CabInput describes a cab on create and update. On update a zero DriverID
// keeps the current owner and a nil Status keeps the current status.
type CabInput struct {
	DriverID            uint
	Make                string
	Model               string
	LicensePlate        string
	VehicleType         string
	Capacity            int
	Color               string
	ManufacturingYear   string
	InsuranceDetails    string
	RegistrationDetails string
	Status              *models.CabStatus
}

type CabService struct {
	cabs    CabStore
	drivers DriverStore
}

func NewCabService(cabs CabStore, drivers DriverStore) *CabService {
	return &CabService{cabs: cabs, drivers: drivers}
}

func (s *CabService) Create(ctx context.Context, in CabInput) (*models.Cab, error) {
	if err := s.ensureDriver(ctx, in.DriverID); err != nil {
		return nil, err
	}
	if err := checkCab(&in); err != nil {
		return nil, err
	}
	if err := s.ensurePlateFree(ctx, in.LicensePlate, 0); err != nil {
		return nil, err
	}

	c := &models.Cab{DriverID: in.DriverID, Status: models.CabPendingApproval}
	apply(c, in)
	if err := s.cabs.Create(ctx, c); err != nil {
		return nil, conflict(err, "license plate")
	}
	logrus.WithFields(logrus.Fields{"cab_id": c.ID, "driver_id": c.DriverID}).Info("cab registered")
	return c, nil
}

func (s *CabService) Update(ctx context.Context, id uint, in CabInput) (*models.Cab, error) {
	c, err := s.cabs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, notFound("cab", id)
	}
	if in.DriverID != 0 && in.DriverID != c.DriverID {
		if err := s.ensureDriver(ctx, in.DriverID); err != nil {
			return nil, err
		}
		c.DriverID = in.DriverID
	}
	if err := checkCab(&in); err != nil {
		return nil, err
	}
	if err := s.ensurePlateFree(ctx, in.LicensePlate, c.ID); err != nil {
		return nil, err
	}

	apply(c, in)
	if err := s.cabs.Save(ctx, c); err != nil {
		return nil, conflict(err, "license plate")
	}
	return c, nil
}

func (s *CabService) Delete(ctx context.Context, id uint) error {
	ok, err := s.cabs.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("cab", id)
	}
	return nil
}

// Get returns nil when the cab does not exist.
func (s *CabService) Get(ctx context.Context, id uint) (*models.Cab, error) {
	return s.cabs.FindByID(ctx, id)
}

func (s *CabService) GetByLicensePlate(ctx context.Context, plate string) (*models.Cab, error) {
	return s.cabs.FindByLicensePlate(ctx, strings.ToUpper(strings.TrimSpace(plate)))
}

func (s *CabService) List(ctx context.Context) ([]models.Cab, error) {
	return s.cabs.List(ctx)
}

func (s *CabService) ListByStatus(ctx context.Context, status models.CabStatus) ([]models.Cab, error) {
	return s.cabs.ListByStatus(ctx, status)
}

func (s *CabService) ListByDriver(ctx context.Context, driverID uint) ([]models.Cab, error) {
	return s.cabs.ListByDriver(ctx, driverID)
}

func (s *CabService) ensureDriver(ctx context.Context, driverID uint) error {
	d, err := s.drivers.FindByID(ctx, driverID)
	if err != nil {
		return err
	}
	if d == nil {
		return notFound("driver", driverID)
	}
	return nil
}

func (s *CabService) ensurePlateFree(ctx context.Context, plate string, self uint) error {
	other, err := s.cabs.FindByLicensePlate(ctx, plate)
	if err != nil {
		return err
	}
	if other != nil && other.ID != self {
		return validationError("license plate already in use")
	}
	return nil
}

func checkCab(in *CabInput) error {
	in.Make = strings.TrimSpace(in.Make)
	in.Model = strings.TrimSpace(in.Model)
	in.LicensePlate = strings.ToUpper(strings.TrimSpace(in.LicensePlate))
	switch {
	case in.Make == "":
		return validationError("make must not be blank")
	case in.Model == "":
		return validationError("model must not be blank")
	case in.LicensePlate == "":
		return validationError("license plate must not be blank")
	case in.Capacity < 1:
		return validationError("capacity must be at least 1")
	}
	return nil
}

func apply(c *models.Cab, in CabInput) {
	c.Make = in.Make
	c.Model = in.Model
	c.LicensePlate = in.LicensePlate
	c.VehicleType = in.VehicleType
	c.Capacity = in.Capacity
	c.Color = in.Color
	c.ManufacturingYear = in.ManufacturingYear
	c.InsuranceDetails = in.InsuranceDetails
	c.RegistrationDetails = in.RegistrationDetails
	if in.Status != nil {
		c.Status = *in.Status
	}
}
