package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"cabsy/internal/models"
)

type CabRepository struct {
	db *gorm.DB
}

func NewCabRepository(db *gorm.DB) *CabRepository {
	return &CabRepository{db: db}
}

func (r *CabRepository) Create(ctx context.Context, c *models.Cab) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("create cab: %w", translate(err))
	}
	return nil
}

func (r *CabRepository) Save(ctx context.Context, c *models.Cab) error {
	if err := r.db.WithContext(ctx).Save(c).Error; err != nil {
		return fmt.Errorf("save cab %d: %w", c.ID, translate(err))
	}
	return nil
}

// Delete soft-deletes the cab and reports whether it existed.
func (r *CabRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Cab{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("delete cab %d: %w", id, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *CabRepository) FindByID(ctx context.Context, id uint) (*models.Cab, error) {
	c, err := first[models.Cab](r.db.WithContext(ctx).Where("id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("find cab %d: %w", id, err)
	}
	return c, nil
}

func (r *CabRepository) FindByLicensePlate(ctx context.Context, plate string) (*models.Cab, error) {
	c, err := first[models.Cab](r.db.WithContext(ctx).Where("license_plate = ?", plate))
	if err != nil {
		return nil, fmt.Errorf("find cab by plate: %w", err)
	}
	return c, nil
}

func (r *CabRepository) List(ctx context.Context) ([]models.Cab, error) {
	return r.list(r.db.WithContext(ctx))
}

func (r *CabRepository) ListByStatus(ctx context.Context, status models.CabStatus) ([]models.Cab, error) {
	return r.list(r.db.WithContext(ctx).Where("status = ?", status))
}

func (r *CabRepository) ListByDriver(ctx context.Context, driverID uint) ([]models.Cab, error) {
	return r.list(r.db.WithContext(ctx).Where("driver_id = ?", driverID))
}

// FirstInService returns the driver's lowest-id cab that is IN_SERVICE.
func (r *CabRepository) FirstInService(ctx context.Context, driverID uint) (*models.Cab, error) {
	c, err := first[models.Cab](r.db.WithContext(ctx).
		Where("driver_id = ? AND status = ?", driverID, models.CabInService).
		Order("id"))
	if err != nil {
		return nil, fmt.Errorf("find in-service cab for driver %d: %w", driverID, err)
	}
	return c, nil
}

func (r *CabRepository) list(q *gorm.DB) ([]models.Cab, error) {
	cabs := []models.Cab{}
	if err := q.Order("id").Find(&cabs).Error; err != nil {
		return nil, fmt.Errorf("list cabs: %w", err)
	}
	return cabs, nil
}
