package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"cabsy/internal/models"
)

type DriverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) Create(ctx context.Context, d *models.Driver) error {
	if err := r.db.WithContext(ctx).Omit("Cabs").Create(d).Error; err != nil {
		return fmt.Errorf("create driver: %w", translate(err))
	}
	return nil
}

func (r *DriverRepository) Save(ctx context.Context, d *models.Driver) error {
	if err := r.db.WithContext(ctx).Omit("Cabs").Save(d).Error; err != nil {
		return fmt.Errorf("save driver %d: %w", d.ID, translate(err))
	}
	return nil
}

func (r *DriverRepository) FindByID(ctx context.Context, id uint) (*models.Driver, error) {
	d, err := first[models.Driver](r.db.WithContext(ctx).Where("id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("find driver %d: %w", id, err)
	}
	return d, nil
}

func (r *DriverRepository) FindByEmail(ctx context.Context, email string) (*models.Driver, error) {
	d, err := first[models.Driver](r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email))
	if err != nil {
		return nil, fmt.Errorf("find driver by email: %w", err)
	}
	return d, nil
}

func (r *DriverRepository) FindByPhone(ctx context.Context, phone string) (*models.Driver, error) {
	d, err := first[models.Driver](r.db.WithContext(ctx).Where("phone_number = ?", phone))
	if err != nil {
		return nil, fmt.Errorf("find driver by phone: %w", err)
	}
	return d, nil
}

func (r *DriverRepository) FindByLicense(ctx context.Context, license string) (*models.Driver, error) {
	d, err := first[models.Driver](r.db.WithContext(ctx).Where("license_number = ?", license))
	if err != nil {
		return nil, fmt.Errorf("find driver by license: %w", err)
	}
	return d, nil
}

func (r *DriverRepository) List(ctx context.Context) ([]models.Driver, error) {
	drivers := []models.Driver{}
	if err := r.db.WithContext(ctx).Order("id").Find(&drivers).Error; err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	return drivers, nil
}

// UpdateStatus overwrites the driver's status. It reports false if the driver
// does not exist.
func (r *DriverRepository) UpdateStatus(ctx context.Context, id uint, status models.DriverStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Driver{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return false, fmt.Errorf("update driver %d status: %w", id, res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *DriverRepository) UpdateRating(ctx context.Context, id uint, rating float64) error {
	err := r.db.WithContext(ctx).Model(&models.Driver{}).Where("id = ?", id).Update("rating", rating).Error
	if err != nil {
		return fmt.Errorf("update driver %d rating: %w", id, err)
	}
	return nil
}
