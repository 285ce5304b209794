package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"cabsy/internal/models"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts the payment. A second payment for the same ride fails with
// ErrDuplicate.
func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("create payment: %w", translate(err))
	}
	return nil
}

func (r *PaymentRepository) Save(ctx context.Context, p *models.Payment) error {
	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("save payment %d: %w", p.ID, translate(err))
	}
	return nil
}

func (r *PaymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	p, err := first[models.Payment](r.db.WithContext(ctx).Where("id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("find payment %d: %w", id, err)
	}
	return p, nil
}

func (r *PaymentRepository) FindByRide(ctx context.Context, rideID uint) (*models.Payment, error) {
	p, err := first[models.Payment](r.db.WithContext(ctx).Where("ride_id = ?", rideID))
	if err != nil {
		return nil, fmt.Errorf("find payment for ride %d: %w", rideID, err)
	}
	return p, nil
}
