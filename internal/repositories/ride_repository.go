package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cabsy/internal/models"
)

type RideRepository struct {
	db *gorm.DB
}

func NewRideRepository(db *gorm.DB) *RideRepository {
	return &RideRepository{db: db}
}

func (r *RideRepository) Create(ctx context.Context, ride *models.Ride) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(ride).Error; err != nil {
		return fmt.Errorf("create ride: %w", translate(err))
	}
	return nil
}

func (r *RideRepository) FindByID(ctx context.Context, id uint) (*models.Ride, error) {
	ride, err := first[models.Ride](r.db.WithContext(ctx).Where("id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("find ride %d: %w", id, err)
	}
	return ride, nil
}

// AssignDriver sets driver, cab and ACCEPTED in one conditional UPDATE. It
// reports false when the ride is missing, already has a driver, or has left
// REQUESTED, so at most one concurrent caller wins.
func (r *RideRepository) AssignDriver(ctx context.Context, rideID, driverID, cabID uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Ride{}).
		Where("id = ? AND driver_id IS NULL AND status = ?", rideID, models.RideRequested).
		Updates(map[string]interface{}{
			"driver_id":  driverID,
			"vehicle_id": cabID,
			"status":     models.RideAccepted,
		})
	if res.Error != nil {
		return false, fmt.Errorf("assign driver to ride %d: %w", rideID, res.Error)
	}
	return res.RowsAffected == 1, nil
}

// UpdateWithLock loads the ride with SELECT ... FOR UPDATE, lets fn mutate it
// and saves the result in the same transaction. An error from fn rolls back.
// It returns (nil, nil) if the ride does not exist.
func (r *RideRepository) UpdateWithLock(ctx context.Context, id uint, fn func(*models.Ride) error) (*models.Ride, error) {
	var ride models.Ride
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&ride, id).Error; err != nil {
			return err
		}
		if err := fn(&ride); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(&ride).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update ride %d: %w", id, err)
	}
	return &ride, nil
}

// ListByUser returns the user's rides, most recently requested first.
func (r *RideRepository) ListByUser(ctx context.Context, userID uint) ([]models.Ride, error) {
	rides := []models.Ride{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("booking_time DESC, id DESC").
		Find(&rides).Error
	if err != nil {
		return nil, fmt.Errorf("list rides for user %d: %w", userID, err)
	}
	return rides, nil
}

// ListCompletedByDriver returns the driver's completed rides, latest end first.
func (r *RideRepository) ListCompletedByDriver(ctx context.Context, driverID uint) ([]models.Ride, error) {
	rides := []models.Ride{}
	err := r.db.WithContext(ctx).
		Where("driver_id = ? AND status = ?", driverID, models.RideCompleted).
		Order("end_time DESC, id DESC").
		Find(&rides).Error
	if err != nil {
		return nil, fmt.Errorf("list completed rides for driver %d: %w", driverID, err)
	}
	return rides, nil
}

// ListByStatus returns rides in the given status, oldest request first.
func (r *RideRepository) ListByStatus(ctx context.Context, status models.RideStatus) ([]models.Ride, error) {
	rides := []models.Ride{}
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("booking_time ASC, id ASC").
		Find(&rides).Error
	if err != nil {
		return nil, fmt.Errorf("list %s rides: %w", status, err)
	}
	return rides, nil
}
