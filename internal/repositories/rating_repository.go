package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"cabsy/internal/models"
)

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return fmt.Errorf("create rating: %w", translate(err))
	}
	return nil
}

func (r *RatingRepository) FindByRide(ctx context.Context, rideID uint) (*models.Rating, error) {
	rating, err := first[models.Rating](r.db.WithContext(ctx).Where("ride_id = ?", rideID))
	if err != nil {
		return nil, fmt.Errorf("find rating for ride %d: %w", rideID, err)
	}
	return rating, nil
}

// AverageForDriver returns the mean score of the driver's ratings, or 0 when
// there are none.
func (r *RatingRepository) AverageForDriver(ctx context.Context, driverID uint) (float64, error) {
	var out struct {
		Avg *float64
	}
	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Select("AVG(score) AS avg").
		Where("to_driver_id = ?", driverID).
		Scan(&out).Error
	if err != nil {
		return 0, fmt.Errorf("average rating for driver %d: %w", driverID, err)
	}
	if out.Avg == nil {
		return 0, nil
	}
	return *out.Avg, nil
}
