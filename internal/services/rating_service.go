package services

import (
	"context"
	"strings"
	"time"

	logrus "github.com/sirupsen/logrus"

	"cabsy/internal/models"
)

const (
	MinScore = 1
	MaxScore = 5
)

// RatingService lets a rider score the driver of a completed ride.
type RatingService struct {
	ratings RatingStore
	rides   RideStore
	drivers DriverStore
	now     func() time.Time
}

func NewRatingService(ratings RatingStore, rides RideStore, drivers DriverStore) *RatingService {
	return &RatingService{ratings: ratings, rides: rides, drivers: drivers, now: time.Now}
}

// RateRide stores one rating per ride and refreshes the driver's average.
func (s *RatingService) RateRide(ctx context.Context, rideID uint, score int, comment string) (*models.Rating, error) {
	ride, err := s.rides.FindByID(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if ride == nil {
		return nil, notFound("ride", rideID)
	}
	if score < MinScore || score > MaxScore {
		return nil, validationError("score must be between %d and %d", MinScore, MaxScore)
	}
	if ride.Status != models.RideCompleted || !ride.HasDriver() {
		return nil, invalidState("ride %d has not been completed by a driver", rideID)
	}

	existing, err := s.ratings.FindByRide(ctx, rideID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, validationError("ride %d is already rated", rideID)
	}

	r := &models.Rating{
		RideID:     rideID,
		FromUserID: ride.UserID,
		ToDriverID: *ride.DriverID,
		Score:      score,
		Comment:    strings.TrimSpace(comment),
		Timestamp:  s.now(),
	}
	if err := s.ratings.Create(ctx, r); err != nil {
		return nil, conflict(err, "rating for this ride")
	}

	avg, err := s.ratings.AverageForDriver(ctx, r.ToDriverID)
	if err != nil {
		return nil, err
	}
	if err := s.drivers.UpdateRating(ctx, r.ToDriverID, avg); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"ride_id": rideID, "driver_id": r.ToDriverID, "score": score, "average": avg}).Info("ride rated")
	return r, nil
}
