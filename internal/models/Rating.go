package models

import (
	"time"

	"gorm.io/gorm"
)

// Rating is a user's score for the driver of one completed ride.
type Rating struct {
	gorm.Model
	RideID     uint      `json:"ride_id" gorm:"not null;uniqueIndex"`
	FromUserID uint      `json:"from_user_id" gorm:"not null;index"`
	ToDriverID uint      `json:"to_driver_id" gorm:"not null;index"`
	Score      int       `json:"score" gorm:"not null"`
	Comment    string    `json:"comment" gorm:"type:text"`
	Timestamp  time.Time `json:"timestamp" gorm:"not null"`
}
