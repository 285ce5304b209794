package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment settles exactly one ride.
type Payment struct {
	gorm.Model
	RideID        uint          `json:"ride_id" gorm:"not null;uniqueIndex"`
	UserID        uint          `json:"user_id" gorm:"not null;index"`
	Amount        float64       `json:"amount" gorm:"type:numeric(10,2);not null"`
	Method        string        `json:"method" gorm:"size:50;not null"`
	Status        PaymentStatus `json:"status" gorm:"size:32;not null;default:PENDING"`
	TransactionID *string       `json:"transaction_id" gorm:"size:255;uniqueIndex"`
	Timestamp     time.Time     `json:"timestamp" gorm:"not null"`
}
