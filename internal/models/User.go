package models

import "gorm.io/gorm"

// User is a rider account.
type User struct {
	gorm.Model
	Name     string  `json:"name" gorm:"size:255;not null"`
	Email    string  `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Phone    string  `json:"phone" gorm:"column:phone_number;size:20;not null;uniqueIndex"`
	Password string  `json:"-" gorm:"size:255;not null"` // bcrypt hash
	Rating   float64 `json:"rating" gorm:"not null;default:0"`
}
