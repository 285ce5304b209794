// internal/models/driver.go
package models

import "gorm.io/gorm"

// Driver owns zero or more cabs and is referenced by rides once assigned.
type Driver struct {
	gorm.Model
	Name          string       `json:"name" gorm:"size:255;not null"`
	Email         string       `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Phone         string       `json:"phone" gorm:"column:phone_number;size:20;not null;uniqueIndex"`
	LicenseNumber string       `json:"license_number" gorm:"size:50;not null;uniqueIndex"`
	Password      string       `json:"-" gorm:"size:255;not null"`
	Status        DriverStatus `json:"status" gorm:"size:32;not null;default:APPROVAL_PENDING"`
	Rating        float64      `json:"rating" gorm:"not null;default:0"`

	// Last known location, unset until reported.
	CurrentLat *float64 `json:"current_location_lat,omitempty" gorm:"column:current_location_lat"`
	CurrentLon *float64 `json:"current_location_lon,omitempty" gorm:"column:current_location_lon"`

	Cabs []Cab `gorm:"foreignKey:DriverID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"cabs,omitempty"`
}
