// internal/models/vehicle.go
package models

import (
	"time"

	"gorm.io/gorm"
)

// Cab is a vehicle owned by exactly one driver. Stored in the vehicles table.
type Cab struct {
	// gorm.Model's fields, spelled out because embedding it would clash with the Model field below.
	ID                  uint `gorm:"primarykey"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           gorm.DeletedAt `gorm:"index"`
	DriverID            uint           `json:"driver_id" gorm:"not null;index"`
	Make                string         `json:"make" gorm:"size:50;not null"`
	Model               string         `json:"model" gorm:"size:50;not null"`
	LicensePlate        string         `json:"license_plate" gorm:"size:20;not null;uniqueIndex"`
	VehicleType         string         `json:"vehicle_type" gorm:"size:50"`
	Capacity            int            `json:"capacity" gorm:"not null"`
	Color               string         `json:"color" gorm:"size:30"`
	ManufacturingYear   string         `json:"manufacturing_year" gorm:"size:4"`
	Status              CabStatus      `json:"status" gorm:"size:32;not null;default:PENDING_APPROVAL"`
	InsuranceDetails    string         `json:"insurance_details" gorm:"size:255"`
	RegistrationDetails string         `json:"registration_details" gorm:"size:255"`
}

func (Cab) TableName() string { return "vehicles" }
