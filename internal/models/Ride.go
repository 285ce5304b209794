package models

import (
	"time"

	"gorm.io/gorm"
)

// Ride is the aggregate root of the trip lifecycle.
//
// The User, Driver and Cab references exist for foreign keys only and are
// never preloaded; callers look related entities up by id.
type Ride struct {
	gorm.Model
	UserID   uint  `json:"user_id" gorm:"not null;index"`
	DriverID *uint `json:"driver_id" gorm:"index"`
	CabID    *uint `json:"vehicle_id" gorm:"column:vehicle_id;index"`

	PickupLat          float64 `json:"pickup_lat" gorm:"column:pickup_location_lat;not null"`
	PickupLon          float64 `json:"pickup_lon" gorm:"column:pickup_location_lon;not null"`
	DestinationLat     float64 `json:"destination_lat" gorm:"column:dropoff_location_lat;not null"`
	DestinationLon     float64 `json:"destination_lon" gorm:"column:dropoff_location_lon;not null"`
	PickupAddress      string  `json:"pickup_address" gorm:"size:255;not null"`
	DestinationAddress string  `json:"destination_address" gorm:"column:dropoff_address;size:255;not null"`

	// WKB LineString from pickup to destination.
	RouteGeometry []byte `json:"-" gorm:"type:bytea"`

	Status        RideStatus `json:"status" gorm:"size:32;not null;index"`
	EstimatedFare float64    `json:"estimated_fare" gorm:"not null"`
	ActualFare    *float64   `json:"actual_fare"`

	RequestTime time.Time  `json:"request_time" gorm:"column:booking_time;not null"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Driver *Driver `gorm:"foreignKey:DriverID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
	Cab    *Cab    `gorm:"foreignKey:CabID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`
}

// HasDriver reports whether a driver and cab have been assigned.
func (r *Ride) HasDriver() bool {
	return r.DriverID != nil
}

// MarkStarted sets StartTime if it is unset and reports whether it did.
func (r *Ride) MarkStarted(at time.Time) bool {
	if r.StartTime != nil {
		return false
	}
	if at.Before(r.RequestTime) {
		at = r.RequestTime
	}
	r.StartTime = &at
	return true
}

// MarkEnded sets EndTime if it is unset and reports whether it did.
func (r *Ride) MarkEnded(at time.Time) bool {
	if r.EndTime != nil {
		return false
	}
	if r.StartTime != nil && at.Before(*r.StartTime) {
		at = *r.StartTime
	}
	r.EndTime = &at
	return true
}

// FinalizeFare derives ActualFare from EstimatedFare once. An existing actual
// fare is never overwritten.
func (r *Ride) FinalizeFare(finalize func(estimated float64) float64) bool {
	if r.ActualFare != nil {
		return false
	}
	v := finalize(r.EstimatedFare)
	r.ActualFare = &v
	return true
}
