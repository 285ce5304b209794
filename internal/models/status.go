package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RideStatus is the lifecycle state of a ride, persisted as its name.
type RideStatus string

const (
	RideRequested         RideStatus = "REQUESTED"
	RideAccepted          RideStatus = "ACCEPTED"
	RideDriverOnTheWay    RideStatus = "DRIVER_ON_THE_WAY"
	RideArrivedAtPickup   RideStatus = "ARRIVED_AT_PICKUP"
	RideInProgress        RideStatus = "IN_PROGRESS"
	RideCompleted         RideStatus = "COMPLETED"
	RideCancelledByUser   RideStatus = "CANCELLED_BY_USER"
	RideCancelledByDriver RideStatus = "CANCELLED_BY_DRIVER"
	RideNoDriverFound     RideStatus = "NO_DRIVER_FOUND"
)

var rideStatuses = []RideStatus{
	RideRequested, RideAccepted, RideDriverOnTheWay, RideArrivedAtPickup, RideInProgress,
	RideCompleted, RideCancelledByUser, RideCancelledByDriver, RideNoDriverFound,
}

// progression orders the non-terminal states a ride moves through.
var progression = map[RideStatus]int{
	RideRequested:       0,
	RideAccepted:        1,
	RideDriverOnTheWay:  2,
	RideArrivedAtPickup: 3,
	RideInProgress:      4,
	RideCompleted:       5,
}

// DriverStatus is a driver's availability.
type DriverStatus string

const (
	DriverApprovalPending DriverStatus = "APPROVAL_PENDING"
	DriverAvailable       DriverStatus = "AVAILABLE"
	DriverOccupied        DriverStatus = "OCCUPIED"
	DriverOffline         DriverStatus = "OFFLINE"
)

var driverStatuses = []DriverStatus{DriverApprovalPending, DriverAvailable, DriverOccupied, DriverOffline}

// CabStatus is a vehicle's operational status, independent of its driver's.
type CabStatus string

const (
	CabInService        CabStatus = "IN_SERVICE"
	CabUnderMaintenance CabStatus = "UNDER_MAINTENANCE"
	CabOutOfService     CabStatus = "OUT_OF_SERVICE"
	CabPendingApproval  CabStatus = "PENDING_APPROVAL"
)

var cabStatuses = []CabStatus{CabInService, CabUnderMaintenance, CabOutOfService, CabPendingApproval}

// PaymentStatus is the settlement state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

var paymentStatuses = []PaymentStatus{PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded}

func parseEnum[T ~string](kind, raw string, known []T) (T, error) {
	v := T(strings.ToUpper(strings.TrimSpace(raw)))
	for _, k := range known {
		if k == v {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("unknown %s %q", kind, raw)
}

func unmarshalEnum[T ~string](data []byte, kind string, known []T, dst *T) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%s must be a string: %w", kind, err)
	}
	v, err := parseEnum(kind, raw, known)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// ParseRideStatus accepts a status name in any case.
func ParseRideStatus(s string) (RideStatus, error) { return parseEnum("ride status", s, rideStatuses) }

// ParseDriverStatus accepts a status name in any case.
func ParseDriverStatus(s string) (DriverStatus, error) {
	return parseEnum("driver status", s, driverStatuses)
}

// ParseCabStatus accepts a status name in any case.
func ParseCabStatus(s string) (CabStatus, error) { return parseEnum("cab status", s, cabStatuses) }

// ParsePaymentStatus accepts a status name in any case.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	return parseEnum("payment status", s, paymentStatuses)
}

func (s *RideStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, "ride status", rideStatuses, s)
}

func (s *DriverStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, "driver status", driverStatuses, s)
}

func (s *CabStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, "cab status", cabStatuses, s)
}

func (s *PaymentStatus) UnmarshalJSON(b []byte) error {
	return unmarshalEnum(b, "payment status", paymentStatuses, s)
}

// IsTerminal reports whether no further transitions are possible.
func (s RideStatus) IsTerminal() bool {
	switch s {
	case RideCompleted, RideCancelledByUser, RideCancelledByDriver, RideNoDriverFound:
		return true
	}
	return false
}

// CanTransition reports whether a ride may move from one status to another.
// hasDriver is whether a driver is already assigned to the ride.
//
// Writing the current status again is always allowed. REQUESTED -> ACCEPTED is
// reserved for driver assignment, so it is only legal once a driver is set.
func CanTransition(from, to RideStatus, hasDriver bool) bool {
	if from == to {
		return true
	}
	if from.IsTerminal() {
		return false
	}
	switch to {
	case RideCancelledByUser:
		return true
	case RideCancelledByDriver:
		return hasDriver
	case RideNoDriverFound:
		return from == RideRequested
	case RideCompleted:
		return from == RideInProgress
	}
	next, ok := progression[to]
	if !ok || !hasDriver {
		return false
	}
	return next > progression[from]
}
