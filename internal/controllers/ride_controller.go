package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"cabsy/internal/geo"
	"cabsy/internal/middleware"
	"cabsy/internal/models"
	"cabsy/internal/response"
	"cabsy/internal/services"
)

type RideController struct {
	rides   RideManager
	ratings RatingManager
}

func NewRideController(rides RideManager, ratings RatingManager) *RideController {
	return &RideController{rides: rides, ratings: ratings}
}

// Coordinates are pointers so that 0 is accepted but absence is not.
type rideRequestInput struct {
	PickupLat          *float64 `json:"pickup_lat" binding:"required"`
	PickupLon          *float64 `json:"pickup_lon" binding:"required"`
	DestinationLat     *float64 `json:"destination_lat" binding:"required"`
	DestinationLon     *float64 `json:"destination_lon" binding:"required"`
	PickupAddress      string   `json:"pickup_address" binding:"required"`
	DestinationAddress string   `json:"destination_address" binding:"required"`
}

type assignInput struct {
	CabID *uint `json:"cab_id"`
}

type statusInput struct {
	Status string `json:"status"`
}

type ratingInput struct {
	Score   int    `json:"score" binding:"required"`
	Comment string `json:"comment"`
}

// rideView adds the route as GeoJSON to a ride.
type rideView struct {
	*models.Ride
	Route json.RawMessage `json:"route,omitempty"`
}

func viewOf(ride *models.Ride) rideView {
	v := rideView{Ride: ride}
	route, err := geo.ToGeoJSON(ride.RouteGeometry)
	if err != nil {
		logrus.WithError(err).WithField("ride_id", ride.ID).Warn("unreadable route geometry")
		return v
	}
	if route != "" {
		v.Route = json.RawMessage(route)
	}
	return v
}

// RequestRide books a ride for the authenticated user.
func (rc *RideController) RequestRide(c *gin.Context) {
	userID, _, err := middleware.CurrentUser(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "Unauthorized", err.Error())
		return
	}
	var input rideRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid ride request: "+err.Error())
		return
	}

	ride, err := rc.rides.RequestRide(c.Request.Context(), services.RequestRideInput{
		UserID:             userID,
		Pickup:             geo.Point{Lat: *input.PickupLat, Lon: *input.PickupLon},
		Destination:        geo.Point{Lat: *input.DestinationLat, Lon: *input.DestinationLon},
		PickupAddress:      input.PickupAddress,
		DestinationAddress: input.DestinationAddress,
	})
	if err != nil {
		writeError(c, "Ride request", err)
		return
	}
	response.Created(c, "Ride requested successfully", viewOf(ride))
}

func (rc *RideController) GetRide(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ride, err := rc.rides.GetRide(c.Request.Context(), id)
	if err != nil {
		writeError(c, "Fetching ride", err)
		return
	}
	if ride == nil {
		notFound(c, "Ride not found")
		return
	}
	response.OK(c, "Ride retrieved successfully", viewOf(ride))
}

func (rc *RideController) ListUserRides(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}
	rides, err := rc.rides.ListByUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, "Listing rides", err)
		return
	}
	response.OK(c, "Rides retrieved successfully", rides)
}

// ListDriverRides returns the driver's completed rides.
func (rc *RideController) ListDriverRides(c *gin.Context) {
	driverID, ok := parseID(c, "driverId")
	if !ok {
		return
	}
	rides, err := rc.rides.ListCompletedByDriver(c.Request.Context(), driverID)
	if err != nil {
		writeError(c, "Listing rides", err)
		return
	}
	response.OK(c, "Rides retrieved successfully", rides)
}

func (rc *RideController) ListAvailableRides(c *gin.Context) {
	rides, err := rc.rides.ListAvailable(c.Request.Context())
	if err != nil {
		writeError(c, "Listing rides", err)
		return
	}
	response.OK(c, "Available rides retrieved successfully", rides)
}

// AssignDriver gives the ride to the authenticated driver. The body may name
// one of the driver's cabs; otherwise their first in-service cab is used.
func (rc *RideController) AssignDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	driverID, _, err := middleware.CurrentUser(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "Unauthorized", err.Error())
		return
	}
	var input assignInput
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, "Invalid assignment: "+err.Error())
			return
		}
	}

	ride, err := rc.rides.AssignDriver(c.Request.Context(), id, driverID, input.CabID)
	if err != nil {
		writeError(c, "Driver assignment", err)
		return
	}
	response.OK(c, "Driver assigned successfully", viewOf(ride))
}

// UpdateStatus takes the new status from ?status= or a JSON body. Only the
// ride's rider or its assigned driver may change it.
func (rc *RideController) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	accountID, role, err := middleware.CurrentUser(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "Unauthorized", err.Error())
		return
	}
	raw := c.Query("status")
	if raw == "" && c.Request.ContentLength != 0 {
		var input statusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			badRequest(c, "Invalid status update: "+err.Error())
			return
		}
		raw = input.Status
	}
	status, err := models.ParseRideStatus(raw)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	actor := services.Actor{ID: accountID, Driver: role == middleware.RoleDriver}
	ride, err := rc.rides.UpdateStatusAs(c.Request.Context(), actor, id, status)
	if err != nil {
		writeError(c, "Ride status update", err)
		return
	}
	response.OK(c, "Ride status updated successfully", viewOf(ride))
}

// RateRide records the authenticated user's rating of their own ride.
func (rc *RideController) RateRide(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	userID, _, err := middleware.CurrentUser(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "Unauthorized", err.Error())
		return
	}
	var input ratingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid rating: "+err.Error())
		return
	}

	ctx := c.Request.Context()
	ride, err := rc.rides.GetRide(ctx, id)
	if err != nil {
		writeError(c, "Rating", err)
		return
	}
	if ride == nil {
		notFound(c, "Ride not found")
		return
	}
	if ride.UserID != userID {
		response.Fail(c, http.StatusForbidden, "Forbidden", "Only the rider can rate this ride")
		return
	}

	rating, err := rc.ratings.RateRide(ctx, id, input.Score, input.Comment)
	if err != nil {
		writeError(c, "Rating", err)
		return
	}
	response.Created(c, "Ride rated successfully", rating)
}
