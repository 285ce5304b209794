package controllers

import (
	"github.com/gin-gonic/gin"

	"cabsy/internal/models"
	"cabsy/internal/response"
	"cabsy/internal/services"
)

type DriverController struct {
	drivers DriverManager
	cabs    CabManager
}

func NewDriverController(drivers DriverManager, cabs CabManager) *DriverController {
	return &DriverController{drivers: drivers, cabs: cabs}
}

// updateDriverInput defines the fields a client can send to update a driver's profile.
type updateDriverInput struct {
	Name          *string  `json:"name"`
	Email         *string  `json:"email"`
	Phone         *string  `json:"phone"`
	LicenseNumber *string  `json:"license_number"`
	CurrentLat    *float64 `json:"current_location_lat"`
	CurrentLon    *float64 `json:"current_location_lon"`
}

func (d *DriverController) ListDrivers(c *gin.Context) {
	drivers, err := d.drivers.List(c.Request.Context())
	if err != nil {
		writeError(c, "Listing drivers", err)
		return
	}
	response.OK(c, "Drivers retrieved successfully", drivers)
}

// GetDriver returns the driver with their cabs.
func (d *DriverController) GetDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	driver, err := d.drivers.Get(ctx, id)
	if err != nil {
		writeError(c, "Fetching driver", err)
		return
	}
	if driver == nil {
		notFound(c, "Driver not found")
		return
	}
	if driver.Cabs, err = d.cabs.ListByDriver(ctx, id); err != nil {
		writeError(c, "Fetching driver", err)
		return
	}
	response.OK(c, "Driver retrieved successfully", driver)
}

func (d *DriverController) UpdateDriver(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input updateDriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid request body format: "+err.Error())
		return
	}

	driver, err := d.drivers.UpdateProfile(c.Request.Context(), id, services.UpdateDriverInput{
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		LicenseNumber: input.LicenseNumber,
		CurrentLat:    input.CurrentLat,
		CurrentLon:    input.CurrentLon,
	})
	if err != nil {
		writeError(c, "Driver update", err)
		return
	}
	response.OK(c, "Driver updated successfully", driver)
}

// UpdateDriverStatus handles PUT /api/drivers/:id/status?status=AVAILABLE.
func (d *DriverController) UpdateDriverStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	status, err := models.ParseDriverStatus(c.Query("status"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	driver, err := d.drivers.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		writeError(c, "Driver status update", err)
		return
	}
	response.OK(c, "Driver status updated successfully", driver)
}
