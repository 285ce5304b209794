package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"cabsy/internal/models"
	"cabsy/internal/response"
	"cabsy/internal/services"
)

type CabController struct {
	cabs CabManager
}

func NewCabController(cabs CabManager) *CabController {
	return &CabController{cabs: cabs}
}

type cabInput struct {
	DriverID            uint              `json:"driver_id"`
	Make                string            `json:"make" binding:"required"`
	Model               string            `json:"model" binding:"required"`
	LicensePlate        string            `json:"license_plate" binding:"required"`
	VehicleType         string            `json:"vehicle_type"`
	Capacity            int               `json:"capacity" binding:"required,min=1"`
	Color               string            `json:"color"`
	ManufacturingYear   string            `json:"manufacturing_year"`
	InsuranceDetails    string            `json:"insurance_details"`
	RegistrationDetails string            `json:"registration_details"`
	Status              *models.CabStatus `json:"status"`
}

func (in cabInput) toService() services.CabInput {
	return services.CabInput{
		DriverID:            in.DriverID,
		Make:                in.Make,
		Model:               in.Model,
		LicensePlate:        in.LicensePlate,
		VehicleType:         in.VehicleType,
		Capacity:            in.Capacity,
		Color:               in.Color,
		ManufacturingYear:   in.ManufacturingYear,
		InsuranceDetails:    in.InsuranceDetails,
		RegistrationDetails: in.RegistrationDetails,
		Status:              in.Status,
	}
}

// CreateCab registers a cab for a driver; new cabs await approval unless a
// status is given.
func (cc *CabController) CreateCab(c *gin.Context) {
	var input cabInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid cab input: "+err.Error())
		return
	}
	if input.DriverID == 0 {
		badRequest(c, "driver_id is required")
		return
	}

	cab, err := cc.cabs.Create(c.Request.Context(), input.toService())
	if err != nil {
		writeError(c, "Cab creation", err)
		return
	}
	response.Created(c, "Cab created successfully", cab)
}

func (cc *CabController) ListCabs(c *gin.Context) {
	cabs, err := cc.cabs.List(c.Request.Context())
	if err != nil {
		writeError(c, "Listing cabs", err)
		return
	}
	response.OK(c, "Cabs retrieved successfully", cabs)
}

func (cc *CabController) GetCab(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	cab, err := cc.cabs.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, "Fetching cab", err)
		return
	}
	if cab == nil {
		notFound(c, "Cab not found with ID: "+strconv.FormatUint(uint64(id), 10))
		return
	}
	response.OK(c, "Cab retrieved successfully", cab)
}

func (cc *CabController) UpdateCab(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var input cabInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid cab input: "+err.Error())
		return
	}

	cab, err := cc.cabs.Update(c.Request.Context(), id, input.toService())
	if err != nil {
		writeError(c, "Cab update", err)
		return
	}
	response.OK(c, "Cab updated successfully", cab)
}

func (cc *CabController) DeleteCab(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := cc.cabs.Delete(c.Request.Context(), id); err != nil {
		writeError(c, "Cab deletion", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (cc *CabController) ListCabsByStatus(c *gin.Context) {
	status, err := models.ParseCabStatus(c.Param("status"))
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	cabs, err := cc.cabs.ListByStatus(c.Request.Context(), status)
	if err != nil {
		writeError(c, "Listing cabs", err)
		return
	}
	response.OK(c, "Cabs retrieved successfully", cabs)
}

func (cc *CabController) ListCabsByDriver(c *gin.Context) {
	driverID, ok := parseID(c, "driverId")
	if !ok {
		return
	}
	cabs, err := cc.cabs.ListByDriver(c.Request.Context(), driverID)
	if err != nil {
		writeError(c, "Listing cabs", err)
		return
	}
	response.OK(c, "Cabs retrieved successfully", cabs)
}

func (cc *CabController) GetCabByLicensePlate(c *gin.Context) {
	plate := c.Param("plate")
	cab, err := cc.cabs.GetByLicensePlate(c.Request.Context(), plate)
	if err != nil {
		writeError(c, "Fetching cab", err)
		return
	}
	if cab == nil {
		notFound(c, "Cab not found with license plate: "+plate)
		return
	}
	response.OK(c, "Cab retrieved successfully", cab)
}
