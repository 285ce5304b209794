package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabsy/internal/middleware"
	"cabsy/internal/response"
)

type PaymentController struct {
	payments PaymentManager
}

func NewPaymentController(payments PaymentManager) *PaymentController {
	return &PaymentController{payments: payments}
}

type paymentInput struct {
	RideID uint    `json:"ride_id" binding:"required"`
	Amount float64 `json:"amount" binding:"required"`
	Method string  `json:"method" binding:"required"`
}

// CreatePayment records and immediately settles a payment for the caller's
// completed ride.
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	userID, _, err := middleware.CurrentUser(c)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, "Unauthorized", err.Error())
		return
	}
	var input paymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Invalid payment: "+err.Error())
		return
	}

	payment, err := pc.payments.Settle(c.Request.Context(), userID, input.RideID, input.Amount, input.Method)
	if err != nil {
		writeError(c, "Payment", err)
		return
	}
	response.Created(c, "Payment processed successfully", payment)
}

func (pc *PaymentController) GetPayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	payment, err := pc.payments.GetPayment(c.Request.Context(), id)
	if err != nil {
		writeError(c, "Fetching payment", err)
		return
	}
	if payment == nil {
		notFound(c, "Payment not found")
		return
	}
	response.OK(c, "Payment retrieved successfully", payment)
}

func (pc *PaymentController) GetPaymentByRide(c *gin.Context) {
	rideID, ok := parseID(c, "rideId")
	if !ok {
		return
	}
	payment, err := pc.payments.GetPaymentByRide(c.Request.Context(), rideID)
	if err != nil {
		writeError(c, "Fetching payment", err)
		return
	}
	if payment == nil {
		notFound(c, "No payment for this ride")
		return
	}
	response.OK(c, "Payment retrieved successfully", payment)
}
