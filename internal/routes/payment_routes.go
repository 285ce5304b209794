package routes

import (
	"github.com/gin-gonic/gin"

	"cabsy/internal/controllers"
	"cabsy/internal/middleware"
)

// Only riders pay; either role may look a payment up.
func PaymentRoutes(r *gin.RouterGroup, pc *controllers.PaymentController, auth *middleware.Auth) {
	payments := r.Group("/payments")
	{
		payments.POST("", auth.RequireAuthWithRole(middleware.RoleUser), pc.CreatePayment)
		payments.GET("/:id", auth.RequireAuth(), pc.GetPayment)
		payments.GET("/ride/:rideId", auth.RequireAuth(), pc.GetPaymentByRide)
	}
}
