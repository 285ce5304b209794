package routes

import (
	"github.com/gin-gonic/gin"

	"cabsy/internal/controllers"
	"cabsy/internal/middleware"
)

func RideRoutes(r *gin.RouterGroup, rc *controllers.RideController, auth *middleware.Auth) {
	rides := r.Group("/rides")
	rides.Use(auth.RequireAuth())
	{
		rides.POST("", middleware.RequireRole(middleware.RoleUser), rc.RequestRide)
		rides.GET("/available", rc.ListAvailableRides)
		rides.GET("/:id", rc.GetRide)
		rides.GET("/user/:userId", rc.ListUserRides)
		rides.GET("/driver/:driverId", rc.ListDriverRides)
		rides.PUT("/:id/assign", middleware.RequireRole(middleware.RoleDriver), rc.AssignDriver)
		rides.PUT("/:id/status", rc.UpdateStatus)
		rides.POST("/:id/rating", middleware.RequireRole(middleware.RoleUser), rc.RateRide)
	}
}
