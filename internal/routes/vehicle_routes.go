package routes

import (
	"github.com/gin-gonic/gin"

	"cabsy/internal/controllers"
)

func VehicleRoutes(r *gin.RouterGroup, cc *controllers.CabController) {
	cabs := r.Group("/cabs")
	{
		cabs.POST("", cc.CreateCab)
		cabs.GET("", cc.ListCabs)
		cabs.GET("/:id", cc.GetCab)
		cabs.PUT("/:id", cc.UpdateCab)
		cabs.DELETE("/:id", cc.DeleteCab)
		cabs.GET("/status/:status", cc.ListCabsByStatus)
		cabs.GET("/driver/:driverId", cc.ListCabsByDriver)
		cabs.GET("/license/:plate", cc.GetCabByLicensePlate)
	}
}
