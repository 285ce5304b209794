package routes

import (
	"github.com/gin-gonic/gin"

	"cabsy/internal/controllers"
)

func DriverRoutes(r *gin.RouterGroup, dc *controllers.DriverController) {
	driver := r.Group("/drivers")
	{
		driver.GET("", dc.ListDrivers)
		driver.GET("/:id", dc.GetDriver)
		driver.PUT("/:id", dc.UpdateDriver)
		driver.PUT("/:id/status", dc.UpdateDriverStatus)
	}
}
