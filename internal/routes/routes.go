package routes

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"cabsy/internal/controllers"
	"cabsy/internal/logger"
	"cabsy/internal/middleware"
	"cabsy/internal/response"
)

// Handlers bundles everything the router wires up.
type Handlers struct {
	Auth     *controllers.AuthController
	Users    *controllers.UserController
	Drivers  *controllers.DriverController
	Cabs     *controllers.CabController
	Rides    *controllers.RideController
	Payments *controllers.PaymentController
}

// SetupRouter builds the engine; access logs go to accessLog when it is non-nil.
func SetupRouter(h Handlers, auth *middleware.Auth, accessLog io.Writer) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	if accessLog != nil {
		r.Use(logger.AccessLog(accessLog))
	}
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		response.OK(c, "ok", nil)
	})
	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, "Not Found", "No route for "+c.Request.Method+" "+c.Request.URL.Path)
	})

	api := r.Group("/api")
	AuthRoutes(api, h.Auth)
	UserRoutes(api, h.Users)
	DriverRoutes(api, h.Drivers)
	VehicleRoutes(api, h.Cabs)
	RideRoutes(api, h.Rides, auth)
	PaymentRoutes(api, h.Payments, auth)

	return r
}
