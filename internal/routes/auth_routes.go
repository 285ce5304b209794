package routes

import (
	"github.com/gin-gonic/gin"

	"cabsy/internal/controllers"
)

func AuthRoutes(r *gin.RouterGroup, ac *controllers.AuthController) {
	auth := r.Group("/auth")
	{
		auth.POST("/user/register", ac.SignupUser)
		auth.POST("/driver/register", ac.SignupDriver)
		auth.POST("/user/login", ac.LoginUser)
		auth.POST("/driver/login", ac.LoginDriver)
		auth.PUT("/user/:field/:id", ac.UpdateUserField)
	}
}
