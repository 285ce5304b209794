package routes

import (
	"github.com/gin-gonic/gin"

	"cabsy/internal/controllers"
)

func UserRoutes(r *gin.RouterGroup, uc *controllers.UserController) {
	users := r.Group("/users")
	{
		users.GET("", uc.ListUsers)
		users.GET("/:id", uc.GetUser)
	}
}
