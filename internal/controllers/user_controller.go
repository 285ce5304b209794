package controllers

import (
	"github.com/gin-gonic/gin"

	"cabsy/internal/response"
)

type UserController struct {
	users UserManager
}

func NewUserController(users UserManager) *UserController {
	return &UserController{users: users}
}

func (u *UserController) ListUsers(c *gin.Context) {
	users, err := u.users.List(c.Request.Context())
	if err != nil {
		writeError(c, "Listing users", err)
		return
	}
	response.OK(c, "Users retrieved successfully", users)
}

func (u *UserController) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := u.users.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, "Fetching user", err)
		return
	}
	if user == nil {
		notFound(c, "User not found")
		return
	}
	response.OK(c, "User retrieved successfully", user)
}
