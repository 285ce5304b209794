package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"cabsy/internal/middleware"
	"cabsy/internal/models"
	"cabsy/internal/response"
	"cabsy/internal/services"
)

type AuthController struct {
	users   UserManager
	drivers DriverManager
	tokens  TokenIssuer
}

func NewAuthController(users UserManager, drivers DriverManager, tokens TokenIssuer) *AuthController {
	return &AuthController{users: users, drivers: drivers, tokens: tokens}
}

type userSignupInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type driverSignupInput struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	LicenseNumber string `json:"license_number" binding:"required"`
	Password      string `json:"password" binding:"required"`
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userSession struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type driverSession struct {
	Token  string         `json:"token"`
	Driver *models.Driver `json:"driver"`
}

func (a *AuthController) SignupUser(c *gin.Context) {
	var input userSignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, http.StatusBadRequest, "User registration failed", err.Error())
		return
	}

	user, err := a.users.Register(c.Request.Context(), services.RegisterUserInput{
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Password: input.Password,
	})
	if err != nil {
		writeError(c, "User registration", err)
		return
	}

	token, err := a.tokens.GenerateToken(user.ID, middleware.RoleUser)
	if err != nil {
		writeError(c, "User registration", err)
		return
	}
	response.Created(c, "User registered successfully", userSession{Token: token, User: user})
}

func (a *AuthController) SignupDriver(c *gin.Context) {
	var input driverSignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Fail(c, http.StatusBadRequest, "Driver registration failed", err.Error())
		return
	}

	driver, err := a.drivers.Register(c.Request.Context(), services.RegisterDriverInput{
		Name:          input.Name,
		Email:         input.Email,
		Phone:         input.Phone,
		LicenseNumber: input.LicenseNumber,
		Password:      input.Password,
	})
	if err != nil {
		writeError(c, "Driver registration", err)
		return
	}

	token, err := a.tokens.GenerateToken(driver.ID, middleware.RoleDriver)
	if err != nil {
		writeError(c, "Driver registration", err)
		return
	}
	response.Created(c, "Driver registered successfully", driverSession{Token: token, Driver: driver})
}

func (a *AuthController) LoginUser(c *gin.Context) {
	var body loginInput
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "Login failed", err.Error())
		return
	}

	user, err := a.users.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		writeError(c, "Login", err)
		return
	}
	token, err := a.tokens.GenerateToken(user.ID, middleware.RoleUser)
	if err != nil {
		writeError(c, "Login", err)
		return
	}
	response.OK(c, "User logged in successfully", userSession{Token: token, User: user})
}

func (a *AuthController) LoginDriver(c *gin.Context) {
	var body loginInput
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Fail(c, http.StatusBadRequest, "Login failed", err.Error())
		return
	}

	driver, err := a.drivers.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		writeError(c, "Login", err)
		return
	}
	token, err := a.tokens.GenerateToken(driver.ID, middleware.RoleDriver)
	if err != nil {
		writeError(c, "Login", err)
		return
	}
	response.OK(c, "Driver logged in successfully", driverSession{Token: token, Driver: driver})
}

// UpdateUserField handles PUT /api/auth/user/:field/:id. The body carries the
// new value under the field's name; password takes oldPassword and newPassword.
func (a *AuthController) UpdateUserField(c *gin.Context) {
	field := strings.ToLower(c.Param("field"))
	switch field {
	case "name", "email", "phone", "password":
	default:
		response.Fail(c, http.StatusBadRequest, "Invalid Field", "Unsupported field for update: "+field)
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var body map[string]string
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, "body must be a JSON object of strings")
		return
	}

	ctx := c.Request.Context()
	if field == "password" {
		oldPassword, newPassword := body["oldPassword"], body["newPassword"]
		if strings.TrimSpace(oldPassword) == "" || strings.TrimSpace(newPassword) == "" {
			response.Fail(c, http.StatusBadRequest, "Validation Error", "Old and new passwords cannot be empty.")
			return
		}
		if _, err := a.users.UpdatePassword(ctx, id, oldPassword, newPassword); err != nil {
			writeError(c, "User password update", err)
			return
		}
		logrus.WithField("user_id", id).Info("user password changed")
		response.OK(c, "User password updated successfully!", nil)
		return
	}

	value, present := body[field]
	if !present || strings.TrimSpace(value) == "" {
		response.Fail(c, http.StatusBadRequest, "Validation Error", field+" cannot be empty.")
		return
	}

	var (
		user *models.User
		err  error
	)
	switch field {
	case "name":
		user, err = a.users.UpdateName(ctx, id, value)
	case "email":
		user, err = a.users.UpdateEmail(ctx, id, value)
	case "phone":
		user, err = a.users.UpdatePhone(ctx, id, value)
	}
	if err != nil {
		writeError(c, "User "+field+" update", err)
		return
	}
	response.OK(c, "User "+field+" updated successfully!", user)
}
