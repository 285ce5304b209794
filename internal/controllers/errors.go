package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"cabsy/internal/response"
	"cabsy/internal/services"
)

// writeError maps service errors onto status codes. Anything unexpected is
// logged and reported without detail.
func writeError(c *gin.Context, action string, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		response.Fail(c, http.StatusBadRequest, "Validation Error", detail(err, services.ErrValidation))
	case errors.Is(err, services.ErrUnauthorized):
		response.Fail(c, http.StatusUnauthorized, action+" failed", "Invalid credentials")
	case errors.Is(err, services.ErrNotFound):
		response.Fail(c, http.StatusNotFound, "Not Found", detail(err, services.ErrNotFound))
	case errors.Is(err, services.ErrForbidden):
		response.Fail(c, http.StatusForbidden, "Forbidden", detail(err, services.ErrForbidden))
	case errors.Is(err, services.ErrInvalidState):
		response.Fail(c, http.StatusConflict, "Conflict", detail(err, services.ErrInvalidState))
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error(action + " failed")
		response.Fail(c, http.StatusInternalServerError, action+" failed", "An internal server error occurred.")
	}
}

// detail strips the sentinel prefix so clients see only the specific reason.
func detail(err, sentinel error) string {
	msg := err.Error()
	if rest := strings.TrimPrefix(msg, sentinel.Error()+": "); rest != msg {
		return rest
	}
	return msg
}

func badRequest(c *gin.Context, detail string) {
	response.Fail(c, http.StatusBadRequest, "Invalid Request", detail)
}

func notFound(c *gin.Context, detail string) {
	response.Fail(c, http.StatusNotFound, "Not Found", detail)
}

// parseID reads a positive integer path parameter, answering 400 if it is not one.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		badRequest(c, name+" must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
