package handler

import (
	"errors"
	"net/http"

	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// writeServiceError maps service sentinel errors onto HTTP status codes and
// writes the standard error envelope.
func writeServiceError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidState):
		status = http.StatusConflict
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, response.Error(status, err.Error()))
}

// currentUser pulls the authenticated user's id and role out of the gin
// context set by the auth middleware.
func currentUser(c *gin.Context) (string, string) {
	userID, _ := c.Get("userID")
	idStr, _ := userID.(string)
	role := c.GetString("userRole")
	return idStr, role
}
