package handlers

import (
	"errors"
	"log"
	"net/http"

	"taskboard/internal/dto"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{service.ErrForbidden, http.StatusForbidden},
	{service.ErrProjectNotFound, http.StatusNotFound},
	{service.ErrAssigneeNotFound, http.StatusNotFound},
	{service.ErrParentNotFound, http.StatusNotFound},
	{service.ErrUserNotFound, http.StatusNotFound},
	{service.ErrInvalidReference, http.StatusBadRequest},
	{service.ErrInvalidInput, http.StatusBadRequest},
	{service.ErrSelfDependency, http.StatusBadRequest},
	{service.ErrAlreadyExists, http.StatusConflict},
	{service.ErrUserExists, http.StatusConflict},
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
}

// respondError writes the response for a service error. what names the resource in
// not-found messages. Unknown errors are logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error, what string) {
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: what + " not found"})
		return
	}
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			c.JSON(e.status, dto.ErrorResponse{Error: err.Error()})
			return
		}
	}
	internalError(c, err)
}

func internalError(c *gin.Context, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
}

func validationFailed(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ValidationErrorResponse{
		Error:   "Validation failed",
		Details: dto.ValidationDetails(err),
	})
}

// bindJSON binds and validates the body, writing a 400 on failure.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		validationFailed(c, err)
		return false
	}
	return true
}

func bindQuery(c *gin.Context, v any) bool {
	if err := c.ShouldBindQuery(v); err != nil {
		validationFailed(c, err)
		return false
	}
	return true
}

// parseID returns a path parameter that must be a UUID.
func parseID(c *gin.Context, name string) (string, bool) {
	raw := c.Param(name)
	if _, err := uuid.Parse(raw); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid id"})
		return "", false
	}
	return raw, true
}
