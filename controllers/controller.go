package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"storefront/middleware"
	"storefront/models"

	"github.com/gin-gonic/gin"
)

func respondSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, models.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError maps the error taxonomy onto HTTP. Storage details are logged
// and never sent to the client.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *models.ValidationError
		authErr       *models.AuthError
		storageErr    *models.StorageError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: validationErr.Message})
	case errors.As(err, &authErr):
		c.JSON(authErr.Status, models.ErrorResponse{Success: false, Message: authErr.Message})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Success: false, Message: "Resource not found"})
	default:
		if errors.As(err, &storageErr) {
			log.Printf("[%s] %s %s: storage failure in %s: %v", middleware.GetRequestID(c), c.Request.Method, c.Request.URL.Path, storageErr.Op, storageErr.Err)
		} else {
			log.Printf("[%s] %s %s: %v", middleware.GetRequestID(c), c.Request.Method, c.Request.URL.Path, err)
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Success: false, Message: "Internal server error"})
	}
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: message})
}

func parseIDParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		respondBadRequest(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}
