package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/travelbook/booking-backend/internal/models"
)

// respondData writes a success envelope with a data payload
func respondData(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
		"message": message,
	})
}

// respondList writes a success envelope with a list payload and its count
func respondList(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
		"data":    data,
	})
}

// respondError maps a domain error to its HTTP status. Internal errors
// are logged with full detail but never leaked to the caller.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	status := models.HTTPStatus(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("Request failed")
		message = "Something went wrong"
	}

	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}
