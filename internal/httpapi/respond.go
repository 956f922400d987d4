// Package httpapi maps the JSON HTTP surface onto the service layer.
package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/telmov/inkpress/internal/apperr"
)

var apiLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	apiLogger = l
}

// writeError translates a service error kind to its HTTP status and body.
// Anything unrecognized is a server error; the detail stays in the log.
func writeError(c *gin.Context, err error) {
	if ve, ok := apperr.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "validation failed",
			"fields": ve.Fields,
		})
		return
	}
	if apperr.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if apperr.IsForbidden(err) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	apiLogger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled service error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
