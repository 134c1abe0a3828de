package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	countrydomain "github.com/slethware/atlas/internal/country/domain"
	"github.com/slethware/atlas/internal/source"
	"github.com/slethware/atlas/internal/summary"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware maps errors recorded on the gin context to a JSON
// error envelope. Handlers record errors via AbortWithError and never write
// error bodies themselves.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case errors.Is(err, countrydomain.ErrNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "Country not found",
		}
	case errors.Is(err, summary.ErrNotGenerated):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "Summary image not found",
		}
	case errors.Is(err, countrydomain.ErrInvalidName):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "Validation failed",
		}
	case errors.Is(err, source.ErrUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "source_unavailable",
			Message: "External data source unavailable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "Internal server error",
		}
	}
}
