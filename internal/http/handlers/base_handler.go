// README: Base handler utilities (JSON helpers, pipeline error mapping).
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"greenroute/internal/ai"
	"greenroute/internal/modules/poi"
	"greenroute/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writePlanError maps the pipeline error taxonomy onto HTTP statuses. The
// messages distinguish "couldn't understand the destination" from "an
// upstream engine is unreachable".
func writePlanError(c *gin.Context, err error) {
	var missing *service.MissingCoordinatesError
	var geocodeErr *service.GeocodeError
	var engineErr *service.RouteEngineError

	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(c, http.StatusGatewayTimeout, "request cancelled or timed out")
	case errors.Is(err, ai.ErrMissingAPIKey):
		writeError(c, http.StatusInternalServerError, "completion provider is not configured")
	case errors.As(err, &missing):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &geocodeErr), errors.As(err, &engineErr):
		writeError(c, http.StatusBadGateway, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writePOIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, poi.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
