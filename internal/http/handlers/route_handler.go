// README: AI route planning handler.
package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"greenroute/internal/service"
	"greenroute/internal/types"
)

// planTimeout caps one whole pipeline run; each external call also carries
// its own client timeout so one slow dependency cannot eat the full budget.
const planTimeout = 30 * time.Second

// RoutePlanner is the pipeline surface this handler needs.
type RoutePlanner interface {
	PlanRoute(ctx context.Context, req service.PlanRequest) (*service.RouteResponse, error)
}

type RouteHandler struct {
	planner RoutePlanner
	log     *zap.Logger
}

func NewRouteHandler(planner RoutePlanner, log *zap.Logger) *RouteHandler {
	return &RouteHandler{planner: planner, log: log}
}

type planRouteReq struct {
	Question       string   `json:"question" binding:"required"`
	CurrentLat     *float64 `json:"current_lat" binding:"required"`
	CurrentLon     *float64 `json:"current_lon" binding:"required"`
	DestinationLat *float64 `json:"destination_lat"`
	DestinationLon *float64 `json:"destination_lon"`
	Model          string   `json:"model"`
}

// Plan handles POST /api/ai/route.
func (h *RouteHandler) Plan(c *gin.Context) {
	var req planRouteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json body")
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeError(c, http.StatusBadRequest, "missing question")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), planTimeout)
	defer cancel()

	plan := service.PlanRequest{
		Question: question,
		Model:    strings.TrimSpace(req.Model),
		Start:    &types.Point{Lat: *req.CurrentLat, Lon: *req.CurrentLon},
	}
	if req.DestinationLat != nil && req.DestinationLon != nil {
		plan.Destination = &types.Point{Lat: *req.DestinationLat, Lon: *req.DestinationLon}
	}

	resp, err := h.planner.PlanRoute(ctx, plan)
	if err != nil {
		h.log.Warn("route planning failed", zap.Error(err))
		writePlanError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, resp)
}
