// README: CRUD-ish handlers for green locations.
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"greenroute/internal/modules/poi"
	"greenroute/internal/types"
)

// POIService is the service surface the location handlers need.
type POIService interface {
	Create(ctx context.Context, rec poi.Record) (poi.Record, error)
	List(ctx context.Context, t *types.POIType, limit int) ([]poi.Record, error)
}

type LocationHandler struct {
	pois POIService
	log  *zap.Logger
}

func NewLocationHandler(pois POIService, log *zap.Logger) *LocationHandler {
	return &LocationHandler{pois: pois, log: log}
}

type createLocationReq struct {
	Name        string   `json:"name" binding:"required"`
	Address     string   `json:"address"`
	Description string   `json:"description"`
	Type        string   `json:"location_type" binding:"required"`
	Lat         *float64 `json:"lat" binding:"required"`
	Lon         *float64 `json:"lon" binding:"required"`
}

// Create handles POST /api/locations.
func (h *LocationHandler) Create(c *gin.Context) {
	var req createLocationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json body")
		return
	}
	rec, err := h.pois.Create(c.Request.Context(), poi.Record{
		Name:        strings.TrimSpace(req.Name),
		Address:     strings.TrimSpace(req.Address),
		Description: strings.TrimSpace(req.Description),
		Type:        types.POIType(strings.ToUpper(strings.TrimSpace(req.Type))),
		Position:    types.Point{Lat: *req.Lat, Lon: *req.Lon},
	})
	if err != nil {
		h.log.Warn("create location failed", zap.Error(err))
		writePOIError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, rec)
}

// List handles GET /api/locations. Optional query params: location_type, limit.
func (h *LocationHandler) List(c *gin.Context) {
	var typeFilter *types.POIType
	if raw := c.Query("location_type"); raw != "" {
		t, ok := types.ParsePOIType(raw)
		if !ok {
			writeError(c, http.StatusBadRequest, "unknown location_type")
			return
		}
		typeFilter = &t
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	recs, err := h.pois.List(c.Request.Context(), typeFilter, limit)
	if err != nil {
		h.log.Error("list locations failed", zap.Error(err))
		writePOIError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"locations": recs, "count": len(recs)})
}
