// README: Tests for the AI route planning handler.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"greenroute/internal/modules/poi"
	"greenroute/internal/routing"
	"greenroute/internal/service"
)

type stubPlanner struct {
	resp *service.RouteResponse
	err  error

	got service.PlanRequest
}

func (s *stubPlanner) PlanRoute(_ context.Context, req service.PlanRequest) (*service.RouteResponse, error) {
	s.got = req
	return s.resp, s.err
}

func newRouteTestRouter(planner RoutePlanner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewRouteHandler(planner, zap.NewNop())
	r.POST("/api/ai/route", h.Plan)
	return r
}

func doPlan(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/ai/route", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPlan_Success(t *testing.T) {
	planner := &stubPlanner{resp: &service.RouteResponse{
		Start:       service.ResolvedPoint{Name: "Hồ Gươm", Lat: 21.0285, Lon: 105.8542, OriginKind: service.OriginExplicitCoords},
		Destination: service.ResolvedPoint{Name: "Công viên Thống Nhất", Lat: 21.0134, Lon: 105.8473, OriginKind: service.OriginInternalMatch},
		ViaPOIs:     []poi.Match{},
		Route:       routing.Result{DistanceMeters: 1830, DurationSeconds: 240},
		Summary:     "1.83 km, 4 phút: Hồ Gươm → Công viên Thống Nhất.",
	}}
	r := newRouteTestRouter(planner)

	w := doPlan(t, r, `{
		"question": "đến công viên Thống Nhất",
		"current_lat": 21.0285,
		"current_lon": 105.8542,
		"model": "llama-3.1-70b"
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp service.RouteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Summary == "" || resp.Start.Name != "Hồ Gươm" {
		t.Errorf("response = %+v", resp)
	}

	if planner.got.Question != "đến công viên Thống Nhất" {
		t.Errorf("question = %q", planner.got.Question)
	}
	if planner.got.Model != "llama-3.1-70b" {
		t.Errorf("model = %q", planner.got.Model)
	}
	if planner.got.Start == nil || planner.got.Start.Lat != 21.0285 {
		t.Errorf("start = %+v", planner.got.Start)
	}
	if planner.got.Destination != nil {
		t.Errorf("destination should be nil without explicit coords, got %+v", planner.got.Destination)
	}
}

func TestPlan_ExplicitDestinationForwarded(t *testing.T) {
	planner := &stubPlanner{resp: &service.RouteResponse{}}
	r := newRouteTestRouter(planner)

	w := doPlan(t, r, `{
		"question": "đi thẳng",
		"current_lat": 21.0, "current_lon": 105.8,
		"destination_lat": 21.1, "destination_lon": 105.9
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if planner.got.Destination == nil || planner.got.Destination.Lon != 105.9 {
		t.Errorf("destination = %+v", planner.got.Destination)
	}
}

func TestPlan_BadRequests(t *testing.T) {
	r := newRouteTestRouter(&stubPlanner{resp: &service.RouteResponse{}})

	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"missing question", `{"current_lat": 21.0, "current_lon": 105.8}`},
		{"blank question", `{"question": "  ", "current_lat": 21.0, "current_lon": 105.8}`},
		{"missing coordinates", `{"question": "q"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := doPlan(t, r, tt.body); w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestPlan_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"missing destination", &service.MissingCoordinatesError{Endpoint: "destination"}, http.StatusUnprocessableEntity},
		{"geocoder unreachable", &service.GeocodeError{Query: "x", Err: errors.New("connection refused")}, http.StatusBadGateway},
		{"route engine failed", &service.RouteEngineError{Err: routing.ErrNoRoute}, http.StatusBadGateway},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"cancelled", context.Canceled, http.StatusGatewayTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouteTestRouter(&stubPlanner{err: tt.err})
			w := doPlan(t, r, `{"question": "q", "current_lat": 21.0, "current_lon": 105.8}`)
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}
