// README: Tests for the green location handlers.
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"greenroute/internal/modules/poi"
	"greenroute/internal/types"
)

type stubPOIService struct {
	records []poi.Record
	err     error

	gotType  *types.POIType
	gotLimit int
}

func (s *stubPOIService) Create(_ context.Context, rec poi.Record) (poi.Record, error) {
	if s.err != nil {
		return poi.Record{}, s.err
	}
	rec.ID = 1
	return rec, nil
}

func (s *stubPOIService) List(_ context.Context, t *types.POIType, limit int) ([]poi.Record, error) {
	s.gotType = t
	s.gotLimit = limit
	return s.records, s.err
}

func newLocationTestRouter(svc POIService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewLocationHandler(svc, zap.NewNop())
	r.GET("/api/locations", h.List)
	r.POST("/api/locations", h.Create)
	return r
}

func TestCreateLocation_Success(t *testing.T) {
	r := newLocationTestRouter(&stubPOIService{})

	body := `{
		"name": "Công viên Cầu Giấy",
		"location_type": "public_park",
		"lat": 21.0362,
		"lon": 105.7906
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/locations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var rec poi.Record
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if rec.ID != 1 || rec.Type != types.PublicPark {
		t.Errorf("record = %+v", rec)
	}
}

func TestCreateLocation_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  error
	}{
		{"invalid json", `{`, nil},
		{"missing name", `{"location_type": "PUBLIC_PARK", "lat": 1, "lon": 1}`, nil},
		{"missing coordinates", `{"name": "x", "location_type": "PUBLIC_PARK"}`, nil},
		{"service validation", `{"name": "x", "location_type": "PUBLIC_PARK", "lat": 1, "lon": 1}`,
			fmt.Errorf("%w: test", poi.ErrBadRequest)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newLocationTestRouter(&stubPOIService{err: tt.err})
			req := httptest.NewRequest(http.MethodPost, "/api/locations", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestListLocations(t *testing.T) {
	svc := &stubPOIService{records: []poi.Record{
		{ID: 2, Name: "Công viên Thống Nhất", Type: types.PublicPark},
		{ID: 1, Name: "Trạm sạc Vincom", Type: types.ChargingStation},
	}}
	r := newLocationTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/locations?location_type=public_park&limit=10", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Locations []poi.Record `json:"locations"`
		Count     int          `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Count != 2 || len(resp.Locations) != 2 {
		t.Errorf("response = %+v", resp)
	}
	if svc.gotLimit != 10 {
		t.Errorf("limit = %d", svc.gotLimit)
	}
}

func TestListLocations_BadParams(t *testing.T) {
	tests := []string{
		"/api/locations?location_type=HOSPITAL",
		"/api/locations?limit=abc",
		"/api/locations?limit=-1",
	}
	for _, target := range tests {
		r := newLocationTestRouter(&stubPOIService{})
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d", target, w.Code)
		}
	}
}
