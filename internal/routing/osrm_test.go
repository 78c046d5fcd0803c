// README: Tests for the OSRM client.
package routing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"greenroute/internal/types"
)

func TestDrivingRoute_Success(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": "Ok",
			"routes": [{
				"distance": 5321.7,
				"duration": 712.4,
				"geometry": {"type": "LineString", "coordinates": [[105.8542, 21.0285], [105.8473, 21.0134]]}
			}]
		}`))
	}))
	defer srv.Close()

	c := NewOSRMClient(srv.URL)
	res, err := c.DrivingRoute(context.Background(), []types.Point{
		{Lat: 21.0285, Lon: 105.8542},
		{Lat: 21.0134, Lon: 105.8473},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.DistanceMeters != 5321.7 || res.DurationSeconds != 712.4 {
		t.Errorf("result = %+v", res)
	}
	if res.Geometry.Type != "LineString" || len(res.Geometry.Coordinates) != 2 {
		t.Errorf("geometry = %+v", res.Geometry)
	}
	// OSRM wants lon,lat pairs joined by semicolons
	if gotPath != "/route/v1/driving/105.8542,21.0285;105.8473,21.0134" {
		t.Errorf("path = %q", gotPath)
	}
	if gotQuery != "overview=full&geometries=geojson" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestDrivingRoute_NoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code": "NoRoute", "routes": []}`))
	}))
	defer srv.Close()

	c := NewOSRMClient(srv.URL)
	_, err := c.DrivingRoute(context.Background(), []types.Point{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}})
	if !errors.Is(err, ErrNoRoute) {
		t.Fatalf("expected ErrNoRoute, got %v", err)
	}
}

func TestDrivingRoute_OkCodeButEmptyRoutes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code": "Ok", "routes": []}`))
	}))
	defer srv.Close()

	c := NewOSRMClient(srv.URL)
	_, err := c.DrivingRoute(context.Background(), []types.Point{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}})
	if !errors.Is(err, ErrNoRoute) {
		t.Fatalf("expected ErrNoRoute, got %v", err)
	}
}

func TestDrivingRoute_TooFewPoints(t *testing.T) {
	c := NewOSRMClient("http://unused.invalid")
	if _, err := c.DrivingRoute(context.Background(), []types.Point{{Lat: 1, Lon: 1}}); err == nil {
		t.Fatal("expected error for a single coordinate")
	}
}

func TestDrivingRoute_UndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "<html>gateway timeout</html>", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewOSRMClient(srv.URL)
	_, err := c.DrivingRoute(context.Background(), []types.Point{{Lat: 1, Lon: 1}, {Lat: 2, Lon: 2}})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrNoRoute) {
		t.Fatalf("transport failure must not be ErrNoRoute: %v", err)
	}
}

func TestCoordPath(t *testing.T) {
	got := coordPath([]types.Point{
		{Lat: 21.0285, Lon: 105.8542},
		{Lat: 10.5, Lon: 106},
	})
	want := "105.8542,21.0285;106,10.5"
	if got != want {
		t.Errorf("coordPath = %q, want %q", got, want)
	}
}
