// README: OSRM routing engine client (driving profile, GeoJSON geometry).
package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"greenroute/internal/types"
)

// ErrNoRoute reports that the engine answered but found no drivable path
// through the requested coordinate sequence.
var ErrNoRoute = errors.New("routing: no route found")

// Geometry is a GeoJSON LineString.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates [][]float64 `json:"coordinates"`
}

// Result is one computed route. Geometry holds at least the two endpoints'
// worth of path on success.
type Result struct {
	DistanceMeters  float64  `json:"distance_meters"`
	DurationSeconds float64  `json:"duration_seconds"`
	Geometry        Geometry `json:"geometry"`
}

type OSRMClient struct {
	baseURL string
	client  *http.Client
}

func NewOSRMClient(baseURL string) *OSRMClient {
	return &OSRMClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64  `json:"distance"`
		Duration float64  `json:"duration"`
		Geometry Geometry `json:"geometry"`
	} `json:"routes"`
}

// DrivingRoute requests a driving route through the ordered points with full
// GeoJSON geometry. Points must contain at least start and destination.
func (c *OSRMClient) DrivingRoute(ctx context.Context, points []types.Point) (*Result, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("routing: need at least 2 coordinates, got %d", len(points))
	}

	u := fmt.Sprintf("%s/route/v1/driving/%s?overview=full&geometries=geojson", c.baseURL, coordPath(points))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("osrm: build request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("osrm: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("osrm: read response: %w", err)
	}

	// OSRM reports "no route" both as a 200 with a non-Ok code and as a 4xx;
	// decode the payload first and only fail on undecodable bodies.
	var or osrmResponse
	if err := json.Unmarshal(body, &or); err != nil {
		return nil, fmt.Errorf("osrm: status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	if or.Code != "Ok" || len(or.Routes) == 0 {
		return nil, fmt.Errorf("%w (code %q)", ErrNoRoute, or.Code)
	}

	best := or.Routes[0]
	return &Result{
		DistanceMeters:  best.Distance,
		DurationSeconds: best.Duration,
		Geometry:        best.Geometry,
	}, nil
}

// coordPath renders points in OSRM's longitude,latitude;... order.
func coordPath(points []types.Point) string {
	parts := make([]string, len(points))
	for i, p := range points {
		parts[i] = strconv.FormatFloat(p.Lon, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat, 'f', -1, 64)
	}
	return strings.Join(parts, ";")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
