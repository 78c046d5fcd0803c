package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"greenroute/internal/types"
)

const defaultNominatimSearchURL = "https://nominatim.openstreetmap.org/search"

// NominatimClient queries an OpenStreetMap Nominatim instance.
type NominatimClient struct {
	searchURL string
	userAgent string
	client    *http.Client
}

// NewNominatimClient accepts a base URL with or without the /search suffix;
// empty means the public OSM instance. Nominatim rejects requests without an
// identifying User-Agent, so one is mandatory.
func NewNominatimClient(baseURL, userAgent string) *NominatimClient {
	return &NominatimClient{
		searchURL: nominatimSearchURL(baseURL),
		userAgent: userAgent,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// nominatimPlace mirrors the relevant parts of the OSM search payload.
// Coordinates are serialised as strings by the API.
type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

func (c *NominatimClient) Geocode(ctx context.Context, query string) (*Place, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("addressdetails", "0")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("nominatim: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nominatim: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("nominatim: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim: status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var places []nominatimPlace
	if err := json.Unmarshal(body, &places); err != nil {
		return nil, fmt.Errorf("nominatim: unmarshal response: %w", err)
	}
	if len(places) == 0 {
		return nil, nil
	}

	best := places[0]
	lat, latErr := strconv.ParseFloat(best.Lat, 64)
	lon, lonErr := strconv.ParseFloat(best.Lon, 64)
	if latErr != nil || lonErr != nil {
		return nil, nil
	}

	name := best.DisplayName
	if name == "" {
		name = query
	}
	return &Place{Name: name, Position: types.Point{Lat: lat, Lon: lon}}, nil
}

// nominatimSearchURL ensures the URL points at the /search endpoint.
func nominatimSearchURL(base string) string {
	if base == "" {
		return defaultNominatimSearchURL
	}
	cleaned := strings.TrimRight(strings.TrimSpace(base), "/")
	if strings.HasSuffix(strings.ToLower(cleaned), "/search") {
		return cleaned
	}
	return cleaned + "/search"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
