package geocode

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"greenroute/internal/types"
)

// GoogleClient implements Geocoder with the Google Geocoding API.
type GoogleClient struct {
	client *maps.Client
}

// NewGoogleClient creates a Geocoder backed by the given API key.
func NewGoogleClient(apiKey string) (*GoogleClient, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("google geocode: create client: %w", err)
	}
	return &GoogleClient{client: client}, nil
}

func (c *GoogleClient) Geocode(ctx context.Context, query string) (*Place, error) {
	results, err := c.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  query,
		Language: "vi",
		Region:   "VN",
	})
	if err != nil {
		return nil, fmt.Errorf("google geocode: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	best := results[0]
	name := best.FormattedAddress
	if name == "" {
		name = query
	}
	return &Place{
		Name:     name,
		Position: types.Point{Lat: best.Geometry.Location.Lat, Lon: best.Geometry.Location.Lng},
	}, nil
}
