// README: Free-text geocoding provider contract.
package geocode

import (
	"context"

	"greenroute/internal/types"
)

// Place is the first-ranked candidate for a free-text query.
type Place struct {
	Name     string
	Position types.Point
}

// Geocoder resolves a free-text place description to coordinates.
// A nil Place with a nil error means the provider had no usable candidate.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*Place, error)
}
