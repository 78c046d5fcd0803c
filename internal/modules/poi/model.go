// README: Stored POI records and distance-annotated matches.
package poi

import "greenroute/internal/types"

// Record is one row of the green_locations table.
type Record struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Address     string        `json:"address,omitempty"`
	Description string        `json:"description,omitempty"`
	Type        types.POIType `json:"poi_type"`
	Position    types.Point   `json:"position"`
}

// Match is a POI selected for a route, annotated with its geodesic distance
// from the resolved start point. Slices of Match are ordered by ascending
// distance; that ordering is the visiting order.
type Match struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	Lat            float64       `json:"lat"`
	Lon            float64       `json:"lon"`
	Type           types.POIType `json:"poi_type"`
	DistanceMeters float64       `json:"distance_meters"`
}
