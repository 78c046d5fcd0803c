// README: Canonical POI categories and constraint value object.
package types

import "strings"

// POIType is the canonical category of a stored point of interest.
// Free-form labels from extraction are mapped onto this set by the
// intent normalizer; unknown labels never reach this type.
type POIType string

const (
	PublicPark        POIType = "PUBLIC_PARK"
	ChargingStation   POIType = "CHARGING_STATION"
	TouristAttraction POIType = "TOURIST_ATTRACTION"
	BicycleRental     POIType = "BICYCLE_RENTAL"
)

// ParsePOIType accepts only canonical category names (case-insensitive).
func ParsePOIType(raw string) (POIType, bool) {
	switch POIType(strings.ToUpper(strings.TrimSpace(raw))) {
	case PublicPark:
		return PublicPark, true
	case ChargingStation:
		return ChargingStation, true
	case TouristAttraction:
		return TouristAttraction, true
	case BicycleRental:
		return BicycleRental, true
	}
	return "", false
}

// ConstraintSpec asks for up to Count POIs of one canonical type on the route.
// Count is always within [1,5] once a spec has been built by the normalizer.
type ConstraintSpec struct {
	POIType POIType `json:"poi_type"`
	Count   int     `json:"count"`
}
