// README: POI-type alias table and constraint normalization.
package intent

import (
	"strconv"
	"strings"

	"greenroute/internal/types"
)

const (
	minConstraintCount = 1
	maxConstraintCount = 5
)

// typeAliases maps normalized labels (uppercase, whitespace collapsed to
// underscores) to canonical POI types. It covers the English canonical names
// and the Vietnamese synonyms the extraction prompt tends to produce.
var typeAliases = map[string]types.POIType{
	"PUBLIC_PARK":     types.PublicPark,
	"PARK":            types.PublicPark,
	"CONG_VIEN":       types.PublicPark,
	"CONG_VIEN_XANH":  types.PublicPark,
	"GREEN_SPACE":     types.PublicPark,
	"KHONG_GIAN_XANH": types.PublicPark,

	"CHARGING_STATION": types.ChargingStation,
	"TRAM_SAC":         types.ChargingStation,
	"SAC_XE_DIEN":      types.ChargingStation,

	"TOURIST_ATTRACTION": types.TouristAttraction,
	"DIEM_DU_LICH":       types.TouristAttraction,
	"THAM_QUAN":          types.TouristAttraction,

	"BICYCLE_RENTAL": types.BicycleRental,
	"THUE_XE_DAP":    types.BicycleRental,
	"TRAM_XE_DAP":    types.BicycleRental,
}

// NormalizeType maps a free-form label onto a canonical POI type.
// ok is false for empty, ANY/NONE and unrecognized labels; such entries are
// dropped by the caller, never converted into a wildcard.
func NormalizeType(raw string) (types.POIType, bool) {
	key := strings.Join(strings.Fields(strings.ToUpper(strings.TrimSpace(raw))), "_")
	if key == "" || key == "ANY" || key == "NONE" {
		return "", false
	}
	t, ok := typeAliases[key]
	return t, ok
}

// normalizeConstraints converts the loosely-typed constraints array from the
// model into valid specs, preserving input order. Unrecognized types are
// dropped; counts default to 1 and are clamped into [1,5].
func normalizeConstraints(items []any) []types.ConstraintSpec {
	specs := make([]types.ConstraintSpec, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		label, _ := entry["type"].(string)
		t, ok := NormalizeType(label)
		if !ok {
			continue
		}
		specs = append(specs, types.ConstraintSpec{POIType: t, Count: clampCount(entry["count"])})
	}
	return specs
}

func clampCount(v any) int {
	n := 1
	switch c := v.(type) {
	case float64:
		n = int(c)
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(c)); err == nil {
			n = parsed
		}
	}
	if n < minConstraintCount {
		n = minConstraintCount
	}
	if n > maxConstraintCount {
		n = maxConstraintCount
	}
	return n
}
