// README: Deterministic route summary formatting. No external calls.
package service

import (
	"fmt"
	"math"
	"strings"

	"greenroute/internal/modules/poi"
	"greenroute/internal/routing"
)

// fallbackNote is appended verbatim to the summary when the composer had to
// drop the via-points and retry the direct route.
const fallbackNote = " (OSRM gặp lỗi khi chèn POI, đã fallback tuyến thẳng.)"

// buildSummary renders "<km> km, <phút> phút: start → via... → destination."
// with the distance rounded to 2 decimal kilometres and the duration to the
// nearest whole minute. note, when present, is appended as-is.
func buildSummary(startName, destName string, vias []poi.Match, route *routing.Result, note string) string {
	km := route.DistanceMeters / 1000
	minutes := int(math.Round(route.DurationSeconds / 60))

	names := make([]string, 0, len(vias)+2)
	names = append(names, startName)
	for _, v := range vias {
		names = append(names, v.Name)
	}
	names = append(names, destName)

	return fmt.Sprintf("%.2f km, %d phút: %s.%s", km, minutes, strings.Join(names, " → "), note)
}
