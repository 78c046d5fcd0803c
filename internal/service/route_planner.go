// README: Route planning pipeline; chains intent extraction, location
// resolution, POI selection and route composition with explicit degradation.
package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"greenroute/internal/geocode"
	"greenroute/internal/modules/intent"
	"greenroute/internal/modules/poi"
	"greenroute/internal/routing"
	"greenroute/internal/types"
)

// Default endpoint display names when neither a label nor a record name is known.
const (
	defaultStartName = "Điểm xuất phát"
	defaultDestName  = "Điểm đến"
)

// OriginKind records how an endpoint's coordinates were obtained.
type OriginKind string

const (
	OriginExplicitCoords OriginKind = "explicit_coords"
	OriginInternalMatch  OriginKind = "internal_match"
	OriginGeocoded       OriginKind = "geocoded"
)

// ResolvedPoint is a concrete endpoint. Created once per request, never mutated.
type ResolvedPoint struct {
	Name       string     `json:"name"`
	Lat        float64    `json:"lat"`
	Lon        float64    `json:"lon"`
	OriginKind OriginKind `json:"origin_kind"`
}

// RouteResponse is the complete pipeline output. Either every field is
// populated consistently (fallback included) or the pipeline returned an
// error instead; partial responses are never produced.
type RouteResponse struct {
	Start       ResolvedPoint  `json:"start"`
	Destination ResolvedPoint  `json:"destination"`
	ViaPOIs     []poi.Match    `json:"via_pois"`
	Route       routing.Result `json:"route"`
	Summary     string         `json:"summary"`
}

// PlanRequest carries the caller's question and known positions.
type PlanRequest struct {
	Question    string
	Start       *types.Point // caller device position; wins over any label
	Destination *types.Point // explicit destination coordinates, optional
	Model       string       // completion model override, optional
}

// Narrow interfaces over the concrete services keep each stage
// independently testable.

type IntentExtractor interface {
	Extract(ctx context.Context, question, modelOverride string) (intent.TravelIntent, error)
}

type POIFinder interface {
	FindByName(ctx context.Context, label string) (*poi.Record, error)
	NearestForConstraints(ctx context.Context, start types.Point, cons []types.ConstraintSpec) ([]poi.Match, error)
}

type RouteEngine interface {
	DrivingRoute(ctx context.Context, points []types.Point) (*routing.Result, error)
}

// RoutePlanner orchestrates the pipeline. Stages run strictly in sequence;
// only the per-constraint POI lookups inside the finder fan out.
type RoutePlanner struct {
	extractor IntentExtractor
	pois      POIFinder
	geocoder  geocode.Geocoder
	engine    RouteEngine
	log       *zap.Logger
}

func NewRoutePlanner(extractor IntentExtractor, pois POIFinder, geocoder geocode.Geocoder, engine RouteEngine, log *zap.Logger) *RoutePlanner {
	return &RoutePlanner{
		extractor: extractor,
		pois:      pois,
		geocoder:  geocoder,
		engine:    engine,
		log:       log,
	}
}

// PlanRoute runs the full pipeline for one request.
func (p *RoutePlanner) PlanRoute(ctx context.Context, req PlanRequest) (*RouteResponse, error) {
	ti, err := p.extractor.Extract(ctx, req.Question, req.Model)
	if err != nil {
		return nil, fmt.Errorf("intent extraction: %w", err)
	}

	start, err := p.resolveStart(ctx, req.Start, ti.StartLabel)
	if err != nil {
		return nil, err
	}
	dest, err := p.resolveDestination(ctx, req.Destination, ti.DestinationLabel)
	if err != nil {
		return nil, err
	}

	vias, err := p.pois.NearestForConstraints(ctx, types.Point{Lat: start.Lat, Lon: start.Lon}, ti.Constraints)
	if err != nil {
		return nil, err
	}
	if vias == nil {
		vias = []poi.Match{}
	}

	route, vias, note, err := p.compose(ctx, start, dest, vias)
	if err != nil {
		return nil, err
	}

	return &RouteResponse{
		Start:       start,
		Destination: dest,
		ViaPOIs:     vias,
		Route:       *route,
		Summary:     buildSummary(start.Name, dest.Name, vias, route, note),
	}, nil
}

// resolveStart applies the start precedence: explicit caller coordinates win
// outright, then an internal name match. The start is never geocoded; it is
// assumed known from the caller's device position.
func (p *RoutePlanner) resolveStart(ctx context.Context, coords *types.Point, label string) (ResolvedPoint, error) {
	name := label
	if name == "" {
		name = defaultStartName
	}

	if coords != nil {
		return ResolvedPoint{Name: name, Lat: coords.Lat, Lon: coords.Lon, OriginKind: OriginExplicitCoords}, nil
	}

	if label != "" {
		rec, err := p.pois.FindByName(ctx, label)
		if err != nil {
			return ResolvedPoint{}, err
		}
		if rec != nil {
			return ResolvedPoint{Name: rec.Name, Lat: rec.Position.Lat, Lon: rec.Position.Lon, OriginKind: OriginInternalMatch}, nil
		}
	}

	return ResolvedPoint{}, &MissingCoordinatesError{Endpoint: "start"}
}

// resolveDestination applies the destination precedence: explicit caller
// coordinates, internal name match, then a geocoder lookup on the label.
func (p *RoutePlanner) resolveDestination(ctx context.Context, coords *types.Point, label string) (ResolvedPoint, error) {
	name := label
	if name == "" {
		name = defaultDestName
	}

	if coords != nil {
		return ResolvedPoint{Name: name, Lat: coords.Lat, Lon: coords.Lon, OriginKind: OriginExplicitCoords}, nil
	}

	if label != "" {
		rec, err := p.pois.FindByName(ctx, label)
		if err != nil {
			return ResolvedPoint{}, err
		}
		if rec != nil {
			return ResolvedPoint{Name: rec.Name, Lat: rec.Position.Lat, Lon: rec.Position.Lon, OriginKind: OriginInternalMatch}, nil
		}

		place, err := p.geocoder.Geocode(ctx, label)
		if err != nil {
			return ResolvedPoint{}, &GeocodeError{Query: label, Err: err}
		}
		if place != nil {
			return ResolvedPoint{Name: place.Name, Lat: place.Position.Lat, Lon: place.Position.Lon, OriginKind: OriginGeocoded}, nil
		}
	}

	return ResolvedPoint{}, &MissingCoordinatesError{Endpoint: "destination"}
}

// compose drives the primary/fallback state machine of the routing engine.
// PRIMARY tries the full sequence; on failure with via-points present,
// FALLBACK retries start→destination only, clears the via list and reports
// the degradation note. A FALLBACK failure, or a PRIMARY failure without
// via-points, is terminal.
func (p *RoutePlanner) compose(ctx context.Context, start, dest ResolvedPoint, vias []poi.Match) (*routing.Result, []poi.Match, string, error) {
	full := make([]types.Point, 0, len(vias)+2)
	full = append(full, types.Point{Lat: start.Lat, Lon: start.Lon})
	for _, v := range vias {
		full = append(full, types.Point{Lat: v.Lat, Lon: v.Lon})
	}
	full = append(full, types.Point{Lat: dest.Lat, Lon: dest.Lon})

	route, err := p.engine.DrivingRoute(ctx, full)
	if err == nil {
		return route, vias, "", nil
	}
	if len(vias) == 0 || ctx.Err() != nil {
		return nil, nil, "", &RouteEngineError{Err: err}
	}

	p.log.Warn("full route failed, retrying without via points",
		zap.Int("via_count", len(vias)),
		zap.Error(err))

	direct := []types.Point{
		{Lat: start.Lat, Lon: start.Lon},
		{Lat: dest.Lat, Lon: dest.Lon},
	}
	route, err = p.engine.DrivingRoute(ctx, direct)
	if err != nil {
		return nil, nil, "", &RouteEngineError{Err: err}
	}
	return route, []poi.Match{}, fallbackNote, nil
}
