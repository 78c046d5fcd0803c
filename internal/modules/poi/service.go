// README: POI service; name lookups and constraint-ordered nearest selection
// with concurrent fan-out.
package poi

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"greenroute/internal/types"
)

var ErrBadRequest = errors.New("poi: invalid record")

const defaultListLimit = 100

// storeAPI is the store surface the service depends on; *Store satisfies it
// and tests substitute fakes.
type storeAPI interface {
	FindByName(ctx context.Context, label string, limit int) ([]Record, error)
	FindNearest(ctx context.Context, t types.POIType, start types.Point, limit int) ([]Match, error)
	Create(ctx context.Context, rec Record) (Record, error)
	List(ctx context.Context, t *types.POIType, limit int) ([]Record, error)
}

type Service struct {
	store storeAPI
	log   *zap.Logger
}

func NewService(store *Store, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

// FindByName returns the best internal match for a label: the most recently
// created record whose name contains the label. nil when nothing matches.
func (s *Service) FindByName(ctx context.Context, label string) (*Record, error) {
	records, err := s.store.FindByName(ctx, label, 1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// NearestForConstraints selects via-points for a route. Per-constraint
// lookups are issued concurrently (they only depend on the resolved start
// point) and joined; results are concatenated in constraint order and then
// globally re-sorted by ascending distance from start, which fixes the
// visiting order. A constraint with fewer stored POIs than requested simply
// yields fewer matches.
func (s *Service) NearestForConstraints(ctx context.Context, start types.Point, cons []types.ConstraintSpec) ([]Match, error) {
	if len(cons) == 0 {
		return []Match{}, nil
	}

	perConstraint := make([][]Match, len(cons))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range cons {
		g.Go(func() error {
			matches, err := s.store.FindNearest(gctx, c.POIType, start, c.Count)
			if err != nil {
				return fmt.Errorf("nearest %s: %w", c.POIType, err)
			}
			perConstraint[i] = matches
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]Match, 0, len(cons))
	for _, matches := range perConstraint {
		merged = append(merged, matches...)
	}
	sortByDistance(merged, func(m Match) float64 { return m.DistanceMeters })

	s.log.Debug("selected via points",
		zap.Int("constraints", len(cons)),
		zap.Int("matches", len(merged)))
	return merged, nil
}

// Create validates and stores a new POI record.
func (s *Service) Create(ctx context.Context, rec Record) (Record, error) {
	if rec.Name == "" {
		return Record{}, fmt.Errorf("%w: missing name", ErrBadRequest)
	}
	if _, ok := types.ParsePOIType(string(rec.Type)); !ok {
		return Record{}, fmt.Errorf("%w: unknown poi type %q", ErrBadRequest, rec.Type)
	}
	if rec.Position.Lat < -90 || rec.Position.Lat > 90 || rec.Position.Lon < -180 || rec.Position.Lon > 180 {
		return Record{}, fmt.Errorf("%w: coordinates out of range", ErrBadRequest)
	}
	return s.store.Create(ctx, rec)
}

// List returns stored POIs, optionally filtered by canonical type.
func (s *Service) List(ctx context.Context, t *types.POIType, limit int) ([]Record, error) {
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}
	records, err := s.store.List(ctx, t, limit)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}
