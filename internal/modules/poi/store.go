// README: POI store backed by Postgres/PostGIS with an optional Redis GEO index.
package poi

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"greenroute/internal/types"
)

// geoSearchRadiusKm bounds the Redis GEOSEARCH; the index covers one metro
// area, so anything farther is not a sensible via-point anyway.
const geoSearchRadiusKm = 100

type Store struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

// NewStore returns a Store. redis may be nil; nearest lookups then always go
// through PostGIS.
func NewStore(db *pgxpool.Pool, redis *redis.Client) *Store {
	return &Store{db: db, redis: redis}
}

// FindByName returns active records whose name contains label
// (case-insensitive), most recently created first.
func (s *Store) FindByName(ctx context.Context, label string, limit int) ([]Record, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, COALESCE(address, ''), COALESCE(description, ''), location_type,
		       ST_Y(location::geometry) AS lat, ST_X(location::geometry) AS lon
		FROM green_locations
		WHERE is_active AND name ILIKE $1
		ORDER BY id DESC
		LIMIT $2
	`, "%"+label+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("poi: find by name: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// FindNearest returns up to limit records of type t ordered by ascending
// geodesic distance from start. The Redis GEO index is the fast path; a cold
// or unavailable index falls back to the PostGIS query.
func (s *Store) FindNearest(ctx context.Context, t types.POIType, start types.Point, limit int) ([]Match, error) {
	if s.redis != nil {
		matches, err := s.nearestFromGeoIndex(ctx, t, start, limit)
		if err == nil && len(matches) > 0 {
			return matches, nil
		}
	}
	return s.nearestFromPostGIS(ctx, t, start, limit)
}

func (s *Store) nearestFromPostGIS(ctx context.Context, t types.POIType, start types.Point, limit int) ([]Match, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, location_type,
		       ST_Y(location::geometry) AS lat, ST_X(location::geometry) AS lon,
		       ST_Distance(
		           location::geography,
		           ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography
		       ) AS distance_m
		FROM green_locations
		WHERE is_active AND location_type = $3
		ORDER BY distance_m
		LIMIT $4
	`, start.Lon, start.Lat, string(t), limit)
	if err != nil {
		return nil, fmt.Errorf("poi: find nearest: %w", err)
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		var m Match
		var typ string
		if err := rows.Scan(&m.ID, &m.Name, &typ, &m.Lat, &m.Lon, &m.DistanceMeters); err != nil {
			return nil, fmt.Errorf("poi: scan match: %w", err)
		}
		m.Type = types.POIType(typ)
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *Store) nearestFromGeoIndex(ctx context.Context, t types.POIType, start types.Point, limit int) ([]Match, error) {
	locs, err := s.redis.GeoSearchLocation(ctx, geoKey(t), &redis.GeoSearchLocationQuery{
		GeoSearchQuery: redis.GeoSearchQuery{
			Longitude:  start.Lon,
			Latitude:   start.Lat,
			Radius:     geoSearchRadiusKm,
			RadiusUnit: "km",
			Sort:       "ASC",
			Count:      limit,
		},
		WithCoord: true,
	}).Result()
	if err != nil || len(locs) == 0 {
		return nil, err
	}

	ids := make([]int64, 0, len(locs))
	for _, loc := range locs {
		id, err := strconv.ParseInt(loc.Name, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, name FROM green_locations WHERE is_active AND id = ANY($1)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("poi: hydrate geo matches: %w", err)
	}
	defer rows.Close()

	names := make(map[int64]string, len(ids))
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("poi: scan geo match: %w", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Keep the GEOSEARCH ascending order; recompute the distance from the
	// indexed coordinates so all paths report metres the same way.
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		id, err := strconv.ParseInt(loc.Name, 10, 64)
		if err != nil {
			continue
		}
		name, ok := names[id]
		if !ok {
			continue
		}
		matches = append(matches, Match{
			ID:             id,
			Name:           name,
			Lat:            loc.Latitude,
			Lon:            loc.Longitude,
			Type:           t,
			DistanceMeters: haversineMeters(start.Lat, start.Lon, loc.Latitude, loc.Longitude),
		})
	}
	return matches, nil
}

// Create inserts a record and feeds the GEO index when one is configured.
func (s *Store) Create(ctx context.Context, rec Record) (Record, error) {
	err := s.db.QueryRow(ctx, `
		INSERT INTO green_locations (name, address, description, location_type, location, is_active)
		VALUES ($1, $2, $3, $4, ST_SetSRID(ST_MakePoint($5, $6), 4326), TRUE)
		RETURNING id
	`, rec.Name, rec.Address, rec.Description, string(rec.Type), rec.Position.Lon, rec.Position.Lat).Scan(&rec.ID)
	if err != nil {
		return Record{}, fmt.Errorf("poi: create: %w", err)
	}

	if s.redis != nil {
		if err := s.geoAdd(ctx, rec); err != nil {
			return rec, fmt.Errorf("poi: index created record: %w", err)
		}
	}
	return rec, nil
}

// List returns active records, newest first, optionally filtered by type.
func (s *Store) List(ctx context.Context, t *types.POIType, limit int) ([]Record, error) {
	query := `
		SELECT id, name, COALESCE(address, ''), COALESCE(description, ''), location_type,
		       ST_Y(location::geometry) AS lat, ST_X(location::geometry) AS lon
		FROM green_locations
		WHERE is_active`
	args := []any{}
	if t != nil {
		query += ` AND location_type = $1 ORDER BY id DESC LIMIT $2`
		args = append(args, string(*t), limit)
	} else {
		query += ` ORDER BY id DESC LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("poi: list: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// WarmGeoIndex loads every active record into the per-type Redis GEO sets.
// Returns the number of indexed records.
func (s *Store) WarmGeoIndex(ctx context.Context) (int, error) {
	if s.redis == nil {
		return 0, nil
	}
	records, err := s.List(ctx, nil, 100000)
	if err != nil {
		return 0, err
	}
	for _, rec := range records {
		if err := s.geoAdd(ctx, rec); err != nil {
			return 0, fmt.Errorf("poi: warm geo index: %w", err)
		}
	}
	return len(records), nil
}

func (s *Store) geoAdd(ctx context.Context, rec Record) error {
	return s.redis.GeoAdd(ctx, geoKey(rec.Type), &redis.GeoLocation{
		Name:      strconv.FormatInt(rec.ID, 10),
		Longitude: rec.Position.Lon,
		Latitude:  rec.Position.Lat,
	}).Err()
}

func geoKey(t types.POIType) string {
	return "poi:geo:" + string(t)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanRecords(rows pgxRows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var rec Record
		var typ string
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Address, &rec.Description, &typ,
			&rec.Position.Lat, &rec.Position.Lon); err != nil {
			return nil, fmt.Errorf("poi: scan record: %w", err)
		}
		rec.Type = types.POIType(typ)
		records = append(records, rec)
	}
	return records, rows.Err()
}
