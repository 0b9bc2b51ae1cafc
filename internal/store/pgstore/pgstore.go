// Package pgstore is the real FeatureStore backed by PostGIS: features
// live in a table with a geography/MultiLineString column, and candidate
// lookups use ST_DWithin.
package pgstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paulmach/orb/encoding/wkb"
	"go.uber.org/zap"

	"github.com/roadlink/conflate/internal/nameset"
	"github.com/roadlink/conflate/internal/store"
	"github.com/roadlink/conflate/internal/types"
)

// Store is a PostGIS-backed store.FeatureStore. Table holds the unqualified
// table name (e.g. "road_features") configured at construction time.
type Store struct {
	pool   *pgxpool.Pool
	table  string
	ctx    *types.Context
	logger *zap.Logger
}

// Open connects to dsn and returns a Store targeting table, pinging once to
// fail fast on bad connection strings.
func Open(ctx context.Context, dsn, table string, nameCtx *types.Context, logger *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgstore: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgstore: ping: %w", err)
	}
	return &Store{pool: pool, table: table, ctx: nameCtx, logger: logger}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Get(ctx context.Context, id int64) (store.Feature, bool, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(
		`SELECT id, properties, ST_AsBinary(geom), names FROM %s WHERE id = $1`, s.table), id)

	var (
		propsJSON []byte
		geomBytes []byte
		namesJSON []byte
	)
	var fid int64
	if err := row.Scan(&fid, &propsJSON, &geomBytes, &namesJSON); err != nil {
		if err.Error() == "no rows in result set" {
			return store.Feature{}, false, nil
		}
		return store.Feature{}, false, fmt.Errorf("pgstore: get %d: %w", id, err)
	}
	f, err := s.decode(fid, propsJSON, geomBytes, namesJSON)
	if err != nil {
		return store.Feature{}, false, err
	}
	return f, true, nil
}

func (s *Store) IDs(ctx context.Context) ([]int64, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`SELECT id FROM %s ORDER BY id`, s.table))
	if err != nil {
		return nil, fmt.Errorf("pgstore: ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("pgstore: scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) Nearest(ctx context.Context, f store.Feature, bufferMeters float64, limit int) ([]store.Candidate, error) {
	geomWKB, err := wkb.Marshal(f.Geometry)
	if err != nil {
		return nil, fmt.Errorf("pgstore: marshal geometry: %w", err)
	}

	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT id, properties, ST_AsBinary(geom), names
		FROM %s
		WHERE id != $1
		  AND ST_DWithin(geom::geography, ST_GeomFromWKB($2, 4326)::geography, $3)
		ORDER BY geom::geography <-> ST_GeomFromWKB($2, 4326)::geography
		LIMIT $4`, s.table), f.ID, geomWKB, bufferMeters, limit)
	if err != nil {
		return nil, fmt.Errorf("pgstore: nearest: %w", err)
	}
	defer rows.Close()

	var out []store.Candidate
	for rows.Next() {
		var (
			id        int64
			propsJSON []byte
			geomBytes []byte
			namesJSON []byte
		)
		if err := rows.Scan(&id, &propsJSON, &geomBytes, &namesJSON); err != nil {
			return nil, fmt.Errorf("pgstore: scan candidate: %w", err)
		}
		cf, err := s.decode(id, propsJSON, geomBytes, namesJSON)
		if err != nil {
			s.logger.Warn("pgstore: skipping unparseable candidate", zap.Int64("id", id), zap.Error(err))
			continue
		}
		out = append(out, store.Candidate{Feature: cf})
	}
	return out, rows.Err()
}

func (s *Store) Insert(ctx context.Context, f store.Feature) (int64, error) {
	propsJSON, err := json.Marshal(f.Properties)
	if err != nil {
		return 0, fmt.Errorf("pgstore: marshal properties: %w", err)
	}
	geomWKB, err := wkb.Marshal(f.Geometry)
	if err != nil {
		return 0, fmt.Errorf("pgstore: marshal geometry: %w", err)
	}
	namesJSON, err := json.Marshal(f.Names.Names)
	if err != nil {
		return 0, fmt.Errorf("pgstore: marshal names: %w", err)
	}

	var id int64
	err = s.pool.QueryRow(ctx, fmt.Sprintf(
		`INSERT INTO %s (properties, geom, names) VALUES ($1, ST_GeomFromWKB($2, 4326), $3) RETURNING id`,
		s.table), propsJSON, geomWKB, namesJSON).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("pgstore: insert: %w", err)
	}
	return id, nil
}

func (s *Store) Update(ctx context.Context, id int64, patch map[string]any) error {
	patchJSON, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("pgstore: marshal patch: %w", err)
	}
	tag, err := s.pool.Exec(ctx, fmt.Sprintf(
		`UPDATE %s SET properties = properties || $2::jsonb WHERE id = $1`, s.table), id, patchJSON)
	if err != nil {
		return fmt.Errorf("pgstore: update %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pgstore: update %d: no such row", id)
	}
	return nil
}

func (s *Store) decode(id int64, propsJSON, geomBytes, namesJSON []byte) (store.Feature, error) {
	var props map[string]any
	if len(propsJSON) > 0 {
		if err := json.Unmarshal(propsJSON, &props); err != nil {
			return store.Feature{}, fmt.Errorf("pgstore: unmarshal properties %d: %w", id, err)
		}
	}

	geom, err := wkb.Unmarshal(geomBytes)
	if err != nil {
		return store.Feature{}, fmt.Errorf("pgstore: unmarshal geometry %d: %w", id, err)
	}

	var rawNames []types.Name
	var ns nameset.NameSet
	if len(namesJSON) > 0 {
		if err := json.Unmarshal(namesJSON, &rawNames); err != nil {
			return store.Feature{}, fmt.Errorf("pgstore: unmarshal names %d: %w", id, err)
		}
		ns = nameset.New(rawNames, types.SourceNetwork, s.ctx)
	}

	return store.Feature{ID: id, Properties: props, Geometry: geom, Names: ns}, nil
}

var _ store.FeatureStore = (*Store)(nil)
