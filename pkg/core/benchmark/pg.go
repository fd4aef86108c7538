package benchmark

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGSource reads peer stats from the peer_benchmarks table, which holds
// one JSONB stats blob per NAICS code:
//
//	CREATE TABLE IF NOT EXISTS peer_benchmarks (
//	  naics TEXT PRIMARY KEY,
//	  stats_json JSONB,
//	  updated_at TIMESTAMPTZ
//	);
type PGSource struct {
	pool *pgxpool.Pool
	ctx  context.Context
}

// NewPGSource wraps a connection pool. The pool's lifecycle belongs to
// the caller.
func NewPGSource(pool *pgxpool.Pool) *PGSource {
	return &PGSource{pool: pool, ctx: context.Background()}
}

// PeerStats looks up one NAICS row. Missing rows and query failures
// both degrade to false so callers fall through to other sources.
func (s *PGSource) PeerStats(naics string) (Stats, bool) {
	if s.pool == nil {
		return Stats{}, false
	}

	query := `SELECT stats_json FROM peer_benchmarks WHERE naics = $1`

	var raw []byte
	if err := s.pool.QueryRow(s.ctx, query, naics).Scan(&raw); err != nil {
		return Stats{}, false
	}

	var st Stats
	if err := json.Unmarshal(raw, &st); err != nil {
		return Stats{}, false
	}
	return st, true
}

// Save upserts peer stats for a NAICS code.
func (s *PGSource) Save(ctx context.Context, naics string, st Stats) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO peer_benchmarks (naics, stats_json, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (naics)
		DO UPDATE SET
			stats_json = EXCLUDED.stats_json,
			updated_at = EXCLUDED.updated_at;
	`

	_, err = s.pool.Exec(ctx, query, naics, raw)
	return err
}
