package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"lightsignal/pkg/core/debt"
	"lightsignal/pkg/core/demo"
	"lightsignal/pkg/core/insights"
	"lightsignal/pkg/core/scenario"
)

// Snapshot is one company's normalized financial state: profile,
// monthly series, and debt accounts. It is the unit of persistence and
// the input every engine runs from.
type Snapshot struct {
	Profile  insights.Profile         `json:"profile"`
	Series   []scenario.MonthlyRecord `json:"series"`
	Accounts []debt.Account           `json:"accounts"`
}

// SnapshotRepo stores company snapshots as one JSONB blob per company.
type SnapshotRepo struct{}

// NewSnapshotRepo creates a new repository instance.
func NewSnapshotRepo() *SnapshotRepo {
	return &SnapshotRepo{}
}

// Save upserts the snapshot keyed by company id.
//
// Schema assumption:
//
//	CREATE TABLE IF NOT EXISTS company_snapshots (
//	  company_id TEXT PRIMARY KEY,
//	  snapshot_json JSONB,
//	  updated_at TIMESTAMPTZ
//	);
func (r *SnapshotRepo) Save(ctx context.Context, companyID string, snap *Snapshot) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	jsonData, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	query := `
		INSERT INTO company_snapshots (company_id, snapshot_json, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (company_id)
		DO UPDATE SET
			snapshot_json = EXCLUDED.snapshot_json,
			updated_at = EXCLUDED.updated_at;
	`

	_, err = pool.Exec(ctx, query, companyID, jsonData, time.Now())
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Load retrieves the snapshot for a company.
func (r *SnapshotRepo) Load(ctx context.Context, companyID string) (*Snapshot, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT snapshot_json FROM company_snapshots WHERE company_id = $1`

	var jsonData []byte
	err := pool.QueryRow(ctx, query, companyID).Scan(&jsonData)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no snapshot found for company %s", companyID)
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(jsonData, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	return &snap, nil
}

// ResolveSnapshot finds a company's state: the seeded demo company
// first, then the snapshot table. False when neither knows the id,
// including when no database pool is up.
func ResolveSnapshot(ctx context.Context, companyID string) (*Snapshot, bool) {
	if f, ok := demo.Load(companyID); ok {
		return &Snapshot{Profile: f.Profile, Series: f.Series, Accounts: f.Accounts}, true
	}
	snap, err := NewSnapshotRepo().Load(ctx, companyID)
	if err != nil {
		return nil, false
	}
	return snap, true
}
