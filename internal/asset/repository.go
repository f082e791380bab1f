package asset

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/assetdesk/assetdesk/internal/shared"
)

// Repository persists assets in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns a full snapshot in primary-key order.
func (r *Repository) List(ctx context.Context) ([]Asset, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT asset_id, name, location, status,
		       last_maintenance, next_maintenance, warranty_expiry, cost
		FROM assets
		ORDER BY asset_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

// Get fetches one asset by id.
func (r *Repository) Get(ctx context.Context, id string) (*Asset, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT asset_id, name, location, status,
		       last_maintenance, next_maintenance, warranty_expiry, cost
		FROM assets
		WHERE asset_id = $1`, id)
	a, err := scanAsset(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Upsert writes a full replace of the row keyed by asset_id. Every column is
// overwritten; there is no partial update.
func (r *Repository) Upsert(ctx context.Context, a Asset) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO assets (asset_id, name, location, status,
		                    last_maintenance, next_maintenance, warranty_expiry, cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (asset_id) DO UPDATE SET
			name = EXCLUDED.name,
			location = EXCLUDED.location,
			status = EXCLUDED.status,
			last_maintenance = EXCLUDED.last_maintenance,
			next_maintenance = EXCLUDED.next_maintenance,
			warranty_expiry = EXCLUDED.warranty_expiry,
			cost = EXCLUDED.cost`,
		a.ID, a.Name, a.Location, string(a.Status),
		a.LastMaintenance, a.NextMaintenance, a.WarrantyExpiry, a.Cost)
	return err
}

// SetStatus updates the status of one asset and reports how many rows were
// touched. An unknown id yields zero rows, not an error.
func (r *Repository) SetStatus(ctx context.Context, id string, status Status) (int64, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE assets SET status = $1 WHERE asset_id = $2`, string(status), id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (Asset, error) {
	var a Asset
	err := row.Scan(&a.ID, &a.Name, &a.Location, &a.Status,
		&a.LastMaintenance, &a.NextMaintenance, &a.WarrantyExpiry, &a.Cost)
	return a, err
}
