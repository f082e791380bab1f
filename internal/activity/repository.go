package activity

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines persistence operations for the activity log.
type Repository interface {
	Insert(ctx context.Context, assetID, action, username, loggedAt string) (int64, error)
	List(ctx context.Context) ([]Entry, error)
}

// PGRepository implements Repository using PostgreSQL. log_id is a BIGSERIAL,
// which provides the monotonic id assignment.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// Insert appends one row and returns its assigned id.
func (r *PGRepository) Insert(ctx context.Context, assetID, action, username, loggedAt string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO activity_logs (asset_id, action, username, logged_at) VALUES ($1, $2, $3, $4) RETURNING log_id`,
		assetID, action, username, loggedAt,
	).Scan(&id)
	return id, err
}

// List returns every entry in insertion order.
func (r *PGRepository) List(ctx context.Context) ([]Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT log_id, asset_id, action, username, logged_at FROM activity_logs ORDER BY log_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.LogID, &e.AssetID, &e.Action, &e.Username, &e.LoggedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

var _ Repository = (*PGRepository)(nil)
