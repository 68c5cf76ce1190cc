package boundaries

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/odyssey/internal/dbx"
	"github.com/goccy/go-json"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert serialises boundary as JSON text and stores it for locationID.
func (r *PostgresRepository) Insert(ctx context.Context, locationID int64, boundary map[string]any) error {
	payload, err := json.Marshal(boundary)
	if err != nil {
		return fmt.Errorf("encode boundary: %w", err)
	}

	query := `INSERT INTO locations_boundaries (location_id, boundary) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, locationID, string(payload)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
