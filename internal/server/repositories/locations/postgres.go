// Package locations provides the PostgreSQL-backed location store: listing,
// paging, lookups and mutations of curated travel locations.
package locations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/odyssey/internal/common"
	"github.com/dmitrijs2005/odyssey/internal/dbx"
	"github.com/dmitrijs2005/odyssey/internal/server/models"
	"github.com/goccy/go-json"
)

// PostgresRepository implements location storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// List returns every location, newest first, with its boundary when one was
// stored.
func (r *PostgresRepository) List(ctx context.Context) ([]*models.LocationWithBoundary, error) {
	query := `
		SELECT l.id, l.name, l.description, l.latitude, l.longitude, l.metadata,
		       l.created_at, l.updated_at, b.boundary
		FROM locations l
		LEFT JOIN locations_boundaries b ON b.location_id = l.id
		ORDER BY l.created_at DESC, l.id DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.LocationWithBoundary, 0)
	for rows.Next() {
		var (
			item     models.LocationWithBoundary
			metadata sql.NullString
			boundary sql.NullString
		)
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Description, &item.Latitude, &item.Longitude, &metadata,
			&item.CreatedAt, &item.UpdatedAt, &boundary,
		); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if item.Metadata, err = decodeMetadata(metadata); err != nil {
			return nil, err
		}
		if item.Boundary, err = decodeObject(boundary); err != nil {
			return nil, fmt.Errorf("decode boundary of location %d: %w", item.ID, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// ListMinimal returns id, name and formatted timestamps of every location,
// newest first.
func (r *PostgresRepository) ListMinimal(ctx context.Context) ([]models.LocationSummary, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM locations
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.LocationSummary, 0)
	for rows.Next() {
		var (
			item                 models.LocationSummary
			createdAt, updatedAt time.Time
		)
		if err := rows.Scan(&item.ID, &item.Name, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		item.CreatedAt = formatTimestamp(createdAt)
		item.UpdatedAt = formatTimestamp(updatedAt)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// ListMinimalPaged is ListMinimal split into pages of pageSize.
func (r *PostgresRepository) ListMinimalPaged(ctx context.Context, pageSize int) (models.Pages, error) {
	items, err := r.ListMinimal(ctx)
	if err != nil {
		return nil, err
	}
	return Paginate(items, pageSize), nil
}

// GetByID returns the location or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Location, error) {
	query := `
		SELECT id, name, description, latitude, longitude, metadata, created_at, updated_at
		FROM locations
		WHERE id = $1
	`
	var (
		item     models.Location
		metadata sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.Description, &item.Latitude, &item.Longitude, &metadata,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if item.Metadata, err = decodeMetadata(metadata); err != nil {
		return nil, err
	}
	return &item, nil
}

// Insert stores a new location and returns its id.
func (r *PostgresRepository) Insert(ctx context.Context, fields models.LocationFields) (int64, error) {
	metadata, err := encodeMetadata(fields.Metadata)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO locations (name, description, latitude, longitude, metadata)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err = r.db.QueryRowContext(ctx, query,
		fields.Name, fields.Description, nullFloat(fields.Latitude), nullFloat(fields.Longitude), metadata,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return id, nil
}

// Update overwrites the editable columns and refreshes updated_at. It
// returns the number of rows affected; 0 means no such location.
func (r *PostgresRepository) Update(ctx context.Context, id int64, fields models.LocationFields) (int64, error) {
	metadata, err := encodeMetadata(fields.Metadata)
	if err != nil {
		return 0, err
	}

	query := `
		UPDATE locations
		SET name = $1, description = $2, latitude = $3, longitude = $4, metadata = $5,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		fields.Name, fields.Description, nullFloat(fields.Latitude), nullFloat(fields.Longitude), metadata, id,
	)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

// Delete removes the location; its boundary goes with it via the FK cascade.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

// SetCoordinates writes both coordinates. It does not touch updated_at.
func (r *PostgresRepository) SetCoordinates(ctx context.Context, id int64, latitude, longitude float64) error {
	query := `UPDATE locations SET latitude = $1, longitude = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, latitude, longitude, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// encodeMetadata maps nil or empty metadata to NULL.
func encodeMetadata(m models.Metadata) (sql.NullString, error) {
	if len(m) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode metadata: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeMetadata(s sql.NullString) (models.Metadata, error) {
	m, err := decodeObject(s)
	if err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return m, nil
}

func decodeObject(s sql.NullString) (map[string]any, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var m map[string]any
	dec := json.NewDecoder(strings.NewReader(s.String))
	dec.UseNumber()
	if err := dec.Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}
