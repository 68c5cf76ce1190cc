package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/odyssey/internal/common"
	"github.com/dmitrijs2005/odyssey/internal/dbx"
	"github.com/dmitrijs2005/odyssey/internal/logging"
	"github.com/dmitrijs2005/odyssey/internal/metrics"
	"github.com/dmitrijs2005/odyssey/internal/server/geocoding"
	"github.com/dmitrijs2005/odyssey/internal/server/models"
	"github.com/dmitrijs2005/odyssey/internal/server/repositories/locations"
	"github.com/dmitrijs2005/odyssey/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/odyssey/internal/validation"
)

// Enricher looks up coordinates and a boundary for a freshly created location.
type Enricher interface {
	Enrich(ctx context.Context, locationID int64, name string) (*geocoding.Result, error)
}

// LocationInput is the client payload for create and edit.
type LocationInput struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Latitude    *float64        `json:"latitude" validate:"omitempty,latitude"`
	Longitude   *float64        `json:"longitude" validate:"omitempty,longitude"`
	Metadata    models.Metadata `json:"metadata"`
}

func (in LocationInput) normalize() (models.LocationFields, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validation.ValidateStruct(&in); err != nil {
		return models.LocationFields{}, err
	}
	return models.LocationFields{
		Name:        in.Name,
		Description: in.Description,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Metadata:    in.Metadata,
	}, nil
}

type LocationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	enricher    Enricher
	logger      logging.Logger
}

func NewLocationService(db *sql.DB, m repomanager.RepositoryManager, enricher Enricher, logger logging.Logger) *LocationService {
	return &LocationService{
		db:          db,
		repomanager: m,
		enricher:    enricher,
		logger:      logger.With("module", "locations"),
	}
}

// Create inserts a location and, when either coordinate is missing, tries
// to fill it in from the geocoder. The insert is committed before the lookup
// starts; an enrichment failure leaves the row as inserted and Create still
// returns its id.
func (s *LocationService) Create(ctx context.Context, in LocationInput) (int64, error) {
	fields, err := in.normalize()
	if err != nil {
		return 0, err
	}

	id, err := s.repomanager.Locations(s.db).Insert(ctx, fields)
	if err != nil {
		return 0, fmt.Errorf("error creating location: %w", err)
	}

	if fields.Latitude != nil && fields.Longitude != nil {
		return id, nil
	}

	res, err := s.enricher.Enrich(ctx, id, fields.Name)
	if err != nil {
		metrics.EnrichmentFailures.WithLabelValues("geocode").Inc()
		s.logger.Warn(ctx, "location enrichment skipped", "location_id", id, "error", err)
		return id, nil
	}

	if err := s.applyEnrichment(context.WithoutCancel(ctx), id, fields, res); err != nil {
		metrics.EnrichmentFailures.WithLabelValues("persist").Inc()
		s.logger.Error(ctx, "location enrichment not saved", "location_id", id, "error", err)
	}

	return id, nil
}

// applyEnrichment stores the boundary and, when both coordinates are known,
// the coordinates, in one transaction. Geocoded values win over supplied ones.
func (s *LocationService) applyEnrichment(ctx context.Context, id int64, fields models.LocationFields, res *geocoding.Result) error {
	lat, lon := fields.Latitude, fields.Longitude
	if res.Latitude != nil {
		lat = res.Latitude
	}
	if res.Longitude != nil {
		lon = res.Longitude
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Boundaries(tx).Insert(ctx, id, res.Boundary); err != nil {
			return err
		}
		if lat != nil && lon != nil {
			return s.repomanager.Locations(tx).SetCoordinates(ctx, id, *lat, *lon)
		}
		return nil
	})
}

// Update overwrites a location. It never re-runs enrichment.
func (s *LocationService) Update(ctx context.Context, id int64, in LocationInput) error {
	fields, err := in.normalize()
	if err != nil {
		return err
	}

	n, err := s.repomanager.Locations(s.db).Update(ctx, id, fields)
	if err != nil {
		return fmt.Errorf("error updating location: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes a location and, through the FK cascade, its boundary.
func (s *LocationService) Delete(ctx context.Context, id int64) error {
	n, err := s.repomanager.Locations(s.db).Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("error deleting location: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (s *LocationService) Get(ctx context.Context, id int64) (*models.Location, error) {
	loc, err := s.repomanager.Locations(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error reading location: %w", err)
	}
	return loc, nil
}

func (s *LocationService) List(ctx context.Context) ([]*models.LocationWithBoundary, error) {
	return s.repomanager.Locations(s.db).List(ctx)
}

// ListPaged returns the admin listing split into pages of locations.PageSize.
func (s *LocationService) ListPaged(ctx context.Context) (models.Pages, error) {
	return s.repomanager.Locations(s.db).ListMinimalPaged(ctx, locations.PageSize)
}
