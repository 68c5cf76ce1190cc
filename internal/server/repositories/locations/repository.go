package locations

import (
	"context"

	"github.com/dmitrijs2005/odyssey/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.LocationWithBoundary, error)
	ListMinimal(ctx context.Context) ([]models.LocationSummary, error)
	ListMinimalPaged(ctx context.Context, pageSize int) (models.Pages, error)
	GetByID(ctx context.Context, id int64) (*models.Location, error)
	Insert(ctx context.Context, fields models.LocationFields) (int64, error)
	Update(ctx context.Context, id int64, fields models.LocationFields) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	SetCoordinates(ctx context.Context, id int64, latitude, longitude float64) error
}
