// Package configs is the key/value settings table.
package configs

import (
	"context"

	"github.com/dmitrijs2005/odyssey/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) ([]models.Config, error)
}
