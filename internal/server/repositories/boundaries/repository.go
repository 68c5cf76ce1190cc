// Package boundaries stores the raw geocoder match recorded for a location.
package boundaries

import "context"

type Repository interface {
	Insert(ctx context.Context, locationID int64, boundary map[string]any) error
}
