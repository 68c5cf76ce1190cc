package locations

import (
	"time"

	"github.com/dmitrijs2005/odyssey/internal/server/models"
)

// PageSize is the number of rows per admin listing page.
const PageSize = 4

// TimestampLayout is how summary timestamps are rendered, always in UTC.
const TimestampLayout = "Jan 02, 2006, 15:04:05"

// Paginate splits items into consecutive pages of pageSize, numbered from 1,
// preserving order. An empty input yields a single empty page 1. A
// non-positive pageSize falls back to PageSize.
func Paginate(items []models.LocationSummary, pageSize int) models.Pages {
	if pageSize <= 0 {
		pageSize = PageSize
	}

	pages := models.Pages{}
	if len(items) == 0 {
		pages[1] = []models.LocationSummary{}
		return pages
	}

	for i := 0; i < len(items); i += pageSize {
		end := min(i+pageSize, len(items))
		pages[i/pageSize+1] = items[i:end:end]
	}

	return pages
}

// PageCount returns how many pages Paginate produces for n rows.
func PageCount(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	if n == 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
