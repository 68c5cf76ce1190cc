// Package models defines server-side data models persisted in the database.
package models

import "time"

// Metadata is a free-form key/value mapping attached to a location. Its
// shape is owned by the client; the server stores it verbatim.
type Metadata map[string]any

// Location is a curated travel location. Latitude and Longitude are nil when
// unknown.
type Location struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	Metadata    Metadata  `json:"metadata"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasCoordinates reports whether both coordinates are known.
func (l *Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// LocationBoundary is the raw geocoder match stored for a location.
type LocationBoundary struct {
	LocationID int64          `json:"location_id"`
	Boundary   map[string]any `json:"boundary"`
}

// LocationWithBoundary is a listing row: the location joined with its
// optional boundary payload.
type LocationWithBoundary struct {
	Location
	Boundary map[string]any `json:"boundary"`
}

// LocationFields are the user-editable columns of a location.
type LocationFields struct {
	Name        string
	Description string
	Latitude    *float64
	Longitude   *float64
	Metadata    Metadata
}

// LocationSummary is the compact row used by the paged admin listing.
// Timestamps are pre-formatted for display.
type LocationSummary struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Pages maps a 1-based page number to its rows.
type Pages map[int][]LocationSummary
