package httpapi

import (
	"net/http"
)

// PageRenderer turns a named page and its context into a response.
type PageRenderer interface {
	Render(w http.ResponseWriter, r *http.Request, page string, data map[string]any) error
}

// JSONRenderer writes {"page": name, "context": data}.
type JSONRenderer struct{}

func (JSONRenderer) Render(w http.ResponseWriter, r *http.Request, page string, data map[string]any) error {
	return writeJSON(w, http.StatusOK, map[string]any{"page": page, "context": data})
}
