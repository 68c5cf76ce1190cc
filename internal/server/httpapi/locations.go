package httpapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/odyssey/internal/server/services"
)

type messageResponse struct {
	Message    string `json:"message"`
	LocationID int64  `json:"location_id,omitempty"`
}

func locationID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		_ = writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Location ID is required"})
		return 0, false
	}
	return id, true
}

func readLocationInput(w http.ResponseWriter, r *http.Request) (services.LocationInput, bool) {
	var in services.LocationInput
	if err := decodeJSON(r, &in); err != nil {
		_ = writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body"})
		return in, false
	}
	return in, true
}

func (s *HTTPServer) listLocations(w http.ResponseWriter, r *http.Request) {
	list, err := s.locations.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, list)
}

func (s *HTTPServer) getLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := locationID(w, r)
	if !ok {
		return
	}
	loc, err := s.locations.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, loc)
}

func (s *HTTPServer) createLocation(w http.ResponseWriter, r *http.Request) {
	in, ok := readLocationInput(w, r)
	if !ok {
		return
	}
	id, err := s.locations.Create(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusCreated, messageResponse{Message: "Location added", LocationID: id})
}

func (s *HTTPServer) editLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := locationID(w, r)
	if !ok {
		return
	}
	in, ok := readLocationInput(w, r)
	if !ok {
		return
	}
	if err := s.locations.Update(r.Context(), id, in); err != nil {
		s.writeError(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, messageResponse{Message: "Location updated"})
}

func (s *HTTPServer) deleteLocation(w http.ResponseWriter, r *http.Request) {
	id, ok := locationID(w, r)
	if !ok {
		return
	}
	if err := s.locations.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, messageResponse{Message: "Location deleted"})
}
