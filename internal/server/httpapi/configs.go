package httpapi

import (
	"net/http"
)

type allowRegistrationRequest struct {
	Allow bool `json:"allow"`
}

type allowRegistrationResponse struct {
	Status            string `json:"status"`
	AllowRegistration bool   `json:"allow_registration"`
}

func (s *HTTPServer) toggleAllowRegistration(w http.ResponseWriter, r *http.Request) {
	var req allowRegistrationRequest
	if err := decodeJSON(r, &req); err != nil {
		_ = writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body"})
		return
	}
	if err := s.configs.SetAllowRegistration(r.Context(), req.Allow); err != nil {
		s.writeError(w, r, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, allowRegistrationResponse{Status: "success", AllowRegistration: req.Allow})
}
