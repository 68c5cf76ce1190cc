package httpapi

import (
	"net/http"
	"strings"
)

func (s *HTTPServer) render(w http.ResponseWriter, r *http.Request, page string, data map[string]any) {
	if err := s.renderer.Render(w, r, page, data); err != nil {
		s.logger.Error(r.Context(), "render page", "page", page, "error", err)
	}
}

func (s *HTTPServer) homePage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "index", map[string]any{
		"logged_in": IdentityFrom(r.Context()) != nil,
	})
}

func (s *HTTPServer) loginPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "login", messageContext(r.URL.Query()))
}

func (s *HTTPServer) registerPage(w http.ResponseWriter, r *http.Request) {
	allow, err := s.configs.AllowRegistration(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := messageContext(r.URL.Query())
	data["allow_registration"] = allow
	s.render(w, r, "register", data)
}

func (s *HTTPServer) adminPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pages, err := s.locations.ListPaged(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	configs, err := s.configs.All(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	data := messageContext(r.URL.Query())

	total := 0
	for _, rows := range pages {
		total += len(rows)
	}
	data["location_count"] = total
	data["locations"] = pages

	if id := IdentityFrom(ctx); id != nil {
		if name := strings.TrimSpace(id.DisplayName); name != "" {
			data["user_fullname"] = name
		}
	}

	for k, v := range configs {
		data[k] = v
	}

	s.render(w, r, "admin", data)
}
