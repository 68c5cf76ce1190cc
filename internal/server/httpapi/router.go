package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Routes builds the chi router with the full middleware chain.
func (s *HTTPServer) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(s.authContext)

	authed := RequireAuth(defaultLoginURL, defaultMessageKey)
	anonymous := RequireNoAuth(defaultAdminURL)

	r.Get("/", s.homePage)

	r.With(anonymous).Get("/login", s.loginPage)
	r.Post("/login", s.login)
	r.With(anonymous).Get("/register", s.registerPage)
	r.Post("/register", s.register)
	r.Get("/logout", s.logout)

	r.With(authed).Get("/admin", s.adminPage)

	r.Route("/locations", func(r chi.Router) {
		r.Get("/", s.listLocations)
		r.Get("/{id}", s.getLocation)

		r.Group(func(r chi.Router) {
			r.Use(authed)
			r.Post("/create", s.createLocation)
			r.Post("/edit/{id}", s.editLocation)
			r.Put("/edit/{id}", s.editLocation)
			r.Delete("/delete/{id}", s.deleteLocation)
			r.Post("/delete/{id}", s.deleteLocation)
		})
	})

	r.With(authed).Post("/config/allow-registration", s.toggleAllowRegistration)

	r.Handle("/metrics", promhttp.Handler())

	return r
}
