package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/odyssey/internal/common"
	"github.com/dmitrijs2005/odyssey/internal/metrics"
)

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, withQuery("/login", "e", "login_failed"), http.StatusFound)
		return
	}

	token, err := s.auth.Authenticate(r.Context(), r.PostForm.Get("username"), r.PostForm.Get("password"))
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			metrics.AuthLogins.WithLabelValues("invalid").Inc()
		} else {
			metrics.AuthLogins.WithLabelValues("error").Inc()
			s.logger.Error(r.Context(), "login failed", "request_id", RequestIDFrom(r.Context()), "error", err)
		}
		http.Redirect(w, r, withQuery("/login", "e", "login_failed"), http.StatusFound)
		return
	}

	metrics.AuthLogins.WithLabelValues("success").Inc()
	http.SetCookie(w, s.cookies.session(token))
	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Redirect(w, r, withQuery("/register", "e", "missing_fields"), http.StatusFound)
		return
	}

	err := s.auth.Register(r.Context(), r.PostForm.Get("name"), r.PostForm.Get("username"), r.PostForm.Get("password"))

	var code string
	switch {
	case err == nil:
		metrics.AuthRegistrations.WithLabelValues("success").Inc()
		http.Redirect(w, r, withQuery("/login", "s", "signup_success"), http.StatusFound)
		return
	case errors.Is(err, common.ErrRegistrationDisabled):
		code = "signup_disabled"
	case errors.Is(err, common.ErrUsernameTaken):
		code = "username_exists"
	case errors.Is(err, common.ErrValidation):
		code = "missing_fields"
	default:
		metrics.AuthRegistrations.WithLabelValues("error").Inc()
		s.writeError(w, r, err)
		return
	}

	metrics.AuthRegistrations.WithLabelValues(code).Inc()
	http.Redirect(w, r, withQuery("/register", "e", code), http.StatusFound)
}

func (s *HTTPServer) logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, s.cookies.expired())
	http.Redirect(w, r, "/", http.StatusFound)
}
