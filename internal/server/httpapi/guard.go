package httpapi

import (
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/odyssey/internal/server/models"
)

const (
	defaultLoginURL   = "/login"
	defaultMessageKey = "unauthorized"
	defaultAdminURL   = "/admin"
)

type policy int

const (
	policyAuthenticated policy = iota
	policyAnonymous
)

// decide reports whether a request with the given identity may proceed
// under p.
func decide(id *models.Identity, p policy) bool {
	switch p {
	case policyAuthenticated:
		return id != nil
	case policyAnonymous:
		return id == nil
	default:
		return false
	}
}

// RequireAuth lets only authenticated requests through. Anonymous ones are
// redirected to loginURL with e=messageKey.
func RequireAuth(loginURL, messageKey string) func(http.Handler) http.Handler {
	if loginURL == "" {
		loginURL = defaultLoginURL
	}
	if messageKey == "" {
		messageKey = defaultMessageKey
	}
	target := withQuery(loginURL, "e", messageKey)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !decide(IdentityFrom(r.Context()), policyAuthenticated) {
				http.Redirect(w, r, target, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireNoAuth keeps signed-in users away from pages like login and
// register by redirecting them to target.
func RequireNoAuth(target string) func(http.Handler) http.Handler {
	if target == "" {
		target = defaultAdminURL
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !decide(IdentityFrom(r.Context()), policyAnonymous) {
				http.Redirect(w, r, target, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func withQuery(path, key, value string) string {
	return path + "?" + url.Values{key: {value}}.Encode()
}
