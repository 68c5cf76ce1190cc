package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/odyssey/internal/common"
	"github.com/dmitrijs2005/odyssey/internal/server/auth"
)

type cookieFactory struct {
	secure bool
}

func (f cookieFactory) session(token string) *http.Cookie {
	return &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(auth.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (f cookieFactory) expired() *http.Cookie {
	c := f.session("")
	c.MaxAge = -1
	return c
}
