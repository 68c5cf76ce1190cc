package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dmitrijs2005/odyssey/internal/common"
	"github.com/dmitrijs2005/odyssey/internal/logging"
	"github.com/dmitrijs2005/odyssey/internal/server/models"
	"github.com/dmitrijs2005/odyssey/internal/server/services"
)

const validToken = "good-token"

type errBoomType struct{}

func (errBoomType) Error() string { return "boom" }

var errBoom error = errBoomType{}

func nopLogger() logging.Logger { return logging.NewDiscardLogger() }

type fakeAuth struct {
	authErr     error
	registerErr error
	identity    *models.Identity

	verifyCalls int
	registered  []string
}

func (f *fakeAuth) Authenticate(ctx context.Context, username, password string) (string, error) {
	if f.authErr != nil {
		return "", f.authErr
	}
	return validToken, nil
}

func (f *fakeAuth) Register(ctx context.Context, name, username, password string) error {
	f.registered = append(f.registered, username)
	return f.registerErr
}

func (f *fakeAuth) Verify(ctx context.Context, token string) (*models.Identity, bool) {
	f.verifyCalls++
	if token != validToken {
		return nil, false
	}
	if f.identity != nil {
		return f.identity, true
	}
	return &models.Identity{UserName: "ada", DisplayName: "  Ada Lovelace "}, true
}

type fakeLocations struct {
	createID  int64
	err       error
	pages     models.Pages
	location  *models.Location
	list      []*models.LocationWithBoundary
	lastInput services.LocationInput
	lastID    int64
}

func (f *fakeLocations) Create(ctx context.Context, in services.LocationInput) (int64, error) {
	f.lastInput = in
	return f.createID, f.err
}

func (f *fakeLocations) Update(ctx context.Context, id int64, in services.LocationInput) error {
	f.lastID, f.lastInput = id, in
	return f.err
}

func (f *fakeLocations) Delete(ctx context.Context, id int64) error {
	f.lastID = id
	return f.err
}

func (f *fakeLocations) Get(ctx context.Context, id int64) (*models.Location, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	if f.location == nil {
		return nil, common.ErrorNotFound
	}
	return f.location, nil
}

func (f *fakeLocations) List(ctx context.Context) ([]*models.LocationWithBoundary, error) {
	return f.list, f.err
}

func (f *fakeLocations) ListPaged(ctx context.Context) (models.Pages, error) {
	if f.pages == nil {
		return models.Pages{1: {}}, f.err
	}
	return f.pages, f.err
}

type fakeConfigs struct {
	allow  bool
	err    error
	setErr error
}

func (f *fakeConfigs) AllowRegistration(ctx context.Context) (bool, error) {
	return f.allow, f.err
}

func (f *fakeConfigs) SetAllowRegistration(ctx context.Context, allow bool) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.allow = allow
	return nil
}

func (f *fakeConfigs) All(ctx context.Context) (map[string]any, error) {
	return map[string]any{common.ConfigAllowRegistration: f.allow}, f.err
}

type fixture struct {
	auth      *fakeAuth
	locations *fakeLocations
	configs   *fakeConfigs
	handler   http.Handler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		auth:      &fakeAuth{},
		locations: &fakeLocations{},
		configs:   &fakeConfigs{},
	}
	s := NewHTTPServer(":0", nopLogger(), f.auth, f.locations, f.configs, Options{})
	f.handler = s.Routes()
	return f
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func withSession(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: common.SessionCookieName, Value: validToken})
	return req
}

func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}
