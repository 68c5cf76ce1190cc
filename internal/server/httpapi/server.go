// Package httpapi is the HTTP surface of the server: chi routes, session
// cookie handling, access guards and JSON/page responses.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/odyssey/internal/logging"
	"github.com/dmitrijs2005/odyssey/internal/server/models"
	"github.com/dmitrijs2005/odyssey/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

// Authenticator is the subset of services.AuthService the handlers use.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, name, username, password string) error
	Verify(ctx context.Context, token string) (*models.Identity, bool)
}

// Locations is the subset of services.LocationService the handlers use.
type Locations interface {
	Create(ctx context.Context, in services.LocationInput) (int64, error)
	Update(ctx context.Context, id int64, in services.LocationInput) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*models.Location, error)
	List(ctx context.Context) ([]*models.LocationWithBoundary, error)
	ListPaged(ctx context.Context) (models.Pages, error)
}

// Configs is the subset of services.ConfigService the handlers use.
type Configs interface {
	AllowRegistration(ctx context.Context) (bool, error)
	SetAllowRegistration(ctx context.Context, allow bool) error
	All(ctx context.Context) (map[string]any, error)
}

// Options tune transport details that are not business logic.
type Options struct {
	// InsecureCookie drops the Secure attribute from the session cookie.
	InsecureCookie bool
	// Renderer renders page contexts. Defaults to JSONRenderer.
	Renderer PageRenderer
}

type HTTPServer struct {
	address   string
	logger    logging.Logger
	auth      Authenticator
	locations Locations
	configs   Configs
	cookies   cookieFactory
	renderer  PageRenderer
}

func NewHTTPServer(a string, l logging.Logger, as Authenticator, ls Locations, cs Configs, opts Options) *HTTPServer {
	renderer := opts.Renderer
	if renderer == nil {
		renderer = JSONRenderer{}
	}
	return &HTTPServer{
		address:   a,
		logger:    l.With("module", "http_server"),
		auth:      as,
		locations: ls,
		configs:   cs,
		cookies:   cookieFactory{secure: !opts.InsecureCookie},
		renderer:  renderer,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
