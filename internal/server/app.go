// Package server wires configuration, storage, services and the HTTP
// surface into one application and runs it until a shutdown signal.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/odyssey/internal/logging"
	"github.com/dmitrijs2005/odyssey/internal/server/config"
	"github.com/dmitrijs2005/odyssey/internal/server/geocoding"
	"github.com/dmitrijs2005/odyssey/internal/server/httpapi"
	"github.com/dmitrijs2005/odyssey/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/odyssey/internal/server/services"
)

// App is built once at startup and handed to every component that needs
// shared state.
type App struct {
	config          *config.Config
	logger          logging.Logger
	db              *sql.DB
	authService     *services.AuthService
	locationService *services.LocationService
	configService   *services.ConfigService
}

// openDB is a seam for tests.
var openDB = func(dsn string) (*sql.DB, error) {
	return sql.Open("pgx", dsn)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migrate error: %w", err)
	}

	return newApp(c, logger, db, rm), nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) *App {
	geocoder := geocoding.NewClient(geocoding.Config{
		URL:       c.GeocoderURL,
		UserAgent: c.GeocoderUserAgent,
		Timeout:   c.GeocoderTimeout,
	}, logger)

	return &App{
		config:          c,
		logger:          logger,
		db:              db,
		authService:     services.NewAuthService(db, rm, c, logger),
		locationService: services.NewLocationService(db, rm, geocoder, logger),
		configService:   services.NewConfigService(db, rm),
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) httpServer() *httpapi.HTTPServer {
	return httpapi.NewHTTPServer(
		app.config.EndpointAddrHTTP,
		app.logger,
		app.authService,
		app.locationService,
		app.configService,
		httpapi.Options{InsecureCookie: app.config.InsecureCookie},
	)
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer().Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled or a shutdown signal arrives.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "close db", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
