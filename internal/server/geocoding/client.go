// Package geocoding looks up a place name against a nominatim-style search
// endpoint and returns its coordinates and raw match.
package geocoding

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/odyssey/internal/common"
	"github.com/dmitrijs2005/odyssey/internal/logging"
	"github.com/dmitrijs2005/odyssey/internal/metrics"
	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
)

const (
	DefaultTimeout         = 10 * time.Second
	DefaultBreakerFailures = 5
	DefaultBreakerCooldown = 30 * time.Second

	maxBodyBytes = 32 << 20
)

// Config configures a Client. Zero values fall back to the defaults above.
type Config struct {
	URL             string
	UserAgent       string
	Timeout         time.Duration
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// Result is what a successful lookup yields. Latitude and Longitude are nil
// when the match lacks a usable value. Boundary is the whole first match.
type Result struct {
	Latitude  *float64
	Longitude *float64
	Boundary  map[string]any
}

type Client struct {
	httpClient *http.Client
	url        string
	userAgent  string
	timeout    time.Duration
	cb         *gobreaker.CircuitBreaker[[]map[string]any]
	logger     logging.Logger
}

func NewClient(cfg Config, logger logging.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = DefaultBreakerFailures
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = DefaultBreakerCooldown
	}

	logger = logger.With("module", "geocoding")
	metrics.GeocoderBreakerState.Set(float64(gobreaker.StateClosed))

	cb := gobreaker.NewCircuitBreaker[[]map[string]any](gobreaker.Settings{
		Name:        "geocoder",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn(context.Background(), "circuit breaker state change",
				"breaker", name, "from", from.String(), "to", to.String())
			metrics.GeocoderBreakerState.Set(float64(to))
		},
	})

	return &Client{
		httpClient: &http.Client{},
		url:        cfg.URL,
		userAgent:  cfg.UserAgent,
		timeout:    cfg.Timeout,
		cb:         cb,
		logger:     logger,
	}
}

// Enrich geocodes name for location locationID. The lookup is detached from
// ctx cancellation and bounded only by the client timeout, so a caller that
// goes away mid-request does not abort it.
//
// Every failure wraps common.ErrEnrichment; an empty result list also wraps
// common.ErrNoGeocodeMatch.
func (c *Client) Enrich(ctx context.Context, locationID int64, name string) (*Result, error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	start := time.Now()
	matches, err := c.cb.Execute(func() ([]map[string]any, error) {
		return c.search(ctx, name)
	})
	metrics.GeocoderDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		outcome := "error"
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = "rejected"
		}
		metrics.GeocoderRequests.WithLabelValues(outcome).Inc()
		c.logger.Warn(ctx, "geocoder lookup failed", "location_id", locationID, "error", err)
		return nil, fmt.Errorf("%w: %w", common.ErrEnrichment, err)
	}

	if len(matches) == 0 {
		metrics.GeocoderRequests.WithLabelValues("no_match").Inc()
		return nil, fmt.Errorf("%w: %w: %q", common.ErrEnrichment, common.ErrNoGeocodeMatch, name)
	}

	metrics.GeocoderRequests.WithLabelValues("success").Inc()

	first := matches[0]
	return &Result{
		Latitude:  coordinate(first["lat"]),
		Longitude: coordinate(first["lon"]),
		Boundary:  first,
	}, nil
}

var errMalformedMatch = errors.New("geocoder match is not an object")

func (c *Client) search(ctx context.Context, name string) ([]map[string]any, error) {
	u, err := url.Parse(c.url)
	if err != nil {
		return nil, fmt.Errorf("geocoder url: %w", err)
	}
	q := u.Query()
	q.Set("q", name)
	q.Set("format", "json")
	q.Set("polygon_geojson", "1")
	q.Set("limit", "1")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var matches []map[string]any
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&matches); err != nil {
		return nil, fmt.Errorf("decode geocoder response: %w", err)
	}
	if len(matches) > 0 && matches[0] == nil {
		return nil, errMalformedMatch
	}

	return matches, nil
}

// coordinate accepts the string form nominatim uses as well as plain numbers.
func coordinate(v any) *float64 {
	var (
		f   float64
		err error
	)
	switch n := v.(type) {
	case string:
		f, err = strconv.ParseFloat(n, 64)
	case json.Number:
		f, err = n.Float64()
	case float64:
		f = n
	default:
		return nil
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
