// Package insight is the lookup core: it routes entities to HYAS Insight
// endpoints, runs the requests under a concurrency cap and normalizes the
// answers into UI-ready results.
package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/imroc/req/v3"

	"github.com/tbckr/insight/internal/apperr"
	"github.com/tbckr/insight/internal/blocklist"
	"github.com/tbckr/insight/internal/geo"
	"github.com/tbckr/insight/internal/worker"
)

const (
	// DefaultBaseURL is the HYAS Insight external API.
	DefaultBaseURL = "https://insight.hyas.com/api/ext"
	// DefaultUIURL is the web UI that result links point to.
	DefaultUIURL = "https://apps.hyas.com"
	// MaxParallelLookups bounds in-flight requests during a batch lookup.
	MaxParallelLookups = 10

	// Name tags every log record of the service.
	Name = "hyas-insight"
)

// GeoLocator resolves an IP address offline. *geo.Reader satisfies it.
type GeoLocator interface {
	Locate(ip string) (*geo.Location, error)
}

// Service runs batch and detail lookups against HYAS Insight. A Service is
// long-lived: it owns the blocklist pattern caches shared across calls.
type Service struct {
	client  *req.Client
	logger  *slog.Logger
	filter  *blocklist.Filter
	pool    *worker.Pool
	baseURL string
	uiURL   string
	geo     GeoLocator
}

// Option customises a Service.
type Option func(*Service)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(s *Service) {
		if u != "" {
			s.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithGeoLocator enables the offline localGeo detail lookup.
func WithGeoLocator(g GeoLocator) Option {
	return func(s *Service) { s.geo = g }
}

// NewService creates a Service issuing requests through client.
func NewService(client *req.Client, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		client:  client,
		logger:  logger.With("service", Name),
		filter:  blocklist.NewFilter(logger),
		pool:    worker.NewPool(MaxParallelLookups, logger),
		baseURL: DefaultBaseURL,
		uiURL:   DefaultUIURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// execute issues t and returns the normalized body, nil for "no data".
func (s *Service) execute(ctx context.Context, apiKey string, t Task) (any, error) {
	s.logger.Debug("request",
		"endpoint", string(t.Endpoint),
		"entity", t.Entity.Value,
		"filters", t.Body.AppliedFilters,
	)

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("X-API-Key", apiKey).
		SetHeader("Accept", "application/json").
		SetBodyJsonMarshal(t.Body).
		Post(s.baseURL + string(t.Endpoint))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s %s: %s", apperr.ErrRequestFailed, t.Endpoint, t.Entity.Value, err)
	}
	if resp.Response == nil {
		return nil, fmt.Errorf("%w: %s %s: no response", apperr.ErrRequestFailed, t.Endpoint, t.Entity.Value)
	}

	body, err := normalize(resp.StatusCode, resp.Bytes(), t.PageSize)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", t.Endpoint, t.Entity.Value, err)
	}
	return body, nil
}
