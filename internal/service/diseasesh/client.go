package diseasesh

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"CovidPulse/internal/domain/models"
	drepo "CovidPulse/internal/domain/repository"
	xhttp "CovidPulse/pkg/http"
	xlogger "CovidPulse/pkg/logger"
)

const (
	EndpointCountry      = "country"
	EndpointSubdivisions = "subdivisions"
)

// Config points the client at the two statistics endpoints.
type Config struct {
	CountryURL        string
	SubdivisionsURL   string
	SubdivisionsField string
}

// Client implements a StatsSource backed by the disease.sh REST API.
type Client struct {
	cfg     Config
	http    *xhttp.Client
	metrics drepo.Metrics
	logger  *xlogger.Logger
	now     func() time.Time
}

// New creates a disease.sh StatsSource.
func New(cfg Config, hc *xhttp.Client, metrics drepo.Metrics, logger *xlogger.Logger) *Client {
	return &Client{cfg: cfg, http: hc, metrics: metrics, logger: logger, now: time.Now}
}

var _ drepo.StatsSource = (*Client)(nil)

// Fetch reads the country aggregate and then the subdivision list. If either
// request fails nothing is returned.
func (c *Client) Fetch(ctx context.Context) (*models.FetchResult, error) {
	var country models.Country
	if err := c.get(ctx, EndpointCountry, c.cfg.CountryURL, &country); err != nil {
		return nil, err
	}

	var envelope map[string]json.RawMessage
	if err := c.get(ctx, EndpointSubdivisions, c.cfg.SubdivisionsURL, &envelope); err != nil {
		return nil, err
	}
	raw, ok := envelope[c.cfg.SubdivisionsField]
	if !ok {
		return nil, c.fail(EndpointSubdivisions, models.FetchDecode,
			fmt.Errorf("field %q missing from response", c.cfg.SubdivisionsField))
	}
	var subs []models.Subdivision
	if err := json.Unmarshal(raw, &subs); err != nil {
		return nil, c.fail(EndpointSubdivisions, models.FetchDecode,
			fmt.Errorf("field %q: %w", c.cfg.SubdivisionsField, err))
	}

	c.logger.Debug("fetched statistics",
		xlogger.String("country", country.Name),
		xlogger.Int("subdivisions", len(subs)))
	return &models.FetchResult{Country: country, Subdivisions: subs, FetchedAt: c.now()}, nil
}

func (c *Client) get(ctx context.Context, endpoint, url string, dest interface{}) error {
	start := time.Now()
	err := c.http.GetJSON(ctx, url, dest)
	c.metrics.RecordLatency("fetch_"+endpoint, time.Since(start).Seconds())
	if err != nil {
		return c.fail(endpoint, classify(err), err)
	}
	c.metrics.RecordFetch(endpoint, "ok")
	return nil
}

func (c *Client) fail(endpoint string, kind models.FetchErrorKind, err error) error {
	c.metrics.RecordFetch(endpoint, string(kind))
	return &models.FetchError{Endpoint: endpoint, Kind: kind, Err: err}
}

func classify(err error) models.FetchErrorKind {
	var (
		se *xhttp.StatusError
		de *xhttp.DecodeError
		ne net.Error
	)
	switch {
	case errors.As(err, &se):
		return models.FetchStatus
	case errors.As(err, &de):
		return models.FetchDecode
	case errors.Is(err, context.DeadlineExceeded):
		return models.FetchTimeout
	case errors.As(err, &ne) && ne.Timeout():
		return models.FetchTimeout
	default:
		return models.FetchTransport
	}
}
