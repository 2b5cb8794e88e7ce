// Package pricingclient is the leasing side's typed client for the pricing
// service boundary. Every failure to obtain a usable answer is reported as
// ErrUpstreamUnavailable so callers refuse to write rather than guess a price.
package pricingclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/logger"
	"github.com/burhanudinera2018/microservice-management-aset-v2/internal/pricingapi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// maxBodyBytes caps how much of a boundary response is read.
const maxBodyBytes = 1 << 20

var (
	// ErrNoCurrentPrice means the pricing service answered that no price is
	// in effect today.
	ErrNoCurrentPrice = errors.New("no current price")
	// ErrUpstreamUnavailable means the pricing service could not be reached
	// or returned something other than a well-formed contract response.
	ErrUpstreamUnavailable = errors.New("pricing service unavailable")
)

// PriceSnapshot is the price in effect at the time of the call.
type PriceSnapshot struct {
	Rate            decimal.Decimal `json:"rate"`
	ID              int64           `json:"id"`
	DesignationYear int             `json:"designation_year"`
}

// PriceOption is one selectable entry of the price history.
type PriceOption struct {
	Label           string          `json:"label"`
	Rate            decimal.Decimal `json:"rate"`
	ID              int64           `json:"id"`
	DesignationYear int             `json:"designation_year"`
}

// Metrics counts boundary calls by endpoint and outcome.
type Metrics struct {
	calls *prometheus.CounterVec
}

// NewMetrics creates and registers the client collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pricing_client_requests_total",
			Help: "Calls to the pricing service by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
	}
	reg.MustRegister(m.calls)
	return m
}

func (m *Metrics) observe(endpoint, outcome string) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(endpoint, outcome).Inc()
}

// Client calls the pricing service over HTTP. Calls are never retried.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
	metrics    *Metrics
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for failed calls.
func WithLogger(log *logger.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithMetrics records call outcomes.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New creates a client for the pricing service at baseURL. timeout bounds
// each call end to end.
func New(baseURL string, timeout time.Duration, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("pricing service base URL is empty")
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("pricing service timeout must be positive")
	}

	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// GetCurrentPrice returns the price in effect today. It returns
// ErrNoCurrentPrice when the service reports none, and an error wrapping
// ErrUpstreamUnavailable for every transport or contract failure.
func (c *Client) GetCurrentPrice(ctx context.Context) (*PriceSnapshot, error) {
	const endpoint = "current"

	status, body, err := c.get(ctx, pricingapi.CurrentPricePath)
	if err != nil {
		return nil, c.fail(endpoint, err)
	}

	if status != http.StatusOK && status != http.StatusNotFound {
		return nil, c.fail(endpoint, fmt.Errorf("unexpected status %d", status))
	}

	var resp pricingapi.CurrentPriceResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, c.fail(endpoint, fmt.Errorf("decode current price (status %d): %w", status, err))
	}

	// A 404 only means "no price" when it carries the contract body; a bare
	// router 404 points at a wrong base URL.
	if status == http.StatusNotFound {
		if resp.ID != nil || resp.Message == nil {
			return nil, c.fail(endpoint, fmt.Errorf("status 404 without a no-current-price body"))
		}
		c.metrics.observe(endpoint, "no_current_price")
		return nil, ErrNoCurrentPrice
	}
	if resp.ID == nil || resp.DesignationYear == nil {
		return nil, c.fail(endpoint, fmt.Errorf("current price response is missing id or designation_year"))
	}
	rate, err := parsePositiveRate(resp.Rate)
	if err != nil {
		return nil, c.fail(endpoint, err)
	}

	c.metrics.observe(endpoint, "ok")
	return &PriceSnapshot{ID: *resp.ID, Rate: rate, DesignationYear: *resp.DesignationYear}, nil
}

// ListHistory returns every price record, newest effective start first, as
// served by the pricing service. An empty history is not an error.
func (c *Client) ListHistory(ctx context.Context) ([]PriceOption, error) {
	const endpoint = "history"

	status, body, err := c.get(ctx, pricingapi.HistoryPath)
	if err != nil {
		return nil, c.fail(endpoint, err)
	}
	if status != http.StatusOK {
		var errResp pricingapi.ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return nil, c.fail(endpoint, fmt.Errorf("status %d: %s: %s", status, errResp.Error, errResp.Details))
		}
		return nil, c.fail(endpoint, fmt.Errorf("unexpected status %d", status))
	}

	var entries []pricingapi.HistoryEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, c.fail(endpoint, fmt.Errorf("decode price history: %w", err))
	}

	options := make([]PriceOption, 0, len(entries))
	for _, e := range entries {
		rate, err := parsePositiveRate(e.Rate)
		if err != nil {
			return nil, c.fail(endpoint, fmt.Errorf("price %d: %w", e.ID, err))
		}
		options = append(options, PriceOption{
			ID:              e.ID,
			Label:           e.Label,
			Rate:            rate,
			DesignationYear: e.DesignationYear,
		})
	}

	c.metrics.observe(endpoint, "ok")
	return options, nil
}

// get performs one GET and returns the status and the (bounded) body.
func (c *Client) get(ctx context.Context, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if id := logger.RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("read %s response: %w", path, err)
	}
	return resp.StatusCode, body, nil
}

func (c *Client) fail(endpoint string, cause error) error {
	c.metrics.observe(endpoint, "unavailable")
	c.log.Warn("Pricing service call failed", map[string]interface{}{
		"endpoint": endpoint,
		"error":    cause.Error(),
	})
	return fmt.Errorf("%w: %s: %w", ErrUpstreamUnavailable, endpoint, cause)
}

func parsePositiveRate(s string) (decimal.Decimal, error) {
	rate, err := pricingapi.ParseRate(s)
	if err != nil {
		return decimal.Zero, err
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("rate must be positive, got %s", s)
	}
	return rate, nil
}
