// Package client is a Go client for the catalogue API. Reads are memoised in
// a TTL cache and every write drops the cache families it can affect.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/antiques-catalogue/internal/cache"
	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
)

const (
	familyProducts   = "products:"
	familyCategories = "categories:"
	familyPeriods    = "periods:"
	familySettings   = "settings:"
)

// Invalidation lists run after each successful write. A category or period
// change alters the embedded objects of every product that references it.
var (
	productWrites  = []string{familyProducts}
	categoryWrites = []string{familyCategories, familyProducts}
	periodWrites   = []string{familyPeriods, familyProducts}
	settingsWrites = []string{familySettings}
)

type RetryConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{MaxRetries: 3, InitialInterval: 200 * time.Millisecond, MaxInterval: 2 * time.Second}
}

// BreakerConfig trips the circuit once FailureThreshold of at least
// MinRequests attempts inside Interval failed. Only network errors and 5xx
// answers count as failures.
type BreakerConfig struct {
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      cache.Cache
	cacheTTL   time.Duration
	retry      RetryConfig
	breaker    *gobreaker.CircuitBreaker
	breakerCfg *BreakerConfig
	gens       *cache.Generations
	token      string
	logger     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCache replaces the default in-memory cache. A nil cache disables memoising.
func WithCache(store cache.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = store
		c.cacheTTL = ttl
	}
}

func WithRetry(cfg RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

func WithBreaker(cfg BreakerConfig) Option {
	return func(c *Client) { c.breakerCfg = &cfg }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New builds a client for baseURL, e.g. "https://shop.example/api/v1".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cacheTTL:   time.Minute,
		retry:      DefaultRetryConfig(),
		gens:       cache.NewGenerations(),
		logger:     slog.Default(),
	}

	c.cache = cache.NewMemoryCache(c.cacheTTL)

	for _, opt := range opts {
		opt(c)
	}

	breakerCfg := DefaultBreakerConfig()
	if c.breakerCfg != nil {
		breakerCfg = *c.breakerCfg
	}
	c.breaker = newBreaker(breakerCfg, c.logger)

	return c
}

func newBreaker(cfg BreakerConfig, logger *slog.Logger) *gobreaker.CircuitBreaker {
	if logger == nil {
		logger = slog.Default()
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "catalogue-api",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})
}

// SetToken stores the bearer token used for admin calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Close() error {
	if c.cache == nil {
		return nil
	}
	return c.cache.Close()
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    []string
	RetryAfter string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string   `json:"code"`
		Message string   `json:"message"`
		Details []string `json:"details"`
	} `json:"error"`
}

func (c *Client) cachedGet(ctx context.Context, key, path string, out any) error {

	if c.cache != nil {
		hit, err := c.cache.Get(ctx, key, out)
		if err != nil {
			c.logger.Warn("Client cache read failed", slog.String("key", key), slog.Any("error", err))
		} else if hit {
			return nil
		}
	}

	family := familyOf(key)
	seen := c.gens.Current(family)

	if err := c.do(ctx, http.MethodGet, path, nil, out); err != nil {
		return err
	}

	if c.cache != nil {
		// a write that finished while this read was in flight has already
		// invalidated the family; storing now would pin the old answer
		_, err := c.gens.StoreIf(family, seen, func() error {
			return c.cache.Set(ctx, key, out, c.cacheTTL)
		})
		if err != nil {
			c.logger.Warn("Client cache write failed", slog.String("key", key), slog.Any("error", err))
		}
	}

	return nil
}

// familyOf returns the "<family>:" prefix of a cache key.
func familyOf(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		return key[:i+1]
	}
	return key
}

// mutate performs a write and then drops the listed cache families.
func (c *Client) mutate(ctx context.Context, method, path string, body, out any, families []string) error {

	if err := c.do(ctx, method, path, body, out); err != nil {
		return err
	}

	c.invalidate(ctx, families...)
	return nil
}

func (c *Client) invalidate(ctx context.Context, families ...string) {
	if c.cache == nil {
		return
	}

	for _, family := range families {
		c.gens.Bump(family)

		if err := c.cache.DeletePrefix(ctx, family); err != nil {
			c.logger.Warn("Client cache invalidation failed", slog.String("family", family), slog.Any("error", err))
		}
	}
}

// do sends one logical request. Network errors and 5xx answers are retried
// with capped exponential backoff; 4xx answers are returned at once.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	var (
		status int
		data   []byte
	)

	operation := func() error {

		res, err := c.breaker.Execute(func() (interface{}, error) {
			return c.send(ctx, method, path, payload)
		})
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(fmt.Errorf("request %s %s: %w", method, path, err))
			}
			return err
		}

		r := res.(*reply)
		if r.status >= http.StatusBadRequest {
			return backoff.Permanent(r.apiError())
		}

		status, data = r.status, r.body
		return nil
	}

	notify := func(err error, wait time.Duration) {
		c.logger.Warn("Retrying request",
			slog.String("method", method),
			slog.String("path", path),
			slog.Duration("wait", wait),
			slog.Any("error", err))
	}

	if err := backoff.RetryNotify(operation, c.newBackOff(ctx), notify); err != nil {
		return err
	}

	if out == nil || status == http.StatusNoContent || len(data) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}

	return nil
}

// reply is a completed exchange the breaker counts as a success.
type reply struct {
	status int
	header http.Header
	body   []byte
}

func (r *reply) apiError() *APIError {
	return decodeError(r.status, r.header, r.body)
}

// send performs a single attempt. Network failures and 5xx answers are
// returned as errors; anything else is a reply.
func (c *Client) send(ctx context.Context, method, path string, payload []byte) (*reply, error) {

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, decodeError(resp.StatusCode, resp.Header, raw)
	}

	return &reply{status: resp.StatusCode, header: resp.Header, body: raw}, nil
}

func (c *Client) newBackOff(ctx context.Context) backoff.BackOff {

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = c.retry.InitialInterval
	exp.MaxInterval = c.retry.MaxInterval
	exp.MaxElapsedTime = 0
	exp.Reset()

	retries := max(c.retry.MaxRetries, 0)

	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(retries)), ctx)
}

func decodeError(status int, header http.Header, raw []byte) *APIError {

	apiErr := &APIError{
		StatusCode: status,
		RetryAfter: header.Get("Retry-After"),
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error != nil {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
		apiErr.Details = env.Error.Details
	}

	return apiErr
}
