package bus

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/bluele/gcache"

	"github.com/wiggapony0925/track/config"
	"github.com/wiggapony0925/track/errs"
)

const discoveryCacheSize = 256

// Client talks to both bus API families. Discovery responses change rarely
// and are cached with a TTL; telemetry responses are never cached.
type Client struct {
	obaBase    string
	siriBase   string
	key        string
	endpoints  config.BusEndpoints
	httpClient *http.Client
	cache      gcache.Cache
	retries    int
	retryDelay time.Duration
	logger     *slog.Logger
}

// NewClient builds a client from the loaded configuration.
func NewClient(cfg config.AppConfig, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.App.HTTPTimeoutMS) * time.Millisecond}
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		obaBase:    cfg.URLs.BusOBABase,
		siriBase:   cfg.URLs.BusSiriBase,
		key:        cfg.Keys.MTABusKey,
		httpClient: httpClient,
		cache:      gcache.New(discoveryCacheSize).LRU().Expiration(time.Hour).Build(),
		retries:    cfg.App.RetryAttempts,
		retryDelay: time.Duration(cfg.App.RetryDelayMS) * time.Millisecond,
		logger:     logger,
	}
	if cfg.URLs.BusEndpoints != nil {
		c.endpoints = *cfg.URLs.BusEndpoints
	}
	return c
}

// getJSON issues one discovery or telemetry request and decodes the body
// into a generic value. The API key is always sent as a query parameter.
func (c *Client) getJSON(ctx context.Context, base, path string, params url.Values) (any, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("key", c.key)
	full := base + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return nil, &errs.UpstreamError{URL: full, Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &errs.UpstreamError{URL: full, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &errs.UpstreamError{URL: full, StatusCode: resp.StatusCode}
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.UpstreamError{URL: full, Err: err}
	}
	var doc any
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, &errs.UpstreamError{URL: full, Err: err}
	}
	return doc, nil
}
