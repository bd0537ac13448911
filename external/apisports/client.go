// Package apisports talks to the api-sports NBA API. All typed fetch helpers
// share the same contract: transient failures are retried per RetryConfig and
// exhausted retries surface as a nil result, not an error, because a window
// with no data and a window the provider would not serve are handled the same
// way downstream.
package apisports

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/courtside/nba-stats-api/internal/platform/logging"
	"github.com/courtside/nba-stats-api/internal/platform/resilience"
	"github.com/courtside/nba-stats-api/internal/usecase"
)

const (
	defaultHost    = "v2.nba.api-sports.io"
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 6 << 20
)

var errAPISportsTransient = crerr.New("api-sports transient failure")

// RetryConfig bounds how hard the client tries before giving up on a
// request.
type RetryConfig struct {
	// MaxAttempts counts the first request too; 3 means two retries.
	MaxAttempts int
	Delay       time.Duration
	Jitter      time.Duration
}

func (c RetryConfig) normalized() RetryConfig {
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 3
	}
	if c.Delay < 0 {
		c.Delay = 0
	}
	if c.Jitter < 0 {
		c.Jitter = 0
	}
	return c
}

func (c RetryConfig) backoff() time.Duration {
	delay := c.Delay
	if c.Jitter > 0 {
		delay += time.Duration(rand.Int63n(int64(c.Jitter) + 1))
	}
	return delay
}

type ClientConfig struct {
	HTTPClient     *http.Client
	Host           string
	APIKey         string
	Timeout        time.Duration
	Retry          RetryConfig
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	httpClient     *http.Client
	host           string
	apiKey         string
	retry          RetryConfig
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
	sleep          func(ctx context.Context, d time.Duration) error
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = defaultTimeout
	}

	host := strings.TrimSpace(cfg.Host)
	host = strings.TrimPrefix(strings.TrimPrefix(host, "https://"), "http://")
	host = strings.TrimRight(host, "/")
	if host == "" {
		host = defaultHost
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		host:           host,
		apiKey:         strings.TrimSpace(cfg.APIKey),
		retry:          cfg.Retry.normalized(),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
		sleep:          sleepWithContext,
	}
}

// Seasons lists the season years the provider knows about.
func (c *Client) Seasons(ctx context.Context) ([]int64, error) {
	items, err := c.fetchList(ctx, "/seasons", nil)
	if err != nil || items == nil {
		return nil, err
	}

	out := make([]int64, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case float64:
			out = append(out, int64(v))
		case int64:
			out = append(out, v)
		case string:
			parsed, parseErr := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if parseErr != nil {
				c.logger.WarnContext(ctx, "skip unparsable season item", "value", v)
				continue
			}
			out = append(out, parsed)
		default:
			c.logger.WarnContext(ctx, "skip season item of unexpected type", "type", fmt.Sprintf("%T", item))
		}
	}
	return out, nil
}

// Leagues returns the raw league items. The provider mixes bare league-name
// strings and full objects in the same list, so callers get both forms.
func (c *Client) Leagues(ctx context.Context) ([]any, error) {
	return c.fetchList(ctx, "/leagues", nil)
}

func (c *Client) Teams(ctx context.Context) ([]usecase.Record, error) {
	return c.fetchRecords(ctx, "/teams", nil)
}

func (c *Client) TeamStatistics(ctx context.Context, teamID int64, season int) ([]usecase.Record, error) {
	return c.fetchRecords(ctx, "/teams/statistics", map[string]string{
		"id":     strconv.FormatInt(teamID, 10),
		"season": strconv.Itoa(season),
	})
}

func (c *Client) Players(ctx context.Context, teamID int64, season int) ([]usecase.Record, error) {
	return c.fetchRecords(ctx, "/players", map[string]string{
		"team":   strconv.FormatInt(teamID, 10),
		"season": strconv.Itoa(season),
	})
}

func (c *Client) PlayerStatistics(ctx context.Context, playerID int64, season int) ([]usecase.Record, error) {
	return c.fetchRecords(ctx, "/players/statistics", map[string]string{
		"id":     strconv.FormatInt(playerID, 10),
		"season": strconv.Itoa(season),
	})
}

// GamesByDate lists games scheduled on date (YYYY-MM-DD).
func (c *Client) GamesByDate(ctx context.Context, date string) ([]usecase.Record, error) {
	return c.fetchRecords(ctx, "/games", map[string]string{"date": date})
}

func (c *Client) GameStatistics(ctx context.Context, gameID int64) ([]usecase.Record, error) {
	return c.fetchRecords(ctx, "/games/statistics", map[string]string{
		"id": strconv.FormatInt(gameID, 10),
	})
}

func (c *Client) Standings(ctx context.Context, leagueID int64, season int) ([]usecase.Record, error) {
	return c.fetchRecords(ctx, "/standings", map[string]string{
		"league": strconv.FormatInt(leagueID, 10),
		"season": strconv.Itoa(season),
	})
}

func (c *Client) fetchRecords(ctx context.Context, path string, query map[string]string) ([]usecase.Record, error) {
	items, err := c.fetchList(ctx, path, query)
	if err != nil || items == nil {
		return nil, err
	}

	out := make([]usecase.Record, 0, len(items))
	for _, item := range items {
		node, ok := item.(map[string]any)
		if !ok {
			c.logger.WarnContext(ctx, "skip non-object provider item", "path", path, "type", fmt.Sprintf("%T", item))
			continue
		}
		out = append(out, usecase.Record(node))
	}
	return out, nil
}

type responseEnvelope struct {
	Results  *int   `json:"results"`
	Response *[]any `json:"response"`
}

// fetchList performs one provider GET. A nil, nil return means the provider
// had nothing usable: either the request kept failing transiently until
// attempts ran out, or the payload carried no response key.
func (c *Client) fetchList(ctx context.Context, path string, query map[string]string) ([]any, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "api-sports circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: stats provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := "https://" + c.host + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isTransient(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.ErrorContext(ctx, "api-sports request exhausted", "url", redactURL(fullURL), "error", err)
		return nil, nil
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	var envelope responseEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		c.logger.WarnContext(ctx, "undecodable provider payload", "path", path, "error", err)
		return nil, nil
	}
	if envelope.Response == nil {
		c.logger.WarnContext(ctx, "provider payload has no response key", "path", path)
		return nil, nil
	}

	return *envelope.Response, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		req.Header.Set("x-rapidapi-host", c.host)
		req.Header.Set("x-rapidapi-key", c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errAPISportsTransient, sanitizeSensitiveText(err.Error(), c.apiKey))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errAPISportsTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errAPISportsTransient, resp.StatusCode, abbreviateBody(raw))
			} else {
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.retry.MaxAttempts {
			break
		}
		c.logger.WarnContext(ctx, "api-sports request retrying",
			"url", redactURL(fullURL),
			"attempt", attempt,
			"max_attempts", c.retry.MaxAttempts,
			"error", lastErr,
		)
		if err := c.sleep(ctx, c.retry.backoff()); err != nil {
			return nil, err
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	return nil, lastErr
}

func sleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isTransient(err error) bool {
	return crerr.Is(err, errAPISportsTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func sanitizeSensitiveText(value, key string) string {
	value = strings.TrimSpace(value)
	if key != "" {
		value = strings.ReplaceAll(value, key, "REDACTED")
	}
	return value
}

func redactURL(rawURL string) string {
	// The api key travels in headers, never in the URL, so the URL itself is
	// safe to log as-is once parsed.
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "unparsable-url"
	}
	return parsed.String()
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}
