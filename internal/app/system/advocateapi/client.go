// internal/app/system/advocateapi/client.go
package advocateapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/advocates/internal/app/system/metrics"
	"github.com/dalemusser/advocates/internal/domain/models"
	"go.uber.org/zap"
)

// DefaultPath is the resource path of the advocates listing.
const DefaultPath = "/api/advocates"

// FailedMessage is the message shown to users when a load fails.
const FailedMessage = "Failed to load advocates"

// LoadError describes a failed load. Message is safe to show to users;
// the underlying cause is kept for logs.
type LoadError struct {
	Message    string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error { return e.Err }

// UserMessage returns the message to display for err: the LoadError
// message when err is one, FailedMessage otherwise.
func UserMessage(err error) string {
	var le *LoadError
	if errors.As(err, &le) && le.Message != "" {
		return le.Message
	}
	return FailedMessage
}

// Client loads advocate records from the advocates API.
type Client struct {
	BaseURL string
	Path    string
	HTTP    *http.Client
	Log     *zap.Logger
}

// New constructs a Client. timeout bounds each request at the transport
// level (http.Client.Timeout); zero means no timeout.
func New(baseURL, path string, timeout time.Duration, logger *zap.Logger) *Client {
	if path == "" {
		path = DefaultPath
	}
	return &Client{
		BaseURL: baseURL,
		Path:    path,
		HTTP:    &http.Client{Timeout: timeout},
		Log:     logger,
	}
}

// URL returns the absolute URL of the listing.
func (c *Client) URL() string {
	path := c.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(c.BaseURL, "/") + path
}

// Fetch issues one GET for the listing, bypassing caches, and returns the
// records in the response's data array.
//
// A response whose body is valid JSON but not of the {"data": [...]} shape
// yields an empty list and no error. Non-2xx statuses, transport failures
// and unparseable bodies return a *LoadError. If ctx is canceled the
// context's error is returned as-is.
func (c *Client) Fetch(ctx context.Context) ([]models.Advocate, error) {
	start := time.Now()
	rows, outcome, err := c.fetch(ctx)
	metrics.FetchDuration.Observe(time.Since(start).Seconds())
	metrics.FetchTotal.WithLabelValues(outcome).Inc()

	if err != nil && outcome != metrics.OutcomeCanceled {
		c.Log.Warn("advocates request failed",
			zap.String("url", c.URL()),
			zap.String("outcome", outcome),
			zap.Error(err))
	}
	return rows, err
}

func (c *Client) fetch(ctx context.Context) ([]models.Advocate, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(), nil)
	if err != nil {
		return nil, metrics.OutcomeTransportError, &LoadError{Message: FailedMessage, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache, no-store")
	req.Header.Set("Pragma", "no-cache")

	res, err := c.HTTP.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, metrics.OutcomeCanceled, ctx.Err()
		}
		return nil, metrics.OutcomeTransportError, &LoadError{Message: FailedMessage, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4<<10))
		return nil, metrics.OutcomeHTTPError, &LoadError{
			Message:    FailedMessage,
			StatusCode: res.StatusCode,
			Err:        fmt.Errorf("unexpected status %d", res.StatusCode),
		}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, metrics.OutcomeCanceled, ctx.Err()
		}
		return nil, metrics.OutcomeTransportError, &LoadError{Message: FailedMessage, StatusCode: res.StatusCode, Err: err}
	}

	rows, err := DecodeEnvelope(body)
	if err != nil {
		return nil, metrics.OutcomeParseError, &LoadError{
			Message:    FailedMessage,
			StatusCode: res.StatusCode,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	return rows, metrics.OutcomeOK, nil
}

// Ping checks that the API host answers. Any response below 500 counts as
// reachable; the body is not read.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.URL(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Cache-Control", "no-cache, no-store")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	res.Body.Close()

	if res.StatusCode >= 500 {
		return fmt.Errorf("advocates API returned status %d", res.StatusCode)
	}
	return nil
}
