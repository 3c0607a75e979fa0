package youtube

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

const (
	// maxResultsPerPage is the YouTube API maximum for list endpoints.
	// Requesting full pages keeps quota consumption at 1 unit per 50 items.
	maxResultsPerPage = 50

	defaultMaxRetries = 5
	defaultBaseDelay  = time.Second
)

var (
	// ErrNotFound reports a remote resource that does not exist (404).
	// Terminal for the single call; callers skip and continue.
	ErrNotFound = errors.New("youtube: resource not found")

	// ErrQuotaExhausted reports that the retry budget ran out on repeated
	// quota-exceeded responses. Treated as fatal by callers.
	ErrQuotaExhausted = errors.New("youtube: quota exhausted")
)

// Notifier receives a human-readable status line for every retry, skip and
// terminal failure at the point it occurs. Printf-shaped so log.Printf fits.
type Notifier func(format string, args ...any)

// Client wraps the YouTube Data API v3 service with bounded-retry backoff.
// All calls are synchronous and block the calling goroutine, including the
// backoff sleeps between quota retries.
type Client struct {
	service    *youtube.Service
	maxRetries int
	baseDelay  time.Duration
	sleep      func(time.Duration)
	notify     Notifier
}

// NewClient builds a Client authenticated with an API key.
func NewClient(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return NewClientWithService(service), nil
}

// NewClientWithService wraps an existing service. Tests use this with a
// service pointed at a local fake endpoint.
func NewClientWithService(service *youtube.Service) *Client {
	return &Client{
		service:    service,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
		sleep:      time.Sleep,
		notify:     log.Printf,
	}
}

// SetNotifier replaces the status sink. A nil notifier silences the client.
func (c *Client) SetNotifier(n Notifier) {
	if n == nil {
		n = func(string, ...any) {}
	}
	c.notify = n
}

// withRetry executes one remote call and classifies the outcome.
//
// Quota-exceeded responses are retried up to c.maxRetries times with
// exponential backoff (baseDelay, doubling per attempt); the thread sleeps
// before each retry. A 404 is terminal immediately and does not consume the
// retry budget. Any other error is fatal with no retry. When the budget runs
// out the call fails with an error wrapping ErrQuotaExhausted rather than
// returning partial data.
func withRetry[T any](c *Client, op string, call func() (T, error)) (T, error) {
	var zero T
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		result, err := call()
		if err == nil {
			return result, nil
		}
		switch {
		case isQuotaExceeded(err):
			delay := c.baseDelay << attempt
			c.notify("Quota exceeded on %s. Retrying in %v (attempt %d/%d)", op, delay, attempt+1, c.maxRetries)
			c.sleep(delay)
		case isNotFound(err):
			c.notify("Resource not found (404) on %s. Skipping.", op)
			return zero, fmt.Errorf("%s: %w", op, ErrNotFound)
		case isCommentsDisabled(err):
			// The caller decides how to report this; it is a clean skip,
			// not an unexpected failure.
			return zero, fmt.Errorf("%s: %w", op, ErrCommentsDisabled)
		default:
			c.notify("Unexpected API error on %s: %v", op, err)
			return zero, fmt.Errorf("%s: %w", op, err)
		}
	}
	c.notify("Giving up on %s after %d retries due to quota issues", op, c.maxRetries)
	return zero, fmt.Errorf("%s: failed after %d retries: %w", op, c.maxRetries, ErrQuotaExhausted)
}

func isQuotaExceeded(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != 403 {
		return false
	}
	for _, e := range apiErr.Errors {
		if e.Reason == "quotaExceeded" || e.Reason == "rateLimitExceeded" {
			return true
		}
	}
	return false
}

func isNotFound(err error) bool {
	var apiErr *googleapi.Error
	return errors.As(err, &apiErr) && apiErr.Code == 404
}

// isCommentsDisabled detects the structured 403 reason YouTube returns when a
// video has comments turned off.
func isCommentsDisabled(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) || apiErr.Code != 403 {
		return false
	}
	for _, e := range apiErr.Errors {
		if e.Reason == "commentsDisabled" {
			return true
		}
	}
	return false
}
