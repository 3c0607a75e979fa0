package youtube

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

// newTestClient builds a client with no remote service and a recording sleep,
// for exercising the retry loop directly.
func newTestClient(delays *[]time.Duration) *Client {
	c := &Client{
		maxRetries: defaultMaxRetries,
		baseDelay:  time.Second,
		sleep: func(d time.Duration) {
			*delays = append(*delays, d)
		},
	}
	c.SetNotifier(nil)
	return c
}

func quotaError() error {
	return &googleapi.Error{
		Code: 403,
		Errors: []googleapi.ErrorItem{
			{Reason: "quotaExceeded", Message: "quota exceeded"},
		},
	}
}

func TestWithRetryQuotaThenSuccess(t *testing.T) {
	var delays []time.Duration
	c := newTestClient(&delays)

	calls := 0
	result, err := withRetry(c, "test", func() (string, error) {
		calls++
		if calls <= 4 {
			return "", quotaError()
		}
		return "payload", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "payload", result)
	assert.Equal(t, 5, calls)
	// Four retries, each backoff double the previous.
	assert.Equal(t, []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
	}, delays)
}

func TestWithRetryQuotaGivesUp(t *testing.T) {
	var delays []time.Duration
	c := newTestClient(&delays)

	calls := 0
	_, err := withRetry(c, "test", func() (string, error) {
		calls++
		return "", quotaError()
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuotaExhausted)
	assert.Equal(t, 5, calls, "no sixth attempt after the budget runs out")
	assert.Len(t, delays, 5)
}

func TestWithRetryNotFoundIsTerminal(t *testing.T) {
	var delays []time.Duration
	c := newTestClient(&delays)

	calls := 0
	_, err := withRetry(c, "test", func() (string, error) {
		calls++
		return "", &googleapi.Error{Code: 404}
	})

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, calls, "404 does not consume the retry budget")
	assert.Empty(t, delays)
}

func TestWithRetryFatalNoRetry(t *testing.T) {
	var delays []time.Duration
	c := newTestClient(&delays)

	boom := errors.New("connection reset")
	calls := 0
	_, err := withRetry(c, "test", func() (string, error) {
		calls++
		return "", boom
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	assert.Empty(t, delays)
}

func TestWithRetryCommentsDisabled(t *testing.T) {
	var delays []time.Duration
	c := newTestClient(&delays)

	_, err := withRetry(c, "test", func() (string, error) {
		return "", &googleapi.Error{
			Code: 403,
			Errors: []googleapi.ErrorItem{
				{Reason: "commentsDisabled"},
			},
		}
	})

	assert.ErrorIs(t, err, ErrCommentsDisabled)
	assert.Empty(t, delays, "comments-disabled is not retried")
}

func TestWithRetryNotifications(t *testing.T) {
	var notices []string
	c := &Client{
		maxRetries: 2,
		baseDelay:  time.Second,
		sleep:      func(time.Duration) {},
		notify: func(format string, args ...any) {
			notices = append(notices, fmt.Sprintf(format, args...))
		},
	}

	_, err := withRetry(c, "channels.list(C1)", func() (string, error) {
		return "", quotaError()
	})
	require.Error(t, err)

	// One notice per retry plus the terminal give-up.
	require.Len(t, notices, 3)
	assert.Contains(t, notices[0], "Quota exceeded")
	assert.Contains(t, notices[0], "channels.list(C1)")
	assert.Contains(t, notices[2], "Giving up")
}

func TestClassifiers(t *testing.T) {
	assert.True(t, isQuotaExceeded(fmt.Errorf("wrapped: %w", quotaError())))
	assert.False(t, isQuotaExceeded(&googleapi.Error{Code: 403}))
	assert.False(t, isQuotaExceeded(&googleapi.Error{Code: 500}))
	assert.True(t, isNotFound(&googleapi.Error{Code: 404}))
	assert.False(t, isNotFound(errors.New("404 but untyped")))
}
