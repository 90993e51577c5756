package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Checker-Finance/pricefeeds/internal/rate"
)

func newExec(retryMax int, client *http.Client) *Executor {
	return New(zap.NewNop(), nil, client, retryMax, "test")
}

// countingHandler returns failStatus for the first failCount calls, then 200 with body.
func countingHandler(failCount int, failStatus int, successBody []byte) (http.Handler, *atomic.Int32) {
	var n atomic.Int32
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if int(n.Add(1)) <= failCount {
			w.WriteHeader(failStatus)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(successBody)
	}), &n
}

// ─── Basic success ────────────────────────────────────────────────────────────

func TestGet_SuccessFirstAttempt(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`callback({})`))
	}))
	defer srv.Close()

	body, err := newExec(0, srv.Client()).Get(context.Background(), srv.URL, "k")
	require.NoError(t, err)
	assert.Equal(t, "callback({})", string(body))
}

// ─── Retry behaviour ──────────────────────────────────────────────────────────

func TestGet_Retries5xxThenSucceeds(t *testing.T) {
	h, count := countingHandler(1, http.StatusServiceUnavailable, []byte("ok"))
	srv := httptest.NewServer(h)
	defer srv.Close()

	body, err := newExec(2, srv.Client()).Get(context.Background(), srv.URL, "k")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count.Load(), "expected exactly 2 attempts")
	assert.Equal(t, "ok", string(body))
}

func TestGet_ZeroRetriesSingleAttempt(t *testing.T) {
	h, count := countingHandler(5, http.StatusBadGateway, nil)
	srv := httptest.NewServer(h)
	defer srv.Close()

	_, err := newExec(0, srv.Client()).Get(context.Background(), srv.URL, "k")
	require.Error(t, err)
	assert.EqualValues(t, 1, count.Load())
	assert.Contains(t, err.Error(), "after 1 attempts")
}

func TestGet_4xxNotRetried(t *testing.T) {
	h, count := countingHandler(5, http.StatusNotFound, nil)
	srv := httptest.NewServer(h)
	defer srv.Close()

	_, err := newExec(3, srv.Client()).Get(context.Background(), srv.URL+"/gone.min.js", "k")

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Status)
	assert.EqualValues(t, 1, count.Load())
}

func TestGet_ExhaustAllRetries(t *testing.T) {
	h, count := countingHandler(10, http.StatusInternalServerError, nil)
	srv := httptest.NewServer(h)
	defer srv.Close()

	_, err := newExec(2, srv.Client()).Get(context.Background(), srv.URL, "k")
	require.Error(t, err)
	assert.EqualValues(t, 3, count.Load())
}

// ─── Context and rate limiting ────────────────────────────────────────────────

func TestGet_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newExec(3, srv.Client()).Get(ctx, srv.URL, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGet_RateLimitWaitFails(t *testing.T) {
	mgr := rate.NewManager(rate.Config{RequestsPerSecond: 0.01, Burst: 1})
	_ = mgr.GetLimiter("k").Allow()

	exec := New(zap.NewNop(), mgr, nil, 0, "test")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := exec.Get(ctx, "http://127.0.0.1:1/never", "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit wait")
}
