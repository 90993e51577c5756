package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Checker-Finance/pricefeeds/internal/httpclient"
	"github.com/Checker-Finance/pricefeeds/internal/rate"
)

func newTestClient(t *testing.T, base string) *Client {
	t.Helper()
	exec := httpclient.New(zap.NewNop(), rate.NewManager(rate.Config{RequestsPerSecond: 100, Burst: 10}), nil, 0, "feed")
	c, err := NewClient(base, exec, zap.NewNop())
	require.NoError(t, err)
	return c
}

func TestClient_URL(t *testing.T) {
	c := newTestClient(t, "http://a0.awsstatic.com/pricing/1")
	assert.Equal(t, "http://a0.awsstatic.com/pricing/1/ec2/linux-od.min.js", c.URL("ec2/linux-od.min.js"))
}

func TestNewClient_RejectsRelative(t *testing.T) {
	_, err := NewClient("pricing/1/", nil, zap.NewNop())
	assert.Error(t, err)
}

func TestClient_FetchAndLoad(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`callback({config:{regions:[{region:"us-west-2"}]}})`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL+"/pricing/1/")
	doc, err := Load(context.Background(), c, "redshift/pricing-on-demand-redshift-instances.min.js")
	require.NoError(t, err)

	assert.Equal(t, "/pricing/1/redshift/pricing-on-demand-redshift-instances.min.js", gotPath)
	require.Len(t, doc.Regions(), 1)
}

func TestClient_FetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	_, err := c.Fetch(context.Background(), "missing.min.js")

	var se *httpclient.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Status)
}

func TestLoad_RepairFailureNamesPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`callback({config:`))
	}))
	defer srv.Close()

	_, err := Load(context.Background(), newTestClient(t, srv.URL), "bad.min.js")
	require.ErrorIs(t, err, ErrRepair)
	assert.Contains(t, err.Error(), "bad.min.js")
}
