package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Checker-Finance/pricefeeds/internal/export"
	"github.com/Checker-Finance/pricefeeds/pkg/model"
)

// ─── Mock runner ──────────────────────────────────────────────────────────────

type mockRunner struct {
	runFn    func(ctx context.Context, mode model.Mode, services []model.Service) (*model.Snapshot, error)
	mode     model.Mode
	services []model.Service
	calls    int
}

func (m *mockRunner) Run(ctx context.Context, mode model.Mode, services []model.Service) (*model.Snapshot, error) {
	m.calls++
	m.mode = mode
	m.services = services
	if m.runFn != nil {
		return m.runFn(ctx, mode, services)
	}
	return sampleSnapshot(mode, services), nil
}

func sampleSnapshot(mode model.Mode, services []model.Service) *model.Snapshot {
	snap := model.NewSnapshot("run-1", mode, services)
	for _, svc := range services {
		if snap.OnDemand != nil {
			doc := model.NewOnDemandDocument("USD")
			price := 0.25
			doc.Regions = append(doc.Regions, model.OnDemandRegion{
				Region:        "us-east-1",
				InstanceTypes: []model.OnDemandOffering{{Type: "m1.small", Price: &price}},
			})
			snap.OnDemand[svc] = doc
		}
		if snap.Reserved != nil {
			snap.Reserved[svc] = model.NewReservedDocument("USD")
		}
	}
	return snap
}

// ─── Test app helpers ─────────────────────────────────────────────────────────

func newTestApp(runner SnapshotRunner) *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, nil, NewPricingHandler(zap.NewNop(), runner, export.NewRegistry(), nil))
	return app
}

func get(t *testing.T, app *fiber.App, target string) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

// ─── Pricing ──────────────────────────────────────────────────────────────────

func TestPricing_JSONDefaultsToAllServices(t *testing.T) {
	runner := &mockRunner{}
	resp, body := get(t, newTestApp(runner), "/api/v1/pricing/ondemand")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, "run-1", resp.Header.Get("X-Run-Id"))
	assert.Equal(t, model.ModeOnDemand, runner.mode)
	assert.Equal(t, model.Services, runner.services)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(body), &decoded))
	assert.Contains(t, decoded, "ec2")
	assert.Contains(t, decoded, "redshift")
}

func TestPricing_ServiceFilterAndCSV(t *testing.T) {
	runner := &mockRunner{}
	resp, body := get(t, newTestApp(runner), "/api/v1/pricing/on-demand?service=rds,%20redshift&format=csv")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, []model.Service{model.ServiceRDS, model.ServiceRedshift}, runner.services)

	lines := strings.Split(strings.TrimSpace(body), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[1], "m1.small")
}

func TestPricing_BadRequests(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"unknown mode", "/api/v1/pricing/spot"},
		{"unknown format", "/api/v1/pricing/reserved?format=xml"},
		{"unknown service", "/api/v1/pricing/reserved?service=lambda"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &mockRunner{}
			resp, body := get(t, newTestApp(runner), tt.target)

			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, body, "error")
			assert.Zero(t, runner.calls)
		})
	}
}

func TestPricing_UpstreamFailure(t *testing.T) {
	runner := &mockRunner{
		runFn: func(context.Context, model.Mode, []model.Service) (*model.Snapshot, error) {
			return nil, errors.New("feed unavailable")
		},
	}
	resp, body := get(t, newTestApp(runner), "/api/v1/pricing/both")

	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, "feed unavailable")
}

// ─── Health ───────────────────────────────────────────────────────────────────

func TestHealth_WithoutNATS(t *testing.T) {
	resp, body := get(t, newTestApp(&mockRunner{}), "/health")

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var decoded struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &decoded))
	assert.Equal(t, "ok", decoded.Status)
	assert.Equal(t, "disabled", decoded.Checks["nats"])
}

func TestMetricsEndpoint(t *testing.T) {
	resp, _ := get(t, newTestApp(&mockRunner{}), "/metrics")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
