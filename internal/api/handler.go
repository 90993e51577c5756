package api

import (
	"bytes"
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Checker-Finance/pricefeeds/internal/aggregate"
	"github.com/Checker-Finance/pricefeeds/internal/export"
	"github.com/Checker-Finance/pricefeeds/pkg/model"
)

// SnapshotRunner produces a fresh pricing snapshot.
type SnapshotRunner interface {
	Run(ctx context.Context, mode model.Mode, services []model.Service) (*model.Snapshot, error)
}

// PricingHandler serves normalized pricing over HTTP.
type PricingHandler struct {
	logger   *zap.Logger
	runner   SnapshotRunner
	registry *export.Registry
	services []model.Service
}

// NewPricingHandler creates a PricingHandler. defaults is used when a request names no services.
func NewPricingHandler(logger *zap.Logger, runner SnapshotRunner, registry *export.Registry, defaults []model.Service) *PricingHandler {
	if len(defaults) == 0 {
		defaults = model.Services
	}
	return &PricingHandler{
		logger:   logger,
		runner:   runner,
		registry: registry,
		services: defaults,
	}
}

// Pricing handles GET /api/v1/pricing/:mode?service=ec2,rds&format=csv.
func (h *PricingHandler) Pricing(c *fiber.Ctx) error {
	mode, ok := model.AsMode(c.Params("mode"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown mode " + c.Params("mode")})
	}

	presenter, err := h.registry.Get(export.Format(c.Query("format", string(export.FormatJSON))))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	services := h.services
	if raw := c.Query("service"); raw != "" {
		services, err = aggregate.ParseServices(splitList(raw))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	snap, err := h.runner.Run(c.UserContext(), mode, services)
	if err != nil {
		h.logger.Error("api.pricing.failed",
			zap.String("mode", string(mode)),
			zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}

	var buf bytes.Buffer
	if err := presenter.Present(&buf, snap); err != nil {
		h.logger.Error("api.pricing.render_failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, presenter.ContentType())
	c.Set("X-Run-Id", snap.RunID)
	return c.Status(fiber.StatusOK).Send(buf.Bytes())
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
