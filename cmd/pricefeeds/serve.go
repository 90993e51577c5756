package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/urfave/cli/v2"

	"github.com/Checker-Finance/pricefeeds/internal/aggregate"
	"github.com/Checker-Finance/pricefeeds/internal/api"
	"github.com/Checker-Finance/pricefeeds/internal/export"
	"github.com/Checker-Finance/pricefeeds/internal/jobs"
	"github.com/Checker-Finance/pricefeeds/internal/metrics"
	"github.com/Checker-Finance/pricefeeds/pkg/logger"
	"github.com/Checker-Finance/pricefeeds/pkg/model"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve normalized pricing over HTTP",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "HTTP listen port",
				EnvVars: []string{"HTTP_PORT"},
			},
			&cli.DurationFlag{
				Name:    "refresh-interval",
				Usage:   "Build and announce a snapshot on this interval (0 disables)",
				EnvVars: []string{"REFRESH_INTERVAL"},
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	cfg, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync()
	if p := c.Int("port"); p != 0 {
		cfg.Port = p
	}
	if d := c.Duration("refresh-interval"); d > 0 {
		cfg.RefreshInterval = d
	}
	logg := logger.S()
	logg.Infof("starting [%s]...", cfg.ServiceName)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	services, err := aggregate.ParseServices(cfg.Services)
	if err != nil {
		return err
	}
	refreshMode, ok := model.AsMode(cfg.RefreshMode)
	if !ok {
		return fmt.Errorf("unknown refresh mode %q", cfg.RefreshMode)
	}
	runner, nc, err := newRunner(cfg, logg.Desugar())
	if err != nil {
		return err
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	})
	handler := api.NewPricingHandler(logg.Desugar(), runner, export.NewRegistry(), services)
	api.RegisterRoutes(app, nc, handler)

	go func() {
		logg.Infof("HTTP API listening on :%d", cfg.Port)
		if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			logg.Errorw("fiber.listen_failed", "error", err)
			stop()
		}
	}()

	var refresher *jobs.SnapshotRefresher
	if cfg.RefreshInterval > 0 {
		refresher = jobs.NewSnapshotRefresher(logg.Desugar(), runner, refreshMode, services, cfg.RefreshInterval,
			func(*model.Snapshot) {
				if cfg.MetricsTextfile == "" {
					return
				}
				if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
					logg.Warnw("metrics.textfile_failed", "path", cfg.MetricsTextfile, "error", err)
				}
			})
		go refresher.Start(ctx)
	}

	logg.Infow("[pricefeeds] running",
		"env", cfg.Env,
		"feed_base_url", cfg.FeedBaseURL,
		"nats", cfg.NATSURL != "",
		"refresh_interval", cfg.RefreshInterval)

	<-ctx.Done()
	logg.Info("shutting down [pricefeeds]...")

	if refresher != nil {
		refresher.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logg.Warnw("fiber.shutdown_failed", "error", err)
	}
	if nc != nil {
		if err := nc.Drain(); err != nil {
			logg.Warnw("nats.drain_failed", "error", err)
		}
	}
	return nil
}
