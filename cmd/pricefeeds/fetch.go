package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Checker-Finance/pricefeeds/internal/aggregate"
	"github.com/Checker-Finance/pricefeeds/internal/export"
	"github.com/Checker-Finance/pricefeeds/internal/metrics"
	"github.com/Checker-Finance/pricefeeds/pkg/logger"
	"github.com/Checker-Finance/pricefeeds/pkg/model"
)

func fetchCommand() *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Fetch, normalize and write one pricing snapshot",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Value:   string(model.ModeBoth),
				Usage:   "Pricing mode (ondemand, reserved, both)",
				EnvVars: []string{"PRICEFEEDS_MODE"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   string(export.FormatJSON),
				Usage:   "Output format (json, csv, table)",
				EnvVars: []string{"PRICEFEEDS_FORMAT"},
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output file (default stdout)",
				EnvVars: []string{"PRICEFEEDS_OUT"},
			},
		},
		Action: runFetch,
	}
}

func runFetch(c *cli.Context) error {
	cfg, err := setup(c)
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.L()

	mode, ok := model.AsMode(c.String("mode"))
	if !ok {
		return fmt.Errorf("unknown mode %q", c.String("mode"))
	}
	registry := export.NewRegistry()
	format := export.Format(c.String("format"))
	if _, err := registry.Get(format); err != nil {
		return err
	}
	services, err := aggregate.ParseServices(cfg.Services)
	if err != nil {
		return err
	}

	runner, nc, err := newRunner(cfg, log)
	if err != nil {
		return err
	}
	if nc != nil {
		defer func() {
			if err := nc.Drain(); err != nil {
				log.Warn("nats.drain_failed", zap.Error(err))
			}
		}()
	}

	snap, err := runner.Run(c.Context, mode, services)
	if err != nil {
		return err
	}

	if err := writeSnapshot(registry, format, c.String("out"), snap); err != nil {
		return err
	}

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			log.Warn("metrics.textfile_failed", zap.String("path", cfg.MetricsTextfile), zap.Error(err))
		}
	}

	log.Info("fetch.completed",
		zap.String("run_id", snap.RunID),
		zap.String("mode", string(mode)),
		zap.Int("regions", snap.Regions()),
		zap.Int("offerings", snap.Offerings()))
	return nil
}

// writeSnapshot renders snap to path, or stdout when path is empty. A failed
// close on the output file is reported.
func writeSnapshot(registry *export.Registry, format export.Format, path string, snap *model.Snapshot) error {
	if path == "" {
		return writeTo(registry, os.Stdout, format, snap)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := writeTo(registry, f, format, snap); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

func writeTo(registry *export.Registry, w io.Writer, format export.Format, snap *model.Snapshot) error {
	if err := registry.Write(w, format, snap); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}
