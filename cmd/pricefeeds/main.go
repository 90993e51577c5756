package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Checker-Finance/pricefeeds/internal/app"
	"github.com/Checker-Finance/pricefeeds/internal/notify"
	"github.com/Checker-Finance/pricefeeds/pkg/config"
	"github.com/Checker-Finance/pricefeeds/pkg/logger"
)

var version = "dev"

func main() {
	a := &cli.App{
		Name:    "pricefeeds",
		Usage:   "Normalize AWS public pricing feeds for EC2, ElastiCache, RDS and Redshift",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "base-url",
				Usage:   "Pricing feed base URL",
				EnvVars: []string{"FEED_BASE_URL"},
			},
			&cli.StringSliceFlag{
				Name:    "service",
				Aliases: []string{"s"},
				Usage:   "Services to include (ec2, elasticache, rds, redshift); repeat or comma-separate",
			},
		},
		Commands: []*cli.Command{
			fetchCommand(),
			serveCommand(),
		},
	}

	if err := a.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads config, applies global flag overrides and initializes logging.
func setup(c *cli.Context) (*config.Config, error) {
	cfg := config.Load()
	if v := c.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v := c.String("base-url"); v != "" {
		cfg.FeedBaseURL = v
	}
	if v := c.StringSlice("service"); len(v) > 0 {
		cfg.Services = splitServices(v)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Init(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	return cfg, nil
}

func splitServices(values []string) []string {
	var out []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// newRunner wires the fetch pipeline. The returned connection is nil when NATS is disabled.
func newRunner(cfg *config.Config, log *zap.Logger) (*app.Runner, *nats.Conn, error) {
	fetcher, err := app.NewFetcher(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	agg := app.NewAggregator(cfg, fetcher, log)

	if cfg.NATSURL == "" {
		return app.NewRunner(agg, nil, log), nil, nil
	}
	pub, nc, err := notify.Connect(cfg.NATSURL, cfg.NATSSubject, cfg.ServiceName, log)
	if err != nil {
		log.Warn("nats.connect_failed", zap.String("url", cfg.NATSURL), zap.Error(err))
		return app.NewRunner(agg, nil, log), nil, nil
	}
	return app.NewRunner(agg, pub, log), nc, nil
}
