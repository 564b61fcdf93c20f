// Command spscpump moves a stream of sequence numbers from one goroutine to
// another over a Shared ring (or a channel, for comparison) and reports
// throughput.
//
// Usage:
//
//	go run ./cmd/spscpump -n 100000000 -size 4096 -batch 256
//	go run ./cmd/spscpump -config pump.yaml -metrics :9090
//
// Flags override values read from -config.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/randomizedcoder/spscring/internal/pump"
	"github.com/randomizedcoder/spscring/internal/ringmetrics"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "spscpump: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, jsonLogs, err := parseFlags(os.Args[1:])
	if err != nil {
		return err
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, nil)
	if jsonLogs {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	}
	logger := slog.New(handler).With(
		"run_id", uuid.NewString(),
		"pump", cfg.Name,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := pump.New(cfg, pump.WithProgress(func(s pump.Stats) {
		logger.Info("progress",
			"popped", s.Popped,
			"pushed", s.Pushed,
			"elapsed", s.Elapsed,
			"items_per_sec", s.PerSecond(),
		)
	}))
	if err != nil {
		return err
	}
	defer p.Close()

	logger.Info("starting",
		"transport", cfg.Transport,
		"items", cfg.Items,
		"capacity", cfg.Capacity,
		"batch", cfg.Batch,
		"rate", cfg.Rate,
	)

	g, gctx := errgroup.WithContext(ctx)
	serveCtx, stopServe := context.WithCancel(gctx)
	defer stopServe()

	if cfg.Metrics != "" {
		if err := serveMetrics(serveCtx, g, cfg, p, logger); err != nil {
			return err
		}
	}

	var stats pump.Stats
	g.Go(func() error {
		// The metrics server stops with the pump.
		defer stopServe()
		var err error
		stats, err = p.Run(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("interrupted", "popped", p.Stats().Popped)
			return nil
		}
		return err
	}

	logger.Info("done",
		"popped", stats.Popped,
		"elapsed", stats.Elapsed,
		"items_per_sec", stats.PerSecond(),
		"ns_per_item", float64(stats.Elapsed.Nanoseconds())/float64(max(stats.Popped, 1)),
	)
	return nil
}

func serveMetrics(ctx context.Context, g *errgroup.Group, cfg pump.Config, p *pump.Pump, logger *slog.Logger) error {
	var cs []ringmetrics.Observed
	if rq := p.Ring(); rq != nil {
		cs = append(cs, rq.Consumer())
	}

	reg, err := ringmetrics.NewRegistry()
	if err != nil {
		return err
	}
	for _, c := range cs {
		if err := reg.Register(ringmetrics.NewCollector(cfg.Name, c)); err != nil {
			return err
		}
	}

	logger.Info("serving metrics", "addr", cfg.Metrics, "path", ringmetrics.MetricsPath)
	g.Go(func() error {
		return ringmetrics.Serve(ctx, cfg.Metrics, ringmetrics.Handler(reg))
	})
	return nil
}

// parseFlags reads -config first, then applies only the flags that were set.
func parseFlags(args []string) (pump.Config, bool, error) {
	fs := flag.NewFlagSet("spscpump", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file")
	jsonLogs := fs.Bool("json", false, "log as JSON")

	def := pump.DefaultConfig()
	name := fs.String("name", def.Name, "ring name used in logs and metrics")
	transport := fs.String("transport", def.Transport, "ring or channel")
	items := fs.Int("n", def.Items, "number of items")
	size := fs.Int("size", def.Capacity, "queue capacity")
	batch := fs.Int("batch", def.Batch, "items per push and pop")
	limit := fs.Float64("rate", def.Rate, "producer items per second (0 = unlimited)")
	burst := fs.Int("burst", def.Burst, "rate limiter burst")
	progress := fs.Duration("progress", def.Progress, "progress log interval (0 = off)")
	timeout := fs.Duration("timeout", def.Timeout, "give up after this long (0 = never)")
	metrics := fs.String("metrics", def.Metrics, "serve Prometheus metrics on this address")

	if err := fs.Parse(args); err != nil {
		return def, false, err
	}

	cfg := def
	if *configPath != "" {
		var err error
		if cfg, err = pump.LoadConfig(*configPath); err != nil {
			return cfg, false, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			cfg.Name = *name
		case "transport":
			cfg.Transport = *transport
		case "n":
			cfg.Items = *items
		case "size":
			cfg.Capacity = *size
		case "batch":
			cfg.Batch = *batch
		case "rate":
			cfg.Rate = *limit
		case "burst":
			cfg.Burst = *burst
		case "progress":
			cfg.Progress = *progress
		case "timeout":
			cfg.Timeout = *timeout
		case "metrics":
			cfg.Metrics = *metrics
		}
	})

	return cfg, *jsonLogs, cfg.Validate()
}
