package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Solve opens a device, uploads the almanac's tables and folds the minimum
// over the ranges selected by cfg.Mode.
func Solve(ctx context.Context, a *Almanac, cfg Config, log *slog.Logger, m *Metrics) (Result, Device, error) {
	if err := a.checkRanges(cfg.RunMode()); err != nil {
		return Result{Minimum: math.MaxInt64}, Device{}, err
	}
	devCtx, err := NewContext(cfg.DeviceConfig(), m)
	if err != nil {
		return Result{Minimum: math.MaxInt64}, Device{}, err
	}
	opt, err := NewOptimizer(devCtx, BuildCatalog(a.Tables), log)
	if err != nil {
		return Result{Minimum: math.MaxInt64}, devCtx.Device(), err
	}
	res, err := opt.Optimize(ctx, a.Ranges(cfg.RunMode()))
	return res, devCtx.Device(), err
}

// loadAlmanac reads path ("-" for stdin). Paths ending in .json use the
// JSON form, everything else the text form.
func loadAlmanac(path string, stdin io.Reader) (*Almanac, error) {
	if path == "-" {
		return ParseAlmanac(stdin)
	}
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return LoadJSONAlmanacFile(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return ParseAlmanac(f)
}

// run is the whole CLI invocation: load, solve, report. Only the answer is
// written to stdout.
func run(ctx context.Context, cfg Config, path string, stdin io.Reader, stdout, stderr io.Writer) error {
	log := newLogger(stderr, cfg.SlogLevel())

	if cfg.Trace {
		shutdown, err := initTracing(stderr)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				log.Warn("trace shutdown failed", "error", err)
			}
		}()
	}

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)

	a, err := loadAlmanac(path, stdin)
	if err != nil {
		return err
	}
	log.Info("[init] loaded almanac", "seeds", len(a.Seeds), "stages", len(a.Tables), "mode", cfg.Mode)

	res, dev, err := Solve(ctx, a, cfg, log, metrics)
	if cfg.MetricsOut != "" {
		if werr := prometheus.WriteToTextfile(cfg.MetricsOut, reg); werr != nil {
			log.Warn("write metrics failed", "path", cfg.MetricsOut, "error", werr)
		}
	}
	if err != nil {
		return err
	}

	if cfg.Verbose {
		PrintTable(stderr, res)
	}
	if cfg.JSON {
		return WriteJSON(stdout, NewRunOutput(res, cfg.RunMode(), dev))
	}
	_, err = fmt.Fprintln(stdout, res.Minimum)
	return err
}
