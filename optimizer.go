package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// ── Optimizer ───────────────────────────────────────────────────────

// Optimizer folds per-range minima from the device into one global minimum.
type Optimizer struct {
	devCtx *Context
	dev    *DeviceCatalog // uploaded once, shared read-only by every dispatch
	log    *slog.Logger
}

// NewOptimizer uploads cat to the device. An upload failure is fatal for the
// run; nothing is retried.
func NewOptimizer(devCtx *Context, cat *Catalog, log *slog.Logger) (*Optimizer, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	dev, err := devCtx.Upload(cat)
	if err != nil {
		return nil, err
	}
	d := devCtx.Device()
	log.Info("[init] device ready",
		"device", d.Name,
		"compute_units", d.ComputeUnits,
		"work_group_size", d.WorkGroupSize,
		"stages", dev.Stages(),
		"upload_bytes", dev.Bytes())
	return &Optimizer{devCtx: devCtx, dev: dev, log: log}, nil
}

// Optimize evaluates every range in order, one dispatch at a time, and
// returns the smallest final value. With no ranges it returns a Result whose
// Minimum is math.MaxInt64 together with ErrNoSeedRanges. A failed dispatch
// aborts the run.
func (o *Optimizer) Optimize(ctx context.Context, ranges []SeedRange) (Result, error) {
	start := time.Now()
	res := Result{Minimum: math.MaxInt64, Ranges: make([]RangeResult, 0, len(ranges))}
	if len(ranges) == 0 {
		return res, ErrNoSeedRanges
	}

	ctx, span := tracer().Start(ctx, "Optimize")
	defer span.End()
	span.SetAttributes(
		attribute.Int("ranges", len(ranges)),
		attribute.Int64("seeds", TotalSeeds(ranges)),
	)

	o.log.Info("[init] optimizing", "ranges", len(ranges), "seeds", TotalSeeds(ranges))

	evaluated := false
	for i, r := range ranges {
		rs := time.Now()
		m, err := o.devCtx.MinReduce(ctx, o.dev, r.First, r.Count)
		if err != nil {
			span.RecordError(err)
			return res, fmt.Errorf("range %d (%d+%d): %w", i, r.First, r.Count, err)
		}
		rr := RangeResult{Range: r, Minimum: m, Elapsed: time.Since(rs)}
		res.Ranges = append(res.Ranges, rr)
		o.devCtx.metrics.recordRange(r.Count <= 0)
		if r.Count > 0 {
			evaluated = true
		}

		if m < res.Minimum {
			res.Minimum = m
		}
		o.log.Debug("[range] done",
			"index", i,
			"first", r.First,
			"count", r.Count,
			"minimum", m,
			"elapsed", rr.Elapsed)
	}

	res.Elapsed = time.Since(start)
	if !evaluated {
		o.log.Warn("[done] no seeds evaluated", "ranges", len(ranges))
		return res, ErrNoSeedRanges
	}
	o.log.Info("[done] optimized", "minimum", res.Minimum, "elapsed", res.Elapsed)
	return res, nil
}
