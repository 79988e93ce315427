package main

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// ── Atomic minimum ──────────────────────────────────────────────────

// atomicMin lowers acc to v if v is smaller, retrying on conflicting writes.
func atomicMin(acc *atomic.Int64, v int64) {
	for {
		cur := acc.Load()
		if v >= cur {
			return
		}
		if acc.CompareAndSwap(cur, v) {
			return
		}
	}
}

// workGroups is ceil(count/size) without overflowing near math.MaxInt64.
func workGroups(count, size int64) int64 {
	n := count / size
	if count%size != 0 {
		n++
	}
	return n
}

// ── ReductionEngine ─────────────────────────────────────────────────

// MinReduce evaluates the kernel for every seed in [first, first+count) and
// returns the smallest result. Work-item id evaluates seed first+id. Items
// run in work-groups of the device's preferred width; the groups are spread
// over the compute units, each group folds its own minimum and publishes it
// to a single accumulator.
//
// The accumulator is stored to math.MaxInt64 before dispatch and read only
// after every compute unit has returned. count <= 0 launches nothing and
// returns math.MaxInt64. A range whose last seed does not fit in int64 is
// rejected with ErrMalformedInput before anything is launched.
//
// The dispatch is not cancellable; ctx only carries the tracing span.
func (c *Context) MinReduce(ctx context.Context, dev *DeviceCatalog, first, count int64) (int64, error) {
	if count <= 0 {
		return math.MaxInt64, nil
	}
	if first > math.MaxInt64-(count-1) {
		return math.MaxInt64, fmt.Errorf("%w: range %d+%d overflows int64", ErrMalformedInput, first, count)
	}
	_, span := tracer().Start(ctx, "MinReduce")
	defer span.End()

	start := time.Now()
	groupSize := int64(c.device.WorkGroupSize)
	groups := workGroups(count, groupSize)
	units := int64(c.device.ComputeUnits)
	if units > groups {
		units = groups
	}
	span.SetAttributes(
		attribute.Int64("seed.first", first),
		attribute.Int64("seed.count", count),
		attribute.Int64("dispatch.groups", groups),
		attribute.Int64("dispatch.units", units),
	)

	var acc atomic.Int64
	acc.Store(math.MaxInt64)

	// Compute units pull work-group ids from a shared counter until exhausted.
	var next atomic.Int64
	var g errgroup.Group
	for u := int64(0); u < units; u++ {
		unit := u
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: compute unit %d: %v", ErrKernelFault, unit, r)
				}
			}()
			for {
				gid := next.Add(1) - 1
				if gid >= groups {
					return nil
				}
				lo := gid * groupSize
				hi := min(lo+groupSize, count)
				local := int64(math.MaxInt64)
				for id := lo; id < hi; id++ {
					if v := dev.evaluate(first + id); v < local {
						local = v
					}
				}
				atomicMin(&acc, local)
			}
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return math.MaxInt64, err
	}

	result := acc.Load()
	c.metrics.recordDispatch(count, groups, time.Since(start))
	return result, nil
}
