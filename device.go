package main

import (
	"fmt"
	"runtime"
)

// DefaultWorkGroupSize is the work-group width used when none is configured.
const DefaultWorkGroupSize = 500

// DeviceConfig describes the compute device to open. Zero values select
// defaults; negative values are rejected.
type DeviceConfig struct {
	ComputeUnits  int
	WorkGroupSize int
}

// Device reports the properties of an opened compute device.
type Device struct {
	Name          string
	ComputeUnits  int
	WorkGroupSize int // preferred work-group width
}

// Context is an explicitly constructed execution context. Every component
// needing device access receives it by reference; there is no package-level
// default context.
type Context struct {
	device  Device
	metrics *Metrics
}

// NewContext opens the CPU compute device. m may be nil.
func NewContext(cfg DeviceConfig, m *Metrics) (*Context, error) {
	if cfg.ComputeUnits < 0 {
		return nil, fmt.Errorf("%w: compute units %d", ErrDeviceInit, cfg.ComputeUnits)
	}
	if cfg.WorkGroupSize < 0 {
		return nil, fmt.Errorf("%w: work-group size %d", ErrDeviceInit, cfg.WorkGroupSize)
	}
	units := cfg.ComputeUnits
	if units == 0 {
		units = runtime.GOMAXPROCS(0)
	}
	wg := cfg.WorkGroupSize
	if wg == 0 {
		wg = DefaultWorkGroupSize
	}
	return &Context{
		device: Device{
			Name:          fmt.Sprintf("cpu/%s-%s", runtime.GOOS, runtime.GOARCH),
			ComputeUnits:  units,
			WorkGroupSize: wg,
		},
		metrics: m,
	}, nil
}

// Device returns the properties of the opened device.
func (c *Context) Device() Device {
	return c.device
}

// DeviceCatalog is a catalog resident on the device. It is read-only and
// shared by every work-item of every dispatch.
type DeviceCatalog struct {
	rules  []Rule
	stages []StageIndex
	bytes  int
}

// Bytes is the size of the transfer that produced this catalog.
func (d *DeviceCatalog) Bytes() int { return d.bytes }

// Stages is the number of stages the kernel will apply.
func (d *DeviceCatalog) Stages() int { return len(d.stages) }

// Upload packs cat on the host side and decodes it into device memory.
// The packed layout is the only form that crosses the boundary.
func (c *Context) Upload(cat *Catalog) (*DeviceCatalog, error) {
	if cat == nil {
		return nil, fmt.Errorf("%w: nil catalog", ErrDeviceUpload)
	}
	buf, err := cat.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUpload, err)
	}
	dev, err := UnmarshalCatalog(buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeviceUpload, err)
	}
	c.metrics.recordUpload(len(buf))
	return &DeviceCatalog{rules: dev.Rules, stages: dev.Stages, bytes: len(buf)}, nil
}

// evaluate is the kernel entry for one work-item.
func (d *DeviceCatalog) evaluate(seed int64) int64 {
	return EvaluateSeed(seed, d.rules, d.stages)
}
