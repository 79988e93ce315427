package main

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput is returned for almanac text or JSON that cannot be read.
	ErrMalformedInput = errors.New("malformed input")
	// ErrNoSeedRanges means there was nothing to evaluate; no minimum exists.
	ErrNoSeedRanges = errors.New("no seed ranges")
	// ErrDeviceInit is returned when an execution context cannot be created.
	ErrDeviceInit = errors.New("device init failed")
	// ErrDeviceUpload is returned when the catalog cannot be transferred.
	ErrDeviceUpload = errors.New("device upload failed")
	// ErrKernelFault is returned when a compute unit faults during dispatch.
	ErrKernelFault = errors.New("kernel fault")
)

// ParseError reports where in the input text parsing failed.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

func (e *ParseError) Unwrap() error { return ErrMalformedInput }
