package main

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// newLogger writes text records to w, tagged with a per-run id.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("run_id", uuid.NewString()[:8])
}
