package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"
)

// RangeOutput is the JSON form of one range's partial minimum.
type RangeOutput struct {
	First   int64 `json:"first"`
	Count   int64 `json:"count"`
	Minimum int64 `json:"minimum"`
	TimeMs  int64 `json:"timeMs"`
}

// RunOutput is the JSON-serializable result of a full run.
type RunOutput struct {
	Date          string        `json:"date"`
	Mode          string        `json:"mode"`
	Device        string        `json:"device"`
	ComputeUnits  int           `json:"computeUnits"`
	WorkGroupSize int           `json:"workGroupSize"`
	Minimum       int64         `json:"minimum"`
	Seeds         int64         `json:"seeds"`
	Ranges        []RangeOutput `json:"ranges"`
	TotalMs       int64         `json:"totalMs"`
}

// NewRunOutput converts a result for JSON output.
func NewRunOutput(res Result, mode Mode, d Device) RunOutput {
	out := RunOutput{
		Date:          time.Now().UTC().Format(time.RFC3339),
		Mode:          mode.String(),
		Device:        d.Name,
		ComputeUnits:  d.ComputeUnits,
		WorkGroupSize: d.WorkGroupSize,
		Minimum:       res.Minimum,
		Ranges:        make([]RangeOutput, 0, len(res.Ranges)),
		TotalMs:       res.Elapsed.Milliseconds(),
	}
	for _, r := range res.Ranges {
		if r.Range.Count > 0 {
			out.Seeds += r.Range.Count
		}
		out.Ranges = append(out.Ranges, RangeOutput{
			First:   r.Range.First,
			Count:   r.Range.Count,
			Minimum: r.Minimum,
			TimeMs:  r.Elapsed.Milliseconds(),
		})
	}
	return out
}

// WriteJSON writes v indented.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintTable writes one row per range followed by the global minimum.
func PrintTable(w io.Writer, res Result) {
	fmt.Fprintf(w, "%-22s %14s %22s %8s\n", "First", "Count", "Minimum", "Time")
	fmt.Fprintf(w, "%-22s %14s %22s %8s\n", "----------------------", "--------------", "----------------------", "--------")
	for _, r := range res.Ranges {
		fmt.Fprintf(w, "%-22d %14d %22s %7.1fs\n", r.Range.First, r.Range.Count, formatMinimum(r.Minimum), r.Elapsed.Seconds())
	}
	fmt.Fprintf(w, "%-22s %14s %22s %8s\n", "----------------------", "--------------", "----------------------", "--------")
	fmt.Fprintf(w, "%-22s %14d %22s %7.1fs\n", "TOTAL", TotalSeeds(rangesOf(res)), formatMinimum(res.Minimum), res.Elapsed.Seconds())
}

func rangesOf(res Result) []SeedRange {
	out := make([]SeedRange, len(res.Ranges))
	for i, r := range res.Ranges {
		out[i] = r.Range
	}
	return out
}

// formatMinimum shows "-" for the identity value of an empty range.
func formatMinimum(v int64) string {
	if v == math.MaxInt64 {
		return "-"
	}
	return fmt.Sprint(v)
}
