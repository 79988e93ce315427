package main

import "time"

// StageCount is the number of remap sections a parsed almanac must contain.
const StageCount = 7

// Mode selects how the seed line is interpreted.
type Mode int

const (
	ModeRanges Mode = iota // interleaved (first, count) pairs
	ModeSeeds              // every integer is a single seed
)

func parseMode(s string) (Mode, bool) {
	switch s {
	case "ranges", "":
		return ModeRanges, true
	case "seeds":
		return ModeSeeds, true
	}
	return ModeRanges, false
}

func (m Mode) String() string {
	switch m {
	case ModeSeeds:
		return "seeds"
	}
	return "ranges"
}

// Rule maps [Source, Source+Length] onto [Destination, Destination+Length].
type Rule struct {
	Destination int64
	Source      int64
	Length      int64
}

// Offset is the constant shift applied to values matched by the rule.
func (r Rule) Offset() int64 {
	return r.Destination - r.Source
}

// RangeTable is one remap stage. Rules are matched in order.
type RangeTable struct {
	Name  string // header label, e.g. "seed-to-soil"
	Rules []Rule
}

// SeedRange is a contiguous block of seeds [First, First+Count).
type SeedRange struct {
	First int64
	Count int64
}

// Almanac is the parsed problem input.
type Almanac struct {
	Seeds  []int64
	Tables []RangeTable
}

// SeedRanges pairs the seed line as (first, count) blocks. A trailing
// unpaired value is dropped; checkRanges rejects such lines in ranges mode.
func (a *Almanac) SeedRanges() []SeedRange {
	out := make([]SeedRange, 0, len(a.Seeds)/2)
	for i := 0; i+1 < len(a.Seeds); i += 2 {
		out = append(out, SeedRange{First: a.Seeds[i], Count: a.Seeds[i+1]})
	}
	return out
}

// SingleSeeds treats every integer on the seed line as its own block of one.
func (a *Almanac) SingleSeeds() []SeedRange {
	out := make([]SeedRange, len(a.Seeds))
	for i, s := range a.Seeds {
		out[i] = SeedRange{First: s, Count: 1}
	}
	return out
}

// Ranges returns the seed blocks for the given mode.
func (a *Almanac) Ranges(m Mode) []SeedRange {
	if m == ModeSeeds {
		return a.SingleSeeds()
	}
	return a.SeedRanges()
}

// TotalSeeds is the number of work-items the ranges will launch.
func TotalSeeds(ranges []SeedRange) (tot int64) {
	for _, r := range ranges {
		if r.Count > 0 {
			tot += r.Count
		}
	}
	return tot
}

// RangeResult is the partial minimum of one seed block.
type RangeResult struct {
	Range   SeedRange
	Minimum int64
	Elapsed time.Duration
}

// Result is the outcome of a full run.
type Result struct {
	Minimum int64
	Ranges  []RangeResult
	Elapsed time.Duration
}
