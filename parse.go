package main

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const (
	seedsPrefix = "seeds:"
	mapSuffix   = "map:"
)

// ParseAlmanac reads the text form: a "seeds:" line of integers followed by
// exactly StageCount sections, each a "<name> map:" header and lines of
// "destination source length" triples. Blank lines are ignored.
func ParseAlmanac(r io.Reader) (*Almanac, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	a := &Almanac{}
	var cur *RangeTable
	sawSeeds := false
	lineNo := 0

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		switch {
		case !sawSeeds:
			if !strings.HasPrefix(line, seedsPrefix) {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("expected %q line, got %q", seedsPrefix, line)}
			}
			seeds, err := parseInts(strings.TrimPrefix(line, seedsPrefix))
			if err != nil {
				return nil, &ParseError{Line: lineNo, Msg: "seeds: " + err.Error()}
			}
			a.Seeds = seeds
			sawSeeds = true

		case strings.HasSuffix(line, mapSuffix):
			a.Tables = append(a.Tables, RangeTable{Name: strings.TrimSpace(strings.TrimSuffix(line, mapSuffix))})
			cur = &a.Tables[len(a.Tables)-1]

		default:
			if cur == nil {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("rule %q before any map header", line)}
			}
			rule, err := parseRule(line)
			if err != nil {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("%s: %v", cur.Name, err)}
			}
			cur.Rules = append(cur.Rules, rule)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read almanac: %w", err)
	}

	if err := a.check(); err != nil {
		return nil, err
	}
	return a, nil
}

// check enforces the shape shared by the text and JSON forms. The seed line
// is validated per mode by checkRanges.
func (a *Almanac) check() error {
	if a.Seeds == nil {
		return &ParseError{Msg: "missing " + seedsPrefix + " line"}
	}
	if len(a.Tables) != StageCount {
		return &ParseError{Msg: fmt.Sprintf("found %d map sections, want %d", len(a.Tables), StageCount)}
	}
	return nil
}

// checkRanges validates the seed line for mode m. Ranges mode needs
// (first, count) pairs whose last seed fits in int64; seeds mode takes any
// number of values.
func (a *Almanac) checkRanges(m Mode) error {
	if m != ModeRanges {
		return nil
	}
	if len(a.Seeds)%2 != 0 {
		return &ParseError{Msg: fmt.Sprintf("seed line has %d values, want (first, count) pairs", len(a.Seeds))}
	}
	for i, r := range a.SeedRanges() {
		if r.Count > 0 && r.First > math.MaxInt64-(r.Count-1) {
			return &ParseError{Msg: fmt.Sprintf("seed range %d (%d+%d) overflows int64", i, r.First, r.Count)}
		}
	}
	return nil
}

func parseInts(s string) ([]int64, error) {
	fields := strings.Fields(s)
	out := make([]int64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseRule(line string) (Rule, error) {
	vals, err := parseInts(line)
	if err != nil {
		return Rule{}, err
	}
	if len(vals) != 3 {
		return Rule{}, fmt.Errorf("want 3 values, got %d in %q", len(vals), line)
	}
	return Rule{Destination: vals[0], Source: vals[1], Length: vals[2]}, nil
}
