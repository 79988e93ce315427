package main

import (
	"encoding/binary"
	"fmt"
)

// Packed sizes of the device-side records (little-endian int64 fields).
const (
	packedRuleSize   = 24 // destination, source, length
	packedStageSize  = 16 // first_index, length
	packedHeaderSize = 16 // rule count, stage count
)

// StageIndex locates one stage's rules inside Catalog.Rules.
type StageIndex struct {
	FirstIndex int64
	Length     int64
}

// Catalog is every stage's rules concatenated in stage order, plus one
// StageIndex per stage. sum(Stages[i].Length) == len(Rules).
type Catalog struct {
	Rules  []Rule
	Stages []StageIndex
}

// BuildCatalog flattens tables into a catalog. Rule contents are not
// validated and the tables are left untouched.
func BuildCatalog(tables []RangeTable) *Catalog {
	n := 0
	for i := range tables {
		n += len(tables[i].Rules)
	}
	c := &Catalog{
		Rules:  make([]Rule, 0, n),
		Stages: make([]StageIndex, 0, len(tables)),
	}
	for i := range tables {
		c.Stages = append(c.Stages, StageIndex{
			FirstIndex: int64(len(c.Rules)),
			Length:     int64(len(tables[i].Rules)),
		})
		c.Rules = append(c.Rules, tables[i].Rules...)
	}
	return c
}

// Stage returns the rules of stage i.
func (c *Catalog) Stage(i int) []Rule {
	s := c.Stages[i]
	return c.Rules[s.FirstIndex : s.FirstIndex+s.Length]
}

// Evaluate runs one seed through every stage.
func (c *Catalog) Evaluate(v int64) int64 {
	return EvaluateSeed(v, c.Rules, c.Stages)
}

// PackedSize is the byte length of MarshalBinary's output.
func (c *Catalog) PackedSize() int {
	return packedHeaderSize + len(c.Rules)*packedRuleSize + len(c.Stages)*packedStageSize
}

// MarshalBinary packs the catalog into the fixed device layout:
// header, rules, then stage indexes.
func (c *Catalog) MarshalBinary() ([]byte, error) {
	buf := make([]byte, c.PackedSize())
	le := binary.LittleEndian
	le.PutUint64(buf[0:], uint64(len(c.Rules)))
	le.PutUint64(buf[8:], uint64(len(c.Stages)))
	off := packedHeaderSize
	for _, r := range c.Rules {
		le.PutUint64(buf[off:], uint64(r.Destination))
		le.PutUint64(buf[off+8:], uint64(r.Source))
		le.PutUint64(buf[off+16:], uint64(r.Length))
		off += packedRuleSize
	}
	for _, s := range c.Stages {
		le.PutUint64(buf[off:], uint64(s.FirstIndex))
		le.PutUint64(buf[off+8:], uint64(s.Length))
		off += packedStageSize
	}
	return buf, nil
}

// UnmarshalCatalog decodes a buffer produced by MarshalBinary. Stage
// descriptors must stay inside the rule array, otherwise the kernel would
// read out of bounds.
func UnmarshalCatalog(buf []byte) (*Catalog, error) {
	if len(buf) < packedHeaderSize {
		return nil, fmt.Errorf("catalog buffer too short: %d bytes", len(buf))
	}
	le := binary.LittleEndian
	nRules := le.Uint64(buf[0:])
	nStages := le.Uint64(buf[8:])
	want := uint64(packedHeaderSize) + nRules*packedRuleSize + nStages*packedStageSize
	if nRules > uint64(len(buf)) || nStages > uint64(len(buf)) || want != uint64(len(buf)) {
		return nil, fmt.Errorf("catalog buffer size %d does not match %d rules, %d stages", len(buf), nRules, nStages)
	}

	c := &Catalog{
		Rules:  make([]Rule, nRules),
		Stages: make([]StageIndex, nStages),
	}
	off := packedHeaderSize
	for i := range c.Rules {
		c.Rules[i] = Rule{
			Destination: int64(le.Uint64(buf[off:])),
			Source:      int64(le.Uint64(buf[off+8:])),
			Length:      int64(le.Uint64(buf[off+16:])),
		}
		off += packedRuleSize
	}
	for i := range c.Stages {
		s := StageIndex{
			FirstIndex: int64(le.Uint64(buf[off:])),
			Length:     int64(le.Uint64(buf[off+8:])),
		}
		if s.FirstIndex < 0 || s.Length < 0 || s.FirstIndex+s.Length > int64(nRules) {
			return nil, fmt.Errorf("stage %d descriptor [%d,+%d) outside %d rules", i, s.FirstIndex, s.Length, nRules)
		}
		c.Stages[i] = s
		off += packedStageSize
	}
	return c, nil
}
