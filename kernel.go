package main

// ── Per-seed kernel ─────────────────────────────────────────────────

// EvaluateSeed maps v through every stage in order. Within a stage the first
// rule with Source <= v <= Source+Length wins; a stage with no match passes v
// through. Rules with Length <= 0 cover nothing.
//
// The upper bound is inclusive: a value at Source+Length of one rule and at
// the Source of the next resolves to whichever rule comes first. The distance
// from Source is compared unsigned so rules ending past math.MaxInt64 still
// match.
func EvaluateSeed(v int64, rules []Rule, stages []StageIndex) int64 {
	for _, st := range stages {
		end := st.FirstIndex + st.Length
		for j := st.FirstIndex; j < end; j++ {
			r := &rules[j]
			if r.Length > 0 && r.Source <= v && uint64(v)-uint64(r.Source) <= uint64(r.Length) {
				v += r.Destination - r.Source
				break
			}
		}
	}
	return v
}
