package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func singleStage(rules ...Rule) *Catalog {
	return BuildCatalog([]RangeTable{{Name: "a-to-b", Rules: rules}})
}

func TestEvaluateSeedNoStagesIsIdentity(t *testing.T) {
	c := BuildCatalog(nil)
	for _, v := range []int64{-5, 0, 1, 79, 1 << 40} {
		assert.Equal(t, v, c.Evaluate(v))
	}
}

func TestEvaluateSeedNoMatchPassesThrough(t *testing.T) {
	c := BuildCatalog([]RangeTable{
		{Rules: []Rule{{Destination: 100, Source: 10, Length: 5}}},
		{Rules: []Rule{{Destination: 0, Source: 500, Length: 50}}},
	})
	for _, v := range []int64{0, 9, 16, 499, 551} {
		assert.Equal(t, v, c.Evaluate(v), "seed %d", v)
	}
}

func TestEvaluateSeedSingleRule(t *testing.T) {
	c := singleStage(Rule{Destination: 50, Source: 10, Length: 5})

	assert.Equal(t, int64(50), c.Evaluate(10))
	assert.Equal(t, int64(52), c.Evaluate(12))
	assert.Equal(t, int64(55), c.Evaluate(15), "upper bound is inclusive")
	assert.Equal(t, int64(16), c.Evaluate(16))
	assert.Equal(t, int64(9), c.Evaluate(9))
}

func TestEvaluateSeedZeroLengthMatchesNothing(t *testing.T) {
	c := singleStage(Rule{Destination: 50, Source: 10, Length: 0})
	assert.Equal(t, int64(10), c.Evaluate(10))
	assert.Equal(t, int64(11), c.Evaluate(11))

	neg := singleStage(Rule{Destination: 50, Source: 10, Length: -3})
	assert.Equal(t, int64(10), neg.Evaluate(10))
}

func TestEvaluateSeedFirstMatchWins(t *testing.T) {
	// 15 is the inclusive end of the first rule and the start of the second.
	c := singleStage(
		Rule{Destination: 100, Source: 10, Length: 5},
		Rule{Destination: 200, Source: 15, Length: 5},
	)
	assert.Equal(t, int64(105), c.Evaluate(15))
	assert.Equal(t, int64(201), c.Evaluate(16))

	swapped := singleStage(
		Rule{Destination: 200, Source: 15, Length: 5},
		Rule{Destination: 100, Source: 10, Length: 5},
	)
	assert.Equal(t, int64(200), swapped.Evaluate(15))
}

func TestEvaluateSeedAppliesStagesInOrder(t *testing.T) {
	c := BuildCatalog([]RangeTable{
		{Rules: []Rule{{Destination: 20, Source: 0, Length: 10}}},  // +20
		{Rules: []Rule{{Destination: 0, Source: 20, Length: 10}}},  // -20
		{Rules: []Rule{{Destination: 1000, Source: 5, Length: 1}}}, // 5,6 -> +995
	})
	assert.Equal(t, int64(1000), c.Evaluate(5))
	assert.Equal(t, int64(1001), c.Evaluate(6))
	assert.Equal(t, int64(7), c.Evaluate(7))

	// One match per stage: a value moved into a later rule's source range is
	// not rematched within the same stage.
	one := singleStage(
		Rule{Destination: 30, Source: 0, Length: 10},
		Rule{Destination: 0, Source: 30, Length: 10},
	)
	assert.Equal(t, int64(32), one.Evaluate(2))
}

func TestEvaluateSeedExampleChain(t *testing.T) {
	a := mustParseExample(t)
	c := BuildCatalog(a.Tables)

	// Seed-to-location values from the canonical example.
	want := map[int64]int64{79: 82, 14: 43, 55: 86, 13: 35, 82: 46}
	for seed, loc := range want {
		assert.Equal(t, loc, c.Evaluate(seed), "seed %d", seed)
	}
}

func TestEvaluateSeedRulesAtInt64Edges(t *testing.T) {
	// Source+Length does not fit in int64.
	high := singleStage(Rule{Destination: 0, Source: math.MaxInt64 - 1, Length: 5})
	assert.Equal(t, int64(0), high.Evaluate(math.MaxInt64-1))
	assert.Equal(t, int64(1), high.Evaluate(math.MaxInt64))
	assert.Equal(t, int64(math.MaxInt64-2), high.Evaluate(math.MaxInt64-2))

	// Distance from a negative Source to a large seed exceeds math.MaxInt64.
	low := singleStage(Rule{Destination: 0, Source: -10, Length: 5})
	assert.Equal(t, int64(5), low.Evaluate(-5))
	assert.Equal(t, int64(-4), low.Evaluate(-4))
	assert.Equal(t, int64(math.MaxInt64), low.Evaluate(math.MaxInt64))
}
