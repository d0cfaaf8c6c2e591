// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring64

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestScenarioSignBoundary exercises values straddling 2^63, which is where a
// signed-integer-backed implementation would misorder or overflow.
func TestScenarioSignBoundary(t *testing.T) {
	b := New()
	below := uint64(1)<<63 - 1
	at := uint64(1) << 63
	above := uint64(1)<<63 + 1

	b.Add(below)
	b.Add(at)
	b.Add(above)

	assert.True(t, b.Contains(below))
	assert.True(t, b.Contains(at))
	assert.True(t, b.Contains(above))

	out, err := b.ToSlice()
	assert.NoError(t, err)
	assert.Equal(t, []uint64{below, at, above}, out)

	assert.Equal(t, uint64(2), b.Rank(at))
	first, _ := b.First()
	assert.Equal(t, below, first)
	last, _ := b.Last()
	assert.Equal(t, above, last)
}

// TestScenarioDenseAndSparseMixed checks that one high key holding a dense
// range and other high keys holding scattered values coexist correctly.
func TestScenarioDenseAndSparseMixed(t *testing.T) {
	b := New()
	err := b.AddRange(0, 10000) // dense: one high key, bitmap form past 4096 values
	assert.NoError(t, err)

	sparse := []uint64{1 << 32, 1<<32 + 5000, 1<<40 + 1, 1 << 60}
	for _, v := range sparse {
		b.Add(v)
	}

	assert.Equal(t, uint64(10000+len(sparse)), b.Cardinality())
	for v := uint64(0); v < 10000; v++ {
		assert.True(t, b.Contains(v))
	}
	for _, v := range sparse {
		assert.True(t, b.Contains(v))
	}
	assert.False(t, b.Contains(10000))
}

// TestScenarioRangeFlipInsideOneHighKey flips a sub-range that lives entirely
// within a single container.
func TestScenarioRangeFlipInsideOneHighKey(t *testing.T) {
	b := New()
	b.Add(100)
	b.Add(105)

	err := b.Flip(100, 110)
	assert.NoError(t, err)

	for v := uint64(100); v < 110; v++ {
		want := v != 100 && v != 105
		assert.Equal(t, want, b.Contains(v), "value %d", v)
	}
}

// TestScenarioSelfAliasSetAlgebra replays the documented self-aliasing
// contract for all four set operations.
func TestScenarioSelfAliasSetAlgebra(t *testing.T) {
	mk := func() *Bitmap { return bitmapOf(1, 2, 3, 1<<40) }

	orB := mk()
	orB.Or(orB)
	out, _ := orB.ToSlice()
	assert.Equal(t, []uint64{1, 2, 3, 1 << 40}, out)

	andB := mk()
	andB.And(andB)
	out, _ = andB.ToSlice()
	assert.Equal(t, []uint64{1, 2, 3, 1 << 40}, out)

	xorB := mk()
	xorB.Xor(xorB)
	assert.Equal(t, uint64(0), xorB.Cardinality())

	andNotB := mk()
	andNotB.AndNot(andNotB)
	assert.Equal(t, uint64(0), andNotB.Cardinality())
}

// TestScenarioRunOptimizeRoundTrip converts a dense container to run form,
// serializes, deserializes, and checks the value set survives intact.
func TestScenarioRunOptimizeRoundTrip(t *testing.T) {
	b := New()
	err := b.AddRange(1000, 6000)
	assert.NoError(t, err)
	assert.True(t, b.RunOptimize())

	var buf bytes.Buffer
	_, err = b.WriteTo(&buf)
	assert.NoError(t, err)

	out := New()
	_, err = out.ReadFrom(&buf)
	assert.NoError(t, err)
	assert.True(t, b.Equals(out))
	assert.Equal(t, uint64(5000), out.Cardinality())
}

// TestScenarioForAllInRangeCoalescing is the ForAllInRange walk worked out by
// hand: B={5,6,100}, forAllInRange(0,200) must report the gaps and members
// below in exactly this order.
func TestScenarioForAllInRangeCoalescing(t *testing.T) {
	b := bitmapOf(5, 6, 100)

	type seen struct {
		present bool
		a, c    uint64
	}
	var trace []seen

	b.ForAllInRange(0, 200,
		func(offset, value uint64) { trace = append(trace, seen{true, offset, value}) },
		func(rangeStart, rangeEnd uint64) { trace = append(trace, seen{false, rangeStart, rangeEnd}) },
	)

	want := []seen{
		{false, 0, 5},
		{true, 5, 5},
		{true, 6, 6},
		{false, 7, 100},
		{true, 100, 100},
		{false, 101, 200},
	}
	assert.Equal(t, want, trace)
}
