// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring64

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newArr(values ...uint16) *container {
	c := newArrayContainer()
	for _, v := range values {
		c.add(v)
	}
	return c
}

func newBmp(values ...uint16) *container {
	c := newArrayContainer()
	for _, v := range values {
		c.add(v)
	}
	c.toBitmap()
	return c
}

func newRun(values ...uint16) *container {
	c := newArrayContainer()
	for _, v := range values {
		c.add(v)
	}
	runs := c.countRuns()
	c.toRun(runs)
	return c
}

func toSlice(c *container) []uint16 {
	out := make([]uint16, 0, c.cardinality())
	for k := 0; k < c.cardinality(); k++ {
		v, ok := c.selectAt(k)
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

func TestContainerAddRemoveContains(t *testing.T) {
	for _, kind := range []string{"array", "bitmap", "run"} {
		t.Run(kind, func(t *testing.T) {
			var c *container
			switch kind {
			case "array":
				c = newArr()
			case "bitmap":
				c = newBmp()
			case "run":
				c = newRun(1, 2, 3) // non-empty, so it stays in run form
			}

			assert.True(t, c.add(10))
			assert.False(t, c.add(10))
			assert.True(t, c.contains(10))
			assert.False(t, c.contains(11))

			assert.True(t, c.remove(10))
			assert.False(t, c.remove(10))
			assert.False(t, c.contains(10))
		})
	}
}

func TestContainerArrayToBitmapConversion(t *testing.T) {
	c := newArrayContainer()
	for v := 0; v < arrayMaxCard; v++ {
		c.add(uint16(v))
	}
	assert.Equal(t, kindArray, c.kind)

	c.add(uint16(arrayMaxCard))
	assert.Equal(t, kindBitmap, c.kind)
	assert.Equal(t, arrayMaxCard+1, c.cardinality())

	for v := arrayMaxCard; v >= 0; v-- {
		c.remove(uint16(v))
		if c.cardinality() <= arrayMaxCard {
			break
		}
	}
	assert.Equal(t, kindArray, c.kind)
}

func TestContainerRankSelect(t *testing.T) {
	values := []uint16{1, 5, 10, 100, 1000}
	for _, kind := range []func(...uint16) *container{newArr, newBmp, newRun} {
		c := kind(values...)
		for i, v := range values {
			assert.Equal(t, i+1, c.rank(v), "rank(%d)", v)
			got, ok := c.selectAt(i)
			assert.True(t, ok)
			assert.Equal(t, v, got)
		}
		_, ok := c.selectAt(len(values))
		assert.False(t, ok)
	}
}

func TestContainerMinMax(t *testing.T) {
	for _, kind := range []func(...uint16) *container{newArr, newBmp, newRun} {
		c := kind(3, 1, 2)
		lo, ok := c.min()
		assert.True(t, ok)
		assert.Equal(t, uint16(1), lo)
		hi, ok := c.max()
		assert.True(t, ok)
		assert.Equal(t, uint16(3), hi)
	}
}

func TestContainerCloneIsIndependent(t *testing.T) {
	for _, kind := range []func(...uint16) *container{newArr, newBmp, newRun} {
		c := kind(1, 2, 3)
		clone := c.clone()
		clone.add(4)
		assert.False(t, c.contains(4))
		assert.True(t, clone.contains(4))
	}
}

func TestContainerRunOptimize(t *testing.T) {
	c := newArrayContainer()
	for v := 1000; v < 2000; v++ {
		c.add(uint16(v))
	}
	assert.Equal(t, kindArray, c.kind)
	assert.True(t, c.runOptimize())
	assert.Equal(t, kindRun, c.kind)
	assert.Equal(t, 1000, c.cardinality())
	assert.Equal(t, 1, len(c.run))

	// Sparse content should not be worth converting.
	sparse := newArrayContainer()
	for v := 0; v < 100; v++ {
		sparse.add(uint16(v * 100))
	}
	assert.False(t, sparse.runOptimize())
}

func TestContainerCeilFloorSucc(t *testing.T) {
	for _, kind := range []func(...uint16) *container{newArr, newBmp, newRun} {
		c := kind(5, 10, 15)

		v, ok := c.ceil(6)
		assert.True(t, ok)
		assert.Equal(t, uint16(10), v)

		v, ok = c.ceil(5)
		assert.True(t, ok)
		assert.Equal(t, uint16(5), v)

		_, ok = c.ceil(16)
		assert.False(t, ok)

		v, ok = c.floor(12)
		assert.True(t, ok)
		assert.Equal(t, uint16(10), v)

		_, ok = c.floor(4)
		assert.False(t, ok)

		v, ok = c.succ(10)
		assert.True(t, ok)
		assert.Equal(t, uint16(15), v)

		_, ok = c.succ(15)
		assert.False(t, ok)
	}
}

func TestContainerTrim(t *testing.T) {
	c := newArrayContainer()
	for v := 0; v < 10; v++ {
		c.add(uint16(v))
	}
	for v := 9; v >= 5; v-- {
		c.remove(uint16(v))
	}
	assert.Equal(t, 5, c.cardinality())
	c.trim()
	assert.Equal(t, 5, len(c.arr))
	assert.Equal(t, toSlice(c), []uint16{0, 1, 2, 3, 4})
}
