// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring64

import "github.com/kelindar/bitmap"

// Container thresholds, per spec.md §2/§4.1.
const (
	arrayMaxCard = 4096  // array form holds at most this many values
	runMaxRuns   = 2047  // run form converts away once it would exceed this
	bitmapWords  = 1024  // 1024 x uint64 = 65536 bits = 8192 bytes
	bitmapBits   = 65536 // logical size of a container's low-value domain
)

// kind identifies the internal representation of a container.
type kind uint8

const (
	kindArray kind = iota
	kindBitmap
	kindRun
)

// run is a closed range of 16-bit lows: [start, last], both inclusive.
type run struct {
	start uint16
	last  uint16
}

// length returns the number of values covered by the run.
func (r run) length() int {
	return int(r.last) - int(r.start) + 1
}

// container holds a set of 16-bit lows sharing one 48-bit high key. It is
// exclusively owned by the bitmap that installed it (see spec.md §3); there
// is no copy-on-write here because the core is single-writer.
type container struct {
	kind kind
	card int // cached cardinality; always consistent with the active form

	arr []uint16        // kindArray: sorted, strictly ascending, unique
	bmp bitmap.Bitmap    // kindBitmap: fixed 1024-word bit array
	run []run            // kindRun: sorted, disjoint, non-adjacent
}

// newArrayContainer builds an empty array-form container.
func newArrayContainer() *container {
	return &container{kind: kindArray}
}

// cardinality returns the number of elements held.
func (c *container) cardinality() int { return c.card }

func (c *container) isEmpty() bool { return c.card == 0 }

// contains reports whether low is a member.
func (c *container) contains(low uint16) bool {
	switch c.kind {
	case kindArray:
		_, ok := find16(c.arr, low)
		return ok
	case kindBitmap:
		return c.bmp.Contains(uint32(low))
	case kindRun:
		_, ok := c.runFind(low)
		return ok
	}
	return false
}

// add inserts low, converting form if the cardinality thresholds demand it.
// Returns true if low was not already present.
func (c *container) add(low uint16) bool {
	var added bool
	switch c.kind {
	case kindArray:
		added = c.arrAdd(low)
	case kindBitmap:
		added = c.bmpAdd(low)
	case kindRun:
		added = c.runAdd(low)
	}
	if added {
		c.convertIfNeeded()
	}
	return added
}

// remove deletes low. Returns true if low was present.
func (c *container) remove(low uint16) bool {
	var removed bool
	switch c.kind {
	case kindArray:
		removed = c.arrDel(low)
	case kindBitmap:
		removed = c.bmpDel(low)
	case kindRun:
		removed = c.runDel(low)
	}
	if removed {
		c.convertIfNeeded()
	}
	return removed
}

// rank returns the number of elements <= low.
func (c *container) rank(low uint16) int {
	switch c.kind {
	case kindArray:
		idx, ok := find16(c.arr, low)
		if ok {
			return idx + 1
		}
		return idx
	case kindBitmap:
		return c.bmpRank(low)
	case kindRun:
		return c.runRank(low)
	}
	return 0
}

// selectAt returns the k-th (0-indexed) element in ascending order.
func (c *container) selectAt(k int) (uint16, bool) {
	if k < 0 || k >= c.card {
		return 0, false
	}
	switch c.kind {
	case kindArray:
		return c.arr[k], true
	case kindBitmap:
		return c.bmpSelect(k)
	case kindRun:
		return c.runSelect(k)
	}
	return 0, false
}

// min returns the smallest element.
func (c *container) min() (uint16, bool) {
	if c.card == 0 {
		return 0, false
	}
	switch c.kind {
	case kindArray:
		return c.arr[0], true
	case kindBitmap:
		return c.bmpSelect(0)
	case kindRun:
		return c.run[0].start, true
	}
	return 0, false
}

// max returns the largest element.
func (c *container) max() (uint16, bool) {
	if c.card == 0 {
		return 0, false
	}
	switch c.kind {
	case kindArray:
		return c.arr[len(c.arr)-1], true
	case kindBitmap:
		return c.bmpSelect(c.card - 1)
	case kindRun:
		return c.run[len(c.run)-1].last, true
	}
	return 0, false
}

// ceil returns the smallest member >= low, if any.
func (c *container) ceil(low uint16) (uint16, bool) {
	if c.contains(low) {
		return low, true
	}
	idx := c.rank(low) // low is absent, so rank(low) counts elements strictly below it
	return c.selectAt(idx)
}

// succ returns the smallest member strictly greater than low, if any.
func (c *container) succ(low uint16) (uint16, bool) {
	if low == 0xFFFF {
		return 0, false
	}
	return c.ceil(low + 1)
}

// floor returns the largest member <= high, if any.
func (c *container) floor(high uint16) (uint16, bool) {
	if c.contains(high) {
		return high, true
	}
	idx := c.rank(high) // high is absent, so rank(high) counts elements strictly below it
	if idx == 0 {
		return 0, false
	}
	return c.selectAt(idx - 1)
}

// clone deep-copies the container so the result is safe to mutate
// independently of the source (used when importing a container from a
// read-only right-hand bitmap in set-algebra, per spec.md §3).
func (c *container) clone() *container {
	out := &container{kind: c.kind, card: c.card}
	switch c.kind {
	case kindArray:
		out.arr = append([]uint16(nil), c.arr...)
	case kindBitmap:
		out.bmp = append(bitmap.Bitmap(nil), c.bmp...)
	case kindRun:
		out.run = append([]run(nil), c.run...)
	}
	return out
}

// trim releases any over-allocated backing capacity without changing
// logical contents.
func (c *container) trim() {
	switch c.kind {
	case kindArray:
		if len(c.arr) < cap(c.arr) {
			c.arr = append([]uint16(nil), c.arr...)
		}
	case kindRun:
		if len(c.run) < cap(c.run) {
			c.run = append([]run(nil), c.run...)
		}
	}
}

// sizeInBytes estimates the serialized footprint of the container in its
// current form. This is an estimate used for runOptimize's conversion cost
// decision, not a measurement of actual heap usage (spec.md §9).
func (c *container) sizeInBytes() int {
	switch c.kind {
	case kindArray:
		return 2 + len(c.arr)*2
	case kindBitmap:
		return 2 + bitmapWords*8
	case kindRun:
		return 2 + len(c.run)*4
	}
	return 0
}

// convertIfNeeded switches representation when the active form is no
// longer optimal for the current cardinality, per spec.md §4.1/§8(1).
func (c *container) convertIfNeeded() {
	switch c.kind {
	case kindArray:
		if c.card > arrayMaxCard {
			c.toBitmap()
		}
	case kindBitmap:
		if c.card <= arrayMaxCard {
			c.toArray()
		}
	case kindRun:
		if len(c.run) > runMaxRuns {
			// Too many runs to stay cheap; pick array or bitmap by size.
			if c.card <= arrayMaxCard {
				c.runToArray()
			} else {
				c.runToBitmap()
			}
		}
	}
}

// runOptimize scans for runs and converts to run form if doing so is
// estimated smaller than the current form, per spec.md §4.1. Returns true
// if a conversion happened.
func (c *container) runOptimize() bool {
	if c.kind == kindRun {
		return false
	}

	runs := c.countRuns()
	if runs > runMaxRuns {
		return false
	}
	if estimated := 2 + 4*runs; estimated < c.sizeInBytes() {
		switch c.kind {
		case kindArray:
			c.toRun(runs)
		case kindBitmap:
			c.bmpToRun(runs)
		}
		return true
	}
	return false
}

// countRuns counts the maximal contiguous runs currently present, without
// mutating the container.
func (c *container) countRuns() int {
	switch c.kind {
	case kindArray:
		if len(c.arr) == 0 {
			return 0
		}
		n := 1
		for i := 1; i < len(c.arr); i++ {
			if c.arr[i] != c.arr[i-1]+1 {
				n++
			}
		}
		return n
	case kindBitmap:
		return c.bitmapRunCount()
	case kindRun:
		return len(c.run)
	}
	return 0
}
