// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring64

import "math/bits"

// iaddRange adds every value in [lo, hi] (both inclusive, 16-bit domain) to
// the container, converting form once at the end if thresholds demand it.
// Returns the number of values actually added.
func (c *container) iaddRange(lo, hi uint16) int {
	before := c.card
	switch c.kind {
	case kindArray:
		c.arrAddRange(lo, hi)
	case kindBitmap:
		c.bmpAddRange(lo, hi)
	case kindRun:
		c.runAddRangeMerge(lo, hi)
	}
	added := c.card - before
	if added > 0 {
		c.convertIfNeeded()
	}
	return added
}

// iremoveRange removes every value in [lo, hi] from the container. Returns
// the number of values actually removed.
func (c *container) iremoveRange(lo, hi uint16) int {
	before := c.card
	switch c.kind {
	case kindArray:
		c.arrRemoveRange(lo, hi)
	case kindBitmap:
		c.bmpRemoveRange(lo, hi)
	case kindRun:
		c.runRemoveRangeMerge(lo, hi)
	}
	removed := before - c.card
	if removed > 0 {
		c.convertIfNeeded()
	}
	return removed
}

// iflipRange toggles membership of every value in [lo, hi].
func (c *container) iflipRange(lo, hi uint16) {
	if c.kind == kindBitmap {
		c.bmpFlipRange(lo, hi)
		c.convertIfNeeded()
		return
	}

	// Array/run forms: collect what's currently present in range, then
	// remove it and add its complement within [lo, hi].
	var present []uint16
	for v := int(lo); v <= int(hi); v++ {
		if c.contains(uint16(v)) {
			present = append(present, uint16(v))
		}
	}
	if len(present) > 0 {
		c.iremoveRangeValues(present)
	}

	pi := 0
	for v := int(lo); v <= int(hi); v++ {
		if pi < len(present) && present[pi] == uint16(v) {
			pi++
			continue
		}
		switch c.kind {
		case kindArray:
			c.arrAdd(uint16(v))
		case kindRun:
			c.runAdd(uint16(v))
		}
	}
	c.convertIfNeeded()
}

// iremoveRangeValues removes exactly the given ascending, already-present
// values (a helper for iflipRange's array/run path).
func (c *container) iremoveRangeValues(values []uint16) {
	for _, v := range values {
		switch c.kind {
		case kindArray:
			c.arrDel(v)
		case kindRun:
			c.runDel(v)
		}
	}
}

func maxU16(a, b uint16) uint16 {
	if a > b {
		return a
	}
	return b
}

func minU16(a, b uint16) uint16 {
	if a < b {
		return a
	}
	return b
}

// arrAddRange merges the consecutive range [lo, hi] into the sorted array.
func (c *container) arrAddRange(lo, hi uint16) {
	idxLo, _ := find16(c.arr, lo)
	idxHi, _ := find16(c.arr, hi)
	// idxHi currently points at the first element >= hi; we want the
	// insertion point just past hi, i.e. first element > hi.
	for idxHi < len(c.arr) && c.arr[idxHi] == hi {
		idxHi++
	}

	newLen := int(hi) - int(lo) + 1
	tail := append([]uint16(nil), c.arr[idxHi:]...)
	merged := c.arr[:idxLo]
	for v := int(lo); v <= int(hi); v++ {
		merged = append(merged, uint16(v))
	}
	merged = append(merged, tail...)

	added := newLen - (idxHi - idxLo)
	c.arr = merged
	c.card += added
}

// arrRemoveRange deletes every value in [lo, hi] from the sorted array.
func (c *container) arrRemoveRange(lo, hi uint16) {
	idxLo, _ := find16(c.arr, lo)
	idxHi, _ := find16(c.arr, hi)
	for idxHi < len(c.arr) && c.arr[idxHi] == hi {
		idxHi++
	}
	if idxLo >= idxHi {
		return
	}

	removed := idxHi - idxLo
	c.arr = append(c.arr[:idxLo], c.arr[idxHi:]...)
	c.card -= removed
}

// bmpAddRange sets the bits in [lo, hi] word-granularly.
func (c *container) bmpAddRange(lo, hi uint16) {
	before := c.bmpCountRange(lo, hi)
	c.setBitRange(lo, hi, true)
	c.card += int(hi) - int(lo) + 1 - before
}

// bmpRemoveRange clears the bits in [lo, hi] word-granularly.
func (c *container) bmpRemoveRange(lo, hi uint16) {
	before := c.bmpCountRange(lo, hi)
	c.setBitRange(lo, hi, false)
	c.card -= before
}

// bmpFlipRange XORs the bits in [lo, hi] word-granularly.
func (c *container) bmpFlipRange(lo, hi uint16) {
	before := c.bmpCountRange(lo, hi)
	total := int(hi) - int(lo) + 1
	startWord, endWord := int(lo)>>6, int(hi)>>6
	for w := startWord; w <= endWord; w++ {
		mask := wordRangeMask(w, lo, hi)
		c.bmp[w] ^= mask
	}
	after := total - before
	c.card += after - before
}

// setBitRange sets or clears every bit in [lo, hi].
func (c *container) setBitRange(lo, hi uint16, value bool) {
	startWord, endWord := int(lo)>>6, int(hi)>>6
	for w := startWord; w <= endWord; w++ {
		mask := wordRangeMask(w, lo, hi)
		if value {
			c.bmp[w] |= mask
		} else {
			c.bmp[w] &^= mask
		}
	}
}

// wordRangeMask returns the bitmask of bits within word w that fall inside
// [lo, hi].
func wordRangeMask(w int, lo, hi uint16) uint64 {
	wordLo, wordHi := w*64, w*64+63
	mask := ^uint64(0)
	if int(lo) > wordLo {
		mask &^= (uint64(1) << uint(int(lo)-wordLo)) - 1
	}
	if int(hi) < wordHi {
		keep := uint(int(hi) - wordLo + 1)
		if keep < 64 {
			mask &= (uint64(1) << keep) - 1
		}
	}
	return mask
}

// bmpCountRange counts set bits in [lo, hi] via popcount over the masked words.
func (c *container) bmpCountRange(lo, hi uint16) int {
	startWord, endWord := int(lo)>>6, int(hi)>>6
	n := 0
	for w := startWord; w <= endWord; w++ {
		mask := wordRangeMask(w, lo, hi)
		n += bits.OnesCount64(c.bmp[w] & mask)
	}
	return n
}

// runAddRangeMerge merges [lo, hi] into the run list, coalescing any runs
// it touches or overlaps.
func (c *container) runAddRangeMerge(lo, hi uint16) {
	newStart, newEnd := lo, hi
	covered := 0

	i := 0
	var kept []run
	for i < len(c.run) {
		r := c.run[i]
		if int(r.last)+1 < int(newStart) {
			kept = append(kept, r)
			i++
			continue
		}
		if int(r.start) > int(newEnd)+1 {
			break
		}

		lo2, hi2 := maxU16(r.start, newStart), minU16(r.last, newEnd)
		if lo2 <= hi2 {
			covered += int(hi2) - int(lo2) + 1
		}
		if r.start < newStart {
			newStart = r.start
		}
		if r.last > newEnd {
			newEnd = r.last
		}
		i++
	}

	kept = append(kept, run{newStart, newEnd})
	kept = append(kept, c.run[i:]...)
	c.run = kept
	c.card += (int(newEnd) - int(newStart) + 1) - covered
}

// runRemoveRangeMerge removes [lo, hi] from the run list, trimming or
// splitting runs it overlaps.
func (c *container) runRemoveRangeMerge(lo, hi uint16) {
	var kept []run
	removed := 0
	for _, r := range c.run {
		lo2, hi2 := maxU16(r.start, lo), minU16(r.last, hi)
		if lo2 > hi2 {
			kept = append(kept, r)
			continue
		}
		removed += int(hi2) - int(lo2) + 1
		if r.start < lo {
			kept = append(kept, run{r.start, lo - 1})
		}
		if r.last > hi {
			kept = append(kept, run{hi + 1, r.last})
		}
	}
	c.run = kept
	c.card -= removed
}
