// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring64

// runFind locates the run containing value, or the insertion index if no
// run contains it. ok is true only when value falls inside an existing run.
func (c *container) runFind(value uint16) (idx int, ok bool) {
	lo, hi := 0, len(c.run)
	for lo < hi {
		mid := (lo + hi) >> 1
		switch {
		case value < c.run[mid].start:
			hi = mid
		case value > c.run[mid].last:
			lo = mid + 1
		default:
			return mid, true
		}
	}
	return lo, false
}

// runAdd inserts value into the run form, merging into or between adjacent
// runs as needed. Returns true if value was not already present.
func (c *container) runAdd(value uint16) bool {
	idx, found := c.runFind(value)
	if found {
		return false
	}

	mergeLeft := idx > 0 && c.run[idx-1].last+1 == value
	mergeRight := idx < len(c.run) && c.run[idx].start-1 == value

	switch {
	case mergeLeft && mergeRight:
		c.run[idx-1].last = c.run[idx].last
		c.runRemoveAt(idx)
	case mergeLeft:
		c.run[idx-1].last = value
	case mergeRight:
		c.run[idx].start = value
	default:
		c.runInsertAt(idx, run{value, value})
	}

	c.card++
	return true
}

// runDel removes value from the run form, splitting a run if value lies in
// its interior. Returns true if value was present.
func (c *container) runDel(value uint16) bool {
	idx, found := c.runFind(value)
	if !found {
		return false
	}

	r := c.run[idx]
	switch {
	case r.start == r.last:
		c.runRemoveAt(idx)
	case value == r.start:
		c.run[idx].start = value + 1
	case value == r.last:
		c.run[idx].last = value - 1
	default:
		c.run[idx].last = value - 1
		c.runInsertAt(idx+1, run{value + 1, r.last})
	}

	c.card--
	return true
}

// runRank counts elements <= value by accumulating full run lengths up to
// the containing (or next) run, then the offset within it.
func (c *container) runRank(value uint16) int {
	idx, found := c.runFind(value)
	n := 0
	for i := 0; i < idx; i++ {
		n += c.run[i].length()
	}
	if found {
		n += int(value) - int(c.run[idx].start) + 1
	}
	return n
}

// runSelect returns the k-th (0-indexed) element via cumulative length scan.
func (c *container) runSelect(k int) (uint16, bool) {
	remaining := k
	for _, r := range c.run {
		n := r.length()
		if remaining < n {
			return r.start + uint16(remaining), true
		}
		remaining -= n
	}
	return 0, false
}

// runInsertAt inserts r at index idx, shifting subsequent runs right.
func (c *container) runInsertAt(idx int, r run) {
	c.run = append(c.run, run{})
	copy(c.run[idx+1:], c.run[idx:len(c.run)-1])
	c.run[idx] = r
}

// runRemoveAt deletes the run at index idx, shifting subsequent runs left.
func (c *container) runRemoveAt(idx int) {
	copy(c.run[idx:], c.run[idx+1:])
	c.run = c.run[:len(c.run)-1]
}

// runToArray converts the run form to array form in place.
func (c *container) runToArray() {
	out := make([]uint16, 0, c.card)
	for _, r := range c.run {
		for v := int(r.start); v <= int(r.last); v++ {
			out = append(out, uint16(v))
		}
	}
	c.run = nil
	c.arr = out
	c.kind = kindArray
}

// runToBitmap converts the run form to bitmap form in place.
func (c *container) runToBitmap() {
	dst := borrowBitmap()
	for _, r := range c.run {
		for v := int(r.start); v <= int(r.last); v++ {
			dst.Set(uint32(v))
		}
	}
	c.run = nil
	c.bmp = dst
	c.kind = kindBitmap
}
