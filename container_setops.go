// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring64

import (
	"math/bits"

	"github.com/kelindar/bitmap"
)

// Set-algebra dispatch across the 3x3 matrix of (left form, right form).
// array-array gets dedicated sorted-sequence algorithms for all four
// operations and run-run for or/and (the common small-container cases);
// every other pairing - including bitmap-bitmap and run-run xor/andNot - is
// resolved by materializing both sides as bitmaps and
// operating word-wise, which is also the efficient path whenever either
// side is already a bitmap. c2 is never mutated (it may be owned by a
// read-only right-hand bitmap, per spec.md §3's ownership rule).

// containerOr computes c1 = c1 | c2 in place.
func containerOr(c1, c2 *container) {
	switch {
	case c1.kind == kindArray && c2.kind == kindArray:
		c1.arr = arrUnion(c1.arr, c2.arr)
		c1.card = len(c1.arr)
	case c1.kind == kindRun && c2.kind == kindRun:
		c1.run = runUnion(c1.run, c2.run)
		c1.card = runsCard(c1.run)
	default:
		viaBitmap(c1, c2, orWords)
	}
	c1.convertIfNeeded()
}

// containerAnd computes c1 = c1 & c2 in place.
func containerAnd(c1, c2 *container) {
	switch {
	case c1.kind == kindArray && c2.kind == kindArray:
		c1.arr = arrIntersect(c1.arr, c2.arr)
		c1.card = len(c1.arr)
	case c1.kind == kindRun && c2.kind == kindRun:
		c1.run = runIntersect(c1.run, c2.run)
		c1.card = runsCard(c1.run)
	default:
		viaBitmap(c1, c2, andWords)
	}
	c1.convertIfNeeded()
}

// containerXor computes c1 = c1 ^ c2 in place.
func containerXor(c1, c2 *container) {
	switch {
	case c1.kind == kindArray && c2.kind == kindArray:
		c1.arr = arrXor(c1.arr, c2.arr)
		c1.card = len(c1.arr)
	default:
		viaBitmap(c1, c2, xorWords)
	}
	c1.convertIfNeeded()
}

// containerAndNot computes c1 = c1 &^ c2 in place.
func containerAndNot(c1, c2 *container) {
	switch {
	case c1.kind == kindArray && c2.kind == kindArray:
		c1.arr = arrDiff(c1.arr, c2.arr)
		c1.card = len(c1.arr)
	default:
		viaBitmap(c1, c2, andNotWords)
	}
	c1.convertIfNeeded()
}

// ---------------------------------------- array-array ----------------------------------------

func arrIntersect(a, b []uint16) []uint16 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]uint16, 0, n)
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return out
}

func arrUnion(a, b []uint16) []uint16 {
	out := make([]uint16, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, a[i])
			i++
			j++
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

func arrXor(a, b []uint16) []uint16 {
	out := make([]uint16, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			i++
			j++
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}

func arrDiff(a, b []uint16) []uint16 {
	out := make([]uint16, 0, len(a))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			i++
			j++
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		default:
			j++
		}
	}
	out = append(out, a[i:]...)
	return out
}

// ---------------------------------------- run-run ----------------------------------------

func runUnion(a, b []run) []run {
	merged := make([]run, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].start <= b[j].start {
			merged = append(merged, a[i])
			i++
		} else {
			merged = append(merged, b[j])
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)

	out := merged[:0]
	for _, r := range merged {
		if len(out) > 0 && int(r.start) <= int(out[len(out)-1].last)+1 {
			if r.last > out[len(out)-1].last {
				out[len(out)-1].last = r.last
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

func runIntersect(a, b []run) []run {
	out := make([]run, 0)
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		lo, hi := maxU16(a[i].start, b[j].start), minU16(a[i].last, b[j].last)
		if lo <= hi {
			out = append(out, run{lo, hi})
		}
		switch {
		case a[i].last < b[j].last:
			i++
		case b[j].last < a[i].last:
			j++
		default:
			i++
			j++
		}
	}
	return out
}

func runsCard(rs []run) int {
	n := 0
	for _, r := range rs {
		n += r.length()
	}
	return n
}

// ---------------------------------------- via bitmap ----------------------------------------

// materializeBitmap returns a bitmap view of c's values. If c is already in
// bitmap form the view aliases c.bmp (owned=false); otherwise a fresh
// pooled bitmap is built from c's contents and owned=true.
func materializeBitmap(c *container) (b bitmap.Bitmap, owned bool) {
	if c.kind == kindBitmap {
		return c.bmp, false
	}

	b = borrowBitmap()
	switch c.kind {
	case kindArray:
		for _, v := range c.arr {
			b.Set(uint32(v))
		}
	case kindRun:
		for _, r := range c.run {
			for v := int(r.start); v <= int(r.last); v++ {
				b.Set(uint32(v))
			}
		}
	}
	return b, true
}

func andWords(a, b bitmap.Bitmap) {
	for i := range a {
		a[i] &= b[i]
	}
}

func orWords(a, b bitmap.Bitmap) {
	for i := range a {
		a[i] |= b[i]
	}
}

func xorWords(a, b bitmap.Bitmap) {
	for i := range a {
		a[i] ^= b[i]
	}
}

func andNotWords(a, b bitmap.Bitmap) {
	for i := range a {
		a[i] &^= b[i]
	}
}

// viaBitmap applies op(a, b) over word-level bitmap views of c1 and c2 and
// installs the result (possibly a freshly allocated bitmap) as c1's new
// form, recomputing cardinality from the words.
func viaBitmap(c1, c2 *container, op func(a, b bitmap.Bitmap)) {
	a, aOwned := materializeBitmap(c1)
	b, bOwned := materializeBitmap(c2)

	op(a, b)

	card := 0
	for _, w := range a {
		card += bits.OnesCount64(w)
	}

	if aOwned {
		c1.arr = nil
		c1.run = nil
	}
	c1.bmp = a
	c1.kind = kindBitmap
	c1.card = card

	if bOwned {
		releaseBitmap(b)
	}
}
