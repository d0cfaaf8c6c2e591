// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring64

// Top-level set algebra. other is treated as read-only: any container
// imported from it into b is deep-cloned (spec.md §3's ownership rule), and
// self-aliasing (other == b) is handled before touching the tree at all.

// Or computes the union of b and other, storing the result in b.
func (b *Bitmap) Or(other *Bitmap) {
	if b == other {
		return
	}

	h, oc, ok := other.tree.min()
	for ok {
		if c, found := b.tree.search(h); found {
			containerOr(c, oc)
		} else {
			b.tree.insert(h, oc.clone())
		}
		h, oc, ok = other.tree.next(h)
	}
}

// And computes the intersection of b and other, storing the result in b.
func (b *Bitmap) And(other *Bitmap) {
	if b == other {
		return
	}

	var toRemove []highKey
	h, c, ok := b.tree.min()
	for ok {
		if oc, found := other.tree.search(h); found {
			containerAnd(c, oc)
			if c.isEmpty() {
				toRemove = append(toRemove, h)
			}
		} else {
			toRemove = append(toRemove, h)
		}
		h, c, ok = b.tree.next(h)
	}

	for _, k := range toRemove {
		b.tree.remove(k)
	}
}

// Xor computes the symmetric difference of b and other, storing the result
// in b.
func (b *Bitmap) Xor(other *Bitmap) {
	if b == other {
		b.Clear()
		return
	}

	var toRemove []highKey
	h, oc, ok := other.tree.min()
	for ok {
		if c, found := b.tree.search(h); found {
			containerXor(c, oc)
			if c.isEmpty() {
				toRemove = append(toRemove, h)
			}
		} else {
			b.tree.insert(h, oc.clone())
		}
		h, oc, ok = other.tree.next(h)
	}

	for _, k := range toRemove {
		b.tree.remove(k)
	}
}

// AndNot computes b &^ other (values in b but not in other), storing the
// result in b.
func (b *Bitmap) AndNot(other *Bitmap) {
	if b == other {
		b.Clear()
		return
	}

	var toRemove []highKey
	h, c, ok := b.tree.min()
	for ok {
		if oc, found := other.tree.search(h); found {
			containerAndNot(c, oc)
			if c.isEmpty() {
				toRemove = append(toRemove, h)
			}
		}
		h, c, ok = b.tree.next(h)
	}

	for _, k := range toRemove {
		b.tree.remove(k)
	}
}
