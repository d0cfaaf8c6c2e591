// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring64

// Ordered traversal primitives over the tree. Because the tree has at most
// 6 levels (one per high-key byte), a fresh top-down walk per call is cheap
// enough that no persistent iterator stack is needed; iterator.go builds its
// cursor on top of these by remembering the last key returned.

// min returns the leaf holding the smallest key in the tree.
func (t *art) min() (highKey, *container, bool) {
	leaf, ok := minNode(t.root)
	if !ok {
		return highKey{}, nil, false
	}
	return leaf.key, leaf.val, true
}

// max returns the leaf holding the largest key in the tree.
func (t *art) max() (highKey, *container, bool) {
	leaf, ok := maxNode(t.root)
	if !ok {
		return highKey{}, nil, false
	}
	return leaf.key, leaf.val, true
}

// next returns the smallest key strictly greater than key.
func (t *art) next(key highKey) (highKey, *container, bool) {
	leaf, ok := nextAfter(t.root, key, 0)
	if !ok {
		return highKey{}, nil, false
	}
	return leaf.key, leaf.val, true
}

// prev returns the largest key strictly less than key.
func (t *art) prev(key highKey) (highKey, *container, bool) {
	leaf, ok := prevBefore(t.root, key, 0)
	if !ok {
		return highKey{}, nil, false
	}
	return leaf.key, leaf.val, true
}

// seekGE returns the smallest key >= key.
func (t *art) seekGE(key highKey) (highKey, *container, bool) {
	leaf, ok := seekGENode(t.root, key, 0)
	if !ok {
		return highKey{}, nil, false
	}
	return leaf.key, leaf.val, true
}

// seekLE returns the largest key <= key.
func (t *art) seekLE(key highKey) (highKey, *container, bool) {
	leaf, ok := seekLENode(t.root, key, 0)
	if !ok {
		return highKey{}, nil, false
	}
	return leaf.key, leaf.val, true
}

func minNode(n any) (*artLeaf, bool) {
	switch v := n.(type) {
	case nil:
		return nil, false
	case *artLeaf:
		return v, true
	case artNode:
		_, child, ok := v.minChild()
		if !ok {
			return nil, false
		}
		return minNode(child)
	}
	return nil, false
}

func maxNode(n any) (*artLeaf, bool) {
	switch v := n.(type) {
	case nil:
		return nil, false
	case *artLeaf:
		return v, true
	case artNode:
		_, child, ok := v.maxChild()
		if !ok {
			return nil, false
		}
		return maxNode(child)
	}
	return nil, false
}

// comparePrefix compares an internal node's compressed prefix against
// key[depth:], returning -1/0/1. A node whose prefix sorts above or below
// key at this depth means every leaf beneath it sorts the same way.
func comparePrefix(prefix []byte, key highKey, depth int) int {
	for i, pb := range prefix {
		if depth+i >= 6 {
			return 0
		}
		kb := key[depth+i]
		switch {
		case pb < kb:
			return -1
		case pb > kb:
			return 1
		}
	}
	return 0
}

func nextAfter(n any, key highKey, depth int) (*artLeaf, bool) {
	switch v := n.(type) {
	case nil:
		return nil, false
	case *artLeaf:
		if key.less(v.key) {
			return v, true
		}
		return nil, false
	case artNode:
		prefix := v.prefixBytes()
		switch comparePrefix(prefix, key, depth) {
		case 1:
			return minNode(v)
		case -1:
			return nil, false
		}

		depth += len(prefix)
		if depth >= 6 {
			return nil, false
		}
		b := key[depth]

		if child := v.findChild(b); child != nil {
			if res, ok := nextAfter(child, key, depth+1); ok {
				return res, true
			}
		}

		var result *artLeaf
		if b < 255 {
			v.seekAsc(b+1, func(_ byte, c any) bool {
				if leaf, ok := minNode(c); ok {
					result = leaf
				}
				return false
			})
		}
		if result != nil {
			return result, true
		}
		return nil, false
	}
	return nil, false
}

func prevBefore(n any, key highKey, depth int) (*artLeaf, bool) {
	switch v := n.(type) {
	case nil:
		return nil, false
	case *artLeaf:
		if v.key.less(key) {
			return v, true
		}
		return nil, false
	case artNode:
		prefix := v.prefixBytes()
		switch comparePrefix(prefix, key, depth) {
		case -1:
			return maxNode(v)
		case 1:
			return nil, false
		}

		depth += len(prefix)
		if depth >= 6 {
			return nil, false
		}
		b := key[depth]

		if child := v.findChild(b); child != nil {
			if res, ok := prevBefore(child, key, depth+1); ok {
				return res, true
			}
		}

		var result *artLeaf
		if b > 0 {
			v.seekDesc(b-1, func(_ byte, c any) bool {
				if leaf, ok := maxNode(c); ok {
					result = leaf
				}
				return false
			})
		}
		if result != nil {
			return result, true
		}
		return nil, false
	}
	return nil, false
}

func seekGENode(n any, key highKey, depth int) (*artLeaf, bool) {
	switch v := n.(type) {
	case nil:
		return nil, false
	case *artLeaf:
		if !v.key.less(key) {
			return v, true
		}
		return nil, false
	case artNode:
		prefix := v.prefixBytes()
		switch comparePrefix(prefix, key, depth) {
		case 1:
			return minNode(v)
		case -1:
			return nil, false
		}

		depth += len(prefix)
		if depth >= 6 {
			return minNode(v)
		}
		b := key[depth]

		if child := v.findChild(b); child != nil {
			if res, ok := seekGENode(child, key, depth+1); ok {
				return res, true
			}
		}

		var result *artLeaf
		if b < 255 {
			v.seekAsc(b+1, func(_ byte, c any) bool {
				if leaf, ok := minNode(c); ok {
					result = leaf
				}
				return false
			})
		}
		if result != nil {
			return result, true
		}
		return nil, false
	}
	return nil, false
}

func seekLENode(n any, key highKey, depth int) (*artLeaf, bool) {
	switch v := n.(type) {
	case nil:
		return nil, false
	case *artLeaf:
		if !key.less(v.key) {
			return v, true
		}
		return nil, false
	case artNode:
		prefix := v.prefixBytes()
		switch comparePrefix(prefix, key, depth) {
		case -1:
			return maxNode(v)
		case 1:
			return nil, false
		}

		depth += len(prefix)
		if depth >= 6 {
			return maxNode(v)
		}
		b := key[depth]

		if child := v.findChild(b); child != nil {
			if res, ok := seekLENode(child, key, depth+1); ok {
				return res, true
			}
		}

		var result *artLeaf
		if b > 0 {
			v.seekDesc(b-1, func(_ byte, c any) bool {
				if leaf, ok := maxNode(c); ok {
					result = leaf
				}
				return false
			})
		}
		if result != nil {
			return result, true
		}
		return nil, false
	}
	return nil, false
}
