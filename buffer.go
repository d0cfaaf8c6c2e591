// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring64

import (
	"sync"

	"github.com/kelindar/bitmap"
)

// bitmapPool recycles the fixed-size word arrays backing bitmap-form
// containers, since array<->bitmap conversions are the hottest allocation
// path once a container crosses the 4096-element threshold.
var bitmapPool = sync.Pool{
	New: func() any {
		return make(bitmap.Bitmap, bitmapWords)
	},
}

// borrowBitmap returns a zeroed, pool-backed bitmap word array.
func borrowBitmap() bitmap.Bitmap {
	b := bitmapPool.Get().(bitmap.Bitmap)
	for i := range b {
		b[i] = 0
	}
	return b
}

// releaseBitmap returns a bitmap word array to the pool.
func releaseBitmap(b bitmap.Bitmap) {
	if cap(b) >= bitmapWords {
		bitmapPool.Put(b[:bitmapWords])
	}
}
