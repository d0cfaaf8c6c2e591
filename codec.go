// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring64

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"
)

// Serialization format (spec.md §6.1): a little-endian u32 container count,
// then per container a 6-byte big-endian high key, a u8 kind tag, and a
// kind-specific payload. Not promised stable across versions; this package
// tolerates its own round-trip and rejects anything structurally invalid
// with ErrFormat.

// WriteTo serializes b to w, implementing io.WriterTo.
func (b *Bitmap) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer

	count := uint32(0)
	h, _, ok := b.tree.min()
	for ok {
		count++
		h, _, ok = b.tree.next(h)
	}

	if err := binary.Write(&buf, binary.LittleEndian, count); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrIO, err)
	}

	h, c, ok := b.tree.min()
	for ok {
		var key [6]byte
		h.writeBigEndian(key[:])
		if _, err := buf.Write(key[:]); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrIO, err)
		}
		if err := writeContainer(&buf, c); err != nil {
			return 0, err
		}
		h, c, ok = b.tree.next(h)
	}

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("%w: %v", ErrIO, err)
	}
	return int64(n), nil
}

func writeContainer(buf *bytes.Buffer, c *container) error {
	if err := buf.WriteByte(byte(c.kind)); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	switch c.kind {
	case kindArray:
		if err := binary.Write(buf, binary.LittleEndian, uint16(len(c.arr))); err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
		for _, v := range c.arr {
			if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
				return fmt.Errorf("%w: %v", ErrIO, err)
			}
		}
	case kindBitmap:
		if err := binary.Write(buf, binary.LittleEndian, uint16(bitmapWords)); err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
		for _, w := range c.bmp {
			if err := binary.Write(buf, binary.LittleEndian, w); err != nil {
				return fmt.Errorf("%w: %v", ErrIO, err)
			}
		}
	case kindRun:
		if err := binary.Write(buf, binary.LittleEndian, uint16(len(c.run))); err != nil {
			return fmt.Errorf("%w: %v", ErrIO, err)
		}
		for _, r := range c.run {
			if err := binary.Write(buf, binary.LittleEndian, r.start); err != nil {
				return fmt.Errorf("%w: %v", ErrIO, err)
			}
			if err := binary.Write(buf, binary.LittleEndian, r.last-r.start); err != nil {
				return fmt.Errorf("%w: %v", ErrIO, err)
			}
		}
	}
	return nil
}

// ReadFrom deserializes into b, replacing its current contents.
// Implements io.ReaderFrom.
func (b *Bitmap) ReadFrom(r io.Reader) (int64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrIO, err)
	}
	buf := bytes.NewReader(data)

	var count uint32
	if err := binary.Read(buf, binary.LittleEndian, &count); err != nil {
		return int64(len(data) - buf.Len()), fmt.Errorf("%w: truncated container count: %v", ErrFormat, err)
	}

	fresh := art{}
	for i := uint32(0); i < count; i++ {
		var keyBytes [6]byte
		if _, err := io.ReadFull(buf, keyBytes[:]); err != nil {
			return int64(len(data) - buf.Len()), fmt.Errorf("%w: truncated high key: %v", ErrFormat, err)
		}
		key := readHighKeyBigEndian(keyBytes[:])

		c, err := readContainer(buf)
		if err != nil {
			return int64(len(data) - buf.Len()), err
		}
		fresh.insert(key, c)
	}

	b.tree = fresh
	return int64(len(data) - buf.Len()), nil
}

func readContainer(r *bytes.Reader) (*container, error) {
	kindByte, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: truncated container kind: %v", ErrFormat, err)
	}
	if kindByte > byte(kindRun) {
		return nil, fmt.Errorf("%w: unknown container kind %d", ErrFormat, kindByte)
	}

	c := &container{kind: kind(kindByte)}
	switch c.kind {
	case kindArray:
		var n uint16
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("%w: truncated array length: %v", ErrFormat, err)
		}
		if n > arrayMaxCard {
			return nil, fmt.Errorf("%w: array length %d exceeds maximum", ErrFormat, n)
		}
		c.arr = make([]uint16, n)
		for i := range c.arr {
			if err := binary.Read(r, binary.LittleEndian, &c.arr[i]); err != nil {
				return nil, fmt.Errorf("%w: truncated array values: %v", ErrFormat, err)
			}
		}
		c.card = int(n)

	case kindBitmap:
		var n uint16
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("%w: truncated bitmap word count: %v", ErrFormat, err)
		}
		if int(n) != bitmapWords {
			return nil, fmt.Errorf("%w: bitmap word count %d != %d", ErrFormat, n, bitmapWords)
		}
		c.bmp = borrowBitmap()
		card := 0
		for i := range c.bmp {
			if err := binary.Read(r, binary.LittleEndian, &c.bmp[i]); err != nil {
				return nil, fmt.Errorf("%w: truncated bitmap words: %v", ErrFormat, err)
			}
			card += bits.OnesCount64(c.bmp[i])
		}
		c.card = card

	case kindRun:
		var n uint16
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("%w: truncated run count: %v", ErrFormat, err)
		}
		if n > runMaxRuns {
			return nil, fmt.Errorf("%w: run count %d exceeds maximum", ErrFormat, n)
		}
		c.run = make([]run, n)
		card := 0
		for i := range c.run {
			var start, lenMinusOne uint16
			if err := binary.Read(r, binary.LittleEndian, &start); err != nil {
				return nil, fmt.Errorf("%w: truncated run start: %v", ErrFormat, err)
			}
			if err := binary.Read(r, binary.LittleEndian, &lenMinusOne); err != nil {
				return nil, fmt.Errorf("%w: truncated run length: %v", ErrFormat, err)
			}
			c.run[i] = run{start: start, last: start + lenMinusOne}
			card += int(lenMinusOne) + 1
		}
		c.card = card
	}

	if c.card == 0 {
		return nil, fmt.Errorf("%w: container deserialized with zero cardinality", ErrFormat)
	}
	return c, nil
}
