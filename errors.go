// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring64

import "errors"

// Sentinel error kinds returned by this package. Use errors.Is to test for
// a specific kind; additional context is wrapped with fmt.Errorf("%w: ...").
var (
	// ErrInvalidArgument is returned for a malformed range (empty or
	// wrap-around).
	ErrInvalidArgument = errors.New("roaring64: invalid argument")

	// ErrOutOfRange is returned for a Select index at or past the
	// cardinality, for First/Last on an empty bitmap, and when a count or
	// cardinality exceeds a narrower integer the caller requested.
	ErrOutOfRange = errors.New("roaring64: out of range")

	// ErrUnsupported is returned for operations this core does not provide.
	ErrUnsupported = errors.New("roaring64: unsupported operation")

	// ErrIO wraps an underlying stream failure during serialization.
	ErrIO = errors.New("roaring64: io error")

	// ErrFormat is returned when serialized input fails structural
	// validation (unknown kind tag, oversized array/run count, truncated
	// stream).
	ErrFormat = errors.New("roaring64: format error")
)
