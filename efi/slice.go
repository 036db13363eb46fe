// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package efi

// SliceBuffer implements a [Buffer] over caller owned storage, its capacity
// never changes.
type SliceBuffer[T any] struct {
	buf []T
	n   int
}

// NewSliceBuffer returns an empty buffer over the whole length of s.
//
// The content of s is made available to the output function and is only
// exposed through [SliceBuffer.Slice] once written by a successful
// [SliceBuffer.Write].
func NewSliceBuffer[T any](s []T) *SliceBuffer[T] {
	return &SliceBuffer[T]{
		buf: s,
	}
}

// Slice returns the initialized elements.
func (b *SliceBuffer[T]) Slice() []T {
	return b.buf[:b.n:b.n]
}

// Len returns the number of initialized elements.
func (b *SliceBuffer[T]) Len() int {
	return b.n
}

// Cap returns the buffer capacity.
func (b *SliceBuffer[T]) Cap() int {
	return len(b.buf)
}

// Write implements the [Buffer] interface.
func (b *SliceBuffer[T]) Write(f WriteFunc) error {
	return write(f, b.buf, &b.n)
}
