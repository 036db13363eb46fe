// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package efi

// Vec implements a growable [Buffer] over a Go slice, optionally limited to a
// maximum length.
//
// The whole allocated capacity of the slice, not only its length, is made
// available to output functions.
type Vec[T any] struct {
	buf []T

	maxLen  int
	limited bool
}

// NewVec returns an empty buffer with the argument initial capacity, which
// can be zero.
func NewVec[T any](capacity int) *Vec[T] {
	return &Vec[T]{
		buf: make([]T, 0, capacity),
	}
}

// NewLimitedVec returns an empty buffer with the argument initial capacity
// which never grows beyond maxLen elements.
func NewLimitedVec[T any](capacity int, maxLen int) *Vec[T] {
	if maxLen < 0 {
		panic("efi: negative buffer limit")
	}

	return &Vec[T]{
		buf:     make([]T, 0, min(capacity, maxLen)),
		maxLen:  maxLen,
		limited: true,
	}
}

// MaxLen returns the buffer length limit, if any.
func (v *Vec[T]) MaxLen() (n int, ok bool) {
	return v.maxLen, v.limited
}

// Slice returns the initialized elements.
func (v *Vec[T]) Slice() []T {
	return v.buf[:len(v.buf):len(v.buf)]
}

// Len returns the number of initialized elements.
func (v *Vec[T]) Len() int {
	return len(v.buf)
}

// Cap returns the number of elements available to a write without growing,
// never more than the length limit.
func (v *Vec[T]) Cap() int {
	if v.limited {
		return min(cap(v.buf), v.maxLen)
	}

	return cap(v.buf)
}

// Reset discards the buffer content, the allocation is retained.
func (v *Vec[T]) Reset() {
	v.buf = v.buf[:0]
}

// Write implements the [Buffer] interface, it never grows the buffer.
func (v *Vec[T]) Write(f WriteFunc) (err error) {
	n := len(v.buf)

	if err = write(f, v.buf[:v.Cap()], &n); err != nil {
		return
	}

	v.buf = v.buf[:n]

	return
}

// Fill invokes f against the current capacity and, when it reports
// EFI_BUFFER_TOO_SMALL, grows the buffer to the required length and invokes f
// a second, and last, time.
//
// When the required length exceeds the buffer limit the EFI_BUFFER_TOO_SMALL
// error is returned without any allocation. Any error of the second
// invocation, including another EFI_BUFFER_TOO_SMALL, is returned as is.
func (v *Vec[T]) Fill(f WriteFunc) (err error) {
	err = v.Write(f)

	if StatusOf(err) != EFI_BUFFER_TOO_SMALL {
		return
	}

	required, ok := DataOf[int](err)

	if !ok || v.limited && required > v.maxLen {
		return
	}

	v.buf = v.buf[:0]

	if cap(v.buf) < required {
		v.buf = make([]T, 0, required)
	}

	return v.Write(f)
}
