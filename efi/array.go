// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package efi

import (
	"fmt"
	"reflect"
	"unsafe"
)

// ArrayBuffer implements a [Buffer] over inline storage of array type A,
// which must be an array of T (e.g. ArrayBuffer[uint32, [3]uint32]).
//
// The zero value is an empty buffer ready to use, its capacity is the array
// length and never changes.
type ArrayBuffer[T any, A any] struct {
	data A
	n    int
}

func (b *ArrayBuffer[T, A]) storage() []T {
	a := reflect.TypeFor[A]()

	if a.Kind() != reflect.Array || a.Elem() != reflect.TypeFor[T]() {
		panic(fmt.Sprintf("efi: invalid array buffer storage %v for %v", a, reflect.TypeFor[T]()))
	}

	return unsafe.Slice((*T)(unsafe.Pointer(&b.data)), a.Len())
}

// Slice returns the initialized elements.
func (b *ArrayBuffer[T, A]) Slice() []T {
	return b.storage()[:b.n:b.n]
}

// Len returns the number of initialized elements.
func (b *ArrayBuffer[T, A]) Len() int {
	return b.n
}

// Cap returns the array length.
func (b *ArrayBuffer[T, A]) Cap() int {
	return len(b.storage())
}

// Write implements the [Buffer] interface.
func (b *ArrayBuffer[T, A]) Write(f WriteFunc) error {
	return write(f, b.storage(), &b.n)
}
