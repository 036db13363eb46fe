// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package efi

import (
	"fmt"
	"math"
	"unsafe"
)

// WriteFunc represents a single invocation of an UEFI output function.
//
// On entry size holds the number of bytes available at ptr, ptr is nil when
// size is zero. On EFI_SUCCESS the function must set size to the number of
// bytes written, on EFI_BUFFER_TOO_SMALL to the number of bytes required.
//
// The pointer is only valid for the duration of the call.
type WriteFunc func(ptr unsafe.Pointer, size *uint64) Status

// Buffer represents storage which can be filled by an UEFI output function.
type Buffer[T any] interface {
	// Slice returns the initialized elements, the returned slice shares
	// the buffer storage.
	Slice() []T
	// Len returns the number of initialized elements.
	Len() int
	// Cap returns the number of elements available to a Write.
	Cap() int
	// Write invokes f exactly once against the whole buffer capacity.
	//
	// On success the buffer holds the elements reported by f, replacing
	// any previous content. On failure the buffer is left unchanged and
	// an EFI_BUFFER_TOO_SMALL error carries the required element count
	// (see [DataOf]).
	//
	// Write panics if f reports a size which is not a multiple of the
	// element size, whose element count does not fit an int or, on
	// success, exceeds the capacity.
	Write(f WriteFunc) error
}

func elementSize[T any]() uint64 {
	var t T

	n := uint64(unsafe.Sizeof(t))

	if n == 0 {
		panic("efi: zero-sized buffer element")
	}

	return n
}

// write performs a single UEFI output call against dst, which must span the
// entire available capacity, updating n on success.
func write[T any](f WriteFunc, dst []T, n *int) error {
	var ptr unsafe.Pointer

	elemSize := elementSize[T]()

	if len(dst) > 0 {
		ptr = unsafe.Pointer(&dst[0])
	}

	size := uint64(len(dst)) * elemSize
	status := f(ptr, &size)

	if size%elemSize != 0 {
		panic(fmt.Sprintf("efi: size %d is not a multiple of element size %d", size, elemSize))
	}

	count := size / elemSize

	if count > math.MaxInt {
		panic(fmt.Sprintf("efi: size %d exceeds addressable elements", size))
	}

	switch status {
	case EFI_SUCCESS:
		if count > uint64(len(dst)) {
			panic(fmt.Sprintf("efi: %d elements written to %d elements buffer", count, len(dst)))
		}

		*n = int(count)
		return nil
	case EFI_BUFFER_TOO_SMALL:
		return NewErrorWithData(status, int(count))
	default:
		return NewError(status)
	}
}
