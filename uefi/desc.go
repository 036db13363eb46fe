// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"unsafe"

	"github.com/usbarmory/tamago/dma"
)

const align = 8

func marshalBinary(data any) (buf []byte, err error) {
	b := new(bytes.Buffer)
	err = binary.Write(b, binary.LittleEndian, data)
	return b.Bytes(), err
}

func unmarshalBinary(buf []byte, data any) (err error) {
	_, err = binary.Decode(buf, binary.LittleEndian, data)
	return
}

// decode reads a fixed layout structure from firmware memory.
func decode(data any, addr uint64) (err error) {
	if addr == 0 {
		return errors.New("invalid address")
	}

	t, err := marshalBinary(data)

	if err != nil {
		return
	}

	n := len(t) + (len(t) % align)

	r, err := dma.NewRegion(uint(addr), n, true)

	if err != nil {
		return
	}

	ptr, buf := r.Reserve(len(t), 0)
	defer r.Release(ptr)

	return unmarshalBinary(buf, data)
}

// copyString copies the NUL terminated UCS-2 string at addr to dst, up to size
// bytes, and returns the number of bytes copied including the terminator.
func copyString(dst unsafe.Pointer, size uint64, addr uint64) uint64 {
	size -= size % 2

	if addr == 0 || size == 0 {
		return 0
	}

	r, err := dma.NewRegion(uint(addr), int(size), false)

	if err != nil {
		return 0
	}

	ptr, buf := r.Reserve(int(size), 0)
	defer r.Release(ptr)

	out := unsafe.Slice((*uint16)(dst), size/2)

	for i := range out {
		out[i] = binary.LittleEndian.Uint16(buf[i*2:])

		if out[i] == 0 {
			return uint64(i+1) * 2
		}
	}

	return size
}
