// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"encoding/binary"
	"slices"
	"unicode/utf16"
)

const maxVendorLength = 64

// toUTF16 converts a string to a NUL terminated UCS-2 string.
func toUTF16(s string) []uint16 {
	return append(utf16.Encode([]rune(s)), 0)
}

// fromUTF16 converts a, possibly NUL terminated, UCS-2 string.
func fromUTF16(s []uint16) string {
	if i := slices.Index(s, 0); i >= 0 {
		s = s[:i]
	}

	return string(utf16.Decode(s))
}

// decodeUTF16 converts a, possibly NUL terminated, little-endian UCS-2 byte
// string.
func decodeUTF16(buf []byte) string {
	s := make([]uint16, len(buf)/2)

	for i := range s {
		s[i] = binary.LittleEndian.Uint16(buf[i*2:])
	}

	return fromUTF16(s)
}
