// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"slices"
	"testing"
)

func TestToUTF16(t *testing.T) {
	s := toUTF16("Boot0001")

	if len(s) != 9 || s[8] != 0 {
		t.Fatalf("missing terminator %v", s)
	}

	if got := fromUTF16(s); got != "Boot0001" {
		t.Errorf("unexpected round trip %q", got)
	}

	if s = toUTF16(""); !slices.Equal(s, []uint16{0}) {
		t.Errorf("unexpected empty string encoding %v", s)
	}
}

func TestFromUTF16(t *testing.T) {
	// terminator followed by stale data
	s := []uint16{'E', 'D', 'K', ' ', 'I', 'I', 0, 'X', 'Y'}

	if got := fromUTF16(s); got != "EDK II" {
		t.Errorf("unexpected string %q", got)
	}

	if got := fromUTF16([]uint16{'a', 'b'}); got != "ab" {
		t.Errorf("unexpected unterminated string %q", got)
	}
}

func TestDecodeUTF16(t *testing.T) {
	buf := []byte{'P', 0x00, 0xe9, 0x00, 0x00, 0x00, 'Z', 0x00}

	if got := decodeUTF16(buf); got != "Pé" {
		t.Errorf("unexpected string %q", got)
	}

	// odd trailing byte is ignored
	if got := decodeUTF16([]byte{'a', 0x00, 'b'}); got != "a" {
		t.Errorf("unexpected string %q", got)
	}
}
