// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"bytes"
	"testing"
)

func TestParseGUID(t *testing.T) {
	g, err := ParseGUID("8be4df61-93ca-11d2-aa0d-00e098032b8c")

	if err != nil {
		t.Fatal(err)
	}

	native := []byte{
		0x61, 0xdf, 0xe4, 0x8b,
		0xca, 0x93,
		0xd2, 0x11,
		0xaa, 0x0d,
		0x00, 0xe0, 0x98, 0x03, 0x2b, 0x8c,
	}

	if !bytes.Equal(g[:], native) {
		t.Errorf("unexpected native layout %x", g[:])
	}

	if s := g.String(); s != "8be4df61-93ca-11d2-aa0d-00e098032b8c" {
		t.Errorf("unexpected string %s", s)
	}

	if g != EFI_GLOBAL_VARIABLE_GUID {
		t.Errorf("case insensitive parsing mismatch")
	}
}

func TestParseGUIDInvalid(t *testing.T) {
	for _, s := range []string{
		"",
		"8be4df61-93ca-11d2-aa0d",
		"8be4df61-93ca-11d2-aa0d-00e098032b8cff",
		"xbe4df61-93ca-11d2-aa0d-00e098032b8c",
	} {
		if _, err := ParseGUID(s); err == nil {
			t.Errorf("%q: expected error", s)
		}
	}
}

func TestGUIDIsZero(t *testing.T) {
	if !(GUID{}).IsZero() {
		t.Error("zero GUID not reported as such")
	}

	if EFI_SIMPLE_NETWORK_PROTOCOL_GUID.IsZero() {
		t.Error("non-zero GUID reported as zero")
	}
}
