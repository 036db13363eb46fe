// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"encoding/binary"
	"io"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/usbarmory/go-efi/efi"
)

const (
	// EFI ConOut offset for OutputString
	outputString = 0x08
	// EFI ConOut offset for ClearScreen
	clearScreen = 0x30
	// EFI ConIn offset for ReadKeyStroke
	readKeyStroke = 0x08
)

// InputKey represents an EFI Input Key descriptor.
type InputKey struct {
	ScanCode    uint16
	UnicodeChar [2]byte
}

// Console implements the [io.ReadWriter] interface over EFI Simple Text
// Input/Output protocol.
type Console struct {
	io.ReadWriter

	// ForceLine controls whether line feeds (LF) should be supplemented
	// with a carriage return (CR).
	ForceLine bool

	// ReplaceTabs controls whether Console I/O output should have Tab
	// characters replaced with a number of spaces.
	ReplaceTabs int

	// EFI Simple Text Input/Output Protocol instances
	In  uint64
	Out uint64
}

// Input calls EFI_SIMPLE_TEXT_INPUT_PROTOCOL.ReadKeyStroke().
func (c *Console) Input(k *InputKey) (status uint64) {
	if c.In == 0 {
		return uint64(efi.EFI_NOT_READY)
	}

	return callService(c.In+readKeyStroke,
		[]uint64{
			c.In,
			ptrval(k),
		},
	)
}

// Output calls EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL.OutputString() with an UCS-2
// little-endian string, the NUL terminator is added if missing.
func (c *Console) Output(p []byte) (status uint64) {
	if n := len(p); n < 2 || p[n-2] != 0x00 || p[n-1] != 0x00 {
		p = append(p, 0x00, 0x00)
	}

	if c.Out == 0 {
		return
	}

	return callService(c.Out+outputString,
		[]uint64{
			c.Out,
			ptrval(&p[0]),
		},
	)
}

// ClearScreen calls EFI_SIMPLE_TEXT_OUTPUT_PROTOCOL.ClearScreen().
func (c *Console) ClearScreen() (err error) {
	if c.Out == 0 {
		return
	}

	status := callService(c.Out+clearScreen,
		[]uint64{
			c.Out,
		},
	)

	return parseStatus(status)
}

// Read available data to buffer from console.
func (c *Console) Read(p []byte) (n int, err error) {
	k := &InputKey{}

	for n < len(p) {
		switch status := efi.Status(c.Input(k)); status {
		case efi.EFI_SUCCESS:
			r := rune(binary.LittleEndian.Uint16(k.UnicodeChar[:]))

			if r == 0 || utf8.RuneLen(r) > len(p)-n {
				continue
			}

			n += utf8.EncodeRune(p[n:], r)
		case efi.EFI_NOT_READY:
			return
		default:
			return n, status.Err()
		}
	}

	return
}

// Write data from buffer to console.
//
// Characters which cannot be rendered (EFI_WARN_UNKNOWN_GLYPH) are not
// reported as an error.
func (c *Console) Write(p []byte) (n int, err error) {
	var s []byte

	if len(p) == 0 {
		return
	}

	// We receive an UTF-8 string but we can output only UTF-16 ones.
	b := utf16.Encode([]rune(string(p)))

	for _, r := range b {
		if r == 0x09 && c.ReplaceTabs > 0 { // Tab
			for i := 0; i < c.ReplaceTabs; i++ {
				s = append(s, []byte{0x20, 0x00}...) // Space
			}
			continue
		}

		s = binary.LittleEndian.AppendUint16(s, r)

		if r == 0x0a && c.ForceLine { // LF
			s = append(s, []byte{0x0d, 0x00}...) // CR
		}
	}

	err = parseStatus(c.Output(s))

	if err = efi.IgnoreWarning(err, efi.EFI_WARN_UNKNOWN_GLYPH); err != nil {
		return
	}

	return len(p), nil
}
