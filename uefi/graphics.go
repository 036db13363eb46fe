// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

// EFI Graphics Output Protocol GUID
var EFI_GRAPHICS_OUTPUT_PROTOCOL_GUID = MustParseGUID("9042a9de-23dc-4a38-96fb-7aded080516a")

// EFI_GRAPHICS_PIXEL_FORMAT
const (
	PixelRedGreenBlueReserved8BitPerColor = iota
	PixelBlueGreenRedReserved8BitPerColor
	PixelBitMask
	PixelBltOnly
)

// ModeInformation represents an EFI Graphics Output Mode Information instance.
type ModeInformation struct {
	Version              uint32
	HorizontalResolution uint32
	VerticalResolution   uint32
	PixelFormat          uint32
	RedMask              uint32
	GreenMask            uint32
	BlueMask             uint32
	ReservedMask         uint32
	PixelsPerScanLine    uint32
}

// ProtocolMode represents an EFI Graphics Output Protocol Mode instance.
type ProtocolMode struct {
	MaxMode         uint32
	Mode            uint32
	Info            uint64
	SizeOfInfo      uint64
	FrameBufferBase uint64
	FrameBufferSize uint64
}

// GraphicsOutput represents an EFI Graphics Output Protocol instance.
type GraphicsOutput struct {
	QueryMode uint64
	SetMode   uint64
	Blt       uint64
	Mode      uint64
}

// FrameBuffer describes the current graphics mode linear frame buffer.
type FrameBuffer struct {
	Base   uint64
	Size   uint64
	Width  uint32
	Height uint32
	Stride uint32
	Format uint32
}

// FrameBuffer returns the linear frame buffer of the current mode, the
// address is zero for PixelBltOnly modes.
func (gop *GraphicsOutput) FrameBuffer() (fb *FrameBuffer, err error) {
	mode := &ProtocolMode{}
	info := &ModeInformation{}

	if err = decode(mode, gop.Mode); err != nil {
		return
	}

	if err = decode(info, mode.Info); err != nil {
		return
	}

	fb = &FrameBuffer{
		Width:  info.HorizontalResolution,
		Height: info.VerticalResolution,
		Stride: info.PixelsPerScanLine,
		Format: info.PixelFormat,
	}

	if info.PixelFormat != PixelBltOnly {
		fb.Base = mode.FrameBufferBase
		fb.Size = mode.FrameBufferSize
	}

	return
}

// GetGraphicsOutput locates and returns the EFI Graphics Output Protocol
// instance.
func (s *BootServices) GetGraphicsOutput() (gop *GraphicsOutput, err error) {
	var addr uint64

	if addr, err = s.LocateProtocol(EFI_GRAPHICS_OUTPUT_PROTOCOL_GUID); err != nil {
		return
	}

	gop = &GraphicsOutput{}
	err = decode(gop, addr)

	return
}
