// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"unsafe"

	"github.com/usbarmory/go-efi/efi"
)

// EFI Boot Services offsets
const (
	handleProtocol = 0x098
	locateHandle   = 0x0b0
	locateProtocol = 0x140
)

// EFI_LOCATE_SEARCH_TYPE
const (
	AllHandles = iota
	ByRegisterNotify
	ByProtocol
)

// HandleProtocol calls EFI_BOOT_SERVICES.HandleProtocol().
func (s *BootServices) HandleProtocol(handle uint64, guid GUID) (addr uint64, err error) {
	status := callService(s.base+handleProtocol,
		[]uint64{
			handle,
			guid.ptrval(),
			ptrval(&addr),
		},
	)

	return addr, parseStatus(status)
}

// LocateProtocol calls EFI_BOOT_SERVICES.LocateProtocol().
func (s *BootServices) LocateProtocol(guid GUID) (addr uint64, err error) {
	status := callService(s.base+locateProtocol,
		[]uint64{
			guid.ptrval(),
			0,
			ptrval(&addr),
		},
	)

	return addr, parseStatus(status)
}

// LocateHandle calls EFI_BOOT_SERVICES.LocateHandle() to return the handles
// supporting the argument protocol, or all handles for a zero GUID.
func (s *BootServices) LocateHandle(guid GUID) (handles []uint64, err error) {
	searchType := uint64(ByProtocol)
	protocol := guid.ptrval()

	if guid.IsZero() {
		searchType = AllHandles
		protocol = 0
	}

	buf := efi.NewVec[uint64](0)

	err = buf.Fill(func(ptr unsafe.Pointer, size *uint64) efi.Status {
		return efi.Status(callService(s.base+locateHandle,
			[]uint64{
				searchType,
				protocol,
				0,
				ptrval(size),
				ptrval(ptr),
			},
		))
	})

	return buf.Slice(), err
}
