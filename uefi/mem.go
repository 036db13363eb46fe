// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"fmt"
	"unsafe"

	"github.com/u-root/u-root/pkg/boot/bzimage"

	"github.com/usbarmory/go-efi/efi"
)

const (
	// EFI Boot Services offset for GetMemoryMap
	getMemoryMap = 0x38
	// initial memory map allocation, in descriptors
	initialEntries = 64
	// EFI_MEMORY_DESCRIPTOR size up to Attribute
	descriptorSize = 40
)

// Advanced Configuration and Power Interface Specification (ACPI)
// Version 6.0 - Table 15-312 Address Range Types12
const AddressRangePersistentMemory = 7

// PageSize represents the EFI page size in bytes
const PageSize = 4096 // 4 KiB

// MemoryDescriptor represents an EFI Memory Descriptor
type MemoryDescriptor struct {
	Type          uint32
	_             uint32
	PhysicalStart uint64
	VirtualStart  uint64
	NumberOfPages uint64
	Attribute     uint64
}

// PhysicalEnd returns the descriptor physical end address.
func (d *MemoryDescriptor) PhysicalEnd() uint64 {
	return d.PhysicalStart + d.NumberOfPages*PageSize
}

// Size returns the descriptor size.
func (d *MemoryDescriptor) Size() int {
	return int(d.NumberOfPages * PageSize)
}

// E820 converts an EFI Memory Map entry to an x86 E820 one suitable for use
// after exiting EFI Boot Services.
func (d *MemoryDescriptor) E820() (bzimage.E820Entry, error) {
	e := bzimage.E820Entry{
		Addr: d.PhysicalStart,
		Size: d.NumberOfPages * PageSize,
	}

	// Unified Extensible Firmware Interface (UEFI) Specification
	// Version 2.10 - Table 7.10: Memory Type Usage after ExitBootServices()
	switch d.Type {
	case EfiLoaderCode, EfiLoaderData, EfiBootServicesCode, EfiBootServicesData, EfiConventionalMemory:
		e.MemType = bzimage.RAM
	case EfiPersistentMemory:
		e.MemType = AddressRangePersistentMemory
	case EfiACPIReclaimMemory:
		e.MemType = bzimage.ACPI
	case EfiACPIMemoryNVS:
		e.MemType = bzimage.NVS
	default:
		e.MemType = bzimage.Reserved
	}

	return e, nil
}

// MemoryMap represents an EFI Memory Map
type MemoryMap struct {
	MapSize           uint64
	Descriptors       []*MemoryDescriptor
	MapKey            uint64
	DescriptorSize    uint64
	DescriptorVersion uint32

	buf *efi.Vec[byte]
}

// Address returns the EFI Memory Map pointer.
func (m *MemoryMap) Address() uint64 {
	if m.buf == nil || m.buf.Len() == 0 {
		return 0
	}

	return ptrval(&m.buf.Slice()[0])
}

// E820 converts the EFI Memory Map to an x86 E820 one.
func (m *MemoryMap) E820() (e820 []bzimage.E820Entry, err error) {
	for _, desc := range m.Descriptors {
		e, err := desc.E820()

		if err != nil {
			return nil, err
		}

		e820 = append(e820, e)
	}

	return
}

// parseDescriptors decodes the memory map using the firmware descriptor size,
// which can be larger than EFI_MEMORY_DESCRIPTOR.
func (m *MemoryMap) parseDescriptors(buf []byte) (err error) {
	if m.DescriptorSize < descriptorSize {
		return fmt.Errorf("invalid descriptor size (%d)", m.DescriptorSize)
	}

	m.Descriptors = nil

	for i := uint64(0); i+descriptorSize <= uint64(len(buf)); i += m.DescriptorSize {
		d := &MemoryDescriptor{}

		if err = unmarshalBinary(buf[i:i+descriptorSize], d); err != nil {
			return
		}

		m.Descriptors = append(m.Descriptors, d)
	}

	return
}

// GetMemoryMap calls EFI_BOOT_SERVICES.GetMemoryMap().
func (s *BootServices) GetMemoryMap() (m *MemoryMap, err error) {
	m = &MemoryMap{
		buf: efi.NewVec[byte](initialEntries * 2 * descriptorSize),
	}

	err = m.buf.Fill(func(ptr unsafe.Pointer, size *uint64) efi.Status {
		return efi.Status(callService(s.base+getMemoryMap,
			[]uint64{
				ptrval(size),
				ptrval(ptr),
				ptrval(&m.MapKey),
				ptrval(&m.DescriptorSize),
				ptrval(&m.DescriptorVersion),
			},
		))
	})

	if err != nil {
		return nil, err
	}

	m.MapSize = uint64(m.buf.Len())

	return m, m.parseDescriptors(m.buf.Slice())
}
