// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"encoding/binary"
	"testing"

	"github.com/u-root/u-root/pkg/boot/bzimage"
)

func memoryMapBuffer(stride int, desc ...MemoryDescriptor) (buf []byte) {
	for _, d := range desc {
		b := make([]byte, stride)
		binary.LittleEndian.PutUint32(b[0:], d.Type)
		binary.LittleEndian.PutUint64(b[8:], d.PhysicalStart)
		binary.LittleEndian.PutUint64(b[16:], d.VirtualStart)
		binary.LittleEndian.PutUint64(b[24:], d.NumberOfPages)
		binary.LittleEndian.PutUint64(b[32:], d.Attribute)
		buf = append(buf, b...)
	}

	return
}

func TestDescriptorSize(t *testing.T) {
	if n := binary.Size(&MemoryDescriptor{}); n != descriptorSize {
		t.Fatalf("unexpected EFI_MEMORY_DESCRIPTOR size %d", n)
	}
}

func TestParseDescriptors(t *testing.T) {
	desc := []MemoryDescriptor{
		{Type: EfiConventionalMemory, PhysicalStart: 0x100000, NumberOfPages: 16, Attribute: 0xf},
		{Type: EfiLoaderCode, PhysicalStart: 0x200000, NumberOfPages: 2},
		{Type: EfiACPIMemoryNVS, PhysicalStart: 0x300000, NumberOfPages: 1},
	}

	// firmware descriptors are typically larger than EFI_MEMORY_DESCRIPTOR
	for _, stride := range []int{descriptorSize, 48} {
		m := &MemoryMap{DescriptorSize: uint64(stride)}

		if err := m.parseDescriptors(memoryMapBuffer(stride, desc...)); err != nil {
			t.Fatal(err)
		}

		if len(m.Descriptors) != len(desc) {
			t.Fatalf("stride %d: unexpected descriptor count %d", stride, len(m.Descriptors))
		}

		for i, d := range m.Descriptors {
			if *d != desc[i] {
				t.Errorf("stride %d: descriptor %d mismatch, %+v", stride, i, d)
			}
		}
	}
}

func TestParseDescriptorsInvalidSize(t *testing.T) {
	m := &MemoryMap{DescriptorSize: descriptorSize - 8}

	if err := m.parseDescriptors(make([]byte, 4*descriptorSize)); err == nil {
		t.Error("expected error")
	}
}

func TestPhysicalEnd(t *testing.T) {
	d := &MemoryDescriptor{PhysicalStart: 0x1000, NumberOfPages: 3}

	if d.PhysicalEnd() != 0x4000 || d.Size() != 3*PageSize {
		t.Errorf("unexpected range %#x (%d)", d.PhysicalEnd(), d.Size())
	}
}

func TestE820(t *testing.T) {
	m := &MemoryMap{
		Descriptors: []*MemoryDescriptor{
			{Type: EfiBootServicesData, PhysicalStart: 0x0, NumberOfPages: 1},
			{Type: EfiACPIReclaimMemory, PhysicalStart: 0x1000, NumberOfPages: 1},
			{Type: EfiACPIMemoryNVS, PhysicalStart: 0x2000, NumberOfPages: 1},
			{Type: EfiPersistentMemory, PhysicalStart: 0x3000, NumberOfPages: 1},
			{Type: EfiRuntimeServicesData, PhysicalStart: 0x4000, NumberOfPages: 2},
		},
	}

	want := []bzimage.E820Entry{
		{Addr: 0x0, Size: PageSize, MemType: bzimage.RAM},
		{Addr: 0x1000, Size: PageSize, MemType: bzimage.ACPI},
		{Addr: 0x2000, Size: PageSize, MemType: bzimage.NVS},
		{Addr: 0x3000, Size: PageSize, MemType: AddressRangePersistentMemory},
		{Addr: 0x4000, Size: 2 * PageSize, MemType: bzimage.Reserved},
	}

	e820, err := m.E820()

	if err != nil {
		t.Fatal(err)
	}

	if len(e820) != len(want) {
		t.Fatalf("unexpected entry count %d", len(e820))
	}

	for i := range want {
		if e820[i] != want[i] {
			t.Errorf("entry %d: got %+v, want %+v", i, e820[i], want[i])
		}
	}
}

func TestMemoryMapAddressEmpty(t *testing.T) {
	if addr := (&MemoryMap{}).Address(); addr != 0 {
		t.Errorf("unexpected address %#x", addr)
	}
}
