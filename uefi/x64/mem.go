// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package x64

import (
	"fmt"
	"runtime"
	_ "unsafe"

	"github.com/usbarmory/go-efi/uefi"
)

//go:linkname _unused runtime.ramStart
var _unused uint64 = 0x00100000 // overridden in x64.s

// RamSize represents the runtime heap size allocated from UEFI memory.
//
//go:linkname RamSize runtime.ramSize
var RamSize uint64 = 0x2c000000 // 704MB

// heapStart returns the end of the loader code region hosting the runtime.
func heapStart(memoryMap *uefi.MemoryMap, ramStart uint64) uint64 {
	for _, desc := range memoryMap.Descriptors {
		if desc.Type != uefi.EfiLoaderCode {
			continue
		}

		if ramStart >= desc.PhysicalStart && ramStart < desc.PhysicalEnd() {
			return desc.PhysicalEnd()
		}
	}

	return 0
}

func allocateHeap() {
	memoryMap, err := UEFI.Boot.GetMemoryMap()

	if err != nil {
		fmt.Printf("WARNING: could not get memory map, %v\n", err)
		return
	}

	ramStart, ramEnd := runtime.MemRegion()
	start := heapStart(memoryMap, uint64(ramStart))

	if start == 0 {
		fmt.Println("WARNING: could not find heap offset")
		return
	}

	if err := UEFI.Boot.AllocatePages(
		uefi.AllocateAddress,
		uefi.EfiLoaderData,
		int(uint64(ramEnd)-start),
		start,
	); err != nil {
		fmt.Printf("WARNING: could not allocate heap at %#x, %v\n", start, err)
	}
}
