// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build amd64

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"regexp"
	"strings"

	"github.com/u-root/u-root/pkg/boot/bzimage"

	"github.com/usbarmory/armory-boot/exec"
	"github.com/usbarmory/tamago/dma"

	"github.com/usbarmory/go-efi/shell"
	"github.com/usbarmory/go-efi/uapi"
	"github.com/usbarmory/go-efi/uefi"
	"github.com/usbarmory/go-efi/uefi/x64"
)

// Linux kernel loading area
const (
	memoryStart = 0x80000000
	memorySize  = 0x10000000
)

// CommandLine represents the Linux kernel boot parameters used when the boot
// entry does not specify any.
var CommandLine = "console=ttyS0,115200,8n1"

// DefaultEntry represents the Boot Loader Specification entry used when no
// path is passed to `linux`.
var DefaultEntry = "loader/entries/go-efi.conf"

func init() {
	shell.Add(shell.Cmd{
		Name:    "linux",
		Args:    1,
		Pattern: regexp.MustCompile(`^linux(.*)`),
		Syntax:  "(loader entry path)?",
		Help:    "boot Linux kernel bzImage",
		Fn:      linuxCmd,
	})
}

func findMemory(m []bzimage.E820Entry, start int, size int) (mem *dma.Region, err error) {
	for _, e := range m {
		if e.MemType != bzimage.RAM || e.Size < uint64(size) {
			continue
		}

		if uint64(start) < e.Addr || uint64(start)+uint64(size) > e.Addr+e.Size {
			continue
		}

		if mem, err = dma.NewRegion(uint(start), size, false); err != nil {
			return
		}

		log.Printf("allocating memory range %#08x - %#08x", start, start+size)
		mem.Reserve(size, 0)

		break
	}

	if mem == nil {
		err = errors.New("could not find memory for kernel loading")
	}

	return
}

func cleanup() {
	log.Printf("exiting EFI boot services")

	if _, err := x64.UEFI.Boot.ExitBootServices(); err != nil {
		log.Printf("could not exit EFI boot services, %v\n", err)
	}
}

func loadEntry(p string) (entry *uapi.Entry, err error) {
	var fsys fs.FS

	if len(p) == 0 {
		p = DefaultEntry
	}

	if fsys, err = root(); err != nil {
		return
	}

	log.Printf("loading boot entry %s", p)

	if entry, err = uapi.LoadEntry(fsys, cleanPath(p)); err != nil {
		return nil, fmt.Errorf("could not load entry, %w", err)
	}

	if len(entry.Linux) == 0 {
		return nil, errors.New("entry does not specify a kernel")
	}

	if len(entry.Options) == 0 {
		entry.Options = CommandLine
	}

	return
}

func linuxCmd(_ *shell.Interface, arg []string) (res string, err error) {
	var mem *dma.Region
	var memoryMap *uefi.MemoryMap
	var e820 []bzimage.E820Entry
	var entry *uapi.Entry

	if entry, err = loadEntry(strings.TrimSpace(arg[0])); err != nil {
		return
	}

	if len(entry.Title) > 0 {
		log.Printf("booting %s", entry.Title)
	}

	// build E820 memory map

	if memoryMap, err = x64.UEFI.Boot.GetMemoryMap(); err != nil {
		return
	}

	if e820, err = memoryMap.E820(); err != nil {
		return
	}

	// find and reserve memory for kernel loading

	if mem, err = findMemory(e820, memoryStart, memorySize); err != nil {
		return
	}

	// free reserved memory in case of error
	defer mem.Release(mem.Start())

	if err = x64.UEFI.Boot.AllocatePages(
		uefi.AllocateAddress,
		uefi.EfiLoaderData,
		int(mem.Size()),
		uint64(mem.Start()),
	); err != nil {
		return
	}

	// free allocated pages in case of error
	defer x64.UEFI.Boot.FreePages(
		uint64(mem.Start()),
		int(mem.Size()),
	)

	image := &exec.LinuxImage{
		Memory:         e820,
		Region:         mem,
		Kernel:         entry.Linux,
		InitialRamDisk: entry.Initrd,
		CmdLine:        entry.Options + "\x00",
	}

	// load kernel

	log.Printf("loading kernel@%0.8x", mem.Start())

	if err = image.Load(); err != nil {
		return "", fmt.Errorf("could not load kernel, %w", err)
	}

	// boot kernel

	log.Printf("starting kernel@%0.8x", image.Entry())

	// does not return on success
	return "", image.Boot(cleanup)
}
