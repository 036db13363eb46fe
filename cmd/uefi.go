// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/usbarmory/go-efi/shell"
	"github.com/usbarmory/go-efi/uefi"
	"github.com/usbarmory/go-efi/uefi/x64"
)

const guidPattern = `[[:xdigit:]]{8}-[[:xdigit:]]{4}-[[:xdigit:]]{4}-[[:xdigit:]]{4}-[[:xdigit:]]{12}`

func init() {
	shell.Add(shell.Cmd{
		Name: "uefi",
		Help: "UEFI information",
		Fn:   uefiCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "protocol",
		Args:    1,
		Pattern: regexp.MustCompile(`^protocol (` + guidPattern + `)$`),
		Syntax:  "<registry format GUID>",
		Help:    "EFI_BOOT_SERVICES.LocateProtocol()",
		Fn:      locateCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "handles",
		Args:    1,
		Pattern: regexp.MustCompile(`^handles(?: (` + guidPattern + `))?$`),
		Syntax:  "(registry format GUID)?",
		Help:    "EFI_BOOT_SERVICES.LocateHandle()",
		Fn:      handlesCmd,
	})

	shell.Add(shell.Cmd{
		Name: "memmap",
		Help: "EFI_BOOT_SERVICES.GetMemoryMap()",
		Fn:   memmapCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "alloc",
		Args:    2,
		Pattern: regexp.MustCompile(`^alloc ([[:xdigit:]]+) (\d+)$`),
		Syntax:  "<hex offset> <size>",
		Help:    "EFI_BOOT_SERVICES.AllocatePages()",
		Fn:      allocCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "reset",
		Args:    1,
		Pattern: regexp.MustCompile(`^reset(?: (cold|warm))?$`),
		Help:    "EFI_RUNTIME_SERVICES.ResetSystem()",
		Syntax:  "(cold|warm)?",
		Fn:      resetCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "watchdog",
		Args:    1,
		Pattern: regexp.MustCompile(`^watchdog (\S+)$`),
		Syntax:  "<timeout>",
		Help:    "EFI_BOOT_SERVICES.SetWatchdogTimer() (e.g. 5m, 0 disables)",
		Fn:      watchdogCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "halt, shutdown",
		Args:    1,
		Pattern: regexp.MustCompile(`^(halt|shutdown)$`),
		Help:    "shutdown system",
		Fn:      shutdownCmd,
	})
}

func uefiCmd(_ *shell.Interface, _ []string) (res string, err error) {
	var buf bytes.Buffer

	t := x64.UEFI.SystemTable

	if t == nil {
		return "", fmt.Errorf("EFI services are not initialized")
	}

	vendor, err := x64.UEFI.FirmwareVendor()

	if err != nil {
		return "", fmt.Errorf("could not read firmware vendor, %w", err)
	}

	fmt.Fprintf(&buf, "Firmware Vendor ....: %s\n", vendor)
	fmt.Fprintf(&buf, "Firmware Revision ..: %#x\n", t.FirmwareRevision)
	fmt.Fprintf(&buf, "Runtime Services  ..: %#x\n", t.RuntimeServices)
	fmt.Fprintf(&buf, "Boot Services ......: %#x\n", t.BootServices)

	if gop, err := x64.UEFI.Boot.GetGraphicsOutput(); err == nil {
		if fb, err := gop.FrameBuffer(); err == nil {
			fmt.Fprintf(&buf, "Frame Buffer .......: %dx%d @ %#x\n", fb.Width, fb.Height, fb.Base)
		}
	}

	fmt.Fprintf(&buf, "Configuration Tables: %#x\n", t.ConfigurationTable)

	if c, err := t.ConfigurationTables(); err == nil {
		for _, t := range c {
			fmt.Fprintf(&buf, "  %s (%#x) %s\n", t.GUID, t.VendorTable, tableNames[t.GUID])
		}
	}

	return buf.String(), nil
}

var tableNames = map[uefi.GUID]string{
	uefi.ACPI_20_TABLE_GUID: "ACPI 2.0",
	uefi.SMBIOS3_TABLE_GUID: "SMBIOS 3.0",
}

func locateCmd(_ *shell.Interface, arg []string) (res string, err error) {
	guid, err := uefi.ParseGUID(arg[0])

	if err != nil {
		return
	}

	addr, err := x64.UEFI.Boot.LocateProtocol(guid)

	return fmt.Sprintf("%s: %#08x", guid, addr), err
}

func handlesCmd(_ *shell.Interface, arg []string) (res string, err error) {
	var buf bytes.Buffer
	var guid uefi.GUID

	if len(arg[0]) > 0 {
		if guid, err = uefi.ParseGUID(arg[0]); err != nil {
			return
		}
	}

	handles, err := x64.UEFI.Boot.LocateHandle(guid)

	if err != nil {
		return "", fmt.Errorf("could not locate handles, %w", err)
	}

	for _, h := range handles {
		fmt.Fprintf(&buf, "%#016x\n", h)
	}

	fmt.Fprintf(&buf, "%d handles", len(handles))

	return buf.String(), nil
}

func memmapCmd(_ *shell.Interface, _ []string) (res string, err error) {
	var buf bytes.Buffer
	var memoryMap *uefi.MemoryMap
	var total uint64

	if memoryMap, err = x64.UEFI.Boot.GetMemoryMap(); err != nil {
		return
	}

	w := tabwriter.NewWriter(&buf, 0, 8, 1, ' ', 0)
	fmt.Fprintf(w, "Type\tStart\tEnd\tPages\tSize\tAttributes\n")

	for _, desc := range memoryMap.Descriptors {
		fmt.Fprintf(w, "%02d\t%016x\t%016x\t%016x\t%s\t%016x\n",
			desc.Type, desc.PhysicalStart, desc.PhysicalEnd()-1, desc.NumberOfPages,
			humanize.IBytes(uint64(desc.Size())), desc.Attribute)

		if desc.Type == uefi.EfiConventionalMemory {
			total += uint64(desc.Size())
		}
	}

	w.Flush()

	fmt.Fprintf(&buf, "%d descriptors (%d bytes each), %s conventional memory",
		len(memoryMap.Descriptors), memoryMap.DescriptorSize, humanize.IBytes(total))

	return buf.String(), err
}

func allocCmd(_ *shell.Interface, arg []string) (res string, err error) {
	addr, err := strconv.ParseUint(arg[0], 16, 64)

	if err != nil {
		return "", fmt.Errorf("invalid address, %v", err)
	}

	size, err := strconv.ParseUint(arg[1], 10, 64)

	if err != nil {
		return "", fmt.Errorf("invalid size, %v", err)
	}

	if (addr%8) != 0 || (size%8) != 0 {
		return "", fmt.Errorf("only 64-bit aligned accesses are supported")
	}

	log.Printf("allocating memory range %#08x - %#08x", addr, addr+size)

	err = x64.UEFI.Boot.AllocatePages(
		uefi.AllocateAddress,
		uefi.EfiLoaderData,
		int(size),
		addr,
	)

	return "", err
}

func resetCmd(_ *shell.Interface, arg []string) (_ string, err error) {
	var resetType int

	switch arg[0] {
	case "cold":
		resetType = uefi.EfiResetCold
	case "warm", "":
		resetType = uefi.EfiResetWarm
	case "shutdown":
		resetType = uefi.EfiResetShutdown
	}

	log.Printf("performing system reset type %d", resetType)
	err = x64.UEFI.Runtime.ResetSystem(resetType)

	return
}

func watchdogCmd(_ *shell.Interface, arg []string) (_ string, err error) {
	timeout, err := time.ParseDuration(arg[0])

	if err != nil {
		return "", fmt.Errorf("invalid timeout, %v", err)
	}

	if timeout == 0 {
		return "", x64.UEFI.Boot.DisableWatchdog()
	}

	log.Printf("arming watchdog, %v", timeout)

	return "", x64.UEFI.Boot.SetWatchdogTimer(timeout)
}

func shutdownCmd(_ *shell.Interface, _ []string) (_ string, err error) {
	return resetCmd(nil, []string{"shutdown"})
}
