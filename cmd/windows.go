// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"regexp"

	"github.com/usbarmory/go-efi/shell"
)

// WindowsBootManager represents the Windows UEFI boot manager path on the EFI
// image volume.
var WindowsBootManager = "EFI/Microsoft/Boot/bootmgfw.efi"

func init() {
	shell.Add(shell.Cmd{
		Name:    "windows,win,w",
		Pattern: regexp.MustCompile(`^(?:windows|win|w)$`),
		Help:    "launch Windows UEFI boot manager",
		Fn:      winCmd,
	})
}

func winCmd(iface *shell.Interface, _ []string) (res string, err error) {
	return runCmd(iface, []string{WindowsBootManager})
}
