// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-multierror"

	"github.com/usbarmory/go-efi/shell"
	"github.com/usbarmory/go-efi/uefi"
	"github.com/usbarmory/go-efi/uefi/x64"
)

func init() {
	shell.Add(shell.Cmd{
		Name:    "vars",
		Args:    1,
		Pattern: regexp.MustCompile(`^vars(?: (` + guidPattern + `))?$`),
		Syntax:  "(vendor GUID)?",
		Help:    "list UEFI variables",
		Fn:      varsCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "var",
		Args:    2,
		Pattern: regexp.MustCompile(`^var (\S+)(?: (` + guidPattern + `))?$`),
		Syntax:  "<name> (vendor GUID)?",
		Help:    "dump UEFI variable",
		Fn:      varCmd,
	})
}

func attributes(attr uefi.VariableAttributes) string {
	var s []string

	if attr.NonVolatile {
		s = append(s, "NV")
	}

	if attr.BootServiceAccess {
		s = append(s, "BS")
	}

	if attr.RuntimeServiceAccess {
		s = append(s, "RT")
	}

	if attr.AuthWriteAccess || attr.TimeBasedAuthWriteAccess || attr.EnhancedAuthAccess {
		s = append(s, "AT")
	}

	return strings.Join(s, "+")
}

func vendorGUID(s string) (guid uefi.GUID, err error) {
	if len(s) == 0 {
		return
	}

	return uefi.ParseGUID(s)
}

func varsCmd(_ *shell.Interface, arg []string) (res string, err error) {
	var buf bytes.Buffer
	var result *multierror.Error

	vendor, err := vendorGUID(arg[0])

	if err != nil {
		return
	}

	names, err := x64.UEFI.Runtime.VariableNames(vendor)

	if err != nil {
		return "", fmt.Errorf("could not enumerate variables, %w", err)
	}

	for _, v := range names {
		attr, size, _, err := x64.UEFI.Runtime.GetVariable(v.Name, v.GUID, false)

		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s, %w", v, err))
			continue
		}

		fmt.Fprintf(&buf, "%-40s %s %-8s %s\n", v.Name, v.GUID, attributes(attr), humanize.IBytes(size))
	}

	fmt.Fprintf(&buf, "%d variables", len(names))

	return buf.String(), result.ErrorOrNil()
}

func varCmd(_ *shell.Interface, arg []string) (res string, err error) {
	guid := uefi.EFI_GLOBAL_VARIABLE_GUID

	if len(arg[1]) > 0 {
		if guid, err = vendorGUID(arg[1]); err != nil {
			return
		}
	}

	attr, _, data, err := x64.UEFI.Runtime.GetVariable(arg[0], guid, true)

	if err != nil {
		return "", fmt.Errorf("could not read variable, %w", err)
	}

	return fmt.Sprintf("%s-%s (%s)\n%s", arg[0], guid, attributes(attr), hex.Dump(data)), nil
}
