// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"fmt"

	"github.com/usbarmory/tamago/dma"

	"github.com/usbarmory/go-efi/efi"
)

// EFI_CONFIGURATION_TABLE size
const configurationTableSize = 24

// Well known EFI Configuration Table GUIDs
var (
	ACPI_20_TABLE_GUID = MustParseGUID("8868e871-e4f1-11d3-bc22-0080c73c8881")
	SMBIOS3_TABLE_GUID = MustParseGUID("f2fd1544-9794-4a2c-992e-e5bbcf20e394")
)

// ConfigurationTable represents an EFI Configuration Table entry.
type ConfigurationTable struct {
	GUID        GUID
	VendorTable uint64
}

// parseConfigurationTables decodes count consecutive EFI_CONFIGURATION_TABLE
// entries.
func parseConfigurationTables(buf []byte, count int) (c []*ConfigurationTable, err error) {
	if len(buf) < count*configurationTableSize {
		return nil, efi.NewErrorWithData(efi.EFI_BUFFER_TOO_SMALL, count*configurationTableSize)
	}

	for i := range count {
		t := &ConfigurationTable{}
		off := i * configurationTableSize

		if err = unmarshalBinary(buf[off:off+configurationTableSize], t); err != nil {
			return nil, fmt.Errorf("configuration table %d, %w", i, err)
		}

		c = append(c, t)
	}

	return
}

// ConfigurationTables returns the EFI Configuration Tables, EFI_NOT_FOUND is
// returned when the system table lists none.
func (d *SystemTable) ConfigurationTables() (c []*ConfigurationTable, err error) {
	if d.NumberOfTableEntries == 0 || d.ConfigurationTable == 0 {
		return nil, efi.NewError(efi.EFI_NOT_FOUND)
	}

	tableSize := configurationTableSize * int(d.NumberOfTableEntries)

	r, err := dma.NewRegion(uint(d.ConfigurationTable), tableSize, false)

	if err != nil {
		return
	}

	addr, buf := r.Reserve(tableSize, 0)
	defer r.Release(addr)

	return parseConfigurationTables(buf, int(d.NumberOfTableEntries))
}

// LocateConfiguration returns the EFI Configuration Table matching the
// argument vendor GUID, or an EFI_NOT_FOUND error.
func (d *SystemTable) LocateConfiguration(guid GUID) (*ConfigurationTable, error) {
	c, err := d.ConfigurationTables()

	if err != nil {
		return nil, err
	}

	for _, t := range c {
		if t.GUID == guid {
			return t, nil
		}
	}

	return nil, efi.NewError(efi.EFI_NOT_FOUND)
}
