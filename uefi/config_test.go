// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"encoding/binary"
	"testing"

	"github.com/usbarmory/go-efi/efi"
)

func configurationTableBuffer(tables ...ConfigurationTable) (buf []byte) {
	for _, t := range tables {
		b := make([]byte, configurationTableSize)
		copy(b, t.GUID[:])
		binary.LittleEndian.PutUint64(b[16:], t.VendorTable)
		buf = append(buf, b...)
	}

	return
}

func TestConfigurationTableSize(t *testing.T) {
	if n := binary.Size(&ConfigurationTable{}); n != configurationTableSize {
		t.Fatalf("unexpected EFI_CONFIGURATION_TABLE size %d", n)
	}
}

func TestParseConfigurationTables(t *testing.T) {
	tables := []ConfigurationTable{
		{GUID: ACPI_20_TABLE_GUID, VendorTable: 0x7f000000},
		{GUID: SMBIOS3_TABLE_GUID, VendorTable: 0x7f100000},
	}

	c, err := parseConfigurationTables(configurationTableBuffer(tables...), len(tables))

	if err != nil {
		t.Fatal(err)
	}

	if len(c) != len(tables) {
		t.Fatalf("unexpected table count %d", len(c))
	}

	for i, e := range c {
		if *e != tables[i] {
			t.Errorf("table %d, got %+v, want %+v", i, *e, tables[i])
		}
	}

	if c[0] == c[1] {
		t.Error("entries share storage")
	}
}

func TestParseConfigurationTablesShort(t *testing.T) {
	buf := configurationTableBuffer(ConfigurationTable{GUID: ACPI_20_TABLE_GUID})

	_, err := parseConfigurationTables(buf, 2)

	if efi.StatusOf(err) != efi.EFI_BUFFER_TOO_SMALL {
		t.Fatalf("unexpected error %v", err)
	}

	if n, _ := efi.DataOf[int](err); n != 2*configurationTableSize {
		t.Errorf("unexpected required size %d", n)
	}
}

func TestConfigurationTablesNotFound(t *testing.T) {
	d := &SystemTable{}

	if _, err := d.ConfigurationTables(); efi.StatusOf(err) != efi.EFI_NOT_FOUND {
		t.Errorf("unexpected error %v", err)
	}

	if _, err := d.LocateConfiguration(ACPI_20_TABLE_GUID); efi.StatusOf(err) != efi.EFI_NOT_FOUND {
		t.Errorf("unexpected error %v", err)
	}
}
