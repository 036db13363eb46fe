// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"errors"
	"unsafe"

	"github.com/usbarmory/go-efi/efi"
)

var (
	EFI_GLOBAL_VARIABLE_GUID = MustParseGUID("8BE4DF61-93CA-11D2-AA0D-00E098032B8C")
)

// EFI Runtime Services offset for Variable Services
// See: https://uefi.org/specs/UEFI/2.11/08_Services_Runtime_Services.html#variable-services
const (
	getVariable         = 0x48
	getNextVariableName = 0x50
)

// Initial variable name buffer length, in UCS-2 characters.
const variableNameLength = 512

// VariableAttributes represents the attributes of a UEFI variable.
// See: https://uefi.org/specs/UEFI/2.11/08_Services_Runtime_Services.html#getvariable
type VariableAttributes struct {
	NonVolatile              bool
	BootServiceAccess        bool
	RuntimeServiceAccess     bool
	HardwareErrorRecord      bool
	AuthWriteAccess          bool
	TimeBasedAuthWriteAccess bool
	AppendWrite              bool
	EnhancedAuthAccess       bool
}

func parseAttributes(attributes uint32) (attr VariableAttributes) {
	attr.NonVolatile = attributes&0x1 != 0
	attr.BootServiceAccess = attributes&0x2 != 0
	attr.RuntimeServiceAccess = attributes&0x4 != 0
	attr.HardwareErrorRecord = attributes&0x8 != 0
	attr.AuthWriteAccess = attributes&0x10 != 0
	attr.TimeBasedAuthWriteAccess = attributes&0x20 != 0
	attr.AppendWrite = attributes&0x40 != 0
	attr.EnhancedAuthAccess = attributes&0x80 != 0

	return
}

// VariableName represents an UEFI variable identifier.
type VariableName struct {
	Name string
	GUID GUID
}

// String returns the variable name in `Name-GUID` format.
func (v VariableName) String() string {
	return v.Name + "-" + v.GUID.String()
}

// GetVariable calls EFI_RUNTIME_SERVICES.GetVariable(), when withData is false
// only the attributes and size are returned.
// See: https://uefi.org/specs/UEFI/2.11/08_Services_Runtime_Services.html#getvariable
func (s *RuntimeServices) GetVariable(name string, guid GUID, withData bool) (attr VariableAttributes, dataSize uint64, data []byte, err error) {
	var attributes uint32

	nameUTF16 := toUTF16(name)
	buf := efi.NewVec[byte](0)

	get := func(ptr unsafe.Pointer, size *uint64) efi.Status {
		return efi.Status(callService(s.base+getVariable,
			[]uint64{
				ptrval(&nameUTF16[0]),
				guid.ptrval(),
				ptrval(&attributes),
				ptrval(size),
				ptrval(ptr),
			},
		))
	}

	if withData {
		err = buf.Fill(get)
	} else if err = buf.Write(get); efi.StatusOf(err) == efi.EFI_BUFFER_TOO_SMALL {
		// size query only
		n, _ := efi.DataOf[int](err)
		return parseAttributes(attributes), uint64(n), nil, nil
	}

	if err != nil {
		return VariableAttributes{}, 0, nil, err
	}

	data = buf.Slice()

	if !withData {
		data = nil
	}

	return parseAttributes(attributes), uint64(buf.Len()), data, nil
}

// GetNextVariableName calls EFI_RUNTIME_SERVICES.GetNextVariableName(), the
// arguments must be set to the previous variable name and GUID, or to an empty
// string to start the enumeration, and are updated with the next ones.
//
// An error matching efi.EFI_NOT_FOUND is returned once all variables have been
// enumerated.
// See: https://uefi.org/specs/UEFI/2.11/08_Services_Runtime_Services.html#getnextvariablename
func (s *RuntimeServices) GetNextVariableName(name *string, guid *GUID) (err error) {
	prev := toUTF16(*name)
	next := make([]uint16, max(len(prev), variableNameLength))

	getNext := func(ptr unsafe.Pointer, size *uint64) efi.Status {
		return efi.Status(callService(s.base+getNextVariableName,
			[]uint64{
				ptrval(size),
				ptrval(ptr),
				guid.ptrval(),
			},
		))
	}

	// the name buffer is an input as well, a retry must start over from
	// the previous name
	copy(next, prev)
	buf := efi.NewSliceBuffer(next)

	if err = buf.Write(getNext); efi.StatusOf(err) == efi.EFI_BUFFER_TOO_SMALL {
		n, _ := efi.DataOf[int](err)

		next = make([]uint16, max(n, len(prev)))
		copy(next, prev)
		buf = efi.NewSliceBuffer(next)

		err = buf.Write(getNext)
	}

	if err != nil {
		return
	}

	*name = fromUTF16(buf.Slice())

	return
}

// VariableNames enumerates UEFI variables through
// EFI_RUNTIME_SERVICES.GetNextVariableName(), a non-zero vendor GUID filters
// the variables returned.
func (s *RuntimeServices) VariableNames(vendor GUID) (names []VariableName, err error) {
	var name string
	var guid GUID

	for {
		if err = s.GetNextVariableName(&name, &guid); err != nil {
			break
		}

		if !vendor.IsZero() && guid != vendor {
			continue
		}

		names = append(names, VariableName{
			Name: name,
			GUID: guid,
		})
	}

	if errors.Is(err, efi.EFI_NOT_FOUND) {
		err = nil
	}

	return
}
