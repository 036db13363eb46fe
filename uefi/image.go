// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"errors"
	"io/fs"
)

// EFI Boot Services offsets
const (
	loadImage  = 0xc8
	startImage = 0xd0
)

// LoadImage calls EFI_BOOT_SERVICES.LoadImage() on the named image read from
// the argument file system, no device path is passed to the firmware.
func (s *BootServices) LoadImage(boot int, root fs.FS, name string) (imageHandle uint64, err error) {
	buf, err := fs.ReadFile(root, name)

	if err != nil {
		return
	}

	if len(buf) == 0 {
		return 0, errors.New("empty image")
	}

	status := callService(s.base+loadImage,
		[]uint64{
			uint64(boot),
			s.imageHandle,
			0,
			ptrval(&buf[0]),
			uint64(len(buf)),
			ptrval(&imageHandle),
		},
	)

	return imageHandle, parseStatus(status)
}

// StartImage calls EFI_BOOT_SERVICES.StartImage().
func (s *BootServices) StartImage(imageHandle uint64) (err error) {
	status := callService(s.base+startImage,
		[]uint64{
			imageHandle,
			0,
			0,
		},
	)

	return parseStatus(status)
}
