// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"time"

	"github.com/usbarmory/go-efi/efi"
)

// EFI Boot Services offset for SetWatchdogTimer
const setWatchdogTimer = 0x100

// WatchdogCode is the watchdog code reported by SetWatchdogTimer, firmware
// reserves codes 0x0000 to 0xffff.
const WatchdogCode = 0xba3e5e7a1

// watchdogTimeout converts a timeout to whole seconds, rounding up so that
// any positive duration arms the watchdog.
func watchdogTimeout(d time.Duration) (sec uint64, err error) {
	if d < 0 {
		return 0, efi.EFI_INVALID_PARAMETER.Err()
	}

	sec = uint64(d / time.Second)

	if d%time.Second != 0 {
		sec++
	}

	return
}

// SetWatchdogTimer calls EFI_BOOT_SERVICES.SetWatchdogTimer(), the timeout
// is rounded up to whole seconds and a zero timeout disables the watchdog.
func (s *BootServices) SetWatchdogTimer(timeout time.Duration) (err error) {
	sec, err := watchdogTimeout(timeout)

	if err != nil {
		return
	}

	status := callService(s.base+setWatchdogTimer,
		[]uint64{
			sec,
			WatchdogCode,
			0,
			0,
		},
	)

	return parseStatus(status)
}

// DisableWatchdog disables the firmware watchdog, armed with a 5 minutes
// timeout when the boot manager starts an image.
func (s *BootServices) DisableWatchdog() error {
	return s.SetWatchdogTimer(0)
}
