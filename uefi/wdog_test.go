// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"testing"
	"time"

	"github.com/usbarmory/go-efi/efi"
)

func TestWatchdogTimeout(t *testing.T) {
	for _, tc := range []struct {
		timeout time.Duration
		sec     uint64
	}{
		{0, 0},
		{time.Nanosecond, 1},
		{time.Second, 1},
		{1500 * time.Millisecond, 2},
		{5 * time.Minute, 300},
	} {
		sec, err := watchdogTimeout(tc.timeout)

		if err != nil {
			t.Fatalf("%v, %v", tc.timeout, err)
		}

		if sec != tc.sec {
			t.Errorf("%v, got %d seconds, want %d", tc.timeout, sec, tc.sec)
		}
	}
}

func TestWatchdogTimeoutNegative(t *testing.T) {
	if _, err := watchdogTimeout(-time.Second); efi.StatusOf(err) != efi.EFI_INVALID_PARAMETER {
		t.Errorf("unexpected error %v", err)
	}
}
