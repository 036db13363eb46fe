// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package efi

import (
	"fmt"
)

// Error represents a failed UEFI operation, pairing its non-success Status
// with optional status specific data.
//
// An EFI_BUFFER_TOO_SMALL error returned by a [Buffer] write carries the
// required length, in elements of the buffer type, as int data.
type Error[D any] struct {
	status Status
	data   D
	valid  bool
}

// NewError returns an error without data for a non-success status.
func NewError(s Status) *Error[struct{}] {
	if s.IsSuccess() {
		panic("efi: error from EFI_SUCCESS")
	}

	return &Error[struct{}]{
		status: s,
	}
}

// NewErrorWithData returns an error for a non-success status carrying data.
func NewErrorWithData[D any](s Status, data D) *Error[D] {
	if s.IsSuccess() {
		panic("efi: error from EFI_SUCCESS")
	}

	return &Error[D]{
		status: s,
		data:   data,
		valid:  true,
	}
}

// Status returns the error status.
func (e *Error[D]) Status() Status {
	return e.status
}

// Data returns the error data, if any.
func (e *Error[D]) Data() (data D, ok bool) {
	return e.data, e.valid
}

// Error implements the error interface.
func (e *Error[D]) Error() string {
	if !e.valid {
		return e.status.String()
	}

	return fmt.Sprintf("%s (%v)", e.status, e.data)
}

// Unwrap returns the error status.
func (e *Error[D]) Unwrap() error {
	return e.status
}
