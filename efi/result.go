// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package efi

import (
	"errors"
	"slices"
)

// StatusOf returns the status carried by err, EFI_SUCCESS for a nil error and
// EFI_ABORTED for errors which do not carry any.
func StatusOf(err error) Status {
	var s Status

	if err == nil {
		return EFI_SUCCESS
	}

	if errors.As(err, &s) {
		return s
	}

	return EFI_ABORTED
}

// DataOf returns the data of the first [Error] with data type D found in the
// err chain.
func DataOf[D any](err error) (data D, ok bool) {
	var e *Error[D]

	if !errors.As(err, &e) {
		return
	}

	return e.Data()
}

// DiscardData returns err with any [Error] data stripped, the status is
// preserved. Errors which do not carry a status are returned unchanged.
func DiscardData(err error) error {
	var s Status

	if !errors.As(err, &s) {
		return err
	}

	return NewError(s)
}

// HandleWarning invokes fn on err only when it carries a warning status,
// allowing the caller to recover from it. Errors, and nil, are returned
// unchanged.
func HandleWarning(err error, fn func(error) error) error {
	if !StatusOf(err).IsWarning() {
		return err
	}

	return fn(err)
}

// IgnoreWarning treats the argument warnings as success, or any warning when
// none is passed.
func IgnoreWarning(err error, warnings ...Status) error {
	return HandleWarning(err, func(err error) error {
		if len(warnings) == 0 || slices.Contains(warnings, StatusOf(err)) {
			return nil
		}

		return err
	})
}
