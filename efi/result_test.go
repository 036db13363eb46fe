// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package efi

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewErrorPanicsOnSuccess(t *testing.T) {
	require.Panics(t, func() { NewError(EFI_SUCCESS) })
	require.Panics(t, func() { NewErrorWithData(EFI_SUCCESS, 1) })
}

func TestErrorData(t *testing.T) {
	e := NewErrorWithData(EFI_BUFFER_TOO_SMALL, 42)

	require.Equal(t, EFI_BUFFER_TOO_SMALL, e.Status())
	require.Equal(t, "EFI_BUFFER_TOO_SMALL (42)", e.Error())

	n, ok := e.Data()
	require.True(t, ok)
	require.Equal(t, 42, n)

	n, ok = DataOf[int](fmt.Errorf("wrapped, %w", e))
	require.True(t, ok)
	require.Equal(t, 42, n)

	_, ok = DataOf[string](e)
	require.False(t, ok)
}

func TestStatusOf(t *testing.T) {
	require.Equal(t, EFI_SUCCESS, StatusOf(nil))
	require.Equal(t, EFI_DEVICE_ERROR, StatusOf(EFI_DEVICE_ERROR))
	require.Equal(t, EFI_DEVICE_ERROR, StatusOf(NewErrorWithData(EFI_DEVICE_ERROR, "x")))
	require.Equal(t, EFI_ABORTED, StatusOf(errors.New("foreign")))
}

func TestDiscardData(t *testing.T) {
	require.NoError(t, DiscardData(nil))

	err := DiscardData(NewErrorWithData(EFI_BUFFER_TOO_SMALL, 8))
	require.ErrorIs(t, err, EFI_BUFFER_TOO_SMALL)

	_, ok := DataOf[int](err)
	require.False(t, ok)

	foreign := errors.New("foreign")
	require.Equal(t, foreign, DiscardData(foreign))
}

func TestHandleWarning(t *testing.T) {
	called := 0
	handled := func(err error) error {
		called++
		return nil
	}

	require.NoError(t, HandleWarning(nil, handled))
	require.Zero(t, called)

	err := EFI_DEVICE_ERROR.Err()
	require.Equal(t, err, HandleWarning(err, handled))
	require.Zero(t, called)

	require.NoError(t, HandleWarning(EFI_WARN_UNKNOWN_GLYPH.Err(), handled))
	require.Equal(t, 1, called)

	err = HandleWarning(EFI_WARN_WRITE_FAILURE.Err(), func(err error) error {
		return fmt.Errorf("flush incomplete, %w", err)
	})
	require.ErrorIs(t, err, EFI_WARN_WRITE_FAILURE)
}

func TestIgnoreWarning(t *testing.T) {
	require.NoError(t, IgnoreWarning(EFI_WARN_UNKNOWN_GLYPH.Err(), EFI_WARN_UNKNOWN_GLYPH))
	require.ErrorIs(t, IgnoreWarning(EFI_WARN_STALE_DATA.Err(), EFI_WARN_UNKNOWN_GLYPH), EFI_WARN_STALE_DATA)
	require.NoError(t, IgnoreWarning(EFI_WARN_STALE_DATA.Err()))
	require.ErrorIs(t, IgnoreWarning(EFI_NOT_READY.Err()), EFI_NOT_READY)
	require.NoError(t, IgnoreWarning(nil))
}
