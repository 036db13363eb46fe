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

func TestStatusPartition(t *testing.T) {
	for _, tt := range []struct {
		status  Status
		success bool
		warning bool
		isError bool
	}{
		{EFI_SUCCESS, true, false, false},
		{EFI_WARN_UNKNOWN_GLYPH, false, true, false},
		{EFI_WARN_RESET_REQUIRED, false, true, false},
		{Status(0x1234), false, true, false},
		{EFI_BUFFER_TOO_SMALL, false, false, true},
		{EFI_HTTP_ERROR, false, false, true},
		{Status(errorBit | 0x1234), false, false, true},
	} {
		t.Run(tt.status.String(), func(t *testing.T) {
			require.Equal(t, tt.success, tt.status.IsSuccess())
			require.Equal(t, tt.warning, tt.status.IsWarning())
			require.Equal(t, tt.isError, tt.status.IsError())
		})
	}
}

func TestStatusCode(t *testing.T) {
	require.Equal(t, uint64(5), EFI_BUFFER_TOO_SMALL.Code())
	require.Equal(t, uint64(14), EFI_NOT_FOUND.Code())
	require.Equal(t, uint64(1), EFI_WARN_UNKNOWN_GLYPH.Code())
	require.Equal(t, uint64(0x8000000000000005), uint64(EFI_BUFFER_TOO_SMALL))
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "EFI_NOT_FOUND", EFI_NOT_FOUND.String())
	require.Equal(t, "EFI_WARN_STALE_DATA", EFI_WARN_STALE_DATA.Error())
	require.Equal(t, "EFI_STATUS error 0x8000000000000064 (100)", Status(errorBit|100).String())
	require.Equal(t, "EFI_STATUS warning 0x64", Status(100).String())
}

func TestStatusErr(t *testing.T) {
	require.NoError(t, EFI_SUCCESS.Err())

	err := EFI_UNSUPPORTED.Err()
	require.Error(t, err)
	require.ErrorIs(t, err, EFI_UNSUPPORTED)
	require.Equal(t, EFI_UNSUPPORTED, StatusOf(err))

	_, ok := DataOf[struct{}](err)
	require.False(t, ok)

	// warnings are errors unless explicitly handled
	err = EFI_WARN_STALE_DATA.Err()
	require.Error(t, err)
	require.True(t, StatusOf(err).IsWarning())
}

func TestStatusErrorsIsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("could not read variable, %w", EFI_NOT_FOUND.Err())

	require.True(t, errors.Is(err, EFI_NOT_FOUND))
	require.False(t, errors.Is(err, EFI_ACCESS_DENIED))
	require.Equal(t, EFI_NOT_FOUND, StatusOf(err))
}
