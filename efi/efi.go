// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package efi implements the status, error and output buffer model shared by
// all Unified Extensible Firmware Interface (UEFI) service wrappers, following
// the specifications at:
//
//	https://uefi.org/specs/UEFI/2.10/
//
// UEFI output functions follow a query-size-then-fill convention: the caller
// passes a buffer and its size in bytes, the firmware either fills it or
// returns EFI_BUFFER_TOO_SMALL updating the size to the one required. The
// [Buffer] implementations in this package run a single such call against
// caller owned ([SliceBuffer]), inline ([ArrayBuffer]) or growable ([Vec])
// storage, while [Vec.Fill] layers the two-call retry on top.
//
// Unlike the rest of go-efi, this package does not access firmware memory and
// can be used and tested on any GOOS.
package efi
