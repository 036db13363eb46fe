// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

var (
	EFI_LOADED_IMAGE_PROTOCOL_GUID       = MustParseGUID("5b1b31a1-9562-11d2-8e3f-00a0c969723b")
	EFI_SIMPLE_FILE_SYSTEM_PROTOCOL_GUID = MustParseGUID("964e5b22-6459-11d2-8e39-00a0c969723b")
)

const (
	EFI_LOADED_IMAGE_PROTOCOL_REVISION       = 0x00001000
	EFI_SIMPLE_FILE_SYSTEM_PROTOCOL_REVISION = 0x00010000
)

// EFI Simple File System Protocol offset for OpenVolume
const openVolume = 0x08

// loadedImage represents an EFI Loaded Image Protocol instance.
type loadedImage struct {
	Revision        uint32
	_               uint32
	ParentHandle    uint64
	SystemTable     uint64
	DeviceHandle    uint64
	FilePath        uint64
	_               uint64
	LoadOptionsSize uint32
	_               uint32
	LoadOptions     uint64
	ImageBase       uint64
	ImageSize       uint64
	ImageCodeType   uint32
	ImageDataType   uint32
	Unload          uint64
}

// simpleFileSystem represents an EFI Simple File System Protocol instance.
type simpleFileSystem struct {
	Revision   uint64
	OpenVolume uint64
}

// FS implements the [fs.FS] interface for an EFI Simple File System.
type FS struct {
	// EFI Simple File System Protocol instance
	addr uint64
	// EFI File Protocol instance for the volume root directory
	volume uint64
}

// efiPath converts a slash separated [fs.FS] path name to an EFI file path,
// rooted at the volume top directory.
func efiPath(name string) (string, error) {
	if !fs.ValidPath(name) {
		return "", fs.ErrInvalid
	}

	if name == "." {
		return `\`, nil
	}

	return `\` + strings.ReplaceAll(name, "/", `\`), nil
}

// Open opens the named file for reading, [File.Close] must be called to
// release any associated resources.
func (root *FS) Open(name string) (fs.File, error) {
	if root.volume == 0 {
		return nil, &fs.PathError{Op: "open", Path: name, Err: errors.New("invalid file system instance")}
	}

	path, err := efiPath(name)

	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}

	addr, err := openFile(root.volume, path, EFI_FILE_MODE_READ)

	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}

	f := &File{
		name: name,
		addr: addr,
	}

	return f, nil
}

func (s *BootServices) loadImageHandle(imageHandle uint64) (image *loadedImage, err error) {
	var addr uint64

	if addr, err = s.HandleProtocol(imageHandle, EFI_LOADED_IMAGE_PROTOCOL_GUID); err != nil {
		return
	}

	image = &loadedImage{}

	if err = decode(image, addr); err != nil {
		return
	}

	if image.Revision != EFI_LOADED_IMAGE_PROTOCOL_REVISION {
		return nil, fmt.Errorf("invalid loaded image protocol revision (%#x)", image.Revision)
	}

	return
}

// Root returns an EFI Simple File System instance for the current EFI image
// root volume.
func (s *Services) Root() (root *FS, err error) {
	var image *loadedImage

	sfs := &simpleFileSystem{}
	root = &FS{}

	if image, err = s.Boot.loadImageHandle(s.imageHandle); err != nil {
		return
	}

	if root.addr, err = s.Boot.HandleProtocol(image.DeviceHandle, EFI_SIMPLE_FILE_SYSTEM_PROTOCOL_GUID); err != nil {
		return
	}

	if err = decode(sfs, root.addr); err != nil {
		return
	}

	if sfs.Revision != EFI_SIMPLE_FILE_SYSTEM_PROTOCOL_REVISION {
		return nil, fmt.Errorf("invalid file system protocol revision (%#x)", sfs.Revision)
	}

	status := callService(root.addr+openVolume,
		[]uint64{
			root.addr,
			ptrval(&root.volume),
		},
	)

	if err = parseStatus(status); err != nil {
		return
	}

	if err = checkFileRevision(root.volume); err != nil {
		return nil, err
	}

	return
}
