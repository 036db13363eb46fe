// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"errors"
	"io"
	"io/fs"

	"github.com/usbarmory/go-efi/efi"
)

// DirEntry implements the [fs.DirEntry] interface for the EFI File Protocol.
type DirEntry struct {
	fi *FileInfo
}

// Name returns the name of the file (or subdirectory) described by the entry.
func (d DirEntry) Name() string {
	return d.fi.Name()
}

// IsDir reports whether the entry describes a directory.
func (d DirEntry) IsDir() bool {
	return d.fi.IsDir()
}

// Type returns the type bits for the entry.
func (d DirEntry) Type() fs.FileMode {
	return d.fi.Mode().Type()
}

// Info returns the FileInfo for the file or subdirectory described by the entry.
func (d DirEntry) Info() (fs.FileInfo, error) {
	return d.fi, nil
}

// readEntry reads the next EFI_FILE_INFO from a directory, the entry buffer
// is grown once if the file name exceeds [MaxFileName].
func (f *File) readEntry() (fi *FileInfo, err error) {
	buf := efi.NewVec[byte](fileInfoSize + MaxFileName*2)

	if err = buf.Fill(f.read); err != nil {
		return
	}

	if buf.Len() == 0 {
		return nil, io.EOF
	}

	return decodeFileInfo(buf.Slice())
}

// ReadDir reads the contents of the directory and returns
// a slice of up to n DirEntry values in directory order.
// Subsequent calls on the same file will yield further DirEntry values.
func (f *File) ReadDir(n int) (entries []fs.DirEntry, err error) {
	var fi fs.FileInfo

	if fi, err = f.Stat(); err != nil {
		return
	}

	if !fi.IsDir() {
		return nil, &fs.PathError{Op: "readdir", Path: f.name, Err: errors.New("not a directory")}
	}

	for n <= 0 || len(entries) < n {
		e, err := f.readEntry()

		if err == io.EOF {
			break
		}

		if err != nil {
			return entries, err
		}

		if e.name == "." || e.name == ".." {
			continue
		}

		entries = append(entries, DirEntry{fi: e})
	}

	if n > 0 && len(entries) == 0 {
		return nil, io.EOF
	}

	return entries, nil
}
