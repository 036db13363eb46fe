// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"time"
	"unsafe"

	"github.com/usbarmory/go-efi/efi"
)

// EFI File Information GUID
var EFI_FILE_INFO_ID = MustParseGUID("09576e92-6d3f-11d2-8e39-00a0c969723b")

const (
	EFI_FILE_PROTOCOL_REVISION  = 0x00010000
	EFI_FILE_PROTOCOL_REVISION2 = 0x00020000

	EFI_FILE_MODE_READ   = 0x0000000000000001
	EFI_FILE_MODE_WRITE  = 0x0000000000000002
	EFI_FILE_MODE_CREATE = 0x8000000000000000
)

// EFI_FILE_INFO attribute bits
const (
	EFI_FILE_READ_ONLY = 0x01
	EFI_FILE_HIDDEN    = 0x02
	EFI_FILE_SYSTEM    = 0x04
	EFI_FILE_RESERVED  = 0x08
	EFI_FILE_DIRECTORY = 0x10
	EFI_FILE_ARCHIVE   = 0x20
)

// EFI File Protocol offsets
const (
	fileOpen    = 0x08
	fileClose   = 0x10
	fileRead    = 0x20
	fileGetInfo = 0x40
)

const (
	// MaxFileName is the expected maximum file name length, longer names
	// are supported at the cost of an additional firmware call.
	MaxFileName = 256

	// EFI_FILE_INFO fixed header size
	fileInfoSize = 80

	// EFI_UNSPECIFIED_TIMEZONE
	unspecifiedTimezone = 0x07ff
)

// fileProtocol represents an EFI File Protocol instance.
type fileProtocol struct {
	Revision    uint64
	Open        uint64
	Close       uint64
	Delete      uint64
	Read        uint64
	Write       uint64
	GetPosition uint64
	SetPosition uint64
	GetInfo     uint64
	SetInfo     uint64
	Flush       uint64
}

func checkFileRevision(addr uint64) (err error) {
	f := &fileProtocol{}

	if err = decode(f, addr); err != nil {
		return
	}

	if f.Revision != EFI_FILE_PROTOCOL_REVISION && f.Revision != EFI_FILE_PROTOCOL_REVISION2 {
		return fmt.Errorf("invalid file protocol revision (%#x)", f.Revision)
	}

	return
}

// openFile calls EFI_FILE_PROTOCOL.Open() on the argument directory.
func openFile(dir uint64, name string, mode uint64) (addr uint64, err error) {
	fileName := toUTF16(name)

	status := callService(dir+fileOpen,
		[]uint64{
			dir,
			ptrval(&addr),
			ptrval(&fileName[0]),
			mode,
			0,
		},
	)

	return addr, parseStatus(status)
}

// Time represents an EFI_TIME instance.
type Time struct {
	Year       uint16
	Month      uint8
	Day        uint8
	Hour       uint8
	Minute     uint8
	Second     uint8
	_          uint8
	Nanosecond uint32
	TimeZone   int16
	Daylight   uint8
	_          uint8
}

// Time converts the EFI time, an unspecified time zone is treated as UTC.
func (t *Time) Time() time.Time {
	if t.Year == 0 {
		return time.Time{}
	}

	loc := time.UTC

	if t.TimeZone != unspecifiedTimezone {
		loc = time.FixedZone("", int(t.TimeZone)*60)
	}

	return time.Date(int(t.Year), time.Month(t.Month), int(t.Day),
		int(t.Hour), int(t.Minute), int(t.Second), int(t.Nanosecond), loc)
}

// fileInfo represents the EFI_FILE_INFO fixed header.
type fileInfo struct {
	Size             uint64
	FileSize         uint64
	PhysicalSize     uint64
	CreateTime       Time
	LastAccessTime   Time
	ModificationTime Time
	Attribute        uint64
}

// FileInfo implements the [fs.FileInfo] interface for EFI_FILE_INFO.
type FileInfo struct {
	info *fileInfo
	name string
}

func decodeFileInfo(buf []byte) (fi *FileInfo, err error) {
	if len(buf) < fileInfoSize {
		return nil, errors.New("invalid file information size")
	}

	fi = &FileInfo{
		info: &fileInfo{},
	}

	if err = unmarshalBinary(buf[:fileInfoSize], fi.info); err != nil {
		return nil, err
	}

	fi.name = decodeUTF16(buf[fileInfoSize:])

	return
}

// Name returns the base name of the file.
func (fi *FileInfo) Name() string {
	if fi.name == "" || fi.name == `\` {
		return "."
	}

	return fi.name
}

// Size returns the file length in bytes.
func (fi *FileInfo) Size() int64 {
	return int64(fi.info.FileSize)
}

// Mode returns the file mode bits.
func (fi *FileInfo) Mode() (mode fs.FileMode) {
	mode = 0644

	if fi.IsDir() {
		mode = fs.ModeDir | 0755
	}

	if fi.info.Attribute&EFI_FILE_READ_ONLY != 0 {
		mode &^= 0222
	}

	return
}

// ModTime returns the modification time.
func (fi *FileInfo) ModTime() time.Time {
	return fi.info.ModificationTime.Time()
}

// IsDir reports whether the file is a directory.
func (fi *FileInfo) IsDir() bool {
	return fi.info.Attribute&EFI_FILE_DIRECTORY != 0
}

// Sys returns the EFI file attributes.
func (fi *FileInfo) Sys() any {
	return fi.info.Attribute
}

// File implements the [fs.File] and [fs.ReadDirFile] interfaces over the EFI
// File Protocol.
type File struct {
	name string
	addr uint64
}

var _ fs.ReadDirFile = &File{}

// read calls EFI_FILE_PROTOCOL.Read().
func (f *File) read(ptr unsafe.Pointer, size *uint64) efi.Status {
	return efi.Status(callService(f.addr+fileRead,
		[]uint64{
			f.addr,
			ptrval(size),
			ptrval(ptr),
		},
	))
}

// getInfo calls EFI_FILE_PROTOCOL.GetInfo() for EFI_FILE_INFO.
func (f *File) getInfo(ptr unsafe.Pointer, size *uint64) efi.Status {
	guid := EFI_FILE_INFO_ID

	return efi.Status(callService(f.addr+fileGetInfo,
		[]uint64{
			f.addr,
			guid.ptrval(),
			ptrval(size),
			ptrval(ptr),
		},
	))
}

// Read reads up to len(p) bytes from the file, [io.EOF] is returned once the
// end of file is reached.
func (f *File) Read(p []byte) (n int, err error) {
	if f.addr == 0 {
		return 0, fs.ErrClosed
	}

	if len(p) == 0 {
		return
	}

	buf := efi.NewSliceBuffer(p)

	if err = buf.Write(f.read); err != nil {
		return
	}

	if n = buf.Len(); n == 0 {
		return 0, io.EOF
	}

	return
}

// Stat returns the file information, as reported by EFI_FILE_INFO.
func (f *File) Stat() (fs.FileInfo, error) {
	if f.addr == 0 {
		return nil, fs.ErrClosed
	}

	buf := efi.NewVec[byte](fileInfoSize + MaxFileName*2)

	if err := buf.Fill(f.getInfo); err != nil {
		return nil, &fs.PathError{Op: "stat", Path: f.name, Err: err}
	}

	fi, err := decodeFileInfo(buf.Slice())

	if err != nil {
		return nil, err
	}

	if fi.name == "" || fi.name == `\` {
		fi.name = path.Base(f.name)
	}

	return fi, nil
}

// Close calls EFI_FILE_PROTOCOL.Close().
func (f *File) Close() (err error) {
	if f.addr == 0 {
		return fs.ErrClosed
	}

	status := callService(f.addr+fileClose,
		[]uint64{
			f.addr,
		},
	)

	f.addr = 0

	return parseStatus(status)
}
