// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uefi

import (
	"encoding/binary"
	"errors"
	"io/fs"
	"testing"
	"time"
)

func fileInfoRecord(name string, size uint64, attr uint64, mod Time) []byte {
	info := &fileInfo{
		FileSize:         size,
		PhysicalSize:     size,
		ModificationTime: mod,
		Attribute:        attr,
	}

	fileName := toUTF16(name)
	info.Size = uint64(fileInfoSize + len(fileName)*2)

	buf, _ := marshalBinary(info)

	for _, c := range fileName {
		buf = binary.LittleEndian.AppendUint16(buf, c)
	}

	return buf
}

func TestFileInfoHeaderSize(t *testing.T) {
	if n := binary.Size(&fileInfo{}); n != fileInfoSize {
		t.Fatalf("unexpected EFI_FILE_INFO header size %d", n)
	}

	if n := binary.Size(&Time{}); n != 16 {
		t.Fatalf("unexpected EFI_TIME size %d", n)
	}
}

func TestDecodeFileInfo(t *testing.T) {
	mod := Time{
		Year:     2024,
		Month:    3,
		Day:      9,
		Hour:     10,
		Minute:   30,
		Second:   5,
		TimeZone: unspecifiedTimezone,
	}

	fi, err := decodeFileInfo(fileInfoRecord("bzImage", 8192, EFI_FILE_ARCHIVE, mod))

	if err != nil {
		t.Fatal(err)
	}

	if fi.Name() != "bzImage" {
		t.Errorf("unexpected name %q", fi.Name())
	}

	if fi.Size() != 8192 {
		t.Errorf("unexpected size %d", fi.Size())
	}

	if fi.IsDir() || fi.Mode() != 0644 {
		t.Errorf("unexpected mode %v", fi.Mode())
	}

	want := time.Date(2024, 3, 9, 10, 30, 5, 0, time.UTC)

	if !fi.ModTime().Equal(want) {
		t.Errorf("unexpected modification time %v", fi.ModTime())
	}
}

func TestDecodeFileInfoDirectory(t *testing.T) {
	fi, err := decodeFileInfo(fileInfoRecord("EFI", 0, EFI_FILE_DIRECTORY|EFI_FILE_READ_ONLY, Time{}))

	if err != nil {
		t.Fatal(err)
	}

	if !fi.IsDir() {
		t.Error("directory not reported as such")
	}

	if fi.Mode() != fs.ModeDir|0555 {
		t.Errorf("unexpected mode %v", fi.Mode())
	}

	if !fi.ModTime().IsZero() {
		t.Errorf("unexpected modification time %v", fi.ModTime())
	}

	if d := (DirEntry{fi: fi}); d.Type() != fs.ModeDir || d.Name() != "EFI" {
		t.Errorf("unexpected entry %v %q", d.Type(), d.Name())
	}
}

func TestDecodeFileInfoShort(t *testing.T) {
	if _, err := decodeFileInfo(make([]byte, fileInfoSize-1)); err == nil {
		t.Error("expected error")
	}
}

func TestTimeZone(t *testing.T) {
	et := Time{
		Year:       2025,
		Month:      12,
		Day:        31,
		Hour:       23,
		Minute:     0,
		Second:     0,
		Nanosecond: 500,
		TimeZone:   120,
	}

	got := et.Time()
	want := time.Date(2025, 12, 31, 21, 0, 0, 500, time.UTC)

	if !got.Equal(want) {
		t.Errorf("unexpected time %v", got)
	}
}

func TestEFIPath(t *testing.T) {
	for name, want := range map[string]string{
		".":                        `\`,
		"EFI/BOOT/BOOTX64.EFI":     `\EFI\BOOT\BOOTX64.EFI`,
		"loader/entries/arch.conf": `\loader\entries\arch.conf`,
	} {
		got, err := efiPath(name)

		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}

		if got != want {
			t.Errorf("%s: got %s, want %s", name, got, want)
		}
	}

	for _, name := range []string{"/EFI", "EFI/../..", "EFI/", ""} {
		if _, err := efiPath(name); !errors.Is(err, fs.ErrInvalid) {
			t.Errorf("%q: unexpected error %v", name, err)
		}
	}
}

func TestFileClosed(t *testing.T) {
	f := &File{name: "closed"}

	if _, err := f.Read(make([]byte, 1)); !errors.Is(err, fs.ErrClosed) {
		t.Errorf("unexpected read error %v", err)
	}

	if _, err := f.Stat(); !errors.Is(err, fs.ErrClosed) {
		t.Errorf("unexpected stat error %v", err)
	}

	if err := f.Close(); !errors.Is(err, fs.ErrClosed) {
		t.Errorf("unexpected close error %v", err)
	}
}

func TestFSInvalid(t *testing.T) {
	if _, err := (&FS{}).Open("EFI"); err == nil {
		t.Error("expected error")
	}
}
