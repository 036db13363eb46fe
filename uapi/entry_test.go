// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package uapi

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
)

const testEntry = `# Boot Loader Specification type#1 entry
title      Debian GNU/Linux
version    6.12.9-amd64
sort-key   debian
machine-id 6a9857a393724b7a981ebb5b8495b9ea
linux      /vmlinuz-6.12.9
initrd     /initrd.img-6.12.9
initrd     \microcode.img
options    root=/dev/sda2 ro
options    quiet
`

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"loader/entries/debian.conf": {Data: []byte(testEntry)},
		"vmlinuz-6.12.9":             {Data: []byte("kernel")},
		"initrd.img-6.12.9":          {Data: []byte("initrd")},
		"microcode.img":              {Data: []byte("ucode")},
	}
}

func TestLoadEntry(t *testing.T) {
	e, err := LoadEntry(testFS(), "loader/entries/debian.conf")

	if err != nil {
		t.Fatal(err)
	}

	if e.Title != "Debian GNU/Linux" {
		t.Errorf("unexpected title %q", e.Title)
	}

	if e.Version != "6.12.9-amd64" || e.SortKey != "debian" {
		t.Errorf("unexpected version %q or sort key %q", e.Version, e.SortKey)
	}

	if string(e.Linux) != "kernel" {
		t.Errorf("unexpected kernel %q", e.Linux)
	}

	if string(e.Initrd) != "initrducode" {
		t.Errorf("unexpected initrd %q", e.Initrd)
	}

	if e.Options != "root=/dev/sda2 ro quiet" {
		t.Errorf("unexpected options %q", e.Options)
	}

	if !strings.HasPrefix(e.Ignored(), "machine-id") {
		t.Errorf("unexpected ignored lines %q", e.Ignored())
	}

	if strings.Contains(e.String(), "machine-id") || !strings.Contains(e.String(), "linux") {
		t.Errorf("unexpected parsed lines %q", e.String())
	}
}

func TestLoadEntryMissingKernel(t *testing.T) {
	fsys := testFS()
	delete(fsys, "vmlinuz-6.12.9")

	if _, err := LoadEntry(fsys, "loader/entries/debian.conf"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestLoadEntryMissing(t *testing.T) {
	if _, err := LoadEntry(testFS(), "loader/entries/arch.conf"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("unexpected error %v", err)
	}
}

func TestFSPath(t *testing.T) {
	for p, want := range map[string]string{
		"/vmlinuz":           "vmlinuz",
		`\EFI\Linux\vmlinuz`: "EFI/Linux/vmlinuz",
		"boot/../vmlinuz":    "vmlinuz",
		"/":                  "",
	} {
		if got := fsPath(p); got != want {
			t.Errorf("%s: got %q, want %q", p, got, want)
		}
	}
}
