// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package uapi implements Boot Loader Entries parsing
// following the specifications at:
//
//	https://uapi-group.org/specifications/specs/boot_loader_specification/
package uapi

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Entry represents the parsed contents of Type #1 Boot Loader Entry Keys.
type Entry struct {
	Title   string
	Version string
	SortKey string
	Linux   []byte
	Initrd  []byte
	Options string

	parsed  string
	ignored string
}

// fsPath converts an entry path, relative to the root of the file system
// hosting the entry, to an [fs.FS] path name.
func fsPath(p string) string {
	p = strings.ReplaceAll(p, `\`, `/`)
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

func (e *Entry) parseKey(fsys fs.FS, line string) (err error) {
	line = strings.TrimSpace(line)

	if len(line) == 0 || strings.HasPrefix(line, "#") {
		return
	}

	k, v, found := strings.Cut(line, " ")

	if !found {
		e.ignored += line + "\n"
		return
	}

	v = strings.TrimSpace(v)

	switch k {
	case "title":
		e.Title = v
	case "version":
		e.Version = v
	case "sort-key":
		e.SortKey = v
	case "linux":
		if e.Linux, err = fs.ReadFile(fsys, fsPath(v)); err != nil {
			return fmt.Errorf("could not read kernel, %w", err)
		}
	case "initrd":
		var initrd []byte

		if initrd, err = fs.ReadFile(fsys, fsPath(v)); err != nil {
			return fmt.Errorf("could not read initrd, %w", err)
		}

		e.Initrd = append(e.Initrd, initrd...)
	case "options":
		if len(e.Options) > 0 {
			e.Options += " "
		}

		e.Options += v
	default:
		e.ignored += line + "\n"
		return
	}

	e.parsed += line + "\n"

	return
}

// String returns the lines successfully parsed.
func (e *Entry) String() string {
	return e.parsed
}

// Ignored returns the lines ignored during parsing.
func (e *Entry) Ignored() string {
	return e.ignored
}

// LoadEntry parses Type #1 Boot Loader Specification Entries from the argument
// file and loads each key contents from the argument file system.
func LoadEntry(fsys fs.FS, path string) (e *Entry, err error) {
	e = &Entry{}

	entry, err := fs.ReadFile(fsys, path)

	if err != nil {
		return
	}

	for line := range strings.Lines(string(entry)) {
		if err = e.parseKey(fsys, line); err != nil {
			return
		}
	}

	return
}
