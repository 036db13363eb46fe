// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"bytes"
	"fmt"
	"io/fs"
	"log"
	"path"
	"regexp"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/usbarmory/go-efi/shell"
	"github.com/usbarmory/go-efi/uefi/x64"
)

// maximum file size displayed by `cat`
const maxCatSize = 64 * 1024

func init() {
	shell.Add(shell.Cmd{
		Name:    "ls",
		Args:    1,
		Pattern: regexp.MustCompile(`^ls(?: (\S+))?$`),
		Syntax:  "(path)?",
		Help:    "list directory contents on the EFI image volume",
		Fn:      lsCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "cat",
		Args:    1,
		Pattern: regexp.MustCompile(`^cat (\S+)$`),
		Syntax:  "<path>",
		Help:    "show file contents from the EFI image volume",
		Fn:      catCmd,
	})

	shell.Add(shell.Cmd{
		Name:    "run",
		Args:    1,
		Pattern: regexp.MustCompile(`^run (\S+)$`),
		Syntax:  "<path>",
		Help:    "load and start EFI image",
		Fn:      runCmd,
	})
}

// cleanPath converts a shell path argument to an [fs.FS] path name.
func cleanPath(p string) string {
	p = strings.ReplaceAll(p, `\`, `/`)
	return strings.TrimPrefix(path.Clean("/"+p), "/")
}

func root() (fs.FS, error) {
	root, err := x64.UEFI.Root()

	if err != nil {
		return nil, fmt.Errorf("could not open root volume, %w", err)
	}

	return root, nil
}

func lsCmd(_ *shell.Interface, arg []string) (res string, err error) {
	var buf bytes.Buffer
	var fsys fs.FS

	name := cleanPath(arg[0])

	if name == "" {
		name = "."
	}

	if fsys, err = root(); err != nil {
		return
	}

	entries, err := fs.ReadDir(fsys, name)

	if err != nil {
		return
	}

	for _, e := range entries {
		info, err := e.Info()

		if err != nil {
			return "", err
		}

		fmt.Fprintf(&buf, "%s %8s %s %s\n",
			info.Mode(), humanize.IBytes(uint64(info.Size())),
			info.ModTime().Format("2006-01-02 15:04"), e.Name())
	}

	return buf.String(), nil
}

func catCmd(_ *shell.Interface, arg []string) (res string, err error) {
	var fsys fs.FS
	var info fs.FileInfo

	name := cleanPath(arg[0])

	if fsys, err = root(); err != nil {
		return
	}

	if info, err = fs.Stat(fsys, name); err != nil {
		return
	}

	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", name)
	}

	if info.Size() > maxCatSize {
		return "", fmt.Errorf("file exceeds %s", humanize.IBytes(maxCatSize))
	}

	buf, err := fs.ReadFile(fsys, name)

	return string(buf), err
}

func runCmd(_ *shell.Interface, arg []string) (res string, err error) {
	var fsys fs.FS
	var handle uint64

	name := cleanPath(arg[0])

	if fsys, err = root(); err != nil {
		return
	}

	log.Printf("loading EFI image %s", name)

	if handle, err = x64.UEFI.Boot.LoadImage(0, fsys, name); err != nil {
		return "", fmt.Errorf("could not load image, %w", err)
	}

	log.Printf("starting EFI image %s (%#x)", name, handle)

	return "", x64.UEFI.Boot.StartImage(handle)
}
