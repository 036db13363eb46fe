// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/usbarmory/go-efi/shell"
	"github.com/usbarmory/go-efi/uefi/x64"

	_ "github.com/usbarmory/go-efi/cmd"
)

// Build information, set at link time
var (
	Build    string
	Revision string
)

func init() {
	log.SetFlags(0)
}

func banner() string {
	return fmt.Sprintf("%s/%s (%s) • UEFI • %s %s",
		runtime.GOOS, runtime.GOARCH, runtime.Version(), Revision, Build)
}

func main() {
	if x64.UEFI.Console == nil {
		log.Fatal("EFI services unavailable")
	}

	logFile, _ := os.OpenFile("/runtime.log", os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	log.SetOutput(io.MultiWriter(x64.UEFI.Console, logFile))

	console := &shell.Interface{
		Banner:     banner(),
		Log:        logFile,
		ReadWriter: x64.UEFI.Console,
	}

	console.Start()

	log.Printf("exiting application")

	if err := x64.UEFI.Boot.Exit(0); err != nil {
		log.Printf("could not exit, %v", err)
	}
}
