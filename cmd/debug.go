// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

//go:build net && debug

package cmd

import (
	"log"
	"net/http"
	_ "net/http/pprof"

	"github.com/arl/statsviz"
)

// DebugAddress represents the pprof and statsviz HTTP server address.
var DebugAddress = ":80"

func init() {
	statsviz.RegisterDefault()

	onNetwork = append(onNetwork, func() {
		log.Printf("starting debug server on %s", DebugAddress)

		go func() {
			if err := http.ListenAndServe(DebugAddress, nil); err != nil {
				log.Printf("debug server error, %v", err)
			}
		}()
	})
}
