// Copyright (c) The go-boot authors. All Rights Reserved.
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package cmd

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"
	"log"
	"net"
	"regexp"

	"github.com/gliderlabs/ssh"
	gossh "golang.org/x/crypto/ssh"

	"github.com/usbarmory/go-efi/shell"
)

// SSHAddress represents the remote shell listening address.
var SSHAddress = ":22"

// SSHAuthorizedKey represents the public key, in authorized_keys format,
// allowed to open a remote shell. Any client is accepted when empty.
var SSHAuthorizedKey = ""

func init() {
	shell.Add(shell.Cmd{
		Name:    "ssh",
		Args:    1,
		Pattern: regexp.MustCompile(`^ssh(?: (\S+))?$`),
		Syntax:  "(address)?",
		Help:    "start SSH server (requires `net`)",
		Fn:      sshCmd,
	})
}

func handleSession(banner string) ssh.Handler {
	return func(s ssh.Session) {
		if _, _, isPty := s.Pty(); !isPty {
			fmt.Fprintln(s, "PTY required")
			s.Exit(1)
			return
		}

		log.Printf("ssh session from %s", s.RemoteAddr())

		iface := &shell.Interface{
			Banner:     banner,
			ReadWriter: s,
			VT100:      true,
		}

		iface.Start()

		log.Printf("ssh session from %s closed", s.RemoteAddr())
		s.Exit(0)
	}
}

func sshCmd(console *shell.Interface, arg []string) (res string, err error) {
	var banner string

	addr := SSHAddress

	if len(arg[0]) > 0 {
		addr = arg[0]
	}

	if console != nil {
		banner = console.Banner
	}

	_, key, err := ed25519.GenerateKey(rand.Reader)

	if err != nil {
		return
	}

	signer, err := gossh.NewSignerFromKey(key)

	if err != nil {
		return
	}

	srv := &ssh.Server{
		Handler: handleSession(banner),
	}

	if len(SSHAuthorizedKey) > 0 {
		authorizedKey, _, _, _, err := ssh.ParseAuthorizedKey([]byte(SSHAuthorizedKey))

		if err != nil {
			return "", fmt.Errorf("invalid authorized key, %w", err)
		}

		srv.PublicKeyHandler = func(_ ssh.Context, k ssh.PublicKey) bool {
			return ssh.KeysEqual(k, authorizedKey)
		}
	}

	srv.AddHostKey(signer)

	listener, err := net.Listen("tcp", addr)

	if err != nil {
		return "", fmt.Errorf("could not listen on %s, %w", addr, err)
	}

	go func() {
		if err := srv.Serve(listener); err != nil && err != io.EOF {
			log.Printf("ssh server error, %v", err)
		}
	}()

	return fmt.Sprintf("SSH server listening on %s\nhost key %s",
		listener.Addr(), gossh.FingerprintSHA256(signer.PublicKey())), nil
}
