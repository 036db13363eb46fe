// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package shell

import (
	"bytes"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"
)

func init() {
	Add(Cmd{
		Name:    "echo",
		Args:    1,
		Pattern: regexp.MustCompile(`^echo (.*)$`),
		Syntax:  "<text>",
		Help:    "print text",
		Fn: func(_ *Interface, arg []string) (string, error) {
			return arg[0], nil
		},
	})

	Add(Cmd{
		Name: "bye",
		Help: "close session",
		Fn: func(_ *Interface, _ []string) (string, error) {
			return "", io.EOF
		},
	})
}

func TestHandleLine(t *testing.T) {
	var buf bytes.Buffer

	iface := &Interface{}

	if err := iface.handleLine("echo hello world", &buf); err != nil {
		t.Fatal(err)
	}

	if got := buf.String(); got != "hello world\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestHandleLineUnknown(t *testing.T) {
	var buf bytes.Buffer

	iface := &Interface{}

	if err := iface.handleLine("frobnicate", &buf); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("unexpected error %v", err)
	}

	if buf.Len() != 0 {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestHandleLineError(t *testing.T) {
	var buf bytes.Buffer

	iface := &Interface{}

	if err := iface.handleLine("bye", &buf); err != io.EOF {
		t.Errorf("unexpected error %v", err)
	}
}

func TestAddReplaces(t *testing.T) {
	var buf bytes.Buffer

	iface := &Interface{}

	Add(Cmd{
		Name: "version",
		Fn: func(_ *Interface, _ []string) (string, error) {
			return "v1", nil
		},
	})

	Add(Cmd{
		Name: "version",
		Fn: func(_ *Interface, _ []string) (string, error) {
			return "v2", nil
		},
	})

	if err := iface.handleLine("version", &buf); err != nil {
		t.Fatal(err)
	}

	if got := buf.String(); got != "v2\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestHelp(t *testing.T) {
	help, err := (&Interface{}).Help(nil)

	if err != nil {
		t.Fatal(err)
	}

	for _, s := range []string{"echo", "<text>", "# print text", "help"} {
		if !strings.Contains(help, s) {
			t.Errorf("help output is missing %q:\n%s", s, help)
		}
	}

	if strings.Index(help, "bye") > strings.Index(help, "echo") {
		t.Errorf("help output is not sorted:\n%s", help)
	}
}
