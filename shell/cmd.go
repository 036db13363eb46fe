// Copyright (c) WithSecure Corporation
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package shell

import (
	"bytes"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
	"text/tabwriter"
)

// CmdFn represents a command handler.
type CmdFn func(iface *Interface, arg []string) (res string, err error)

// Cmd represents a shell command.
type Cmd struct {
	// Name is the command name, as shown in help output
	Name string
	// Args is the number of Pattern submatches passed to Fn
	Args int
	// Pattern is the command matching expression, commands without a
	// pattern match their exact Name.
	Pattern *regexp.Regexp
	// Syntax is the arguments description
	Syntax string
	// Help is the command description
	Help string
	// Fn is the command handler
	Fn CmdFn
}

var (
	mu   sync.Mutex
	cmds []*Cmd
)

// Add registers a terminal command, a command with the same name replaces any
// previous registration.
func Add(cmd Cmd) {
	mu.Lock()
	defer mu.Unlock()

	if i := slices.IndexFunc(cmds, func(c *Cmd) bool { return c.Name == cmd.Name }); i >= 0 {
		cmds[i] = &cmd
		return
	}

	cmds = append(cmds, &cmd)
}

// find returns the command matching the argument line, along with its
// arguments.
func find(line string) (match *Cmd, arg []string) {
	mu.Lock()
	defer mu.Unlock()

	for _, cmd := range cmds {
		if cmd.Pattern == nil {
			if cmd.Name == line {
				return cmd, nil
			}
		} else if m := cmd.Pattern.FindStringSubmatch(line); len(m) > 0 && (len(m)-1 == cmd.Args) {
			return cmd, m[1:]
		}
	}

	return
}

// Help returns a formatted string with instructions for all registered
// commands.
func (iface *Interface) Help(_ []string) (string, error) {
	var buf bytes.Buffer

	mu.Lock()
	list := slices.Clone(cmds)
	mu.Unlock()

	slices.SortFunc(list, func(a, b *Cmd) int {
		return strings.Compare(a.Name, b.Name)
	})

	t := tabwriter.NewWriter(&buf, 16, 8, 0, '\t', tabwriter.TabIndent)

	for _, cmd := range list {
		_, _ = fmt.Fprintf(t, "%s\t%s\t # %s\n", cmd.Name, cmd.Syntax, cmd.Help)
	}

	_ = t.Flush()

	return buf.String(), nil
}

func helpCmd(iface *Interface, arg []string) (string, error) {
	return iface.Help(arg)
}

func init() {
	Add(Cmd{
		Name: "help",
		Help: "this help",
		Fn:   helpCmd,
	})
}
