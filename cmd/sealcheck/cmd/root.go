// Copyright 2026 The Sealcheck Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/groovy/groovy-eclipse-sub013/java/errors"
)

type runFunction func(cmd *Command, args []string) error

func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		return f(c, args)
	}
}

// newRootCmd creates the base command when called without any subcommands
func newRootCmd() *Command {
	cmd := &cobra.Command{
		Use:   "sealcheck",
		Short: "sealcheck checks sealed hierarchies and pattern switches.",
		Long: `sealcheck reads resolved Java compilation units, written as YAML
documents, and checks their sealed type hierarchies and pattern switches.

It reports permitted subtypes that do not extend their sealed supertype,
subtypes of sealed types that are neither final, sealed nor non-sealed,
case labels that are dominated by earlier labels, and switches that do not
cover their selector type.

Run 'sealcheck help environment' for the environment variables that affect
the checks.`,

		SilenceUsage: true,
	}

	c := &Command{Command: cmd, root: cmd}

	subCommands := []*cobra.Command{
		newVetCmd(c),
		newGraphCmd(c),
		newExhaustiveCmd(c),
		newVersionCmd(c),

		// Help topics
		environmentHelp,
	}

	addGlobalFlags(cmd.PersistentFlags())

	for _, sub := range subCommands {
		cmd.AddCommand(sub)
	}

	return c
}

// MainTest is like Main, runs the sealcheck tool and returns the code for
// passing to os.Exit.
func MainTest() int {
	inTest = true
	return Main()
}

// Main runs the sealcheck tool and returns the code for passing to os.Exit.
func Main() int {
	err := mainErr(context.Background(), os.Args[1:])
	if err != nil {
		if err != ErrPrintedError {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}

func mainErr(ctx context.Context, args []string) error {
	cmd, err := New(args)
	if err != nil {
		return err
	}
	return cmd.Run(ctx)
}

// Command wraps the currently active cobra command.
type Command struct {
	// The currently active command.
	*cobra.Command

	root *cobra.Command

	stdin io.Reader

	hasErr bool
}

type errWriter Command

func (w *errWriter) Write(b []byte) (int, error) {
	c := (*Command)(w)
	c.hasErr = true
	return c.Command.OutOrStderr().Write(b)
}

// Hint: search for uses of OutOrStderr other than the one here to see
// which output does not trigger a non-zero exit code. os.Stderr may never
// be used directly.

// Stderr returns a writer that should be used for error messages.
func (c *Command) Stderr() io.Writer {
	return (*errWriter)(c)
}

// Stdin returns the reader that "-" arguments read from.
func (c *Command) Stdin() io.Reader {
	if c.stdin == nil {
		return os.Stdin
	}
	return c.stdin
}

func (c *Command) SetOutput(w io.Writer) {
	c.root.SetOutput(w)
}

func (c *Command) SetInput(r io.Reader) {
	c.stdin = r
}

// ErrPrintedError indicates error messages have been printed to stderr.
var ErrPrintedError = errors.New("terminating because of errors")

// Run executes the command selected by the arguments passed to New.
func (c *Command) Run(ctx context.Context) (err error) {
	defer recoverError(&err)

	if err := c.root.ExecuteContext(ctx); err != nil {
		return err
	}
	if c.hasErr {
		return ErrPrintedError
	}
	return nil
}

func recoverError(err *error) {
	switch e := recover().(type) {
	case nil:
	case panicError:
		*err = e.Err
	default:
		panic(e)
	}
	// We use panic to escape, instead of os.Exit
}

// New creates the sealcheck command for the given arguments.
func New(args []string) (cmd *Command, err error) {
	defer recoverError(&err)

	cmd = newRootCmd()
	cmd.root.SetArgs(args)
	return cmd, nil
}

type panicError struct {
	Err error
}

func exit() {
	panic(panicError{ErrPrintedError})
}
