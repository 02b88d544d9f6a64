// Package vostest contains fakes for testing code that runs programs through
// vos.
package vostest

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/josephlewis42/minish/core/vos"
	"github.com/spf13/afero"
)

// Call records a single Executor.Run.
type Call struct {
	Path string
	Argv []string
	Env  []string
}

// Process is the body of a fake program.
type Process func(argv []string, stdio vos.VIO) int

// Executor runs fake programs in-process and records each call.
type Executor struct {
	// Process runs for every call. If nil, calls exit 0 with no output.
	Process Process
	// Err is returned by every call if set, Process is not run.
	Err error

	Calls []Call
}

var _ vos.Executor = (*Executor)(nil)

func (e *Executor) Run(path string, argv []string, attr *vos.ProcAttr) (int, error) {
	e.Calls = append(e.Calls, Call{
		Path: path,
		Argv: argv,
		Env:  attr.Env,
	})

	if e.Err != nil {
		return -1, e.Err
	}
	if e.Process == nil {
		return 0, nil
	}
	return e.Process(argv, attr.Files), nil
}

// Echo prints its arguments separated by spaces like echo(1).
func Echo(argv []string, stdio vos.VIO) int {
	fmt.Fprintln(stdio.Stdout(), strings.Join(argv[1:], " "))
	return 0
}

// Exit creates a program that exits with the given status.
func Exit(status int) Process {
	return func([]string, vos.VIO) int {
		return status
	}
}

// NewFs creates an in-memory filesystem with an empty executable file at each
// of the given absolute paths.
func NewFs(t testing.TB, executables ...string) afero.Fs {
	t.Helper()

	fsys := afero.NewMemMapFs()
	for _, exe := range executables {
		if err := fsys.MkdirAll(filepath.Dir(exe), 0755); err != nil {
			t.Fatal(err)
		}
		if err := afero.WriteFile(fsys, exe, nil, 0755); err != nil {
			t.Fatal(err)
		}
		// Creation is subject to the umask on some filesystems.
		if err := fsys.Chmod(exe, 0755); err != nil {
			t.Fatal(err)
		}
	}
	return fsys
}
