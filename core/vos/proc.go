package vos

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"syscall"
)

// ExitExecFailure is the status reported for a child whose program image
// could not be loaded.
const ExitExecFailure = 1

// ErrFatal marks failures that leave the shell unable to create processes at
// all. Callers should stop rather than prompt again.
var ErrFatal = errors.New("cannot create process")

// ProcAttr holds the attributes of a process started by an Executor.
type ProcAttr struct {
	// Env gives the environment of the new process in "key=value" form.
	// A nil Env gives the process an empty environment, it is never
	// inherited implicitly.
	Env []string

	// Files specifies the standard streams of the new process.
	Files VIO
}

// Executor starts a program and waits for it to terminate.
type Executor interface {
	// Run starts exactly one process running the program at path with argv
	// as its arguments (argv[0] is the name as typed) and blocks until that
	// process exits. It returns the exit status.
	//
	// Failing to load the program is reported on the process's stderr and
	// returned as ExitExecFailure with a nil error. A non-nil error means the
	// executor could not create processes and wraps ErrFatal.
	Run(path string, argv []string, attr *ProcAttr) (int, error)
}

// OsExecutor runs programs as host processes.
type OsExecutor struct{}

var _ Executor = (*OsExecutor)(nil)

// Run implements Executor.Run.
func (*OsExecutor) Run(path string, argv []string, attr *ProcAttr) (int, error) {
	if attr == nil {
		attr = &ProcAttr{}
	}
	files := attr.Files
	if files == nil {
		files = NewNullIO()
	}
	if len(argv) == 0 {
		argv = []string{path}
	}

	env := attr.Env
	if env == nil {
		env = []string{}
	}

	cmd := &exec.Cmd{
		Path:   path,
		Args:   argv,
		Env:    env,
		Stdin:  innermostReader(files.Stdin()),
		Stdout: files.Stdout(),
		Stderr: files.Stderr(),
	}

	if err := cmd.Start(); err != nil {
		if isResourceExhausted(err) {
			return -1, fmt.Errorf("%w: %v", ErrFatal, err)
		}

		// The program image never replaced the child; report it the way the
		// child would have and carry on.
		fmt.Fprintf(files.Stderr(), "%s: %v\n", argv[0], unwrapPathError(err))
		return ExitExecFailure, nil
	}

	// Wait only fails after the child was reaped when copying its I/O broke,
	// the status is still in ProcessState.
	_ = cmd.Wait()
	return ExitStatus(cmd.ProcessState), nil
}

// ExitStatus converts a reaped process's state into a shell status: the exit
// code, or 128 plus the signal number if the process was killed.
func ExitStatus(state *os.ProcessState) int {
	if state == nil {
		return -1
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return state.ExitCode()
}

func isResourceExhausted(err error) bool {
	for _, errno := range []syscall.Errno{syscall.EAGAIN, syscall.ENOMEM, syscall.ENFILE, syscall.EMFILE} {
		if errors.Is(err, errno) {
			return true
		}
	}
	return false
}

func unwrapPathError(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}
