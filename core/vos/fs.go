package vos

import (
	"errors"
	"io/fs"

	"github.com/spf13/afero"
	"golang.org/x/sys/unix"
)

// VFS is the filesystem commands are resolved against.
type VFS = afero.Fs

// ExecChecker is implemented by filesystems that can answer whether the
// current process may execute a file, rather than guessing from mode bits.
type ExecChecker interface {
	CheckExecutable(name string) error
}

// OsFs is the host filesystem. Execute permission is checked with access(2)
// so ownership, groups and read-only mounts are taken into account.
type OsFs struct {
	afero.Fs
}

var _ ExecChecker = (*OsFs)(nil)

// NewOsFs returns the host filesystem.
func NewOsFs() *OsFs {
	return &OsFs{Fs: afero.NewOsFs()}
}

// CheckExecutable implements ExecChecker.
func (*OsFs) CheckExecutable(name string) error {
	if err := unix.Access(name, unix.X_OK); err != nil {
		return &fs.PathError{Op: "access", Path: name, Err: err}
	}
	return nil
}

// findExecutable reports nil if name is a non-directory file the current
// process can execute.
func findExecutable(fsys VFS, name string) error {
	d, err := fsys.Stat(name)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case err != nil:
		return err
	}

	m := d.Mode()
	if m.IsDir() {
		return fs.ErrPermission
	}

	if checker, ok := fsys.(ExecChecker); ok {
		if err := checker.CheckExecutable(name); err != nil {
			return fs.ErrPermission
		}
		return nil
	}

	if m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}
