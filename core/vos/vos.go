// Package vos is the slice of the operating system the shell touches: its
// inherited environment, the filesystem commands are resolved against, the
// standard I/O streams and child process creation.
//
// Every piece is an interface or a value passed in explicitly so the shell can
// run against a synthetic environment and an in-memory filesystem.
package vos

import "io"

// VIO holds the standard streams of a process.
type VIO interface {
	Stdin() io.ReadCloser
	Stdout() io.WriteCloser
	Stderr() io.WriteCloser
}
