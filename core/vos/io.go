package vos

import (
	"io"
	"os"
)

// StdIO is a VIO built from plain readers and writers.
type StdIO struct {
	In  io.ReadCloser
	Out io.WriteCloser
	Err io.WriteCloser
}

var _ VIO = (*StdIO)(nil)

// NewStdIO wraps the given streams, a nil stdin is empty and nil outputs
// discard writes.
func NewStdIO(stdin io.Reader, stdout, stderr io.Writer) *StdIO {
	return &StdIO{
		In:  readCloserOrNull(stdin),
		Out: writeCloserOrNull(stdout),
		Err: writeCloserOrNull(stderr),
	}
}

// NewOsIO binds the process's own standard streams. Children started with it
// inherit the file descriptors directly.
func NewOsIO() *StdIO {
	return &StdIO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// NewNullIO creates a /dev/null style VIO.
func NewNullIO() *StdIO {
	return NewStdIO(nil, nil, nil)
}

func (s *StdIO) Stdin() io.ReadCloser   { return s.In }
func (s *StdIO) Stdout() io.WriteCloser { return s.Out }
func (s *StdIO) Stderr() io.WriteCloser { return s.Err }

// innermostReader strips wrappers that expose Unwrap so a child can share the
// underlying descriptor instead of reading through a copying goroutine.
func innermostReader(r io.Reader) io.Reader {
	for {
		u, ok := r.(interface{ Unwrap() io.Reader })
		if !ok {
			return r
		}
		r = u.Unwrap()
	}
}

func writeCloserOrNull(w io.Writer) io.WriteCloser {
	switch w := w.(type) {
	case nil:
		return nullStream{}
	case io.WriteCloser:
		return w
	default:
		return nopWriteCloser{w}
	}
}

func readCloserOrNull(r io.Reader) io.ReadCloser {
	switch r := r.(type) {
	case nil:
		return nullStream{}
	case io.ReadCloser:
		return r
	default:
		return io.NopCloser(r)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// nullStream is always at end of input and discards writes.
type nullStream struct{}

func (nullStream) Read([]byte) (int, error)    { return 0, io.EOF }
func (nullStream) Write(b []byte) (int, error) { return len(b), nil }
func (nullStream) Close() error                { return nil }
