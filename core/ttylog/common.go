// Package ttylog records the terminal side of a session and plays it back.
package ttylog

import (
	"io"
	"log"
	"sync"
	"time"

	"github.com/josephlewis42/minish/core/vos"
)

// FD identifies which standard stream an IO event belongs to.
type FD int

const (
	FD_STDIN FD = iota
	FD_STDOUT
	FD_STDERR
)

// TTYLogEntry is a single timestamped event in a recording.
type TTYLogEntry struct {
	TimestampMicros int64
	Event           Event
}

// Event is implemented by *IO and *Close.
type Event interface {
	isEvent()
}

// IO holds data that passed through one of the streams.
type IO struct {
	Fd   FD
	Data []byte
}

func (*IO) isEvent() {}

// Close marks the end of a recording.
type Close struct{}

func (*Close) isEvent() {}

// LogSink receives log events.
type LogSink func(t *TTYLogEntry) error

// LogSource adapts log readers.
type LogSource interface {
	// Next fetches the next available log entry. It returns io.EOF if the source
	// has no more log entries.
	Next() (*TTYLogEntry, error)
}

// NewRealTimePlayback plays back the results in real-time.
// If maxSleep > 0, it's used as the maximum duration to pause.
func NewRealTimePlayback(maxSleep time.Duration, next LogSink) LogSink {
	return newPlayback(maxSleep, time.Sleep, next)
}

func newPlayback(maxSleep time.Duration, sleep func(time.Duration), next LogSink) LogSink {
	var once sync.Once
	var prevTimeMicros int64

	return func(logEntry *TTYLogEntry) error {
		once.Do(func() {
			prevTimeMicros = logEntry.TimestampMicros
		})

		delta := logEntry.TimestampMicros - prevTimeMicros
		prevTimeMicros = logEntry.TimestampMicros

		if maxSleep > 0 {
			sleepDuration := time.Duration(delta) * time.Microsecond
			if sleepDuration > maxSleep {
				sleepDuration = maxSleep
			}
			if sleepDuration > 0 {
				sleep(sleepDuration)
			}
		}

		return next(logEntry)
	}
}

// NewClientOutput writes stdout and stderr to the given writer
func NewClientOutput(w io.Writer) LogSink {
	return func(logEntry *TTYLogEntry) error {
		if event, ok := logEntry.Event.(*IO); ok && event.Fd != FD_STDIN {
			if _, err := w.Write(event.Data); err != nil {
				return err
			}
		}
		return nil
	}
}

// Replay reads a stream of events to a callback.
func Replay(recording LogSource, callback LogSink) error {
	for {
		logEntry, err := recording.Next()
		switch {
		case err == io.EOF:
			return nil
		case err != nil:
			return err
		}

		if err := callback(logEntry); err != nil {
			return err
		}
	}
}

// Recorder is a VIO that copies everything passing through the wrapped VIO
// to a LogSink.
type Recorder struct {
	stdin  *recorderReadCloser
	stdout *recorderWriteCloser
	stderr *recorderWriteCloser

	mutex  sync.Mutex
	output LogSink
	// Now is the time source, time.Now if nil.
	Now func() time.Time
}

var _ vos.VIO = (*Recorder)(nil)

// NewRecorder creates a logger that forwards all events to output.
func NewRecorder(toWrap vos.VIO, output LogSink) *Recorder {
	recorder := &Recorder{
		output: output,
	}

	recorder.stdin = &recorderReadCloser{mockFd: FD_STDIN, r: recorder, wrapped: toWrap.Stdin()}
	recorder.stdout = &recorderWriteCloser{mockFd: FD_STDOUT, r: recorder, wrapped: toWrap.Stdout()}
	recorder.stderr = &recorderWriteCloser{mockFd: FD_STDERR, r: recorder, wrapped: toWrap.Stderr()}

	return recorder
}

func (r *Recorder) Stdin() io.ReadCloser   { return r.stdin }
func (r *Recorder) Stdout() io.WriteCloser { return r.stdout }
func (r *Recorder) Stderr() io.WriteCloser { return r.stderr }

// Close writes the end of the recording, the wrapped streams stay open.
func (r *Recorder) Close() error {
	return r.emit(&Close{})
}

func (r *Recorder) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Recorder) emit(event Event) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	return r.output(&TTYLogEntry{
		TimestampMicros: r.now().UnixNano() / int64(time.Microsecond),
		Event:           event,
	})
}

func (r *Recorder) recordIO(mockFd FD, data []byte, dest func([]byte) (int, error)) (int, error) {
	amount, err := dest(data)
	if amount > 0 {
		copied := append([]byte(nil), data[:amount]...)
		if e2 := r.emit(&IO{Fd: mockFd, Data: copied}); e2 != nil {
			log.Print(e2)
		}
	}
	return amount, err
}

type recorderReadCloser struct {
	r       *Recorder
	mockFd  FD
	wrapped io.ReadCloser
}

var _ io.ReadCloser = (*recorderReadCloser)(nil)

func (rc *recorderReadCloser) Read(p []byte) (int, error) {
	return rc.r.recordIO(rc.mockFd, p, rc.wrapped.Read)
}

func (rc *recorderReadCloser) Close() error {
	return rc.wrapped.Close()
}

// Unwrap gives child processes the original stream, their input is not
// recorded.
func (rc *recorderReadCloser) Unwrap() io.Reader {
	return rc.wrapped
}

type recorderWriteCloser struct {
	r       *Recorder
	mockFd  FD
	wrapped io.WriteCloser
}

var _ io.WriteCloser = (*recorderWriteCloser)(nil)

func (rc *recorderWriteCloser) Write(p []byte) (int, error) {
	return rc.r.recordIO(rc.mockFd, p, rc.wrapped.Write)
}

func (rc *recorderWriteCloser) Close() error {
	return rc.wrapped.Close()
}
