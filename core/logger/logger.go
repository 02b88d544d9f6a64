package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"sync"
	"time"
)

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Recorder accepts session events.
type Recorder interface {
	Record(event LogType) error
}

// Logger captures interaction event logs for the shell.
type Logger struct {
	Record LogRecorder
	// Now is the time source, time.Now if nil.
	Now func() time.Time
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	var mu sync.Mutex
	return &Logger{
		Record: func(le *LogEntry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

func (l *Logger) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *Logger) recordLogType(sessionID string, event LogType) error {
	le := &LogEntry{}
	le.TimestampMicros = l.now().UnixNano() / int64(time.Microsecond)
	le.SessionID = sessionID
	event.setOn(le)

	return l.Record(le)
}

// NewSession creates a logger with attached session ID, a random one is
// generated if id is empty.
func (l *Logger) NewSession(id string) *SessionLogger {
	if id == "" {
		id = fmt.Sprintf("%d", rand.Uint64())
	}
	return &SessionLogger{Logger: l, sessionID: id}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

var _ Recorder = (*SessionLogger)(nil)

// SessionID returns the ID attached to every event.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

func (l *SessionLogger) Record(event LogType) error {
	return l.recordLogType(l.sessionID, event)
}

// NopRecorder discards all events.
type NopRecorder struct{}

var _ Recorder = NopRecorder{}

func (NopRecorder) Record(LogType) error {
	return nil
}
