package ttylog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/josephlewis42/minish/core/vos"
)

func writeJSONLine(w io.Writer, structure interface{}) error {
	line, err := json.Marshal(structure)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s\n", string(line))
	return err
}

// AsciicastHeader is the first line of an asciicast v2 recording.
type AsciicastHeader struct {
	Version   int               `json:"version"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Timestamp int64             `json:"timestamp,omitempty"`
	Title     string            `json:"title,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
}

// Variables copied from the session into the header.
var asciicastEnvKeys = []string{"SHELL", "TERM"}

// NewAsciicastHeader describes a session running in env. The terminal size
// is taken from COLUMNS and LINES when they hold positive numbers, 80x24
// otherwise.
func NewAsciicastHeader(env vos.VEnv) AsciicastHeader {
	header := AsciicastHeader{
		Version: 2,
		Width:   envInt(env, "COLUMNS", 80),
		Height:  envInt(env, "LINES", 24),
		Title:   "minish session",
	}

	for _, key := range asciicastEnvKeys {
		if val, ok := env.LookupEnv(key); ok {
			if header.Env == nil {
				header.Env = make(map[string]string)
			}
			header.Env[key] = val
		}
	}

	return header
}

func envInt(env vos.VEnv, key string, fallback int) int {
	n, err := strconv.Atoi(env.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// NewAsciicastLogSink creates a LogSink compatible with the asciicast v2
// format. The header is written before the first event, stamped with that
// event's time unless it already has a timestamp.
//
// See: https://github.com/asciinema/asciinema/blob/develop/doc/asciicast-v2.md
func NewAsciicastLogSink(w io.Writer, header AsciicastHeader) LogSink {
	var (
		firstLogTimeMicros int64
		once               sync.Once
	)

	return func(entry *TTYLogEntry) error {
		var headerErr error
		once.Do(func() {
			firstLogTimeMicros = entry.TimestampMicros
			if header.Timestamp == 0 {
				header.Timestamp = firstLogTimeMicros / int64(time.Second/time.Microsecond)
			}
			headerErr = writeJSONLine(w, header)
		})
		if headerErr != nil {
			return headerErr
		}

		switch event := entry.Event.(type) {
		case *IO:
			line := &asciicastLogLine{
				TimeSeconds: microsecondsToSeconds(entry.TimestampMicros - firstLogTimeMicros),
				EventType:   asciicastOutput,
				EventData:   string(event.Data),
			}
			if event.Fd == FD_STDIN {
				line.EventType = asciicastInput
			}
			return writeJSONLine(w, line)
		case *Close:
			return nil
		default:
			return fmt.Errorf("unknown event: %T", entry.Event)
		}
	}
}

// Event codes, asciicast has no separate code for stderr.
const (
	asciicastOutput = "o"
	asciicastInput  = "i"
)

// AsciicastLogSource reads events from an asciicast v2 recording.
type AsciicastLogSource struct {
	r *bufio.Reader

	headerOnce sync.Once
	header     AsciicastHeader
	headerErr  error
}

var _ LogSource = (*AsciicastLogSource)(nil)

// NewAsciicastLogSource reads log events from an Asciicast formatted file.
func NewAsciicastLogSource(r io.Reader) *AsciicastLogSource {
	return &AsciicastLogSource{r: bufio.NewReader(r)}
}

// Header returns the recording's header line.
func (src *AsciicastLogSource) Header() (AsciicastHeader, error) {
	src.headerOnce.Do(func() {
		line, err := src.r.ReadBytes('\n')
		if err != nil {
			src.headerErr = err
			return
		}
		if err := json.Unmarshal(line, &src.header); err != nil {
			src.headerErr = fmt.Errorf("malformed header: %w", err)
		}
	})
	return src.header, src.headerErr
}

// Next gets the next log entry, it returns io.EOF if there are no more.
func (src *AsciicastLogSource) Next() (*TTYLogEntry, error) {
	if _, err := src.Header(); err != nil {
		return nil, err
	}

	for {
		line, err := src.r.ReadBytes('\n')
		if err != nil {
			return nil, err
		}

		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		var asciicastLine asciicastLogLine
		if err := json.Unmarshal(line, &asciicastLine); err != nil {
			return nil, err
		}

		var fd FD
		switch asciicastLine.EventType {
		case asciicastOutput:
			fd = FD_STDOUT
		case asciicastInput:
			fd = FD_STDIN
		default:
			// Resize and marker events have no stream.
			continue
		}

		return &TTYLogEntry{
			TimestampMicros: secondsToMicroseconds(asciicastLine.TimeSeconds),
			Event: &IO{
				Data: []byte(asciicastLine.EventData),
				Fd:   fd,
			},
		}, nil
	}
}

type asciicastLogLine struct {
	TimeSeconds float64
	EventType   string
	EventData   string
}

func (log *asciicastLogLine) UnmarshalJSON(data []byte) error {
	var v []interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if count := len(v); count != 3 {
		return fmt.Errorf("malformed line, expected 3 entries got %d", count)
	}

	var timeOk, typeOk, dataOk bool
	log.TimeSeconds, timeOk = v[0].(float64)
	log.EventType, typeOk = v[1].(string)
	log.EventData, dataOk = v[2].(string)

	if !timeOk || !typeOk || !dataOk {
		return fmt.Errorf("malformed data in line: %q", v)
	}

	return nil
}

func (log *asciicastLogLine) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{log.TimeSeconds, log.EventType, log.EventData})
}

func microsecondsToSeconds(microseconds int64) (seconds float64) {
	return (float64(microseconds) * float64(time.Microsecond)) / float64(time.Second)
}

func secondsToMicroseconds(seconds float64) (microseconds int64) {
	return int64(float64(seconds)*float64(time.Second)) / int64(time.Microsecond)
}
