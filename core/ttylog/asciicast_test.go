package ttylog

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/josephlewis42/minish/core/vos"
	"github.com/stretchr/testify/assert"
)

func TestTimeConversions(t *testing.T) {
	cases := map[string]struct {
		microseconds int64
		seconds      float64
	}{
		"precision": {
			microseconds: 1,
			seconds:      1e-6,
		},
		"negative": {
			microseconds: -631119539e6,
			seconds:      -631119539,
		},
		"positive": {
			microseconds: 631119539e6,
			seconds:      631119539,
		},
		"bigprecise": {
			microseconds: 123456789987654,
			seconds:      123456789.987654,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			s2m := secondsToMicroseconds(tc.seconds)
			m2s := microsecondsToSeconds(tc.microseconds)

			// Only allow delta to be to the NS
			assert.InDelta(t, m2s, tc.seconds, float64(time.Nanosecond)/float64(time.Second))
			assert.Equal(t, s2m, tc.microseconds)
		})
	}
}

type entrySlice []*TTYLogEntry

func (s *entrySlice) Next() (*TTYLogEntry, error) {
	if len(*s) == 0 {
		return nil, io.EOF
	}
	next := (*s)[0]
	*s = (*s)[1:]
	return next, nil
}

func ioEntry(micros int64, fd FD, data string) *TTYLogEntry {
	return &TTYLogEntry{TimestampMicros: micros, Event: &IO{Fd: fd, Data: []byte(data)}}
}

func TestAsciicastLogSink(t *testing.T) {
	out := &bytes.Buffer{}
	env := vos.NewMapEnvFromEnvList([]string{"TERM=vt100", "SHELL=/usr/bin/minish", "HOME=/root"})
	sink := NewAsciicastLogSink(out, NewAsciicastHeader(env))

	source := entrySlice{
		ioEntry(1136171045000000, FD_STDOUT, "$ "),
		ioEntry(1136171045500000, FD_STDIN, "ls\n"),
		ioEntry(1136171046000000, FD_STDERR, "oops\r\n"),
		{TimestampMicros: 1136171047000000, Event: &Close{}},
	}
	assert.Nil(t, Replay(&source, sink))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, `{"version":2,"width":80,"height":24,"timestamp":1136171045,"title":"minish session","env":{"SHELL":"/usr/bin/minish","TERM":"vt100"}}`, lines[0])
	assert.Equal(t, `[0,"o","$ "]`, lines[1])
	assert.Equal(t, `[0.5,"i","ls\n"]`, lines[2])
	assert.Equal(t, `[1,"o","oops\r\n"]`, lines[3])
}

func TestAsciicastLogSource(t *testing.T) {
	recording := strings.Join([]string{
		`{"version":2,"width":80,"height":24}`,
		`[0,"o","$ "]`,
		``,
		`[0.25,"i","ls\n"]`,
		`[0.5,"r","100x40"]`,
		`[1.5,"o","file\r\n"]`,
		``,
	}, "\n")

	var got []*TTYLogEntry
	err := Replay(NewAsciicastLogSource(strings.NewReader(recording)), func(e *TTYLogEntry) error {
		got = append(got, e)
		return nil
	})

	assert.Nil(t, err)
	assert.Equal(t, []*TTYLogEntry{
		ioEntry(0, FD_STDOUT, "$ "),
		ioEntry(250000, FD_STDIN, "ls\n"),
		ioEntry(1500000, FD_STDOUT, "file\r\n"),
	}, got)
}

func TestAsciicastLogSource_malformed(t *testing.T) {
	cases := map[string]string{
		"not json":    "{}\nnope\n",
		"short array": "{}\n[0,\"o\"]\n",
		"wrong types": "{}\n[\"0\",\"o\",\"x\"]\n",
	}

	for tn, recording := range cases {
		t.Run(tn, func(t *testing.T) {
			err := Replay(NewAsciicastLogSource(strings.NewReader(recording)), func(*TTYLogEntry) error {
				return nil
			})
			assert.Error(t, err)
		})
	}
}

func TestClientOutput(t *testing.T) {
	out := &bytes.Buffer{}
	source := entrySlice{
		ioEntry(0, FD_STDOUT, "$ "),
		ioEntry(1, FD_STDIN, "env\n"),
		ioEntry(2, FD_STDERR, "err\n"),
		{TimestampMicros: 3, Event: &Close{}},
	}

	assert.Nil(t, Replay(&source, NewClientOutput(out)))
	assert.Equal(t, "$ err\n", out.String())
}

func TestPlayback(t *testing.T) {
	var slept []time.Duration
	sleep := func(d time.Duration) { slept = append(slept, d) }

	var played int
	sink := newPlayback(2*time.Second, sleep, func(*TTYLogEntry) error {
		played++
		return nil
	})

	source := entrySlice{
		ioEntry(10000000, FD_STDOUT, "a"),
		ioEntry(10500000, FD_STDOUT, "b"),
		ioEntry(60000000, FD_STDOUT, "c"),
		ioEntry(60000000, FD_STDOUT, "d"),
	}

	assert.Nil(t, Replay(&source, sink))
	assert.Equal(t, 4, played)
	assert.Equal(t, []time.Duration{500 * time.Millisecond, 2 * time.Second}, slept)
}

func TestReplay_sinkError(t *testing.T) {
	sinkErr := errors.New("full")
	source := entrySlice{ioEntry(0, FD_STDOUT, "a"), ioEntry(1, FD_STDOUT, "b")}

	calls := 0
	err := Replay(&source, func(*TTYLogEntry) error {
		calls++
		return sinkErr
	})

	assert.Equal(t, sinkErr, err)
	assert.Equal(t, 1, calls)
}

func TestNewAsciicastHeader(t *testing.T) {
	cases := map[string]struct {
		environ []string
		want    AsciicastHeader
	}{
		"empty environment": {
			want: AsciicastHeader{Version: 2, Width: 80, Height: 24, Title: "minish session"},
		},
		"session values": {
			environ: []string{"COLUMNS=132", "LINES=50", "TERM=xterm", "SHELL=/bin/minish", "PATH=/bin"},
			want: AsciicastHeader{
				Version: 2,
				Width:   132,
				Height:  50,
				Title:   "minish session",
				Env:     map[string]string{"TERM": "xterm", "SHELL": "/bin/minish"},
			},
		},
		"bad size": {
			environ: []string{"COLUMNS=wide", "LINES=-3"},
			want:    AsciicastHeader{Version: 2, Width: 80, Height: 24, Title: "minish session"},
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			got := NewAsciicastHeader(vos.NewMapEnvFromEnvList(tc.environ))

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAsciicastLogSource_header(t *testing.T) {
	out := &bytes.Buffer{}
	header := AsciicastHeader{Version: 2, Width: 100, Height: 30, Timestamp: 42, Env: map[string]string{"TERM": "xterm"}}
	sink := NewAsciicastLogSink(out, header)
	assert.Nil(t, sink(ioEntry(99000000, FD_STDOUT, "x")))

	source := NewAsciicastLogSource(out)
	got, err := source.Header()

	assert.Nil(t, err)
	assert.Equal(t, header, got)

	entry, err := source.Next()
	assert.Nil(t, err)
	assert.Equal(t, ioEntry(0, FD_STDOUT, "x"), entry)
}

func TestAsciicastLogSource_badHeader(t *testing.T) {
	_, err := NewAsciicastLogSource(strings.NewReader("nope\n")).Next()

	assert.Error(t, err)
}
