package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"sigs.k8s.io/yaml"
)

func fixedTime() time.Time {
	return time.Date(2006, 1, 2, 3, 4, 5, 0, time.UTC)
}

func TestNewJsonLinesLogRecorder(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewJsonLinesLogRecorder(buf)
	l.Now = fixedTime

	session := l.NewSession("abc")
	assert.Nil(t, session.Record(&UnknownCommand{Command: []string{"nope", "arg"}}))
	assert.Nil(t, session.Record(&RunCommand{Command: []string{"ls"}, ResolvedCommandPath: "/bin/ls", Status: 2}))

	expected := `{"timestamp_micros":1136171045000000,"session_id":"abc","unknown_command":{"command":["nope","arg"]}}
{"timestamp_micros":1136171045000000,"session_id":"abc","run_command":{"command":["ls"],"resolved_command_path":"/bin/ls","status":2}}
`
	assert.Equal(t, expected, buf.String())
}

func TestNewSession_randomID(t *testing.T) {
	l := NewJsonLinesLogRecorder(&bytes.Buffer{})

	assert.NotEmpty(t, l.NewSession("").SessionID())
	assert.Equal(t, "given", l.NewSession("given").SessionID())
}

func TestReadJSONLinesLog_roundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	session := NewJsonLinesLogRecorder(buf).NewSession("s1")
	events := []LogType{
		&SessionStart{Pid: 42},
		&RunCommand{Command: []string{"ls", "-l"}, ResolvedCommandPath: "/bin/ls"},
		&BuiltinCommand{Command: []string{"env"}},
		&SessionEnd{Reason: "eof", LastStatus: 0},
	}
	for _, e := range events {
		assert.Nil(t, session.Record(e))
	}

	var read []LogType
	err := ReadJSONLinesLog(buf, func(le *LogEntry) {
		assert.Equal(t, "s1", le.SessionID)
		read = append(read, le.GetLogType())
	})

	assert.Nil(t, err)
	assert.Equal(t, events, read)
}

func TestReadJSONLinesLog_invalid(t *testing.T) {
	err := ReadJSONLinesLog(strings.NewReader("{not json"), func(*LogEntry) {})

	assert.NotNil(t, err)
}

func TestReport(t *testing.T) {
	var report Report
	entries := []*LogEntry{
		{SessionStart: &SessionStart{Pid: 1}},
		{RunCommand: &RunCommand{Command: []string{"ls"}, ResolvedCommandPath: "/bin/ls", Status: 0}},
		{RunCommand: &RunCommand{Command: []string{"ls"}, ResolvedCommandPath: "/bin/ls", Status: 0}},
		{RunCommand: &RunCommand{Command: []string{"false"}, ResolvedCommandPath: "/bin/false", Status: 1}},
		{UnknownCommand: &UnknownCommand{Command: []string{"nope"}}},
		{BuiltinCommand: &BuiltinCommand{Command: []string{"exit"}}},
		{SessionEnd: &SessionEnd{Reason: "exit"}},
		{},
	}
	for _, le := range entries {
		report.Update(le)
	}

	assert.Equal(t, 8, report.LogEntries)
	assert.Equal(t, 1, report.Sessions)
	assert.Equal(t, 2, report.RunCommand.CommandNames.Get("ls"))
	assert.Equal(t, 1, report.RunCommand.ResolvedCommandPaths.Get("/bin/false"))
	assert.Equal(t, 1, report.UnknownCommand.CommandNames.Get("nope"))
	assert.Equal(t, 1, report.BuiltinCommand.CommandNames.Get("exit"))
	assert.Equal(t, 1, report.SessionEnd.Reasons.Get("exit"))
	assert.Equal(t, 1, report.InvalidEntries.Get("<nil>"))

	out, err := yaml.Marshal(&report)
	assert.Nil(t, err)
	assert.Contains(t, string(out), "log_entries: 8")
}
