package logger

// LogEntry is one line of the event log. Exactly one event field is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	SessionStart   *SessionStart   `json:"session_start,omitempty"`
	SessionEnd     *SessionEnd     `json:"session_end,omitempty"`
	RunCommand     *RunCommand     `json:"run_command,omitempty"`
	UnknownCommand *UnknownCommand `json:"unknown_command,omitempty"`
	BuiltinCommand *BuiltinCommand `json:"builtin_command,omitempty"`
}

// LogType is implemented by every event that can be stored in a LogEntry.
type LogType interface {
	setOn(le *LogEntry)
}

// GetLogType returns the event held by the entry, or nil.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.SessionStart != nil:
		return le.SessionStart
	case le.SessionEnd != nil:
		return le.SessionEnd
	case le.RunCommand != nil:
		return le.RunCommand
	case le.UnknownCommand != nil:
		return le.UnknownCommand
	case le.BuiltinCommand != nil:
		return le.BuiltinCommand
	default:
		return nil
	}
}

// SessionStart is logged when the interpreter begins reading input.
type SessionStart struct {
	Pid int `json:"pid"`
}

func (e *SessionStart) setOn(le *LogEntry) { le.SessionStart = e }

// SessionEnd is logged when the interpreter stops.
type SessionEnd struct {
	// Reason is "eof", "exit" or "error".
	Reason     string `json:"reason"`
	LastStatus int    `json:"last_status"`
	Error      string `json:"error,omitempty"`
}

func (e *SessionEnd) setOn(le *LogEntry) { le.SessionEnd = e }

// RunCommand is logged after a child process has been reaped.
type RunCommand struct {
	Command             []string `json:"command"`
	ResolvedCommandPath string   `json:"resolved_command_path"`
	Status              int      `json:"status"`
}

func (e *RunCommand) setOn(le *LogEntry) { le.RunCommand = e }

// UnknownCommand is logged when resolution found nothing to run.
type UnknownCommand struct {
	Command []string `json:"command"`
}

func (e *UnknownCommand) setOn(le *LogEntry) { le.UnknownCommand = e }

// BuiltinCommand is logged when a built-in handles the line.
type BuiltinCommand struct {
	Command []string `json:"command"`
	Status  int      `json:"status"`
}

func (e *BuiltinCommand) setOn(le *LogEntry) { le.BuiltinCommand = e }
