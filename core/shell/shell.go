package shell

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/vos"
)

// ExitNotFound is the status recorded when a command could not be resolved.
const ExitNotFound = 127

// Shell is a minimal interactive command interpreter. It reads one line at a
// time, runs it to completion and prompts again until input runs out or the
// exit built-in is used.
type Shell struct {
	// Env is the environment inherited at startup. The shell never modifies
	// it, it is read by path resolution, the env built-in and passed on to
	// children.
	Env vos.VEnv
	// Fs is searched for executables.
	Fs vos.VFS
	// IO holds the shell's streams, children share them.
	IO       vos.VIO
	Executor vos.Executor
	Reader   LineReader
	Events   logger.Recorder

	// PromptTemplate is expanded with ExpandPrompt before every line. An
	// empty template shows no prompt.
	PromptTemplate string
	// PromptColor colors the prompt if non-nil.
	PromptColor *color.Color
	// UID decides between the # and $ prompt.
	UID int
	// InheritEnv passes Env to children, otherwise they start with an empty
	// environment.
	InheritEnv bool

	lastStatus int
	quit       bool
}

// NewShell creates a shell reading lines from the stdin of vio without line
// editing.
func NewShell(env vos.VEnv, fsys vos.VFS, vio vos.VIO, executor vos.Executor) *Shell {
	return &Shell{
		Env:            env,
		Fs:             fsys,
		IO:             vio,
		Executor:       executor,
		Reader:         NewBufferedReader(vio.Stdin(), vio.Stdout()),
		Events:         logger.NopRecorder{},
		PromptTemplate: DefaultPrompt,
		UID:            os.Getuid(),
		InheritEnv:     true,
	}
}

// LastStatus returns the status of the most recent command. Nothing in the
// shell depends on it.
func (s *Shell) LastStatus() int {
	return s.lastStatus
}

func (s *Shell) prompt() string {
	if s.PromptTemplate == "" {
		return ""
	}

	prompt := ExpandPrompt(s.PromptTemplate, s.Env, s.UID)
	if s.PromptColor != nil {
		prompt = s.PromptColor.Sprint(prompt)
	}
	return prompt
}

// Run reads and evaluates lines until end of input or exit. It returns nil
// in both cases, a non-nil error means the shell could not continue.
func (s *Shell) Run() error {
	s.record(&logger.SessionStart{Pid: os.Getpid()})

	for !s.quit {
		s.Reader.SetPrompt(s.prompt())
		line, err := s.Reader.Readline()

		switch {
		case err == io.EOF:
			fmt.Fprintln(s.IO.Stdout())
			s.end("eof", nil)
			return nil

		case err == ErrInterrupt:
			// Interrupt clears line.
			continue

		case err != nil:
			err = fmt.Errorf("reading input: %w", err)
			s.end("error", err)
			return err
		}

		if err := s.Eval(line); err != nil {
			s.end("error", err)
			return err
		}
	}

	s.end("exit", nil)
	return nil
}

// Eval runs a single line. Blank lines do nothing and unknown commands are
// reported to the user, only failures that make it impossible to continue
// are returned.
func (s *Shell) Eval(line string) error {
	args := Tokenize(line)
	if len(args) == 0 {
		return nil
	}

	if builtin, ok := AllBuiltins[args[0]]; ok {
		s.lastStatus = builtin.Main(s, args)
		s.record(&logger.BuiltinCommand{Command: args, Status: s.lastStatus})
		return nil
	}

	path, err := vos.LookPath(s.Fs, s.Env, args[0])
	if err != nil {
		fmt.Fprintf(s.IO.Stdout(), "%s: command not found\n", args[0])
		s.lastStatus = ExitNotFound
		s.record(&logger.UnknownCommand{Command: args})
		return nil
	}

	status, err := s.Executor.Run(path, args, &vos.ProcAttr{
		Env:   s.childEnv(),
		Files: s.IO,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	s.lastStatus = status
	s.record(&logger.RunCommand{Command: args, ResolvedCommandPath: path, Status: status})
	return nil
}

func (s *Shell) childEnv() []string {
	if !s.InheritEnv {
		return nil
	}
	return s.Env.Environ()
}

// Close releases the line reader.
func (s *Shell) Close() error {
	return s.Reader.Close()
}

func (s *Shell) end(reason string, err error) {
	event := &logger.SessionEnd{Reason: reason, LastStatus: s.lastStatus}
	if err != nil {
		event.Error = err.Error()
	}
	s.record(event)
}

func (s *Shell) record(event logger.LogType) {
	if err := s.Events.Record(event); err != nil {
		log.Printf("recording event: %v", err)
	}
}
