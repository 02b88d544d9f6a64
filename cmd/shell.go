package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/josephlewis42/minish/core/config"
	"github.com/josephlewis42/minish/core/logger"
	"github.com/josephlewis42/minish/core/shell"
	"github.com/josephlewis42/minish/core/ttylog"
	"github.com/josephlewis42/minish/core/vos"
	"github.com/mattn/go-isatty"
)

// terminal holds whether the process's streams are attached to a terminal.
type terminal struct {
	stdin  bool
	stdout bool
}

func detectTerminal() terminal {
	return terminal{
		stdin:  isatty.IsTerminal(os.Stdin.Fd()),
		stdout: isatty.IsTerminal(os.Stdout.Fd()),
	}
}

// runShell runs an interactive session on the process's own streams.
func runShell(cfg *config.Configuration) (err error) {
	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if closeErr := closers[i].Close(); closeErr != nil && err == nil {
				err = closeErr
			}
		}
	}()

	env := vos.NewMapEnvFrom(vos.EnvironFunc(os.Environ))

	var vio vos.VIO = vos.NewOsIO()
	if cfg.Recording != "" {
		fd, err := cfg.CreateRecording()
		if err != nil {
			return fmt.Errorf("opening recording: %w", err)
		}
		closers = append(closers, fd)

		recorder := ttylog.NewRecorder(vio, ttylog.NewAsciicastLogSink(fd, ttylog.NewAsciicastHeader(env)))
		closers = append(closers, recorder)
		vio = recorder
	}

	sh, err := newShell(cfg, env, vio, detectTerminal())
	if err != nil {
		return err
	}
	closers = append(closers, sh)

	if cfg.EventLog != "" {
		fd, err := cfg.OpenEventLog()
		if err != nil {
			return fmt.Errorf("opening event log: %w", err)
		}
		closers = append(closers, fd)

		sh.Events = logger.NewJsonLinesLogRecorder(fd).NewSession("")
	}

	return sh.Run()
}

// newShell applies the configuration to a shell running on the host.
func newShell(cfg *config.Configuration, env vos.VEnv, vio vos.VIO, term terminal) (*shell.Shell, error) {
	sh := shell.NewShell(env, vos.NewOsFs(), vio, &vos.OsExecutor{})
	sh.InheritEnv = cfg.InheritEnv

	sh.PromptTemplate = ""
	if config.Enabled(cfg.ShowPrompt, term.stdin) {
		sh.PromptTemplate = cfg.Prompt
	}

	if sh.PromptTemplate != "" && config.Enabled(cfg.Color, term.stdout) {
		promptColor := color.New(color.FgGreen, color.Bold)
		promptColor.EnableColor()
		sh.PromptColor = promptColor
	}

	if cfg.LineEditing && term.stdin {
		reader, err := shell.NewEditingReader(vio, cfg.Resolve(cfg.HistoryFile))
		if err != nil {
			return nil, fmt.Errorf("starting line editor: %w", err)
		}
		sh.Reader = reader
	}

	return sh, nil
}
