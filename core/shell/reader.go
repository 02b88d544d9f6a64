package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/minish/core/vos"
)

// ErrInterrupt is returned by a LineReader when the user abandons the line
// being edited.
var ErrInterrupt = readline.ErrInterrupt

// LineReader acquires one line of input at a time. Readline returns the line
// without its trailing newline, and io.EOF once input is exhausted.
type LineReader interface {
	SetPrompt(prompt string)
	Readline() (string, error)
	Close() error
}

// BufferedReader reads lines with no editing, writing the prompt itself.
type BufferedReader struct {
	r      *bufio.Reader
	w      io.Writer
	prompt string
}

var _ LineReader = (*BufferedReader)(nil)

// NewBufferedReader reads lines from r and writes prompts to w.
func NewBufferedReader(r io.Reader, w io.Writer) *BufferedReader {
	return &BufferedReader{r: bufio.NewReader(r), w: w}
}

func (b *BufferedReader) SetPrompt(prompt string) {
	b.prompt = prompt
}

// Readline implements LineReader. A final line with no newline is returned
// before io.EOF.
func (b *BufferedReader) Readline() (string, error) {
	if b.prompt != "" {
		fmt.Fprint(b.w, b.prompt)
	}

	line, err := b.r.ReadString('\n')
	switch {
	case err == io.EOF && line != "":
		return line, nil
	case err != nil:
		return "", err
	}

	return strings.TrimSuffix(line, "\n"), nil
}

func (b *BufferedReader) Close() error {
	return nil
}

// NewEditingReader creates a LineReader with line editing and history for a
// terminal.
func NewEditingReader(vio vos.VIO, historyFile string) (LineReader, error) {
	cfg := &readline.Config{
		Stdin:       readline.NewCancelableStdin(vio.Stdin()),
		Stdout:      vio.Stdout(),
		Stderr:      vio.Stderr(),
		HistoryFile: historyFile,
		FuncIsTerminal: func() bool {
			return true
		},
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}
	return rl, nil
}
