package shell

import (
	"fmt"
	"sort"
)

// AllBuiltins holds the commands the shell handles itself. They are checked
// before any path resolution.
var AllBuiltins = make(map[string]ShellBuiltin)

type ShellBuiltin interface {
	Main(s *Shell, args []string) int
}

type ShellBuiltinFunc func(s *Shell, args []string) int

func (f ShellBuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// BuiltinNames lists the registered built-ins, sorted.
func BuiltinNames() []string {
	var names []string
	for name := range AllBuiltins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Exit quits the shell. Arguments are ignored and the status is always 0.
func Exit(s *Shell, args []string) int {
	s.quit = true
	return 0
}

// Env prints the shell's environment one KEY=VALUE per line in the order it
// was inherited.
func Env(s *Shell, args []string) int {
	w := s.IO.Stdout()
	for _, entry := range s.Env.Environ() {
		if _, err := fmt.Fprintln(w, entry); err != nil {
			return 1
		}
	}
	return 0
}

func init() {
	AllBuiltins["exit"] = ShellBuiltinFunc(Exit)
	AllBuiltins["env"] = ShellBuiltinFunc(Env)
}
