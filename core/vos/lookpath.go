package vos

import (
	"os/exec"
	"path/filepath"
	"strings"
)

// EnvPath names the search path variable.
const EnvPath = "PATH"

// ErrNotFound is the error resulting if a path search failed to find an executable file.
var ErrNotFound = exec.ErrNotFound

// LookPath resolves the command name to an executable.
//
// If name itself is an executable file it is returned unchanged, this covers
// absolute paths, paths like ./prog and bare names present in the working
// directory. Otherwise each directory in the PATH of env is tried in order and
// the first "<dir>/<name>" that is executable wins. An empty PATH element
// means the current directory. If nothing matches ErrNotFound is returned.
//
// LookPath never caches: a command added to a directory or a directory added
// to PATH is found on the next call.
func LookPath(fsys VFS, env VEnv, name string) (string, error) {
	if name == "" {
		return "", ErrNotFound
	}

	if err := findExecutable(fsys, name); err == nil {
		return name, nil
	}

	for _, dir := range SearchPath(env) {
		candidate := joinCandidate(dir, name)
		if err := findExecutable(fsys, candidate); err == nil {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}

// SearchPath splits the PATH of env into directories, in declaration order.
// An unset or empty PATH yields no directories.
func SearchPath(env VEnv) []string {
	dirs := filepath.SplitList(env.Getenv(EnvPath))
	for i, dir := range dirs {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dirs[i] = "."
		}
	}
	return dirs
}

func joinCandidate(dir, name string) string {
	sep := string(filepath.Separator)
	return strings.TrimSuffix(dir, sep) + sep + name
}
