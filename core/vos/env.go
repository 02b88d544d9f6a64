package vos

import (
	"strings"
	"sync"
)

// VEnv is a read-only view of a process environment.
type VEnv interface {
	// LookupEnv retrieves the value of the environment variable named by the key.
	// If the variable is present in the environment the value (which may be
	// empty) is returned and the boolean is true. Otherwise the returned value
	// will be empty and the boolean will be false.
	LookupEnv(key string) (string, bool)

	// Getenv retrieves the value of the environment variable named by the key.
	// It returns the value, which will be empty if the variable is not present.
	// To distinguish between an empty value and an unset value, use LookupEnv.
	Getenv(key string) string

	// Environ returns a copy of strings representing the environment, in the
	// form "key=value".
	Environ() []string
}

// EnvironFetcher is anything that can list an environment, os.Environ
// included through EnvironFunc.
type EnvironFetcher interface {
	Environ() []string
}

// EnvironFunc adapts a function like os.Environ to an EnvironFetcher.
type EnvironFunc func() []string

func (f EnvironFunc) Environ() []string {
	return f()
}

// NewMapEnv creates a new, empty environment.
func NewMapEnv() *MapEnv {
	return &MapEnv{}
}

// NewMapEnvFrom creates a new environment with a copy of the environment
// variables in the original environment.
func NewMapEnvFrom(src EnvironFetcher) *MapEnv {
	return NewMapEnvFromEnvList(src.Environ())
}

// NewMapEnvFromEnvList builds an environment from "key=value" entries. A
// repeated key keeps its first position and its last value, which is also
// what a child started with the list would see. Entries without "=" are kept
// verbatim in Environ but are not variables.
func NewMapEnvFromEnvList(environ []string) *MapEnv {
	out := &MapEnv{}

	for _, e := range environ {
		key, value, ok := splitEntry(e)
		if !ok {
			out.setBare(e)
			continue
		}
		out.Setenv(key, value)
	}

	return out
}

func splitEntry(entry string) (key, value string, ok bool) {
	split := strings.SplitN(entry, "=", 2)
	if len(split) != 2 {
		return entry, "", false
	}
	return split[0], split[1], true
}

// MapEnv implements an in-memory VEnv that remembers the order variables were
// first defined in.
type MapEnv struct {
	rw    sync.RWMutex
	env   map[string]string
	order []string
	// bare holds inherited entries that had no "=".
	bare map[string]bool
}

var _ VEnv = (*MapEnv)(nil)

// Setenv sets the value of the environment variable named by the key.
func (m *MapEnv) Setenv(key, value string) {
	m.rw.Lock()
	defer m.rw.Unlock()

	if m.env == nil {
		m.env = make(map[string]string)
	}
	if _, ok := m.env[key]; !ok && !m.bare[key] {
		m.order = append(m.order, key)
	}
	delete(m.bare, key)
	m.env[key] = value
}

func (m *MapEnv) setBare(entry string) {
	m.rw.Lock()
	defer m.rw.Unlock()

	if _, ok := m.env[entry]; ok || m.bare[entry] {
		return
	}
	if m.bare == nil {
		m.bare = make(map[string]bool)
	}
	m.bare[entry] = true
	m.order = append(m.order, entry)
}

// LookupEnv implements VEnv.LookupEnv.
func (m *MapEnv) LookupEnv(key string) (string, bool) {
	m.rw.RLock()
	defer m.rw.RUnlock()

	val, ok := m.env[key]
	return val, ok
}

// Getenv implements VEnv.Getenv.
func (m *MapEnv) Getenv(key string) string {
	val, _ := m.LookupEnv(key)
	return val
}

// Environ implements VEnv.Environ.
func (m *MapEnv) Environ() []string {
	m.rw.RLock()
	defer m.rw.RUnlock()

	env := make([]string, 0, len(m.order))
	for _, k := range m.order {
		if m.bare[k] {
			env = append(env, k)
			continue
		}
		env = append(env, k+"="+m.env[k])
	}

	return env
}
