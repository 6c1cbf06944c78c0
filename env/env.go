// Package env defines the narrow capability through which the rest of the
// module reads and writes process environment variables.
//
// Nothing outside this package touches the OS environment directly.
// [System] is the real implementation; [Map] is an in-memory stand-in for
// tests and for callers that want an isolated environment.
package env

import (
	"os"
	"slices"
	"strings"
	"sync"
)

// Provider reads and writes environment variables.
//
// Getenv reports whether the variable is present; a present variable may
// hold the empty string.
type Provider interface {
	Getenv(name string) (value string, ok bool)
	Export(name, value string) error
	Unset(name string) error
}

// Lister is implemented by providers that can enumerate their variable
// names.
type Lister interface {
	Names() []string
}

// System is the [Provider] backed by the current process environment.
type System struct{}

// Getenv implements [Provider].
func (System) Getenv(name string) (string, bool) { return os.LookupEnv(name) }

// Export implements [Provider].
func (System) Export(name, value string) error { return os.Setenv(name, value) }

// Unset implements [Provider].
func (System) Unset(name string) error { return os.Unsetenv(name) }

// Names implements [Lister] with the sorted names in [os.Environ].
func (System) Names() []string {
	return names(os.Environ())
}

// names extracts the sorted, de-duplicated keys of a "KEY=VALUE" list.
func names(environ []string) []string {
	keys := make([]string, 0, len(environ))

	for _, entry := range environ {
		key, _, ok := strings.Cut(entry, "=")
		if ok && key != "" {
			keys = append(keys, key)
		}
	}

	slices.Sort(keys)

	return slices.Compact(keys)
}

// Map is a [Provider] holding its variables in memory.
// It is safe for concurrent use.
type Map struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMap returns a [Map] initialized from alternating name, value pairs.
// A trailing name without a value is ignored.
func NewMap(pairs ...string) *Map {
	m := &Map{vars: make(map[string]string, len(pairs)/2)}

	for i := 0; i+1 < len(pairs); i += 2 {
		m.vars[pairs[i]] = pairs[i+1]
	}

	return m
}

// Getenv implements [Provider].
func (m *Map) Getenv(name string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.vars[name]

	return v, ok
}

// Export implements [Provider].
func (m *Map) Export(name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.vars == nil {
		m.vars = make(map[string]string)
	}

	m.vars[name] = value

	return nil
}

// Unset implements [Provider].
func (m *Map) Unset(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.vars, name)

	return nil
}

// Names implements [Lister].
func (m *Map) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.vars))
	for k := range m.vars {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

//nolint:gochecknoglobals
var (
	defaultMutex    sync.RWMutex
	defaultProvider Provider
)

// Default returns the process-wide default [Provider], which is [System]
// unless replaced with [SetDefault].
func Default() Provider {
	defaultMutex.RLock()
	p := defaultProvider
	defaultMutex.RUnlock()

	if p == nil {
		return System{}
	}

	return p
}

// SetDefault replaces the process-wide default [Provider] and returns the
// previous one. A nil p restores [System].
func SetDefault(p Provider) (prev Provider) {
	defaultMutex.Lock()
	defer defaultMutex.Unlock()

	prev = defaultProvider
	if prev == nil {
		prev = System{}
	}

	defaultProvider = p

	return prev
}

// Reset restores [System] as the default [Provider].
func Reset() { SetDefault(nil) }
