package policy

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	yaml "gopkg.in/yaml.v3"
)

// ConfigError indicates the caller handed the engine an unusable policy:
// unreadable file, invalid YAML, or a pattern that does not compile. It is
// the only failure mode the validation core raises.
type ConfigError struct {
	Path   string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return "policy: " + e.Reason
	}
	return fmt.Sprintf("policy %s: %s", e.Path, e.Reason)
}

// Loader reads and caches compiled policies by resolved path. Policies are
// read-only for a process lifetime, so a hit never re-reads the file. The
// cache is an injected object rather than package state so tests can use
// isolated instances.
type Loader struct {
	mu    sync.RWMutex
	cache map[string]*Compiled
}

func NewLoader() *Loader {
	return &Loader{cache: map[string]*Compiled{}}
}

// Load returns the compiled policy at path, from cache when available.
func (l *Loader) Load(path string) (*Compiled, error) {
	resolved, err := filepath.Abs(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Reason: err.Error()}
	}
	l.mu.RLock()
	cached, ok := l.cache[resolved]
	l.mu.RUnlock()
	if ok {
		return cached, nil
	}

	b, err := os.ReadFile(resolved)
	if err != nil {
		return nil, &ConfigError{Path: path, Reason: err.Error()}
	}
	c, err := Parse(b)
	if err != nil {
		if ce, isCE := err.(*ConfigError); isCE {
			ce.Path = path
		}
		return nil, err
	}

	l.mu.Lock()
	l.cache[resolved] = c
	l.mu.Unlock()
	return c, nil
}

// Parse decodes and compiles a policy document held in memory.
func Parse(b []byte) (*Compiled, error) {
	var p Policy
	if err := yaml.Unmarshal(b, &p); err != nil {
		return nil, &ConfigError{Reason: "parse yaml: " + err.Error()}
	}
	return Compile(p)
}
