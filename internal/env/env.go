// Package env abstracts the process environment so configuration lookups
// can be tested without touching the real one.
package env

import (
	"os"
	"slices"
)

type Env interface {
	Get(key string) string
	Lookup(key string) (string, bool)
	Env() []string
}

type osEnv struct{}

// Get implements Env.
func (o *osEnv) Get(key string) string {
	return os.Getenv(key)
}

// Lookup implements Env.
func (o *osEnv) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}

func (o *osEnv) Env() []string {
	env := os.Environ()
	if len(env) == 0 {
		return nil
	}
	return env
}

func New() Env {
	return &osEnv{}
}

type mapEnv struct {
	m map[string]string
}

// Get implements Env.
func (m *mapEnv) Get(key string) string {
	return m.m[key]
}

// Lookup implements Env.
func (m *mapEnv) Lookup(key string) (string, bool) {
	v, ok := m.m[key]
	return v, ok
}

// Env implements Env. Entries are sorted by key.
func (m *mapEnv) Env() []string {
	if len(m.m) == 0 {
		return nil
	}
	env := make([]string, 0, len(m.m))
	for k, v := range m.m {
		env = append(env, k+"="+v)
	}
	slices.Sort(env)
	return env
}

func NewFromMap(m map[string]string) Env {
	if m == nil {
		m = make(map[string]string)
	}
	return &mapEnv{m: m}
}
