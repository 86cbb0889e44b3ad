package ai

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var ErrUnknownProvider = errors.New("unknown ai provider")

// ProviderFactory builds the reply provider a new session will use.
type ProviderFactory func(ctx context.Context) (Provider, error)

// Registry maps AI_PROVIDER names to factories. Names are matched
// case-insensitively.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]ProviderFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]ProviderFactory)}
}

// NewDefaultRegistry has the "mock" keyword provider registered.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("mock", func(context.Context) (Provider, error) {
		return NewKeywordProvider(), nil
	})
	return r
}

// Register adds or replaces a factory. It panics on an empty name or a
// nil factory.
func (r *Registry) Register(name string, f ProviderFactory) {
	name = normalizeName(name)
	if name == "" || f == nil {
		panic("ai: Register needs a name and a factory")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

func (r *Registry) Get(ctx context.Context, name string) (Provider, error) {
	name = normalizeName(name)
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %s)", ErrUnknownProvider, name, strings.Join(r.Names(), ", "))
	}
	p, err := f(ctx)
	if err != nil {
		return nil, fmt.Errorf("build provider %s: %w", name, err)
	}
	return p, nil
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for n := range r.factories {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
