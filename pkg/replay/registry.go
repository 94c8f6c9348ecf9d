package replay

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/errfix/pkg/domain"
)

// Func is a single driver member.
type Func func(ctx context.Context) error

// Registry is a Driver built from explicitly registered callables.
// Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
	// rejected holds the names registered with a nil Func.
	rejected []string
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		funcs: make(map[string]Func),
	}
}

// Register adds a member under name.
// If a member with the same name exists, it is overwritten.
// A nil fn is not registered; it is reported by Err instead.
func (r *Registry) Register(name string, fn Func) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if fn == nil {
		r.rejected = append(r.rejected, name)
		delete(r.funcs, name)
		return r
	}
	r.funcs[name] = fn
	return r
}

// Err reports members registered with a nil Func, wrapping domain.ErrInvalidDriver.
func (r *Registry) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.rejected) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.rejected))
	for _, name := range slices.Sorted(slices.Values(r.rejected)) {
		errs = append(errs, fmt.Errorf("member %q is nil", name))
	}
	return fmt.Errorf("%w: %w", domain.ErrInvalidDriver, &domain.AggregateError{Errors: errs})
}

// Action registers the member executing action.
func (r *Registry) Action(action domain.ActionID, fn Func) *Registry {
	return r.Register(action, fn)
}

// Verify registers the member verifying state, under VerifyName(state).
func (r *Registry) Verify(state domain.StateID, fn Func) *Registry {
	return r.Register(VerifyName(state), fn)
}

// Has reports whether a member is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.funcs[name]
	return ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Invoke looks up a member by name and runs it.
func (r *Registry) Invoke(ctx context.Context, name string) error {
	r.mu.RLock()
	fn, ok := r.funcs[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("member not found: %s: %w", name, domain.ErrInvalidDriver)
	}
	return fn(ctx)
}
