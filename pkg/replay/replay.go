package replay

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/errfix/pkg/domain"
)

// Call is one driver invocation of a replay plan.
type Call struct {
	Name string            `json:"name"`
	Kind domain.InvokeKind `json:"kind"`
}

// Plan lists, in order, the calls replaying w makes: the start state
// verification, then an action and a verification per step.
func Plan(w *domain.Walk) []Call {
	calls := make([]Call, 0, 1+2*len(w.Steps))
	calls = append(calls, Call{Name: VerifyName(w.StartState), Kind: domain.InvokeVerify})
	for _, t := range w.Steps {
		calls = append(calls,
			Call{Name: t.Action, Kind: domain.InvokeAction},
			Call{Name: VerifyName(t.End), Kind: domain.InvokeVerify},
		)
	}
	return calls
}

// Replayer replays walks against drivers.
type Replayer struct {
	logger *slog.Logger
	hooks  domain.WalkHooks
}

// Option defines a functional option for configuring the Replayer.
type Option func(*Replayer)

// WithLogger sets the structured logger for the replayer.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Replayer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithHooks registers observability hooks. Only OnInvoke is used.
func WithHooks(hooks domain.WalkHooks) Option {
	return func(r *Replayer) {
		r.hooks = r.hooks.Merge(hooks)
	}
}

// NewReplayer creates a Replayer.
func NewReplayer(opts ...Option) *Replayer {
	r := &Replayer{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Replay replays w against a default Replayer.
func Replay(ctx context.Context, w *domain.Walk, driver any) error {
	return NewReplayer().Replay(ctx, w, driver)
}

// Check resolves driver and verifies it offers every member w needs.
// Drivers that do not implement Capabilities are accepted as they are.
func Check(w *domain.Walk, driver any) (Driver, error) {
	d, err := AsDriver(driver)
	if err != nil {
		return nil, err
	}
	caps, ok := d.(Capabilities)
	if !ok {
		return d, nil
	}

	var missing []error
	seen := make(map[string]bool)
	for _, c := range Plan(w) {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		if !caps.Has(c.Name) {
			missing = append(missing, fmt.Errorf("missing %s member %q", c.Kind, c.Name))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidDriver, &domain.AggregateError{Errors: missing})
	}
	return d, nil
}

// Replay invokes the replay plan of w on driver.
//
// The driver is validated before the first call. The first error returned by a
// driver member stops the replay and is returned as is.
func (r *Replayer) Replay(ctx context.Context, w *domain.Walk, driver any) error {
	d, err := Check(w, driver)
	if err != nil {
		return err
	}

	for i, c := range Plan(w) {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.logger.Debug("invoke", "index", i, "name", c.Name, "kind", c.Kind)
		err := d.Invoke(ctx, c.Name)
		r.hooks.EmitInvoke(ctx, &domain.InvokeEvent{Name: c.Name, Kind: c.Kind, IsError: err != nil})
		if err != nil {
			r.logger.Debug("driver failed", "name", c.Name, "kind", c.Kind, "err", err)
			return err
		}
	}
	r.logger.Info("walk replayed", "start", w.StartState, "steps", w.Len())
	return nil
}
