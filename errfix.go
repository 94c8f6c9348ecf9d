package errfix

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aretw0/errfix/internal/adapters/table"
	"github.com/aretw0/errfix/internal/presentation/graph"
	"github.com/aretw0/errfix/pkg/domain"
	"github.com/aretw0/errfix/pkg/model"
	"github.com/aretw0/errfix/pkg/ports"
	"github.com/aretw0/errfix/pkg/replay"
	"github.com/aretw0/errfix/pkg/walk"
)

// Version is the errfix release.
const Version = "0.3.0"

// GraphFormat selects the output of Engine.Graph.
type GraphFormat = graph.Format

const (
	GraphMermaid GraphFormat = graph.FormatMermaid
	GraphDOT     GraphFormat = graph.FormatDOT
	GraphJSON    GraphFormat = graph.FormatJSON
	GraphYAML    GraphFormat = graph.FormatYAML
)

// Engine is the high-level entry point of the library.
// It owns one model and generates, stores and replays walks over it.
type Engine struct {
	model     *model.Model
	generator *walk.Generator
	replayer  *replay.Replayer
	store     ports.WalkStore
	hooks     domain.WalkHooks
	logger    *slog.Logger
	Name      string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks for walk generation and replay.
func WithHooks(hooks domain.WalkHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithStore saves every generated walk in store.
func WithStore(store ports.WalkStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithName labels the engine; the label is added to every log line.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// New builds a model from records and wraps it in an Engine.
func New(records []domain.Transition, opts ...Option) (*Engine, error) {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if eng.Name != "" {
		eng.logger = eng.logger.With("model", eng.Name)
	}

	m, err := model.NewBuilder(model.WithLogger(eng.logger)).Build(records)
	if err != nil {
		return nil, err
	}
	eng.model = m
	eng.generator = walk.New(walk.WithLogger(eng.logger), walk.WithHooks(eng.hooks))
	eng.replayer = replay.NewReplayer(replay.WithLogger(eng.logger), replay.WithHooks(eng.hooks))
	return eng, nil
}

// Load reads a state table file (CSV, YAML or JSON) and builds an Engine from it.
// Unless WithName is given, the engine is named after the file.
func Load(path string, opts ...Option) (*Engine, error) {
	records, err := table.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return New(records, append([]Option{WithName(name)}, opts...)...)
}

// Model returns the engine's state model.
func (e *Engine) Model() *model.Model {
	return e.model
}

// Store returns the walk store, or nil if none was configured.
func (e *Engine) Store() ports.WalkStore {
	return e.store
}

// Describe lists every state with its actions.
func (e *Engine) Describe() string {
	return e.model.Describe()
}

// Walk generates one walk from start and saves it if a store is configured.
func (e *Engine) Walk(ctx context.Context, start domain.StateID, stepLimit int, src walk.RandomSource) (*domain.Walk, error) {
	w, err := e.generator.Generate(ctx, e.model, start, stepLimit, src)
	if err != nil {
		return nil, err
	}
	if err := e.save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// WalkSeeded generates a reproducible walk from seed and saves it if a store is configured.
func (e *Engine) WalkSeeded(ctx context.Context, start domain.StateID, stepLimit int, seed uint64) (*domain.Walk, error) {
	w, err := e.generator.GenerateSeeded(ctx, e.model, start, stepLimit, seed)
	if err != nil {
		return nil, err
	}
	if err := e.save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// Suite generates several seeded walks and saves them if a store is configured.
func (e *Engine) Suite(ctx context.Context, opts walk.SuiteOptions) ([]*domain.Walk, error) {
	walks, err := e.generator.Suite(ctx, e.model, opts)
	if err != nil {
		return nil, err
	}
	for _, w := range walks {
		if err := e.save(ctx, w); err != nil {
			return nil, err
		}
	}
	return walks, nil
}

func (e *Engine) save(ctx context.Context, w *domain.Walk) error {
	if e.store == nil {
		return nil
	}
	id, err := e.store.Save(ctx, w)
	if err != nil {
		return fmt.Errorf("failed to save walk: %w", err)
	}
	e.logger.Debug("walk saved", "id", id)
	return nil
}

// Replay drives driver along w. See package replay for the naming convention.
func (e *Engine) Replay(ctx context.Context, w *domain.Walk, driver any) error {
	return e.replayer.Replay(ctx, w, driver)
}

// ReplayStored loads the walk with the given ID from the store and replays it.
func (e *Engine) ReplayStored(ctx context.Context, id string, driver any) error {
	if e.store == nil {
		return fmt.Errorf("no walk store configured: %w", domain.ErrWalkNotFound)
	}
	w, err := e.store.Load(ctx, id)
	if err != nil {
		return err
	}
	return e.replayer.Replay(ctx, w, driver)
}

// Graph exports the model. If w is not nil the states it visited are highlighted.
func (e *Engine) Graph(format GraphFormat, w *domain.Walk) (string, error) {
	var overlay *graph.Overlay
	if w != nil {
		overlay = graph.WalkOverlay(w)
	}
	return graph.Render(e.model, format, overlay)
}

// Report summarises the structure of the model as seen from a start state.
type Report struct {
	Start       domain.StateID   `json:"start"`
	States      int              `json:"states"`
	Transitions int              `json:"transitions"`
	DeadEnds    []domain.StateID `json:"dead_ends"`
	Unreachable []domain.StateID `json:"unreachable"`
}

// Validate reports the dead ends of the model and the states that no walk from start can reach.
func (e *Engine) Validate(start domain.StateID) (*Report, error) {
	reachable, err := e.model.Reachable(start)
	if err != nil {
		return nil, fmt.Errorf("start state %q: %w", start, domain.ErrInvalidStartState)
	}
	seen := make(map[domain.StateID]bool, len(reachable))
	for _, s := range reachable {
		seen[s] = true
	}

	r := &Report{
		Start:       start,
		States:      e.model.Len(),
		Transitions: len(e.model.LiveTransitions()),
		DeadEnds:    e.model.DeadEnds(),
	}
	for _, s := range e.model.States() {
		if !seen[s] {
			r.Unreachable = append(r.Unreachable, s)
		}
	}
	return r, nil
}
