package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"runtime"

	"github.com/aretw0/errfix/internal/presentation/graph"
	"github.com/aretw0/errfix/pkg/domain"
	"github.com/aretw0/errfix/pkg/model"
	"github.com/aretw0/errfix/pkg/ports"
	"github.com/aretw0/errfix/pkg/walk"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine defines what the server needs from an errfix engine.
// *errfix.Engine satisfies it.
type Engine interface {
	Model() *model.Model
	Describe() string
	Graph(format graph.Format, w *domain.Walk) (string, error)
	WalkSeeded(ctx context.Context, start domain.StateID, stepLimit int, seed uint64) (*domain.Walk, error)
	Suite(ctx context.Context, opts walk.SuiteOptions) ([]*domain.Walk, error)
	Store() ports.WalkStore
}

// Server exposes an engine over HTTP.
type Server struct {
	Engine   Engine
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithGatherer serves the metrics of g on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine: engine,
		Logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/model", s.GetModel)
	r.Get("/model/states", s.ListStates)
	r.Get("/graph", s.GetGraph)
	r.Route("/walks", func(r chi.Router) {
		r.Post("/", s.CreateWalks)
		r.Get("/", s.ListWalks)
		r.Get("/{id}", s.GetWalk)
		r.Delete("/{id}", s.DeleteWalk)
	})
	if s.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// StateView is one entry of GET /model/states.
type StateView struct {
	ID      string   `json:"id"`
	Actions []string `json:"actions"`
	DeadEnd bool     `json:"dead_end"`
}

// Request limits of POST /walks.
const (
	MaxWalkCount = 1000
	MaxStepLimit = 10000
)

// WalkRequest is the body of POST /walks.
type WalkRequest struct {
	Start string  `json:"start"`
	Steps int     `json:"steps"`
	Seed  *uint64 `json:"seed,omitempty"`
	Count int     `json:"count,omitempty"`
}

// GetModel handles GET /model.
func (s *Server) GetModel(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(s.Engine.Describe()))
}

// ListStates handles GET /model/states.
func (s *Server) ListStates(w http.ResponseWriter, r *http.Request) {
	m := s.Engine.Model()
	states := m.States()
	views := make([]StateView, 0, len(states))
	for _, st := range states {
		actions, err := m.ActionsFor(st)
		if err != nil {
			s.fail(w, err)
			return
		}
		views = append(views, StateView{ID: st, Actions: actions, DeadEnd: len(actions) == 0})
	}
	s.writeJSON(w, http.StatusOK, views)
}

// GetGraph handles GET /graph?format=mermaid|dot|json|yaml[&walk=id].
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	format := graph.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = graph.FormatMermaid
	}

	var overlay *domain.Walk
	if id := r.URL.Query().Get("walk"); id != "" {
		store := s.Engine.Store()
		if store == nil {
			s.fail(w, domain.ErrWalkNotFound)
			return
		}
		loaded, err := store.Load(r.Context(), id)
		if err != nil {
			s.fail(w, err)
			return
		}
		overlay = loaded
	}

	out, err := s.Engine.Graph(format, overlay)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	switch format {
	case graph.FormatJSON:
		w.Header().Set("Content-Type", "application/json")
	case graph.FormatYAML:
		w.Header().Set("Content-Type", "text/yaml")
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}
	_, _ = w.Write([]byte(out))
}

// CreateWalks handles POST /walks. Without a seed a random one is chosen and recorded.
func (s *Server) CreateWalks(w http.ResponseWriter, r *http.Request) {
	var body WalkRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("CreateWalks: Invalid request body", "err", err)
		return
	}
	if body.Steps == 0 {
		body.Steps = walk.DefaultStepLimit
	}
	if body.Steps < 0 || body.Steps > MaxStepLimit {
		http.Error(w, fmt.Sprintf("steps must be between %d and %d", walk.MinStepLimit, MaxStepLimit), http.StatusBadRequest)
		return
	}
	if body.Count < 0 || body.Count > MaxWalkCount {
		http.Error(w, fmt.Sprintf("count must be between 1 and %d", MaxWalkCount), http.StatusBadRequest)
		return
	}
	seed := rand.Uint64()
	if body.Seed != nil {
		seed = *body.Seed
	}

	var (
		walks []*domain.Walk
		err   error
	)
	if body.Count > 1 {
		walks, err = s.Engine.Suite(r.Context(), walk.SuiteOptions{
			Start:       body.Start,
			StepLimit:   body.Steps,
			Count:       body.Count,
			Seed:        seed,
			Parallelism: runtime.GOMAXPROCS(0),
		})
	} else {
		var one *domain.Walk
		one, err = s.Engine.WalkSeeded(r.Context(), body.Start, body.Steps, seed)
		walks = []*domain.Walk{one}
	}
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, walks)
}

// ListWalks handles GET /walks.
func (s *Server) ListWalks(w http.ResponseWriter, r *http.Request) {
	store := s.Engine.Store()
	if store == nil {
		s.writeJSON(w, http.StatusOK, []string{})
		return
	}
	ids, err := store.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ids)
}

// GetWalk handles GET /walks/{id}.
func (s *Server) GetWalk(w http.ResponseWriter, r *http.Request) {
	store := s.Engine.Store()
	if store == nil {
		s.fail(w, domain.ErrWalkNotFound)
		return
	}
	found, err := store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, found)
}

// DeleteWalk handles DELETE /walks/{id}.
func (s *Server) DeleteWalk(w http.ResponseWriter, r *http.Request) {
	store := s.Engine.Store()
	if store == nil {
		s.fail(w, domain.ErrWalkNotFound)
		return
	}
	if err := store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrWalkNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidStartState),
		errors.Is(err, domain.ErrStepLimitTooLow),
		errors.Is(err, domain.ErrUnknownState):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrDegenerateModel):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "err", err)
	}
	http.Error(w, err.Error(), status)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("response encode failed", "err", err)
	}
}
