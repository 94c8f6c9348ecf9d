package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventStep         EventType = "step"
	EventDeadEnd      EventType = "dead_end"
	EventWalkComplete EventType = "walk_complete"
	EventInvoke       EventType = "invoke"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StepEvent is fired for every transition appended to a walk.
type StepEvent struct {
	EventBase
	Index      int        `json:"index"`
	Transition Transition `json:"transition"`
	Choices    int        `json:"choices"`
}

// DeadEndEvent is fired when a walk stops on a state without outgoing transitions.
type DeadEndEvent struct {
	EventBase
	State StateID `json:"state"`
	Steps int     `json:"steps"`
}

// WalkEvent is fired once a walk has stopped and its coverage is known.
type WalkEvent struct {
	EventBase
	Walk *Walk `json:"walk"`
}

// InvokeKind tells whether a driver call executes an action or verifies a state.
type InvokeKind string

const (
	InvokeAction InvokeKind = "action"
	InvokeVerify InvokeKind = "verify"
)

// InvokeEvent is fired after each driver call made during replay.
type InvokeEvent struct {
	EventBase
	Name    string     `json:"name"`
	Kind    InvokeKind `json:"kind"`
	IsError bool       `json:"is_error,omitempty"`
}

// WalkHooks defines callbacks for walk observability. Nil fields are skipped.
type WalkHooks struct {
	OnStep         func(context.Context, *StepEvent)
	OnDeadEnd      func(context.Context, *DeadEndEvent)
	OnWalkComplete func(context.Context, *WalkEvent)
	OnInvoke       func(context.Context, *InvokeEvent)
}

// Merge returns hooks that call h first and then other for every event.
func (h WalkHooks) Merge(other WalkHooks) WalkHooks {
	return WalkHooks{
		OnStep:         chain(h.OnStep, other.OnStep),
		OnDeadEnd:      chain(h.OnDeadEnd, other.OnDeadEnd),
		OnWalkComplete: chain(h.OnWalkComplete, other.OnWalkComplete),
		OnInvoke:       chain(h.OnInvoke, other.OnInvoke),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}

// Emit helpers keep nil checks out of the callers.

func (h WalkHooks) EmitStep(ctx context.Context, e *StepEvent) {
	if h.OnStep != nil {
		e.Type, e.Timestamp = EventStep, time.Now()
		h.OnStep(ctx, e)
	}
}

func (h WalkHooks) EmitDeadEnd(ctx context.Context, e *DeadEndEvent) {
	if h.OnDeadEnd != nil {
		e.Type, e.Timestamp = EventDeadEnd, time.Now()
		h.OnDeadEnd(ctx, e)
	}
}

func (h WalkHooks) EmitWalkComplete(ctx context.Context, e *WalkEvent) {
	if h.OnWalkComplete != nil {
		e.Type, e.Timestamp = EventWalkComplete, time.Now()
		h.OnWalkComplete(ctx, e)
	}
}

func (h WalkHooks) EmitInvoke(ctx context.Context, e *InvokeEvent) {
	if h.OnInvoke != nil {
		e.Type, e.Timestamp = EventInvoke, time.Now()
		h.OnInvoke(ctx, e)
	}
}
