// Package events implements the engine's single-threaded, synchronous
// pub/sub bus. Handlers run in insertion order on Emit, in the calling
// goroutine: there is no fan-out and no backpressure, matching the
// engine's single-threaded cooperative concurrency model. The teacher's
// own event bus ran every handler in its own goroutine off a buffered
// channel; that ordering guarantee does not hold for this engine's request
// model, so it is not reproduced here.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type names the fixed event map the engine emits.
type Type string

const (
	ScanStarted   Type = "scan.started"
	ScanCompleted Type = "scan.completed"
	FileChanged   Type = "file.changed"
	ScoreUpdated  Type = "score.updated"
	FixValidated  Type = "fix.validated"
	FixUndone     Type = "fix.undone"
)

// Event is one discrete occurrence delivered to subscribers.
type Event struct {
	ID        string          `json:"id"`
	Type      Type            `json:"type"`
	Source    string          `json:"source"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// Handler processes one event. Handlers must not mutate the event payload.
type Handler func(ctx context.Context, event Event) error

// Mirror is an optional sink that receives a copy of every emitted event,
// fire-and-forget, for out-of-process observers. It must never block or
// reorder the synchronous in-process delivery Bus guarantees.
type Mirror interface {
	Mirror(ctx context.Context, event Event)
}

// Bus is a single-threaded, synchronous, typed pub/sub bus.
type Bus struct {
	handlers map[Type][]Handler
	mirror   Mirror
}

// New creates a Bus. mirror may be nil.
func New(mirror Mirror) *Bus {
	return &Bus{handlers: make(map[Type][]Handler), mirror: mirror}
}

// Subscribe registers a handler for an event type. Handlers fire in the
// order they were subscribed.
func (b *Bus) Subscribe(eventType Type, handler Handler) {
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit constructs an Event and invokes every subscribed handler for its
// type synchronously, in subscription order, before returning. The first
// handler error stops delivery to subsequent handlers and is returned to
// the caller.
func (b *Bus) Emit(ctx context.Context, eventType Type, source string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    source,
		Timestamp: time.Now().UTC(),
		Payload:   raw,
	}

	for _, h := range b.handlers[eventType] {
		if err := h(ctx, event); err != nil {
			return err
		}
	}

	if b.mirror != nil {
		b.mirror.Mirror(ctx, event)
	}
	return nil
}
