// Package dispatcher routes onboarding domain events to registered
// subscribers. Dispatch is synchronous by default, matching the engine's
// single-threaded mutation model; DispatchAsync exists for listeners that
// must not delay a user action.
package dispatcher

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Anbarasu1710/projectflow-sub000/internal/domain/event"
)

// Handler processes a dispatched event
type Handler func(ctx context.Context, evt *event.Event) error

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Dispatcher routes events to registered handlers
type Dispatcher interface {
	// Subscribe registers a named handler for an event type
	Subscribe(eventType event.Type, name string, handler Handler)

	// Dispatch sends the event to all handlers in registration order,
	// returning the first error encountered
	Dispatch(ctx context.Context, evt *event.Event) error

	// DispatchAsync sends the event to handlers without waiting
	DispatchAsync(ctx context.Context, evt *event.Event)

	// Close shuts the dispatcher down and waits for async handlers
	Close() error
}

type registration struct {
	name    string
	handler Handler
}

type eventDispatcher struct {
	mu       sync.RWMutex
	handlers map[event.Type][]registration
	logger   Logger

	wg     sync.WaitGroup
	closed atomic.Bool
}

// New creates a dispatcher
func New(logger Logger) Dispatcher {
	return &eventDispatcher{
		handlers: make(map[event.Type][]registration),
		logger:   logger,
	}
}

func (d *eventDispatcher) Subscribe(eventType event.Type, name string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], registration{name: name, handler: handler})
}

func (d *eventDispatcher) Dispatch(ctx context.Context, evt *event.Event) error {
	if d.closed.Load() {
		return fmt.Errorf("dispatcher closed: dropping event %s", evt.Type)
	}

	d.mu.RLock()
	regs := append([]registration(nil), d.handlers[evt.Type]...)
	d.mu.RUnlock()

	for _, reg := range regs {
		if err := reg.handler(ctx, evt); err != nil {
			d.logger.Error("Event handler failed",
				"handler", reg.name,
				"event_type", evt.Type.String(),
				"session_id", evt.SessionID,
				"error", err,
			)
			return fmt.Errorf("handler %s: %w", reg.name, err)
		}
	}
	return nil
}

func (d *eventDispatcher) DispatchAsync(ctx context.Context, evt *event.Event) {
	if d.closed.Load() {
		return
	}

	d.mu.RLock()
	regs := append([]registration(nil), d.handlers[evt.Type]...)
	d.mu.RUnlock()

	for _, reg := range regs {
		d.wg.Add(1)
		go func(reg registration) {
			defer d.wg.Done()
			if err := reg.handler(ctx, evt); err != nil {
				d.logger.Error("Async event handler failed",
					"handler", reg.name,
					"event_type", evt.Type.String(),
					"error", err,
				)
			}
		}(reg)
	}
}

func (d *eventDispatcher) Close() error {
	d.closed.Store(true)
	d.wg.Wait()
	return nil
}
