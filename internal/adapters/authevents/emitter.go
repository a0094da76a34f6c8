package authevents

import (
	"context"
	"sync"

	"github.com/renato0307/maint/internal/domain"
	"github.com/renato0307/maint/internal/logging"
	"github.com/renato0307/maint/internal/ports"
)

// Emitter fans auth state changes out to subscribers. Handlers run on the
// emitting goroutine, in subscription order.
type Emitter struct {
	handlers map[uint64]ports.AuthStateHandler
	mu       sync.Mutex
	nextID   uint64
	order    []uint64
}

// NewEmitter creates an Emitter with no subscribers
func NewEmitter() *Emitter {
	return &Emitter{handlers: make(map[uint64]ports.AuthStateHandler)}
}

// Subscribe registers handler and returns a function removing it. The returned
// function is safe to call more than once.
func (e *Emitter) Subscribe(handler ports.AuthStateHandler) func() {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.handlers[id] = handler
	e.order = append(e.order, id)
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { e.remove(id) })
	}
}

func (e *Emitter) remove(id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.handlers, id)
	for i, existing := range e.order {
		if existing == id {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

// Emit delivers event to every current subscriber. Subscribers added or removed
// while Emit runs do not affect this delivery.
func (e *Emitter) Emit(ctx context.Context, event domain.AuthEvent, session *domain.Session) {
	handlers := e.snapshot()
	logging.Logger.Debug("Emitting auth event", "event", event, "subscribers", len(handlers), "has_session", session != nil)

	for _, handler := range handlers {
		handler(ctx, event, session)
	}
}

// Len returns the number of subscribers
func (e *Emitter) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.order)
}

func (e *Emitter) snapshot() []ports.AuthStateHandler {
	e.mu.Lock()
	defer e.mu.Unlock()

	handlers := make([]ports.AuthStateHandler, 0, len(e.order))
	for _, id := range e.order {
		handlers = append(handlers, e.handlers[id])
	}
	return handlers
}
