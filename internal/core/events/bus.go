package events

import (
	"sync"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/kanso-quest/internal/core/domain"
)

type Handler func(domain.Event)

// Bus dispatches events synchronously to the handlers subscribed to their type.
// Handlers run on the publishing goroutine in subscription order.
type Bus struct {
	mu       sync.RWMutex
	handlers map[domain.EventType][]Handler
	all      []Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[domain.EventType][]Handler)}
}

func (b *Bus) Subscribe(t domain.EventType, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

func (b *Bus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, h)
}

func (b *Bus) Publish(e domain.Event) {
	b.mu.RLock()
	typed := b.handlers[e.Type()]
	all := b.all
	b.mu.RUnlock()

	for _, h := range typed {
		h(e)
	}
	for _, h := range all {
		h(e)
	}
}

// NewLogSubscriber returns a handler that writes every event as a structured log line.
func NewLogSubscriber(logger *zap.Logger) Handler {
	return func(e domain.Event) {
		logger.Info("game event",
			zap.String("type", string(e.Type())),
			zap.String("player_id", e.PlayerID()),
			zap.Any("payload", e),
		)
	}
}

// Recorder keeps every published event in order.
type Recorder struct {
	mu     sync.Mutex
	events []domain.Event
}

func (r *Recorder) Publish(e domain.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *Recorder) Events() []domain.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Event(nil), r.events...)
}

func (r *Recorder) Types() []domain.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type())
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
