package event

import (
	"log/slog"
	"sync"

	"github.com/milk9111/platformer/logger"
)

type HandlerFunc func(raw any)

// Bus delivers published events to subscribers on their own goroutines.
// Publish never blocks on a handler.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]HandlerFunc
	inflight sync.WaitGroup
	log      *slog.Logger
}

func NewBus(log *slog.Logger) *Bus {
	if log == nil {
		log = logger.L()
	}
	return &Bus{
		handlers: make(map[string][]HandlerFunc),
		log:      log.With("component", "event_bus"),
	}
}

func (b *Bus) Subscribe(eventName string, handler HandlerFunc) {
	if handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventName] = append(b.handlers[eventName], handler)
}

// Publish hands evt to each handler of eventName on a new goroutine and
// returns. Handlers may run in any order, both across handlers of one topic and
// across consecutive publishes, so consumers that need sequence should order
// events by their Tick field. Call Wait to block until delivery finishes.
func (b *Bus) Publish(eventName string, evt any) {
	b.mu.RLock()
	handlers := make([]HandlerFunc, len(b.handlers[eventName]))
	copy(handlers, b.handlers[eventName])
	b.mu.RUnlock()

	for _, handler := range handlers {
		b.inflight.Add(1)
		go func(h HandlerFunc) {
			defer b.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					b.log.Error("event handler panicked", "event", eventName, "panic", r)
				}
			}()
			h(evt)
		}(handler)
	}
}

// Wait blocks until every handler started so far has returned.
func (b *Bus) Wait() {
	b.inflight.Wait()
}
