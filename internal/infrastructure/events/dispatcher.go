package events

import (
	"context"
	"fmt"
	"sync"

	"shipzone-backend/internal/domain"
	"shipzone-backend/pkg/logger"
)

// Subscriber receives every published event. Errors are logged by the
// dispatcher and never reach the publisher.
type Subscriber interface {
	Name() string
	Handle(ctx context.Context, event domain.MethodEvent) error
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc struct {
	ID string
	Fn func(ctx context.Context, event domain.MethodEvent) error
}

func (s SubscriberFunc) Name() string { return s.ID }

func (s SubscriberFunc) Handle(ctx context.Context, event domain.MethodEvent) error {
	return s.Fn(ctx, event)
}

// Dispatcher fans events out to its subscribers synchronously, in
// registration order.
type Dispatcher struct {
	mu   sync.RWMutex
	subs []Subscriber
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

func (d *Dispatcher) Subscribe(sub Subscriber) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs = append(d.subs, sub)
}

func (d *Dispatcher) Publish(ctx context.Context, event domain.MethodEvent) {
	d.mu.RLock()
	subs := make([]Subscriber, len(d.subs))
	copy(subs, d.subs)
	d.mu.RUnlock()

	for _, sub := range subs {
		if err := d.deliver(ctx, sub, event); err != nil {
			logger.WithContext(ctx).Warn().
				Err(err).
				Str("subscriber", sub.Name()).
				Str("event", string(event.Type)).
				Str("event_id", event.ID).
				Msg("event subscriber failed")
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, sub Subscriber, event domain.MethodEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return sub.Handle(ctx, event)
}
