// Package publisher fans audit events out to a store, synchronously by
// default or through a buffered channel when async mode is enabled.
package publisher

import (
	"context"
	"sync"

	id "shopez/pkg/domain"
	audit "shopez/pkg/platform/audit"
)

// Store is the sink publishers write to.
type Store interface {
	Append(ctx context.Context, event audit.Event) error
	ListBySession(ctx context.Context, sid id.SessionID) ([]audit.Event, error)
	ListRecent(ctx context.Context, limit int) ([]audit.Event, error)
}

// Publisher emits audit events. Emit never blocks domain logic for long: in
// async mode a full buffer drops the event rather than stalling a command.
type Publisher struct {
	store Store

	async  bool
	events chan audit.Event
	done   chan struct{}
	wg     sync.WaitGroup

	closeOnce sync.Once
}

type Option func(*Publisher)

// WithAsyncBuffer enables asynchronous publishing with the given buffer size.
func WithAsyncBuffer(size int) Option {
	return func(p *Publisher) {
		p.async = true
		p.events = make(chan audit.Event, size)
	}
}

func NewPublisher(store Store, opts ...Option) *Publisher {
	p := &Publisher{
		store: store,
		done:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.async {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

// Emit records an event. In sync mode errors from the store are returned; in
// async mode Emit only fails if the publisher is closed.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if !p.async {
		return p.store.Append(ctx, event)
	}
	select {
	case <-p.done:
		return nil
	case p.events <- event:
		return nil
	default:
		// Buffer full: audit must not stall user commands.
		return nil
	}
}

// List returns the events recorded for one session.
func (p *Publisher) List(ctx context.Context, sid id.SessionID) ([]audit.Event, error) {
	return p.store.ListBySession(ctx, sid)
}

// ListRecent returns the most recent limit events across sessions.
func (p *Publisher) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	return p.store.ListRecent(ctx, limit)
}

// Close stops the async drain goroutine and flushes buffered events.
func (p *Publisher) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
		if p.async {
			p.wg.Wait()
		}
	})
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			// Flush whatever is buffered, then stop.
			for {
				select {
				case event := <-p.events:
					_ = p.store.Append(context.Background(), event)
				default:
					return
				}
			}
		case event := <-p.events:
			_ = p.store.Append(context.Background(), event)
		}
	}
}
