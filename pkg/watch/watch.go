// Package watch implements live collection subscriptions over the event bus.
//
// A watcher subscribes to a collection's change topic and, on every change
// observed for its organization, re-reads the full collection and hands the
// materialized list to the callback. Consumers always receive "latest known
// state", never a delta, so message ordering between writers cannot corrupt
// the consumer's view.
package watch

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/logger"
)

// Subscriber is the slice of the event bus the watcher needs: broadcast
// subscriptions, because every watcher must see every change to its
// collection. *events.EventBus satisfies it.
type Subscriber interface {
	SubscribeBroadcast(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error)
}

// CancelFunc tears down a subscription. Safe to call multiple times; after the
// first call the callback is never invoked again.
type CancelFunc func()

// Loader materializes the current full collection for the watched org.
type Loader[T any] func(ctx context.Context) ([]T, error)

// Callback receives the full collection after every observed change.
type Callback[T any] func([]T)

// Watcher opens live subscriptions for one collection type. The package knows
// nothing about who publishes the messages; callers name the metadata key
// that carries the organization id on the change feed.
type Watcher[T any] struct {
	bus      Subscriber
	orgIDKey string
	log      logger.Logger
}

// New returns a Watcher that subscribes through bus and matches messages to
// organizations via the orgIDKey metadata entry.
func New[T any](bus Subscriber, orgIDKey string, log logger.Logger) *Watcher[T] {
	return &Watcher[T]{bus: bus, orgIDKey: orgIDKey, log: log}
}

// Watch subscribes to topic scoped to orgID. The callback fires once with the
// current collection contents, then again after every change the store
// observes for that org. The returned cancel function stops all future
// callback invocations and releases the subscription.
//
// A nil orgID means there is no organization context: Watch does not subscribe
// and returns a harmless no-op cancel rather than an error.
func (w *Watcher[T]) Watch(
	ctx context.Context,
	orgID uuid.UUID,
	topic string,
	load Loader[T],
	cb Callback[T],
) (CancelFunc, error) {
	if orgID == uuid.Nil {
		w.log.WarnContext(ctx, "watch: no org context, not subscribing", "topic", topic)
		return func() {}, nil
	}

	subCtx, cancelCtx := context.WithCancel(ctx)
	g := &guard{}

	errCh, err := w.bus.SubscribeBroadcast(subCtx, topic, func(msgCtx context.Context, msg *message.Message) error {
		if msg.Metadata.Get(w.orgIDKey) != orgID.String() {
			return nil // another org's change; ack and ignore
		}
		return w.deliver(msgCtx, g, load, cb)
	})
	if err != nil {
		cancelCtx()
		return nil, fmt.Errorf("watch: subscribe to %s: %w", topic, err)
	}

	// Drain subscriber errors so the bus error channel never blocks.
	go func() {
		for err := range errCh {
			w.log.ErrorContext(subCtx, "watch: subscriber error", "topic", topic, "error", err)
		}
	}()

	// Initial snapshot: the callback sees current state immediately, before
	// any change arrives.
	if err := w.deliver(subCtx, g, load, cb); err != nil {
		w.log.ErrorContext(subCtx, "watch: initial load failed", "topic", topic, "error", err)
	}

	cancel := func() {
		g.stop()
		cancelCtx()
	}
	return cancel, nil
}

// deliver loads the full collection and invokes cb, unless the watch has been
// cancelled. Load errors are returned so the bus can retry the message.
func (w *Watcher[T]) deliver(ctx context.Context, g *guard, load Loader[T], cb Callback[T]) error {
	if g.stopped() {
		return nil
	}
	list, err := load(ctx)
	if err != nil {
		return fmt.Errorf("watch: load collection: %w", err)
	}
	// Hold the guard across the callback so cancel() observed mid-flight
	// still prevents delivery into a torn-down consumer.
	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.done {
		return nil
	}
	cb(list)
	return nil
}

// guard makes cancellation race-free: once stopped, no callback runs.
type guard struct {
	mu   sync.RWMutex
	done bool
}

func (g *guard) stop() {
	g.mu.Lock()
	g.done = true
	g.mu.Unlock()
}

func (g *guard) stopped() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.done
}
