package aggregate

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/watch"
	"github.com/ghuser/stockroom/services/inventory/domain/repositories"
)

// Registry owns one live Aggregator per organization. It is the session
// object the application shell holds: aggregator lifecycles are bound to the
// registry's own context, not to any request, so a dashboard request never
// tears down the subscription it reads from.
type Registry struct {
	bus      watch.Subscriber
	itemRepo repositories.ItemRepository
	locRepo  repositories.LocationRepository
	log      logger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	aggs map[uuid.UUID]*Aggregator
}

// NewRegistry returns a Registry. Call Close on shutdown to cancel all
// aggregator subscriptions.
func NewRegistry(
	bus watch.Subscriber,
	itemRepo repositories.ItemRepository,
	locRepo repositories.LocationRepository,
	log logger.Logger,
) *Registry {
	ctx, cancel := context.WithCancel(context.Background())
	return &Registry{
		bus:      bus,
		itemRepo: itemRepo,
		locRepo:  locRepo,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
		aggs:     make(map[uuid.UUID]*Aggregator),
	}
}

// ForOrg returns the organization's live aggregator, binding one on first
// use. The per-org map guarantees at most one live subscription per
// collection per organization.
func (r *Registry) ForOrg(orgID uuid.UUID) (*Aggregator, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if agg, ok := r.aggs[orgID]; ok {
		return agg, nil
	}

	agg := New(r.bus, r.itemRepo, r.locRepo, r.log)
	if err := agg.Bind(r.ctx, orgID); err != nil {
		return nil, err
	}
	r.aggs[orgID] = agg
	return agg, nil
}

// Close unbinds every aggregator and cancels their subscriptions.
func (r *Registry) Close() {
	r.mu.Lock()
	aggs := r.aggs
	r.aggs = make(map[uuid.UUID]*Aggregator)
	r.mu.Unlock()

	for _, agg := range aggs {
		agg.Unbind()
	}
	r.cancel()
}
