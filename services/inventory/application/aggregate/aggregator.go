// Package aggregate maintains the live in-memory view of an organization's
// inventory. An Aggregator mirrors the items and locations collections through
// change-feed watchers and exposes the derived dashboard views: folder
// groupings, per-category totals, low-stock subsets, grand totals, recent
// edits, and the location name index.
package aggregate

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/pkg/logger"
	"github.com/ghuser/stockroom/pkg/watch"
	invevents "github.com/ghuser/stockroom/services/inventory/domain/events"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
	"github.com/ghuser/stockroom/services/inventory/domain/repositories"
	"github.com/ghuser/stockroom/services/inventory/domain/stats"
)

// recentEditLimit caps the recency-sorted edit list in the snapshot.
const recentEditLimit = 20

// Snapshot is the read-only derived view handed to consumers. All fields are
// rebuilt together on every change push; treat the maps and slices as
// immutable.
type Snapshot struct {
	Folders               []string                        `json:"folders"`
	ItemsByFolder         map[string][]*models.Item       `json:"itemsByFolder"`
	CategoryStats         map[string]stats.CategoryTotals `json:"categoryStats"`
	LowStockItemsByFolder map[string][]*models.Item       `json:"lowStockItemsByFolder"`
	Totals                stats.Totals                    `json:"totals"`
	RecentlyEdited        []*models.Item                  `json:"recentlyEdited"`
	Locations             []*models.ItemLocation          `json:"itemLocations"`
	LocationNames         []string                        `json:"locationNames"`
}

// Aggregator owns the raw item/location mirror for one organization and its
// derived views. Lifecycle: starts unbound, Bind subscribes it to an org, and
// Unbind or a re-Bind tears the subscriptions down again; a re-Bind always
// cancels the previous watchers first. At most one live subscription per
// collection exists at any time.
type Aggregator struct {
	items     *watch.Watcher[*models.Item]
	locations *watch.Watcher[*models.ItemLocation]
	itemRepo  repositories.ItemRepository
	locRepo   repositories.LocationRepository
	log       logger.Logger

	mu       sync.RWMutex
	orgID    uuid.UUID
	cancels  []watch.CancelFunc
	rawItems []*models.Item
	rawLocs  []*models.ItemLocation
	snap     Snapshot
}

// New returns an unbound Aggregator that will subscribe through bus.
func New(
	bus watch.Subscriber,
	itemRepo repositories.ItemRepository,
	locRepo repositories.LocationRepository,
	log logger.Logger,
) *Aggregator {
	return &Aggregator{
		items:     watch.New[*models.Item](bus, invevents.MetadataOrgID, log),
		locations: watch.New[*models.ItemLocation](bus, invevents.MetadataOrgID, log),
		itemRepo:  itemRepo,
		locRepo:   locRepo,
		log:       log,
	}
}

// Bind subscribes the aggregator to orgID's item and location collections.
// Any previous binding is torn down first, so a stale organization's watcher
// can never push into the new state. Binding to uuid.Nil leaves the
// aggregator unbound without error, mirroring the watcher's policy for a
// missing organization context.
func (a *Aggregator) Bind(ctx context.Context, orgID uuid.UUID) error {
	a.Unbind()
	if orgID == uuid.Nil {
		return nil
	}

	a.mu.Lock()
	a.orgID = orgID
	a.mu.Unlock()

	cancelItems, err := a.items.Watch(ctx, orgID, invevents.TopicItemsChanged,
		func(ctx context.Context) ([]*models.Item, error) {
			return a.itemRepo.ListByOrgID(ctx, orgID)
		},
		a.onItems,
	)
	if err != nil {
		return fmt.Errorf("aggregate: watch items: %w", err)
	}

	cancelLocs, err := a.locations.Watch(ctx, orgID, invevents.TopicLocationsChanged,
		func(ctx context.Context) ([]*models.ItemLocation, error) {
			return a.locRepo.ListByOrgID(ctx, orgID)
		},
		a.onLocations,
	)
	if err != nil {
		cancelItems()
		return fmt.Errorf("aggregate: watch locations: %w", err)
	}

	a.mu.Lock()
	a.cancels = []watch.CancelFunc{cancelItems, cancelLocs}
	a.mu.Unlock()

	a.log.InfoContext(ctx, "aggregate: bound", "org_id", orgID)
	return nil
}

// Unbind cancels all watchers and clears the mirrored state. Safe to call
// when already unbound.
func (a *Aggregator) Unbind() {
	a.mu.Lock()
	cancels := a.cancels
	a.cancels = nil
	a.orgID = uuid.Nil
	a.rawItems = nil
	a.rawLocs = nil
	a.snap = Snapshot{}
	a.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

// Bound reports whether the aggregator currently holds an organization context.
func (a *Aggregator) Bound() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.orgID != uuid.Nil
}

// OrgID returns the bound organization, or uuid.Nil when unbound.
func (a *Aggregator) OrgID() uuid.UUID {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.orgID
}

// Snapshot returns the current derived view. The contained maps and slices
// were built in a single recomputation pass, so they are mutually consistent:
// no field reflects an older raw state than another.
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snap
}

func (a *Aggregator) onItems(items []*models.Item) {
	a.mu.Lock()
	a.rawItems = items
	a.recompute()
	a.mu.Unlock()
}

func (a *Aggregator) onLocations(locs []*models.ItemLocation) {
	a.mu.Lock()
	a.rawLocs = locs
	a.recompute()
	a.mu.Unlock()
}

// recompute rebuilds every derived view from the raw mirror in one pass.
// Callers hold a.mu. All views are pure functions of the raw lists, so the
// snapshot is always equal to a fresh recomputation; no running counters.
func (a *Aggregator) recompute() {
	folders, itemsByFolder := stats.GroupByFolder(a.rawItems)
	a.snap = Snapshot{
		Folders:               folders,
		ItemsByFolder:         itemsByFolder,
		CategoryStats:         stats.CategoryStats(itemsByFolder),
		LowStockItemsByFolder: stats.LowStockByFolder(itemsByFolder),
		Totals:                stats.GrandTotals(a.rawItems),
		RecentlyEdited:        stats.RecentlyEdited(a.rawItems, recentEditLimit),
		Locations:             a.rawLocs,
		LocationNames:         stats.LocationNames(a.rawLocs),
	}
}
