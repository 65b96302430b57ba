package events

import (
	"time"

	"github.com/google/uuid"
)

// Change-feed topics. Every successful write to a collection publishes one
// message on that collection's topic; watchers re-read the full collection on
// receipt, so consumers always see "latest known state", never a delta log.
const (
	TopicItemsChanged     = "inventory.items.changed"
	TopicLocationsChanged = "inventory.locations.changed"
)

// MetadataOrgID is the message metadata key carrying the tenant scope.
// Watchers filter on it so one org's writes never wake another org's watcher.
const MetadataOrgID = "org_id"

// Change actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// CollectionChangedEvent is published after any write to the items or
// locations collection. It intentionally carries no document payload: the
// watcher re-queries the collection, which sidesteps ordering hazards between
// this client's writes and other clients' interleaved writes.
type CollectionChangedEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	OrgID      uuid.UUID `json:"org_id"`
	DocumentID uuid.UUID `json:"document_id"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}
