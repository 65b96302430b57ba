package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ItemLocation is a named storage place within an organization.
// Name uniqueness per org is enforced by a pre-write check in the repository,
// not by a database constraint; two concurrent creators can race.
type ItemLocation struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrgID     uuid.UUID `json:"orgId" db:"org_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// NewItemLocation constructs an ItemLocation with generated ID and current timestamp.
func NewItemLocation(orgID uuid.UUID, name string) (*ItemLocation, error) {
	if name == "" {
		return nil, fmt.Errorf("location name must not be empty")
	}
	if orgID == uuid.Nil {
		return nil, fmt.Errorf("org_id must be set")
	}
	return &ItemLocation{
		ID:        uuid.New(),
		OrgID:     orgID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}, nil
}
