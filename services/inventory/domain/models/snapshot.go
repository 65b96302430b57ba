package models

import (
	"time"

	"github.com/google/uuid"
)

// FieldChange records the before and after value of a single item field.
type FieldChange struct {
	From any `json:"from"`
	To   any `json:"to"`
}

// ItemSnapshot is an immutable record of one item edit: the field-level diff,
// a generated prose description, and editor provenance. Written exactly once
// per successful edit; never updated or deleted.
type ItemSnapshot struct {
	ID          uuid.UUID              `json:"id" db:"id"`
	OrgID       uuid.UUID              `json:"orgId" db:"org_id"`
	ItemID      uuid.UUID              `json:"itemId" db:"item_id"`
	Changes     map[string]FieldChange `json:"changes" db:"changes"`
	Description string                 `json:"description" db:"description"`
	EditorName  string                 `json:"editorName" db:"editor_name"`
	EditorEmail string                 `json:"editorEmail" db:"editor_email"`
	CreatedAt   time.Time              `json:"createdAt" db:"created_at"`
}
