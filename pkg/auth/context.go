package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const orgIDKey contextKey = "org_id"

// ErrOrgIDNotFound is returned when no OrgID exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrOrgIDNotFound = errors.New("org_id not found in context")

// OrgIDFromCtx extracts the authenticated organization ID from the request context.
// Returns uuid.Nil and ErrOrgIDNotFound if no OrgID is set (unauthenticated request).
func OrgIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	orgID, ok := ctx.Value(orgIDKey).(uuid.UUID)
	if !ok || orgID == uuid.Nil {
		return uuid.Nil, ErrOrgIDNotFound
	}
	return orgID, nil
}

// WithOrgID returns a new context with the given OrgID attached.
// Used by authentication middleware after validating the session.
func WithOrgID(ctx context.Context, orgID uuid.UUID) context.Context {
	return context.WithValue(ctx, orgIDKey, orgID)
}

// User is the signed-in editor identity carried alongside the org scope.
// Recorded as provenance on item edit snapshots.
type User struct {
	Name  string
	Email string
}

const userKey contextKey = "user"

// UserFromCtx extracts the signed-in user from the request context.
// Returns a zero User when none is set; edit provenance is then left blank.
func UserFromCtx(ctx context.Context) User {
	u, _ := ctx.Value(userKey).(User)
	return u
}

// WithUser returns a new context with the given user attached.
// Used by authentication middleware after validating the session.
func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userKey, u)
}
