package domain

import "errors"

// Sentinel errors for the inventory domain. Use errors.Is() to check these.
var (
	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrInvalidItem indicates the item violates domain constraints.
	ErrInvalidItem = errors.New("invalid item")

	// ErrInvalidLocation indicates the location violates domain constraints.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrLocationNotFound indicates no location with the given name exists.
	ErrLocationNotFound = errors.New("location not found")

	// ErrLocationNameTaken indicates a location with the same name already
	// exists in the organization.
	ErrLocationNameTaken = errors.New("location name already taken")

	// ErrPermissionDenied indicates the store rejected the operation for
	// authorization reasons.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrStoreUnavailable indicates the store could not be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)
