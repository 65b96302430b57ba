package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	invdomain "github.com/ghuser/stockroom/services/inventory/domain"
	"github.com/ghuser/stockroom/services/inventory/domain/models"
	"github.com/ghuser/stockroom/services/inventory/domain/repositories"
	domainsvcs "github.com/ghuser/stockroom/services/inventory/domain/services"
)

// LocationService orchestrates location writes and enforces the per-org name
// uniqueness policy.
type LocationService struct {
	repo repositories.LocationRepository
}

// NewLocationService returns a LocationService wired with the given repository.
func NewLocationService(repo repositories.LocationRepository) *LocationService {
	return &LocationService{repo: repo}
}

// Add creates a location after checking no location with the same name exists
// in the org. The check and the insert are not atomic: two concurrent callers
// can both pass the check and create duplicates; callers treat that as a rare
// race rather than a hard constraint.
func (s *LocationService) Add(ctx context.Context, orgID uuid.UUID, name string) (*models.ItemLocation, error) {
	loc, err := models.NewItemLocation(orgID, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", invdomain.ErrInvalidLocation, err)
	}
	if err := domainsvcs.ValidateName(name); err != nil {
		return nil, fmt.Errorf("%w: %w", invdomain.ErrInvalidLocation, err)
	}

	existing, err := s.repo.FindByName(ctx, orgID, name)
	if err != nil {
		return nil, fmt.Errorf("check location name: %w", err)
	}
	if len(existing) > 0 {
		return nil, fmt.Errorf("%w: %q", invdomain.ErrLocationNameTaken, name)
	}

	if err := s.repo.Save(ctx, loc); err != nil {
		return nil, fmt.Errorf("save location: %w", err)
	}
	return loc, nil
}

// Remove deletes every location matching name within the org (zero or one
// under the uniqueness policy). Returns ErrLocationNotFound when nothing
// matched; store failures arrive pre-classified by the repository
// (permission denied, unavailable, generic).
func (s *LocationService) Remove(ctx context.Context, orgID uuid.UUID, name string) error {
	deleted, err := s.repo.DeleteByName(ctx, orgID, name)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if deleted == 0 {
		return fmt.Errorf("%w: %q", invdomain.ErrLocationNotFound, name)
	}
	return nil
}

// List returns all locations for the org.
func (s *LocationService) List(ctx context.Context, orgID uuid.UUID) ([]*models.ItemLocation, error) {
	locs, err := s.repo.ListByOrgID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return locs, nil
}
