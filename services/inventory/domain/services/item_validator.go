// Package services contains stateless domain services for the inventory
// bounded context. Domain services enforce business rules that operate purely
// on domain types and have zero external dependencies beyond stdlib and the
// domain layer.
package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/ghuser/stockroom/services/inventory/domain/models"
)

// ValidateName enforces business rules for item and location names beyond the
// non-empty check done by the constructors.
//
// Business rules:
//   - No leading or trailing whitespace
//   - No control characters (Unicode category Cc)
//   - No consecutive spaces
//   - Must not be only whitespace characters
func ValidateName(s string) error {
	if s != strings.TrimSpace(s) {
		return fmt.Errorf("name must not have leading or trailing whitespace")
	}

	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("name must not be only whitespace")
	}

	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("name must not contain control characters")
		}
	}

	if strings.Contains(s, "  ") {
		return fmt.Errorf("name must not contain consecutive spaces")
	}

	return nil
}

// ValidateItemForWrite performs cross-field validation on an Item before it is
// persisted. It assumes the Item was built via models.NewItem (so structural
// constraints hold) and adds the numeric business rules: quantity and minimum
// level are non-negative counts, price and total value are non-negative
// currency amounts. TotalValue is deliberately not checked against
// Quantity*Price; it is an independent field.
func ValidateItemForWrite(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}

	if err := ValidateName(item.Name); err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	if item.OrgID == uuid.Nil {
		return fmt.Errorf("org_id must be set")
	}

	if item.ID == uuid.Nil {
		return fmt.Errorf("id must be set")
	}

	if item.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}

	if item.MinLevel < 0 {
		return fmt.Errorf("min level must not be negative")
	}

	if item.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}

	if item.TotalValue < 0 {
		return fmt.Errorf("total value must not be negative")
	}

	return nil
}
