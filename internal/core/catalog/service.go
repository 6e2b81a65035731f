// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package catalog

import (
	"context"
	"strings"

	"github.com/atelia-app/atelia/internal/platform/validate"
	"github.com/atelia-app/atelia/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for the reference catalog.
//
// It is the single gateway for reading the six-category taxonomy and for
// growing it with consultant-created building blocks.
type Service struct {
	repo Repository
}

// NewService constructs a new catalog [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// # Read Methods

/*
ListAll returns the complete catalog grouped by category.

Description: Fetches every item in one pass and partitions the result into a
fixed-size map keyed by [Category], empty slices included so the back-office
always receives all six groups.

Parameters:
  - context: context.Context

Returns:
  - map[Category][]*Item: All six categories, in insertion order within each
  - error: Database retrieval failures
*/
func (service *Service) ListAll(context context.Context) (map[Category][]*Item, error) {
	items, err := service.repo.ListAll(context)
	if err != nil {
		return nil, err
	}

	// Pre-seed every category so absent groups serialize as [] rather than null.
	grouped := make(map[Category][]*Item, len(AllCategories))
	for _, category := range AllCategories {
		grouped[category] = make([]*Item, 0)
	}

	for _, item := range items {
		grouped[item.Category] = append(grouped[item.Category], item)
	}

	return grouped, nil
}

/*
ListByCategory returns every item of one category in insertion order.

Description: Returns both active and inactive items; presentation layers
filter on IsActive when offering selectable options, while existing
assemblages keep resolving deactivated items.

Parameters:
  - context: context.Context
  - category: Category partition to read

Returns:
  - []*Item: Items in insertion order
  - error: Validation or retrieval failures
*/
func (service *Service) ListByCategory(context context.Context, category Category) ([]*Item, error) {
	if !category.Valid() {
		return nil, validate.RequiredError(FieldCategory, "Unknown catalog category")
	}

	return service.repo.ListByCategory(context, category)
}

/*
FindByID retrieves a single item scoped to its category.

Description: Absence is a soft signal in this domain. Callers resolving
assemblage selections must treat a not-found error as "skip this id", never
as a fatal condition.

Parameters:
  - context: context.Context
  - category: Category partition
  - id: string (UUID)

Returns:
  - *Item: Hydrated item entity
  - error: dberr.ErrNotFound or execution errors
*/
func (service *Service) FindByID(context context.Context, category Category, id string) (*Item, error) {
	if !category.Valid() {
		return nil, validate.RequiredError(FieldCategory, "Unknown catalog category")
	}

	return service.repo.FindByID(context, category, id)
}

// # Mutation Methods

/*
Add validates and persists a new building block in the given category.

Description: The only creation entry point for the catalog. A fresh UUIDv7 is
assigned, the item starts active with a zero usage counter, and the category
is immutable thereafter.

Parameters:
  - context: context.Context
  - category: Category partition (must be one of the six)
  - name: string (required, non-blank)
  - description: *string (optional free text)
  - domain: *string (optional grouping label, e.g. "Finance")

Returns:
  - *Item: The created item with its assigned id
  - error: Validation failures (apperr.ValidationError) or storage errors
*/
func (service *Service) Add(context context.Context, category Category, name string, description, domain *string) (*Item, error) {
	validator := &validate.Validator{}

	validator.Custom(FieldCategory, !category.Valid(), "Unknown catalog category")

	// Whitespace-only names are rejected the same as empty ones.
	validator.Required(FieldName, strings.TrimSpace(name)).MaxLen(FieldName, name, 200)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	item := &Item{
		ID:          uuid.New(),
		Name:        name,
		Category:    category,
		Description: description,
		Domain:      domain,
		IsActive:    true,
		UsageCount:  0,
	}

	if err := service.repo.Create(context, item); err != nil {
		return nil, err
	}

	return item, nil
}

/*
Deactivate soft-disables an item.

Description: Deactivated items disappear from new selection lists but keep
resolving inside existing assemblages. The catalog never hard-deletes.

Parameters:
  - context: context.Context
  - category: Category partition
  - id: string (UUID)

Returns:
  - error: dberr.ErrNotFound or execution errors
*/
func (service *Service) Deactivate(context context.Context, category Category, id string) error {
	if !category.Valid() {
		return validate.RequiredError(FieldCategory, "Unknown catalog category")
	}

	return service.repo.Deactivate(context, category, id)
}

/*
IncrementUsage bumps the usage counter for every listed item.

Description: Called by the profil publication pipeline with the full set of
selected ids. Unknown ids are simply not matched by the update, mirroring the
dangling-reference tolerance of assemblage resolution.

Parameters:
  - context: context.Context
  - ids: []string (item UUIDs, any category)

Returns:
  - error: Execution errors
*/
func (service *Service) IncrementUsage(context context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	return service.repo.IncrementUsage(context, ids)
}
