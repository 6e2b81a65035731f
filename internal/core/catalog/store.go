// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package catalog

import "context"

// # Catalog Data Access

// Repository defines the data access contract for reference catalog items.
type Repository interface {

	/*
		ListByCategory retrieves every item of one category in insertion order.

		Parameters:
		  - context: context.Context
		  - category: Category partition to read

		Returns:
		  - []*Item: All items, active and inactive
		  - error: Database retrieval failures
	*/
	ListByCategory(context context.Context, category Category) ([]*Item, error)

	/*
		ListAll retrieves the entire catalog across every category.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Item: Full catalog in insertion order
		  - error: Database retrieval failures
	*/
	ListAll(context context.Context) ([]*Item, error)

	/*
		FindByID retrieves a single item scoped to its category.

		Parameters:
		  - context: context.Context
		  - category: Category partition
		  - id: string (UUID)

		Returns:
		  - *Item: Hydrated item entity
		  - error: dberr.ErrNotFound if missing
	*/
	FindByID(context context.Context, category Category, id string) (*Item, error)

	// Create persists a new catalog item.
	Create(context context.Context, item *Item) error

	// Deactivate soft-disables an item so it is excluded from new selections.
	Deactivate(context context.Context, category Category, id string) error

	// IncrementUsage bumps the usage counter for every listed item id.
	IncrementUsage(context context.Context, ids []string) error
}
