// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelia-app/atelia/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
ListByCategory retrieves every item of one category in insertion order.

Description: Insertion order is approximated by (createdat, id) since UUIDv7
identifiers are time-sortable.

Parameters:
  - context: context.Context
  - category: Category partition

Returns:
  - []*Item: All items, active and inactive
  - error: Database execution or scanning errors
*/
func (repository *PostgresRepository) ListByCategory(context context.Context, category Category) ([]*Item, error) {

	// Define category retrieval query
	const query = `
		SELECT id, name, category, description, domain, isactive, usagecount, createdat
		FROM core.referenceitem
		WHERE category = $1
		ORDER BY createdat ASC, id ASC;
	`

	// Execute retrieval against connection pool
	rows, err := repository.db.Query(context, query, category)
	if err != nil {
		return nil, dberr.Wrap(err, "list_catalog_category")
	}
	defer rows.Close()

	// Iterate results and hydrate entity slice
	var items []*Item
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Description,
			&item.Domain, &item.IsActive, &item.UsageCount, &item.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_catalog_item")
		}
		items = append(items, item)
	}

	return items, nil
}

/*
ListAll retrieves the entire catalog across every category.

Parameters:
  - context: context.Context

Returns:
  - []*Item: Full catalog in insertion order
  - error: Database execution or scanning errors
*/
func (repository *PostgresRepository) ListAll(context context.Context) ([]*Item, error) {
	const query = `
		SELECT id, name, category, description, domain, isactive, usagecount, createdat
		FROM core.referenceitem
		ORDER BY createdat ASC, id ASC;
	`

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_catalog")
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		item := &Item{}
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Description,
			&item.Domain, &item.IsActive, &item.UsageCount, &item.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_catalog_item")
		}
		items = append(items, item)
	}

	return items, nil
}

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
func (repository *PostgresRepository) FindByID(context context.Context, category Category, id string) (*Item, error) {

	// Prepare single-row selection scoped to the category partition
	const query = `
		SELECT id, name, category, description, domain, isactive, usagecount, createdat
		FROM core.referenceitem
		WHERE category = $1 AND id = $2;
	`

	// Execute query and scan directly into entity
	item := &Item{}
	err := repository.db.QueryRow(context, query, category, id).Scan(
		&item.ID, &item.Name, &item.Category, &item.Description,
		&item.Domain, &item.IsActive, &item.UsageCount, &item.CreatedAt,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "find_catalog_item")
	}

	return item, nil
}

/*
Create persists a new catalog item.

Description: The id is assigned by the service layer (UUIDv7); the database
only stamps the creation timestamp.

Parameters:
  - context: context.Context
  - item: *Item (Input entity)

Returns:
  - error: Column constraint violations or execution errors
*/
func (repository *PostgresRepository) Create(context context.Context, item *Item) error {

	// Construct insertion statement returning audit fields
	const query = `
		INSERT INTO core.referenceitem (id, name, category, description, domain, isactive, usagecount, createdat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING createdat
	`

	// Execute and bind generated responses
	err := repository.db.QueryRow(context, query,
		item.ID, item.Name, item.Category, item.Description,
		item.Domain, item.IsActive, item.UsageCount,
	).Scan(&item.CreatedAt)

	return dberr.Wrap(err, "create_catalog_item")
}

/*
Deactivate soft-disables an item.

Parameters:
  - context: context.Context
  - category: Category partition
  - id: string (UUID)

Returns:
  - error: Execution errors or dberr.ErrNotFound
*/
func (repository *PostgresRepository) Deactivate(context context.Context, category Category, id string) error {

	// Define soft-deactivation SQL
	const query = `
		UPDATE core.referenceitem
		SET isactive = FALSE
		WHERE category = $1 AND id = $2 AND isactive = TRUE
	`

	// Execute statement
	cmd, err := repository.db.Exec(context, query, category, id)
	if err != nil {
		return dberr.Wrap(err, "deactivate_catalog_item")
	}

	// Verify target existence
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
IncrementUsage bumps the usage counter for every listed item id.

Description: Ids with no matching row are silently ignored, matching the
dangling-reference tolerance of the composition model.

Parameters:
  - context: context.Context
  - ids: []string (item UUIDs)

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) IncrementUsage(context context.Context, ids []string) error {
	const query = `
		UPDATE core.referenceitem
		SET usagecount = usagecount + 1
		WHERE id = ANY($1)
	`

	_, err := repository.db.Exec(context, query, ids)
	return dberr.Wrap(err, "increment_catalog_usage")
}
