// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package client

import (
	"context"
	"strconv"

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
List retrieves a filtered and paginated list of active clients.

Description: Supports keyword search (ILIKE) on name and sector, returning
both the entity slice and a total count for pagination metadata.

Parameters:
  - context: context.Context
  - filter: Filter (Search parameters)
  - limit, offset: int (Pagination bounds)

Returns:
  - []*Client: Paginated results
  - int: Total matching count
  - error: Database execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Client, int, error) {

	// Base queries for selection and counting
	query := `
		SELECT id, nom, slug, secteur, contactnom, contactemail, siteweb, notes, isactive, creele, modifiele
		FROM agency.client
		WHERE deletedat IS NULL
	`
	countQuery := `SELECT count(*) FROM agency.client WHERE deletedat IS NULL`

	args := []any{}
	countArgs := []any{}

	// Apply filter parameters
	if filter.Query != "" {
		searchTerm := "%" + filter.Query + "%"
		query += ` AND (nom ILIKE $1 OR secteur ILIKE $1)`
		countQuery += ` AND (nom ILIKE $1 OR secteur ILIKE $1)`
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	// Append ordering and pagination bounds
	query += ` ORDER BY nom ASC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	// Retrieve total count for metadata
	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_clients")
	}

	// Execute paginated selection
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_clients")
	}
	defer rows.Close()

	// Hydrate result set
	var clients []*Client
	for rows.Next() {
		c := &Client{}
		if err := rows.Scan(&c.ID, &c.Nom, &c.Slug, &c.Secteur, &c.ContactNom,
			&c.ContactEmail, &c.SiteWeb, &c.Notes, &c.IsActive, &c.CreeLe, &c.ModifieLe); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_client")
		}
		clients = append(clients, c)
	}

	return clients, total, nil
}

/*
Get retrieves a single client by its primary key.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Client: Hydrated entity
  - error: dberr.ErrNotFound or SQL errors
*/
func (repository *PostgresRepository) Get(context context.Context, id string) (*Client, error) {

	// Selection query targeting active records
	const query = `
		SELECT id, nom, slug, secteur, contactnom, contactemail, siteweb, notes, isactive, creele, modifiele
		FROM agency.client
		WHERE id = $1 AND deletedat IS NULL
	`
	c := &Client{}

	// Execute scan from pool
	err := repository.db.QueryRow(context, query, id).Scan(
		&c.ID, &c.Nom, &c.Slug, &c.Secteur, &c.ContactNom,
		&c.ContactEmail, &c.SiteWeb, &c.Notes, &c.IsActive, &c.CreeLe, &c.ModifieLe,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "get_client")
	}
	return c, nil
}

/*
Create persists a new client record.

Parameters:
  - context: context.Context
  - client: *Client (Input entity, id and slug assigned)

Returns:
  - error: apperr.Conflict on duplicate slug, or execution errors
*/
func (repository *PostgresRepository) Create(context context.Context, client *Client) error {

	// Construct insertion statement returning audit fields
	const query = `
		INSERT INTO agency.client (id, nom, slug, secteur, contactnom, contactemail, siteweb, notes, isactive, creele, modifiele)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING creele, modifiele
	`

	// Execute and bind generated responses
	err := repository.db.QueryRow(context, query,
		client.ID, client.Nom, client.Slug, client.Secteur, client.ContactNom,
		client.ContactEmail, client.SiteWeb, client.Notes, client.IsActive,
	).Scan(&client.CreeLe, &client.ModifieLe)

	return dberr.Wrap(err, "create_client")
}

/*
Update applies modifications to an existing client record.

Description: The slug is immutable; only descriptive fields move.

Parameters:
  - context: context.Context
  - client: *Client (Input entity with valid ID)

Returns:
  - error: Update failures or dberr.ErrNotFound
*/
func (repository *PostgresRepository) Update(context context.Context, client *Client) error {

	// Construct update statement with timestamp renewal
	const query = `
		UPDATE agency.client
		SET nom = $2, secteur = $3, contactnom = $4, contactemail = $5,
		    siteweb = $6, notes = $7, isactive = $8, modifiele = NOW()
		WHERE id = $1 AND deletedat IS NULL
		RETURNING modifiele
	`

	// Execute update directly in repository
	err := repository.db.QueryRow(context, query,
		client.ID, client.Nom, client.Secteur, client.ContactNom,
		client.ContactEmail, client.SiteWeb, client.Notes, client.IsActive,
	).Scan(&client.ModifieLe)

	return dberr.Wrap(err, "update_client")
}

/*
Delete flags a client as logically destroyed.

Description: Soft-deletion behavior using a deletedat timestamp.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: Deletion failures or dberr.ErrNotFound
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {

	// Define soft-deletion SQL
	const query = `UPDATE agency.client SET deletedat = NOW() WHERE id = $1 AND deletedat IS NULL`

	// Execute statement
	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_client")
	}

	// Verify target existence
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
