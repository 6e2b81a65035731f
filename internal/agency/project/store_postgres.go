// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package project

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelia-app/atelia/internal/platform/dberr"
)

// projectColumns is the canonical column list shared by every SELECT.
const projectColumns = `id, clientid, nom, slug, description, statut, datedebut, datefin, budget, creele, modifiele`

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
List retrieves a filtered and paginated list of projects.

Description: Filters compose dynamically; each active filter appends its own
placeholder to both the selection and the count query.

Parameters:
  - context: context.Context
  - filter: Filter (Client scope, status, search)
  - limit, offset: int (Pagination bounds)

Returns:
  - []*Project: Paginated results
  - int: Total matching count
  - error: Database execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Project, int, error) {

	// Base queries for selection and counting
	query := `SELECT ` + projectColumns + ` FROM agency.project WHERE deletedat IS NULL`
	countQuery := `SELECT count(*) FROM agency.project WHERE deletedat IS NULL`

	args := []any{}

	// appendFilter grows both queries with the next positional placeholder.
	appendFilter := func(clause string, value any) {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		query += " AND " + clause + " " + placeholder
		countQuery += " AND " + clause + " " + placeholder
		args = append(args, value)
	}

	// Apply filter parameters
	if filter.ClientID != "" {
		appendFilter("clientid =", filter.ClientID)
	}
	if filter.Statut != "" {
		appendFilter("statut =", filter.Statut)
	}
	if filter.Query != "" {
		appendFilter("nom ILIKE", "%"+filter.Query+"%")
	}

	// Retrieve total count for metadata
	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_projects")
	}

	// Append ordering and pagination bounds
	query += ` ORDER BY creele DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	// Execute paginated selection
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_projects")
	}
	defer rows.Close()

	// Hydrate result set
	var projects []*Project
	for rows.Next() {
		p := &Project{}
		if err := rows.Scan(&p.ID, &p.ClientID, &p.Nom, &p.Slug, &p.Description,
			&p.Statut, &p.DateDebut, &p.DateFin, &p.Budget, &p.CreeLe, &p.ModifieLe); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_project")
		}
		projects = append(projects, p)
	}

	return projects, total, nil
}

/*
Get retrieves a single project by its primary key.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Project: Hydrated entity
  - error: dberr.ErrNotFound or SQL errors
*/
func (repository *PostgresRepository) Get(context context.Context, id string) (*Project, error) {

	// Selection query targeting active records
	query := `SELECT ` + projectColumns + ` FROM agency.project WHERE id = $1 AND deletedat IS NULL`

	p := &Project{}

	// Execute scan from pool
	err := repository.db.QueryRow(context, query, id).Scan(
		&p.ID, &p.ClientID, &p.Nom, &p.Slug, &p.Description,
		&p.Statut, &p.DateDebut, &p.DateFin, &p.Budget, &p.CreeLe, &p.ModifieLe,
	)

	if err != nil {
		return nil, dberr.Wrap(err, "get_project")
	}
	return p, nil
}

/*
Create persists a new project record.

Parameters:
  - context: context.Context
  - project: *Project (Input entity, id, slug and statut assigned)

Returns:
  - error: apperr.Conflict on duplicate slug, or execution errors
*/
func (repository *PostgresRepository) Create(context context.Context, project *Project) error {

	// Construct insertion statement returning audit fields
	const query = `
		INSERT INTO agency.project (id, clientid, nom, slug, description, statut, datedebut, datefin, budget, creele, modifiele)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING creele, modifiele
	`

	// Execute and bind generated responses
	err := repository.db.QueryRow(context, query,
		project.ID, project.ClientID, project.Nom, project.Slug, project.Description,
		project.Statut, project.DateDebut, project.DateFin, project.Budget,
	).Scan(&project.CreeLe, &project.ModifieLe)

	return dberr.Wrap(err, "create_project")
}

/*
Update applies modifications to an existing project record.

Description: Slug, owning client and statut are immutable in this statement.

Parameters:
  - context: context.Context
  - project: *Project (Input entity with valid ID)

Returns:
  - error: Update failures or dberr.ErrNotFound
*/
func (repository *PostgresRepository) Update(context context.Context, project *Project) error {

	// Construct update statement with timestamp renewal
	const query = `
		UPDATE agency.project
		SET nom = $2, description = $3, datedebut = $4, datefin = $5, budget = $6, modifiele = NOW()
		WHERE id = $1 AND deletedat IS NULL
		RETURNING modifiele
	`

	// Execute update directly in repository
	err := repository.db.QueryRow(context, query,
		project.ID, project.Nom, project.Description,
		project.DateDebut, project.DateFin, project.Budget,
	).Scan(&project.ModifieLe)

	return dberr.Wrap(err, "update_project")
}

/*
UpdateStatut moves the project to a new lifecycle state.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - statut: Statut (Target state)

Returns:
  - error: Update failures or dberr.ErrNotFound
*/
func (repository *PostgresRepository) UpdateStatut(context context.Context, id string, statut Statut) error {

	// Define transition SQL
	const query = `UPDATE agency.project SET statut = $2, modifiele = NOW() WHERE id = $1 AND deletedat IS NULL`

	// Execute statement
	cmd, err := repository.db.Exec(context, query, id, statut)
	if err != nil {
		return dberr.Wrap(err, "update_project_statut")
	}

	// Verify target existence
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
Delete flags a project as logically destroyed.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: Deletion failures or dberr.ErrNotFound
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {

	// Define soft-deletion SQL
	const query = `UPDATE agency.project SET deletedat = NOW() WHERE id = $1 AND deletedat IS NULL`

	// Execute statement
	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_project")
	}

	// Verify target existence
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
