// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package squad

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atelia-app/atelia/internal/platform/dberr"
)

// squadColumns is the canonical column list shared by every SELECT.
const squadColumns = `id, projectid, nom, slug, mission, statut, creele, modifiele`

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
List retrieves a filtered and paginated list of squads.

Description: Rosters are not hydrated here; single-squad reads carry them.

Parameters:
  - context: context.Context
  - filter: Filter (Project scope, status)
  - limit, offset: int (Pagination bounds)

Returns:
  - []*Squad: Paginated results
  - int: Total matching count
  - error: Database execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Squad, int, error) {

	// Base queries for selection and counting
	query := `SELECT ` + squadColumns + ` FROM agency.squad WHERE deletedat IS NULL`
	countQuery := `SELECT count(*) FROM agency.squad WHERE deletedat IS NULL`

	args := []any{}

	// appendFilter grows both queries with the next positional placeholder.
	appendFilter := func(clause string, value any) {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		query += " AND " + clause + " " + placeholder
		countQuery += " AND " + clause + " " + placeholder
		args = append(args, value)
	}

	// Apply filter parameters
	if filter.ProjectID != "" {
		appendFilter("projectid =", filter.ProjectID)
	}
	if filter.Statut != "" {
		appendFilter("statut =", filter.Statut)
	}

	// Retrieve total count for metadata
	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_squads")
	}

	// Append ordering and pagination bounds
	query += ` ORDER BY creele DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
	args = append(args, limit, offset)

	// Execute paginated selection
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_squads")
	}
	defer rows.Close()

	// Hydrate result set
	var squads []*Squad
	for rows.Next() {
		s := &Squad{}
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.Nom, &s.Slug, &s.Mission,
			&s.Statut, &s.CreeLe, &s.ModifieLe); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_squad")
		}
		squads = append(squads, s)
	}

	return squads, total, nil
}

/*
Get retrieves a single squad with its full roster.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Squad: Hydrated entity, agents included
  - error: dberr.ErrNotFound or SQL errors
*/
func (repository *PostgresRepository) Get(context context.Context, id string) (*Squad, error) {

	// Selection query targeting active records
	query := `SELECT ` + squadColumns + ` FROM agency.squad WHERE id = $1 AND deletedat IS NULL`

	s := &Squad{}

	// Execute scan from pool
	err := repository.db.QueryRow(context, query, id).Scan(
		&s.ID, &s.ProjectID, &s.Nom, &s.Slug, &s.Mission,
		&s.Statut, &s.CreeLe, &s.ModifieLe,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_squad")
	}

	// Hydrate the roster in staffing order
	const rosterQuery = `
		SELECT id, squadid, profilid, nom, role, creele
		FROM agency.agent
		WHERE squadid = $1
		ORDER BY creele ASC, id ASC
	`
	rows, err := repository.db.Query(context, rosterQuery, id)
	if err != nil {
		return nil, dberr.Wrap(err, "list_agents")
	}
	defer rows.Close()

	for rows.Next() {
		a := &Agent{}
		if err := rows.Scan(&a.ID, &a.SquadID, &a.ProfilID, &a.Nom, &a.Role, &a.CreeLe); err != nil {
			return nil, dberr.Wrap(err, "scan_agent")
		}
		s.Agents = append(s.Agents, a)
	}

	return s, nil
}

/*
Create persists a new squad record.

Parameters:
  - context: context.Context
  - squad: *Squad (Input entity, id, slug and statut assigned)

Returns:
  - error: apperr.Conflict on duplicate slug, or execution errors
*/
func (repository *PostgresRepository) Create(context context.Context, squad *Squad) error {

	// Construct insertion statement returning audit fields
	const query = `
		INSERT INTO agency.squad (id, projectid, nom, slug, mission, statut, creele, modifiele)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING creele, modifiele
	`

	// Execute and bind generated responses
	err := repository.db.QueryRow(context, query,
		squad.ID, squad.ProjectID, squad.Nom, squad.Slug, squad.Mission, squad.Statut,
	).Scan(&squad.CreeLe, &squad.ModifieLe)

	return dberr.Wrap(err, "create_squad")
}

/*
Update applies modifications to an existing squad record.

Description: The slug is immutable; project attachment, mission and status move.

Parameters:
  - context: context.Context
  - squad: *Squad (Input entity with valid ID)

Returns:
  - error: Update failures or dberr.ErrNotFound
*/
func (repository *PostgresRepository) Update(context context.Context, squad *Squad) error {

	// Construct update statement with timestamp renewal
	const query = `
		UPDATE agency.squad
		SET projectid = $2, nom = $3, mission = $4, statut = $5, modifiele = NOW()
		WHERE id = $1 AND deletedat IS NULL
		RETURNING modifiele
	`

	// Execute update directly in repository
	err := repository.db.QueryRow(context, query,
		squad.ID, squad.ProjectID, squad.Nom, squad.Mission, squad.Statut,
	).Scan(&squad.ModifieLe)

	return dberr.Wrap(err, "update_squad")
}

/*
Delete flags a squad as logically destroyed.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: Deletion failures or dberr.ErrNotFound
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {

	// Define soft-deletion SQL
	const query = `UPDATE agency.squad SET deletedat = NOW() WHERE id = $1 AND deletedat IS NULL`

	// Execute statement
	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_squad")
	}

	// Verify target existence
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
AddAgent appends one agent to a squad's roster.

Parameters:
  - context: context.Context
  - agent: *Agent (Input entity with assigned id)

Returns:
  - error: Insertion failures
*/
func (repository *PostgresRepository) AddAgent(context context.Context, agent *Agent) error {

	// Construct insertion statement returning audit field
	const query = `
		INSERT INTO agency.agent (id, squadid, profilid, nom, role, creele)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING creele
	`

	// Execute and bind generated response
	err := repository.db.QueryRow(context, query,
		agent.ID, agent.SquadID, agent.ProfilID, agent.Nom, agent.Role,
	).Scan(&agent.CreeLe)

	return dberr.Wrap(err, "add_agent")
}

/*
RemoveAgent detaches one agent from a squad's roster.

Parameters:
  - context: context.Context
  - squadID, agentID: string (UUIDs)

Returns:
  - error: Deletion failures or dberr.ErrNotFound
*/
func (repository *PostgresRepository) RemoveAgent(context context.Context, squadID, agentID string) error {

	// Define removal SQL scoped to the squad
	const query = `DELETE FROM agency.agent WHERE id = $1 AND squadid = $2`

	// Execute statement
	cmd, err := repository.db.Exec(context, query, agentID, squadID)
	if err != nil {
		return dberr.Wrap(err, "remove_agent")
	}

	// Verify target existence
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
