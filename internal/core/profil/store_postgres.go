// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package profil

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"
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

// profilColumns is the canonical selection list shared by every read query.
const profilColumns = `
	id, slug, nom, domaine, secteurscibles, niveaucomplexite, visibilite,
	descriptioncourte, descriptioncomplete, methodologie,
	identityprompt, missionprompt, personalityprompt,
	competencescles, outils, exemplestaches, sectionsexpertise, sectionsscope, tags,
	statut, nbutilisations, nbevaluations, notemoyenne,
	creepar, creele, modifiele`

// scanProfil hydrates one row into a [Profil] entity.
func scanProfil(row pgx.Row) (*Profil, error) {
	profil := &Profil{}
	err := row.Scan(
		&profil.ID, &profil.Slug, &profil.Nom, &profil.Domaine, &profil.SecteursCibles,
		&profil.NiveauComplexite, &profil.Visibilite,
		&profil.DescriptionCourte, &profil.DescriptionComplete, &profil.Methodologie,
		&profil.IdentityPrompt, &profil.MissionPrompt, &profil.PersonalityPrompt,
		&profil.CompetencesCles, &profil.Outils, &profil.ExemplesTaches,
		&profil.SectionsExpertise, &profil.SectionsScope, &profil.Tags,
		&profil.Statut, &profil.NbUtilisations, &profil.NbEvaluations, &profil.NoteMoyenne,
		&profil.CreePar, &profil.CreeLe, &profil.ModifieLe,
	)
	return profil, err
}

/*
Create persists a freshly published profil.

Description: All identity fields are assigned by the publication pipeline;
the database only stamps the timestamps. The unique index on slug turns
collisions into a Conflict via dberr.

Parameters:
  - context: context.Context
  - profil: *Profil (complete record)

Returns:
  - error: apperr.Conflict on a duplicate slug, or execution errors
*/
func (repository *PostgresRepository) Create(context context.Context, profil *Profil) error {

	// Construct insertion statement returning audit fields
	const query = `
		INSERT INTO core.profil (
			id, slug, nom, domaine, secteurscibles, niveaucomplexite, visibilite,
			descriptioncourte, descriptioncomplete, methodologie,
			identityprompt, missionprompt, personalityprompt,
			competencescles, outils, exemplestaches, sectionsexpertise, sectionsscope, tags,
			statut, nbutilisations, nbevaluations, notemoyenne,
			creepar, creele, modifiele
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, NOW(), NOW())
		RETURNING creele, modifiele
	`

	// Execute and bind generated responses
	err := repository.db.QueryRow(context, query,
		profil.ID, profil.Slug, profil.Nom, profil.Domaine, profil.SecteursCibles,
		profil.NiveauComplexite, profil.Visibilite,
		profil.DescriptionCourte, profil.DescriptionComplete, profil.Methodologie,
		profil.IdentityPrompt, profil.MissionPrompt, profil.PersonalityPrompt,
		profil.CompetencesCles, profil.Outils, profil.ExemplesTaches,
		profil.SectionsExpertise, profil.SectionsScope, profil.Tags,
		profil.Statut, profil.NbUtilisations, profil.NbEvaluations, profil.NoteMoyenne,
		profil.CreePar,
	).Scan(&profil.CreeLe, &profil.ModifieLe)

	return dberr.Wrap(err, "create_profil")
}

/*
GetByID retrieves a profil by its UUID.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Profil: Hydrated record
  - error: dberr.ErrNotFound if missing
*/
func (repository *PostgresRepository) GetByID(context context.Context, id string) (*Profil, error) {
	const query = `SELECT ` + profilColumns + ` FROM core.profil WHERE id = $1`

	profil, err := scanProfil(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "get_profil_by_id")
	}
	return profil, nil
}

/*
GetBySlug retrieves a profil by its URL slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Profil: Hydrated record
  - error: dberr.ErrNotFound if missing
*/
func (repository *PostgresRepository) GetBySlug(context context.Context, slug string) (*Profil, error) {
	const query = `SELECT ` + profilColumns + ` FROM core.profil WHERE slug = $1`

	profil, err := scanProfil(repository.db.QueryRow(context, query, slug))
	if err != nil {
		return nil, dberr.Wrap(err, "get_profil_by_slug")
	}
	return profil, nil
}

/*
List retrieves a filtered and paginated set of profils.

Description: Supports exact filters on domaine, statut and visibilite plus
an ILIKE keyword search over nom and descriptioncourte, returning both the
entity slice and a total count for pagination metadata.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int (Pagination bounds)

Returns:
  - []*Profil: Paginated results
  - int: Total matching count
  - error: Database execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Profil, int, error) {

	// Base queries for selection and counting
	query := `SELECT ` + profilColumns + ` FROM core.profil WHERE TRUE`
	countQuery := `SELECT count(*) FROM core.profil WHERE TRUE`

	args := []any{}
	countArgs := []any{}

	appendFilter := func(clause string, value any) {
		placeholder := `$` + itos(len(args)+1)
		query += ` AND ` + clause + ` ` + placeholder
		countQuery += ` AND ` + clause + ` $` + itos(len(countArgs)+1)
		args = append(args, value)
		countArgs = append(countArgs, value)
	}

	// Apply filter parameters
	if filter.Domaine != "" {
		appendFilter(`domaine =`, filter.Domaine)
	}
	if filter.Statut != "" {
		appendFilter(`statut =`, filter.Statut)
	}
	if filter.Visibilite != "" {
		appendFilter(`visibilite =`, filter.Visibilite)
	}
	if filter.Query != "" {
		searchTerm := "%" + filter.Query + "%"
		placeholder := `$` + itos(len(args)+1)
		query += ` AND (nom ILIKE ` + placeholder + ` OR descriptioncourte ILIKE ` + placeholder + `)`
		countQuery += ` AND (nom ILIKE $` + itos(len(countArgs)+1) + ` OR descriptioncourte ILIKE $` + itos(len(countArgs)+1) + `)`
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	// Append ordering and pagination bounds
	query += ` ORDER BY creele DESC LIMIT $` + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	// Retrieve total count for metadata
	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_profils")
	}

	// Execute paginated selection
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_profils")
	}
	defer rows.Close()

	// Hydrate result set
	var profils []*Profil
	for rows.Next() {
		profil, err := scanProfil(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_profil")
		}
		profils = append(profils, profil)
	}

	return profils, total, nil
}

/*
UpdateStatut transitions the lifecycle status of a profil.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - statut: Statut (target state)

Returns:
  - error: Execution errors or dberr.ErrNotFound
*/
func (repository *PostgresRepository) UpdateStatut(context context.Context, id string, statut Statut) error {

	// Define status update with timestamp renewal
	const query = `UPDATE core.profil SET statut = $2, modifiele = NOW() WHERE id = $1`

	// Execute statement
	cmd, err := repository.db.Exec(context, query, id, statut)
	if err != nil {
		return dberr.Wrap(err, "update_profil_statut")
	}

	// Verify target existence
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
AddEvaluation folds a new rating into the aggregates.

Description: Single atomic UPDATE that recomputes the running average from
the current aggregates, so concurrent evaluations never lose ratings.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - note: int (1..5)

Returns:
  - *Profil: Record with refreshed aggregates
  - error: dberr.ErrNotFound or execution errors
*/
func (repository *PostgresRepository) AddEvaluation(context context.Context, id string, note int) (*Profil, error) {
	const query = `
		UPDATE core.profil
		SET nbevaluations = nbevaluations + 1,
		    notemoyenne = (COALESCE(notemoyenne, 0) * nbevaluations + $2) / (nbevaluations + 1),
		    modifiele = NOW()
		WHERE id = $1
		RETURNING ` + profilColumns

	profil, err := scanProfil(repository.db.QueryRow(context, query, id, note))
	if err != nil {
		return nil, dberr.Wrap(err, "add_profil_evaluation")
	}
	return profil, nil
}

/*
IncrementUtilisations bumps the usage counter by one.

Description: Called every time an agent is instantiated from this profil.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Profil: Record with the refreshed counter
  - error: dberr.ErrNotFound or execution errors
*/
func (repository *PostgresRepository) IncrementUtilisations(context context.Context, id string) (*Profil, error) {
	const query = `
		UPDATE core.profil
		SET nbutilisations = nbutilisations + 1, modifiele = NOW()
		WHERE id = $1
		RETURNING ` + profilColumns

	profil, err := scanProfil(repository.db.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "increment_profil_utilisations")
	}
	return profil, nil
}

// itos converts an integer to a string.
// It is used for building dynamic SQL parameter placeholders (e.g., $1, $2).
func itos(i int) string {
	return strconv.Itoa(i)
}
