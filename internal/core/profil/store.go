// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package profil

import "context"

// # Published Profil Data Access

// Repository defines the persistent data access contract for published profils.
type Repository interface {

	/*
		Create persists a freshly published profil.

		Parameters:
		  - context: context.Context
		  - profil: *Profil (complete record, id and slug assigned)

		Returns:
		  - error: apperr.Conflict on a duplicate slug, or execution errors
	*/
	Create(context context.Context, profil *Profil) error

	/*
		GetByID retrieves a profil by its UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Profil: Hydrated record
		  - error: dberr.ErrNotFound if missing
	*/
	GetByID(context context.Context, id string) (*Profil, error)

	/*
		GetBySlug retrieves a profil by its URL slug.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Profil: Hydrated record
		  - error: dberr.ErrNotFound if missing
	*/
	GetBySlug(context context.Context, slug string) (*Profil, error)

	/*
		List retrieves a filtered, paginated set of profils.

		Parameters:
		  - context: context.Context
		  - filter: Filter (domaine/statut/visibilite/query)
		  - limit, offset: int (Pagination bounds)

		Returns:
		  - []*Profil: Matching records
		  - int: Total matching count for pagination metadata
		  - error: Execution errors
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Profil, int, error)

	// UpdateStatut transitions the lifecycle status of a profil.
	UpdateStatut(context context.Context, id string, statut Statut) error

	/*
		AddEvaluation folds a new rating into the aggregates.

		Description: Atomically increments nb_evaluations and recomputes
		note_moyenne as a running average.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - note: int (1..5)

		Returns:
		  - *Profil: Record with refreshed aggregates
		  - error: dberr.ErrNotFound or execution errors
	*/
	AddEvaluation(context context.Context, id string, note int) (*Profil, error)

	// IncrementUtilisations bumps the usage counter by one.
	IncrementUtilisations(context context.Context, id string) (*Profil, error)
}

// # Draft Data Access

// DraftRepository defines the volatile storage contract for composition drafts.
//
// Drafts expire on their own; abandoning one requires no cleanup call.
type DraftRepository interface {

	// Save upserts a draft and refreshes its TTL (last write wins).
	Save(context context.Context, draft *Draft) error

	// Get retrieves a draft by id. Returns apperr.NotFound when the draft
	// never existed or has expired.
	Get(context context.Context, id string) (*Draft, error)

	// Delete removes a draft. Deleting an absent draft is not an error.
	Delete(context context.Context, id string) error
}
