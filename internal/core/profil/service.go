// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package profil

import (
	"context"
	"log/slog"
	"time"

	"github.com/atelia-app/atelia/internal/core/catalog"
	"github.com/atelia-app/atelia/internal/platform/ctxutil"
	"github.com/atelia-app/atelia/internal/platform/validate"
	"github.com/atelia-app/atelia/pkg/slug"
	"github.com/atelia-app/atelia/pkg/uuid"
)

// # Service Layer

// Service orchestrates the profil composition model.
//
// It owns the draft lifecycle (Redis), the publication pipeline, and every
// post-publication mutation (status transitions, evaluations, usage counts)
// against the persistent store.
type Service struct {
	repo    Repository
	drafts  DraftRepository
	catalog *catalog.Service
}

// NewService constructs a new profil [Service].
func NewService(repo Repository, drafts DraftRepository, catalogService *catalog.Service) *Service {
	return &Service{repo: repo, drafts: drafts, catalog: catalogService}
}

// # Draft Methods

/*
CreateDraft starts a new empty composition session.

Description: Allocates a fresh UUIDv7, applies the documented defaults
(intermediate complexity, private visibility), and stores the draft under
its TTL. The author is recorded explicitly, never read from ambient state.

Parameters:
  - context: context.Context
  - author: string (creator user id)

Returns:
  - *Draft: The new empty draft with a zero completeness score
  - error: Storage failures
*/
func (service *Service) CreateDraft(context context.Context, author string) (*Draft, error) {
	now := time.Now().UTC()

	draft := &Draft{
		ID:         uuid.New(),
		Info:       NewInfo(),
		Assemblage: NewAssemblage(),
		CreePar:    author,
		CreeLe:     now,
		ModifieLe:  now,
	}

	if err := service.drafts.Save(context, draft); err != nil {
		return nil, err
	}

	draft.RecomputeScore()
	return draft, nil
}

/*
GetDraft retrieves a draft and refreshes its derived completeness score.

Parameters:
  - context: context.Context
  - id: string (Draft UUID)

Returns:
  - *Draft: Hydrated draft
  - error: apperr.NotFound when absent or expired
*/
func (service *Service) GetDraft(context context.Context, id string) (*Draft, error) {
	draft, err := service.drafts.Get(context, id)
	if err != nil {
		return nil, err
	}

	draft.RecomputeScore()
	return draft, nil
}

/*
UpdateDraftInfo replaces the identity fields of a draft.

Description: The draft gate is lenient on purpose: fields are stored as
typed, but only enum values are checked here. Length constraints apply at
publish time, so the consultant can save half-finished work.

Parameters:
  - context: context.Context
  - id: string (Draft UUID)
  - info: Info (full replacement of the identity fields)

Returns:
  - *Draft: Updated draft with its recomputed score
  - error: Validation, not-found or storage failures
*/
func (service *Service) UpdateDraftInfo(context context.Context, id string, info Info) (*Draft, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldNiveauComplexite, !info.NiveauComplexite.Valid(), "Unknown complexity level")
	validator.Custom(FieldVisibilite, !info.Visibilite.Valid(), "Unknown visibility")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	draft, err := service.drafts.Get(context, id)
	if err != nil {
		return nil, err
	}

	if info.SecteursCibles == nil {
		info.SecteursCibles = make([]string, 0)
	}

	draft.Info = info
	draft.ModifieLe = time.Now().UTC()

	if err := service.drafts.Save(context, draft); err != nil {
		return nil, err
	}

	draft.RecomputeScore()
	return draft, nil
}

/*
AddSelection inserts a catalog item id into one of the draft's six sets.

Description: Idempotent per the assemblage contract. The id is not checked
against the catalog here; stale ids are tolerated and skipped at resolution.

Parameters:
  - context: context.Context
  - id: string (Draft UUID)
  - category: catalog.Category
  - itemID: string (catalog item UUID)

Returns:
  - *Draft: Updated draft with its recomputed score
  - error: Validation, not-found or storage failures
*/
func (service *Service) AddSelection(context context.Context, id string, category catalog.Category, itemID string) (*Draft, error) {
	draft, err := service.drafts.Get(context, id)
	if err != nil {
		return nil, err
	}

	if !draft.Assemblage.Add(category, itemID) {
		return nil, validate.RequiredError(FieldCategory, "Unknown catalog category")
	}
	draft.ModifieLe = time.Now().UTC()

	if err := service.drafts.Save(context, draft); err != nil {
		return nil, err
	}

	draft.RecomputeScore()
	return draft, nil
}

/*
RemoveSelection removes a catalog item id from one of the draft's sets.

Description: No-op when the id is absent.

Parameters:
  - context: context.Context
  - id: string (Draft UUID)
  - category: catalog.Category
  - itemID: string (catalog item UUID)

Returns:
  - *Draft: Updated draft with its recomputed score
  - error: Validation, not-found or storage failures
*/
func (service *Service) RemoveSelection(context context.Context, id string, category catalog.Category, itemID string) (*Draft, error) {
	draft, err := service.drafts.Get(context, id)
	if err != nil {
		return nil, err
	}

	if !draft.Assemblage.Remove(category, itemID) {
		return nil, validate.RequiredError(FieldCategory, "Unknown catalog category")
	}
	draft.ModifieLe = time.Now().UTC()

	if err := service.drafts.Save(context, draft); err != nil {
		return nil, err
	}

	draft.RecomputeScore()
	return draft, nil
}

/*
ResolveDraft hydrates the draft's selections against the current catalog.

Description: Dangling ids are skipped and counted so the composition screen
can warn about deactivated or vanished building blocks.

Parameters:
  - context: context.Context
  - id: string (Draft UUID)

Returns:
  - *Resolved: Hydrated items per category with a dangling counter
  - error: Not-found or catalog failures
*/
func (service *Service) ResolveDraft(context context.Context, id string) (*Resolved, error) {
	draft, err := service.drafts.Get(context, id)
	if err != nil {
		return nil, err
	}

	return draft.Assemblage.Resolve(context, service.catalog)
}

/*
DeleteDraft abandons a composition session.

Parameters:
  - context: context.Context
  - id: string (Draft UUID)

Returns:
  - error: Storage failures
*/
func (service *Service) DeleteDraft(context context.Context, id string) error {
	return service.drafts.Delete(context, id)
}

// # Publication Pipeline

/*
Publish transforms a valid draft into a persisted profil.

Description: The sole construction path for a [Profil]. The pipeline:

 1. Validate the contractual thresholds; reject with the full violation list.
 2. Resolve the assemblage, skipping dangling ids.
 3. Build the record: fresh UUIDv7, slug derived from nom, statut "draft",
    zero usage, resolved display names embedded.
 4. Persist (duplicate slug surfaces as a Conflict).
 5. Bump catalog usage counters for every resolved item.
 6. Delete the draft.

Parameters:
  - context: context.Context
  - draftID: string (Draft UUID)
  - author: string (publishing user id, passed explicitly)

Returns:
  - *Profil: The persisted record with statut "draft"
  - error: Validation failures with the complete violation list, or storage errors
*/
func (service *Service) Publish(context context.Context, draftID string, author string) (*Profil, error) {
	logger := ctxutil.GetLogger(context)

	draft, err := service.drafts.Get(context, draftID)
	if err != nil {
		return nil, err
	}

	// 1. Contractual gate, full violation list on failure.
	if err := ValidatePublication(&draft.Info, &draft.Assemblage); err != nil {
		return nil, err
	}

	// 2. Resolve selections; dangling ids drop out here.
	resolved, err := draft.Assemblage.Resolve(context, service.catalog)
	if err != nil {
		return nil, err
	}

	// 3. Assemble the record. Identity fields are fixed from this point on.
	now := time.Now().UTC()
	profil := &Profil{
		ID:   uuid.New(),
		Slug: slug.From(draft.Info.Nom),
		Info: draft.Info,

		CompetencesCles:   Names(resolved.Competences),
		Outils:            Names(resolved.Outils),
		ExemplesTaches:    Names(resolved.Taches),
		SectionsExpertise: Names(resolved.Regles),
		SectionsScope:     Names(resolved.Specifications),
		Tags:              Names(resolved.Tags),

		Statut:         StatutDraft,
		NbUtilisations: 0,
		NbEvaluations:  0,
		NoteMoyenne:    nil,

		CreePar:   author,
		CreeLe:    now,
		ModifieLe: now,
	}

	// 4. Persist. A slug collision comes back as a 409 Conflict.
	if err := service.repo.Create(context, profil); err != nil {
		return nil, err
	}

	// 5. Feed the popularity counters of the building blocks that made it in.
	if err := service.catalog.IncrementUsage(context, resolved.ItemIDs()); err != nil {
		// The profil exists; a failed counter bump is not worth failing publish.
		logger.WarnContext(context, "catalog_usage_increment_failed",
			slog.String("profil_id", profil.ID),
			slog.Any("error", err),
		)
	}

	// 6. The draft is folded into the profil; drop it.
	if err := service.drafts.Delete(context, draftID); err != nil {
		logger.WarnContext(context, "draft_cleanup_failed",
			slog.String("draft_id", draftID),
			slog.Any("error", err),
		)
	}

	logger.InfoContext(context, "profil_published",
		slog.String("profil_id", profil.ID),
		slog.String("slug", profil.Slug),
		slog.Int("dangling_references", resolved.Dangling),
	)

	profil.RecomputePopularite()
	return profil, nil
}

// # Published Profil Methods

/*
Get retrieves a published profil by UUID or slug.

Description: A 36-character identifier is treated as a UUID, anything else
as a slug. Canonical UUID strings are exactly 36 bytes and slugs of that
length are vanishingly rare, so the discrimination is safe in practice.

Parameters:
  - context: context.Context
  - idOrSlug: string

Returns:
  - *Profil: Hydrated record with its derived popularity score
  - error: dberr.ErrNotFound or execution errors
*/
func (service *Service) Get(context context.Context, idOrSlug string) (*Profil, error) {
	var (
		profil *Profil
		err    error
	)

	if len(idOrSlug) == 36 {
		profil, err = service.repo.GetByID(context, idOrSlug)
	} else {
		profil, err = service.repo.GetBySlug(context, idOrSlug)
	}
	if err != nil {
		return nil, err
	}

	profil.RecomputePopularite()
	return profil, nil
}

/*
List retrieves a filtered, paginated set of published profils.

Parameters:
  - context: context.Context
  - filter: Filter (domaine/statut/visibilite/query)
  - limit, offset: int

Returns:
  - []*Profil: Matching records with derived popularity scores
  - int: Total matching count
  - error: Execution errors
*/
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Profil, int, error) {
	if filter.Statut != "" && !filter.Statut.Valid() {
		return nil, 0, validate.RequiredError(FieldStatut, "Unknown status")
	}
	if filter.Visibilite != "" && !filter.Visibilite.Valid() {
		return nil, 0, validate.RequiredError(FieldVisibilite, "Unknown visibility")
	}

	profils, total, err := service.repo.List(context, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	for _, profil := range profils {
		profil.RecomputePopularite()
	}
	return profils, total, nil
}

/*
UpdateStatut transitions the lifecycle status of a published profil.

Description: "draft" is an entry state only: a profil can be promoted to
active and toggled between active and archived, but never demoted back to
draft. Archiving replaces deletion in this model.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - statut: Statut (target state)

Returns:
  - *Profil: Record after the transition
  - error: Validation, not-found or execution errors
*/
func (service *Service) UpdateStatut(context context.Context, id string, statut Statut) (*Profil, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldStatut, !statut.Valid(), "Unknown status")
	validator.Custom(FieldStatut, statut == StatutDraft, "Cannot transition back to draft")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateStatut(context, id, statut); err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "profil_statut_changed",
		slog.String("profil_id", id),
		slog.String("statut", string(statut)),
	)

	return service.Get(context, id)
}

/*
Evaluate folds a rating into the profil's aggregates.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - note: int (1..5)

Returns:
  - *Profil: Record with refreshed note_moyenne and popularity
  - error: Validation, not-found or execution errors
*/
func (service *Service) Evaluate(context context.Context, id string, note int) (*Profil, error) {
	validator := &validate.Validator{}
	validator.Range(FieldNote, note, 1, 5)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	profil, err := service.repo.AddEvaluation(context, id, note)
	if err != nil {
		return nil, err
	}

	profil.RecomputePopularite()
	return profil, nil
}

/*
RecordUsage bumps the usage counter of a profil.

Description: Called when an agent is instantiated from this profil, either
directly through the API or by the squad roster.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Profil: Record with the refreshed counter and popularity
  - error: dberr.ErrNotFound or execution errors
*/
func (service *Service) RecordUsage(context context.Context, id string) (*Profil, error) {
	profil, err := service.repo.IncrementUtilisations(context, id)
	if err != nil {
		return nil, err
	}

	profil.RecomputePopularite()
	return profil, nil
}
