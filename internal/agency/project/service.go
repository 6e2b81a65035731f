// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package project

import (
	"context"

	"github.com/atelia-app/atelia/internal/agency/client"
	"github.com/atelia-app/atelia/internal/platform/validate"
	"github.com/atelia-app/atelia/pkg/slug"
	"github.com/atelia-app/atelia/pkg/uuid"
)

// ClientFinder resolves client accounts. Satisfied by [client.Service].
type ClientFinder interface {
	Get(context context.Context, id string) (*client.Client, error)
}

// Service orchestrates business rules for client engagements.
type Service struct {
	repo    Repository
	clients ClientFinder
}

// NewService constructs a new project [Service].
func NewService(repo Repository, clients ClientFinder) *Service {
	return &Service{repo: repo, clients: clients}
}

/*
List provides a paginated search over projects.

Parameters:
  - context: context.Context
  - filter: Filter (Client scope, status, search query)
  - limit, offset: int

Returns:
  - []*Project: Hydrated list of matches
  - int: Total record count for pagination
  - error: Validation or retrieval errors
*/
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Project, int, error) {
	if filter.Statut != "" && !Statut(filter.Statut).Valid() {
		return nil, 0, validate.RequiredError(FieldStatut, "Unknown project status")
	}
	return service.repo.List(context, filter, limit, offset)
}

/*
Get retrieves a single project.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Project: Target entity
  - error: Not found or execution errors
*/
func (service *Service) Get(context context.Context, id string) (*Project, error) {
	return service.repo.Get(context, id)
}

// validateFields runs the shared field rules for create and update.
func validateFields(project *Project) error {
	validator := &validate.Validator{}

	validator.Required(FieldNom, project.Nom).MaxLen(FieldNom, project.Nom, 200)
	validator.Required(FieldClientID, project.ClientID)

	if project.DateDebut != nil && project.DateFin != nil {
		validator.Custom(FieldDateFin, project.DateFin.Before(*project.DateDebut),
			"Must not be earlier than date_debut")
	}
	if project.Budget != nil {
		validator.Custom(FieldBudget, *project.Budget < 0, "Must not be negative")
	}

	return validator.Err()
}

/*
Create validates business constraints before persisting a new project.

Description: The owning client must exist and be active. New projects always
start in the draft state; the slug is derived from the name once at creation.

Parameters:
  - context: context.Context
  - project: *Project

Returns:
  - error: Validation failures, unknown client, or storage errors
*/
func (service *Service) Create(context context.Context, project *Project) error {
	if err := validateFields(project); err != nil {
		return err
	}

	// The owning client must resolve before we accept the engagement.
	if _, err := service.clients.Get(context, project.ClientID); err != nil {
		return err
	}

	project.ID = uuid.New()
	project.Slug = slug.From(project.Nom)
	project.Statut = StatutDraft

	return service.repo.Create(context, project)
}

/*
Update applies metadata changes to an existing project record.

Description: The slug, owning client and lifecycle state are immutable here;
status moves only through [Service.UpdateStatut].

Parameters:
  - context: context.Context
  - id: string (UUID)
  - project: *Project

Returns:
  - error: Validation or execution failures
*/
func (service *Service) Update(context context.Context, id string, project *Project) error {
	current, err := service.repo.Get(context, id)
	if err != nil {
		return err
	}

	project.ID = id
	project.ClientID = current.ClientID

	if err := validateFields(project); err != nil {
		return err
	}

	return service.repo.Update(context, project)
}

/*
UpdateStatut moves a project to a new lifecycle state.

Description: Draft is an entry-only state and archived is terminal. All other
moves between active, paused, completed and archived are allowed.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - statut: Statut (Target state)

Returns:
  - *Project: Refreshed entity after the transition
  - error: Validation, transition, or execution failures
*/
func (service *Service) UpdateStatut(context context.Context, id string, statut Statut) (*Project, error) {
	if !statut.Valid() {
		return nil, validate.RequiredError(FieldStatut, "Unknown project status")
	}
	if statut == StatutDraft {
		return nil, validate.RequiredError(FieldStatut, "Cannot transition back to draft")
	}

	current, err := service.repo.Get(context, id)
	if err != nil {
		return nil, err
	}
	if current.Statut == StatutArchived {
		return nil, validate.RequiredError(FieldStatut, "Archived projects cannot change state")
	}

	if err := service.repo.UpdateStatut(context, id, statut); err != nil {
		return nil, err
	}

	return service.repo.Get(context, id)
}

/*
Delete flags the project record as deleted.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: Side-effect failures
*/
func (service *Service) Delete(context context.Context, id string) error {
	return service.repo.Delete(context, id)
}
