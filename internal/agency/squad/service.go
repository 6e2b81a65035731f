// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package squad

import (
	"context"
	"log/slog"

	"github.com/atelia-app/atelia/internal/agency/project"
	"github.com/atelia-app/atelia/internal/core/profil"
	"github.com/atelia-app/atelia/internal/platform/validate"
	"github.com/atelia-app/atelia/pkg/slug"
	"github.com/atelia-app/atelia/pkg/uuid"
)

// ProjectFinder resolves projects. Satisfied by [project.Service].
type ProjectFinder interface {
	Get(context context.Context, id string) (*project.Project, error)
}

// ProfilProvider resolves profils and records their instantiations.
// Satisfied by [profil.Service].
type ProfilProvider interface {
	Get(context context.Context, idOrSlug string) (*profil.Profil, error)
	RecordUsage(context context.Context, id string) (*profil.Profil, error)
}

// Service orchestrates business rules for squads and agent staffing.
type Service struct {
	repo     Repository
	projects ProjectFinder
	profils  ProfilProvider
	logger   *slog.Logger
}

// NewService constructs a new squad [Service].
func NewService(repo Repository, projects ProjectFinder, profils ProfilProvider, logger *slog.Logger) *Service {
	return &Service{repo: repo, projects: projects, profils: profils, logger: logger}
}

/*
List provides a paginated search over squads.

Parameters:
  - context: context.Context
  - filter: Filter (Project scope, status)
  - limit, offset: int

Returns:
  - []*Squad: Hydrated list of matches, rosters excluded
  - int: Total record count for pagination
  - error: Validation or retrieval errors
*/
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Squad, int, error) {
	if filter.Statut != "" && !Statut(filter.Statut).Valid() {
		return nil, 0, validate.RequiredError(FieldStatut, "Unknown squad status")
	}
	return service.repo.List(context, filter, limit, offset)
}

/*
Get retrieves a single squad with its full roster.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Squad: Target entity, agents included
  - error: Not found or execution errors
*/
func (service *Service) Get(context context.Context, id string) (*Squad, error) {
	return service.repo.Get(context, id)
}

/*
Create validates business constraints before persisting a new squad.

Description: A squad may be formed without a project; when a project is
given it must resolve. New squads always start in the forming state.

Parameters:
  - context: context.Context
  - squad: *Squad

Returns:
  - error: Validation failures, unknown project, or storage errors
*/
func (service *Service) Create(context context.Context, squad *Squad) error {
	validator := &validate.Validator{}
	validator.Required(FieldNom, squad.Nom).MaxLen(FieldNom, squad.Nom, 200)
	if err := validator.Err(); err != nil {
		return err
	}

	if squad.ProjectID != nil {
		if _, err := service.projects.Get(context, *squad.ProjectID); err != nil {
			return err
		}
	}

	squad.ID = uuid.New()
	squad.Slug = slug.From(squad.Nom)
	squad.Statut = StatutForming

	return service.repo.Create(context, squad)
}

/*
Update applies changes to an existing squad record.

Description: The slug never moves. Attaching or detaching a project and
lifecycle transitions both go through this operation.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - squad: *Squad

Returns:
  - error: Validation or execution failures
*/
func (service *Service) Update(context context.Context, id string, squad *Squad) error {
	squad.ID = id

	validator := &validate.Validator{}
	validator.Required(FieldNom, squad.Nom).MaxLen(FieldNom, squad.Nom, 200)
	validator.Custom(FieldStatut, !squad.Statut.Valid(), "Unknown squad status")
	if err := validator.Err(); err != nil {
		return err
	}

	if squad.ProjectID != nil {
		if _, err := service.projects.Get(context, *squad.ProjectID); err != nil {
			return err
		}
	}

	return service.repo.Update(context, squad)
}

/*
Delete flags the squad record as deleted.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: Side-effect failures
*/
func (service *Service) Delete(context context.Context, id string) error {
	return service.repo.Delete(context, id)
}

/*
AddAgent instantiates a profil as a new agent on the squad's roster.

Description: The profil must exist and be in the active state. Each
instantiation feeds the profil usage counter, which drives its marketplace
popularity. When no display name is given the profil name is used.

Parameters:
  - context: context.Context
  - squadID: string (UUID)
  - profilID: string (UUID of a published profil)
  - nom: string (Optional agent display name)
  - role: *string (Optional role inside the squad)

Returns:
  - *Agent: Newly staffed agent
  - error: Unknown squad/profil, inactive profil, or execution failures
*/
func (service *Service) AddAgent(context context.Context, squadID, profilID, nom string, role *string) (*Agent, error) {
	if _, err := service.repo.Get(context, squadID); err != nil {
		return nil, err
	}

	source, err := service.profils.Get(context, profilID)
	if err != nil {
		return nil, err
	}
	if source.Statut != profil.StatutActive {
		return nil, validate.RequiredError(FieldProfilID, "Profil must be active to staff agents")
	}

	if nom == "" {
		nom = source.Nom
	}

	agent := &Agent{
		ID:       uuid.New(),
		SquadID:  squadID,
		ProfilID: source.ID,
		Nom:      nom,
		Role:     role,
	}

	if err := service.repo.AddAgent(context, agent); err != nil {
		return nil, err
	}

	// Instantiation counts as one profil usage. A failed counter update must
	// not undo the staffing itself.
	if _, err := service.profils.RecordUsage(context, source.ID); err != nil {
		service.logger.WarnContext(context, "profil_usage_increment_failed",
			slog.String("profil_id", source.ID),
			slog.String("error", err.Error()),
		)
	}

	service.logger.InfoContext(context, "agent_staffed",
		slog.String("squad_id", squadID),
		slog.String("agent_id", agent.ID),
		slog.String("profil_id", source.ID),
	)

	return agent, nil
}

/*
RemoveAgent detaches an agent from the squad's roster.

Parameters:
  - context: context.Context
  - squadID: string (UUID)
  - agentID: string (UUID)

Returns:
  - error: Not found or execution failures
*/
func (service *Service) RemoveAgent(context context.Context, squadID, agentID string) error {
	return service.repo.RemoveAgent(context, squadID, agentID)
}
