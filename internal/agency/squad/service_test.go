// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package squad

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelia-app/atelia/internal/agency/project"
	"github.com/atelia-app/atelia/internal/core/profil"
	"github.com/atelia-app/atelia/internal/platform/apperr"
	"github.com/atelia-app/atelia/internal/platform/dberr"
)

// fakeProjectFinder resolves a fixed set of project ids.
type fakeProjectFinder struct {
	projects map[string]*project.Project
}

func (f *fakeProjectFinder) Get(_ context.Context, id string) (*project.Project, error) {
	if p, ok := f.projects[id]; ok {
		return p, nil
	}
	return nil, dberr.ErrNotFound
}

// fakeProfilProvider serves profils and counts instantiations.
type fakeProfilProvider struct {
	profils map[string]*profil.Profil
}

func (f *fakeProfilProvider) Get(_ context.Context, idOrSlug string) (*profil.Profil, error) {
	if p, ok := f.profils[idOrSlug]; ok {
		return p, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeProfilProvider) RecordUsage(_ context.Context, id string) (*profil.Profil, error) {
	p, ok := f.profils[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	p.NbUtilisations++
	return p, nil
}

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	squads map[string]*Squad
	agents map[string]*Agent
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{squads: make(map[string]*Squad), agents: make(map[string]*Agent)}
}

func (f *fakeRepository) List(_ context.Context, filter Filter, limit, offset int) ([]*Squad, int, error) {
	var matches []*Squad
	for _, s := range f.squads {
		if s.DeletedAt != nil {
			continue
		}
		if filter.Statut != "" && string(s.Statut) != filter.Statut {
			continue
		}
		if filter.ProjectID != "" && (s.ProjectID == nil || *s.ProjectID != filter.ProjectID) {
			continue
		}
		matches = append(matches, s)
	}

	total := len(matches)
	if offset >= len(matches) {
		return nil, total, nil
	}
	matches = matches[offset:]
	if limit < len(matches) {
		matches = matches[:limit]
	}
	return matches, total, nil
}

func (f *fakeRepository) Get(_ context.Context, id string) (*Squad, error) {
	s, ok := f.squads[id]
	if !ok || s.DeletedAt != nil {
		return nil, dberr.ErrNotFound
	}

	hydrated := *s
	hydrated.Agents = nil
	for _, a := range f.agents {
		if a.SquadID == id {
			hydrated.Agents = append(hydrated.Agents, a)
		}
	}
	return &hydrated, nil
}

func (f *fakeRepository) Create(_ context.Context, squad *Squad) error {
	for _, existing := range f.squads {
		if existing.Slug == squad.Slug && existing.DeletedAt == nil {
			return apperr.Conflict("Slug already exists")
		}
	}
	f.squads[squad.ID] = squad
	return nil
}

func (f *fakeRepository) Update(_ context.Context, squad *Squad) error {
	existing, ok := f.squads[squad.ID]
	if !ok || existing.DeletedAt != nil {
		return dberr.ErrNotFound
	}
	squad.Slug = existing.Slug
	f.squads[squad.ID] = squad
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	s, ok := f.squads[id]
	if !ok || s.DeletedAt != nil {
		return dberr.ErrNotFound
	}
	now := time.Now()
	s.DeletedAt = &now
	return nil
}

func (f *fakeRepository) AddAgent(_ context.Context, agent *Agent) error {
	agent.CreeLe = time.Now()
	f.agents[agent.ID] = agent
	return nil
}

func (f *fakeRepository) RemoveAgent(_ context.Context, squadID, agentID string) error {
	a, ok := f.agents[agentID]
	if !ok || a.SquadID != squadID {
		return dberr.ErrNotFound
	}
	delete(f.agents, agentID)
	return nil
}

const (
	testProjectID     = "0193d5c2-0000-7000-8000-000000000010"
	testProfilID      = "0193d5c2-0000-7000-8000-000000000020"
	testDraftProfilID = "0193d5c2-0000-7000-8000-000000000021"
)

func newTestService(repo *fakeRepository) (*Service, *fakeProfilProvider) {
	projects := &fakeProjectFinder{projects: map[string]*project.Project{
		testProjectID: {ID: testProjectID, Nom: "Refonte SI Finance"},
	}}
	profils := &fakeProfilProvider{profils: map[string]*profil.Profil{
		testProfilID:      {ID: testProfilID, Statut: profil.StatutActive, Info: profil.Info{Nom: "Expert Comptable PME"}},
		testDraftProfilID: {ID: testDraftProfilID, Statut: profil.StatutDraft, Info: profil.Info{Nom: "Juriste Contrats"}},
	}}
	return NewService(repo, projects, profils, slog.Default()), profils
}

func createTestSquad(t *testing.T, service *Service) *Squad {
	t.Helper()
	squad := &Squad{Nom: "Squad Finance"}
	require.NoError(t, service.Create(context.Background(), squad))
	return squad
}

func TestService_Create(t *testing.T) {
	service, _ := newTestService(newFakeRepository())

	squad := createTestSquad(t, service)
	assert.NotEmpty(t, squad.ID)
	assert.Equal(t, "squad-finance", squad.Slug)
	assert.Equal(t, StatutForming, squad.Statut)
	assert.Nil(t, squad.ProjectID)
}

func TestService_Create_UnknownProject(t *testing.T) {
	service, _ := newTestService(newFakeRepository())

	unknown := "0193d5c2-0000-7000-8000-00000000dead"
	squad := &Squad{Nom: "Squad Finance", ProjectID: &unknown}
	err := service.Create(context.Background(), squad)
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

func TestService_AddAgent_IncrementsProfilUsage(t *testing.T) {
	service, profils := newTestService(newFakeRepository())
	squad := createTestSquad(t, service)

	agent, err := service.AddAgent(context.Background(), squad.ID, testProfilID, "", nil)
	require.NoError(t, err)

	// Display name defaults to the profil name.
	assert.Equal(t, "Expert Comptable PME", agent.Nom)
	assert.Equal(t, testProfilID, agent.ProfilID)
	assert.Equal(t, 1, profils.profils[testProfilID].NbUtilisations)

	// The agent shows up on the hydrated roster.
	hydrated, err := service.Get(context.Background(), squad.ID)
	require.NoError(t, err)
	require.Len(t, hydrated.Agents, 1)
	assert.Equal(t, agent.ID, hydrated.Agents[0].ID)
}

func TestService_AddAgent_RejectsInactiveProfil(t *testing.T) {
	service, profils := newTestService(newFakeRepository())
	squad := createTestSquad(t, service)

	_, err := service.AddAgent(context.Background(), squad.ID, testDraftProfilID, "", nil)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.Zero(t, profils.profils[testDraftProfilID].NbUtilisations)
}

func TestService_RemoveAgent(t *testing.T) {
	service, _ := newTestService(newFakeRepository())
	squad := createTestSquad(t, service)

	agent, err := service.AddAgent(context.Background(), squad.ID, testProfilID, "Marge", nil)
	require.NoError(t, err)
	assert.Equal(t, "Marge", agent.Nom)

	require.NoError(t, service.RemoveAgent(context.Background(), squad.ID, agent.ID))

	hydrated, err := service.Get(context.Background(), squad.ID)
	require.NoError(t, err)
	assert.Empty(t, hydrated.Agents)

	// Removing twice reports not found.
	err = service.RemoveAgent(context.Background(), squad.ID, agent.ID)
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}
