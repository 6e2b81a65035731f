// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package project

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelia-app/atelia/internal/agency/client"
	"github.com/atelia-app/atelia/internal/platform/apperr"
	"github.com/atelia-app/atelia/internal/platform/dberr"
	"github.com/atelia-app/atelia/pkg/pointer"
)

// fakeClientFinder resolves a fixed set of client ids.
type fakeClientFinder struct {
	clients map[string]*client.Client
}

func (f *fakeClientFinder) Get(_ context.Context, id string) (*client.Client, error) {
	if c, ok := f.clients[id]; ok {
		return c, nil
	}
	return nil, dberr.ErrNotFound
}

// fakeRepository is an in-memory Repository for service tests.
type fakeRepository struct {
	projects map[string]*Project
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{projects: make(map[string]*Project)}
}

func (f *fakeRepository) List(_ context.Context, filter Filter, limit, offset int) ([]*Project, int, error) {
	var matches []*Project
	for _, p := range f.projects {
		if p.DeletedAt != nil {
			continue
		}
		if filter.ClientID != "" && p.ClientID != filter.ClientID {
			continue
		}
		if filter.Statut != "" && string(p.Statut) != filter.Statut {
			continue
		}
		matches = append(matches, p)
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

func (f *fakeRepository) Get(_ context.Context, id string) (*Project, error) {
	if p, ok := f.projects[id]; ok && p.DeletedAt == nil {
		return p, nil
	}
	return nil, dberr.ErrNotFound
}

func (f *fakeRepository) Create(_ context.Context, project *Project) error {
	for _, existing := range f.projects {
		if existing.Slug == project.Slug && existing.DeletedAt == nil {
			return apperr.Conflict("Slug already exists")
		}
	}
	f.projects[project.ID] = project
	return nil
}

func (f *fakeRepository) Update(_ context.Context, project *Project) error {
	existing, ok := f.projects[project.ID]
	if !ok || existing.DeletedAt != nil {
		return dberr.ErrNotFound
	}
	project.Slug = existing.Slug
	project.Statut = existing.Statut
	f.projects[project.ID] = project
	return nil
}

func (f *fakeRepository) UpdateStatut(_ context.Context, id string, statut Statut) error {
	p, ok := f.projects[id]
	if !ok || p.DeletedAt != nil {
		return dberr.ErrNotFound
	}
	p.Statut = statut
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	p, ok := f.projects[id]
	if !ok || p.DeletedAt != nil {
		return dberr.ErrNotFound
	}
	now := time.Now()
	p.DeletedAt = &now
	return nil
}

const testClientID = "0193d5c2-0000-7000-8000-000000000001"

func newTestService(repo *fakeRepository) *Service {
	finder := &fakeClientFinder{clients: map[string]*client.Client{
		testClientID: {ID: testClientID, Nom: "Nexa Conseil", Slug: "nexa-conseil"},
	}}
	return NewService(repo, finder)
}

func TestService_Create(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	project := &Project{ClientID: testClientID, Nom: "Refonte SI Finance"}
	require.NoError(t, service.Create(context.Background(), project))

	assert.NotEmpty(t, project.ID)
	assert.Equal(t, "refonte-si-finance", project.Slug)
	assert.Equal(t, StatutDraft, project.Statut)
}

func TestService_Create_UnknownClient(t *testing.T) {
	service := newTestService(newFakeRepository())

	project := &Project{ClientID: "0193d5c2-0000-7000-8000-00000000dead", Nom: "Refonte SI Finance"}
	err := service.Create(context.Background(), project)
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

func TestService_Create_InvalidDatesAndBudget(t *testing.T) {
	service := newTestService(newFakeRepository())

	debut := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	fin := debut.AddDate(0, -1, 0)

	project := &Project{
		ClientID:  testClientID,
		Nom:       "Refonte SI Finance",
		DateDebut: &debut,
		DateFin:   &fin,
		Budget:    pointer.To(-500.0),
	}
	err := service.Create(context.Background(), project)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)

	fields := make([]string, 0, len(appError.Details))
	for _, detail := range appError.Details {
		fields = append(fields, detail.Field)
	}
	assert.Contains(t, fields, FieldDateFin)
	assert.Contains(t, fields, FieldBudget)
}

func TestService_UpdateStatut_Lifecycle(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	project := &Project{ClientID: testClientID, Nom: "Refonte SI Finance"}
	require.NoError(t, service.Create(context.Background(), project))

	// Draft moves to active, then paused.
	updated, err := service.UpdateStatut(context.Background(), project.ID, StatutActive)
	require.NoError(t, err)
	assert.Equal(t, StatutActive, updated.Statut)

	updated, err = service.UpdateStatut(context.Background(), project.ID, StatutPaused)
	require.NoError(t, err)
	assert.Equal(t, StatutPaused, updated.Statut)

	// Demotion back to draft is rejected.
	_, err = service.UpdateStatut(context.Background(), project.ID, StatutDraft)
	require.Error(t, err)

	// Archived is terminal.
	_, err = service.UpdateStatut(context.Background(), project.ID, StatutArchived)
	require.NoError(t, err)
	_, err = service.UpdateStatut(context.Background(), project.ID, StatutActive)
	require.Error(t, err)
}

func TestService_Update_KeepsClientAndStatut(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	project := &Project{ClientID: testClientID, Nom: "Refonte SI Finance"}
	require.NoError(t, service.Create(context.Background(), project))

	updated := &Project{Nom: "Refonte SI Finance 2027", ClientID: "ignored"}
	require.NoError(t, service.Update(context.Background(), project.ID, updated))

	stored, err := service.Get(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Equal(t, "Refonte SI Finance 2027", stored.Nom)
	assert.Equal(t, testClientID, stored.ClientID)
	assert.Equal(t, StatutDraft, stored.Statut)
	assert.Equal(t, "refonte-si-finance", stored.Slug)
}

func TestService_List_FilterByStatut(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo)

	first := &Project{ClientID: testClientID, Nom: "Refonte SI Finance"}
	require.NoError(t, service.Create(context.Background(), first))
	second := &Project{ClientID: testClientID, Nom: "Audit RGPD"}
	require.NoError(t, service.Create(context.Background(), second))

	_, err := service.UpdateStatut(context.Background(), first.ID, StatutActive)
	require.NoError(t, err)

	projects, total, err := service.List(context.Background(), Filter{Statut: "active"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, projects, 1)
	assert.Equal(t, first.ID, projects[0].ID)

	// Unknown status filter is rejected up front.
	_, _, err = service.List(context.Background(), Filter{Statut: "bogus"}, 10, 0)
	assert.Error(t, err)
}
