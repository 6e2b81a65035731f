// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package profil_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelia-app/atelia/internal/core/catalog"
	"github.com/atelia-app/atelia/internal/core/profil"
	"github.com/atelia-app/atelia/internal/platform/apperr"
	"github.com/atelia-app/atelia/internal/platform/dberr"
	"github.com/atelia-app/atelia/pkg/pointer"
)

// # Test Doubles

// fakeCatalogRepository is an in-memory [catalog.Repository].
type fakeCatalogRepository struct {
	items []*catalog.Item
}

func (repo *fakeCatalogRepository) ListByCategory(_ context.Context, category catalog.Category) ([]*catalog.Item, error) {
	var out []*catalog.Item
	for _, item := range repo.items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out, nil
}

func (repo *fakeCatalogRepository) ListAll(_ context.Context) ([]*catalog.Item, error) {
	return repo.items, nil
}

func (repo *fakeCatalogRepository) FindByID(_ context.Context, category catalog.Category, id string) (*catalog.Item, error) {
	for _, item := range repo.items {
		if item.Category == category && item.ID == id {
			return item, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *fakeCatalogRepository) Create(_ context.Context, item *catalog.Item) error {
	repo.items = append(repo.items, item)
	return nil
}

func (repo *fakeCatalogRepository) Deactivate(_ context.Context, _ catalog.Category, _ string) error {
	return nil
}

func (repo *fakeCatalogRepository) IncrementUsage(_ context.Context, ids []string) error {
	for _, id := range ids {
		for _, item := range repo.items {
			if item.ID == id {
				item.UsageCount++
			}
		}
	}
	return nil
}

// fakeProfilRepository is an in-memory [profil.Repository].
type fakeProfilRepository struct {
	profils map[string]*profil.Profil
}

func newFakeProfilRepository() *fakeProfilRepository {
	return &fakeProfilRepository{profils: make(map[string]*profil.Profil)}
}

func (repo *fakeProfilRepository) Create(_ context.Context, record *profil.Profil) error {
	for _, existing := range repo.profils {
		if existing.Slug == record.Slug {
			return apperr.Conflict("Resource already exists")
		}
	}
	stored := *record
	repo.profils[record.ID] = &stored
	return nil
}

func (repo *fakeProfilRepository) GetByID(_ context.Context, id string) (*profil.Profil, error) {
	if record, ok := repo.profils[id]; ok {
		copied := *record
		return &copied, nil
	}
	return nil, dberr.ErrNotFound
}

func (repo *fakeProfilRepository) GetBySlug(_ context.Context, slug string) (*profil.Profil, error) {
	for _, record := range repo.profils {
		if record.Slug == slug {
			copied := *record
			return &copied, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *fakeProfilRepository) List(_ context.Context, _ profil.Filter, _, _ int) ([]*profil.Profil, int, error) {
	out := make([]*profil.Profil, 0, len(repo.profils))
	for _, record := range repo.profils {
		copied := *record
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (repo *fakeProfilRepository) UpdateStatut(_ context.Context, id string, statut profil.Statut) error {
	record, ok := repo.profils[id]
	if !ok {
		return dberr.ErrNotFound
	}
	record.Statut = statut
	return nil
}

func (repo *fakeProfilRepository) AddEvaluation(_ context.Context, id string, note int) (*profil.Profil, error) {
	record, ok := repo.profils[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	current := 0.0
	if record.NoteMoyenne != nil {
		current = *record.NoteMoyenne
	}
	updated := (current*float64(record.NbEvaluations) + float64(note)) / float64(record.NbEvaluations+1)
	record.NbEvaluations++
	record.NoteMoyenne = &updated
	copied := *record
	return &copied, nil
}

func (repo *fakeProfilRepository) IncrementUtilisations(_ context.Context, id string) (*profil.Profil, error) {
	record, ok := repo.profils[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	record.NbUtilisations++
	copied := *record
	return &copied, nil
}

// fakeDraftRepository is an in-memory [profil.DraftRepository].
type fakeDraftRepository struct {
	drafts map[string]*profil.Draft
}

func newFakeDraftRepository() *fakeDraftRepository {
	return &fakeDraftRepository{drafts: make(map[string]*profil.Draft)}
}

func (repo *fakeDraftRepository) Save(_ context.Context, draft *profil.Draft) error {
	stored := *draft
	repo.drafts[draft.ID] = &stored
	return nil
}

func (repo *fakeDraftRepository) Get(_ context.Context, id string) (*profil.Draft, error) {
	if draft, ok := repo.drafts[id]; ok {
		copied := *draft
		return &copied, nil
	}
	return nil, apperr.NotFound("Draft")
}

func (repo *fakeDraftRepository) Delete(_ context.Context, id string) error {
	delete(repo.drafts, id)
	return nil
}

// newTestService wires a service with a pre-seeded catalog: one skill and
// two tasks, the minimum a draft needs to pass the publish gate.
func newTestService(t *testing.T) (*profil.Service, *fakeCatalogRepository, *fakeProfilRepository, *fakeDraftRepository, []string) {
	t.Helper()

	catalogRepo := &fakeCatalogRepository{}
	catalogService := catalog.NewService(catalogRepo)

	skill, err := catalogService.Add(context.Background(), catalog.CategorySkills, "Analyse financière", nil, nil)
	require.NoError(t, err)
	taskA, err := catalogService.Add(context.Background(), catalog.CategoryTasks, "Audit des comptes", nil, nil)
	require.NoError(t, err)
	taskB, err := catalogService.Add(context.Background(), catalog.CategoryTasks, "Prévision de trésorerie", nil, nil)
	require.NoError(t, err)

	profilRepo := newFakeProfilRepository()
	draftRepo := newFakeDraftRepository()
	service := profil.NewService(profilRepo, draftRepo, catalogService)

	return service, catalogRepo, profilRepo, draftRepo, []string{skill.ID, taskA.ID, taskB.ID}
}

// composeMinimalDraft drives the service through the wizard up to a
// publishable state and returns the draft id.
func composeMinimalDraft(t *testing.T, service *profil.Service, itemIDs []string) string {
	t.Helper()
	ctx := context.Background()

	draft, err := service.CreateDraft(ctx, "user-1")
	require.NoError(t, err)

	info := profil.NewInfo()
	info.Nom = "Expert Test"
	info.Domaine = "Finance"
	info.DescriptionCourte = strings.Repeat("d", 20)
	info.IdentityPrompt = strings.Repeat("p", 50)

	_, err = service.UpdateDraftInfo(ctx, draft.ID, info)
	require.NoError(t, err)

	_, err = service.AddSelection(ctx, draft.ID, catalog.CategorySkills, itemIDs[0])
	require.NoError(t, err)
	_, err = service.AddSelection(ctx, draft.ID, catalog.CategoryTasks, itemIDs[1])
	require.NoError(t, err)
	_, err = service.AddSelection(ctx, draft.ID, catalog.CategoryTasks, itemIDs[2])
	require.NoError(t, err)

	return draft.ID
}

// # Draft Lifecycle

/*
TestService_CreateDraft verifies defaults and the zero starting score.
*/
func TestService_CreateDraft(t *testing.T) {
	service, _, _, _, _ := newTestService(t)

	draft, err := service.CreateDraft(context.Background(), "user-1")
	require.NoError(t, err)

	assert.NotEmpty(t, draft.ID)
	assert.Equal(t, "user-1", draft.CreePar)
	assert.Equal(t, profil.NiveauIntermediate, draft.Info.NiveauComplexite)
	assert.Equal(t, profil.VisibilitePrivate, draft.Info.Visibilite)
	assert.Equal(t, 0, draft.ScoreCompletude)
}

/*
TestService_ScoreEvolvesWithEdits verifies the score is recomputed on every
mutation of the draft.
*/
func TestService_ScoreEvolvesWithEdits(t *testing.T) {
	service, _, _, _, itemIDs := newTestService(t)
	ctx := context.Background()

	draft, err := service.CreateDraft(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, draft.ScoreCompletude)

	info := profil.NewInfo()
	info.Nom = "Expert Test"
	info.Domaine = "Finance"

	updated, err := service.UpdateDraftInfo(ctx, draft.ID, info)
	require.NoError(t, err)
	assert.Equal(t, 15, updated.ScoreCompletude) // +10 nom, +5 domaine

	_, err = service.AddSelection(ctx, draft.ID, catalog.CategoryTasks, itemIDs[1])
	require.NoError(t, err)
	withTask, err := service.GetDraft(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, withTask.ScoreCompletude) // one task is below the threshold of 3
}

// # Publication Pipeline

/*
TestService_Publish_MinimalValid is the end-to-end minimal publish scenario:
a conforming draft yields a draft-status profil with zero usage and the
expected slug, the catalog counters move, and the draft is cleaned up.
*/
func TestService_Publish_MinimalValid(t *testing.T) {
	service, catalogRepo, _, draftRepo, itemIDs := newTestService(t)
	ctx := context.Background()

	draftID := composeMinimalDraft(t, service, itemIDs)

	published, err := service.Publish(ctx, draftID, "user-1")
	require.NoError(t, err)

	assert.Equal(t, profil.StatutDraft, published.Statut)
	assert.Equal(t, 0, published.NbUtilisations)
	assert.Equal(t, "expert-test", published.Slug)
	assert.Nil(t, published.NoteMoyenne)
	assert.Equal(t, "user-1", published.CreePar)

	assert.Equal(t, []string{"Analyse financière"}, published.CompetencesCles)
	assert.ElementsMatch(t, []string{"Audit des comptes", "Prévision de trésorerie"}, published.ExemplesTaches)

	// Catalog usage counters moved for every selected item.
	for _, item := range catalogRepo.items {
		assert.Equal(t, 1, item.UsageCount, "usage for %s", item.Name)
	}

	// The draft was folded into the profil.
	_, err = draftRepo.Get(ctx, draftID)
	assert.Error(t, err)
}

/*
TestService_Publish_InvalidDraft verifies a failing gate blocks persistence
and keeps the draft alive.
*/
func TestService_Publish_InvalidDraft(t *testing.T) {
	service, _, profilRepo, draftRepo, _ := newTestService(t)
	ctx := context.Background()

	draft, err := service.CreateDraft(ctx, "user-1")
	require.NoError(t, err)

	_, err = service.Publish(ctx, draft.ID, "user-1")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	assert.NotEmpty(t, appError.Details)

	assert.Empty(t, profilRepo.profils)
	_, err = draftRepo.Get(ctx, draft.ID)
	assert.NoError(t, err)
}

/*
TestService_Publish_DanglingTolerance verifies that a selection pointing at
a vanished catalog item is skipped, not fatal.
*/
func TestService_Publish_DanglingTolerance(t *testing.T) {
	service, _, _, _, itemIDs := newTestService(t)
	ctx := context.Background()

	draftID := composeMinimalDraft(t, service, itemIDs)

	// A tool that never existed in the catalog.
	_, err := service.AddSelection(ctx, draftID, catalog.CategoryTools, "tool-gone")
	require.NoError(t, err)

	published, err := service.Publish(ctx, draftID, "user-1")
	require.NoError(t, err)

	assert.Empty(t, published.Outils)
	assert.Equal(t, []string{"Analyse financière"}, published.CompetencesCles)
}

/*
TestService_Publish_DuplicateSlug verifies a slug collision surfaces as a
conflict instead of silently overwriting.
*/
func TestService_Publish_DuplicateSlug(t *testing.T) {
	service, _, _, _, itemIDs := newTestService(t)
	ctx := context.Background()

	first := composeMinimalDraft(t, service, itemIDs)
	_, err := service.Publish(ctx, first, "user-1")
	require.NoError(t, err)

	second := composeMinimalDraft(t, service, itemIDs)
	_, err = service.Publish(ctx, second, "user-2")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "CONFLICT", appError.Code)
}

// # Published Profil Operations

/*
TestService_GetByIdOrSlug verifies the 36-character discrimination between
UUID and slug lookups.
*/
func TestService_GetByIdOrSlug(t *testing.T) {
	service, _, _, _, itemIDs := newTestService(t)
	ctx := context.Background()

	draftID := composeMinimalDraft(t, service, itemIDs)
	published, err := service.Publish(ctx, draftID, "user-1")
	require.NoError(t, err)

	byID, err := service.Get(ctx, published.ID)
	require.NoError(t, err)
	assert.Equal(t, published.ID, byID.ID)

	bySlug, err := service.Get(ctx, "expert-test")
	require.NoError(t, err)
	assert.Equal(t, published.ID, bySlug.ID)
}

/*
TestService_UpdateStatut verifies the lifecycle transitions and the
no-demotion-to-draft rule.
*/
func TestService_UpdateStatut(t *testing.T) {
	service, _, _, _, itemIDs := newTestService(t)
	ctx := context.Background()

	draftID := composeMinimalDraft(t, service, itemIDs)
	published, err := service.Publish(ctx, draftID, "user-1")
	require.NoError(t, err)

	active, err := service.UpdateStatut(ctx, published.ID, profil.StatutActive)
	require.NoError(t, err)
	assert.Equal(t, profil.StatutActive, active.Statut)

	archived, err := service.UpdateStatut(ctx, published.ID, profil.StatutArchived)
	require.NoError(t, err)
	assert.Equal(t, profil.StatutArchived, archived.Statut)

	_, err = service.UpdateStatut(ctx, published.ID, profil.StatutDraft)
	assert.Error(t, err)
}

/*
TestService_Evaluate verifies rating aggregation and range validation.
*/
func TestService_Evaluate(t *testing.T) {
	service, _, _, _, itemIDs := newTestService(t)
	ctx := context.Background()

	draftID := composeMinimalDraft(t, service, itemIDs)
	published, err := service.Publish(ctx, draftID, "user-1")
	require.NoError(t, err)

	rated, err := service.Evaluate(ctx, published.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 1, rated.NbEvaluations)
	require.NotNil(t, rated.NoteMoyenne)
	assert.InDelta(t, 4.0, *rated.NoteMoyenne, 0.001)

	again, err := service.Evaluate(ctx, published.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, again.NbEvaluations)
	assert.InDelta(t, 4.5, *again.NoteMoyenne, 0.001)

	_, err = service.Evaluate(ctx, published.ID, 6)
	assert.Error(t, err)
	_, err = service.Evaluate(ctx, published.ID, 0)
	assert.Error(t, err)
}

// # Derived Popularity

/*
TestPopularityScore verifies the documented formula, including the reference
case round(247*0.3 + 4.8*20) = 170.
*/
func TestPopularityScore(t *testing.T) {
	assert.Equal(t, 170, profil.PopularityScore(247, pointer.To(4.8)))
	assert.Equal(t, 0, profil.PopularityScore(0, nil))
	assert.Equal(t, 100, profil.PopularityScore(0, pointer.To(5.0)))
	assert.Equal(t, 3, profil.PopularityScore(10, nil))
}

/*
TestService_RecordUsage verifies the usage counter feeds the popularity score.
*/
func TestService_RecordUsage(t *testing.T) {
	service, _, _, _, itemIDs := newTestService(t)
	ctx := context.Background()

	draftID := composeMinimalDraft(t, service, itemIDs)
	published, err := service.Publish(ctx, draftID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, published.ScorePopularite)

	used, err := service.RecordUsage(ctx, published.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, used.NbUtilisations)
	assert.Equal(t, 0, used.ScorePopularite) // round(0.3) = 0

	for i := 0; i < 9; i++ {
		used, err = service.RecordUsage(ctx, published.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, 10, used.NbUtilisations)
	assert.Equal(t, 3, used.ScorePopularite) // round(3.0) = 3
}
