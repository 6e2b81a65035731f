// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelia-app/atelia/internal/core/catalog"
	"github.com/atelia-app/atelia/internal/platform/apperr"
	"github.com/atelia-app/atelia/internal/platform/dberr"
)

// fakeRepository is an in-memory [catalog.Repository] for service tests.
type fakeRepository struct {
	items []*catalog.Item
}

func (repo *fakeRepository) ListByCategory(_ context.Context, category catalog.Category) ([]*catalog.Item, error) {
	var out []*catalog.Item
	for _, item := range repo.items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out, nil
}

func (repo *fakeRepository) ListAll(_ context.Context) ([]*catalog.Item, error) {
	return repo.items, nil
}

func (repo *fakeRepository) FindByID(_ context.Context, category catalog.Category, id string) (*catalog.Item, error) {
	for _, item := range repo.items {
		if item.Category == category && item.ID == id {
			return item, nil
		}
	}
	return nil, dberr.ErrNotFound
}

func (repo *fakeRepository) Create(_ context.Context, item *catalog.Item) error {
	repo.items = append(repo.items, item)
	return nil
}

func (repo *fakeRepository) Deactivate(_ context.Context, category catalog.Category, id string) error {
	for _, item := range repo.items {
		if item.Category == category && item.ID == id && item.IsActive {
			item.IsActive = false
			return nil
		}
	}
	return dberr.ErrNotFound
}

func (repo *fakeRepository) IncrementUsage(_ context.Context, ids []string) error {
	for _, id := range ids {
		for _, item := range repo.items {
			if item.ID == id {
				item.UsageCount++
			}
		}
	}
	return nil
}

/*
TestCatalog_Add verifies item creation assigns an id and sane defaults.
*/
func TestCatalog_Add(t *testing.T) {
	service := catalog.NewService(&fakeRepository{})

	item, err := service.Add(context.Background(), catalog.CategorySkills, "Analyse financière", nil, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, catalog.CategorySkills, item.Category)
	assert.True(t, item.IsActive)
	assert.Equal(t, 0, item.UsageCount)
}

/*
TestCatalog_Add_BlankName verifies that empty and whitespace-only names are rejected.
*/
func TestCatalog_Add_BlankName(t *testing.T) {
	service := catalog.NewService(&fakeRepository{})

	for _, name := range []string{"", "   ", "\t\n"} {
		_, err := service.Add(context.Background(), catalog.CategoryTools, name, nil, nil)
		require.Error(t, err)

		appError := apperr.As(err)
		require.NotNil(t, appError)
		assert.Equal(t, "VALIDATION_ERROR", appError.Code)
	}
}

/*
TestCatalog_Add_UnknownCategory verifies the category partition is closed.
*/
func TestCatalog_Add_UnknownCategory(t *testing.T) {
	service := catalog.NewService(&fakeRepository{})

	_, err := service.Add(context.Background(), catalog.Category("hobbies"), "Origami", nil, nil)
	assert.Error(t, err)
}

/*
TestCatalog_ListAll_Grouped verifies all six categories are always present.
*/
func TestCatalog_ListAll_Grouped(t *testing.T) {
	repo := &fakeRepository{}
	service := catalog.NewService(repo)

	_, err := service.Add(context.Background(), catalog.CategoryTasks, "Audit des comptes", nil, nil)
	require.NoError(t, err)

	grouped, err := service.ListAll(context.Background())
	require.NoError(t, err)

	assert.Len(t, grouped, len(catalog.AllCategories))
	assert.Len(t, grouped[catalog.CategoryTasks], 1)
	assert.Empty(t, grouped[catalog.CategoryRules])
	assert.NotNil(t, grouped[catalog.CategoryRules])
}

/*
TestCatalog_FindByID_Absent verifies that a missing id surfaces as a soft
not-found error, so callers can skip dangling references.
*/
func TestCatalog_FindByID_Absent(t *testing.T) {
	service := catalog.NewService(&fakeRepository{})

	_, err := service.FindByID(context.Background(), catalog.CategorySkills, "no-such-id")
	assert.ErrorIs(t, err, dberr.ErrNotFound)
}

/*
TestCatalog_Deactivate verifies soft deactivation keeps the item resolvable.
*/
func TestCatalog_Deactivate(t *testing.T) {
	repo := &fakeRepository{}
	service := catalog.NewService(repo)

	item, err := service.Add(context.Background(), catalog.CategoryTags, "Fintech", nil, nil)
	require.NoError(t, err)

	require.NoError(t, service.Deactivate(context.Background(), catalog.CategoryTags, item.ID))

	// Still resolvable for existing assemblages, just inactive.
	found, err := service.FindByID(context.Background(), catalog.CategoryTags, item.ID)
	require.NoError(t, err)
	assert.False(t, found.IsActive)
}
