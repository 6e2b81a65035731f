// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package profil_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelia-app/atelia/internal/core/catalog"
	"github.com/atelia-app/atelia/internal/core/profil"
	"github.com/atelia-app/atelia/internal/platform/dberr"
)

// fakeFinder resolves item ids from an in-memory map keyed by category+id.
type fakeFinder struct {
	items map[string]*catalog.Item
}

func (finder *fakeFinder) FindByID(_ context.Context, category catalog.Category, id string) (*catalog.Item, error) {
	if item, ok := finder.items[string(category)+"/"+id]; ok {
		return item, nil
	}
	return nil, dberr.ErrNotFound
}

func newFakeFinder(items ...*catalog.Item) *fakeFinder {
	finder := &fakeFinder{items: make(map[string]*catalog.Item)}
	for _, item := range items {
		finder.items[string(item.Category)+"/"+item.ID] = item
	}
	return finder
}

/*
TestAssemblage_IdempotentAdd verifies that adding the same id twice yields
the same set as adding it once.
*/
func TestAssemblage_IdempotentAdd(t *testing.T) {
	assemblage := profil.NewAssemblage()

	assert.True(t, assemblage.Add(catalog.CategorySkills, "skill-1"))
	assert.True(t, assemblage.Add(catalog.CategorySkills, "skill-1"))

	assert.Equal(t, []string{"skill-1"}, assemblage.Competences)
	assert.Equal(t, 1, assemblage.Count())
}

/*
TestAssemblage_AddRemoveInverse verifies that remove after add restores the
pre-add state for the category.
*/
func TestAssemblage_AddRemoveInverse(t *testing.T) {
	assemblage := profil.NewAssemblage()
	assemblage.Add(catalog.CategoryTasks, "task-1")

	before := append([]string(nil), assemblage.Taches...)

	assemblage.Add(catalog.CategoryTasks, "task-2")
	assemblage.Remove(catalog.CategoryTasks, "task-2")

	assert.Equal(t, before, assemblage.Taches)
}

/*
TestAssemblage_RemoveAbsent verifies that removing an unselected id is a no-op.
*/
func TestAssemblage_RemoveAbsent(t *testing.T) {
	assemblage := profil.NewAssemblage()
	assemblage.Add(catalog.CategoryTags, "tag-1")

	assert.True(t, assemblage.Remove(catalog.CategoryTags, "tag-999"))
	assert.Equal(t, []string{"tag-1"}, assemblage.Tags)
}

/*
TestAssemblage_UnknownCategory verifies the closed-category contract.
*/
func TestAssemblage_UnknownCategory(t *testing.T) {
	assemblage := profil.NewAssemblage()

	assert.False(t, assemblage.Add(catalog.Category("hobbies"), "x"))
	assert.False(t, assemblage.Remove(catalog.Category("hobbies"), "x"))
	assert.Equal(t, 0, assemblage.Count())
}

/*
TestAssemblage_Count verifies the total spans all six categories.
*/
func TestAssemblage_Count(t *testing.T) {
	assemblage := profil.NewAssemblage()
	assemblage.Add(catalog.CategorySkills, "a")
	assemblage.Add(catalog.CategoryTools, "b")
	assemblage.Add(catalog.CategoryTasks, "c")
	assemblage.Add(catalog.CategoryTags, "d")
	assemblage.Add(catalog.CategoryRules, "e")
	assemblage.Add(catalog.CategorySpecifications, "f")

	assert.Equal(t, 6, assemblage.Count())
}

/*
TestAssemblage_Resolve_SkipsDangling verifies that ids missing from the
catalog are omitted from the resolution, counted, and never fatal.
*/
func TestAssemblage_Resolve_SkipsDangling(t *testing.T) {
	finder := newFakeFinder(
		&catalog.Item{ID: "skill-1", Name: "Analyse financière", Category: catalog.CategorySkills},
	)

	assemblage := profil.NewAssemblage()
	assemblage.Add(catalog.CategorySkills, "skill-1")
	assemblage.Add(catalog.CategorySkills, "skill-gone")

	resolved, err := assemblage.Resolve(context.Background(), finder)
	require.NoError(t, err)

	assert.Equal(t, []string{"Analyse financière"}, profil.Names(resolved.Competences))
	assert.Equal(t, 1, resolved.Dangling)
}
