// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package profil

import (
	"context"
	"errors"

	"github.com/atelia-app/atelia/internal/core/catalog"
	"github.com/atelia-app/atelia/internal/platform/dberr"
)

// # Selection Sets

// Assemblage is the working selection of catalog item ids for one draft,
// one set per category. The struct is enum-keyed on purpose: one field per
// category gives compile-time exhaustiveness instead of string-map lookups.
//
// Order within a set is irrelevant; slices are kept only for stable JSON.
// Every mutation preserves the invariant that no id appears twice in a set.
type Assemblage struct {
	Competences    []string `json:"competences"`
	Outils         []string `json:"outils"`
	Taches         []string `json:"taches"`
	Tags           []string `json:"tags"`
	Regles         []string `json:"regles"`
	Specifications []string `json:"specifications"`
}

// NewAssemblage returns an empty selection with all six sets allocated.
func NewAssemblage() Assemblage {
	return Assemblage{
		Competences:    make([]string, 0),
		Outils:         make([]string, 0),
		Taches:         make([]string, 0),
		Tags:           make([]string, 0),
		Regles:         make([]string, 0),
		Specifications: make([]string, 0),
	}
}

// set returns a pointer to the slice backing the given category, or nil for
// an unknown category.
func (assemblage *Assemblage) set(category catalog.Category) *[]string {
	switch category {
	case catalog.CategorySkills:
		return &assemblage.Competences
	case catalog.CategoryTools:
		return &assemblage.Outils
	case catalog.CategoryTasks:
		return &assemblage.Taches
	case catalog.CategoryTags:
		return &assemblage.Tags
	case catalog.CategoryRules:
		return &assemblage.Regles
	case catalog.CategorySpecifications:
		return &assemblage.Specifications
	}
	return nil
}

/*
Add inserts an item id into the category's selection set.

Description: Idempotent. Adding an id that is already present is a no-op,
never an error.

Parameters:
  - category: catalog.Category
  - id: string (item UUID)

Returns:
  - bool: false if the category is unknown
*/
func (assemblage *Assemblage) Add(category catalog.Category, id string) bool {
	set := assemblage.set(category)
	if set == nil {
		return false
	}

	for _, existing := range *set {
		if existing == id {
			return true
		}
	}

	*set = append(*set, id)
	return true
}

/*
Remove deletes an item id from the category's selection set.

Description: No-op if the id is absent.

Parameters:
  - category: catalog.Category
  - id: string (item UUID)

Returns:
  - bool: false if the category is unknown
*/
func (assemblage *Assemblage) Remove(category catalog.Category, id string) bool {
	set := assemblage.set(category)
	if set == nil {
		return false
	}

	for i, existing := range *set {
		if existing == id {
			*set = append((*set)[:i], (*set)[i+1:]...)
			return true
		}
	}

	return true
}

// Count returns the total number of selected ids across all six categories.
func (assemblage *Assemblage) Count() int {
	return len(assemblage.Competences) + len(assemblage.Outils) + len(assemblage.Taches) +
		len(assemblage.Tags) + len(assemblage.Regles) + len(assemblage.Specifications)
}

// # Resolution

// Finder is the catalog lookup contract needed to resolve an assemblage.
type Finder interface {
	FindByID(context context.Context, category catalog.Category, id string) (*catalog.Item, error)
}

// Resolved carries the hydrated catalog items for one assemblage, in the
// same six-way partition, plus a count of dangling ids that were skipped.
type Resolved struct {
	Competences    []*catalog.Item `json:"competences"`
	Outils         []*catalog.Item `json:"outils"`
	Taches         []*catalog.Item `json:"taches"`
	Tags           []*catalog.Item `json:"tags"`
	Regles         []*catalog.Item `json:"regles"`
	Specifications []*catalog.Item `json:"specifications"`

	// Dangling counts selected ids that no longer resolve in the catalog.
	// They are skipped, not fatal; surfaced so the UI can warn the editor.
	Dangling int `json:"dangling"`
}

// Names flattens a resolved category into its display names.
func Names(items []*catalog.Item) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}

// ItemIDs flattens every resolved category into a single id slice.
// This feeds the catalog usage counters at publish time, so dangling ids
// never get counted.
func (resolved *Resolved) ItemIDs() []string {
	ids := make([]string, 0)
	for _, group := range [][]*catalog.Item{
		resolved.Competences, resolved.Outils, resolved.Taches,
		resolved.Tags, resolved.Regles, resolved.Specifications,
	} {
		for _, item := range group {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

/*
Resolve maps every selected id through the catalog.

Description: Ids with no matching item are silently omitted from the result
and tallied in [Resolved.Dangling]. A missing reference is graceful
degradation here, never a fatal condition.

Parameters:
  - context: context.Context
  - finder: Finder (catalog lookup)

Returns:
  - *Resolved: Hydrated items per category
  - error: Only infrastructure failures; absence is not an error
*/
func (assemblage *Assemblage) Resolve(context context.Context, finder Finder) (*Resolved, error) {
	resolved := &Resolved{}

	targets := []struct {
		category catalog.Category
		ids      []string
		out      *[]*catalog.Item
	}{
		{catalog.CategorySkills, assemblage.Competences, &resolved.Competences},
		{catalog.CategoryTools, assemblage.Outils, &resolved.Outils},
		{catalog.CategoryTasks, assemblage.Taches, &resolved.Taches},
		{catalog.CategoryTags, assemblage.Tags, &resolved.Tags},
		{catalog.CategoryRules, assemblage.Regles, &resolved.Regles},
		{catalog.CategorySpecifications, assemblage.Specifications, &resolved.Specifications},
	}

	for _, target := range targets {
		*target.out = make([]*catalog.Item, 0, len(target.ids))

		for _, id := range target.ids {
			item, err := finder.FindByID(context, target.category, id)
			if err != nil {
				// Dangling reference: skip and count, don't fail.
				if errors.Is(err, dberr.ErrNotFound) {
					resolved.Dangling++
					continue
				}
				return nil, err
			}
			*target.out = append(*target.out, item)
		}
	}

	return resolved, nil
}
