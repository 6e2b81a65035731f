// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package profil_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/atelia-app/atelia/internal/core/catalog"
	"github.com/atelia-app/atelia/internal/core/profil"
)

// fullAssemblage selects enough items in every category to hit all thresholds.
func fullAssemblage() profil.Assemblage {
	assemblage := profil.NewAssemblage()
	for i := 0; i < 4; i++ {
		id := fmt.Sprintf("item-%d", i)
		assemblage.Add(catalog.CategorySkills, id)
		assemblage.Add(catalog.CategoryTools, id)
		assemblage.Add(catalog.CategoryTasks, id)
		assemblage.Add(catalog.CategoryTags, id)
		assemblage.Add(catalog.CategoryRules, id)
		assemblage.Add(catalog.CategorySpecifications, id)
	}
	return assemblage
}

// fullInfo fills every scored identity field past its threshold.
func fullInfo() profil.Info {
	info := profil.NewInfo()
	info.Nom = "Expert Comptable PME"
	info.Domaine = "Finance"
	info.DescriptionCourte = strings.Repeat("x", 30)
	info.IdentityPrompt = strings.Repeat("y", 80)
	return info
}

/*
TestScore_EmptyDraft verifies that an untouched draft scores zero.
*/
func TestScore_EmptyDraft(t *testing.T) {
	assemblage := profil.NewAssemblage()
	info := profil.NewInfo()

	assert.Equal(t, 0, profil.CompletenessScore(&assemblage, &info))
}

/*
TestScore_FullDraft verifies the allocation sums to exactly 100.
*/
func TestScore_FullDraft(t *testing.T) {
	assemblage := fullAssemblage()
	info := fullInfo()

	assert.Equal(t, 100, profil.CompletenessScore(&assemblage, &info))
}

/*
TestScore_ExactPoints verifies each threshold contributes its documented points.
*/
func TestScore_ExactPoints(t *testing.T) {
	emptyInfo := profil.NewInfo()

	tests := []struct {
		name     string
		build    func() (profil.Assemblage, profil.Info)
		expected int
	}{
		{
			name: "three skills",
			build: func() (profil.Assemblage, profil.Info) {
				a := profil.NewAssemblage()
				a.Add(catalog.CategorySkills, "a")
				a.Add(catalog.CategorySkills, "b")
				a.Add(catalog.CategorySkills, "c")
				return a, emptyInfo
			},
			expected: 15,
		},
		{
			name: "two tools",
			build: func() (profil.Assemblage, profil.Info) {
				a := profil.NewAssemblage()
				a.Add(catalog.CategoryTools, "a")
				a.Add(catalog.CategoryTools, "b")
				return a, emptyInfo
			},
			expected: 10,
		},
		{
			name: "one rule",
			build: func() (profil.Assemblage, profil.Info) {
				a := profil.NewAssemblage()
				a.Add(catalog.CategoryRules, "a")
				return a, emptyInfo
			},
			expected: 5,
		},
		{
			name: "three specifications below threshold",
			build: func() (profil.Assemblage, profil.Info) {
				a := profil.NewAssemblage()
				a.Add(catalog.CategorySpecifications, "a")
				a.Add(catalog.CategorySpecifications, "b")
				a.Add(catalog.CategorySpecifications, "c")
				return a, emptyInfo
			},
			expected: 0,
		},
		{
			name: "name and domain only",
			build: func() (profil.Assemblage, profil.Info) {
				info := profil.NewInfo()
				info.Nom = "Expert"
				info.Domaine = "Tech"
				return profil.NewAssemblage(), info
			},
			expected: 15,
		},
		{
			name: "identity prompt only",
			build: func() (profil.Assemblage, profil.Info) {
				info := profil.NewInfo()
				info.IdentityPrompt = strings.Repeat("p", 50)
				return profil.NewAssemblage(), info
			},
			expected: 15,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assemblage, info := testCase.build()
			assert.Equal(t, testCase.expected, profil.CompletenessScore(&assemblage, &info))
		})
	}
}

/*
TestScore_Bounds verifies the score stays within [0, 100] across a sweep of
partially filled drafts.
*/
func TestScore_Bounds(t *testing.T) {
	assemblage := profil.NewAssemblage()
	info := fullInfo()

	for i := 0; i < 30; i++ {
		score := profil.CompletenessScore(&assemblage, &info)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)

		assemblage.Add(catalog.AllCategories[i%len(catalog.AllCategories)], fmt.Sprintf("item-%d", i))
	}
}

/*
TestScore_Monotonicity verifies that adding an item to any category never
decreases the score for a fixed identity.
*/
func TestScore_Monotonicity(t *testing.T) {
	info := fullInfo()
	assemblage := profil.NewAssemblage()
	previous := profil.CompletenessScore(&assemblage, &info)

	for i := 0; i < 40; i++ {
		category := catalog.AllCategories[i%len(catalog.AllCategories)]
		assemblage.Add(category, fmt.Sprintf("item-%d", i))

		score := profil.CompletenessScore(&assemblage, &info)
		assert.GreaterOrEqual(t, score, previous, "adding to %s decreased the score", category)
		previous = score
	}
}
