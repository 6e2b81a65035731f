// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package profil_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelia-app/atelia/internal/core/catalog"
	"github.com/atelia-app/atelia/internal/core/profil"
	"github.com/atelia-app/atelia/internal/platform/apperr"
)

// minimalValidDraft builds the smallest draft that passes the publish gate.
func minimalValidDraft() (profil.Info, profil.Assemblage) {
	info := profil.NewInfo()
	info.Nom = "Expert Test"
	info.DescriptionCourte = strings.Repeat("d", 20)
	info.IdentityPrompt = strings.Repeat("p", 50)

	assemblage := profil.NewAssemblage()
	assemblage.Add(catalog.CategorySkills, "skill-1")
	assemblage.Add(catalog.CategoryTasks, "task-1")
	assemblage.Add(catalog.CategoryTasks, "task-2")

	return info, assemblage
}

/*
TestValidatePublication_MinimalValid verifies the smallest conforming draft
passes the gate.
*/
func TestValidatePublication_MinimalValid(t *testing.T) {
	info, assemblage := minimalValidDraft()

	assert.NoError(t, profil.ValidatePublication(&info, &assemblage))
}

/*
TestValidatePublication_FullViolationList verifies that every violated rule
is reported in one call, not just the first encountered.
*/
func TestValidatePublication_FullViolationList(t *testing.T) {
	info := profil.NewInfo()
	info.Nom = "ab"                                 // below minimum 3
	info.DescriptionCourte = "court"                // below minimum 20
	info.IdentityPrompt = strings.Repeat("p", 50)   // valid
	assemblage := profil.NewAssemblage()            // skills 0, tasks 0
	assemblage.Add(catalog.CategorySkills, "s-1")   // skills now valid
	assemblage.Add(catalog.CategoryTasks, "t-1")    // tasks still below 2

	err := profil.ValidatePublication(&info, &assemblage)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "VALIDATION_ERROR", appError.Code)

	fields := make([]string, 0, len(appError.Details))
	for _, detail := range appError.Details {
		fields = append(fields, detail.Field)
	}

	assert.Contains(t, fields, profil.FieldNom)
	assert.Contains(t, fields, profil.FieldDescriptionCourte)
	assert.Contains(t, fields, profil.FieldExemplesTaches)
	assert.NotContains(t, fields, profil.FieldIdentityPrompt)
	assert.NotContains(t, fields, profil.FieldCompetencesCles)
}

/*
TestValidatePublication_UpperBounds verifies maxima are enforced too.
*/
func TestValidatePublication_UpperBounds(t *testing.T) {
	info, assemblage := minimalValidDraft()
	info.Nom = strings.Repeat("n", 101)
	info.IdentityPrompt = strings.Repeat("p", 2001)

	for i := 0; i < 11; i++ {
		assemblage.Add(catalog.CategorySkills, strings.Repeat("s", 2)+string(rune('a'+i)))
	}

	err := profil.ValidatePublication(&info, &assemblage)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)

	fields := make([]string, 0, len(appError.Details))
	for _, detail := range appError.Details {
		fields = append(fields, detail.Field)
	}

	assert.Contains(t, fields, profil.FieldNom)
	assert.Contains(t, fields, profil.FieldIdentityPrompt)
	assert.Contains(t, fields, profil.FieldCompetencesCles)
}

/*
TestValidatePublication_Pure verifies the gate has no side effects on its inputs.
*/
func TestValidatePublication_Pure(t *testing.T) {
	info, assemblage := minimalValidDraft()
	countBefore := assemblage.Count()

	_ = profil.ValidatePublication(&info, &assemblage)
	_ = profil.ValidatePublication(&info, &assemblage)

	assert.Equal(t, countBefore, assemblage.Count())
	assert.Equal(t, "Expert Test", info.Nom)
}
