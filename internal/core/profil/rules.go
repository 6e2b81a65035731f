// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package profil

import (
	"github.com/atelia-app/atelia/internal/platform/validate"
)

// # Publication Gate

// Contractual thresholds for publication. Everything else the UI hints at
// (soft caps on long descriptions, advisory prompt lengths) is non-binding.
const (
	NomMinLen = 3
	NomMaxLen = 100

	DescriptionCourteMinLen = 20
	DescriptionCourteMaxLen = 250

	IdentityPromptMinLen = 50
	IdentityPromptMaxLen = 2000

	CompetencesMinCount = 1
	CompetencesMaxCount = 10

	TachesMinCount = 2
	TachesMaxCount = 20
)

/*
ValidatePublication gates the transformation of a draft into a profil.

Description: Pure function over its inputs. Every violated rule is collected
so the caller can surface the complete list in one response, never just the
first failure. A nil return means the draft may be published.

Parameters:
  - info: *Info (identity fields)
  - assemblage: *Assemblage (current selection)

Returns:
  - error: apperr.ValidationError with the full violation list, or nil
*/
func ValidatePublication(info *Info, assemblage *Assemblage) error {
	validator := &validate.Validator{}

	validator.
		LenBetween(FieldNom, info.Nom, NomMinLen, NomMaxLen).
		LenBetween(FieldDescriptionCourte, info.DescriptionCourte, DescriptionCourteMinLen, DescriptionCourteMaxLen).
		LenBetween(FieldIdentityPrompt, info.IdentityPrompt, IdentityPromptMinLen, IdentityPromptMaxLen)

	validator.Custom(FieldCompetencesCles,
		len(assemblage.Competences) < CompetencesMinCount || len(assemblage.Competences) > CompetencesMaxCount,
		"Must have between 1 and 10 selected skills")

	validator.Custom(FieldExemplesTaches,
		len(assemblage.Taches) < TachesMinCount || len(assemblage.Taches) > TachesMaxCount,
		"Must have between 2 and 20 selected tasks")

	return validator.Err()
}
