// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package profil

import "unicode/utf8"

// # Completeness Scoring

// Point allocation for the completeness score. The buckets sum to exactly
// 100: 60 from the assemblage, 40 from the identity fields.
const (
	pointsCompetences    = 15 // competences count >= 3
	pointsOutils         = 10 // outils count >= 2
	pointsTaches         = 15 // taches count >= 3
	pointsTags           = 10 // tags count >= 2
	pointsRegles         = 5  // regles count >= 1
	pointsSpecifications = 5  // specifications count >= 4
	pointsNom            = 10 // nom length >= 5
	pointsDomaine        = 5  // domaine non-empty
	pointsDescription    = 10 // description_courte length >= 20
	pointsIdentity       = 15 // identity_prompt length >= 50
)

/*
CompletenessScore maps a draft to a 0-100 readiness signal.

Description: Deterministic point allocation, clamped to 100. The score is a
UI signal only; it never gates publication. Each threshold crossing adds
points and never subtracts, so growing a selection can only raise the score.

Parameters:
  - assemblage: *Assemblage (current selection)
  - info: *Info (current identity fields)

Returns:
  - int: Score in [0, 100]
*/
func CompletenessScore(assemblage *Assemblage, info *Info) int {
	score := 0

	// Assemblage-derived points (max 60).
	if len(assemblage.Competences) >= 3 {
		score += pointsCompetences
	}
	if len(assemblage.Outils) >= 2 {
		score += pointsOutils
	}
	if len(assemblage.Taches) >= 3 {
		score += pointsTaches
	}
	if len(assemblage.Tags) >= 2 {
		score += pointsTags
	}
	if len(assemblage.Regles) >= 1 {
		score += pointsRegles
	}
	if len(assemblage.Specifications) >= 4 {
		score += pointsSpecifications
	}

	// Identity-derived points (max 40).
	if utf8.RuneCountInString(info.Nom) >= 5 {
		score += pointsNom
	}
	if info.Domaine != "" {
		score += pointsDomaine
	}
	if utf8.RuneCountInString(info.DescriptionCourte) >= 20 {
		score += pointsDescription
	}
	if utf8.RuneCountInString(info.IdentityPrompt) >= 50 {
		score += pointsIdentity
	}

	// Safety bound; the allocation already tops out at exactly 100.
	if score > 100 {
		score = 100
	}
	return score
}
