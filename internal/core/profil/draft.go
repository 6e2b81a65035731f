// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package profil

import "time"

// # Draft State

// Draft is the working composition state for one profil, owned by a single
// editing session. It lives in Redis under a TTL and is deleted on publish
// or silently expired when abandoned.
type Draft struct {
	ID         string     `json:"id"`
	Info       Info       `json:"info"`
	Assemblage Assemblage `json:"assemblage"`

	// ScoreCompletude is recomputed on every read, never stored.
	ScoreCompletude int `json:"score_completude"`

	CreePar   string    `json:"cree_par"`
	CreeLe    time.Time `json:"cree_le"`
	ModifieLe time.Time `json:"modifie_le"`
}

// RecomputeScore refreshes the derived completeness score.
func (draft *Draft) RecomputeScore() {
	draft.ScoreCompletude = CompletenessScore(&draft.Assemblage, &draft.Info)
}
