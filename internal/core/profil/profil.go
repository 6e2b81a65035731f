/*
Package profil implements the profil composition model of Atelia.

A profil is a reusable AI-agent expertise template. It is composed in a
working draft: the consultant picks building blocks from the reference
catalog (an [Assemblage]), fills in identity and prompt fields ([Info]),
watches a completeness score evolve, and finally publishes. Publication
validates the draft, resolves the selected blocks into display names, and
emits an immutable-identity [Profil] record.

# Core Responsibility

  - Composition: Draft state with per-category selection sets.
  - Validation: The contractual publish gate with its full violation list.
  - Scoring: Deterministic 0-100 completeness signal for the UI.
  - Publication: The sole construction path for a persisted [Profil].

Drafts live in Redis with a TTL; published profils live in PostgreSQL and
are archived, never hard-deleted.
*/
package profil

import (
	"math"
	"time"
)

// # Enumerations

// NiveauComplexite grades how advanced the expertise template is.
type NiveauComplexite string

const (
	NiveauBeginner     NiveauComplexite = "beginner"
	NiveauIntermediate NiveauComplexite = "intermediate"
	NiveauAdvanced     NiveauComplexite = "advanced"
	NiveauExpert       NiveauComplexite = "expert"
)

// Valid reports whether the value is a known complexity level.
func (niveau NiveauComplexite) Valid() bool {
	switch niveau {
	case NiveauBeginner, NiveauIntermediate, NiveauAdvanced, NiveauExpert:
		return true
	}
	return false
}

// Visibilite controls downstream marketplace exposure. It is a pass-through
// flag for this service: nothing here enforces it.
type Visibilite string

const (
	VisibilitePrivate  Visibilite = "private"
	VisibiliteInternal Visibilite = "internal"
	VisibilitePublic   Visibilite = "public"
)

// Valid reports whether the value is a known visibility.
func (visibilite Visibilite) Valid() bool {
	switch visibilite {
	case VisibilitePrivate, VisibiliteInternal, VisibilitePublic:
		return true
	}
	return false
}

// Statut is the lifecycle state of a published profil.
//
// Publication always creates a "draft" record; promotion to "active" and
// retirement to "archived" are separate back-office workflows.
type Statut string

const (
	StatutDraft    Statut = "draft"
	StatutActive   Statut = "active"
	StatutArchived Statut = "archived"
)

// Valid reports whether the value is a known lifecycle status.
func (statut Statut) Valid() bool {
	switch statut {
	case StatutDraft, StatutActive, StatutArchived:
		return true
	}
	return false
}

// # Identity & Prompts

// Info holds the descriptive and identity fields of a profil draft.
//
// Optional free-text fields are plain strings; empty means "not filled in".
// Only the fields named in the publication gate carry hard constraints, the
// rest is advisory UI guidance.
type Info struct {
	Nom                 string           `json:"nom"`
	Domaine             string           `json:"domaine"`
	SecteursCibles      []string         `json:"secteurs_cibles"`
	NiveauComplexite    NiveauComplexite `json:"niveau_complexite"`
	Visibilite          Visibilite       `json:"visibilite"`
	DescriptionCourte   string           `json:"description_courte"`
	DescriptionComplete string           `json:"description_complete"`
	Methodologie        string           `json:"methodologie"`
	IdentityPrompt      string           `json:"identity_prompt"`
	MissionPrompt       string           `json:"mission_prompt"`
	PersonalityPrompt   string           `json:"personality_prompt"`
}

// NewInfo returns an [Info] with the documented defaults applied.
func NewInfo() Info {
	return Info{
		SecteursCibles:   make([]string, 0),
		NiveauComplexite: NiveauIntermediate,
		Visibilite:       VisibilitePrivate,
	}
}

// # Published Profil

// Profil is the persisted record produced by publication.
//
// Identity fields (ID, Slug, CreePar, CreeLe) are fixed at publish time.
// Status, descriptive fields and the aggregate counters evolve afterwards
// through dedicated operations. Profils are archived, never deleted.
type Profil struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`

	Info

	// Resolved selection names, embedded at publish time.
	CompetencesCles   []string `json:"competences_cles"`
	Outils            []string `json:"outils"`
	ExemplesTaches    []string `json:"exemples_taches"`
	SectionsExpertise []string `json:"sections_expertise"`
	SectionsScope     []string `json:"sections_scope"`
	Tags              []string `json:"tags"`

	Statut         Statut   `json:"statut"`
	NbUtilisations int      `json:"nb_utilisations"`
	NbEvaluations  int      `json:"nb_evaluations"`
	NoteMoyenne    *float64 `json:"note_moyenne"`

	// ScorePopularite is derived from the counters, never stored.
	ScorePopularite int `json:"score_popularite"`

	CreePar   string    `json:"cree_par"`
	CreeLe    time.Time `json:"cree_le"`
	ModifieLe time.Time `json:"modifie_le"`
}

// PopularityScore computes the derived popularity signal.
//
// Formula: round(nb_utilisations * 0.3 + (note_moyenne or 0) * 20).
// Always recomputable from the counters; callers must not persist it.
func PopularityScore(nbUtilisations int, noteMoyenne *float64) int {
	note := 0.0
	if noteMoyenne != nil {
		note = *noteMoyenne
	}
	return int(math.Round(float64(nbUtilisations)*0.3 + note*20))
}

// RecomputePopularite refreshes the derived [Profil.ScorePopularite] field.
func (profil *Profil) RecomputePopularite() {
	profil.ScorePopularite = PopularityScore(profil.NbUtilisations, profil.NoteMoyenne)
}

// # Search Params

// Filter holds the parameters for a paginated profil search.
type Filter struct {
	Domaine    string
	Statut     Statut
	Visibilite Visibilite
	Query      string // ILIKE search against nom and description_courte
}

// # Field Identifiers

// Global field names for validation and error reporting in the profil domain.
const (
	FieldNom               = "nom"
	FieldDomaine           = "domaine"
	FieldDescriptionCourte = "description_courte"
	FieldIdentityPrompt    = "identity_prompt"
	FieldCompetencesCles   = "competences_cles"
	FieldExemplesTaches    = "exemples_taches"
	FieldNiveauComplexite  = "niveau_complexite"
	FieldVisibilite        = "visibilite"
	FieldStatut            = "statut"
	FieldNote              = "note"
	FieldCategory          = "category"
)
