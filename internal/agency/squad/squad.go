/*
Package squad manages teams of AI agents staffed on client engagements.

A squad groups agents instantiated from published profils. Squads can be
formed ahead of an engagement (no project yet) and attached later. Every
agent instantiation feeds the profil usage counter, which in turn drives the
marketplace popularity score.
*/
package squad

import "time"

// Statut is the lifecycle state of a squad.
type Statut string

const (
	StatutForming   Statut = "forming"
	StatutActive    Statut = "active"
	StatutDisbanded Statut = "disbanded"
)

// Valid reports whether the value is a known squad status.
func (s Statut) Valid() bool {
	switch s {
	case StatutForming, StatutActive, StatutDisbanded:
		return true
	}
	return false
}

// Squad represents one team of agents.
type Squad struct {
	ID        string     `json:"id"`
	ProjectID *string    `json:"project_id"`
	Nom       string     `json:"nom"`
	Slug      string     `json:"slug"`
	Mission   *string    `json:"mission"`
	Statut    Statut     `json:"statut"`
	CreeLe    time.Time  `json:"cree_le"`
	ModifieLe time.Time  `json:"modifie_le"`
	DeletedAt *time.Time `json:"-"` // soft-delete tracker

	// Agents is the roster, hydrated on single-squad reads only.
	Agents []*Agent `json:"agents,omitempty"`
}

// Agent is one profil instantiation inside a squad's roster.
type Agent struct {
	ID       string    `json:"id"`
	SquadID  string    `json:"squad_id"`
	ProfilID string    `json:"profil_id"`
	Nom      string    `json:"nom"`
	Role     *string   `json:"role"`
	CreeLe   time.Time `json:"cree_le"`
}

// Filter holds the parameters for a paginated squad search.
type Filter struct {
	ProjectID string // restrict to one project's squads
	Statut    string // restrict to one lifecycle state
}

// Global field names for validation and error reporting in the squad domain.
const (
	FieldNom       = "nom"
	FieldStatut    = "statut"
	FieldProjectID = "project_id"
	FieldProfilID  = "profil_id"
)
