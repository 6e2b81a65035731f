/*
Package project manages the engagements the agency runs for its clients.

A project belongs to exactly one client and moves through a small lifecycle
(draft, active, paused, completed, archived). Squads of agents are staffed
against projects.
*/
package project

import "time"

// Statut is the lifecycle state of a project.
type Statut string

const (
	StatutDraft     Statut = "draft"
	StatutActive    Statut = "active"
	StatutPaused    Statut = "paused"
	StatutCompleted Statut = "completed"
	StatutArchived  Statut = "archived"
)

// Valid reports whether the value is a known project status.
func (s Statut) Valid() bool {
	switch s {
	case StatutDraft, StatutActive, StatutPaused, StatutCompleted, StatutArchived:
		return true
	}
	return false
}

// Project represents one client engagement.
type Project struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"client_id"`
	Nom         string     `json:"nom"`
	Slug        string     `json:"slug"`
	Description *string    `json:"description"`
	Statut      Statut     `json:"statut"`
	DateDebut   *time.Time `json:"date_debut"`
	DateFin     *time.Time `json:"date_fin"`
	Budget      *float64   `json:"budget"`
	CreeLe      time.Time  `json:"cree_le"`
	ModifieLe   time.Time  `json:"modifie_le"`
	DeletedAt   *time.Time `json:"-"` // soft-delete tracker
}

// Filter holds the parameters for a paginated project search.
type Filter struct {
	ClientID string // restrict to one client's projects
	Statut   string // restrict to one lifecycle state
	Query    string // ILIKE search against nom
}

// Global field names for validation and error reporting in the project domain.
const (
	FieldNom       = "nom"
	FieldClientID  = "client_id"
	FieldStatut    = "statut"
	FieldDateDebut = "date_debut"
	FieldDateFin   = "date_fin"
	FieldBudget    = "budget"
)
