/*
Package client manages the agency's customer accounts.

Clients are the commercial anchors of the platform: projects hang off a
client, and squads of agents are staffed for those projects. Records are
soft-deleted so history stays auditable.
*/
package client

import "time"

// Client represents one customer account of the agency.
type Client struct {
	ID           string     `json:"id"`
	Nom          string     `json:"nom"`
	Slug         string     `json:"slug"`
	Secteur      *string    `json:"secteur"`
	ContactNom   *string    `json:"contact_nom"`
	ContactEmail *string    `json:"contact_email"`
	SiteWeb      *string    `json:"site_web"`
	Notes        *string    `json:"notes"`
	IsActive     bool       `json:"is_active"`
	CreeLe       time.Time  `json:"cree_le"`
	ModifieLe    time.Time  `json:"modifie_le"`
	DeletedAt    *time.Time `json:"-"` // soft-delete tracker
}

// Filter holds the parameters for a paginated client search.
type Filter struct {
	Query string // ILIKE search against nom and secteur
}

// Global field names for validation and error reporting in the client domain.
const (
	FieldNom          = "nom"
	FieldSecteur      = "secteur"
	FieldContactEmail = "contact_email"
	FieldSiteWeb      = "site_web"
)
