// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package sec

// # User Roles

// UserRole represents the authorization level granted to a back-office account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Can manage clients, projects, squads, and the profil catalogue
	RoleManager UserRole = "manager"

	// Can author profil drafts and publish profils
	RoleConsultant UserRole = "consultant"

	// Read-only access to back-office screens
	RoleViewer UserRole = "viewer"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-40) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleManager:
		return 30
	case RoleConsultant:
		return 20
	case RoleViewer:
		return 10
	default:
		return 0
	}
}
