// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package squad

import "context"

// Repository defines the data access contract for squads and their rosters.
type Repository interface {

	/*
		List retrieves a filtered and paginated list of squads without rosters.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Project scope and status parameters)
		  - limit, offset: int (Pagination bounds)

		Returns:
		  - []*Squad: Paginated matching results
		  - int: Total matching count for pagination metadata
		  - error: Database execution errors
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Squad, int, error)

	// Get retrieves a single squad by its primary key, roster included.
	Get(context context.Context, id string) (*Squad, error)

	// Create persists a new squad record.
	Create(context context.Context, squad *Squad) error

	// Update applies modifications to an existing squad record.
	Update(context context.Context, squad *Squad) error

	// Delete flags a squad as logically destroyed.
	Delete(context context.Context, id string) error

	// AddAgent appends one agent to a squad's roster.
	AddAgent(context context.Context, agent *Agent) error

	// RemoveAgent detaches one agent from a squad's roster.
	RemoveAgent(context context.Context, squadID, agentID string) error
}
