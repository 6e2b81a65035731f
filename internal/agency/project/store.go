// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package project

import "context"

// Repository defines the data access contract for projects.
type Repository interface {

	/*
		List retrieves a filtered and paginated list of projects.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Client scope, status and search parameters)
		  - limit, offset: int (Pagination bounds)

		Returns:
		  - []*Project: Paginated matching results
		  - int: Total matching count for pagination metadata
		  - error: Database execution errors
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Project, int, error)

	// Get retrieves a single project by its primary key.
	Get(context context.Context, id string) (*Project, error)

	// Create persists a new project record.
	Create(context context.Context, project *Project) error

	// Update applies modifications to an existing project record.
	Update(context context.Context, project *Project) error

	// UpdateStatut moves the project to a new lifecycle state.
	UpdateStatut(context context.Context, id string, statut Statut) error

	// Delete flags a project as logically destroyed.
	Delete(context context.Context, id string) error
}
