// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package client

import "context"

// Repository defines the data access contract for client accounts.
type Repository interface {

	/*
		List retrieves a filtered and paginated list of active clients.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Search parameters)
		  - limit, offset: int (Pagination bounds)

		Returns:
		  - []*Client: Paginated matching results
		  - int: Total matching count for pagination metadata
		  - error: Database execution errors
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Client, int, error)

	// Get retrieves a single client by its primary key.
	Get(context context.Context, id string) (*Client, error)

	// Create persists a new client record.
	Create(context context.Context, client *Client) error

	// Update applies modifications to an existing client record.
	Update(context context.Context, client *Client) error

	// Delete flags a client as logically destroyed.
	Delete(context context.Context, id string) error
}
