// Copyright (c) 2026 Atelia. All rights reserved.
// Author: m.delacroix@atelia.app

package client

import (
	"context"

	"github.com/atelia-app/atelia/internal/platform/validate"
	"github.com/atelia-app/atelia/pkg/slug"
	"github.com/atelia-app/atelia/pkg/uuid"
)

// Service orchestrates business rules for client accounts.
type Service struct {
	repo Repository
}

// NewService constructs a new client [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

/*
List provides a paginated search over active clients.

Parameters:
  - context: context.Context
  - filter: Filter (Search query)
  - limit, offset: int

Returns:
  - []*Client: Hydrated list of matches
  - int: Total record count for pagination
  - error: Retrieval errors
*/
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Client, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

/*
Get retrieves a single client account.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Client: Target entity
  - error: Not found or execution errors
*/
func (service *Service) Get(context context.Context, id string) (*Client, error) {
	return service.repo.Get(context, id)
}

// validateFields runs the shared field rules for create and update.
func validateFields(client *Client) error {
	validator := &validate.Validator{}

	validator.Required(FieldNom, client.Nom).MaxLen(FieldNom, client.Nom, 200)

	if client.ContactEmail != nil && *client.ContactEmail != "" {
		validator.Email(FieldContactEmail, *client.ContactEmail)
	}
	if client.SiteWeb != nil && *client.SiteWeb != "" {
		validator.URL(FieldSiteWeb, *client.SiteWeb)
	}

	return validator.Err()
}

/*
Create validates business constraints before persisting a new client.

Description: The slug is derived from the name once at creation and stays
fixed afterwards so external links never break.

Parameters:
  - context: context.Context
  - client: *Client

Returns:
  - error: Validation failures or storage errors
*/
func (service *Service) Create(context context.Context, client *Client) error {
	if err := validateFields(client); err != nil {
		return err
	}

	client.ID = uuid.New()
	client.Slug = slug.From(client.Nom)
	client.IsActive = true

	return service.repo.Create(context, client)
}

/*
Update applies metadata changes to an existing client record.

Parameters:
  - context: context.Context
  - id: string (UUID)
  - client: *Client

Returns:
  - error: Validation or execution failures
*/
func (service *Service) Update(context context.Context, id string, client *Client) error {
	client.ID = id

	if err := validateFields(client); err != nil {
		return err
	}

	return service.repo.Update(context, client)
}

/*
Delete flags the client record as deleted.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - error: Side-effect failures
*/
func (service *Service) Delete(context context.Context, id string) error {
	return service.repo.Delete(context, id)
}
