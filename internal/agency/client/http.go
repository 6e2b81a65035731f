/*
Package client manages the agency's customer accounts over HTTP.

# Access Control

  - Authenticated: Browsing clients (any role).
  - Manager: Creating, updating and deleting clients.
*/
package client

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atelia-app/atelia/internal/platform/middleware"
	requestutil "github.com/atelia-app/atelia/internal/platform/request"
	"github.com/atelia-app/atelia/internal/platform/respond"
	"github.com/atelia-app/atelia/internal/platform/sec"
	"github.com/atelia-app/atelia/pkg/pagination"
)

// Handler implements the HTTP layer for client accounts.
type Handler struct {
	service *Service
}

// NewHandler constructs a new client [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the client domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	// # Browse Endpoints
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	// # Mutation Endpoints
	router.With(middleware.RequireRole(sec.RoleManager)).Post("/", handler.create)
	router.With(middleware.RequireRole(sec.RoleManager)).Put("/{id}", handler.update)
	router.With(middleware.RequireRole(sec.RoleManager)).Delete("/{id}", handler.delete)

	return router
}

/*
GET /api/v1/clients.

Description: Retrieves a paginated list of active clients, optionally
filtered by a keyword search on name and sector.

Request:
  - q: string (Query, optional search term)
  - page, limit: int (Query, pagination)

Response:
  - 200: []Client + pagination meta: Success
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {

	// Parse pagination and filter parameters
	params := pagination.FromRequest(request)
	filter := Filter{Query: request.URL.Query().Get("q")}

	// Domain Logic Execution
	clients, total, err := handler.service.List(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Paginated(writer, clients, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/clients/{id}.

Description: Retrieves a single client account.

Request:
  - id: string (Client UUID)

Response:
  - 200: Client: Success
  - 404: 404: ErrNotFound: Client not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {

	// Extract identifier from URL
	clientID := requestutil.ID(request, "id")

	// Domain Logic Execution
	client, err := handler.service.Get(request.Context(), clientID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, client)
}

// clientInput is the JSON payload for creating or updating a client.
type clientInput struct {
	Nom          string  `json:"nom"`
	Secteur      *string `json:"secteur"`
	ContactNom   *string `json:"contact_nom"`
	ContactEmail *string `json:"contact_email"`
	SiteWeb      *string `json:"site_web"`
	Notes        *string `json:"notes"`
	IsActive     *bool   `json:"is_active"`
}

// toClient maps the input payload onto a domain entity.
func (input clientInput) toClient() *Client {
	client := &Client{
		Nom:          input.Nom,
		Secteur:      input.Secteur,
		ContactNom:   input.ContactNom,
		ContactEmail: input.ContactEmail,
		SiteWeb:      input.SiteWeb,
		Notes:        input.Notes,
		IsActive:     true,
	}
	if input.IsActive != nil {
		client.IsActive = *input.IsActive
	}
	return client
}

/*
POST /api/v1/clients.

Description: Creates a new client account. The slug is derived from the name
and stays fixed for the record's lifetime.

Request:
  - body: {nom, secteur?, contact_nom?, contact_email?, site_web?, notes?}

Response:
  - 201: Client: Created client with its assigned id and slug
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: 403: ErrForbidden: Insufficient permissions
  - 409: 409: ErrConflict: Slug already taken
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {

	// Decode request body
	var input clientInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Create client
	client := input.toClient()
	if err := handler.service.Create(request.Context(), client); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, client)
}

/*
PUT /api/v1/clients/{id}.

Description: Updates a client's descriptive fields. The slug never changes.

Request:
  - id: string (Client UUID)
  - body: {nom, secteur?, contact_nom?, contact_email?, site_web?, notes?, is_active?}

Response:
  - 200: Client: Updated client
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Client not found
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {

	// Extract identifier from URL
	clientID := requestutil.ID(request, "id")

	// Decode request body
	var input clientInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Apply update
	client := input.toClient()
	if err := handler.service.Update(request.Context(), clientID, client); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Re-fetch so the response carries the immutable slug and fresh timestamps
	updated, err := handler.service.Get(request.Context(), clientID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
DELETE /api/v1/clients/{id}.

Description: Soft-deletes a client. Its projects and history stay auditable.

Request:
  - id: string (Client UUID)

Response:
  - 204: No Content: Success
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Client not found
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {

	// Extract identifier from URL
	clientID := requestutil.ID(request, "id")

	// Soft-delete client
	if err := handler.service.Delete(request.Context(), clientID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
