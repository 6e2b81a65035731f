/*
Package catalog provides the HTTP interface for the reference catalog.

It exposes the six-category taxonomy of reusable building blocks consumed by
the profil composition screens of the back-office.

# Access Control

  - Authenticated: Browsing the catalog (any role).
  - Consultant: Creating new building blocks on the fly.
  - Manager: Deactivating items.

The handler serves as the bridge between RESTful requests and the [Service] layer.
*/
package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atelia-app/atelia/internal/platform/middleware"
	requestutil "github.com/atelia-app/atelia/internal/platform/request"
	"github.com/atelia-app/atelia/internal/platform/respond"
	"github.com/atelia-app/atelia/internal/platform/sec"
)

// Handler implements the HTTP layer for the reference catalog.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalog [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the catalog domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Everything in the catalog requires an authenticated back-office user.
	router.Use(middleware.RequireAuth)

	// # Browse Endpoints
	router.Get("/", handler.listAll)
	router.Get("/{category}", handler.listByCategory)

	// # Mutation Endpoints
	router.With(middleware.RequireRole(sec.RoleConsultant)).Post("/{category}", handler.add)
	router.With(middleware.RequireRole(sec.RoleManager)).Delete("/{category}/{id}", handler.deactivate)

	return router
}

/*
GET /api/v1/catalog.

Description: Retrieves the complete reference catalog grouped by its six
categories, empty groups included.

Request:
  - None

Response:
  - 200: map[Category][]Item: Success
*/
func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {

	// Get the full grouped catalog
	grouped, err := handler.service.ListAll(request.Context())

	// Handle error
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.OK(writer, grouped)
}

/*
GET /api/v1/catalog/{category}.

Description: Retrieves every item of one category in insertion order.

Request:
  - category: string (skills|tools|tasks|tags|rules|specifications)

Response:
  - 200: []Item: Success
  - 400: 400: Validation: Unknown category
*/
func (handler *Handler) listByCategory(writer http.ResponseWriter, request *http.Request) {

	// Extract category from URL
	category := Category(requestutil.Param(request, "category"))

	// Domain Logic Execution
	items, err := handler.service.ListByCategory(request.Context(), category)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, items)
}

// addItemInput is the JSON payload for creating a new building block.
type addItemInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Domain      *string `json:"domain"`
}

/*
POST /api/v1/catalog/{category}.

Description: Creates a new building block in the given category. This is how
consultants extend the catalog mid-composition without leaving the wizard.

Request:
  - category: string (URL)
  - body: {name, description?, domain?}

Response:
  - 201: Item: Created item with its assigned id
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: 401: ErrUnauthorized: Authentication required
  - 403: 403: ErrForbidden: Insufficient permissions
*/
func (handler *Handler) add(writer http.ResponseWriter, request *http.Request) {

	// Extract category from URL
	category := Category(requestutil.Param(request, "category"))

	// Decode request body
	var input addItemInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Create item
	item, err := handler.service.Add(request.Context(), category, input.Name, input.Description, input.Domain)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

/*
DELETE /api/v1/catalog/{category}/{id}.

Description: Soft-deactivates a building block. Existing assemblages keep
resolving it; it only disappears from new selection lists.

Request:
  - category: string (URL)
  - id: string (Item UUID)

Response:
  - 204: No Content: Success
  - 401: 401: ErrUnauthorized: Authentication required
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Item not found or already inactive
*/
func (handler *Handler) deactivate(writer http.ResponseWriter, request *http.Request) {

	// Extract identifiers from URL
	category := Category(requestutil.Param(request, "category"))
	itemID := requestutil.ID(request, "id")

	// Deactivate item
	if err := handler.service.Deactivate(request.Context(), category, itemID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
