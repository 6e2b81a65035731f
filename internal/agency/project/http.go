/*
Package project manages client engagements over HTTP.

# Access Control

  - Authenticated: Browsing projects (any role).
  - Manager: Creating, updating, transitioning and deleting projects.
*/
package project

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atelia-app/atelia/internal/platform/middleware"
	requestutil "github.com/atelia-app/atelia/internal/platform/request"
	"github.com/atelia-app/atelia/internal/platform/respond"
	"github.com/atelia-app/atelia/internal/platform/sec"
	"github.com/atelia-app/atelia/pkg/pagination"
)

// Handler implements the HTTP layer for projects.
type Handler struct {
	service *Service
}

// NewHandler constructs a new project [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the project domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	// # Browse Endpoints
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	// # Mutation Endpoints
	router.With(middleware.RequireRole(sec.RoleManager)).Post("/", handler.create)
	router.With(middleware.RequireRole(sec.RoleManager)).Put("/{id}", handler.update)
	router.With(middleware.RequireRole(sec.RoleManager)).Patch("/{id}/statut", handler.updateStatut)
	router.With(middleware.RequireRole(sec.RoleManager)).Delete("/{id}", handler.delete)

	return router
}

/*
GET /api/v1/projects.

Description: Retrieves a paginated list of projects, optionally scoped to one
client or lifecycle state and filtered by a keyword search on the name.

Request:
  - client_id: string (Query, optional client scope)
  - statut: string (Query, optional lifecycle filter)
  - q: string (Query, optional search term)
  - page, limit: int (Query, pagination)

Response:
  - 200: []Project + pagination meta: Success
  - 400: 400: Validation: Unknown status filter
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {

	// Parse pagination and filter parameters
	params := pagination.FromRequest(request)
	filter := Filter{
		ClientID: request.URL.Query().Get("client_id"),
		Statut:   request.URL.Query().Get("statut"),
		Query:    request.URL.Query().Get("q"),
	}

	// Domain Logic Execution
	projects, total, err := handler.service.List(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Paginated(writer, projects, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/projects/{id}.

Description: Retrieves a single project.

Request:
  - id: string (Project UUID)

Response:
  - 200: Project: Success
  - 404: 404: ErrNotFound: Project not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {

	// Extract identifier from URL
	projectID := requestutil.ID(request, "id")

	// Domain Logic Execution
	project, err := handler.service.Get(request.Context(), projectID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, project)
}

// projectInput is the JSON payload for creating or updating a project.
type projectInput struct {
	ClientID    string     `json:"client_id"`
	Nom         string     `json:"nom"`
	Description *string    `json:"description"`
	DateDebut   *time.Time `json:"date_debut"`
	DateFin     *time.Time `json:"date_fin"`
	Budget      *float64   `json:"budget"`
}

// toProject maps the input payload onto a domain entity.
func (input projectInput) toProject() *Project {
	return &Project{
		ClientID:    input.ClientID,
		Nom:         input.Nom,
		Description: input.Description,
		DateDebut:   input.DateDebut,
		DateFin:     input.DateFin,
		Budget:      input.Budget,
	}
}

/*
POST /api/v1/projects.

Description: Creates a new engagement in the draft state for an existing
client. The slug is derived from the name and stays fixed.

Request:
  - body: {client_id, nom, description?, date_debut?, date_fin?, budget?}

Response:
  - 201: Project: Created project in draft state
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Owning client not found
  - 409: 409: ErrConflict: Slug already taken
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {

	// Decode request body
	var input projectInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Create project
	project := input.toProject()
	if err := handler.service.Create(request.Context(), project); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, project)
}

/*
PUT /api/v1/projects/{id}.

Description: Updates a project's descriptive fields. Slug, owning client and
lifecycle state do not move here.

Request:
  - id: string (Project UUID)
  - body: {nom, description?, date_debut?, date_fin?, budget?}

Response:
  - 200: Project: Updated project
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Project not found
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {

	// Extract identifier from URL
	projectID := requestutil.ID(request, "id")

	// Decode request body
	var input projectInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Apply update
	project := input.toProject()
	if err := handler.service.Update(request.Context(), projectID, project); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Re-fetch so the response carries the immutable fields and fresh timestamps
	updated, err := handler.service.Get(request.Context(), projectID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

// updateStatutInput is the JSON payload for a lifecycle transition.
type updateStatutInput struct {
	Statut string `json:"statut"`
}

/*
PATCH /api/v1/projects/{id}/statut.

Description: Moves a project to a new lifecycle state. Draft is entry-only
and archived is terminal.

Request:
  - id: string (Project UUID)
  - body: {statut}

Response:
  - 200: Project: Project after the transition
  - 400: 400: Validation: Unknown status or forbidden transition
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Project not found
*/
func (handler *Handler) updateStatut(writer http.ResponseWriter, request *http.Request) {

	// Extract identifier from URL
	projectID := requestutil.ID(request, "id")

	// Decode request body
	var input updateStatutInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Apply transition
	project, err := handler.service.UpdateStatut(request.Context(), projectID, Statut(input.Statut))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, project)
}

/*
DELETE /api/v1/projects/{id}.

Description: Soft-deletes a project. Squad staffing history stays auditable.

Request:
  - id: string (Project UUID)

Response:
  - 204: No Content: Success
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Project not found
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {

	// Extract identifier from URL
	projectID := requestutil.ID(request, "id")

	// Soft-delete project
	if err := handler.service.Delete(request.Context(), projectID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
