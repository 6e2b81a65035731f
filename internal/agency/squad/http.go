/*
Package squad manages agent teams over HTTP.

# Access Control

  - Authenticated: Browsing squads (any role).
  - Consultant: Staffing and unstaffing agents.
  - Manager: Creating, updating and deleting squads.
*/
package squad

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atelia-app/atelia/internal/platform/middleware"
	requestutil "github.com/atelia-app/atelia/internal/platform/request"
	"github.com/atelia-app/atelia/internal/platform/respond"
	"github.com/atelia-app/atelia/internal/platform/sec"
	"github.com/atelia-app/atelia/pkg/pagination"
)

// Handler implements the HTTP layer for squads.
type Handler struct {
	service *Service
}

// NewHandler constructs a new squad [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the squad domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	// # Browse Endpoints
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	// # Squad Mutation Endpoints
	router.With(middleware.RequireRole(sec.RoleManager)).Post("/", handler.create)
	router.With(middleware.RequireRole(sec.RoleManager)).Put("/{id}", handler.update)
	router.With(middleware.RequireRole(sec.RoleManager)).Delete("/{id}", handler.delete)

	// # Roster Endpoints
	router.With(middleware.RequireRole(sec.RoleConsultant)).Post("/{id}/agents", handler.addAgent)
	router.With(middleware.RequireRole(sec.RoleConsultant)).Delete("/{id}/agents/{agentId}", handler.removeAgent)

	return router
}

/*
GET /api/v1/squads.

Description: Retrieves a paginated list of squads, optionally scoped to one
project or lifecycle state. Rosters are omitted.

Request:
  - project_id: string (Query, optional project scope)
  - statut: string (Query, optional lifecycle filter)
  - page, limit: int (Query, pagination)

Response:
  - 200: []Squad + pagination meta: Success
  - 400: 400: Validation: Unknown status filter
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {

	// Parse pagination and filter parameters
	params := pagination.FromRequest(request)
	filter := Filter{
		ProjectID: request.URL.Query().Get("project_id"),
		Statut:    request.URL.Query().Get("statut"),
	}

	// Domain Logic Execution
	squads, total, err := handler.service.List(request.Context(), filter, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Paginated(writer, squads, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
GET /api/v1/squads/{id}.

Description: Retrieves a single squad with its full agent roster.

Request:
  - id: string (Squad UUID)

Response:
  - 200: Squad: Success, agents included
  - 404: 404: ErrNotFound: Squad not found
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {

	// Extract identifier from URL
	squadID := requestutil.ID(request, "id")

	// Domain Logic Execution
	squad, err := handler.service.Get(request.Context(), squadID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, squad)
}

// squadInput is the JSON payload for creating or updating a squad.
type squadInput struct {
	ProjectID *string `json:"project_id"`
	Nom       string  `json:"nom"`
	Mission   *string `json:"mission"`
	Statut    *string `json:"statut"`
}

/*
POST /api/v1/squads.

Description: Creates a new squad in the forming state, optionally attached
to an existing project.

Request:
  - body: {nom, project_id?, mission?}

Response:
  - 201: Squad: Created squad
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Attached project not found
  - 409: 409: ErrConflict: Slug already taken
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {

	// Decode request body
	var input squadInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Create squad
	squad := &Squad{ProjectID: input.ProjectID, Nom: input.Nom, Mission: input.Mission}
	if err := handler.service.Create(request.Context(), squad); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, squad)
}

/*
PUT /api/v1/squads/{id}.

Description: Updates a squad's name, mission, project attachment and
lifecycle state. The slug never changes.

Request:
  - id: string (Squad UUID)
  - body: {nom, project_id?, mission?, statut?}

Response:
  - 200: Squad: Updated squad with roster
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Squad or attached project not found
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {

	// Extract identifier from URL
	squadID := requestutil.ID(request, "id")

	// Decode request body
	var input squadInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Default the state to the current one when omitted
	current, err := handler.service.Get(request.Context(), squadID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	statut := current.Statut
	if input.Statut != nil {
		statut = Statut(*input.Statut)
	}

	// Apply update
	squad := &Squad{ProjectID: input.ProjectID, Nom: input.Nom, Mission: input.Mission, Statut: statut}
	if err := handler.service.Update(request.Context(), squadID, squad); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Re-fetch so the response carries the roster and fresh timestamps
	updated, err := handler.service.Get(request.Context(), squadID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
DELETE /api/v1/squads/{id}.

Description: Soft-deletes a squad.

Request:
  - id: string (Squad UUID)

Response:
  - 204: No Content: Success
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Squad not found
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {

	// Extract identifier from URL
	squadID := requestutil.ID(request, "id")

	// Soft-delete squad
	if err := handler.service.Delete(request.Context(), squadID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// addAgentInput is the JSON payload for staffing one agent.
type addAgentInput struct {
	ProfilID string  `json:"profil_id"`
	Nom      string  `json:"nom"`
	Role     *string `json:"role"`
}

/*
POST /api/v1/squads/{id}/agents.

Description: Instantiates a published profil as a new agent on the squad's
roster. The profil's usage counter is incremented.

Request:
  - id: string (Squad UUID)
  - body: {profil_id, nom?, role?}

Response:
  - 201: Agent: Newly staffed agent
  - 400: 400: Validation: Profil not active
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Squad or profil not found
*/
func (handler *Handler) addAgent(writer http.ResponseWriter, request *http.Request) {

	// Extract identifier from URL
	squadID := requestutil.ID(request, "id")

	// Decode request body
	var input addAgentInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Staff agent
	agent, err := handler.service.AddAgent(request.Context(), squadID, input.ProfilID, input.Nom, input.Role)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, agent)
}

/*
DELETE /api/v1/squads/{id}/agents/{agentId}.

Description: Detaches an agent from the squad's roster. The profil usage
counter is not decremented; instantiation history stays counted.

Request:
  - id: string (Squad UUID)
  - agentId: string (Agent UUID)

Response:
  - 204: No Content: Success
  - 403: 403: ErrForbidden: Insufficient permissions
  - 404: 404: ErrNotFound: Squad or agent not found
*/
func (handler *Handler) removeAgent(writer http.ResponseWriter, request *http.Request) {

	// Extract identifiers from URL
	squadID := requestutil.ID(request, "id")
	agentID := requestutil.ID(request, "agentId")

	// Detach agent
	if err := handler.service.RemoveAgent(request.Context(), squadID, agentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
