/*
Package profil provides the HTTP interface for the profil composition model.

It exposes the draft wizard endpoints (create, edit identity, pick building
blocks, watch the completeness score) and the published profil surface
(search, lifecycle transitions, evaluations, usage tracking).

# Access Control

  - Authenticated: Browsing published profils.
  - Consultant: Composing drafts and publishing.
  - Manager: Lifecycle status transitions.

The handler serves as the bridge between RESTful requests and the [Service] layer.
*/
package profil

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atelia-app/atelia/internal/core/catalog"
	"github.com/atelia-app/atelia/internal/platform/middleware"
	requestutil "github.com/atelia-app/atelia/internal/platform/request"
	"github.com/atelia-app/atelia/internal/platform/respond"
	"github.com/atelia-app/atelia/internal/platform/sec"
	"github.com/atelia-app/atelia/pkg/pagination"
)

// Handler implements the HTTP layer for the profil domain.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new profil [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the profil domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)

	// # Composition (Draft) Endpoints
	router.Route("/drafts", func(draftRoute chi.Router) {
		draftRoute.Use(middleware.RequireRole(sec.RoleConsultant))

		draftRoute.Post("/", handler.createDraft)
		draftRoute.Get("/{id}", handler.getDraft)
		draftRoute.Put("/{id}/info", handler.updateDraftInfo)
		draftRoute.Get("/{id}/resolved", handler.resolveDraft)
		draftRoute.Delete("/{id}", handler.deleteDraft)

		draftRoute.Post("/{id}/selections/{category}/{itemId}", handler.addSelection)
		draftRoute.Delete("/{id}/selections/{category}/{itemId}", handler.removeSelection)

		draftRoute.Post("/{id}/publish", handler.publish)
	})

	// # Published Profil Endpoints
	router.Get("/", handler.list)
	router.Get("/{idOrSlug}", handler.get)

	router.With(middleware.RequireRole(sec.RoleManager)).Patch("/{id}/statut", handler.updateStatut)
	router.With(middleware.RequireRole(sec.RoleConsultant)).Post("/{id}/evaluations", handler.evaluate)
	router.With(middleware.RequireRole(sec.RoleConsultant)).Post("/{id}/utilisations", handler.recordUsage)

	return router
}

/*
POST /api/v1/profils/drafts.

Description: Starts a new empty composition session owned by the caller.

Request:
  - None (author derived from the access token)

Response:
  - 201: Draft: New draft with defaults and a zero score
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) createDraft(writer http.ResponseWriter, request *http.Request) {

	// Resolve the author from the verified token
	author, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Create draft
	draft, err := handler.service.CreateDraft(request.Context(), author)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, draft)
}

/*
GET /api/v1/profils/drafts/{id}.

Description: Retrieves a draft with its freshly recomputed completeness score.

Request:
  - id: string (Draft UUID)

Response:
  - 200: Draft: Success
  - 404: 404: ErrNotFound: Draft absent or expired
*/
func (handler *Handler) getDraft(writer http.ResponseWriter, request *http.Request) {
	draftID := requestutil.ID(request, "id")

	draft, err := handler.service.GetDraft(request.Context(), draftID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, draft)
}

/*
PUT /api/v1/profils/drafts/{id}/info.

Description: Replaces the identity fields of a draft. Length constraints are
not enforced here; the consultant may save unfinished work.

Request:
  - id: string (Draft UUID)
  - body: Info (full replacement)

Response:
  - 200: Draft: Updated draft with its new score
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 404: 404: ErrNotFound: Draft absent or expired
*/
func (handler *Handler) updateDraftInfo(writer http.ResponseWriter, request *http.Request) {
	draftID := requestutil.ID(request, "id")

	// Decode request body
	var input Info
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Update draft identity fields
	draft, err := handler.service.UpdateDraftInfo(request.Context(), draftID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, draft)
}

/*
POST /api/v1/profils/drafts/{id}/selections/{category}/{itemId}.

Description: Adds a catalog item to the draft's selection. Idempotent:
re-adding a selected item succeeds without duplicating it.

Request:
  - id: string (Draft UUID)
  - category: string (skills|tools|tasks|tags|rules|specifications)
  - itemId: string (catalog item UUID)

Response:
  - 200: Draft: Updated draft with its new score
  - 400: 400: Validation: Unknown category
  - 404: 404: ErrNotFound: Draft absent or expired
*/
func (handler *Handler) addSelection(writer http.ResponseWriter, request *http.Request) {
	draftID := requestutil.ID(request, "id")
	category := catalog.Category(requestutil.Param(request, "category"))
	itemID := requestutil.Param(request, "itemId")

	draft, err := handler.service.AddSelection(request.Context(), draftID, category, itemID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, draft)
}

/*
DELETE /api/v1/profils/drafts/{id}/selections/{category}/{itemId}.

Description: Removes a catalog item from the draft's selection. No-op when
the item was not selected.

Request:
  - id: string (Draft UUID)
  - category: string (catalog category)
  - itemId: string (catalog item UUID)

Response:
  - 200: Draft: Updated draft with its new score
  - 400: 400: Validation: Unknown category
  - 404: 404: ErrNotFound: Draft absent or expired
*/
func (handler *Handler) removeSelection(writer http.ResponseWriter, request *http.Request) {
	draftID := requestutil.ID(request, "id")
	category := catalog.Category(requestutil.Param(request, "category"))
	itemID := requestutil.Param(request, "itemId")

	draft, err := handler.service.RemoveSelection(request.Context(), draftID, category, itemID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, draft)
}

/*
GET /api/v1/profils/drafts/{id}/resolved.

Description: Hydrates the draft's selections against the current catalog.
Dangling ids are skipped and counted, never fatal.

Request:
  - id: string (Draft UUID)

Response:
  - 200: Resolved: Hydrated items per category plus a dangling counter
  - 404: 404: ErrNotFound: Draft absent or expired
*/
func (handler *Handler) resolveDraft(writer http.ResponseWriter, request *http.Request) {
	draftID := requestutil.ID(request, "id")

	resolved, err := handler.service.ResolveDraft(request.Context(), draftID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, resolved)
}

/*
DELETE /api/v1/profils/drafts/{id}.

Description: Abandons a composition session.

Request:
  - id: string (Draft UUID)

Response:
  - 204: No Content: Success (also when the draft had already expired)
*/
func (handler *Handler) deleteDraft(writer http.ResponseWriter, request *http.Request) {
	draftID := requestutil.ID(request, "id")

	if err := handler.service.DeleteDraft(request.Context(), draftID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/profils/drafts/{id}/publish.

Description: Runs the publication pipeline: validates the contractual
thresholds, resolves the selections, persists the profil with statut
"draft", bumps catalog usage counters and deletes the composition draft.

Request:
  - id: string (Draft UUID; author derived from the access token)

Response:
  - 201: Profil: The persisted record
  - 400: 400: Validation: Full violation list in details
  - 404: 404: ErrNotFound: Draft absent or expired
  - 409: 409: Conflict: A profil with the same slug already exists
*/
func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	draftID := requestutil.ID(request, "id")

	// Resolve the author from the verified token
	author, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Publish
	profil, err := handler.service.Publish(request.Context(), draftID, author)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, profil)
}

/*
GET /api/v1/profils.

Description: Paginated search over published profils.

Request:
  - domaine: string (exact filter)
  - statut: string (draft|active|archived)
  - visibilite: string (private|internal|public)
  - q: string (keyword search)
  - limit, page: int

Response:
  - 200: []Profil: Paginated list with derived popularity scores
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {

	// Extract standardized pagination
	paginationParams := pagination.FromRequest(request)

	// Build domain filter
	query := request.URL.Query()
	filter := Filter{
		Domaine:    query.Get("domaine"),
		Statut:     Statut(query.Get("statut")),
		Visibilite: Visibilite(query.Get("visibilite")),
		Query:      query.Get("q"),
	}

	// Domain Logic Execution
	profils, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Structured API Response
	respond.Paginated(writer, profils, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/profils/{idOrSlug}.

Description: Retrieves a published profil by UUID or slug.

Request:
  - idOrSlug: string

Response:
  - 200: Profil: Success
  - 404: 404: ErrNotFound: Profil missing
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	idOrSlug := requestutil.Param(request, "idOrSlug")

	profil, err := handler.service.Get(request.Context(), idOrSlug)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profil)
}

// updateStatutInput is the JSON payload for a lifecycle transition.
type updateStatutInput struct {
	Statut Statut `json:"statut"`
}

/*
PATCH /api/v1/profils/{id}/statut.

Description: Promotes or archives a published profil. Demotion back to
"draft" is rejected; archiving replaces deletion in this model.

Request:
  - id: string (Profil UUID)
  - body: {statut: "active"|"archived"}

Response:
  - 200: Profil: Record after the transition
  - 400: 400: Validation: Unknown or forbidden target status
  - 403: 403: ErrForbidden: Manager role required
  - 404: 404: ErrNotFound: Profil missing
*/
func (handler *Handler) updateStatut(writer http.ResponseWriter, request *http.Request) {
	profilID := requestutil.ID(request, "id")

	var input updateStatutInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profil, err := handler.service.UpdateStatut(request.Context(), profilID, input.Statut)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profil)
}

// evaluateInput is the JSON payload for rating a profil.
type evaluateInput struct {
	Note int `json:"note"`
}

/*
POST /api/v1/profils/{id}/evaluations.

Description: Folds a 1-5 rating into the profil's aggregates and refreshes
the derived popularity score.

Request:
  - id: string (Profil UUID)
  - body: {note: 1..5}

Response:
  - 200: Profil: Record with refreshed aggregates
  - 400: 400: Validation: Note out of range
  - 404: 404: ErrNotFound: Profil missing
*/
func (handler *Handler) evaluate(writer http.ResponseWriter, request *http.Request) {
	profilID := requestutil.ID(request, "id")

	var input evaluateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profil, err := handler.service.Evaluate(request.Context(), profilID, input.Note)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profil)
}

/*
POST /api/v1/profils/{id}/utilisations.

Description: Records that an agent was instantiated from this profil.

Request:
  - id: string (Profil UUID)

Response:
  - 200: Profil: Record with the refreshed usage counter
  - 404: 404: ErrNotFound: Profil missing
*/
func (handler *Handler) recordUsage(writer http.ResponseWriter, request *http.Request) {
	profilID := requestutil.ID(request, "id")

	profil, err := handler.service.RecordUsage(request.Context(), profilID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, profil)
}
