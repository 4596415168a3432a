// Package handlers provides HTTP handlers for the transport layer.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	ierrors "github.com/achievelist/achievelist/internal/errors"
	"github.com/achievelist/achievelist/internal/items"
	"github.com/achievelist/achievelist/internal/transport/transportcore"
	"github.com/achievelist/achievelist/pkg/api"
)

// ItemService is the controller's view of the items business layer.
// *items.Service satisfies it; tests may substitute their own.
type ItemService interface {
	List(ctx context.Context, owner string) ([]items.Item, error)
	Create(ctx context.Context, owner string, draft items.CreateDraft) (*items.Item, error)
	Update(ctx context.Context, id, owner string, draft items.UpdateDraft) (*items.UpdateResult, error)
	Remove(ctx context.Context, id, owner string) (*items.DeleteResult, error)
}

// allowedMethods is advertised in the Allow header on 405 responses.
var allowedMethods = strings.Join([]string{
	http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete,
}, ", ")

// itemsHandler translates HTTP requests on the items resource into service
// calls and JSON responses. Verb routing lives here so unsupported methods
// get a 405 with an empty body.
type itemsHandler struct {
	service   ItemService
	responder transportcore.ErrorResponder
}

// NewItemsHandler creates the handler for the /items route.
// The auth middleware must wrap this handler; requests arriving without a
// verified identity in context are rejected with 401.
func NewItemsHandler(service ItemService, responder transportcore.ErrorResponder) http.Handler {
	if service == nil {
		panic("service cannot be nil")
	}
	if responder == nil {
		panic("responder cannot be nil")
	}

	return &itemsHandler{
		service:   service,
		responder: responder,
	}
}

// ServeHTTP routes by HTTP verb.
func (h *itemsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ident, ok := transportcore.IdentityFromContext(r.Context())
	if !ok || ident == nil || ident.Subject == "" {
		// The middleware should have rejected the request already; treat a
		// missing identity as an unauthenticated request, not a server bug.
		h.responder.Unauthorized(w, errors.New("authentication required"))
		return
	}
	owner := ident.Subject

	switch r.Method {
	case http.MethodGet:
		h.list(w, r, owner)
	case http.MethodPost:
		h.create(w, r, owner)
	case http.MethodPatch:
		h.update(w, r, owner)
	case http.MethodDelete:
		h.remove(w, r, owner)
	default:
		w.Header().Set(api.HeaderAllow, allowedMethods)
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// list handles GET /items: 200 with the owner's items, newest first.
func (h *itemsHandler) list(w http.ResponseWriter, r *http.Request, owner string) {
	result, err := h.service.List(r.Context(), owner)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// create handles POST /items: validates the payload, then 201 with the
// created item.
func (h *itemsHandler) create(w http.ResponseWriter, r *http.Request, owner string) {
	body, err := h.readBody(w, r)
	if err != nil {
		return
	}

	draft, err := items.ParseCreate(body)
	if err != nil {
		h.fail(w, err)
		return
	}

	created, err := h.service.Create(r.Context(), owner, *draft)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, created)
}

// update handles PATCH /items?id=<id>: validates the partial payload, then
// 200 with the match/modify outcome. A non-owned or non-existent id yields a
// zero-affected outcome, not an error.
func (h *itemsHandler) update(w http.ResponseWriter, r *http.Request, owner string) {
	id := r.URL.Query().Get("id")
	if err := items.RequireID(id); err != nil {
		h.fail(w, err)
		return
	}

	body, err := h.readBody(w, r)
	if err != nil {
		return
	}

	draft, err := items.ParseUpdate(body)
	if err != nil {
		h.fail(w, err)
		return
	}

	result, err := h.service.Update(r.Context(), id, owner, *draft)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// remove handles DELETE /items?id=<id>: 200 with the match/delete outcome.
func (h *itemsHandler) remove(w http.ResponseWriter, r *http.Request, owner string) {
	id := r.URL.Query().Get("id")
	if err := items.RequireID(id); err != nil {
		h.fail(w, err)
		return
	}

	result, err := h.service.Remove(r.Context(), id, owner)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// readBody reads the request body, responding with 400 on failure.
// Callers must return immediately when err is non-nil.
func (h *itemsHandler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("failed to read request body", "error", err)
		h.responder.BadRequest(w, err)
		return nil, err
	}
	defer func() {
		if closeErr := r.Body.Close(); closeErr != nil {
			slog.Warn("failed to close request body", "error", closeErr)
		}
	}()
	return body, nil
}

// fail maps an error to a boundary response by its kind.
func (h *itemsHandler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ierrors.ErrInvalid):
		h.responder.BadRequest(w, err)
	case errors.Is(err, ierrors.ErrUnavailable):
		h.responder.Unavailable(w, err)
	default:
		h.responder.InternalError(w, err)
	}
}

// writeJSON encodes v as the response body with the given status.
func (h *itemsHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(api.HeaderContentType, api.ContentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
