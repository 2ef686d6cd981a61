package httpapi

import (
	"net/http"
	"strings"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/feed"

	"github.com/cockroachdb/errors"
)

type ViewsHandler struct {
	Views *ViewRegistry
}

func (h ViewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateViewRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	filters := domain.DefaultFilters()
	if req.Filters != nil {
		filters = req.Filters.Apply(filters)
	}

	id, c, err := h.Views.Create(filters)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_filters", err.Error())
		return
	}
	WriteJSON(w, http.StatusCreated, viewResponse(id, c.Snapshot()))
}

func (h ViewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, func(*feed.Controller) error { return nil })
}

func (h ViewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Views.Close(r.PathValue("id")); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h ViewsHandler) UpdateFilters(w http.ResponseWriter, r *http.Request) {
	var p domain.FilterPatch
	if err := decodeBody(r, &p); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	h.with(w, r, func(c *feed.Controller) error { return c.UpdateFilters(p) })
}

func (h ViewsHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, (*feed.Controller).ClearFilters)
}

func (h ViewsHandler) Page(w http.ResponseWriter, r *http.Request) {
	var req PageRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	h.with(w, r, func(c *feed.Controller) error {
		switch strings.ToLower(req.Direction) {
		case "next":
			return c.NextPage()
		case "prev", "previous":
			return c.PrevPage()
		case "":
			return c.SetPage(req.Page)
		}
		return errBadDirection
	})
}

func (h ViewsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, (*feed.Controller).Refresh)
}

func (h ViewsHandler) Retry(w http.ResponseWriter, r *http.Request) {
	h.with(w, r, (*feed.Controller).Retry)
}

var errBadDirection = errors.New("direction must be next or prev")

// with runs fn on the view named in the path and answers with its state.
func (h ViewsHandler) with(w http.ResponseWriter, r *http.Request, fn func(*feed.Controller) error) {
	id := r.PathValue("id")
	c, err := h.Views.Get(id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := fn(c); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, viewResponse(id, c.Snapshot()))
}

func (h ViewsHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrViewNotFound), errors.Is(err, feed.ErrClosed):
		WriteError(w, r, http.StatusNotFound, "view_not_found", "view not found")
	case errors.Is(err, feed.ErrPagingDisabled):
		WriteError(w, r, http.StatusConflict, "paging_disabled", err.Error())
	case errors.Is(err, feed.ErrNothingToRetry):
		WriteError(w, r, http.StatusConflict, "nothing_to_retry", err.Error())
	case errors.Is(err, feed.ErrPageOutOfRange), errors.Is(err, errBadDirection):
		WriteError(w, r, http.StatusBadRequest, "bad_page", err.Error())
	case errors.Is(err, feed.ErrNotStarted):
		WriteError(w, r, http.StatusConflict, "not_started", err.Error())
	default:
		// validator errors from filter updates
		WriteError(w, r, http.StatusBadRequest, "invalid_filters", err.Error())
	}
}
