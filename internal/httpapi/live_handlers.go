package httpapi

import (
	"net/http"
	"strconv"

	"jobboard-engine/internal/api"
	"jobboard-engine/internal/live"
)

type LiveHandler struct {
	Board *live.Board
}

// Get returns the board for one kind, loading it on first use or when
// ?reload=true.
func (h LiveHandler) Get(w http.ResponseWriter, r *http.Request) {
	kind, err := api.ParseLiveKind(r.PathValue("kind"))
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_kind", err.Error())
		return
	}

	snap := h.Board.Get(kind)
	reload, _ := strconv.ParseBool(r.URL.Query().Get("reload"))
	if snap.Version == 0 || reload {
		// failures are recorded on the snapshot
		snap, _ = h.Board.Load(r.Context(), kind)
	}
	writeJSON(w, snap)
}

// Refresh clears the backend's live cache and reloads ?kind= (all kinds
// when absent).
func (h LiveHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var kinds []api.LiveKind
	if v := r.URL.Query().Get("kind"); v != "" {
		k, err := api.ParseLiveKind(v)
		if err != nil {
			WriteError(w, r, http.StatusBadRequest, "bad_kind", err.Error())
			return
		}
		kinds = append(kinds, k)
	} else {
		kinds = api.LiveKinds
	}

	_ = h.Board.Refresh(r.Context(), kinds...)

	out := make(map[api.LiveKind]live.Snapshot, len(kinds))
	for _, k := range kinds {
		out[k] = h.Board.Get(k)
	}
	writeJSON(w, out)
}
