package httpapi

import (
	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/feed"
)

type CreateViewRequest struct {
	Filters *domain.FilterPatch `json:"filters,omitempty"`
}

// PageRequest selects a page by number or by direction ("next", "prev").
type PageRequest struct {
	Page      int    `json:"page,omitempty"`
	Direction string `json:"direction,omitempty"`
}

type ViewResponse struct {
	ID         string     `json:"id"`
	State      feed.State `json:"state"`
	PageWindow []int      `json:"pageWindow"`
}

func viewResponse(id string, s feed.State) ViewResponse {
	win := []int{}
	if s.CanPage() {
		win = s.Pagination.Window(5)
	}
	return ViewResponse{ID: id, State: s, PageWindow: win}
}
