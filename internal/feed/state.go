package feed

import (
	"jobboard-engine/internal/domain"
)

// LoadFailedMessage is the user-facing error shown for any failed fetch.
const LoadFailedMessage = "Failed to load jobs. Please try again."

// State is a point-in-time copy of a controller's view. Version increases
// with every change so observers can drop out-of-order deliveries.
type State struct {
	Filters    domain.FilterState `json:"filters"`
	Pagination domain.Pagination  `json:"pagination"`
	Mode       domain.FeedMode    `json:"mode"`
	Jobs       []domain.JobRecord `json:"jobs"`
	Loading    bool               `json:"loading"`
	Refreshing bool               `json:"refreshing"`
	Err        string             `json:"error,omitempty"`
	CanRetry   bool               `json:"canRetry"`
	Version    uint64             `json:"version"`
}

// HasError reports whether the error overlay is showing.
func (s State) HasError() bool { return s.Err != "" }

// CanPage reports whether page navigation is offered.
func (s State) CanPage() bool {
	return s.Mode == domain.ModeFiltered && s.Pagination.HasPages()
}

// request is one logical fetch. Fallback marks the best-effort random
// sample issued after a failure.
type request struct {
	mode     domain.FeedMode
	filters  domain.FilterState
	page     int
	fallback bool
}

func (r request) String() string {
	if r.fallback {
		return "random(fallback)"
	}
	return r.mode.String()
}
