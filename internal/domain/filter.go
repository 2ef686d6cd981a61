package domain

import (
	"github.com/cockroachdb/errors"
)

const (
	AllJobTypes = "all"
	AllSources  = "all"
)

// JobTypes and Sources are the values the filter selects offer.
var (
	JobTypes = []string{AllJobTypes, "Full-time", "Part-time", "Remote", "Contract", "Internship"}
	Sources  = []string{AllSources, "database", "external"}
)

// FilterState is the user-editable search criteria of one feed view.
type FilterState struct {
	Keyword       string `json:"keyword"`
	Location      string `json:"location"`
	JobType       string `json:"jobType" validate:"oneof=all Full-time Part-time Remote Contract Internship"`
	Source        string `json:"source" validate:"oneof=all database external"`
	IncludeRemote bool   `json:"includeRemote"`
}

func DefaultFilters() FilterState {
	return FilterState{
		JobType:       AllJobTypes,
		Source:        AllSources,
		IncludeRemote: true,
	}
}

// Active reports whether any narrowing criterion is set. IncludeRemote does
// not count.
func (f FilterState) Active() bool {
	return f.Keyword != "" || f.Location != "" || f.JobType != AllJobTypes || f.Source != AllSources
}

// Mode derives the request mode from the filters.
func (f FilterState) Mode() FeedMode {
	if f.Active() {
		return ModeFiltered
	}
	return ModeRandom
}

func (f FilterState) Validate() error {
	if err := validate.Struct(f); err != nil {
		return errors.Wrap(err, "invalid filters")
	}
	return nil
}

// FilterPatch is a partial update; nil fields are left untouched.
type FilterPatch struct {
	Keyword       *string `json:"keyword,omitempty"`
	Location      *string `json:"location,omitempty"`
	JobType       *string `json:"jobType,omitempty"`
	Source        *string `json:"source,omitempty"`
	IncludeRemote *bool   `json:"includeRemote,omitempty"`
}

// Apply returns f with the patch applied.
func (p FilterPatch) Apply(f FilterState) FilterState {
	if p.Keyword != nil {
		f.Keyword = *p.Keyword
	}
	if p.Location != nil {
		f.Location = *p.Location
	}
	if p.JobType != nil {
		f.JobType = *p.JobType
	}
	if p.Source != nil {
		f.Source = *p.Source
	}
	if p.IncludeRemote != nil {
		f.IncludeRemote = *p.IncludeRemote
	}
	return f
}

// FeedMode is the derived request mode.
type FeedMode int

const (
	ModeRandom FeedMode = iota
	ModeFiltered
)

func (m FeedMode) String() string {
	if m == ModeFiltered {
		return "filtered"
	}
	return "random"
}

func (m FeedMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
