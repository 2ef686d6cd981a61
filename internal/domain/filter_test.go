package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterState_Active(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*FilterState)
		want   bool
	}{
		{"defaults", func(*FilterState) {}, false},
		{"remote toggle only", func(f *FilterState) { f.IncludeRemote = false }, false},
		{"keyword", func(f *FilterState) { f.Keyword = "engineer" }, true},
		{"location", func(f *FilterState) { f.Location = "Berlin" }, true},
		{"job type", func(f *FilterState) { f.JobType = "Contract" }, true},
		{"source", func(f *FilterState) { f.Source = "external" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFilters()
			tt.mutate(&f)
			assert.Equal(t, tt.want, f.Active())
			if tt.want {
				assert.Equal(t, ModeFiltered, f.Mode())
			} else {
				assert.Equal(t, ModeRandom, f.Mode())
			}
		})
	}
}

func TestFilterState_Validate(t *testing.T) {
	f := DefaultFilters()
	assert.NoError(t, f.Validate())

	f.JobType = "Freelance"
	assert.Error(t, f.Validate())

	f = DefaultFilters()
	f.Source = "linkedin"
	assert.Error(t, f.Validate())
}

func TestFilterPatch_Apply(t *testing.T) {
	kw := "go"
	remote := false
	got := FilterPatch{Keyword: &kw, IncludeRemote: &remote}.Apply(DefaultFilters())

	assert.Equal(t, "go", got.Keyword)
	assert.False(t, got.IncludeRemote)
	assert.Equal(t, AllJobTypes, got.JobType)
}
