package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPagination_Window(t *testing.T) {
	tests := []struct {
		name string
		p    Pagination
		want []int
	}{
		{"single page", Pagination{Page: 1, TotalPages: 1}, []int{1}},
		{"near start", Pagination{Page: 2, TotalPages: 9}, []int{1, 2, 3, 4, 5}},
		{"middle", Pagination{Page: 6, TotalPages: 9}, []int{4, 5, 6, 7, 8}},
		{"near end", Pagination{Page: 9, TotalPages: 9}, []int{7, 8, 9}},
		{"few pages", Pagination{Page: 1, TotalPages: 3}, []int{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Window(5))
		})
	}
}

func TestPagination_NextPrevClamp(t *testing.T) {
	p := Pagination{Page: 3, TotalPages: 3}
	assert.Equal(t, 3, p.Next())
	assert.Equal(t, 2, p.Prev())

	p = Pagination{Page: 1, TotalPages: 3}
	assert.Equal(t, 1, p.Prev())
	assert.Equal(t, 2, p.Next())
}

func TestSinglePage(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, TotalPages: 1, TotalJobs: 7}, SinglePage(7))
	assert.False(t, SinglePage(7).HasPages())
}

func TestPostedAgo(t *testing.T) {
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{2 * time.Hour, "Today"},
		{30 * time.Hour, "Yesterday"},
		{4 * 24 * time.Hour, "4 days ago"},
		{15 * 24 * time.Hour, "2 weeks ago"},
		{65 * 24 * time.Hour, "2 months ago"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PostedAgo(now.Add(-tt.ago), now))
	}
}
