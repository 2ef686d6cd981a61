package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobboard-engine/internal/domain"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/api/v1")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestMixed_SendsFiltersAndPaging(t *testing.T) {
	var got *http.Request
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		writeJSON(w, map[string]any{
			"success":    true,
			"jobs":       []map[string]any{{"_id": "a", "title": "Go Engineer"}, {"id": 42, "title": "SRE"}},
			"totalPages": 3,
			"totalJobs":  30,
		})
	})

	f := domain.DefaultFilters()
	f.Keyword = "engineer"
	f.IncludeRemote = false

	page, err := c.Mixed(context.Background(), f, 2, 12)
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "/api/v1/mixed-jobs/mixed", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, "engineer", q.Get("keyword"))
	assert.Equal(t, "", q.Get("location"))
	assert.Equal(t, "all", q.Get("jobType"))
	assert.Equal(t, "all", q.Get("source"))
	assert.Equal(t, "false", q.Get("includeRemote"))
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "12", q.Get("limit"))

	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 30, page.TotalJobs)
	require.Len(t, page.Jobs, 2)
	assert.Equal(t, "a", page.Jobs[0].ID)
	assert.Equal(t, "42", page.Jobs[1].ID)
}

func TestMixed_TotalsFallback(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"success": true,
			"jobs":    []map[string]any{{"_id": "a"}, {"_id": "b"}},
		})
	})

	page, err := c.Mixed(context.Background(), domain.DefaultFilters(), 1, 12)
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 2, page.TotalJobs)
}

func TestMixed_Unsuccessful(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"success": false, "message": "boom"})
	})

	_, err := c.Mixed(context.Background(), domain.DefaultFilters(), 1, 12)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsuccessful))
}

func TestRandom_StatusError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})

	_, err := c.Random(context.Background())
	require.Error(t, err)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	assert.Equal(t, "/mixed-jobs/random", se.URL)
}

func TestRandom_DropsInvalidRecords(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/mixed-jobs/random", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"jobs":[
			{"_id":"ok","title":"Backend"},
			{"id":"ext","isExternal":true},
			"not an object",
			{"id":"ext2","isExternal":true,"url":"https://jobs.example.com/1"}
		]}`))
	})

	jobs, err := c.Random(context.Background())
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "ok", jobs[0].ID)
	assert.Equal(t, "ext2", jobs[1].ID)
}

func TestClearCache_IgnoresBody(t *testing.T) {
	var method, path string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		_, _ = w.Write([]byte("not json"))
	})

	require.NoError(t, c.ClearCache(context.Background()))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/api/v1/mixed-jobs/cache/clear", path)
}

func TestExternal(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/external-jobs/search":
			writeJSON(w, map[string]any{"success": true, "jobs": []map[string]any{{"id": "x", "isExternal": true, "url": "https://x.io"}}})
		case "/api/v1/external-jobs/cache/clear":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	})

	jobs, err := c.External(context.Background(), KindSearch)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.True(t, jobs[0].IsExternal)

	assert.Error(t, c.ClearExternalCache(context.Background()))

	_, err = c.External(context.Background(), KindTrending)
	assert.Error(t, err)
}

func TestParseLiveKind(t *testing.T) {
	k, err := ParseLiveKind("")
	require.NoError(t, err)
	assert.Equal(t, KindTrending, k)

	k, err = ParseLiveKind(" External ")
	require.NoError(t, err)
	assert.Equal(t, KindExternal, k)

	_, err = ParseLiveKind("popular")
	assert.Error(t, err)
}

func TestTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, WithTimeout(50*time.Millisecond))
	_, err := c.Random(context.Background())
	assert.Error(t, err)
}
