package api

import (
	"context"
	"net/http"
	"strings"

	"jobboard-engine/internal/domain"

	"github.com/cockroachdb/errors"
)

// LiveKind selects one of the external-jobs feeds.
type LiveKind string

const (
	KindTrending LiveKind = "trending"
	KindSearch   LiveKind = "search"
	KindExternal LiveKind = "external"
)

var LiveKinds = []LiveKind{KindTrending, KindSearch, KindExternal}

// ParseLiveKind maps a name to a kind. Empty means trending.
func ParseLiveKind(s string) (LiveKind, error) {
	switch LiveKind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindTrending:
		return KindTrending, nil
	case KindSearch:
		return KindSearch, nil
	case KindExternal:
		return KindExternal, nil
	}
	return "", errors.Newf("unknown live kind %q", s)
}

// External fetches the live jobs of one kind.
func (c *Client) External(ctx context.Context, kind LiveKind) ([]domain.JobRecord, error) {
	var body listResponse
	if err := c.do(ctx, http.MethodGet, "/external-jobs/"+string(kind), nil, &body); err != nil {
		return nil, err
	}
	if !body.Success {
		return nil, errors.Wrapf(ErrUnsuccessful, "%s jobs: %s", kind, body.Message)
	}
	return c.decodeJobs(body.Jobs), nil
}

// ClearExternalCache drops the backend's live-jobs cache.
func (c *Client) ClearExternalCache(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/external-jobs/cache/clear", nil, nil)
}
