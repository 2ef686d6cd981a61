package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"jobboard-engine/internal/domain"

	"github.com/cockroachdb/errors"
)

// MixedPage is one page of a Filtered query. TotalPages is at least 1.
type MixedPage struct {
	Jobs       []domain.JobRecord
	TotalPages int
	TotalJobs  int
}

type listResponse struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Jobs       []json.RawMessage `json:"jobs"`
	TotalPages int               `json:"totalPages"`
	TotalJobs  int               `json:"totalJobs"`
}

// Mixed fetches one page of jobs matching f.
func (c *Client) Mixed(ctx context.Context, f domain.FilterState, page, limit int) (MixedPage, error) {
	q := url.Values{}
	q.Set("keyword", f.Keyword)
	q.Set("location", f.Location)
	q.Set("jobType", f.JobType)
	q.Set("source", f.Source)
	q.Set("includeRemote", strconv.FormatBool(f.IncludeRemote))
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var body listResponse
	if err := c.do(ctx, http.MethodGet, "/mixed-jobs/mixed", q, &body); err != nil {
		return MixedPage{}, err
	}
	if !body.Success {
		return MixedPage{}, errors.Wrapf(ErrUnsuccessful, "mixed jobs: %s", body.Message)
	}

	jobs := c.decodeJobs(body.Jobs)
	out := MixedPage{Jobs: jobs, TotalPages: body.TotalPages, TotalJobs: body.TotalJobs}
	if out.TotalPages <= 0 {
		out.TotalPages = 1
	}
	if out.TotalJobs <= 0 {
		out.TotalJobs = len(jobs)
	}
	return out, nil
}

// Random fetches the unfiltered sample.
func (c *Client) Random(ctx context.Context) ([]domain.JobRecord, error) {
	var body listResponse
	if err := c.do(ctx, http.MethodGet, "/mixed-jobs/random", nil, &body); err != nil {
		return nil, err
	}
	if !body.Success {
		return nil, errors.Wrapf(ErrUnsuccessful, "random jobs: %s", body.Message)
	}
	return c.decodeJobs(body.Jobs), nil
}

// ClearCache asks the backend to drop its aggregated job cache. The body is
// ignored.
func (c *Client) ClearCache(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/mixed-jobs/cache/clear", nil, nil)
}

// decodeJobs keeps the records that decode and validate; the rest are
// logged and dropped so one bad provider row does not fail the page.
func (c *Client) decodeJobs(raw []json.RawMessage) []domain.JobRecord {
	jobs := make([]domain.JobRecord, 0, len(raw))
	for i, r := range raw {
		var j domain.JobRecord
		if err := json.Unmarshal(r, &j); err != nil {
			c.log.Warnw("[api] drop undecodable job", "index", i, "err", err)
			continue
		}
		if err := j.Validate(); err != nil {
			c.log.Warnw("[api] drop invalid job", "index", i, "id", j.ID, "err", err)
			continue
		}
		jobs = append(jobs, j)
	}
	return jobs
}
