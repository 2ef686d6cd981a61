package feed

import (
	"context"
	"strconv"
	"sync"
	"time"

	"jobboard-engine/internal/api"
	"jobboard-engine/internal/domain"

	"github.com/cockroachdb/errors"
)

// manualClock collects debounce timers; tests fire them explicitly.
type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped && !t.fired
	t.stopped = true
	return was
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *manualClock) pending() []*manualTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []*manualTimer
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// Advance fires every pending timer.
func (c *manualClock) Advance() int {
	ts := c.pending()
	for _, t := range ts {
		t.fired = true
		t.f()
	}
	return len(ts)
}

type call struct {
	kind    string // mixed | random | clear
	filters domain.FilterState
	page    int
	limit   int
}

var errBackend = errors.New("backend down")

type fakeSource struct {
	mu     sync.Mutex
	calls  []call
	mixed  func(ctx context.Context, f domain.FilterState, page int) (api.MixedPage, error)
	random func(ctx context.Context) ([]domain.JobRecord, error)
	clear  func(ctx context.Context) error
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		mixed: func(_ context.Context, _ domain.FilterState, page int) (api.MixedPage, error) {
			return api.MixedPage{Jobs: jobs("p"+strconv.Itoa(page), 8), TotalPages: 3, TotalJobs: 30}, nil
		},
		random: func(context.Context) ([]domain.JobRecord, error) {
			return jobs("r", 5), nil
		},
		clear: func(context.Context) error { return nil },
	}
}

func (s *fakeSource) record(c call) {
	s.mu.Lock()
	s.calls = append(s.calls, c)
	s.mu.Unlock()
}

func (s *fakeSource) Mixed(ctx context.Context, f domain.FilterState, page, limit int) (api.MixedPage, error) {
	s.record(call{kind: "mixed", filters: f, page: page, limit: limit})
	return s.mixed(ctx, f, page)
}

func (s *fakeSource) Random(ctx context.Context) ([]domain.JobRecord, error) {
	s.record(call{kind: "random"})
	return s.random(ctx)
}

func (s *fakeSource) ClearCache(ctx context.Context) error {
	s.record(call{kind: "clear"})
	return s.clear(ctx)
}

func (s *fakeSource) Calls() []call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]call(nil), s.calls...)
}

func (s *fakeSource) Kinds() []string {
	var out []string
	for _, c := range s.Calls() {
		out = append(out, c.kind)
	}
	return out
}

func (s *fakeSource) Reset() {
	s.mu.Lock()
	s.calls = nil
	s.mu.Unlock()
}

func jobs(prefix string, n int) []domain.JobRecord {
	out := make([]domain.JobRecord, n)
	for i := range out {
		out[i] = domain.JobRecord{ID: prefix + "-" + strconv.Itoa(i), Title: "Job " + strconv.Itoa(i), Positions: 1}
	}
	return out
}

const (
	timeout = 2 * time.Second
	tick    = 5 * time.Millisecond
)
