// Package feed drives one job listing view: it owns the filters and paging,
// debounces filter edits, picks between the random sample and the filtered
// query, and degrades to the random sample when a fetch fails.
package feed

import (
	"context"
	"sync"
	"time"

	"jobboard-engine/internal/api"
	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/logging"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const (
	DefaultDebounce = 500 * time.Millisecond
	DefaultPageSize = 12
)

var (
	ErrClosed         = errors.New("feed controller closed")
	ErrNotStarted     = errors.New("feed controller not started")
	ErrPagingDisabled = errors.New("paging is only available for filtered results with more than one page")
	ErrPageOutOfRange = errors.New("page out of range")
	ErrNothingToRetry = errors.New("no failed request to retry")
)

// Source is the backend the controller reads. *api.Client satisfies it.
type Source interface {
	Mixed(ctx context.Context, f domain.FilterState, page, limit int) (api.MixedPage, error)
	Random(ctx context.Context) ([]domain.JobRecord, error)
	ClearCache(ctx context.Context) error
}

type Option func(*Controller)

func WithAfterFunc(fn AfterFunc) Option { return func(c *Controller) { c.after = fn } }
func WithLogger(l *zap.SugaredLogger) Option { return func(c *Controller) { c.log = l } }
func WithObserver(fn func(State)) Option { return func(c *Controller) { c.observer = fn } }
func WithDebounce(d time.Duration) Option { return func(c *Controller) { c.debounce = d } }
func WithPageSize(n int) Option { return func(c *Controller) { c.pageSize = n } }
func WithInitialFilters(f domain.FilterState) Option {
	return func(c *Controller) { c.st.Filters = f }
}

// Controller owns the state of one view. All methods are safe for
// concurrent use.
type Controller struct {
	src      Source
	log      *zap.SugaredLogger
	after    AfterFunc
	observer func(State)
	debounce time.Duration
	pageSize int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu       sync.Mutex
	st       State
	started  bool
	closed   bool
	timer    Timer
	timerGen uint64
	seq      uint64
	inflight context.CancelFunc
	failed   *request
}

func New(src Source, opts ...Option) *Controller {
	c := &Controller{
		src:      src,
		after:    realAfterFunc,
		debounce: DefaultDebounce,
		pageSize: DefaultPageSize,
		st: State{
			Filters:    domain.DefaultFilters(),
			Pagination: domain.SinglePage(0),
		},
	}
	for _, o := range opts {
		o(c)
	}
	if c.pageSize <= 0 {
		c.pageSize = DefaultPageSize
	}
	c.log = logging.OrNop(c.log)
	c.ctx, c.cancel = context.WithCancel(context.Background())
	return c
}

// Start issues the first fetch immediately, without the debounce. With
// default filters that is the random sample.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.started || c.closed {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.issueLocked(c.requestForFiltersLocked(), nil)
	snap := c.changedLocked()
	c.mu.Unlock()
	c.emit(snap)
}

func (c *Controller) SetKeyword(s string) error {
	return c.UpdateFilters(domain.FilterPatch{Keyword: &s})
}

func (c *Controller) SetLocation(s string) error {
	return c.UpdateFilters(domain.FilterPatch{Location: &s})
}

func (c *Controller) SetJobType(s string) error {
	return c.UpdateFilters(domain.FilterPatch{JobType: &s})
}

func (c *Controller) SetSource(s string) error {
	return c.UpdateFilters(domain.FilterPatch{Source: &s})
}

func (c *Controller) SetIncludeRemote(b bool) error {
	return c.UpdateFilters(domain.FilterPatch{IncludeRemote: &b})
}

// UpdateFilters applies p and restarts the debounce. Invalid values are
// rejected and leave the state untouched; a patch that changes nothing is a
// no-op.
func (c *Controller) UpdateFilters(p domain.FilterPatch) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	next := p.Apply(c.st.Filters)
	if err := next.Validate(); err != nil {
		c.mu.Unlock()
		return err
	}
	if next == c.st.Filters {
		c.mu.Unlock()
		return nil
	}
	c.st.Filters = next
	c.scheduleLocked()
	snap := c.changedLocked()
	c.mu.Unlock()
	c.emit(snap)
	return nil
}

// ClearFilters resets filters and page. It goes through the debounce like
// any other edit.
func (c *Controller) ClearFilters() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.st.Filters == domain.DefaultFilters() {
		c.mu.Unlock()
		return nil
	}
	c.st.Filters = domain.DefaultFilters()
	c.st.Pagination.Page = 1
	c.scheduleLocked()
	snap := c.changedLocked()
	c.mu.Unlock()
	c.emit(snap)
	return nil
}

// SetPage fetches page n of the filtered results with the current filters.
// Selecting the page already shown is a no-op.
func (c *Controller) SetPage(n int) error {
	c.mu.Lock()
	if err := c.checkPagingLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	p := c.st.Pagination
	if n < 1 || n > p.TotalPages {
		c.mu.Unlock()
		return errors.Wrapf(ErrPageOutOfRange, "page %d of %d", n, p.TotalPages)
	}
	if n == p.Page {
		c.mu.Unlock()
		return nil
	}
	c.st.Pagination.Page = n
	c.issueLocked(request{mode: domain.ModeFiltered, filters: c.st.Filters, page: n}, nil)
	snap := c.changedLocked()
	c.mu.Unlock()
	c.emit(snap)
	return nil
}

func (c *Controller) NextPage() error { return c.step(domain.Pagination.Next) }
func (c *Controller) PrevPage() error { return c.step(domain.Pagination.Prev) }

func (c *Controller) step(move func(domain.Pagination) int) error {
	c.mu.Lock()
	p := c.st.Pagination
	c.mu.Unlock()
	return c.SetPage(move(p))
}

// Refresh asks the backend to drop its cache and then fetches page 1 of the
// filtered query. A failing cache clear is logged and does not stop the
// fetch.
func (c *Controller) Refresh() error {
	c.mu.Lock()
	if err := c.checkOpenLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	c.stopTimerLocked()
	c.st.Refreshing = true
	c.st.Pagination.Page = 1
	req := request{mode: domain.ModeFiltered, filters: c.st.Filters, page: 1}
	c.issueLocked(req, func(ctx context.Context) {
		if err := c.src.ClearCache(ctx); err != nil {
			c.log.Warnw("[feed] cache clear failed", "err", err)
		}
	})
	snap := c.changedLocked()
	c.mu.Unlock()
	c.emit(snap)
	return nil
}

// Retry re-issues the request that last failed, with the filters and page it
// carried.
func (c *Controller) Retry() error {
	c.mu.Lock()
	if err := c.checkOpenLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	if c.failed == nil {
		c.mu.Unlock()
		return ErrNothingToRetry
	}
	req := *c.failed
	if req.mode == domain.ModeFiltered {
		c.st.Pagination.Page = req.page
	}
	c.issueLocked(req, nil)
	snap := c.changedLocked()
	c.mu.Unlock()
	c.emit(snap)
	return nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Wait blocks until no request is in flight.
func (c *Controller) Wait() { c.wg.Wait() }

// Close stops the debounce, cancels the in-flight request and waits for it.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stopTimerLocked()
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
}

func (c *Controller) checkOpenLocked() error {
	if c.closed {
		return ErrClosed
	}
	if !c.started {
		return ErrNotStarted
	}
	return nil
}

func (c *Controller) checkPagingLocked() error {
	if err := c.checkOpenLocked(); err != nil {
		return err
	}
	if c.st.Filters.Mode() != domain.ModeFiltered || !c.st.Pagination.HasPages() {
		return ErrPagingDisabled
	}
	return nil
}

func (c *Controller) requestForFiltersLocked() request {
	if c.st.Filters.Active() {
		c.st.Pagination.Page = 1
		return request{mode: domain.ModeFiltered, filters: c.st.Filters, page: 1}
	}
	return request{mode: domain.ModeRandom}
}

// scheduleLocked restarts the quiet period. Edits made before Start only
// update the filters.
func (c *Controller) scheduleLocked() {
	if !c.started {
		return
	}
	c.stopTimerLocked()
	c.timerGen++
	gen := c.timerGen
	c.timer = c.after(c.debounce, func() { c.fire(gen) })
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.timerGen++
}

func (c *Controller) fire(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.timerGen {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.issueLocked(c.requestForFiltersLocked(), nil)
	snap := c.changedLocked()
	c.mu.Unlock()
	c.emit(snap)
}

// issueLocked starts req and supersedes whatever is in flight. Only the
// response of the latest issued request is applied.
func (c *Controller) issueLocked(req request, before func(context.Context)) {
	c.seq++
	seq := c.seq
	if c.inflight != nil {
		c.inflight()
	}
	ctx, cancel := context.WithCancel(c.ctx)
	c.inflight = cancel
	c.st.Loading = true

	c.log.Debugw("[feed] request", "seq", seq, "kind", req.String(), "page", req.page)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer cancel()
		if before != nil {
			before(ctx)
		}
		res, err := c.fetch(ctx, req)
		c.settle(seq, req, res, err)
	}()
}

func (c *Controller) fetch(ctx context.Context, req request) (api.MixedPage, error) {
	if req.mode == domain.ModeFiltered {
		return c.src.Mixed(ctx, req.filters, req.page, c.pageSize)
	}
	jobs, err := c.src.Random(ctx)
	if err != nil {
		return api.MixedPage{}, err
	}
	return api.MixedPage{Jobs: jobs, TotalPages: 1, TotalJobs: len(jobs)}, nil
}

func (c *Controller) settle(seq uint64, req request, res api.MixedPage, err error) {
	c.mu.Lock()
	if c.closed || seq != c.seq {
		c.mu.Unlock()
		c.log.Debugw("[feed] drop stale response", "seq", seq, "kind", req.String())
		return
	}
	c.inflight = nil
	c.st.Loading = false
	c.st.Refreshing = false

	if err != nil {
		c.log.Warnw("[feed] fetch failed", "seq", seq, "kind", req.String(), "page", req.page, "err", err)
		c.st.Err = LoadFailedMessage
		if !req.fallback {
			failed := req
			c.failed = &failed
			c.issueLocked(request{mode: domain.ModeRandom, fallback: true}, nil)
		}
	} else {
		c.apply(req, res)
	}

	snap := c.changedLocked()
	c.mu.Unlock()
	c.emit(snap)
}

// apply swaps jobs and totals in one step.
func (c *Controller) apply(req request, res api.MixedPage) {
	c.st.Jobs = res.Jobs
	if req.mode == domain.ModeFiltered {
		total := max(res.TotalPages, 1)
		c.st.Pagination = domain.Pagination{
			Page:       min(req.page, total),
			TotalPages: total,
			TotalJobs:  res.TotalJobs,
		}
	} else {
		c.st.Pagination = domain.SinglePage(len(res.Jobs))
	}
	if !req.fallback {
		c.st.Err = ""
		c.failed = nil
	}
}

func (c *Controller) changedLocked() State {
	c.st.Version++
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() State {
	s := c.st
	s.Mode = s.Filters.Mode()
	s.CanRetry = c.failed != nil
	s.Jobs = make([]domain.JobRecord, len(c.st.Jobs))
	copy(s.Jobs, c.st.Jobs)
	return s
}

func (c *Controller) emit(s State) {
	if c.observer != nil {
		c.observer(s)
	}
}
