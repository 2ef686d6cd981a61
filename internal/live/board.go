// Package live keeps the external (trending, search, external) job lists
// fresh for the live-jobs board.
package live

import (
	"context"
	"sync"
	"time"

	"jobboard-engine/internal/api"
	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/logging"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source is the slice of the backend client the board needs.
type Source interface {
	External(ctx context.Context, kind api.LiveKind) ([]domain.JobRecord, error)
	ClearExternalCache(ctx context.Context) error
}

// Snapshot is the state of one kind.
type Snapshot struct {
	Kind      api.LiveKind `json:"kind"`
	Items     []Item       `json:"items"`
	Loading   bool         `json:"loading"`
	Err       string       `json:"error,omitempty"`
	UpdatedAt time.Time    `json:"updatedAt,omitzero"`
	Version   uint64       `json:"version"`
}

type Option func(*Board)

func WithLogger(l *zap.SugaredLogger) Option { return func(b *Board) { b.log = l } }
func WithClock(now func() time.Time) Option { return func(b *Board) { b.now = now } }

// WithOnUpdate is called after every state change, outside the board's lock.
func WithOnUpdate(fn func(Snapshot)) Option { return func(b *Board) { b.onUpdate = fn } }

type Board struct {
	src      Source
	log      *zap.SugaredLogger
	now      func() time.Time
	onUpdate func(Snapshot)

	mu    sync.Mutex
	kinds map[api.LiveKind]*Snapshot
}

func New(src Source, opts ...Option) *Board {
	b := &Board{
		src:   src,
		now:   time.Now,
		kinds: make(map[api.LiveKind]*Snapshot, len(api.LiveKinds)),
	}
	for _, o := range opts {
		o(b)
	}
	b.log = logging.OrNop(b.log)
	for _, k := range api.LiveKinds {
		b.kinds[k] = &Snapshot{Kind: k, Items: []Item{}}
	}
	return b
}

// Get returns the last loaded state of kind.
func (b *Board) Get(kind api.LiveKind) Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.copyLocked(kind)
}

// Load fetches kind. On failure the previous items stay and the error is
// recorded on the snapshot.
func (b *Board) Load(ctx context.Context, kind api.LiveKind) (Snapshot, error) {
	b.update(kind, func(s *Snapshot) { s.Loading = true })

	recs, err := b.src.External(ctx, kind)
	if err != nil {
		b.log.Warnw("[live] load failed", "kind", kind, "err", err)
		snap := b.update(kind, func(s *Snapshot) {
			s.Loading = false
			s.Err = err.Error()
		})
		return snap, errors.Wrapf(err, "load %s", kind)
	}

	now := b.now()
	items := make([]Item, 0, len(recs))
	for _, r := range recs {
		items = append(items, toItem(r, now))
	}
	snap := b.update(kind, func(s *Snapshot) {
		s.Loading = false
		s.Err = ""
		s.Items = items
		s.UpdatedAt = now
	})
	b.log.Debugw("[live] loaded", "kind", kind, "items", len(items))
	return snap, nil
}

// LoadAll loads kinds concurrently (all kinds when none given). Every kind
// is attempted; the first error is returned.
func (b *Board) LoadAll(ctx context.Context, kinds ...api.LiveKind) error {
	if len(kinds) == 0 {
		kinds = api.LiveKinds
	}
	var g errgroup.Group
	for _, k := range kinds {
		g.Go(func() error {
			_, err := b.Load(ctx, k)
			return err
		})
	}
	return g.Wait()
}

// Refresh clears the backend's live cache, ignoring failures, then reloads
// kinds.
func (b *Board) Refresh(ctx context.Context, kinds ...api.LiveKind) error {
	if err := b.src.ClearExternalCache(ctx); err != nil {
		b.log.Warnw("[live] cache clear failed", "err", err)
	}
	return b.LoadAll(ctx, kinds...)
}

// RefreshTask adapts Refresh for the scheduler.
func (b *Board) RefreshTask(kinds ...api.LiveKind) func(context.Context) error {
	return func(ctx context.Context) error {
		return b.Refresh(ctx, kinds...)
	}
}

func (b *Board) update(kind api.LiveKind, fn func(*Snapshot)) Snapshot {
	b.mu.Lock()
	s, ok := b.kinds[kind]
	if !ok {
		s = &Snapshot{Kind: kind, Items: []Item{}}
		b.kinds[kind] = s
	}
	fn(s)
	s.Version++
	snap := b.copyLocked(kind)
	b.mu.Unlock()

	if b.onUpdate != nil {
		b.onUpdate(snap)
	}
	return snap
}

func (b *Board) copyLocked(kind api.LiveKind) Snapshot {
	s, ok := b.kinds[kind]
	if !ok {
		return Snapshot{Kind: kind, Items: []Item{}}
	}
	out := *s
	out.Items = append([]Item{}, s.Items...)
	return out
}
