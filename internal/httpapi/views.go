package httpapi

import (
	"sync"

	"jobboard-engine/internal/domain"
	"jobboard-engine/internal/events"
	"jobboard-engine/internal/feed"
	"jobboard-engine/internal/logging"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrViewNotFound = errors.New("view not found")

// ViewRegistry holds one feed controller per open page view. Controllers
// never share state.
type ViewRegistry struct {
	src  feed.Source
	hub  *events.Hub
	log  *zap.SugaredLogger
	opts []feed.Option

	mu    sync.Mutex
	views map[string]*feed.Controller
}

// NewViewRegistry returns a registry whose controllers read src and
// publish their state on hub. opts apply to every controller.
func NewViewRegistry(src feed.Source, hub *events.Hub, log *zap.SugaredLogger, opts ...feed.Option) *ViewRegistry {
	return &ViewRegistry{
		src:   src,
		hub:   hub,
		log:   logging.OrNop(log),
		opts:  opts,
		views: make(map[string]*feed.Controller),
	}
}

// Create starts a controller with the given filters and returns its id.
func (r *ViewRegistry) Create(filters domain.FilterState) (string, *feed.Controller, error) {
	if err := filters.Validate(); err != nil {
		return "", nil, err
	}
	id := uuid.NewString()

	opts := append([]feed.Option{}, r.opts...)
	opts = append(opts,
		feed.WithInitialFilters(filters),
		feed.WithLogger(r.log.With("view", id)),
		feed.WithObserver(func(s feed.State) {
			if r.hub != nil {
				r.hub.Publish(events.MakeEvent(id, events.TypeFeedState, s.Version, s))
			}
		}),
	)
	c := feed.New(r.src, opts...)

	r.mu.Lock()
	r.views[id] = c
	r.mu.Unlock()

	c.Start()
	r.log.Infow("[views] opened", "view", id, "mode", filters.Mode())
	return id, c, nil
}

func (r *ViewRegistry) Get(id string) (*feed.Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.views[id]
	if !ok {
		return nil, ErrViewNotFound
	}
	return c, nil
}

// Close stops and forgets a view.
func (r *ViewRegistry) Close(id string) error {
	r.mu.Lock()
	c, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()
	if !ok {
		return ErrViewNotFound
	}
	c.Close()
	if r.hub != nil {
		r.hub.Publish(events.MakeEvent(id, events.TypeViewClosed, 0, nil))
	}
	r.log.Infow("[views] closed", "view", id)
	return nil
}

// CloseAll stops every view; used on shutdown.
func (r *ViewRegistry) CloseAll() {
	r.mu.Lock()
	views := r.views
	r.views = make(map[string]*feed.Controller)
	r.mu.Unlock()

	var wg sync.WaitGroup
	for _, c := range views {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Close()
		}()
	}
	wg.Wait()
}

func (r *ViewRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}
