// Package scheduler runs periodic engine tasks on cron specs.
package scheduler

import (
	"context"
	"sync"
	"time"

	"jobboard-engine/internal/logging"

	"github.com/cockroachdb/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Task func(ctx context.Context) error

// Scheduler wraps robfig/cron. Overlapping runs of one task are skipped.
type Scheduler struct {
	cron *cron.Cron
	log  *zap.SugaredLogger

	mu      sync.Mutex
	entries map[string]cron.EntryID
	ctx     context.Context
	cancel  context.CancelFunc
}

func New(log *zap.SugaredLogger) *Scheduler {
	log = logging.OrNop(log)
	cl := cronLogger{log}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log:     log,
		entries: make(map[string]cron.EntryID),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Add registers task under name. With runNow the task also runs once right
// away, off the caller's goroutine.
func (s *Scheduler) Add(spec, name string, task Task, runNow bool) error {
	run := func() {
		if err := task(s.ctx); err != nil {
			s.log.Warnw("[scheduler] task failed", "task", name, "err", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.entries[name]; dup {
		return errors.Newf("task %q already scheduled", name)
	}
	id, err := s.cron.AddFunc(spec, run)
	if err != nil {
		return errors.Wrapf(err, "schedule %s (%q)", name, spec)
	}
	s.entries[name] = id
	s.log.Infow("[scheduler] task added", "task", name, "spec", spec)

	if runNow {
		go run()
	}
	return nil
}

// Next returns when name runs next; zero if unknown or not started.
func (s *Scheduler) Next(name string) time.Time {
	s.mu.Lock()
	id, ok := s.entries[name]
	s.mu.Unlock()
	if !ok {
		return time.Time{}
	}
	return s.cron.Entry(id).Next
}

// Run starts the scheduler and blocks until ctx ends, then waits for
// running tasks.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	n := len(s.entries)
	s.mu.Unlock()

	s.cron.Start()
	s.log.Infow("[scheduler] started", "tasks", n)

	<-ctx.Done()

	s.cancel()
	<-s.cron.Stop().Done()
	s.log.Infow("[scheduler] stopped")
	return nil
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct{ l *zap.SugaredLogger }

func (c cronLogger) Info(msg string, kv ...any) {
	c.l.Debugw("[cron] "+msg, kv...)
}

func (c cronLogger) Error(err error, msg string, kv ...any) {
	c.l.Errorw("[cron] "+msg, append(kv, "err", err)...)
}
