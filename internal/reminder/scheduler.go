package reminder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Ensure TimerScheduler implements Registrar
var _ Registrar = (*TimerScheduler)(nil)

// TimerScheduler runs registered jobs on in-process timers. Every task runs
// in its own goroutine on an errgroup tied to the scheduler's context.
type TimerScheduler struct {
	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group

	timeout time.Duration
	retries int
	backoff time.Duration
	now     func() time.Time
	logger  *slog.Logger

	mu    sync.Mutex
	tasks map[string]*task
}

// SchedulerOption configures a TimerScheduler.
type SchedulerOption func(*TimerScheduler)

// WithRunTimeout bounds each job run. Zero disables the bound.
func WithRunTimeout(d time.Duration) SchedulerOption {
	return func(s *TimerScheduler) {
		s.timeout = d
	}
}

// WithRetry re-runs a failed job up to retries times, waiting backoff
// between attempts.
func WithRetry(retries int, backoff time.Duration) SchedulerOption {
	return func(s *TimerScheduler) {
		s.retries = retries
		s.backoff = backoff
	}
}

// WithLogger sets the scheduler's logger.
func WithLogger(logger *slog.Logger) SchedulerOption {
	return func(s *TimerScheduler) {
		s.logger = logger
	}
}

// NewTimerScheduler creates a scheduler whose tasks stop when ctx is done.
func NewTimerScheduler(ctx context.Context, opts ...SchedulerOption) *TimerScheduler {
	ctx, cancel := context.WithCancel(ctx)
	group, gctx := errgroup.WithContext(ctx)

	s := &TimerScheduler{
		ctx:     gctx,
		cancel:  cancel,
		group:   group,
		timeout: 10 * time.Minute,
		retries: 2,
		backoff: time.Minute,
		now:     time.Now,
		logger:  slog.Default(),
		tasks:   make(map[string]*task),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type task struct {
	name   string
	period time.Duration
	job    Job
	stop   context.CancelFunc
	owner  *TimerScheduler

	mu      sync.Mutex
	nextRun time.Time
}

func (t *task) Name() string { return t.name }

func (t *task) NextRun() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.nextRun
}

func (t *task) advanceNextRun(by time.Duration) {
	t.mu.Lock()
	t.nextRun = t.nextRun.Add(by)
	t.mu.Unlock()
}

// Cancel stops the task and frees its name.
func (t *task) Cancel() {
	t.stop()
	t.owner.forget(t)
}

// Register schedules job. See Registrar.
func (s *TimerScheduler) Register(name string, period, initialDelay time.Duration, policy Policy, job Job) (TaskHandle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.tasks[name]; ok {
		if policy == KeepExisting {
			return existing, false
		}
		existing.stop()
		delete(s.tasks, name)
	}

	if initialDelay < 0 {
		initialDelay = 0
	}

	ctx, cancel := context.WithCancel(s.ctx)
	t := &task{
		name:    name,
		period:  period,
		job:     job,
		stop:    cancel,
		owner:   s,
		nextRun: s.now().Add(initialDelay),
	}
	s.tasks[name] = t

	s.logger.Info("Task registered",
		"task", name,
		"next_run", t.nextRun.Format(time.RFC3339),
		"period", period,
	)

	s.group.Go(func() error {
		s.loop(ctx, t, initialDelay)
		return nil
	})

	return t, true
}

// Lookup returns the task registered under name.
func (s *TimerScheduler) Lookup(name string) (TaskHandle, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[name]
	if !ok {
		return nil, false
	}
	return t, true
}

// forget drops t from the registry if it still owns its name.
func (s *TimerScheduler) forget(t *task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tasks[t.name] == t {
		delete(s.tasks, t.name)
	}
}

// Stop cancels every task and waits for running jobs to return.
func (s *TimerScheduler) Stop() error {
	s.cancel()
	return s.group.Wait()
}

// Wait blocks until the scheduler's context is done and all tasks exit.
func (s *TimerScheduler) Wait() error {
	<-s.ctx.Done()
	return s.group.Wait()
}

// loop fires t at delay and then every period after that first instant.
// Firings are spaced from their scheduled instants, not from when the previous
// run finished, so a slow run does not push the anchor later. Instants missed
// while a run overran are skipped.
func (s *TimerScheduler) loop(ctx context.Context, t *task, delay time.Duration) {
	due := time.Now().Add(delay)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		due = due.Add(t.period)
		t.advanceNextRun(t.period)
		s.fire(ctx, t)

		for !due.After(time.Now()) {
			due = due.Add(t.period)
			t.advanceNextRun(t.period)
		}
		timer.Reset(time.Until(due))
	}
}

// fire runs t's job, retrying failures while attempts remain.
func (s *TimerScheduler) fire(ctx context.Context, t *task) {
	for attempt := 0; ; attempt++ {
		err := s.runOnce(ctx, t)
		if err == nil {
			return
		}

		s.logger.Error("Task run failed",
			"task", t.name,
			"attempt", attempt+1,
			"error", err,
		)
		if attempt >= s.retries {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.backoff):
		}
	}
}

func (s *TimerScheduler) runOnce(ctx context.Context, t *task) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return t.job(ctx)
}
