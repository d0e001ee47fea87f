package scheduler

import (
	"context"
	"log"
	"sync"
	"time"
)

// Task is one named periodic job. Run errors are logged and never stop the
// schedule; the next tick fires regardless.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler drives the simulation engines. Each task gets its own ticker
// goroutine; a panicking or failing task never takes the others down. The
// tick source is swappable so tests can drive time by hand.
type Scheduler struct {
	Logger *log.Logger

	// NewTicker returns a tick channel and a stop func. Defaults to a
	// real time.Ticker.
	NewTicker func(d time.Duration) (<-chan time.Time, func())

	mu    sync.Mutex
	tasks []Task
}

func (s *Scheduler) Add(t Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, t)
}

// Run blocks until ctx is cancelled, firing every registered task on its
// interval.
func (s *Scheduler) Run(ctx context.Context) {
	s.mu.Lock()
	tasks := make([]Task, len(s.tasks))
	copy(tasks, s.tasks)
	s.mu.Unlock()

	var wg sync.WaitGroup
	for _, t := range tasks {
		wg.Add(1)
		go func(t Task) {
			defer wg.Done()
			s.runTask(ctx, t)
		}(t)
	}
	wg.Wait()
}

func (s *Scheduler) runTask(ctx context.Context, t Task) {
	newTicker := s.NewTicker
	if newTicker == nil {
		newTicker = func(d time.Duration) (<-chan time.Time, func()) {
			ticker := time.NewTicker(d)
			return ticker.C, ticker.Stop
		}
	}
	ticks, stop := newTicker(t.Interval)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticks:
			s.fire(ctx, t)
		}
	}
}

func (s *Scheduler) fire(ctx context.Context, t Task) {
	defer func() {
		if r := recover(); r != nil {
			s.logf("scheduler: task %s panicked: %v", t.Name, r)
		}
	}()
	if err := t.Run(ctx); err != nil {
		s.logf("scheduler: task %s: %v", t.Name, err)
	}
}

func (s *Scheduler) logf(format string, args ...any) {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf(format, args...)
}
