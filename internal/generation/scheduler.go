package generation

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// TaskClass distinguishes the two kinds of generation work
type TaskClass int

const (
	// MapTask fills one whole climate/terrain map
	MapTask TaskClass = iota
	// CellTask classifies and assembles tiles for part of a chunk
	CellTask
)

func (c TaskClass) String() string {
	switch c {
	case MapTask:
		return "map"
	case CellTask:
		return "cell"
	}
	return fmt.Sprintf("TaskClass(%d)", int(c))
}

// Scheduler is the worker pool shared by every chunk generation. All tasks,
// whatever their class, compete for the same bounded set of slots.
type Scheduler struct {
	workers int
	slots   *semaphore.Weighted

	mapTasks  atomic.Int64
	cellTasks atomic.Int64
}

// NewScheduler creates a scheduler running at most workers tasks at once.
// workers <= 0 selects runtime.NumCPU().
func NewScheduler(workers int) *Scheduler {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Scheduler{
		workers: workers,
		slots:   semaphore.NewWeighted(int64(workers)),
	}
}

// Workers returns the pool size
func (s *Scheduler) Workers() int {
	return s.workers
}

// Run executes tasks concurrently and blocks until every one has finished.
// It returns the first error; the remaining tasks still run to completion
// so no task outlives the call. Tasks must not call Run themselves.
func (s *Scheduler) Run(class TaskClass, tasks ...func() error) error {
	switch class {
	case MapTask:
		s.mapTasks.Add(int64(len(tasks)))
	case CellTask:
		s.cellTasks.Add(int64(len(tasks)))
	}

	var g errgroup.Group
	for _, task := range tasks {
		g.Go(func() error {
			// Background never cancels, so Acquire cannot fail.
			_ = s.slots.Acquire(context.Background(), 1)
			defer s.slots.Release(1)
			return task()
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%s task: %w", class, err)
	}
	return nil
}

// TaskCounts returns how many tasks of each class have been run
func (s *Scheduler) TaskCounts() (mapTasks, cellTasks int64) {
	return s.mapTasks.Load(), s.cellTasks.Load()
}
