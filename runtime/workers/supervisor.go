package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"travelmate/contract"
	"travelmate/errors"
)

const (
	defaultRestartInterval = 200 * time.Millisecond
	// maxBackoffFactor caps the restart delay of a crash looping worker.
	maxBackoffFactor = 25
)

// Supervisor keeps the long running parts of the server alive: the notifier,
// the listeners and the health sampler. A worker that panics or returns an
// error is restarted after restartInterval times its consecutive failures;
// a worker returning nil is done for good.
type Supervisor struct {
	log             *slog.Logger
	workers         []contract.Worker
	restartInterval time.Duration
	restarts        atomic.Int64
	wg              sync.WaitGroup
	stopOnce        sync.Once
	stopped         chan struct{}
}

// NewSupervisor falls back to 200ms between restarts when restartInterval is zero.
func NewSupervisor(log *slog.Logger, restartInterval time.Duration) *Supervisor {
	if restartInterval <= 0 {
		restartInterval = defaultRestartInterval
	}
	return &Supervisor{log: log, restartInterval: restartInterval, stopped: make(chan struct{})}
}

func (s *Supervisor) Add(worker ...contract.Worker) contract.ISupervisor {
	s.workers = append(s.workers, worker...)
	return s
}

// Run starts every added worker and blocks until all of them returned, which
// happens once ctx is done or Stop is called.
func (s *Supervisor) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.stopped:
			cancel()
		case <-ctx.Done():
		}
	}()

	for _, worker := range s.workers {
		s.Start(ctx, worker)
	}
	s.wg.Wait()
}

// Start runs one worker under supervision, outside of the added ones.
func (s *Supervisor) Start(ctx context.Context, worker contract.Worker) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.supervise(ctx, worker, contract.GetWorkerName(worker))
	}()
}

func (s *Supervisor) supervise(ctx context.Context, worker contract.Worker, name string) {
	failures := 0
	for {
		startedAt := time.Now()
		err := runSafely(ctx, worker)

		switch {
		case ctx.Err() != nil:
			s.log.Info("Worker stopped", "name", name)
			return
		case err == nil:
			s.log.Info("Worker finished", "name", name)
			return
		}

		// A worker that stayed up longer than the longest delay starts over.
		if time.Since(startedAt) > s.restartInterval*maxBackoffFactor {
			failures = 0
		}
		failures++
		s.restarts.Add(1)
		delay := s.restartInterval * time.Duration(min(failures, maxBackoffFactor))
		s.log.Warn("Worker crashed, restarting", "name", name, "error", err, "failures", failures, "delay", delay)

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

func runSafely(ctx context.Context, worker contract.Worker) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errors.ErrWorkerPanic, r)
		}
	}()
	return worker.Run(ctx)
}

// Restarts counts every restart since the supervisor was created.
func (s *Supervisor) Restarts() int { return int(s.restarts.Load()) }

// Stop cancels every supervised worker. Run returns once they all did.
func (s *Supervisor) Stop() {
	s.stopOnce.Do(func() { close(s.stopped) })
}
