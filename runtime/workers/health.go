package workers

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
	"github.com/shirou/gopsutil/process"
)

// Gauge is a named, non-blocking sample of a component's load: live feeds,
// pending notifications, and so on.
type Gauge struct {
	Name  string
	Value func() int
}

type Health struct {
	PID        int32
	CPUPercent float64
	RAMPercent float32
	RSSBytes   uint64
	Goroutines int
	Gauges     map[string]int
	At         time.Time
}

// HealthWorker samples the server process and its gauges every interval and
// keeps the latest sample for the health endpoint.
type HealthWorker struct {
	log      *slog.Logger
	interval time.Duration
	gauges   []Gauge
	latest   atomic.Pointer[Health]
}

func NewHealthWorker(log *slog.Logger, interval time.Duration, gauges ...Gauge) *HealthWorker {
	return &HealthWorker{log: log, interval: interval, gauges: gauges}
}

func (w *HealthWorker) Run(ctx context.Context) error {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sample(proc)
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping health sampling")
			return nil
		case <-ticker.C:
			w.sample(proc)
		}
	}
}

// Snapshot returns the latest sample, or nil before the first one.
func (w *HealthWorker) Snapshot() *Health {
	return w.latest.Load()
}

func (w *HealthWorker) sample(proc *process.Process) {
	health := &Health{
		PID:        proc.Pid,
		Goroutines: runtime.NumGoroutine(),
		At:         time.Now().UTC(),
		Gauges: lo.SliceToMap(w.gauges, func(g Gauge) (string, int) {
			return g.Name, g.Value()
		}),
	}
	if cpu, err := proc.CPUPercent(); err == nil {
		health.CPUPercent = cpu
	} else {
		w.log.Debug("Error while finding process cpu usage", "err", err)
	}
	if ram, err := proc.MemoryPercent(); err == nil {
		health.RAMPercent = ram
	} else {
		w.log.Debug("Error while finding process ram usage", "err", err)
	}
	if mem, err := proc.MemoryInfo(); err == nil {
		health.RSSBytes = mem.RSS
	}

	w.latest.Store(health)
	w.log.Debug("Health sampled",
		"cpu", health.CPUPercent, "ram", health.RAMPercent,
		"goroutines", health.Goroutines, "gauges", health.Gauges)
}
