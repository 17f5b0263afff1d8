// Package schedule provides cancellable polling tasks tied to the lifetime of
// the view that owns them.
//
// Usage:
//
//	poller := schedule.Every(30 * time.Second).
//	    Name("kitchen-orders").
//	    Immediately().
//	    Start(ctx, reloadOrders)
//	defer poller.Stop()
//
// A poller stops when its owner cancels ctx or calls Stop, whichever comes
// first; stopping twice is safe. A tick is skipped while the previous run is
// still executing.
package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/marespinozac/comanda/pkg/logger"
)

// Task is the function a poller runs on every tick.
type Task func()

// Builder configures a poller before it starts.
type Builder struct {
	interval  time.Duration
	name      string
	immediate bool
}

// Every starts a builder that ticks at the given interval.
func Every(interval time.Duration) *Builder {
	return &Builder{interval: interval, name: "poller"}
}

// Name gives the poller a human-readable identifier for logging.
func (b *Builder) Name(name string) *Builder {
	b.name = name
	return b
}

// Immediately makes the poller run the task once right after Start, before
// the first interval elapses.
func (b *Builder) Immediately() *Builder {
	b.immediate = true
	return b
}

// Start launches the poller goroutine and returns a handle for cancellation.
func (b *Builder) Start(ctx context.Context, task Task) *Poller {
	p := &Poller{
		name:     b.name,
		interval: b.interval,
		task:     task,
		done:     make(chan struct{}),
	}
	go p.run(ctx, b.immediate)
	return p
}

// Poller is a running periodic task.
type Poller struct {
	name     string
	interval time.Duration
	task     Task

	mu       sync.Mutex
	running  bool
	stopOnce sync.Once
	done     chan struct{}
}

// Stop cancels the poller. It returns immediately; an in-flight run finishes
// on its own.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.done) })
}

func (p *Poller) run(ctx context.Context, immediate bool) {
	logger.Debug("schedule: poller started", "name", p.name, "interval", p.interval)

	if immediate {
		p.dispatch()
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("schedule: poller stopped by context", "name", p.name)
			return
		case <-p.done:
			logger.Debug("schedule: poller stopped", "name", p.name)
			return
		case <-ticker.C:
			p.dispatch()
		}
	}
}

func (p *Poller) dispatch() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		logger.Warn("schedule: skipping overlapping run", "name", p.name)
		return
	}
	p.running = true
	p.mu.Unlock()

	go func() {
		defer func() {
			p.mu.Lock()
			p.running = false
			p.mu.Unlock()
			if r := recover(); r != nil {
				logger.Error("schedule: task panicked", "name", p.name, "panic", r)
			}
		}()

		p.task()
	}()
}
