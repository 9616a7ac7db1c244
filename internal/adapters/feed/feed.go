// Package feed runs the simulated live sensor console: a periodic tick that
// generates one synthetic sample while the toggle is on and fans it out to
// subscribers.
package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/evpulse/evpulse/internal/domain/model"
	"github.com/evpulse/evpulse/internal/domain/simulate"
	"github.com/evpulse/evpulse/pkg/logger"
	"github.com/evpulse/evpulse/pkg/metrics"
)

// Defaults for the live feed.
const (
	defaultInterval  = 2 * time.Second
	subscriberBuffer = 16
)

// Feed owns the generation loop. The toggle gates generation without
// stopping the loop; Shutdown stops the loop itself.
type Feed struct {
	generator *simulate.Generator
	interval  time.Duration

	mu        sync.RWMutex
	running   bool
	latest    model.LiveSample
	hasLatest bool
	subs      map[chan model.LiveSample]struct{}

	startOnce sync.Once
	shutdown  chan struct{}
	done      chan struct{}

	log logger.Logger
}

// Option applies a configuration option to the Feed.
type Option func(*Feed)

// WithInterval sets the generation cadence.
func WithInterval(d time.Duration) Option {
	return func(f *Feed) {
		if d > 0 {
			f.interval = d
		}
	}
}

// WithGenerator sets a custom sample generator.
func WithGenerator(g *simulate.Generator) Option {
	return func(f *Feed) {
		if g != nil {
			f.generator = g
		}
	}
}

// WithLogger sets a custom logger for the feed.
func WithLogger(log logger.Logger) Option {
	return func(f *Feed) {
		if log != nil {
			f.log = log
		}
	}
}

// New creates a stopped feed.
func New(opts ...Option) *Feed {
	f := &Feed{
		generator: simulate.NewGenerator(),
		interval:  defaultInterval,
		subs:      make(map[chan model.LiveSample]struct{}),
		shutdown:  make(chan struct{}),
		done:      make(chan struct{}),
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.log == nil {
		f.log = logger.Get().Named("feed")
	}
	return f
}

// Start launches the tick loop. Idempotent.
func (f *Feed) Start(ctx context.Context) {
	f.startOnce.Do(func() {
		go f.run(ctx)
	})
}

func (f *Feed) run(ctx context.Context) {
	defer close(f.done)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-f.shutdown:
			return
		case <-ticker.C:
			// The toggle is re-checked every tick; a cleared flag skips
			// generation without blocking the loop.
			if !f.Running() {
				continue
			}
			f.publish(ctx, f.generator.Generate())
		}
	}
}

func (f *Feed) publish(ctx context.Context, sample model.LiveSample) {
	f.mu.Lock()
	f.latest = sample
	f.hasLatest = true
	subs := make([]chan model.LiveSample, 0, len(f.subs))
	for ch := range f.subs {
		subs = append(subs, ch)
	}
	f.mu.Unlock()

	metrics.RecordFeedSample()

	for _, ch := range subs {
		select {
		case ch <- sample:
		default:
			// Slow subscriber; drop rather than stall the tick.
			f.log.Debug(ctx, "dropping sample for slow subscriber")
		}
	}
}

// Enable turns the feed on. Idempotent.
func (f *Feed) Enable() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = true
	metrics.UpdateFeedRunning(true)
}

// Disable turns the feed off. The most recent sample stays available.
func (f *Feed) Disable() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = false
	metrics.UpdateFeedRunning(false)
}

// Running reports the toggle state.
func (f *Feed) Running() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.running
}

// Latest returns the most recent sample, if one was ever generated.
func (f *Feed) Latest() (model.LiveSample, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.latest, f.hasLatest
}

// Subscribe registers a sample channel. The returned cancel func must be
// called to release the subscription.
func (f *Feed) Subscribe() (<-chan model.LiveSample, func()) {
	ch := make(chan model.LiveSample, subscriberBuffer)

	f.mu.Lock()
	f.subs[ch] = struct{}{}
	count := len(f.subs)
	f.mu.Unlock()
	metrics.UpdateFeedSubscribers(count)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, ch)
			count := len(f.subs)
			f.mu.Unlock()
			metrics.UpdateFeedSubscribers(count)
		})
	}
	return ch, cancel
}

// Shutdown stops the tick loop and waits for it to exit.
func (f *Feed) Shutdown(ctx context.Context) error {
	select {
	case <-f.shutdown:
		// already shut down
	default:
		close(f.shutdown)
	}

	select {
	case <-f.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("feed shutdown timed out: %w", ctx.Err())
	}
}
