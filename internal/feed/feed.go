// Package feed polls the earthquake catalog on an interval and publishes
// newly observed events to the sink.
package feed

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/quake-catalog-service/internal/domain"
	"github.com/couchcryptid/quake-catalog-service/internal/observability"
)

// Fetcher runs one catalog query over an absolute time window.
type Fetcher interface {
	FetchWindow(ctx context.Context, start, end time.Time) (domain.Catalog, error)
}

// Publisher writes events to the destination.
type Publisher interface {
	PublishBatch(ctx context.Context, events []domain.Event) error
}

// Feed orchestrates the poll-filter-publish loop. Poll windows overlap so a
// slow upstream ingest cannot drop events at window edges; the seen-ID set
// keeps the overlap from producing duplicates downstream.
type Feed struct {
	fetcher   Fetcher
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	clock     clockwork.Clock

	interval time.Duration
	overlap  time.Duration
	seen     *seenSet

	lastSuccess time.Time // poll loop goroutine only; LastPoll serves readers
	lastPoll    atomic.Int64
	ready       atomic.Bool
}

// New creates a Feed. The clock is injectable so tests can drive the loop
// deterministically; production passes clockwork.NewRealClock().
func New(fetcher Fetcher, publisher Publisher, interval, overlap time.Duration, seenCap int, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Feed {
	return &Feed{
		fetcher:   fetcher,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
		clock:     clock,
		interval:  interval,
		overlap:   overlap,
		seen:      newSeenSet(seenCap),
	}
}

// CheckReadiness returns nil once at least one poll has succeeded.
func (f *Feed) CheckReadiness(_ context.Context) error {
	if !f.ready.Load() {
		return errors.New("no successful catalog poll yet")
	}
	return nil
}

// LastPoll returns the completion time of the most recent successful poll,
// or the zero time before the first one. Safe for concurrent use.
func (f *Feed) LastPoll() time.Time {
	n := f.lastPoll.Load()
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n).UTC()
}

// Run polls immediately, then on every interval until the context is
// cancelled. Poll failures are logged and retried with a doubling backoff
// capped at the poll interval; they never stop the loop.
func (f *Feed) Run(ctx context.Context) error {
	f.logger.Info("feed started", "interval", f.interval, "overlap", f.overlap)
	f.metrics.FeedRunning.Set(1)
	defer f.metrics.FeedRunning.Set(0)

	backoff := 30 * time.Second
	if backoff > f.interval {
		backoff = f.interval
	}

	for {
		wait := f.interval
		if err := f.PollOnce(ctx); err != nil {
			if ctx.Err() != nil {
				f.logger.Info("feed stopping", "reason", ctx.Err())
				return nil
			}
			f.logger.Error("poll failed", "error", err, "retry_in", backoff)
			wait = backoff
			backoff = min(backoff*2, f.interval)
		} else {
			backoff = min(30*time.Second, f.interval)
		}

		select {
		case <-ctx.Done():
			f.logger.Info("feed stopping", "reason", ctx.Err())
			return nil
		case <-f.clock.After(wait):
		}
	}
}

// PollOnce runs a single poll cycle: query the window since the last
// success (padded by the overlap), drop already-seen events, publish the
// remainder. IDs are recorded as seen only after the publish succeeds, so
// a failed cycle's events are retried on the next poll.
func (f *Feed) PollOnce(ctx context.Context) error {
	now := f.clock.Now().UTC()
	start := f.windowStart(now)

	cat, err := f.fetcher.FetchWindow(ctx, start, now)
	if err != nil {
		f.metrics.PollsTotal.WithLabelValues("error").Inc()
		return err
	}

	fresh := make([]domain.Event, 0, len(cat.Features))
	batch := make(map[string]struct{}, len(cat.Features))
	for _, ev := range cat.Features {
		if f.seen.has(ev.ID) {
			continue
		}
		if _, dup := batch[ev.ID]; dup {
			continue
		}
		batch[ev.ID] = struct{}{}
		fresh = append(fresh, ev)
	}

	if len(fresh) > 0 {
		if err := f.publisher.PublishBatch(ctx, fresh); err != nil {
			f.metrics.PollsTotal.WithLabelValues("error").Inc()
			return err
		}
		f.metrics.EventsPublished.Add(float64(len(fresh)))
	}

	for _, ev := range fresh {
		f.seen.add(ev.ID)
	}

	f.metrics.PollsTotal.WithLabelValues("success").Inc()
	f.lastSuccess = now
	f.lastPoll.Store(now.UnixNano())
	f.ready.Store(true)
	f.logger.Info("poll complete",
		"window_start", start,
		"window_end", now,
		"fetched", len(cat.Features),
		"published", len(fresh),
	)
	return nil
}

// windowStart pads backwards from the last success so events the upstream
// ingested late still land in a window. The first poll covers one interval
// plus the overlap.
func (f *Feed) windowStart(now time.Time) time.Time {
	if f.lastSuccess.IsZero() {
		return now.Add(-f.interval - f.overlap)
	}
	return f.lastSuccess.Add(-f.overlap)
}
