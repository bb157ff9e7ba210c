package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-catalog-service/internal/domain"
	"github.com/couchcryptid/quake-catalog-service/internal/observability"
)

type stubFetcher struct {
	mu      sync.Mutex
	catalog domain.Catalog
	err     error
	windows [][2]time.Time
}

func (s *stubFetcher) FetchWindow(_ context.Context, start, end time.Time) (domain.Catalog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows = append(s.windows, [2]time.Time{start, end})
	return s.catalog, s.err
}

func (s *stubFetcher) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

type stubPublisher struct {
	mu      sync.Mutex
	batches [][]domain.Event
	err     error
}

func (s *stubPublisher) PublishBatch(_ context.Context, events []domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.batches = append(s.batches, events)
	return nil
}

func (s *stubPublisher) published() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []string
	for _, batch := range s.batches {
		for _, ev := range batch {
			ids = append(ids, ev.ID)
		}
	}
	return ids
}

func event(id string) domain.Event {
	return domain.Event{Type: "Feature", ID: id}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestFeed(fetcher Fetcher, publisher Publisher, clk clockwork.Clock) *Feed {
	return New(fetcher, publisher, 5*time.Minute, 10*time.Minute, 100, clk,
		discardLogger(), observability.NewMetricsForTesting())
}

func TestPollOnce_PublishesFetchedEvents(t *testing.T) {
	clk := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	fetcher := &stubFetcher{catalog: domain.Catalog{Features: []domain.Event{event("a"), event("b")}}}
	publisher := &stubPublisher{}
	f := newTestFeed(fetcher, publisher, clk)

	require.Error(t, f.CheckReadiness(context.Background()))
	assert.True(t, f.LastPoll().IsZero())

	require.NoError(t, f.PollOnce(context.Background()))

	assert.Equal(t, []string{"a", "b"}, publisher.published())
	assert.NoError(t, f.CheckReadiness(context.Background()))
	assert.True(t, f.LastPoll().Equal(clk.Now().UTC()))
}

func TestPollOnce_DeduplicatesAcrossPolls(t *testing.T) {
	clk := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	fetcher := &stubFetcher{catalog: domain.Catalog{Features: []domain.Event{event("a"), event("b")}}}
	publisher := &stubPublisher{}
	f := newTestFeed(fetcher, publisher, clk)

	require.NoError(t, f.PollOnce(context.Background()))

	// Overlapping second window returns one repeat and one new event.
	clk.Advance(5 * time.Minute)
	fetcher.mu.Lock()
	fetcher.catalog = domain.Catalog{Features: []domain.Event{event("b"), event("c")}}
	fetcher.mu.Unlock()

	require.NoError(t, f.PollOnce(context.Background()))

	assert.Equal(t, []string{"a", "b", "c"}, publisher.published())
}

func TestPollOnce_WindowAdvancesWithOverlap(t *testing.T) {
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := clockwork.NewFakeClockAt(start)
	fetcher := &stubFetcher{}
	f := newTestFeed(fetcher, &stubPublisher{}, clk)

	require.NoError(t, f.PollOnce(context.Background()))
	// First window reaches one interval plus the overlap back.
	assert.Equal(t, start.Add(-15*time.Minute), fetcher.windows[0][0])
	assert.Equal(t, start, fetcher.windows[0][1])

	clk.Advance(5 * time.Minute)
	require.NoError(t, f.PollOnce(context.Background()))
	// Second window starts overlap before the previous success.
	assert.Equal(t, start.Add(-10*time.Minute), fetcher.windows[1][0])
	assert.Equal(t, start.Add(5*time.Minute), fetcher.windows[1][1])
}

func TestPollOnce_FetchErrorLeavesWindowAnchored(t *testing.T) {
	start := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	clk := clockwork.NewFakeClockAt(start)
	fetcher := &stubFetcher{}
	f := newTestFeed(fetcher, &stubPublisher{}, clk)

	require.NoError(t, f.PollOnce(context.Background())) // anchor lastSuccess

	fetcher.mu.Lock()
	fetcher.err = errors.New("catalog down")
	fetcher.mu.Unlock()

	clk.Advance(5 * time.Minute)
	require.Error(t, f.PollOnce(context.Background()))

	clk.Advance(5 * time.Minute)
	require.Error(t, f.PollOnce(context.Background()))

	// Window start stays anchored to the last success, not the failures.
	last := fetcher.windows[len(fetcher.windows)-1]
	assert.Equal(t, start.Add(-10*time.Minute), last[0])
}

func TestPollOnce_RepublishesAfterPublishFailure(t *testing.T) {
	clk := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	fetcher := &stubFetcher{catalog: domain.Catalog{Features: []domain.Event{event("a")}}}
	publisher := &stubPublisher{err: errors.New("broker unreachable")}
	f := newTestFeed(fetcher, publisher, clk)

	require.Error(t, f.PollOnce(context.Background()))

	// Broker recovers; the next poll returns the same catalog and must
	// deliver the event the failed cycle could not.
	publisher.mu.Lock()
	publisher.err = nil
	publisher.mu.Unlock()

	clk.Advance(5 * time.Minute)
	require.NoError(t, f.PollOnce(context.Background()))

	assert.Equal(t, []string{"a"}, publisher.published())
}

func TestPollOnce_PublishErrorSurfaces(t *testing.T) {
	clk := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	fetcher := &stubFetcher{catalog: domain.Catalog{Features: []domain.Event{event("a")}}}
	publisher := &stubPublisher{err: errors.New("broker unreachable")}
	f := newTestFeed(fetcher, publisher, clk)

	err := f.PollOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker unreachable")
	assert.Error(t, f.CheckReadiness(context.Background()), "failed poll must not mark ready")
}

func TestRun_PollsOnEachInterval(t *testing.T) {
	clk := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	fetcher := &stubFetcher{}
	f := newTestFeed(fetcher, &stubPublisher{}, clk)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- f.Run(ctx) }()

	// First poll happens immediately; the loop then parks on the clock.
	clk.BlockUntil(1)
	assert.Equal(t, 1, fetcher.calls())

	clk.Advance(5 * time.Minute)
	clk.BlockUntil(1)
	assert.Equal(t, 2, fetcher.calls())

	cancel()
	require.NoError(t, <-errCh)
}

func TestSeenSet_Eviction(t *testing.T) {
	s := newSeenSet(2)

	assert.True(t, s.add("a"))
	assert.False(t, s.add("a"))
	assert.True(t, s.add("b"))
	assert.True(t, s.add("c")) // evicts "a"
	assert.True(t, s.add("a"))
	assert.False(t, s.add("c"))
}

func TestSeenSet_NonPositiveCapClamped(t *testing.T) {
	for _, cap := range []int{0, -5} {
		s := newSeenSet(cap)
		assert.True(t, s.add("a"))
		assert.False(t, s.add("a"))
		assert.True(t, s.add("b")) // evicts "a" at the clamped capacity of one
		assert.True(t, s.add("a"))
	}
}

func TestSeenSet_LargeChurn(t *testing.T) {
	s := newSeenSet(10)
	for i := 0; i < 100; i++ {
		assert.True(t, s.add(fmt.Sprintf("ev-%d", i)))
	}
	// Only the most recent cap entries remain.
	assert.False(t, s.add("ev-99"))
	assert.True(t, s.add("ev-0"))
}
