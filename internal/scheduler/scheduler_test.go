package scheduler

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/dc404/weathermap/internal/models"
	"github.com/dc404/weathermap/internal/nws"
	"github.com/dc404/weathermap/internal/params"
)

// stubSource resolves real descriptors but fakes the HTTP layer.
type stubSource struct {
	mu  sync.Mutex
	err error
}

func (s *stubSource) Resolve(mode params.QueryMode, snap params.Snapshot, settings params.AlertSettings) nws.QueryDescriptor {
	return nws.Resolve(mode, snap, settings)
}

func (s *stubSource) Fetch(_ context.Context, desc nws.QueryDescriptor, _ params.AlertSettings) (*models.Feed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return &models.Feed{SourceURL: desc.PrimaryURL, FetchedAt: time.Now()}, nil
}

func startScheduler(t *testing.T, source AlertSource, settings params.AlertSettings) (*Scheduler, *clockwork.FakeClock) {
	t.Helper()

	clock := clockwork.NewFakeClock()
	s := New(source, params.DefaultSnapshot(), settings)
	s.clock = clock

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go s.Run(ctx)

	// Run always announces the initial map URL first.
	ev := awaitEvent(t, s.Events())
	require.IsType(t, MapURLChanged{}, ev)

	return s, clock
}

func awaitEvent(t *testing.T, events <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func awaitFeed(t *testing.T, events <-chan Event) FeedUpdated {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-events:
			if feed, ok := ev.(FeedUpdated); ok {
				return feed
			}
		case <-deadline:
			t.Fatal("timed out waiting for feed event")
		}
	}
}

// requireNoFeed drains events for the window and fails on any fetch result.
func requireNoFeed(t *testing.T, events <-chan Event, window time.Duration) {
	t.Helper()
	deadline := time.After(window)
	for {
		select {
		case ev := <-events:
			_, isFeed := ev.(FeedUpdated)
			_, isErr := ev.(FetchFailed)
			require.False(t, isFeed || isErr, "unexpected fetch result %T", ev)
		case <-deadline:
			return
		}
	}
}

func TestIdle_NoFetchWithoutTrigger(t *testing.T) {
	settings := params.DefaultAlertSettings()
	settings.AutoRefresh = false

	s, clock := startScheduler(t, &stubSource{}, settings)

	clock.Advance(time.Hour)
	requireNoFeed(t, s.Events(), 100*time.Millisecond)

	s.TriggerNow()
	feed := awaitFeed(t, s.Events())
	require.Contains(t, feed.Feed.SourceURL, "point=")

	requireNoFeed(t, s.Events(), 100*time.Millisecond)
}

func TestActive_FetchesOncePerTick(t *testing.T) {
	settings := params.DefaultAlertSettings()
	settings.AutoRefresh = true
	settings.IntervalSeconds = 60

	s, clock := startScheduler(t, &stubSource{}, settings)
	clock.BlockUntil(1) // ticker registered

	clock.Advance(60 * time.Second)
	awaitFeed(t, s.Events())
	requireNoFeed(t, s.Events(), 100*time.Millisecond)

	clock.Advance(60 * time.Second)
	awaitFeed(t, s.Events())
	requireNoFeed(t, s.Events(), 100*time.Millisecond)
}

func TestActive_DisableStopsTimer(t *testing.T) {
	settings := params.DefaultAlertSettings()
	settings.AutoRefresh = true
	settings.IntervalSeconds = 60

	s, clock := startScheduler(t, &stubSource{}, settings)
	clock.BlockUntil(1)

	s.SetAutoRefresh(false)
	// TriggerNow is processed after the toggle (same command queue), so its
	// feed confirms the timer state change landed.
	s.TriggerNow()
	awaitFeed(t, s.Events())

	clock.Advance(time.Hour)
	requireNoFeed(t, s.Events(), 100*time.Millisecond)
}

func TestActive_IntervalChangeRestartsCountdown(t *testing.T) {
	settings := params.DefaultAlertSettings()
	settings.AutoRefresh = true
	settings.IntervalSeconds = 60

	s, clock := startScheduler(t, &stubSource{}, settings)
	clock.BlockUntil(1)

	settings.IntervalSeconds = 90
	s.UpdateAlertSettings(settings)
	s.TriggerNow()
	awaitFeed(t, s.Events())

	// The old 60s cadence must be gone and the new countdown starts from
	// the change, not from elapsed time.
	clock.Advance(60 * time.Second)
	requireNoFeed(t, s.Events(), 100*time.Millisecond)

	clock.Advance(30 * time.Second)
	awaitFeed(t, s.Events())
}

func TestUpdateParameters_PointModeCrossTriggers(t *testing.T) {
	settings := params.DefaultAlertSettings()
	settings.AutoRefresh = false
	settings.Mode = params.ModePoint

	s, _ := startScheduler(t, &stubSource{}, settings)

	snap := params.DefaultSnapshot()
	snap.Lat = 27.9506
	snap.Lon = -82.4572
	s.UpdateParameters(snap)

	ev := awaitEvent(t, s.Events())
	urlEv, ok := ev.(MapURLChanged)
	require.True(t, ok, "expected MapURLChanged, got %T", ev)
	require.Contains(t, urlEv.URL, "loc=27.9506,-82.4572,5")

	feed := awaitFeed(t, s.Events())
	require.Contains(t, feed.Feed.SourceURL, "point=27.9506,-82.4572")
}

func TestUpdateParameters_OtherModesOnlyUpdateURL(t *testing.T) {
	settings := params.DefaultAlertSettings()
	settings.AutoRefresh = false
	settings.Mode = params.ModeState

	s, _ := startScheduler(t, &stubSource{}, settings)

	snap := params.DefaultSnapshot()
	snap.Zoom = 8
	s.UpdateParameters(snap)

	ev := awaitEvent(t, s.Events())
	require.IsType(t, MapURLChanged{}, ev)
	requireNoFeed(t, s.Events(), 100*time.Millisecond)
}

func TestTriggerNow_StateModeQueriesArea(t *testing.T) {
	settings := params.DefaultAlertSettings()
	settings.AutoRefresh = false
	settings.Mode = params.ModeState
	settings.AreaCode = "FL"

	s, _ := startScheduler(t, &stubSource{}, settings)

	s.TriggerNow()
	feed := awaitFeed(t, s.Events())
	require.True(t, strings.HasSuffix(feed.Feed.SourceURL, "/alerts/active?area=FL"),
		"SourceURL = %s", feed.Feed.SourceURL)
}

func TestFetchFailure_PublishesFetchFailed(t *testing.T) {
	source := &stubSource{err: &nws.FetchError{
		Kind:       nws.ErrHTTPStatus,
		StatusCode: 503,
		SourceURL:  "https://api.weather.gov/alerts/active?point=1.0000,2.0000",
	}}
	settings := params.DefaultAlertSettings()
	settings.AutoRefresh = false

	s, _ := startScheduler(t, source, settings)

	s.TriggerNow()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-s.Events():
			if failed, ok := ev.(FetchFailed); ok {
				require.Equal(t, nws.ErrHTTPStatus, failed.Err.Kind)
				require.Equal(t, 503, failed.Err.StatusCode)
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for failure event")
		}
	}
}
