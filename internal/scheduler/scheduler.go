// Package scheduler drives the resolve-fetch-normalize cycle behind the
// alerts display: a repeating timer while auto-refresh is on, plus on-demand
// refreshes, decoupled from any rendering toolkit.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/dc404/weathermap/internal/mapurl"
	"github.com/dc404/weathermap/internal/models"
	"github.com/dc404/weathermap/internal/nws"
	"github.com/dc404/weathermap/internal/params"
)

// AlertSource resolves and executes alert queries. *nws.Client satisfies it.
type AlertSource interface {
	Resolve(mode params.QueryMode, snap params.Snapshot, settings params.AlertSettings) nws.QueryDescriptor
	Fetch(ctx context.Context, desc nws.QueryDescriptor, settings params.AlertSettings) (*models.Feed, error)
}

type command interface{ isCommand() }

type updateParamsCmd struct{ snap params.Snapshot }
type updateSettingsCmd struct{ settings params.AlertSettings }
type triggerNowCmd struct{}
type setAutoRefreshCmd struct{ enabled bool }

func (updateParamsCmd) isCommand()   {}
func (updateSettingsCmd) isCommand() {}
func (triggerNowCmd) isCommand()     {}
func (setAutoRefreshCmd) isCommand() {}

// Scheduler owns the refresh timer and the current parameter set. All state
// lives on the Run goroutine; the exported methods only enqueue commands, so
// there is no shared mutable state. Fetches run on their own goroutines and
// overlapping results resolve last-write-wins at the display (accepted race,
// intervals are >= 30s).
type Scheduler struct {
	clock  clockwork.Clock
	source AlertSource

	snapshot params.Snapshot
	settings params.AlertSettings
	// ticker is non-nil only in the active state; nil means idle.
	ticker clockwork.Ticker

	cmds   chan command
	events chan Event
}

// New creates a scheduler with the given starting parameters. The timer is
// not started until Run.
func New(source AlertSource, snap params.Snapshot, settings params.AlertSettings) *Scheduler {
	return &Scheduler{
		clock:    clockwork.NewRealClock(),
		source:   source,
		snapshot: snap,
		settings: settings,
		cmds:     make(chan command, 16),
		events:   make(chan Event, 16),
	}
}

// Events is the stream the display layer consumes.
func (s *Scheduler) Events() <-chan Event { return s.events }

// UpdateParameters replaces the map parameter snapshot. The map URL event is
// always re-emitted; in point mode a fetch is also triggered so the alert
// set tracks the displayed location.
func (s *Scheduler) UpdateParameters(snap params.Snapshot) {
	s.cmds <- updateParamsCmd{snap: snap}
}

// UpdateAlertSettings replaces the alert-query settings. Changing the
// interval while active stops and restarts the timer, so the countdown
// resets rather than preserving elapsed time.
func (s *Scheduler) UpdateAlertSettings(settings params.AlertSettings) {
	s.cmds <- updateSettingsCmd{settings: settings}
}

// TriggerNow runs one resolve-fetch pass outside the timer's cadence. It
// works whether or not auto-refresh is on and never alters the schedule.
func (s *Scheduler) TriggerNow() {
	s.cmds <- triggerNowCmd{}
}

// SetAutoRefresh toggles the repeating timer.
func (s *Scheduler) SetAutoRefresh(enabled bool) {
	s.cmds <- setAutoRefreshCmd{enabled: enabled}
}

// Run processes commands and timer ticks until the context is cancelled.
// It announces the initial map URL and applies the configured auto-refresh
// state; no fetch happens until a tick or an explicit TriggerNow.
func (s *Scheduler) Run(ctx context.Context) {
	s.emit(ctx, MapURLChanged{URL: mapurl.Build(s.snapshot)})
	s.applyTimer()

	for {
		var tick <-chan time.Time
		if s.ticker != nil {
			tick = s.ticker.Chan()
		}

		select {
		case <-ctx.Done():
			s.stopTimer()
			return
		case cmd := <-s.cmds:
			s.handle(ctx, cmd)
		case <-tick:
			s.startFetch(ctx)
		}
	}
}

func (s *Scheduler) handle(ctx context.Context, cmd command) {
	switch c := cmd.(type) {
	case updateParamsCmd:
		s.snapshot = c.snap
		s.emit(ctx, MapURLChanged{URL: mapurl.Build(s.snapshot)})
		if s.settings.Mode == params.ModePoint {
			s.startFetch(ctx)
		}
	case updateSettingsCmd:
		prev := s.settings
		s.settings = c.settings
		if c.settings.AutoRefresh != prev.AutoRefresh ||
			c.settings.IntervalSeconds != prev.IntervalSeconds {
			s.applyTimer()
		}
	case setAutoRefreshCmd:
		if s.settings.AutoRefresh != c.enabled {
			s.settings.AutoRefresh = c.enabled
			s.applyTimer()
		}
	case triggerNowCmd:
		s.startFetch(ctx)
	}
}

// applyTimer moves the scheduler between its idle and active states. Any
// running timer is stopped first, so an interval change restarts the
// countdown from zero.
func (s *Scheduler) applyTimer() {
	s.stopTimer()
	if !s.settings.AutoRefresh {
		return
	}
	interval := time.Duration(params.ClampInterval(s.settings.IntervalSeconds)) * time.Second
	s.ticker = s.clock.NewTicker(interval)
}

func (s *Scheduler) stopTimer() {
	if s.ticker != nil {
		s.ticker.Stop()
		s.ticker = nil
	}
}

// startFetch runs one resolve-fetch pass on its own goroutine, publishing
// either the feed or the failure. The scheduler does not cancel an
// outstanding fetch when a new one starts; the later event wins.
func (s *Scheduler) startFetch(ctx context.Context) {
	snap, settings := s.snapshot, s.settings
	desc := s.source.Resolve(settings.Mode, snap, settings)

	go func() {
		feed, err := s.source.Fetch(ctx, desc, settings)
		if err != nil {
			var fe *nws.FetchError
			if !errors.As(err, &fe) {
				fe = &nws.FetchError{Kind: nws.ErrNetwork, Err: err}
			}
			s.emit(ctx, FetchFailed{Err: fe})
			return
		}
		s.emit(ctx, FeedUpdated{Feed: feed})
	}()
}

func (s *Scheduler) emit(ctx context.Context, ev Event) {
	select {
	case s.events <- ev:
	case <-ctx.Done():
	}
}
