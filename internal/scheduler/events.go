package scheduler

import (
	"github.com/dc404/weathermap/internal/models"
	"github.com/dc404/weathermap/internal/nws"
)

// Event is published by the engine for the display layer to consume.
type Event interface{ isEvent() }

// MapURLChanged is emitted whenever the map parameters change.
type MapURLChanged struct {
	URL string
}

// FeedUpdated carries a complete fetch result. Each feed replaces the
// previous one wholesale.
type FeedUpdated struct {
	Feed *models.Feed
}

// FetchFailed reports one failed fetch pass. Failures are recoverable and
// only update the status line; the next tick or manual refresh retries.
type FetchFailed struct {
	Err *nws.FetchError
}

func (MapURLChanged) isEvent() {}
func (FeedUpdated) isEvent()   {}
func (FetchFailed) isEvent()   {}
