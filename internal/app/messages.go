// Package app contains the root TUI model, its messages and update loop.
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tapedeck/internal/playback"
	"github.com/llehouerou/tapedeck/internal/shows"
	"github.com/llehouerou/tapedeck/internal/tracks"
)

// Message category interfaces for type-based routing in Update().

// SearchMessage is implemented by messages carrying search results.
type SearchMessage interface {
	tea.Msg
	searchMessage()
}

// PlaybackMessage is implemented by messages related to audio playback.
type PlaybackMessage interface {
	tea.Msg
	playbackMessage()
}

// TickMsg is sent periodically while playing to refresh the progress display.
type TickMsg time.Time

func (TickMsg) playbackMessage() {}

// SearchResultMsg carries the outcome of a user-issued search. Gen identifies
// the request generation; results from a superseded generation are dropped.
type SearchResultMsg struct {
	Gen   int
	Shows []shows.Show
	Err   error
}

func (SearchResultMsg) searchMessage() {}

// OnThisDayResultMsg carries shows matching today's month and day.
type OnThisDayResultMsg struct {
	Gen   int
	Shows []shows.Show
	Err   error
}

func (OnThisDayResultMsg) searchMessage() {}

// TracksLoadedMsg carries the normalized track list of an opened recording.
type TracksLoadedMsg struct {
	Identifier string
	Date       string
	Title      string
	Tracks     []tracks.Track
	Err        error
}

func (TracksLoadedMsg) searchMessage() {}

// PlaybackStartedMsg reports the outcome of an asynchronous track start.
type PlaybackStartedMsg struct {
	Err error
}

func (PlaybackStartedMsg) playbackMessage() {}

// TrackFinishedMsg is sent when the player reaches the end of a track
// naturally. Manual stops do not produce it.
type TrackFinishedMsg struct{}

func (TrackFinishedMsg) playbackMessage() {}

// SessionStateMsg wraps a playback state transition event.
type SessionStateMsg playback.StateChange

func (SessionStateMsg) playbackMessage() {}

// SessionTrackMsg wraps a track change event.
type SessionTrackMsg playback.TrackChange

func (SessionTrackMsg) playbackMessage() {}

// SessionPositionMsg wraps a position update event.
type SessionPositionMsg playback.PositionChange

func (SessionPositionMsg) playbackMessage() {}

// SessionErrorMsg wraps a playback error event.
type SessionErrorMsg playback.ErrorEvent

func (SessionErrorMsg) playbackMessage() {}

// SessionClosedMsg is sent when the playback session shuts down.
type SessionClosedMsg struct{}

func (SessionClosedMsg) playbackMessage() {}
