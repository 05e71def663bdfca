package playback

import (
	"time"

	"github.com/llehouerou/tapedeck/internal/tracks"
)

// StateChange is emitted when the session state changes.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when playback starts on a different track.
//
// Emitted by Open, SelectTrack, Next, Previous and auto-advance. Pause,
// resume and seek do not emit it.
type TrackChange struct {
	Previous      *tracks.Track
	Current       *tracks.Track
	PreviousIndex int
	Index         int
}

// PositionChange is emitted on seeks and timing updates.
type PositionChange struct {
	Position time.Duration
	Duration time.Duration
}

// ErrorEvent is emitted when an error occurs during playback.
type ErrorEvent struct {
	Operation string // e.g., "play", "seek"
	URL       string // track URL if applicable
	Err       error
}
