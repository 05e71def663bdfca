// Package playback coordinates the audio player with an ordered track list:
// selection, pause/resume, seeking and auto-advance.
package playback

import (
	"fmt"
	"sync"
	"time"

	"github.com/llehouerou/tapedeck/internal/player"
	"github.com/llehouerou/tapedeck/internal/tracks"
)

// Session drives playback over one recording's track list. All methods are
// safe for concurrent use.
type Session struct {
	mu sync.RWMutex

	player player.Interface

	tracks  []tracks.Track
	current int // -1 when nothing selected

	position time.Duration
	duration time.Duration

	subs   []*Subscription
	subsMu sync.RWMutex

	closed bool
}

// NewSession creates a session with an empty track list.
func NewSession(p player.Interface) *Session {
	return &Session{
		player:  p,
		current: -1,
	}
}

// Open replaces the track list and starts playback at the given index. An
// out-of-range index leaves the previous list playing untouched.
func (s *Session) Open(list []tracks.Track, index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(list) {
		s.mu.Unlock()
		return nil
	}
	s.tracks = append([]tracks.Track(nil), list...)
	s.mu.Unlock()

	return s.SelectTrack(index)
}

// SelectTrack starts playback of the track at index. Out-of-range indices
// are ignored.
func (s *Session) SelectTrack(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.tracks) {
		s.mu.Unlock()
		return nil
	}

	prevState := s.stateLocked()
	prevIndex := s.current
	prevTrack := s.currentTrackLocked()

	track := s.tracks[index]
	s.current = index
	s.position = 0
	s.duration = time.Duration(track.Length) * time.Second
	s.mu.Unlock()

	if err := s.player.Play(track.URL); err != nil {
		s.emitError("play", track.URL, err)
		return fmt.Errorf("play %s: %w", track.Title, err)
	}

	s.emitTrack(TrackChange{
		Previous:      prevTrack,
		Current:       &track,
		PreviousIndex: prevIndex,
		Index:         index,
	})
	s.emitStateFrom(prevState)
	return nil
}

// Next advances to the following track. At the end of the list it does
// nothing: the list never wraps.
func (s *Session) Next() error {
	s.mu.RLock()
	index := s.current + 1
	ok := s.current >= 0 && index < len(s.tracks)
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	return s.SelectTrack(index)
}

// Previous moves to the preceding track. At the head of the list it does
// nothing.
func (s *Session) Previous() error {
	s.mu.RLock()
	index := s.current - 1
	ok := index >= 0
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	return s.SelectTrack(index)
}

// Toggle pauses a playing track, resumes a paused one, and restarts the
// current track from the beginning when playback has stopped.
func (s *Session) Toggle() error {
	s.mu.RLock()
	st := s.stateLocked()
	index := s.current
	s.mu.RUnlock()

	switch st {
	case StatePlaying:
		prev := s.State()
		s.player.Pause()
		s.emitStateFrom(prev)
	case StatePaused:
		prev := s.State()
		s.player.Resume()
		s.emitStateFrom(prev)
	case StateStopped:
		if index >= 0 {
			return s.SelectTrack(index)
		}
	}
	return nil
}

// Stop halts playback but keeps the track list and selection.
func (s *Session) Stop() {
	prev := s.State()
	s.player.Stop()
	s.mu.Lock()
	s.position = 0
	s.mu.Unlock()
	s.emitStateFrom(prev)
}

// Seek jumps to a fraction of the current track (0 to 1). When the track
// duration is unknown the call does nothing.
func (s *Session) Seek(fraction float64) {
	s.mu.RLock()
	dur := s.duration
	s.mu.RUnlock()

	if dur <= 0 {
		return
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	pos := time.Duration(fraction * float64(dur))
	s.player.SeekTo(pos)

	s.mu.Lock()
	s.position = pos
	s.mu.Unlock()

	s.emitPosition()
}

// OnTimeUpdate records a timing report from the playback driver and forwards
// it to subscribers. A zero reported duration keeps the manifest-derived one.
func (s *Session) OnTimeUpdate(position, duration time.Duration) {
	s.mu.Lock()
	s.position = position
	if duration > 0 {
		s.duration = duration
	}
	s.mu.Unlock()

	s.emitPosition()
}

// OnTrackFinished advances to the next track when one plays to its natural
// end. After the final track the session stops.
func (s *Session) OnTrackFinished() error {
	s.mu.RLock()
	last := s.current >= 0 && s.current == len(s.tracks)-1
	s.mu.RUnlock()

	if !last {
		return s.Next()
	}

	prev := s.State()
	s.player.Stop()
	s.mu.Lock()
	s.position = 0
	s.mu.Unlock()
	s.emitStateFrom(prev)
	return nil
}

// State maps the player state onto the session state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	switch s.player.State() {
	case player.Playing:
		return StatePlaying
	case player.Paused:
		return StatePaused
	default:
		return StateStopped
	}
}

// CurrentTrack returns the selected track, or nil if none.
func (s *Session) CurrentTrack() *tracks.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentTrackLocked()
}

func (s *Session) currentTrackLocked() *tracks.Track {
	if s.current < 0 || s.current >= len(s.tracks) {
		return nil
	}
	t := s.tracks[s.current]
	return &t
}

// CurrentIndex returns the selected track index (-1 if none).
func (s *Session) CurrentIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Tracks returns a copy of the track list.
func (s *Session) Tracks() []tracks.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]tracks.Track(nil), s.tracks...)
}

// Position returns the last reported playback position.
func (s *Session) Position() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.position
}

// Duration returns the current track duration, preferring the decoder's
// value over the manifest one once playback reports it.
func (s *Session) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.duration
}

// Subscribe creates a new event subscription.
func (s *Session) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

// Close stops playback and closes all subscriptions.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.player.Stop()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()
	return nil
}

func (s *Session) emitStateFrom(previous State) {
	current := s.State()
	if current == previous {
		return
	}
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendState(StateChange{Previous: previous, Current: current})
	}
}

func (s *Session) emitTrack(e TrackChange) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendTrack(e)
	}
}

func (s *Session) emitPosition() {
	s.mu.RLock()
	e := PositionChange{Position: s.position, Duration: s.duration}
	s.mu.RUnlock()

	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendPosition(e)
	}
}

func (s *Session) emitError(op, url string, err error) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		sub.sendError(ErrorEvent{Operation: op, URL: url, Err: err})
	}
}
