// Package favorites keeps the user's saved shows and tracks, mirrored to
// persistent storage on every change.
package favorites

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/llehouerou/tapedeck/internal/shows"
	"github.com/llehouerou/tapedeck/internal/tracks"
)

const (
	showsKey  = "favorite_shows"
	tracksKey = "favorite_tracks"
)

// KV is the persistence contract the store writes through to.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// Track is a favorited track with the show date it came from, so it can be
// listed and replayed outside its original search results.
type Track struct {
	tracks.Track
	Date string `json:"date"`
}

// Store holds favorites in memory and writes every change through to the
// backing store. Methods are safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	kv     KV
	shows  []shows.Show
	tracks []Track
}

// Load reads saved favorites from kv. Corrupt or missing payloads yield an
// empty collection rather than an error, so a bad write never locks the user
// out of the app.
func Load(kv KV) (*Store, error) {
	s := &Store{kv: kv}

	raw, ok, err := kv.Get(showsKey)
	if err != nil {
		return nil, fmt.Errorf("load favorite shows: %w", err)
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &s.shows); err != nil {
			s.shows = nil
		}
	}

	raw, ok, err = kv.Get(tracksKey)
	if err != nil {
		return nil, fmt.Errorf("load favorite tracks: %w", err)
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &s.tracks); err != nil {
			s.tracks = nil
		}
	}

	return s, nil
}

// ToggleShow adds the show to favorites, or removes it when its primary
// recording is already favorited. Returns true when the show was added.
func (s *Store) ToggleShow(show shows.Show) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, fav := range s.shows {
		if fav.Primary.Identifier == show.Primary.Identifier {
			s.shows = append(s.shows[:i], s.shows[i+1:]...)
			return false, s.saveShowsLocked()
		}
	}

	s.shows = append(s.shows, show)
	return true, s.saveShowsLocked()
}

// ToggleTrack adds or removes a track favorite, identified by its URL.
// Returns true when the track was added.
func (s *Store) ToggleTrack(track tracks.Track, date string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, fav := range s.tracks {
		if fav.URL == track.URL {
			s.tracks = append(s.tracks[:i], s.tracks[i+1:]...)
			return false, s.saveTracksLocked()
		}
	}

	s.tracks = append(s.tracks, Track{Track: track, Date: date})
	return true, s.saveTracksLocked()
}

// IsFavoriteShow reports whether a recording identifier is the primary of a
// favorited show.
func (s *Store) IsFavoriteShow(identifier string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, fav := range s.shows {
		if fav.Primary.Identifier == identifier {
			return true
		}
	}
	return false
}

// IsFavoriteTrack reports whether a track URL is favorited.
func (s *Store) IsFavoriteTrack(url string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, fav := range s.tracks {
		if fav.URL == url {
			return true
		}
	}
	return false
}

// Shows returns a copy of the favorited shows in the order they were added.
func (s *Store) Shows() []shows.Show {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]shows.Show(nil), s.shows...)
}

// Tracks returns a copy of the favorited tracks in the order they were added.
func (s *Store) Tracks() []Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Track(nil), s.tracks...)
}

func (s *Store) saveShowsLocked() error {
	data, err := json.Marshal(s.shows)
	if err != nil {
		return fmt.Errorf("encode favorite shows: %w", err)
	}
	if err := s.kv.Set(showsKey, string(data)); err != nil {
		return fmt.Errorf("save favorite shows: %w", err)
	}
	return nil
}

func (s *Store) saveTracksLocked() error {
	data, err := json.Marshal(s.tracks)
	if err != nil {
		return fmt.Errorf("encode favorite tracks: %w", err)
	}
	if err := s.kv.Set(tracksKey, string(data)); err != nil {
		return fmt.Errorf("save favorite tracks: %w", err)
	}
	return nil
}
