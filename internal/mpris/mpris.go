//go:build linux

// Package mpris exposes the playback session as a desktop media player over
// D-Bus, so system media keys and applets can control it.
package mpris

import (
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/tapedeck/internal/playback"
)

// Adapter connects a playback session to MPRIS over D-Bus.
type Adapter struct {
	session       *playback.Session
	server        *server.Server
	playerAdapter *playerAdapter
}

// New creates and starts a new MPRIS adapter. The artist and artURL are
// fixed for the whole run; the album follows the show being played.
func New(session *playback.Session, artist, artURL string) (*Adapter, error) {
	a := &Adapter{
		session: session,
	}

	rootAdapter := &rootAdapter{}
	playerAdapter := &playerAdapter{
		session: session,
		artist:  artist,
		artURL:  artURL,
	}

	a.server = server.NewServer("tapedeck", rootAdapter, playerAdapter)

	// Start the server in background
	go func() {
		_ = a.server.Listen()
	}()

	a.playerAdapter = playerAdapter
	return a, nil
}

// SetAlbum updates the album shown in metadata (the show date).
func (a *Adapter) SetAlbum(album string) {
	a.playerAdapter.setAlbum(album)
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil // Track list interface not implemented
}

func (r *rootAdapter) Identity() (string, error) {
	return "Tapedeck", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/mp3"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	session *playback.Session
	artist  string
	artURL  string

	albumMu sync.RWMutex
	album   string
}

func (p *playerAdapter) setAlbum(album string) {
	p.albumMu.Lock()
	p.album = album
	p.albumMu.Unlock()
}

func (p *playerAdapter) currentAlbum() string {
	p.albumMu.RLock()
	defer p.albumMu.RUnlock()
	return p.album
}

func (p *playerAdapter) Next() error {
	return p.session.Next()
}

func (p *playerAdapter) Previous() error {
	return p.session.Previous()
}

func (p *playerAdapter) Pause() error {
	if p.session.State() == playback.StatePlaying {
		return p.session.Toggle()
	}
	return nil
}

func (p *playerAdapter) PlayPause() error {
	return p.session.Toggle()
}

func (p *playerAdapter) Stop() error {
	p.session.Stop()
	return nil
}

func (p *playerAdapter) Play() error {
	if p.session.State() != playback.StatePlaying {
		return p.session.Toggle()
	}
	return nil
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	dur := p.session.Duration()
	if dur <= 0 {
		return nil
	}
	target := p.session.Position() + time.Duration(offset)*time.Microsecond
	p.session.Seek(float64(target) / float64(dur))
	return nil
}

func (p *playerAdapter) SetPosition(_ string, position types.Microseconds) error {
	dur := p.session.Duration()
	if dur <= 0 {
		return nil
	}
	p.session.Seek(float64(time.Duration(position)*time.Microsecond) / float64(dur))
	return nil
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	switch p.session.State() {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying, nil
	case playback.StatePaused:
		return types.PlaybackStatusPaused, nil
	case playback.StateStopped:
		return types.PlaybackStatusStopped, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	track := p.session.CurrentTrack()
	if track == nil {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.URL)),
		Length:  types.Microseconds(p.session.Duration().Microseconds()),
		Title:   track.Title,
		Artist:  []string{p.artist},
		Album:   p.currentAlbum(),
	}

	if p.artURL != "" {
		meta.ArtUrl = p.artURL
	}

	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil // Volume control not exposed via session
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return p.session.Position().Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return p.session.CurrentIndex() < len(p.session.Tracks())-1, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return p.session.CurrentIndex() > 0, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return len(p.session.Tracks()) > 0, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(url string) string {
	h := fnv.New64a()
	h.Write([]byte(url))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
