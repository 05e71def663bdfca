//go:build !linux

package mpris

import "github.com/llehouerou/tapedeck/internal/playback"

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ *playback.Session, _, _ string) (*Adapter, error) {
	return &Adapter{}, nil
}

// SetAlbum is a no-op on non-Linux platforms.
func (a *Adapter) SetAlbum(_ string) {}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
