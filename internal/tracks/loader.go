// Package tracks normalizes a recording's raw file manifest into an ordered,
// playable track list.
package tracks

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/llehouerou/tapedeck/internal/archive"
)

// playableFormat is the one manifest format this client streams.
const playableFormat = "VBR MP3"

// unnumberedTrack sorts entries without a parsable track number after all
// numbered entries.
const unnumberedTrack = 999

// Track is a single playable audio item belonging to one recording. The URL
// doubles as the dedup key for track favorites.
type Track struct {
	Title          string `json:"title"`
	URL            string `json:"url"`
	Length         int    `json:"length"`
	ShowIdentifier string `json:"showIdentifier"`
}

// MetadataFetcher fetches a recording's file manifest.
type MetadataFetcher interface {
	Metadata(ctx context.Context, identifier string) ([]archive.File, error)
}

// Loader builds track lists from file manifests.
type Loader struct {
	meta MetadataFetcher
}

// NewLoader creates a loader backed by the given metadata collaborator.
func NewLoader(meta MetadataFetcher) *Loader {
	return &Loader{meta: meta}
}

// Load fetches the manifest for a recording and normalizes it: only titled
// VBR MP3 entries survive, ordered by declared track number with unnumbered
// entries last (stable among themselves). An empty or malformed manifest
// yields an empty track list.
func (l *Loader) Load(ctx context.Context, identifier string) ([]Track, error) {
	files, err := l.meta.Metadata(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("fetch manifest: %w", err)
	}
	return Normalize(identifier, files), nil
}

// Normalize filters and orders a manifest into tracks. Exposed separately so
// the ordering policy is testable without a fetcher.
func Normalize(identifier string, files []archive.File) []Track {
	kept := make([]archive.File, 0, len(files))
	for _, f := range files {
		if f.Format == playableFormat && strings.TrimSpace(f.Title) != "" {
			kept = append(kept, f)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return trackNumber(kept[i]) < trackNumber(kept[j])
	})

	result := make([]Track, 0, len(kept))
	for _, f := range kept {
		result = append(result, Track{
			Title:          f.Title,
			URL:            archive.DownloadURL(identifier, f.Name),
			Length:         ParseLength(f.Length),
			ShowIdentifier: identifier,
		})
	}
	return result
}

func trackNumber(f archive.File) int {
	n, err := strconv.Atoi(strings.TrimSpace(f.Track))
	if err != nil {
		return unnumberedTrack
	}
	return n
}
