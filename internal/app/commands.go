package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tapedeck/internal/archive"
	"github.com/llehouerou/tapedeck/internal/shows"
)

// TickCmd returns a command that sends TickMsg after 1 second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// SearchCmd executes a search and aggregates the hits into shows, one per
// date with alternates attached. gen is echoed back so stale responses can
// be discarded.
func (m Model) SearchCmd(spec archive.QuerySpec, gen int) tea.Cmd {
	searcher := m.searcher
	return func() tea.Msg {
		docs, err := searcher.Search(context.Background(), spec)
		if err != nil {
			return SearchResultMsg{Gen: gen, Err: err}
		}
		return SearchResultMsg{Gen: gen, Shows: shows.GroupByDate(docs)}
	}
}

// OnThisDayCmd searches for shows played on today's month and day across all
// years.
func (m Model) OnThisDayCmd(gen int) tea.Cmd {
	searcher := m.searcher
	collection := m.cfg.Collection
	sort := m.sortKey
	now := time.Now()
	return func() tea.Msg {
		spec := archive.BuildOnThisDayQuery(
			collection,
			fmt.Sprintf("%02d", int(now.Month())),
			fmt.Sprintf("%02d", now.Day()),
			sort,
		)
		docs, err := searcher.Search(context.Background(), spec)
		if err != nil {
			return OnThisDayResultMsg{Gen: gen, Err: err}
		}
		return OnThisDayResultMsg{Gen: gen, Shows: shows.GroupByDate(docs)}
	}
}

// LoadTracksCmd fetches and normalizes the track list of a show's primary
// recording.
func (m Model) LoadTracksCmd(show shows.Show) tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		list, err := loader.Load(context.Background(), show.Primary.Identifier)
		return TracksLoadedMsg{
			Identifier: show.Primary.Identifier,
			Date:       show.Date,
			Title:      show.Primary.Title,
			Tracks:     list,
			Err:        err,
		}
	}
}

// StartTrackCmd runs a session call off the Update goroutine and reports its
// outcome. Starting a track fetches the audio file, which must never block
// rendering or input.
func StartTrackCmd(fn func() error) tea.Cmd {
	return func() tea.Msg {
		return PlaybackStartedMsg{Err: fn()}
	}
}

// WatchSessionEvents returns a command that waits for the next playback
// session event and converts it to a message.
func (m Model) WatchSessionEvents() tea.Cmd {
	sub := m.sub
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return SessionStateMsg(e)
		case e := <-sub.TrackChanged:
			return SessionTrackMsg(e)
		case e := <-sub.PositionChanged:
			return SessionPositionMsg(e)
		case e := <-sub.Error:
			return SessionErrorMsg(e)
		case <-sub.Done:
			return SessionClosedMsg{}
		}
	}
}

// WatchTrackFinished returns a command that waits for the player to finish a
// track naturally.
func (m Model) WatchTrackFinished() tea.Cmd {
	p := m.player
	return func() tea.Msg {
		<-p.FinishedChan()
		return TrackFinishedMsg{}
	}
}
