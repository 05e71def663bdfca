package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/llehouerou/tapedeck/internal/playback"
	"github.com/llehouerou/tapedeck/internal/shows"
	"github.com/llehouerou/tapedeck/internal/ui"
	"github.com/llehouerou/tapedeck/internal/ui/render"
	"github.com/llehouerou/tapedeck/internal/ui/styles"
)

// chromeHeight is the number of rows taken by everything around the list:
// header, view title, player bar and status line.
const chromeHeight = 7

// View renders the application UI.
func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteByte('\n')

	switch {
	case m.altPicker:
		b.WriteString(m.renderAltPicker())
	case m.viewMode == ViewBrowse:
		b.WriteString(m.renderBrowse())
	case m.viewMode == ViewShow:
		b.WriteString(m.renderShow())
	case m.viewMode == ViewFavorites:
		b.WriteString(m.renderFavorites())
	}

	b.WriteByte('\n')
	b.WriteString(m.renderPlayerBar())
	b.WriteByte('\n')
	b.WriteString(m.renderStatusLine())
	return b.String()
}

func (m Model) renderHeader() string {
	s := styles.T().S()

	tabs := []struct {
		mode  ViewMode
		label string
	}{
		{ViewBrowse, "[1] browse"},
		{ViewShow, "[2] show"},
		{ViewFavorites, "[3] favorites"},
	}

	var parts []string
	for _, tab := range tabs {
		if tab.mode == m.viewMode {
			parts = append(parts, s.Title.Render(tab.label))
		} else {
			parts = append(parts, s.Muted.Render(tab.label))
		}
	}

	left := styles.GradientTitle("tapedeck") + "  " + strings.Join(parts, "  ")
	right := s.Muted.Render(m.cfg.Artist)
	return render.Row(left, right, m.width)
}

func (m Model) renderBrowse() string {
	s := styles.T().S()
	var b strings.Builder

	// Search bar
	filters := fmt.Sprintf("year %s  month %s  sort %s",
		m.yearInput.View(), m.monthInput.View(), m.sortLabel())
	b.WriteString(render.Row(m.queryInput.View(), s.Muted.Render(filters), m.width))
	b.WriteByte('\n')

	// Title line
	switch {
	case m.searching:
		b.WriteString(m.spinner.View() + s.Muted.Render("Searching..."))
	case m.results.Len() == 0:
		b.WriteString(s.Muted.Render(m.resultsTitle + ": no shows found"))
	default:
		b.WriteString(s.Title.Render(fmt.Sprintf("%s (%d)", m.resultsTitle, m.results.Len())))
	}
	b.WriteByte('\n')

	b.WriteString(m.renderShowList(m.results))
	return b.String()
}

// renderShowList renders the visible slice of a show list with cursor and
// favorite highlighting.
func (m Model) renderShowList(l interface {
	Items() []shows.Show
	SelectedIndex() int
	VisibleRange(overhead int) (int, int)
}) string {
	s := styles.T().S()
	items := l.Items()
	start, end := l.VisibleRange(ui.PanelOverhead)

	var b strings.Builder
	for i := start; i < end; i++ {
		show := items[i]

		marker := "  "
		if m.favs.IsFavoriteShow(show.Primary.Identifier) {
			marker = s.Favorite.Render("* ")
		}

		left := marker + show.Date + "  " + render.Truncate(show.Primary.Title, m.width/2)

		var details []string
		if rating := ui.FormatRating(show.Primary.AvgRating); rating != "" {
			details = append(details, rating)
		}
		details = append(details, ui.FormatDownloads(show.Primary.Downloads)+" dl")
		if n := len(show.Alternates); n > 0 {
			details = append(details, fmt.Sprintf("+%d src", n))
		}
		right := s.Muted.Render(strings.Join(details, "  "))

		line := render.Row(left, right, m.width)
		if i == l.SelectedIndex() {
			line = s.Cursor.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderShow() string {
	s := styles.T().S()
	var b strings.Builder

	if m.openShow == nil {
		return s.Muted.Render("No show open")
	}

	title := m.openShow.Date + "  " + render.Truncate(m.openShow.Primary.Title, m.width-14)
	b.WriteString(s.Title.Render(title))
	b.WriteByte('\n')

	if venue := render.Sanitize(m.openShow.Primary.Venue); venue != "" {
		b.WriteString(s.Muted.Render(render.Truncate(venue, m.width)))
	}
	b.WriteByte('\n')

	if m.loadingTracks {
		b.WriteString(m.spinner.View() + s.Muted.Render("Loading tracks..."))
		return b.String()
	}
	if m.trackList.Len() == 0 {
		b.WriteString(s.Muted.Render("No playable tracks in this recording"))
		return b.String()
	}

	current := m.session.CurrentTrack()
	items := m.trackList.Items()
	start, end := m.trackList.VisibleRange(ui.PanelOverhead)

	for i := start; i < end; i++ {
		track := items[i]

		marker := "  "
		style := s.Base
		if current != nil && current.URL == track.URL && m.session.State().IsActive() {
			marker = "> "
			style = s.Playing
		}
		if m.favs.IsFavoriteTrack(track.URL) {
			marker = s.Favorite.Render("* ")
		}

		left := marker + style.Render(render.Truncate(track.Title, m.width-12))
		right := s.Muted.Render(ui.FormatSeconds(track.Length))
		line := render.Row(left, right, m.width)
		if i == m.trackList.SelectedIndex() {
			line = s.Cursor.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderFavorites() string {
	s := styles.T().S()
	var b strings.Builder

	showsTab := "shows"
	tracksTab := "tracks"
	if m.favTab == favShows {
		showsTab = s.Title.Render(showsTab)
		tracksTab = s.Muted.Render(tracksTab)
	} else {
		showsTab = s.Muted.Render(showsTab)
		tracksTab = s.Title.Render(tracksTab)
	}
	b.WriteString("Favorites: " + showsTab + " | " + tracksTab + s.Subtle.Render("  (tab to switch)"))
	b.WriteByte('\n')
	b.WriteByte('\n')

	if m.favTab == favShows {
		if m.favShowList.Len() == 0 {
			b.WriteString(s.Muted.Render("No favorite shows yet"))
			return b.String()
		}
		b.WriteString(m.renderShowList(m.favShowList))
		return b.String()
	}

	if m.favTrackList.Len() == 0 {
		b.WriteString(s.Muted.Render("No favorite tracks yet"))
		return b.String()
	}

	items := m.favTrackList.Items()
	start, end := m.favTrackList.VisibleRange(ui.PanelOverhead)
	for i := start; i < end; i++ {
		fav := items[i]
		left := "  " + fav.Date + "  " + render.Truncate(fav.Title, m.width-24)
		right := s.Muted.Render(ui.FormatSeconds(fav.Length))
		line := render.Row(left, right, m.width)
		if i == m.favTrackList.SelectedIndex() {
			line = s.Cursor.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderAltPicker() string {
	s := styles.T().S()
	var b strings.Builder

	items := m.altList.Items()
	if len(items) == 0 {
		return s.Muted.Render("No recordings")
	}

	// Border takes one column on each side
	innerWidth := max(m.width-2, 10)

	b.WriteString(s.Title.Render("Choose recording (enter to make primary, esc to cancel)"))
	b.WriteByte('\n')

	start, end := m.altList.VisibleRange(ui.PanelOverhead)
	for i := start; i < end; i++ {
		doc := items[i]

		source := render.Sanitize(doc.Source)
		if source == "" {
			source = doc.Identifier
		}
		left := "  " + render.Truncate(source, innerWidth*2/3)

		var details []string
		if rating := ui.FormatRating(doc.AvgRating); rating != "" {
			details = append(details, rating)
		}
		details = append(details, ui.FormatDownloads(doc.Downloads)+" dl")
		right := s.Muted.Render(strings.Join(details, "  "))

		line := render.Row(left, right, innerWidth)
		if i == m.altList.SelectedIndex() {
			line = s.Cursor.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return styles.PanelStyle(true).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderPlayerBar() string {
	s := styles.T().S()

	if m.startingTrack {
		return render.Separator(m.width) + "\n" + m.spinner.View() + s.Muted.Render("Loading track...")
	}

	track := m.session.CurrentTrack()
	if track == nil || m.session.State() == playback.StateStopped {
		return render.Separator(m.width) + "\n" + s.Subtle.Render("nothing playing")
	}

	icon := ">"
	if m.session.State() == playback.StatePaused {
		icon = "||"
	}

	pos := m.session.Position()
	dur := m.session.Duration()
	left := s.Playing.Render(icon+" ") + render.Truncate(track.Title, m.width/2)
	right := s.Muted.Render(ui.FormatDuration(pos) + " / " + ui.FormatDuration(dur))

	return render.Separator(m.width) + "\n" +
		render.Row(left, right, m.width) + "\n" +
		m.renderProgress(pos, dur)
}

func (m Model) renderProgress(pos, dur time.Duration) string {
	s := styles.T().S()

	barWidth := max(m.width, ui.MinProgressBarWidth)
	if dur.Seconds() <= 0 {
		return s.Subtle.Render(strings.Repeat("░", barWidth))
	}

	frac := pos.Seconds() / dur.Seconds()
	frac = min(max(frac, 0), 1)
	filled := int(frac * float64(barWidth))

	return s.Playing.Render(strings.Repeat("█", filled)) +
		s.Subtle.Render(strings.Repeat("░", barWidth-filled))
}

func (m Model) renderStatusLine() string {
	s := styles.T().S()
	if m.errorMsg != "" {
		return s.Error.Render(render.Truncate(m.errorMsg, m.width))
	}
	if m.inputFocused {
		return s.Subtle.Render("enter search · tab next field · esc cancel")
	}
	return s.Subtle.Render("space play/pause · n/p track · arrows seek · f favorite · a recordings · s sort · o today · x clear · q quit")
}
