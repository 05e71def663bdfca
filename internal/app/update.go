package app

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tapedeck/internal/errmsg"
	"github.com/llehouerou/tapedeck/internal/player"
	"github.com/llehouerou/tapedeck/internal/playback"
	"github.com/llehouerou/tapedeck/internal/shows"
	"github.com/llehouerou/tapedeck/internal/state"
	"github.com/llehouerou/tapedeck/internal/tracks"
	"github.com/llehouerou/tapedeck/internal/ui/list"
)

// seekStep is how far the arrow keys move within the current track.
const seekStep = 10 * time.Second

// Update handles messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case SearchResultMsg:
		return m.handleSearchResult(msg)

	case OnThisDayResultMsg:
		return m.handleOnThisDayResult(msg)

	case TracksLoadedMsg:
		return m.handleTracksLoaded(msg)

	case TrackFinishedMsg:
		m.startingTrack = true
		return m, tea.Batch(
			StartTrackCmd(m.session.OnTrackFinished),
			m.WatchTrackFinished(),
			m.spinner.Tick,
		)

	case PlaybackStartedMsg:
		m.startingTrack = false
		if msg.Err != nil {
			m.errorMsg = errmsg.Format(errmsg.OpPlaybackStart, msg.Err)
		}
		return m, nil

	case TickMsg:
		if m.player.State() == player.Playing {
			m.session.OnTimeUpdate(m.player.Position(), m.player.Duration())
			return m, TickCmd()
		}
		m.tickRunning = false
		return m, nil

	case SessionStateMsg:
		cmds := []tea.Cmd{m.WatchSessionEvents()}
		if msg.Current == playback.StatePlaying && !m.tickRunning {
			m.tickRunning = true
			cmds = append(cmds, TickCmd())
		}
		return m, tea.Batch(cmds...)

	case SessionTrackMsg:
		if m.viewMode == ViewShow && m.queueIdentifier != "" && m.openShow != nil &&
			m.queueIdentifier == m.openShow.Primary.Identifier {
			m.trackList.Select(msg.Index)
		}
		return m, m.WatchSessionEvents()

	case SessionPositionMsg:
		return m, m.WatchSessionEvents()

	case SessionErrorMsg:
		m.errorMsg = errmsg.FormatWith(errmsg.OpPlaybackStart, msg.URL, msg.Err)
		return m, m.WatchSessionEvents()

	case SessionClosedMsg:
		return m, nil

	case spinner.TickMsg:
		if !m.searching && !m.loadingTracks && !m.startingTrack {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	contentHeight := max(msg.Height-chromeHeight, 1)
	m.results.SetSize(msg.Width, contentHeight)
	m.trackList.SetSize(msg.Width, contentHeight)
	m.favShowList.SetSize(msg.Width, contentHeight)
	m.favTrackList.SetSize(msg.Width, contentHeight)
	m.altList.SetSize(msg.Width, contentHeight)

	inputWidth := max(msg.Width-20, 10)
	m.queryInput.Width = inputWidth
	m.yearInput.Width = 4
	m.monthInput.Width = 2
	return m, nil
}

func (m Model) handleSearchResult(msg SearchResultMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.searchGen {
		// A newer search superseded this one
		return m, nil
	}
	m.searching = false
	if msg.Err != nil {
		m.errorMsg = errmsg.Format(errmsg.OpSearch, msg.Err)
		return m, nil
	}
	m.errorMsg = ""
	m.results.ResetItems(msg.Shows)
	return m, nil
}

func (m Model) handleOnThisDayResult(msg OnThisDayResultMsg) (tea.Model, tea.Cmd) {
	if msg.Gen != m.searchGen {
		return m, nil
	}
	m.searching = false
	if msg.Err != nil {
		m.errorMsg = errmsg.Format(errmsg.OpOnThisDay, msg.Err)
		return m, nil
	}
	m.errorMsg = ""
	m.results.ResetItems(msg.Shows)
	return m, nil
}

func (m Model) handleTracksLoaded(msg TracksLoadedMsg) (tea.Model, tea.Cmd) {
	m.loadingTracks = false
	if m.openShow == nil || m.openShow.Primary.Identifier != msg.Identifier {
		// User opened another show before this one finished loading
		return m, nil
	}
	if msg.Err != nil {
		m.errorMsg = errmsg.FormatWith(errmsg.OpTracksLoad, msg.Identifier, msg.Err)
		return m, nil
	}
	m.errorMsg = ""
	m.trackList.ResetItems(msg.Tracks)
	m.viewMode = ViewShow
	if m.media != nil {
		m.media.SetAlbum(msg.Date)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	if m.altPicker {
		return m.handleAltPickerKey(msg)
	}
	if m.inputFocused {
		return m.handleInputKey(msg)
	}

	switch key {
	case "q":
		return m, tea.Quit

	case "1":
		m.viewMode = ViewBrowse
		return m, nil

	case "2":
		if m.openShow != nil {
			m.viewMode = ViewShow
		}
		return m, nil

	case "3":
		m.viewMode = ViewFavorites
		m.refreshFavorites()
		return m, nil

	case "/":
		if m.viewMode == ViewBrowse {
			m.inputFocused = true
			m.field = fieldQuery
			return m, m.focusField()
		}
		return m, nil

	case " ":
		// Resuming a stopped track refetches it, so run off the loop too.
		return m, StartTrackCmd(m.session.Toggle)

	case "n":
		m.startingTrack = true
		return m, tea.Batch(StartTrackCmd(m.session.Next), m.spinner.Tick)

	case "p":
		m.startingTrack = true
		return m, tea.Batch(StartTrackCmd(m.session.Previous), m.spinner.Tick)

	case "left":
		m.seekBy(-seekStep)
		return m, nil

	case "right":
		m.seekBy(seekStep)
		return m, nil
	}

	switch m.viewMode {
	case ViewBrowse:
		return m.handleBrowseKey(msg)
	case ViewShow:
		return m.handleShowKey(msg)
	case ViewFavorites:
		return m.handleFavoritesKey(msg)
	}
	return m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		m.cycleSort()
		return m.rerunSearch()

	case "o":
		m.searchGen++
		m.searching = true
		m.resultsTitle = "On this day"
		m.errorMsg = ""
		return m, tea.Batch(m.OnThisDayCmd(m.searchGen), m.spinner.Tick)

	case "x":
		m.queryInput.SetValue("")
		m.yearInput.SetValue("")
		m.monthInput.SetValue("")
		return m, nil

	case "f":
		if show, ok := m.results.Selected(); ok {
			if _, err := m.favs.ToggleShow(show); err != nil {
				m.errorMsg = errmsg.Format(errmsg.OpFavoriteToggle, err)
			}
		}
		return m, nil

	case "a":
		if show, ok := m.results.Selected(); ok && len(show.Alternates) > 0 {
			m.altPicker = true
			m.altShowIndex = m.results.SelectedIndex()
			m.altList.ResetItems(show.Recordings())
			m.altList.SetFocused(true)
		}
		return m, nil
	}

	result := m.results.Update(msg)
	if result.Action == list.ActionEnter {
		if show, ok := m.results.Selected(); ok {
			return m.openShowTracks(show)
		}
	}
	return m, nil
}

func (m Model) handleShowKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace":
		m.viewMode = ViewBrowse
		return m, nil

	case "f":
		if track, ok := m.trackList.Selected(); ok && m.openShow != nil {
			if _, err := m.favs.ToggleTrack(track, m.openShow.Date); err != nil {
				m.errorMsg = errmsg.Format(errmsg.OpFavoriteToggle, err)
			}
		}
		return m, nil
	}

	result := m.trackList.Update(msg)
	if result.Action == list.ActionEnter && m.openShow != nil {
		return m.playTrackAt(result.Index)
	}
	return m, nil
}

func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.favTab == favShows {
			m.favTab = favTracks
		} else {
			m.favTab = favShows
		}
		return m, nil

	case "esc":
		m.viewMode = ViewBrowse
		return m, nil

	case "f":
		if m.favTab == favShows {
			if show, ok := m.favShowList.Selected(); ok {
				if _, err := m.favs.ToggleShow(show); err != nil {
					m.errorMsg = errmsg.Format(errmsg.OpFavoriteToggle, err)
				}
				m.refreshFavorites()
			}
		} else {
			if fav, ok := m.favTrackList.Selected(); ok {
				if _, err := m.favs.ToggleTrack(fav.Track, fav.Date); err != nil {
					m.errorMsg = errmsg.Format(errmsg.OpFavoriteToggle, err)
				}
				m.refreshFavorites()
			}
		}
		return m, nil
	}

	if m.favTab == favShows {
		result := m.favShowList.Update(msg)
		if result.Action == list.ActionEnter {
			if show, ok := m.favShowList.Selected(); ok {
				return m.openShowTracks(show)
			}
		}
		return m, nil
	}

	result := m.favTrackList.Update(msg)
	if result.Action == list.ActionEnter {
		return m.playFavoriteTracks(result.Index)
	}
	return m, nil
}

func (m Model) handleAltPickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "a", "q":
		m.altPicker = false
		return m, nil
	}

	result := m.altList.Update(msg)
	if result.Action == list.ActionEnter {
		if doc, ok := m.altList.Selected(); ok {
			items := m.results.Items()
			if m.altShowIndex < len(items) {
				items[m.altShowIndex].SwapPrimary(doc.Identifier)
			}
		}
		m.altPicker = false
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.blurInputs()
		return m, nil

	case "tab":
		m.field = (m.field + 1) % 3
		return m, m.focusField()

	case "shift+tab":
		m.field = (m.field + 2) % 3
		return m, m.focusField()

	case "enter":
		m.blurInputs()
		return m.startSearch()
	}

	var cmd tea.Cmd
	switch m.field {
	case fieldQuery:
		m.queryInput, cmd = m.queryInput.Update(msg)
	case fieldYear:
		m.yearInput, cmd = m.yearInput.Update(msg)
	case fieldMonth:
		m.monthInput, cmd = m.monthInput.Update(msg)
	}
	return m, cmd
}

// startSearch issues a search from the current inputs. Blank inputs are a
// no-op: an unconstrained query is never sent.
func (m Model) startSearch() (tea.Model, tea.Cmd) {
	spec, ok := m.currentQuerySpec()
	if !ok {
		return m, nil
	}
	m.searchGen++
	m.searching = true
	m.resultsTitle = "Search results"
	m.errorMsg = ""
	m.stateMgr.SaveSearch(state.SearchState{
		Query: m.queryInput.Value(),
		Year:  m.yearInput.Value(),
		Month: m.monthInput.Value(),
		Sort:  m.sortKey,
	})
	return m, tea.Batch(m.SearchCmd(spec, m.searchGen), m.spinner.Tick)
}

// rerunSearch re-issues whatever populated the browse list, picking up the
// current sort key.
func (m Model) rerunSearch() (tea.Model, tea.Cmd) {
	if m.resultsTitle == "On this day" {
		m.searchGen++
		m.searching = true
		return m, tea.Batch(m.OnThisDayCmd(m.searchGen), m.spinner.Tick)
	}
	return m.startSearch()
}

// openShowTracks loads the track list of a show's primary recording.
func (m Model) openShowTracks(show shows.Show) (tea.Model, tea.Cmd) {
	selected := show
	m.openShow = &selected
	m.loadingTracks = true
	m.errorMsg = ""
	return m, tea.Batch(m.LoadTracksCmd(selected), m.spinner.Tick)
}

// playTrackAt starts playback within the open show, loading the track list
// into the session the first time. The start runs as a command: fetching the
// audio must not stall the update loop.
func (m Model) playTrackAt(index int) (tea.Model, tea.Cmd) {
	id := m.openShow.Primary.Identifier
	session := m.session
	m.startingTrack = true
	m.errorMsg = ""

	var start tea.Cmd
	if m.queueIdentifier != id {
		m.queueIdentifier = id
		queue := append([]tracks.Track(nil), m.trackList.Items()...)
		start = StartTrackCmd(func() error { return session.Open(queue, index) })
	} else {
		start = StartTrackCmd(func() error { return session.SelectTrack(index) })
	}
	return m, tea.Batch(start, m.spinner.Tick)
}

// playFavoriteTracks plays the favorite-tracks list as a queue starting at
// the given index.
func (m Model) playFavoriteTracks(index int) (tea.Model, tea.Cmd) {
	favs := m.favTrackList.Items()
	if index < 0 || index >= len(favs) {
		return m, nil
	}
	queue := make([]tracks.Track, len(favs))
	for i, fav := range favs {
		queue[i] = fav.Track
	}
	m.queueIdentifier = "favorites"
	m.startingTrack = true
	m.errorMsg = ""
	if m.media != nil {
		m.media.SetAlbum(favs[index].Date)
	}
	session := m.session
	start := StartTrackCmd(func() error { return session.Open(queue, index) })
	return m, tea.Batch(start, m.spinner.Tick)
}

func (m *Model) seekBy(delta time.Duration) {
	dur := m.session.Duration()
	if dur <= 0 {
		return
	}
	pos := m.session.Position() + delta
	m.session.Seek(float64(pos) / float64(dur))
}

func (m *Model) blurInputs() {
	m.inputFocused = false
	m.queryInput.Blur()
	m.yearInput.Blur()
	m.monthInput.Blur()
}

func (m *Model) focusField() tea.Cmd {
	m.queryInput.Blur()
	m.yearInput.Blur()
	m.monthInput.Blur()
	switch m.field {
	case fieldQuery:
		return m.queryInput.Focus()
	case fieldYear:
		return m.yearInput.Focus()
	case fieldMonth:
		return m.monthInput.Focus()
	}
	return nil
}
