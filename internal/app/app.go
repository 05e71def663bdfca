package app

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tapedeck/internal/archive"
	"github.com/llehouerou/tapedeck/internal/config"
	"github.com/llehouerou/tapedeck/internal/errmsg"
	"github.com/llehouerou/tapedeck/internal/favorites"
	"github.com/llehouerou/tapedeck/internal/player"
	"github.com/llehouerou/tapedeck/internal/playback"
	"github.com/llehouerou/tapedeck/internal/shows"
	"github.com/llehouerou/tapedeck/internal/state"
	"github.com/llehouerou/tapedeck/internal/tracks"
	"github.com/llehouerou/tapedeck/internal/ui"
	"github.com/llehouerou/tapedeck/internal/ui/list"
	"github.com/llehouerou/tapedeck/internal/ui/styles"
)

// ViewMode identifies the active screen.
type ViewMode int

const (
	ViewBrowse ViewMode = iota
	ViewShow
	ViewFavorites
)

// inputField identifies which search input has keyboard focus.
type inputField int

const (
	fieldQuery inputField = iota
	fieldYear
	fieldMonth
)

// favTab selects which favorites sub-list is shown.
type favTab int

const (
	favShows favTab = iota
	favTracks
)

// Searcher executes compiled search requests.
type Searcher interface {
	Search(ctx context.Context, spec archive.QuerySpec) ([]archive.Doc, error)
}

// TrackLoader builds a playable track list for a recording.
type TrackLoader interface {
	Load(ctx context.Context, identifier string) ([]tracks.Track, error)
}

// MediaBridge receives now-playing metadata for desktop integration. May be
// absent when the integration is disabled.
type MediaBridge interface {
	SetAlbum(album string)
	Close() error
}

// sortKeys is the cycle order for the sort toggle.
var sortKeys = []string{
	archive.SortDateAsc,
	archive.SortDownloadsDesc,
	archive.SortRatingDesc,
}

// Deps bundles the collaborators the model drives.
type Deps struct {
	Searcher  Searcher
	Loader    TrackLoader
	Player    player.Interface
	Favorites *favorites.Store
	Media     MediaBridge
}

// Model is the root application model containing all state.
type Model struct {
	cfg      *config.Config
	stateMgr *state.Manager

	searcher Searcher
	loader   TrackLoader
	player   player.Interface
	session  *playback.Session
	sub      *playback.Subscription
	favs     *favorites.Store
	media    MediaBridge

	viewMode ViewMode

	// Search inputs
	inputFocused bool
	field        inputField
	queryInput   textinput.Model
	yearInput    textinput.Model
	monthInput   textinput.Model
	sortKey      string

	// Browse view
	results      list.Model[shows.Show]
	resultsTitle string
	searching    bool
	searchGen    int
	spinner      spinner.Model

	// Show view
	trackList     list.Model[tracks.Track]
	openShow      *shows.Show
	loadingTracks bool

	// queueIdentifier names the recording (or "favorites") whose tracks are
	// loaded in the playback session.
	queueIdentifier string
	tickRunning     bool

	// startingTrack is set while a track start (and its audio fetch) runs in
	// the background.
	startingTrack bool

	// Favorites view
	favTab       favTab
	favShowList  list.Model[shows.Show]
	favTrackList list.Model[favorites.Track]

	// Alternate recording picker overlay
	altPicker    bool
	altShowIndex int
	altList      list.Model[archive.Doc]

	errorMsg string
	width    int
	height   int
}

// New creates the root model, restoring the last search from saved state.
func New(cfg *config.Config, stateMgr *state.Manager, deps Deps) (Model, error) {
	query := textinput.New()
	query.Placeholder = "search shows"
	query.CharLimit = 120
	query.Prompt = "/ "

	year := textinput.New()
	year.Placeholder = "year"
	year.CharLimit = 4
	year.Prompt = ""

	month := textinput.New()
	month.Placeholder = "mm"
	month.CharLimit = 2
	month.Prompt = ""

	m := Model{
		cfg:          cfg,
		stateMgr:     stateMgr,
		searcher:     deps.Searcher,
		loader:       deps.Loader,
		player:       deps.Player,
		favs:         deps.Favorites,
		media:        deps.Media,
		queryInput:   query,
		yearInput:    year,
		monthInput:   month,
		sortKey:      cfg.DefaultSort,
		results:      list.New[shows.Show](ui.ScrollMargin),
		trackList:    list.New[tracks.Track](ui.ScrollMargin),
		favShowList:  list.New[shows.Show](ui.ScrollMargin),
		favTrackList: list.New[favorites.Track](ui.ScrollMargin),
		altList:      list.New[archive.Doc](ui.ScrollMargin),
	}

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = lipgloss.NewStyle().Foreground(styles.T().Primary)

	saved, err := stateMgr.GetSearch()
	switch {
	case err != nil:
		m.errorMsg = errmsg.Format(errmsg.OpStateLoad, err)
	case saved != nil:
		m.queryInput.SetValue(saved.Query)
		m.yearInput.SetValue(saved.Year)
		m.monthInput.SetValue(saved.Month)
		if saved.Sort != "" {
			m.sortKey = saved.Sort
		}
	}

	m.session = playback.NewSession(deps.Player)
	m.sub = m.session.Subscribe()

	m.results.SetFocused(true)
	m.favShowList.SetFocused(true)
	m.favTrackList.SetFocused(true)
	m.trackList.SetFocused(true)

	m.favShowList.SetItems(deps.Favorites.Shows())
	m.favTrackList.SetItems(deps.Favorites.Tracks())

	m.searching = true
	if _, ok := m.currentQuerySpec(); ok {
		m.resultsTitle = "Search results"
	} else {
		m.resultsTitle = "On this day"
	}

	return m, nil
}

// Init issues the startup search: the restored query when one exists,
// otherwise shows played on today's date.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.WatchSessionEvents(), m.WatchTrackFinished(), m.spinner.Tick}
	if spec, ok := m.currentQuerySpec(); ok {
		cmds = append(cmds, m.SearchCmd(spec, m.searchGen))
	} else {
		cmds = append(cmds, m.OnThisDayCmd(m.searchGen))
	}
	return tea.Batch(cmds...)
}

// Session exposes the playback session for desktop integration wiring.
func (m Model) Session() *playback.Session {
	return m.session
}

// WithMedia attaches a desktop media bridge. Called during startup, before
// the program runs.
func (m Model) WithMedia(bridge MediaBridge) Model {
	m.media = bridge
	return m
}

// currentQuerySpec compiles the search inputs into a query. ok is false when
// every input is blank.
func (m Model) currentQuerySpec() (archive.QuerySpec, bool) {
	return archive.BuildSearchQuery(
		m.cfg.Collection,
		m.queryInput.Value(),
		m.yearInput.Value(),
		m.monthInput.Value(),
		m.sortKey,
	)
}

// sortLabel returns a short display name for the active sort key.
func (m Model) sortLabel() string {
	switch m.sortKey {
	case archive.SortDownloadsDesc:
		return "downloads"
	case archive.SortRatingDesc:
		return "rating"
	default:
		return "date"
	}
}

func (m *Model) cycleSort() {
	for i, k := range sortKeys {
		if k == m.sortKey {
			m.sortKey = sortKeys[(i+1)%len(sortKeys)]
			return
		}
	}
	m.sortKey = sortKeys[0]
}

// refreshFavorites re-reads the favorites store into the view lists.
func (m *Model) refreshFavorites() {
	m.favShowList.SetItems(m.favs.Shows())
	m.favTrackList.SetItems(m.favs.Tracks())
}
