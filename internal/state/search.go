package state

import (
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/tapedeck/internal/db"
)

// SearchState is the last search the user ran, restored on startup.
type SearchState struct {
	Query string
	Year  string
	Month string
	Sort  string
}

// GetSearch returns the saved search, or nil on first run.
func (m *Manager) GetSearch() (*SearchState, error) {
	return getSearch(m.db)
}

// SaveSearch schedules a debounced write of the search state. Rapid typing
// coalesces into a single write; Close flushes anything still pending.
func (m *Manager) SaveSearch(state SearchState) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &state

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveSearch(m.db, *pending)
		}
	})
}

func getSearch(db *sql.DB) (*SearchState, error) {
	row := db.QueryRow(`
		SELECT query, year, month, sort FROM search_state WHERE id = 1
	`)

	var state SearchState
	var year, month, sortOrder sql.NullString

	err := row.Scan(&state.Query, &year, &month, &sortOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}

	state.Year = dbutil.NullStringValue(year)
	state.Month = dbutil.NullStringValue(month)
	state.Sort = dbutil.NullStringValue(sortOrder)

	return &state, nil
}

func saveSearch(db *sql.DB, state SearchState) error {
	_, err := db.Exec(`
		INSERT INTO search_state (id, query, year, month, sort)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			query = excluded.query,
			year = excluded.year,
			month = excluded.month,
			sort = excluded.sort
	`, state.Query, state.Year, state.Month, state.Sort)

	return err
}
