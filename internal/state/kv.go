package state

import (
	"database/sql"
	"errors"
)

// Get returns the value stored under key. The second return value reports
// whether the key exists.
func (m *Manager) Get(key string) (string, bool, error) {
	row := m.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key)

	var value string
	err := row.Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set stores value under key, replacing any previous value.
func (m *Manager) Set(key, value string) error {
	_, err := m.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
