package sqlite

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/rokovi/internal/storage"
)

func (s *Store) GetCounter(key string) (int, error) {
	var value int
	err := s.db.QueryRow("SELECT value FROM counters WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, storage.ErrNotFound
		}
		return 0, err
	}
	return value, nil
}

func (s *Store) SetCounter(key string, value int) error {
	_, err := s.db.Exec(`
		INSERT INTO counters (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	return err
}
