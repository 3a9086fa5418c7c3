package postgres

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/rokovi/internal/storage"
)

func (s *Store) GetCounter(key string) (int, error) {
	var value int
	err := s.db.QueryRow("SELECT value FROM counters WHERE key = $1", key).Scan(&value)
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
		INSERT INTO counters (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, value)
	return err
}
