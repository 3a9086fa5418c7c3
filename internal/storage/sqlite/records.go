package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/rokovi/internal/storage"
)

// PutRecord upserts by (kind, id). The seq column is left untouched on
// conflict so updated records keep their list position.
func (s *Store) PutRecord(kind string, rec storage.Record) error {
	if rec.ID == "" {
		return fmt.Errorf("record id is required")
	}

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.Exec(`
		INSERT INTO records (kind, id, company_id, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(kind, id) DO UPDATE SET
			company_id = excluded.company_id,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		kind, rec.ID, rec.CompanyID, string(rec.Data), now, now)
	if err != nil {
		return fmt.Errorf("failed to put %s/%s: %w", kind, rec.ID, err)
	}
	return nil
}

func (s *Store) GetRecord(kind, id string) (storage.Record, error) {
	row := s.db.QueryRow(`
		SELECT id, company_id, data, created_at, updated_at
		FROM records WHERE kind = ? AND id = ?`, kind, id)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Record{}, storage.ErrNotFound
		}
		return storage.Record{}, err
	}
	return rec, nil
}

func (s *Store) ListRecords(kind string) ([]storage.Record, error) {
	rows, err := s.db.Query(`
		SELECT id, company_id, data, created_at, updated_at
		FROM records WHERE kind = ? ORDER BY seq`, kind)
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

func (s *Store) ListRecordsByCompany(kind, companyID string) ([]storage.Record, error) {
	rows, err := s.db.Query(`
		SELECT id, company_id, data, created_at, updated_at
		FROM records WHERE kind = ? AND company_id = ? ORDER BY seq`, kind, companyID)
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

func (s *Store) DeleteRecord(kind, id string) error {
	res, err := s.db.Exec("DELETE FROM records WHERE kind = ? AND id = ?", kind, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (storage.Record, error) {
	var rec storage.Record
	var data, createdAt, updatedAt string
	if err := row.Scan(&rec.ID, &rec.CompanyID, &data, &createdAt, &updatedAt); err != nil {
		return storage.Record{}, err
	}
	rec.Data = []byte(data)

	var err error
	if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return storage.Record{}, fmt.Errorf("parsing created_at for %s: %w", rec.ID, err)
	}
	if rec.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return storage.Record{}, fmt.Errorf("parsing updated_at for %s: %w", rec.ID, err)
	}
	return rec, nil
}

func collectRecords(rows *sql.Rows) ([]storage.Record, error) {
	defer rows.Close()

	var records []storage.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
