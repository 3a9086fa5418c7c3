package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/rokovi/internal/storage"
)

const recordColumns = "id, company_id, data, created_at, updated_at"

func (s *Store) PutRecord(kind string, rec storage.Record) error {
	if rec.ID == "" {
		return fmt.Errorf("record id is required")
	}

	now := time.Now().UTC()
	_, err := s.db.Exec(`
		INSERT INTO records (kind, id, company_id, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (kind, id) DO UPDATE SET
			company_id = EXCLUDED.company_id,
			data = EXCLUDED.data,
			updated_at = EXCLUDED.updated_at`,
		kind, rec.ID, rec.CompanyID, string(rec.Data), now)
	if err != nil {
		return fmt.Errorf("failed to put %s/%s: %w", kind, rec.ID, err)
	}
	return nil
}

func (s *Store) GetRecord(kind, id string) (storage.Record, error) {
	row := s.db.QueryRow("SELECT "+recordColumns+" FROM records WHERE kind = $1 AND id = $2", kind, id)

	var rec storage.Record
	var data string
	if err := row.Scan(&rec.ID, &rec.CompanyID, &data, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Record{}, storage.ErrNotFound
		}
		return storage.Record{}, err
	}
	rec.Data = []byte(data)
	return rec, nil
}

func (s *Store) ListRecords(kind string) ([]storage.Record, error) {
	rows, err := s.db.Query("SELECT "+recordColumns+" FROM records WHERE kind = $1 ORDER BY seq", kind)
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

func (s *Store) ListRecordsByCompany(kind, companyID string) ([]storage.Record, error) {
	rows, err := s.db.Query("SELECT "+recordColumns+" FROM records WHERE kind = $1 AND company_id = $2 ORDER BY seq", kind, companyID)
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

func (s *Store) DeleteRecord(kind, id string) error {
	res, err := s.db.Exec("DELETE FROM records WHERE kind = $1 AND id = $2", kind, id)
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

func collectRecords(rows *sql.Rows) ([]storage.Record, error) {
	defer rows.Close()

	var records []storage.Record
	for rows.Next() {
		var rec storage.Record
		var data string
		if err := rows.Scan(&rec.ID, &rec.CompanyID, &data, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		rec.Data = []byte(data)
		records = append(records, rec)
	}
	return records, rows.Err()
}
