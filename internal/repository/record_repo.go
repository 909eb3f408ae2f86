package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hayasakashogo/worklog/internal/db"
	"github.com/hayasakashogo/worklog/internal/domain"
)

const recordColumns = `id, client_id, date, start_time, end_time, rest_minutes, note, is_off, created_at, updated_at`

// RecordRepo is a SQLite implementation of RecordRepository
type RecordRepo struct {
	db *db.DB
}

// NewRecordRepo creates a new RecordRepo
func NewRecordRepo(database *db.DB) *RecordRepo {
	return &RecordRepo{db: database}
}

// Get retrieves the record for a client and day, or returns nil if there is none
func (r *RecordRepo) Get(ctx context.Context, clientID, date string) (*domain.TimeRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM time_records WHERE client_id = ? AND date = ?`

	record, err := scanRecord(r.db.QueryRowContext(ctx, query, clientID, date))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get time record: %w", err)
	}
	return record, nil
}

// ListRange returns a client's records with from <= date <= to, ordered by date
func (r *RecordRepo) ListRange(ctx context.Context, clientID, from, to string) ([]*domain.TimeRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM time_records
		WHERE client_id = ? AND date >= ? AND date <= ?
		ORDER BY date
	`

	rows, err := r.db.QueryContext(ctx, query, clientID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list time records: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.TimeRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time records: %w", err)
	}

	return records, nil
}

// ListMonth returns a client's records for one calendar month
func (r *RecordRepo) ListMonth(ctx context.Context, clientID string, year int, month time.Month) ([]*domain.TimeRecord, error) {
	prefix := fmt.Sprintf("%04d-%02d", year, month)
	return r.ListRange(ctx, clientID, prefix+"-01", prefix+"-31")
}

// Upsert inserts the record or overwrites the existing one for the same client and day
func (r *RecordRepo) Upsert(ctx context.Context, record *domain.TimeRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("invalid time record: %w", err)
	}

	record.UpdatedAt = time.Now()
	if record.CreatedAt.IsZero() {
		record.CreatedAt = record.UpdatedAt
	}

	query := `
		INSERT INTO time_records (client_id, date, start_time, end_time, rest_minutes, note, is_off, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (client_id, date) DO UPDATE SET
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			rest_minutes = excluded.rest_minutes,
			note = excluded.note,
			is_off = excluded.is_off,
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ClientID,
		record.Date,
		clockValue(record.StartTime),
		clockValue(record.EndTime),
		record.RestMinutes,
		record.Note,
		boolValue(record.IsOff),
		record.CreatedAt.Format(timeLayout),
		record.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert time record: %w", err)
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT id FROM time_records WHERE client_id = ? AND date = ?`,
		record.ClientID, record.Date,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("failed to get time record ID: %w", err)
	}

	return nil
}

func scanRecord(s scanner) (*domain.TimeRecord, error) {
	record := &domain.TimeRecord{}
	var start, end sql.NullString
	var isOff sql.NullBool
	var createdAt, updatedAt string

	err := s.Scan(
		&record.ID,
		&record.ClientID,
		&record.Date,
		&start,
		&end,
		&record.RestMinutes,
		&record.Note,
		&isOff,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if record.StartTime, err = parseClock(start); err != nil {
		return nil, fmt.Errorf("failed to parse start_time: %w", err)
	}
	if record.EndTime, err = parseClock(end); err != nil {
		return nil, fmt.Errorf("failed to parse end_time: %w", err)
	}
	record.IsOff = parseBool(isOff)

	if record.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if record.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return record, nil
}
