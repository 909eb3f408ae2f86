package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hayasakashogo/worklog/internal/db"
	"github.com/hayasakashogo/worklog/internal/domain"
	"github.com/hayasakashogo/worklog/internal/worktime"
)

const clientColumns = `id, name, min_hours, max_hours, default_start_time, default_end_time,
	default_rest_minutes, holidays, include_national_holidays, pdf_filename_template,
	created_at, updated_at`

// ClientRepo is a SQLite implementation of ClientRepository
type ClientRepo struct {
	db *db.DB
}

// NewClientRepo creates a new ClientRepo
func NewClientRepo(database *db.DB) *ClientRepo {
	return &ClientRepo{db: database}
}

// Create inserts a new client into the database
func (r *ClientRepo) Create(ctx context.Context, client *domain.Client) error {
	if err := client.Validate(); err != nil {
		return fmt.Errorf("invalid client: %w", err)
	}

	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		client.ID,
		client.Name,
		client.MinHours,
		client.MaxHours,
		client.DefaultStartTime.String(),
		client.DefaultEndTime.String(),
		client.DefaultRestMinutes,
		formatWeekdays(client.Holidays),
		client.IncludeNationalHolidays,
		client.PDFFilenameTemplate,
		client.CreatedAt.Format(timeLayout),
		client.UpdatedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

// GetByID retrieves a client by ID
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = ?`
	return r.getOne(ctx, query, id)
}

// GetByName retrieves a client by name
func (r *ClientRepo) GetByName(ctx context.Context, name string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE name = ?`
	return r.getOne(ctx, query, name)
}

func (r *ClientRepo) getOne(ctx context.Context, query string, arg interface{}) (*domain.Client, error) {
	client, err := scanClient(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("client not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

// List retrieves all clients ordered by name
func (r *ClientRepo) List(ctx context.Context) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}

	return clients, nil
}

// Update updates an existing client
func (r *ClientRepo) Update(ctx context.Context, client *domain.Client) error {
	if err := client.Validate(); err != nil {
		return fmt.Errorf("invalid client: %w", err)
	}

	client.UpdatedAt = time.Now()

	query := `
		UPDATE clients
		SET name = ?, min_hours = ?, max_hours = ?, default_start_time = ?, default_end_time = ?,
		    default_rest_minutes = ?, holidays = ?, include_national_holidays = ?,
		    pdf_filename_template = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		client.Name,
		client.MinHours,
		client.MaxHours,
		client.DefaultStartTime.String(),
		client.DefaultEndTime.String(),
		client.DefaultRestMinutes,
		formatWeekdays(client.Holidays),
		client.IncludeNationalHolidays,
		client.PDFFilenameTemplate,
		client.UpdatedAt.Format(timeLayout),
		client.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("client not found: %w", ErrNotFound)
	}

	return nil
}

// Delete removes a client and, through the foreign key, all of its records
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("client not found: %w", ErrNotFound)
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanClient(s scanner) (*domain.Client, error) {
	client := &domain.Client{}
	var start, end, holidays, createdAt, updatedAt string

	err := s.Scan(
		&client.ID,
		&client.Name,
		&client.MinHours,
		&client.MaxHours,
		&start,
		&end,
		&client.DefaultRestMinutes,
		&holidays,
		&client.IncludeNationalHolidays,
		&client.PDFFilenameTemplate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if client.DefaultStartTime, err = worktime.ParseClock(start); err != nil {
		return nil, fmt.Errorf("failed to parse default_start_time: %w", err)
	}
	if client.DefaultEndTime, err = worktime.ParseClock(end); err != nil {
		return nil, fmt.Errorf("failed to parse default_end_time: %w", err)
	}
	if client.Holidays, err = parseWeekdays(holidays); err != nil {
		return nil, fmt.Errorf("failed to parse holidays: %w", err)
	}
	if client.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if client.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("failed to parse updated_at: %w", err)
	}

	return client, nil
}
