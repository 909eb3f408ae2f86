package repository

import (
	"context"
	"errors"
	"time"

	"github.com/hayasakashogo/worklog/internal/domain"
)

// ErrNotFound is wrapped by lookups that match no row
var ErrNotFound = errors.New("not found")

// ClientRepository manages client persistence
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	GetByName(ctx context.Context, name string) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id string) error // cascades to time records
}

// RecordRepository manages daily attendance records
type RecordRepository interface {
	Get(ctx context.Context, clientID, date string) (*domain.TimeRecord, error) // Returns nil if no record
	ListRange(ctx context.Context, clientID, from, to string) ([]*domain.TimeRecord, error)
	ListMonth(ctx context.Context, clientID string, year int, month time.Month) ([]*domain.TimeRecord, error)
	Upsert(ctx context.Context, record *domain.TimeRecord) error // keyed by (client, date)
}
