package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hayasakashogo/worklog/internal/attendance"
	"github.com/hayasakashogo/worklog/internal/domain"
	"github.com/hayasakashogo/worklog/internal/events"
	"github.com/hayasakashogo/worklog/internal/repository"
	"github.com/hayasakashogo/worklog/internal/worktime"
)

// recordStore holds what every record-writing service needs
type recordStore struct {
	clientRepo repository.ClientRepository
	recordRepo repository.RecordRepository
	policy     *attendance.Policy
	broker     events.Broker
	logger     *zap.Logger
	now        func() time.Time
}

func (s *recordStore) client(ctx context.Context, clientID string) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrClientNotFound, clientID)
		}
		return nil, err
	}
	return client, nil
}

// loadOrNew returns the stored record for a day, or a fresh one seeded with the
// client's default break. With seedOff the fresh record also pins the off
// status the holiday policy gives that day; otherwise IsOff stays nil and the
// policy keeps deciding.
func (s *recordStore) loadOrNew(ctx context.Context, client *domain.Client, date string, seedOff bool) (*domain.TimeRecord, error) {
	day, err := worktime.ParseDate(date)
	if err != nil {
		return nil, err
	}

	record, err := s.recordRepo.Get(ctx, client.ID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	if record != nil {
		return record, nil
	}

	record = domain.NewTimeRecord(client, date)
	if seedOff {
		record.IsOff = domain.BoolPtr(s.policy.IsClientHoliday(day, client))
	}
	return record, nil
}

// save upserts the record and announces the change. A failed publish is
// logged, never returned: the write already succeeded.
func (s *recordStore) save(ctx context.Context, record *domain.TimeRecord, kind events.Kind) error {
	if err := record.Validate(); err != nil {
		return err
	}
	record.UpdatedAt = s.now()
	if err := s.recordRepo.Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	s.logger.Debug("record saved",
		zap.String("client_id", record.ClientID),
		zap.String("date", record.Date),
		zap.String("kind", string(kind)),
	)
	s.publish(ctx, events.Change{ClientID: record.ClientID, Date: record.Date, Kind: kind})
	return nil
}

func (s *recordStore) publish(ctx context.Context, change events.Change) {
	if s.broker == nil {
		return
	}
	change.At = s.now()
	if err := s.broker.Publish(ctx, change); err != nil {
		s.logger.Warn("failed to publish change",
			zap.String("client_id", change.ClientID),
			zap.String("kind", string(change.Kind)),
			zap.Error(err),
		)
	}
}

// setOff writes an explicit off override for a day
func (s *recordStore) setOff(ctx context.Context, clientID, date string, off bool) (*domain.TimeRecord, error) {
	client, err := s.client(ctx, clientID)
	if err != nil {
		return nil, err
	}
	record, err := s.loadOrNew(ctx, client, date, false)
	if err != nil {
		return nil, err
	}
	record.IsOff = domain.BoolPtr(off)
	if err := s.save(ctx, record, events.KindOff); err != nil {
		return nil, err
	}
	return record, nil
}
