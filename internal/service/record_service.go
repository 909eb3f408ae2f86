package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hayasakashogo/worklog/internal/attendance"
	"github.com/hayasakashogo/worklog/internal/domain"
	"github.com/hayasakashogo/worklog/internal/events"
	"github.com/hayasakashogo/worklog/internal/worktime"
)

// Editable record fields
const (
	FieldStart = "start"
	FieldEnd   = "end"
	FieldRest  = "rest"
	FieldNote  = "note"
)

// RecordService backs the monthly attendance grid
type RecordService interface {
	// Month returns the classified sheet of a month with totals and estimate
	Month(ctx context.Context, clientID string, year int, month time.Month) (*attendance.MonthSheet, error)

	// Edit sets one field of a day; start and end are floored to five minutes
	// and an empty value clears them
	Edit(ctx context.Context, clientID, date, field, value string) (*domain.TimeRecord, error)

	SetOff(ctx context.Context, clientID, date string, off bool) (*domain.TimeRecord, error)
}

type recordService struct {
	*recordStore
	aggregator *attendance.Aggregator
}

// NewRecordService creates a new record service
func NewRecordService(deps Deps) RecordService {
	return &recordService{
		recordStore: newRecordStore(deps),
		aggregator:  deps.Aggregator,
	}
}

func (s *recordService) Month(ctx context.Context, clientID string, year int, month time.Month) (*attendance.MonthSheet, error) {
	client, err := s.client(ctx, clientID)
	if err != nil {
		return nil, err
	}
	records, err := s.recordRepo.ListMonth(ctx, client.ID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return s.aggregator.Sheet(records, client, year, month, s.now()), nil
}

func (s *recordService) Edit(ctx context.Context, clientID, date, field, value string) (*domain.TimeRecord, error) {
	client, err := s.client(ctx, clientID)
	if err != nil {
		return nil, err
	}
	record, err := s.loadOrNew(ctx, client, date, true)
	if err != nil {
		return nil, err
	}

	if err := applyField(record, field, value); err != nil {
		return nil, err
	}
	if err := s.save(ctx, record, events.KindEdit); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *recordService) SetOff(ctx context.Context, clientID, date string, off bool) (*domain.TimeRecord, error) {
	return s.setOff(ctx, clientID, date, off)
}

func applyField(record *domain.TimeRecord, field, value string) error {
	value = strings.TrimSpace(value)

	switch strings.ToLower(field) {
	case FieldStart, FieldEnd:
		var clock *worktime.Clock
		if value != "" {
			c, err := worktime.ParseClock(value)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidField, err)
			}
			clock = c.FloorToFive().Ptr()
		}
		if strings.EqualFold(field, FieldStart) {
			record.StartTime = clock
		} else {
			record.EndTime = clock
		}
	case FieldRest:
		minutes := 0
		if value != "" {
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return fmt.Errorf("%w: rest must be a non-negative number of minutes, got %q", ErrInvalidField, value)
			}
			minutes = n
		}
		record.RestMinutes = minutes
	case FieldNote:
		record.Note = value
	default:
		return fmt.Errorf("%w: %q (expected start, end, rest or note)", ErrInvalidField, field)
	}
	return nil
}
