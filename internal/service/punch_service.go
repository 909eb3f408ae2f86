package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/hayasakashogo/worklog/internal/domain"
	"github.com/hayasakashogo/worklog/internal/events"
	"github.com/hayasakashogo/worklog/internal/worktime"
)

// PunchService drives the daily punch in / punch out flow
type PunchService interface {
	// Today returns today's record (nil if none) and its punch status
	Today(ctx context.Context, clientID string) (*domain.TimeRecord, domain.PunchStatus, error)

	// PunchIn records the current time, floored to five minutes, as today's start
	PunchIn(ctx context.Context, clientID string, restMinutes *int) (*domain.TimeRecord, error)

	// PunchOut records the current time, floored to five minutes, as today's end
	PunchOut(ctx context.Context, clientID string, restMinutes *int) (*domain.TimeRecord, error)

	// SetOff marks a day off (true) or a workday (false), overriding the policy
	SetOff(ctx context.Context, clientID, date string, off bool) (*domain.TimeRecord, error)

	// SaveNote stores the free-text note of a day
	SaveNote(ctx context.Context, clientID, date, note string) (*domain.TimeRecord, error)
}

type punchService struct {
	*recordStore
}

// NewPunchService creates a new punch service
func NewPunchService(deps Deps) PunchService {
	return &punchService{recordStore: newRecordStore(deps)}
}

func (s *punchService) Today(ctx context.Context, clientID string) (*domain.TimeRecord, domain.PunchStatus, error) {
	if _, err := s.client(ctx, clientID); err != nil {
		return nil, "", err
	}
	record, err := s.recordRepo.Get(ctx, clientID, worktime.TodayString(s.now()))
	if err != nil {
		return nil, "", err
	}
	return record, record.Status(), nil
}

func (s *punchService) PunchIn(ctx context.Context, clientID string, restMinutes *int) (*domain.TimeRecord, error) {
	client, err := s.client(ctx, clientID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := worktime.TodayString(now)
	record, err := s.loadOrNew(ctx, client, today, false)
	if err != nil {
		return nil, err
	}

	switch record.Status() {
	case domain.PunchWorking:
		return nil, ErrAlreadyWorking
	case domain.PunchFinished:
		return nil, ErrAlreadyFinished
	}

	day, _ := worktime.ParseDate(today)
	if s.policy.EffectiveOff(day, client, record) {
		return nil, ErrDayOff
	}

	record.StartTime = worktime.FloorToFiveMinutes(now.Local()).Ptr()
	if restMinutes != nil {
		record.RestMinutes = *restMinutes
	}
	if err := s.save(ctx, record, events.KindPunchIn); err != nil {
		return nil, err
	}

	s.logger.Info("punched in",
		zap.String("client", client.Name),
		zap.String("date", today),
		zap.String("start", record.StartTime.String()),
	)
	return record, nil
}

func (s *punchService) PunchOut(ctx context.Context, clientID string, restMinutes *int) (*domain.TimeRecord, error) {
	client, err := s.client(ctx, clientID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := worktime.TodayString(now)
	record, err := s.recordRepo.Get(ctx, client.ID, today)
	if err != nil {
		return nil, err
	}
	if record.Status() != domain.PunchWorking {
		return nil, ErrNotWorking
	}

	record.EndTime = worktime.FloorToFiveMinutes(now.Local()).Ptr()
	if restMinutes != nil {
		record.RestMinutes = *restMinutes
	}
	if err := s.save(ctx, record, events.KindPunchOut); err != nil {
		return nil, err
	}

	hours, _ := record.WorkedHours()
	s.logger.Info("punched out",
		zap.String("client", client.Name),
		zap.String("date", today),
		zap.String("end", record.EndTime.String()),
		zap.Float64("hours", hours),
	)
	return record, nil
}

func (s *punchService) SetOff(ctx context.Context, clientID, date string, off bool) (*domain.TimeRecord, error) {
	return s.setOff(ctx, clientID, date, off)
}

func (s *punchService) SaveNote(ctx context.Context, clientID, date, note string) (*domain.TimeRecord, error) {
	client, err := s.client(ctx, clientID)
	if err != nil {
		return nil, err
	}
	record, err := s.loadOrNew(ctx, client, date, false)
	if err != nil {
		return nil, err
	}
	record.Note = note
	if err := s.save(ctx, record, events.KindNote); err != nil {
		return nil, err
	}
	return record, nil
}
