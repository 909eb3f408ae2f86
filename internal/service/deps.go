package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/hayasakashogo/worklog/internal/attendance"
	"github.com/hayasakashogo/worklog/internal/events"
	"github.com/hayasakashogo/worklog/internal/repository"
)

// Deps are the collaborators shared by the services. Broker, Logger and Now
// are optional.
type Deps struct {
	ClientRepo repository.ClientRepository
	RecordRepo repository.RecordRepository
	Aggregator *attendance.Aggregator
	Broker     events.Broker
	Logger     *zap.Logger
	Now        func() time.Time
}

func newRecordStore(d Deps) *recordStore {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	policy := attendance.NewPolicy(nil)
	if d.Aggregator != nil {
		policy = d.Aggregator.Policy()
	}
	return &recordStore{
		clientRepo: d.ClientRepo,
		recordRepo: d.RecordRepo,
		policy:     policy,
		broker:     d.Broker,
		logger:     logger,
		now:        now,
	}
}
