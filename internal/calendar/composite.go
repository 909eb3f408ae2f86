package calendar

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// CompositeLookup consults user overrides first, then the built-in table
type CompositeLookup struct {
	overrides *FileHolidays
	builtin   HolidayLookup
	logger    *zap.Logger
}

// NewCompositeLookup creates a new CompositeLookup
func NewCompositeLookup(overrides *FileHolidays, builtin HolidayLookup, logger *zap.Logger) *CompositeLookup {
	return &CompositeLookup{
		overrides: overrides,
		builtin:   builtin,
		logger:    logger,
	}
}

// NameFor implements HolidayLookup
func (cl *CompositeLookup) NameFor(date time.Time) (string, bool) {
	if cl.overrides != nil {
		if name, holiday, found := cl.overrides.Override(date); found {
			return name, holiday
		}
	}
	return cl.builtin.NameFor(date)
}

// LoadOverrides loads the override file, if one is configured
func (cl *CompositeLookup) LoadOverrides() error {
	if cl.overrides == nil {
		return nil
	}
	if err := cl.overrides.Load(); err != nil {
		return fmt.Errorf("failed to load holiday overrides: %w", err)
	}
	return nil
}
