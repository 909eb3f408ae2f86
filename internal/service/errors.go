package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrClientNotFound  = errors.New("client not found")
	ErrAlreadyWorking  = errors.New("already punched in")
	ErrAlreadyFinished = errors.New("already punched out for today")
	ErrNotWorking      = errors.New("not punched in")
	ErrDayOff          = errors.New("day is off for this client")
	ErrInvalidField    = errors.New("invalid field")
)

// MissingDatesError blocks report generation while past workdays lack punches
type MissingDatesError struct {
	ClientName string
	Year       int
	Month      time.Month
	Dates      []string
}

func (e *MissingDatesError) Error() string {
	return fmt.Sprintf("%s %04d-%02d has %d incomplete workday(s): %s",
		e.ClientName, e.Year, e.Month, len(e.Dates), strings.Join(e.Dates, ", "))
}
