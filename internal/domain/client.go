package domain

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hayasakashogo/worklog/internal/worktime"
)

// Defaults for a newly registered client
const (
	DefaultMinHours            = 140
	DefaultMaxHours            = 180
	DefaultRestMinutes         = 60
	DefaultPDFFilenameTemplate = "{YYYY}年{MM}月_稼働報告書"
)

var (
	DefaultStartTime = worktime.NewClock(9, 0)
	DefaultEndTime   = worktime.NewClock(18, 0)
)

type Client struct {
	ID                      string
	Name                    string
	MinHours                float64
	MaxHours                float64
	DefaultStartTime        worktime.Clock
	DefaultEndTime          worktime.Clock
	DefaultRestMinutes      int
	Holidays                []time.Weekday // off by default
	IncludeNationalHolidays bool
	PDFFilenameTemplate     string
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// NewClient creates a new client with the standard contract defaults
func NewClient(name string) *Client {
	now := time.Now()
	return &Client{
		ID:                      uuid.NewString(),
		Name:                    strings.TrimSpace(name),
		MinHours:                DefaultMinHours,
		MaxHours:                DefaultMaxHours,
		DefaultStartTime:        DefaultStartTime,
		DefaultEndTime:          DefaultEndTime,
		DefaultRestMinutes:      DefaultRestMinutes,
		Holidays:                []time.Weekday{time.Sunday, time.Saturday},
		IncludeNationalHolidays: true,
		PDFFilenameTemplate:     DefaultPDFFilenameTemplate,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
}

// Validate returns an error if the client is invalid
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("client name is required")
	}
	if c.MinHours < 0 || c.MaxHours < 0 {
		return errors.New("contract hours cannot be negative")
	}
	if c.MinHours > c.MaxHours {
		return errors.New("minimum hours cannot exceed maximum hours")
	}
	if c.DefaultRestMinutes < 0 {
		return errors.New("rest minutes cannot be negative")
	}
	if c.DefaultEndTime <= c.DefaultStartTime {
		return errors.New("default end time must be after start time")
	}
	for _, wd := range c.Holidays {
		if wd < time.Sunday || wd > time.Saturday {
			return errors.New("holiday weekday out of range")
		}
	}
	if strings.TrimSpace(c.PDFFilenameTemplate) == "" {
		return errors.New("filename template is required")
	}
	return nil
}

// IsWeeklyHoliday reports whether the weekday is one of the client's days off
func (c *Client) IsWeeklyHoliday(wd time.Weekday) bool {
	return slices.Contains(c.Holidays, wd)
}

// DefaultWorkHours is the length of a standard day for this client
func (c *Client) DefaultWorkHours() float64 {
	return worktime.DefaultWorkHours(c.DefaultStartTime, c.DefaultEndTime, c.DefaultRestMinutes)
}
