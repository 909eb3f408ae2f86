package calendar

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// holidayFile is the on-disk layout of the override file
//
//	holidays:
//	  - date: 2026-12-29
//	    name: 年末休暇
//	  - date: 2026-05-06
//	    off: false
type holidayFile struct {
	Holidays []holidayEntry `yaml:"holidays"`
}

type holidayEntry struct {
	Date string `yaml:"date"`
	Name string `yaml:"name"`
	Off  *bool  `yaml:"off"`
}

type override struct {
	name    string
	holiday bool
}

// FileHolidays holds user-maintained holiday overrides loaded from YAML.
// An entry with off: false cancels a holiday from the built-in table.
type FileHolidays struct {
	filePath string
	logger   *zap.Logger
	data     map[string]override // key: "YYYY-MM-DD"
}

// NewFileHolidays creates a new FileHolidays instance
func NewFileHolidays(filePath string, logger *zap.Logger) *FileHolidays {
	return &FileHolidays{
		filePath: filePath,
		logger:   logger,
		data:     make(map[string]override),
	}
}

// Load reads the override file. A missing file is not an error.
func (fh *FileHolidays) Load() error {
	raw, err := os.ReadFile(fh.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			fh.logger.Debug("No holiday override file", zap.String("file", fh.filePath))
			return nil
		}
		return fmt.Errorf("failed to read holiday file: %w", err)
	}

	return fh.parse(raw)
}

func (fh *FileHolidays) parse(raw []byte) error {
	var file holidayFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("failed to parse holiday file: %w", err)
	}

	for _, entry := range file.Holidays {
		date, err := time.Parse("2006-01-02", entry.Date)
		if err != nil {
			fh.logger.Warn("Failed to parse date", zap.String("date", entry.Date), zap.Error(err))
			continue
		}

		isHoliday := entry.Off == nil || *entry.Off
		if isHoliday && entry.Name == "" {
			fh.logger.Warn("Holiday entry without name", zap.String("date", entry.Date))
			continue
		}

		fh.data[date.Format("2006-01-02")] = override{name: entry.Name, holiday: isHoliday}
	}

	fh.logger.Info("Holiday overrides loaded",
		zap.String("file", fh.filePath),
		zap.Int("entries", len(fh.data)))

	return nil
}

// Override reports whether the file decides the date, and if so whether it
// is a holiday.
func (fh *FileHolidays) Override(date time.Time) (name string, holiday, found bool) {
	o, ok := fh.data[dateKey(date)]
	if !ok {
		return "", false, false
	}
	return o.name, o.holiday, true
}

// NameFor implements HolidayLookup using the overrides alone
func (fh *FileHolidays) NameFor(date time.Time) (string, bool) {
	name, holiday, _ := fh.Override(date)
	return name, holiday
}

// Len returns the number of loaded overrides
func (fh *FileHolidays) Len() int {
	return len(fh.data)
}

func dateKey(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}
