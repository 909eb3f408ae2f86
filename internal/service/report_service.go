package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/hayasakashogo/worklog/internal/attendance"
	"github.com/hayasakashogo/worklog/internal/report"
)

// ReportRequest selects the month of a monthly attendance report
type ReportRequest struct {
	ClientID string
	Year     int
	Month    time.Month
	Remarks  string
}

// ReportService produces monthly attendance reports
type ReportService interface {
	// MissingDates lists past workdays of the month that lack a punch
	MissingDates(ctx context.Context, clientID string, year int, month time.Month) ([]string, error)

	// Prepare builds the report document. It returns *MissingDatesError while
	// any past workday is incomplete.
	Prepare(ctx context.Context, req ReportRequest) (*report.Document, error)

	// Export prepares the report and writes it into dir, returning the file path
	Export(ctx context.Context, req ReportRequest, format report.Format, dir string) (string, error)
}

type reportService struct {
	*recordStore
	aggregator *attendance.Aggregator
	worker     string
	fontPath   string
}

// NewReportService creates a new report service. worker is the name printed
// on reports; fontPath is the TrueType font used for PDF output.
func NewReportService(deps Deps, worker, fontPath string) ReportService {
	return &reportService{
		recordStore: newRecordStore(deps),
		aggregator:  deps.Aggregator,
		worker:      worker,
		fontPath:    fontPath,
	}
}

func (s *reportService) MissingDates(ctx context.Context, clientID string, year int, month time.Month) ([]string, error) {
	client, err := s.client(ctx, clientID)
	if err != nil {
		return nil, err
	}
	records, err := s.recordRepo.ListMonth(ctx, client.ID, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return s.aggregator.FindMissingDates(records, client, year, month, s.now()), nil
}

func (s *reportService) Prepare(ctx context.Context, req ReportRequest) (*report.Document, error) {
	client, err := s.client(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	records, err := s.recordRepo.ListMonth(ctx, client.ID, req.Year, req.Month)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	if missing := s.aggregator.FindMissingDates(records, client, req.Year, req.Month, s.now()); len(missing) > 0 {
		return nil, &MissingDatesError{
			ClientName: client.Name,
			Year:       req.Year,
			Month:      req.Month,
			Dates:      missing,
		}
	}

	return report.BuildDocument(client, s.worker, records, req.Year, req.Month, req.Remarks, s.policy), nil
}

func (s *reportService) Export(ctx context.Context, req ReportRequest, format report.Format, dir string) (string, error) {
	renderer, err := report.NewRenderer(format, s.fontPath)
	if err != nil {
		return "", err
	}

	doc, err := s.Prepare(ctx, req)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, report.SafeFilename(doc.Filename)+renderer.Extension())

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	if err := renderer.Render(f, doc); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to render report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	s.logger.Info("report exported",
		zap.String("client_id", req.ClientID),
		zap.Int("year", req.Year),
		zap.Int("month", int(req.Month)),
		zap.String("path", path),
	)
	return path, nil
}
