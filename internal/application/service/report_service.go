package service

import (
	"context"
	"time"

	"github.com/sokoerp/pos-api/internal/domain/repository"
	"github.com/sokoerp/pos-api/pkg/apperror"
)

// ReportService serves POS reporting reads
type ReportService struct {
	reportingRepo repository.ReportingRepository
}

// NewReportService creates a new report service
func NewReportService(reportingRepo repository.ReportingRepository) *ReportService {
	return &ReportService{reportingRepo: reportingRepo}
}

// GetDailySummary aggregates one calendar day of completed sales. The date
// string is interpreted in the server's local day boundaries; empty means
// today.
func (s *ReportService) GetDailySummary(ctx context.Context, date string) (*repository.DailySummaryResult, error) {
	day := time.Now()
	if date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return nil, apperror.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
		}
		day = parsed
	}

	return s.reportingRepo.GetDailySummary(ctx, day)
}
