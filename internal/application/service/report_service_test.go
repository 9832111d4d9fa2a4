package service

import (
	"context"
	"testing"
	"time"

	"github.com/sokoerp/pos-api/internal/domain/repository"
)

type fakeReportingRepo struct {
	lastDay time.Time
	result  *repository.DailySummaryResult
}

func (r *fakeReportingRepo) GetDailySummary(_ context.Context, day time.Time) (*repository.DailySummaryResult, error) {
	r.lastDay = day
	return r.result, nil
}

func TestGetDailySummary_ParsesDate(t *testing.T) {
	repo := &fakeReportingRepo{result: &repository.DailySummaryResult{Date: "2026-08-27"}}
	svc := NewReportService(repo)

	result, err := svc.GetDailySummary(context.Background(), "2026-08-27")
	if err != nil {
		t.Fatalf("GetDailySummary: %v", err)
	}
	if result.Date != "2026-08-27" {
		t.Errorf("date: got %s, want 2026-08-27", result.Date)
	}

	y, m, day := repo.lastDay.Date()
	if y != 2026 || m != time.August || day != 27 {
		t.Errorf("repo queried for wrong day: %v", repo.lastDay)
	}
}

func TestGetDailySummary_EmptyDateMeansToday(t *testing.T) {
	repo := &fakeReportingRepo{result: &repository.DailySummaryResult{}}
	svc := NewReportService(repo)

	if _, err := svc.GetDailySummary(context.Background(), ""); err != nil {
		t.Fatalf("GetDailySummary: %v", err)
	}

	now := time.Now()
	if repo.lastDay.YearDay() != now.YearDay() || repo.lastDay.Year() != now.Year() {
		t.Errorf("expected today's date, got %v", repo.lastDay)
	}
}

func TestGetDailySummary_InvalidDate(t *testing.T) {
	svc := NewReportService(&fakeReportingRepo{})

	_, err := svc.GetDailySummary(context.Background(), "27/08/2026")
	assertAppErrorCode(t, err, 400)
}
