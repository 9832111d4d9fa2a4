package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sokoerp/pos-api/pkg/apperror"
)

func TestGetDailySummary_RequiresOrgContext(t *testing.T) {
	// The guard runs before any query, so no database is needed.
	repo := NewReportingRepository(nil)

	_, err := repo.GetDailySummary(context.Background(), time.Now())
	if err == nil {
		t.Fatal("expected error for missing organization context")
	}
	if got := apperror.GetAppError(err).Code; got != 400 {
		t.Fatalf("expected error code 400, got %d (%v)", got, err)
	}
}
