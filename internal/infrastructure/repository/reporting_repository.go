package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sokoerp/pos-api/internal/domain/enum"
	domainRepo "github.com/sokoerp/pos-api/internal/domain/repository"
	"github.com/sokoerp/pos-api/pkg/apperror"
	"gorm.io/gorm"
)

type reportingRepository struct {
	db *gorm.DB
}

// NewReportingRepository creates a new reporting repository
func NewReportingRepository(db *gorm.DB) domainRepo.ReportingRepository {
	return &reportingRepository{db: db}
}

// GetDailySummary aggregates COMPLETED sales for the local calendar day
// containing the given instant. Voided sales never count, even when the void
// happened on a later day.
func (r *reportingRepository) GetDailySummary(ctx context.Context, day time.Time) (*domainRepo.DailySummaryResult, error) {
	orgID, ok := GetOrgID(ctx)
	if !ok {
		// Raw queries bypass the gorm scope, so the guard is explicit here.
		return nil, apperror.NewBadRequestError("Organization context required")
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var totals struct {
		TotalSales        decimal.Decimal
		TotalTransactions int64
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COALESCE(SUM(total_amount), 0) as total_sales,
			COUNT(*) as total_transactions
		FROM pos_sales
		WHERE organization_id = ?
		  AND status = ?
		  AND created_at >= ? AND created_at < ?
	`, orgID, enum.SaleStatusCompleted, start, end).Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	var byMethod []struct {
		ProviderType string
		Collected    decimal.Decimal
	}

	err = r.db.WithContext(ctx).Raw(`
		SELECT
			sp.provider_type,
			COALESCE(SUM(sp.amount - COALESCE(sp.change_given, 0)), 0) as collected
		FROM sale_payments sp
		JOIN pos_sales s ON s.id = sp.sale_id
		WHERE s.organization_id = ?
		  AND s.status = ?
		  AND s.created_at >= ? AND s.created_at < ?
		GROUP BY sp.provider_type
	`, orgID, enum.SaleStatusCompleted, start, end).Scan(&byMethod).Error
	if err != nil {
		return nil, err
	}

	result := emptySummary(day)
	result.TotalSales = totals.TotalSales
	result.TotalTransactions = totals.TotalTransactions
	if totals.TotalTransactions > 0 {
		result.AverageTransaction = totals.TotalSales.
			Div(decimal.NewFromInt(totals.TotalTransactions)).Round(2)
	}
	for _, row := range byMethod {
		result.ByPaymentMethod[row.ProviderType] = row.Collected
	}

	return result, nil
}

func emptySummary(day time.Time) *domainRepo.DailySummaryResult {
	return &domainRepo.DailySummaryResult{
		Date:               day.Format("2006-01-02"),
		TotalSales:         decimal.Zero,
		TotalTransactions:  0,
		AverageTransaction: decimal.Zero,
		ByPaymentMethod:    map[string]decimal.Decimal{},
	}
}
