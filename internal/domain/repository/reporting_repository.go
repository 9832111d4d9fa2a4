package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailySummaryResult aggregates one calendar day of COMPLETED sales
type DailySummaryResult struct {
	Date               string                     `json:"date"`
	TotalSales         decimal.Decimal            `json:"total_sales"`
	TotalTransactions  int64                      `json:"total_transactions"`
	AverageTransaction decimal.Decimal            `json:"average_transaction"`
	ByPaymentMethod    map[string]decimal.Decimal `json:"by_payment_method"`
}

// ReportingRepository defines read-only reporting aggregations
type ReportingRepository interface {
	// GetDailySummary aggregates COMPLETED sales in the local-midnight
	// window containing the given instant: total amount, transaction
	// count, and collected amount per payment provider type across every
	// payment of every matching sale.
	GetDailySummary(ctx context.Context, day time.Time) (*DailySummaryResult, error)
}
