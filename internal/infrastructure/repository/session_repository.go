package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sokoerp/pos-api/internal/domain/entity"
	"github.com/sokoerp/pos-api/internal/domain/enum"
	domainRepo "github.com/sokoerp/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new POS session repository
func NewSessionRepository(db *gorm.DB) domainRepo.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *entity.POSSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.POSSession, error) {
	var session entity.POSSession
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		Preload("Terminal").
		First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *sessionRepository) GetActiveByCashier(ctx context.Context, cashierID uuid.UUID) (*entity.POSSession, error) {
	var session entity.POSSession
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		First(&session, "cashier_id = ? AND status = ?", cashierID, enum.SessionStatusOpen).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *sessionRepository) List(ctx context.Context, params *domainRepo.SessionFilterParams) ([]entity.POSSession, int64, error) {
	var sessions []entity.POSSession
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.POSSession{}).Scopes(OrgScope(ctx))

	if params.TerminalID != nil {
		query = query.Where("terminal_id = ?", *params.TerminalID)
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.StartDate != nil {
		query = query.Where("opened_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("opened_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Terminal").
		Order("opened_at DESC").
		Find(&sessions).Error

	return sessions, total, err
}

// SumCashCollected totals CASH tenders on the session's COMPLETED sales.
// Change handed back to the customer is subtracted, so the figure matches
// what actually entered the drawer.
func (r *sessionRepository) SumCashCollected(ctx context.Context, sessionID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(sp.amount - COALESCE(sp.change_given, 0)), 0) as total
		FROM sale_payments sp
		JOIN pos_sales s ON s.id = sp.sale_id
		WHERE s.session_id = ?
		  AND s.status = ?
		  AND sp.provider_type = ?
	`, sessionID, enum.SaleStatusCompleted, enum.ProviderTypeCash).Scan(&result).Error
	if err != nil {
		return decimal.Zero, err
	}

	return result.Total, nil
}

// Close persists the closing figures with a compare-and-swap on status.
// Returns false when the session was not OPEN anymore, which the caller
// reports as a conflict instead of silently double-closing.
func (r *sessionRepository) Close(ctx context.Context, session *entity.POSSession) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.POSSession{}).
		Where("id = ? AND status = ?", session.ID, enum.SessionStatusOpen).
		Updates(map[string]interface{}{
			"status":          enum.SessionStatusClosed,
			"closing_cash":    session.ClosingCash,
			"expected_cash":   session.ExpectedCash,
			"cash_difference": session.CashDifference,
			"closed_at":       session.ClosedAt,
			"notes":           session.Notes,
		})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
