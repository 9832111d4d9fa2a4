package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sokoerp/pos-api/internal/domain/entity"
	"github.com/sokoerp/pos-api/internal/domain/enum"
	"github.com/sokoerp/pos-api/pkg/pagination"
)

// SessionRepository defines the interface for POS session data operations
type SessionRepository interface {
	Create(ctx context.Context, session *entity.POSSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.POSSession, error)
	// GetActiveByCashier returns the cashier's OPEN session, or nil.
	GetActiveByCashier(ctx context.Context, cashierID uuid.UUID) (*entity.POSSession, error)
	List(ctx context.Context, params *SessionFilterParams) ([]entity.POSSession, int64, error)
	// SumCashCollected totals the CASH tenders across the session's
	// COMPLETED sales. Voided sales are excluded: their cash is treated as
	// returned to the customer before the drawer is counted.
	SumCashCollected(ctx context.Context, sessionID uuid.UUID) (decimal.Decimal, error)
	// Close transitions OPEN -> CLOSED with a compare-and-swap on status;
	// a session already closed yields no update and the caller reports a
	// conflict.
	Close(ctx context.Context, session *entity.POSSession) (bool, error)
}

// SessionFilterParams contains filtering parameters for session queries
type SessionFilterParams struct {
	Pagination *pagination.PaginationParams
	TerminalID *uuid.UUID
	Status     *enum.SessionStatus
	StartDate  *time.Time
	EndDate    *time.Time
}
