package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sokoerp/pos-api/internal/domain/entity"
	"github.com/sokoerp/pos-api/internal/domain/repository"
	infraRepo "github.com/sokoerp/pos-api/internal/infrastructure/repository"
	"github.com/sokoerp/pos-api/pkg/apperror"
	"github.com/sokoerp/pos-api/pkg/pagination"
)

// SessionService handles POS shift operations
type SessionService struct {
	sessionRepo  repository.SessionRepository
	terminalRepo repository.TerminalRepository
	employeeRepo repository.EmployeeRepository
}

// NewSessionService creates a new session service
func NewSessionService(
	sessionRepo repository.SessionRepository,
	terminalRepo repository.TerminalRepository,
	employeeRepo repository.EmployeeRepository,
) *SessionService {
	return &SessionService{
		sessionRepo:  sessionRepo,
		terminalRepo: terminalRepo,
		employeeRepo: employeeRepo,
	}
}

// OpenSessionInput represents the open session input
type OpenSessionInput struct {
	CashierID   uuid.UUID
	TerminalID  uuid.UUID
	OpeningCash decimal.Decimal
	Notes       *string
}

// OpenSession opens a shift for the cashier at the given terminal.
// The pre-check keeps the common error readable; the partial unique index on
// open sessions is what actually guarantees the one-open-shift rule when two
// opens race.
func (s *SessionService) OpenSession(ctx context.Context, input *OpenSessionInput) (*entity.POSSession, error) {
	orgID, ok := infraRepo.GetOrgID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Organization context required")
	}

	if input.OpeningCash.IsNegative() {
		return nil, apperror.NewBadRequestError("Opening cash cannot be negative")
	}

	terminal, err := s.terminalRepo.GetByID(ctx, input.TerminalID)
	if err != nil {
		return nil, err
	}
	if terminal == nil {
		return nil, apperror.NewNotFoundError("Terminal")
	}

	existing, err := s.sessionRepo.GetActiveByCashier(ctx, input.CashierID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Cashier already has an open session")
	}

	cashierName := "Unknown Cashier"
	employee, err := s.employeeRepo.GetByUserID(ctx, input.CashierID)
	if err != nil {
		return nil, err
	}
	if employee != nil {
		cashierName = employee.FullName()
	}

	session := &entity.POSSession{
		OrganizationID: orgID,
		TerminalID:     input.TerminalID,
		CashierID:      input.CashierID,
		CashierName:    cashierName,
		OpeningCash:    input.OpeningCash,
		Notes:          input.Notes,
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return s.sessionRepo.GetByID(ctx, session.ID)
}

// CloseSessionInput represents the close session input
type CloseSessionInput struct {
	SessionID   uuid.UUID
	ClosingCash decimal.Decimal
	Notes       *string
}

// CloseSession counts the drawer against what the ledger expects:
//
//	expected = opening cash + cash collected on COMPLETED sales
//	difference = counted closing cash - expected
//
// The close itself is a compare-and-swap on status, so two concurrent closes
// cannot both record figures.
func (s *SessionService) CloseSession(ctx context.Context, input *CloseSessionInput) (*entity.POSSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}
	if !session.IsOpen() {
		return nil, apperror.NewConflictError("Session is already closed")
	}

	cashCollected, err := s.sessionRepo.SumCashCollected(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session.ClosingCash = input.ClosingCash
	session.ExpectedCash = session.OpeningCash.Add(cashCollected)
	session.CashDifference = input.ClosingCash.Sub(session.ExpectedCash)
	session.ClosedAt = &now
	if input.Notes != nil {
		session.Notes = input.Notes
	}

	closed, err := s.sessionRepo.Close(ctx, session)
	if err != nil {
		return nil, err
	}
	if !closed {
		return nil, apperror.NewConflictError("Session is already closed")
	}

	return s.sessionRepo.GetByID(ctx, session.ID)
}

// GetSession retrieves a session by ID
func (s *SessionService) GetSession(ctx context.Context, id uuid.UUID) (*entity.POSSession, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session")
	}
	return session, nil
}

// GetActiveSession returns the cashier's open session, if any
func (s *SessionService) GetActiveSession(ctx context.Context, cashierID uuid.UUID) (*entity.POSSession, error) {
	return s.sessionRepo.GetActiveByCashier(ctx, cashierID)
}

// ListSessions lists sessions with filtering
func (s *SessionService) ListSessions(ctx context.Context, params *repository.SessionFilterParams) (*pagination.PaginatedResult[entity.POSSession], error) {
	sessions, total, err := s.sessionRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sessions, pag), nil
}
