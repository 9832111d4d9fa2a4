package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sokoerp/pos-api/internal/domain/entity"
	"github.com/sokoerp/pos-api/internal/domain/enum"
	infraRepo "github.com/sokoerp/pos-api/internal/infrastructure/repository"
)

type sessionFixture struct {
	svc      *SessionService
	sessions *fakeSessionRepo
	ctx      context.Context
	orgID    uuid.UUID
	terminal entity.POSTerminal
	cashier  uuid.UUID
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	orgID := uuid.New()
	ctx := infraRepo.WithOrg(context.Background(), orgID)
	cashier := uuid.New()

	sessions := newFakeSessionRepo()
	terminals := newFakeTerminalRepo()
	employees := &fakeEmployeeRepo{employees: map[uuid.UUID]entity.Employee{
		cashier: {OrganizationID: orgID, UserID: cashier, FirstName: "Cynthia", LastName: "Wanjiru"},
	}}

	terminal := entity.POSTerminal{OrganizationID: orgID, Name: "Till 1", Status: "ACTIVE"}
	if err := terminals.Create(ctx, &terminal); err != nil {
		t.Fatalf("seed terminal: %v", err)
	}

	return &sessionFixture{
		svc:      NewSessionService(sessions, terminals, employees),
		sessions: sessions,
		ctx:      ctx,
		orgID:    orgID,
		terminal: terminal,
		cashier:  cashier,
	}
}

func TestOpenSession_Success(t *testing.T) {
	f := newSessionFixture(t)

	session, err := f.svc.OpenSession(f.ctx, &OpenSessionInput{
		CashierID:   f.cashier,
		TerminalID:  f.terminal.ID,
		OpeningCash: d("100.00"),
	})
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	if session.Status != enum.SessionStatusOpen {
		t.Errorf("status: got %s, want OPEN", session.Status)
	}
	if session.CashierName != "Cynthia Wanjiru" {
		t.Errorf("cashier name: got %q, want Cynthia Wanjiru", session.CashierName)
	}
	if !session.OpeningCash.Equal(d("100.00")) {
		t.Errorf("opening cash: got %s, want 100.00", session.OpeningCash)
	}
}

func TestOpenSession_UnknownCashierGetsPlaceholderName(t *testing.T) {
	f := newSessionFixture(t)

	session, err := f.svc.OpenSession(f.ctx, &OpenSessionInput{
		CashierID:   uuid.New(),
		TerminalID:  f.terminal.ID,
		OpeningCash: d("0"),
	})
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	if session.CashierName != "Unknown Cashier" {
		t.Errorf("cashier name: got %q, want Unknown Cashier", session.CashierName)
	}
}

func TestOpenSession_SecondOpenConflicts(t *testing.T) {
	f := newSessionFixture(t)

	if _, err := f.svc.OpenSession(f.ctx, &OpenSessionInput{
		CashierID:   f.cashier,
		TerminalID:  f.terminal.ID,
		OpeningCash: d("100.00"),
	}); err != nil {
		t.Fatalf("first open: %v", err)
	}

	_, err := f.svc.OpenSession(f.ctx, &OpenSessionInput{
		CashierID:   f.cashier,
		TerminalID:  f.terminal.ID,
		OpeningCash: d("50.00"),
	})
	assertAppErrorCode(t, err, 409)
}

func TestOpenSession_NegativeOpeningCash(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.svc.OpenSession(f.ctx, &OpenSessionInput{
		CashierID:   f.cashier,
		TerminalID:  f.terminal.ID,
		OpeningCash: d("-5.00"),
	})
	assertAppErrorCode(t, err, 400)
}

func TestOpenSession_UnknownTerminal(t *testing.T) {
	f := newSessionFixture(t)

	_, err := f.svc.OpenSession(f.ctx, &OpenSessionInput{
		CashierID:   f.cashier,
		TerminalID:  uuid.New(),
		OpeningCash: d("0"),
	})
	assertAppErrorCode(t, err, 404)
}

func TestCloseSession_DrawerMath(t *testing.T) {
	f := newSessionFixture(t)

	session, err := f.svc.OpenSession(f.ctx, &OpenSessionInput{
		CashierID:   f.cashier,
		TerminalID:  f.terminal.ID,
		OpeningCash: d("100.00"),
	})
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	// the ledger says 22.00 in cash was collected during the shift
	f.sessions.cashCollected = d("22.00")

	closed, err := f.svc.CloseSession(f.ctx, &CloseSessionInput{
		SessionID:   session.ID,
		ClosingCash: d("122.00"),
	})
	if err != nil {
		t.Fatalf("CloseSession: %v", err)
	}

	if closed.Status != enum.SessionStatusClosed {
		t.Errorf("status: got %s, want CLOSED", closed.Status)
	}
	if !closed.ExpectedCash.Equal(d("122.00")) {
		t.Errorf("expected cash: got %s, want 122.00", closed.ExpectedCash)
	}
	if !closed.CashDifference.IsZero() {
		t.Errorf("cash difference: got %s, want 0", closed.CashDifference)
	}
	if closed.ClosedAt == nil {
		t.Error("closed_at not set")
	}
}

func TestCloseSession_ShortDrawerRecordsNegativeDifference(t *testing.T) {
	f := newSessionFixture(t)

	session, err := f.svc.OpenSession(f.ctx, &OpenSessionInput{
		CashierID:   f.cashier,
		TerminalID:  f.terminal.ID,
		OpeningCash: d("100.00"),
	})
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}
	f.sessions.cashCollected = d("50.00")

	closed, err := f.svc.CloseSession(f.ctx, &CloseSessionInput{
		SessionID:   session.ID,
		ClosingCash: d("140.00"),
	})
	if err != nil {
		t.Fatalf("CloseSession: %v", err)
	}

	if !closed.CashDifference.Equal(d("-10.00")) {
		t.Errorf("cash difference: got %s, want -10.00", closed.CashDifference)
	}
}

func TestCloseSession_AlreadyClosedConflicts(t *testing.T) {
	f := newSessionFixture(t)

	session, err := f.svc.OpenSession(f.ctx, &OpenSessionInput{
		CashierID:   f.cashier,
		TerminalID:  f.terminal.ID,
		OpeningCash: d("100.00"),
	})
	if err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	if _, err := f.svc.CloseSession(f.ctx, &CloseSessionInput{
		SessionID:   session.ID,
		ClosingCash: d("100.00"),
	}); err != nil {
		t.Fatalf("first close: %v", err)
	}

	_, err = f.svc.CloseSession(f.ctx, &CloseSessionInput{
		SessionID:   session.ID,
		ClosingCash: d("100.00"),
	})
	assertAppErrorCode(t, err, 409)
}

func TestGetActiveSession_NilWhenNoneOpen(t *testing.T) {
	f := newSessionFixture(t)

	session, err := f.svc.GetActiveSession(f.ctx, f.cashier)
	if err != nil {
		t.Fatalf("GetActiveSession: %v", err)
	}
	if session != nil {
		t.Fatalf("expected nil session, got %+v", session)
	}
}
