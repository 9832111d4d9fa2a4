package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sokoerp/pos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// POSSession is one cashier's open-to-close shift at a terminal. The cashier
// name is captured when the shift opens and never re-derived, so the record
// stays accurate even if the employee directory changes later.
//
// A partial unique index on (organization_id, cashier_id) WHERE status =
// 'OPEN' (created in database.AutoMigrate) guarantees at most one open shift
// per cashier even under concurrent opens. Once CLOSED a session is
// immutable.
type POSSession struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrganizationID uuid.UUID          `gorm:"type:uuid;not null;index" json:"organization_id"`
	TerminalID     uuid.UUID          `gorm:"type:uuid;not null;index" json:"terminal_id"`
	CashierID      uuid.UUID          `gorm:"type:uuid;not null;index" json:"cashier_id"`
	CashierName    string             `gorm:"size:255;not null" json:"cashier_name"`
	OpeningCash    decimal.Decimal    `gorm:"type:decimal(12,2);not null" json:"opening_cash"`
	ClosingCash    decimal.Decimal    `gorm:"type:decimal(12,2);default:0" json:"closing_cash"`
	ExpectedCash   decimal.Decimal    `gorm:"type:decimal(12,2);default:0" json:"expected_cash"`
	CashDifference decimal.Decimal    `gorm:"type:decimal(12,2);default:0" json:"cash_difference"`
	Status         enum.SessionStatus `gorm:"size:20;not null;default:'OPEN'" json:"status"`
	OpenedAt       time.Time          `gorm:"not null" json:"opened_at"`
	ClosedAt       *time.Time         `json:"closed_at,omitempty"`
	Notes          *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`

	// Relationships
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"-"`
	Terminal     POSTerminal  `gorm:"foreignKey:TerminalID" json:"terminal,omitempty"`
	Sales        []POSSale    `gorm:"foreignKey:SessionID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new session
func (s *POSSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.OpenedAt.IsZero() {
		s.OpenedAt = time.Now()
	}
	return nil
}

// TableName returns the table name for the POSSession model
func (POSSession) TableName() string {
	return "pos_sessions"
}

// IsOpen reports whether the session still accepts sales
func (s *POSSession) IsOpen() bool {
	return s.Status == enum.SessionStatusOpen
}
