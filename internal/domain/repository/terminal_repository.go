package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sokoerp/pos-api/internal/domain/entity"
)

// TerminalRepository defines the interface for POS terminal data operations
type TerminalRepository interface {
	Create(ctx context.Context, terminal *entity.POSTerminal) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.POSTerminal, error)
	Update(ctx context.Context, terminal *entity.POSTerminal) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]entity.POSTerminal, error)
	// HasSessions reports whether any session references the terminal,
	// which blocks deletion.
	HasSessions(ctx context.Context, id uuid.UUID) (bool, error)
}
