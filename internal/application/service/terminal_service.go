package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sokoerp/pos-api/internal/domain/entity"
	"github.com/sokoerp/pos-api/internal/domain/repository"
	infraRepo "github.com/sokoerp/pos-api/internal/infrastructure/repository"
	"github.com/sokoerp/pos-api/pkg/apperror"
)

// TerminalService handles POS terminal management
type TerminalService struct {
	terminalRepo  repository.TerminalRepository
	warehouseRepo repository.WarehouseRepository
}

// NewTerminalService creates a new terminal service
func NewTerminalService(terminalRepo repository.TerminalRepository, warehouseRepo repository.WarehouseRepository) *TerminalService {
	return &TerminalService{
		terminalRepo:  terminalRepo,
		warehouseRepo: warehouseRepo,
	}
}

// TerminalInput represents the create/update terminal input
type TerminalInput struct {
	Name        string
	Location    *string
	WarehouseID *uuid.UUID
}

// CreateTerminal creates a new terminal
func (s *TerminalService) CreateTerminal(ctx context.Context, input *TerminalInput) (*entity.POSTerminal, error) {
	orgID, ok := infraRepo.GetOrgID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Organization context required")
	}

	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Terminal name is required")
	}

	if err := s.validateWarehouse(ctx, input.WarehouseID); err != nil {
		return nil, err
	}

	terminal := &entity.POSTerminal{
		OrganizationID: orgID,
		Name:           input.Name,
		Location:       input.Location,
		WarehouseID:    input.WarehouseID,
	}

	if err := s.terminalRepo.Create(ctx, terminal); err != nil {
		return nil, err
	}

	return terminal, nil
}

// GetTerminal retrieves a terminal by ID
func (s *TerminalService) GetTerminal(ctx context.Context, id uuid.UUID) (*entity.POSTerminal, error) {
	terminal, err := s.terminalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if terminal == nil {
		return nil, apperror.NewNotFoundError("Terminal")
	}
	return terminal, nil
}

// UpdateTerminal updates a terminal
func (s *TerminalService) UpdateTerminal(ctx context.Context, id uuid.UUID, input *TerminalInput) (*entity.POSTerminal, error) {
	terminal, err := s.terminalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if terminal == nil {
		return nil, apperror.NewNotFoundError("Terminal")
	}

	if err := s.validateWarehouse(ctx, input.WarehouseID); err != nil {
		return nil, err
	}

	if input.Name != "" {
		terminal.Name = input.Name
	}
	if input.Location != nil {
		terminal.Location = input.Location
	}
	if input.WarehouseID != nil {
		terminal.WarehouseID = input.WarehouseID
	}

	if err := s.terminalRepo.Update(ctx, terminal); err != nil {
		return nil, err
	}

	return terminal, nil
}

// DeleteTerminal deletes a terminal that has never hosted a session
func (s *TerminalService) DeleteTerminal(ctx context.Context, id uuid.UUID) error {
	terminal, err := s.terminalRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if terminal == nil {
		return apperror.NewNotFoundError("Terminal")
	}

	hasSessions, err := s.terminalRepo.HasSessions(ctx, id)
	if err != nil {
		return err
	}
	if hasSessions {
		return apperror.NewConflictError("Terminal has sessions and cannot be deleted")
	}

	return s.terminalRepo.Delete(ctx, id)
}

// ListTerminals lists the organization's terminals
func (s *TerminalService) ListTerminals(ctx context.Context) ([]entity.POSTerminal, error) {
	return s.terminalRepo.List(ctx)
}

func (s *TerminalService) validateWarehouse(ctx context.Context, warehouseID *uuid.UUID) error {
	if warehouseID == nil {
		return nil
	}
	warehouse, err := s.warehouseRepo.GetByID(ctx, *warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return apperror.NewNotFoundError("Warehouse")
	}
	return nil
}
