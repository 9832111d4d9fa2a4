package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sokoerp/pos-api/internal/domain/entity"
	domainRepo "github.com/sokoerp/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type terminalRepository struct {
	db *gorm.DB
}

// NewTerminalRepository creates a new terminal repository
func NewTerminalRepository(db *gorm.DB) domainRepo.TerminalRepository {
	return &terminalRepository{db: db}
}

func (r *terminalRepository) Create(ctx context.Context, terminal *entity.POSTerminal) error {
	return r.db.WithContext(ctx).Create(terminal).Error
}

func (r *terminalRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.POSTerminal, error) {
	var terminal entity.POSTerminal
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		First(&terminal, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &terminal, err
}

func (r *terminalRepository) Update(ctx context.Context, terminal *entity.POSTerminal) error {
	return r.db.WithContext(ctx).Save(terminal).Error
}

func (r *terminalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.POSTerminal{}, "id = ?", id).Error
}

func (r *terminalRepository) List(ctx context.Context) ([]entity.POSTerminal, error) {
	var terminals []entity.POSTerminal
	err := r.db.WithContext(ctx).
		Scopes(OrgScope(ctx)).
		Order("name ASC").
		Find(&terminals).Error
	return terminals, err
}

func (r *terminalRepository) HasSessions(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.POSSession{}).
		Where("terminal_id = ?", id).
		Count(&count).Error
	return count > 0, err
}
