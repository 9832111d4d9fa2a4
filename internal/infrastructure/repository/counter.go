package repository

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// nextNumber advances the (organization, scope) sequence counter by one and
// formats the document number. The upsert is a single statement, so two
// transactions advancing the same counter serialize on the row lock and can
// never mint the same value. Must run inside the caller's transaction: if the
// transaction rolls back, the counter advance rolls back with it.
func nextNumber(tx *gorm.DB, orgID uuid.UUID, scope, prefix string) (string, error) {
	var value int64
	err := tx.Raw(`
		INSERT INTO sequence_counters (organization_id, scope, value)
		VALUES (?, ?, 1)
		ON CONFLICT (organization_id, scope)
		DO UPDATE SET value = sequence_counters.value + 1
		RETURNING value
	`, orgID, scope).Scan(&value).Error
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%06d", prefix, value), nil
}
