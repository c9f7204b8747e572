package repositories

import (
	"context"

	"garagepro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const sentLogBatchSize = 200

type SentLogRepository struct {
	db *gorm.DB
}

func NewSentLogRepository(db *gorm.DB) *SentLogRepository {
	return &SentLogRepository{db: db}
}

func (r *SentLogRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.SentLog, error) {
	var logs []models.SentLog
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Find(&logs).Error
	return logs, err
}

// InsertBatch writes rows in one transaction. Natural-key collisions are
// skipped by ON CONFLICT DO NOTHING.
func (r *SentLogRepository) InsertBatch(ctx context.Context, rows []models.SentLog) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(rows, sentLogBatchSize).Error
	})
}
