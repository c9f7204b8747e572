package repositories

import (
	"context"

	"garagepro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func (r *TemplateRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.ReminderTemplate, error) {
	var templates []models.ReminderTemplate
	err := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID).Find(&templates).Error
	return templates, err
}

// Upsert inserts or replaces the (tenant, type) row and reloads it so the
// caller sees the stored id and timestamps.
func (r *TemplateRepository) Upsert(ctx context.Context, tpl *models.ReminderTemplate) error {
	db := r.db.WithContext(ctx)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "type"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "body", "note", "updated_at"}),
	}).Create(tpl).Error
	if err != nil {
		return err
	}
	var stored models.ReminderTemplate
	if err := db.Where("tenant_id = ? AND type = ?", tpl.TenantID, tpl.Type).First(&stored).Error; err != nil {
		return err
	}
	*tpl = stored
	return nil
}

func (r *TemplateRepository) Delete(ctx context.Context, tenantID uuid.UUID, category models.Category) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND type = ?", tenantID, category).
		Delete(&models.ReminderTemplate{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
