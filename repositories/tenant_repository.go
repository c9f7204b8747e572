package repositories

import (
	"context"
	"errors"

	"garagepro-backend/models"
	"garagepro-backend/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) Get(ctx context.Context, id uuid.UUID) (models.Tenant, error) {
	var tenant models.Tenant
	if err := r.db.WithContext(ctx).First(&tenant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Tenant{}, services.ErrTenantNotFound
		}
		return models.Tenant{}, err
	}
	return tenant, nil
}

func (r *TenantRepository) ListActive(ctx context.Context) ([]models.Tenant, error) {
	var tenants []models.Tenant
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("created_at, id").Find(&tenants).Error
	return tenants, err
}
