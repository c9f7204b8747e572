package repositories

import (
	"context"

	"garagepro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// ListByTenant returns only vehicles carrying at least one reminder date.
func (r *VehicleRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("shaken_date IS NOT NULL OR inspection_date IS NOT NULL OR custom_reminder_date IS NOT NULL").
		Order("created_at, id").
		Find(&vehicles).Error
	return vehicles, err
}
