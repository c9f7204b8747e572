package repositories

import (
	"context"

	"garagepro-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at, id").
		Find(&customers).Error
	return customers, err
}
