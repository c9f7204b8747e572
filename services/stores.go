package services

import (
	"context"

	"garagepro-backend/models"

	"github.com/google/uuid"
)

// TenantStore resolves shops. Get returns ErrTenantNotFound for unknown ids.
type TenantStore interface {
	Get(ctx context.Context, id uuid.UUID) (models.Tenant, error)
	ListActive(ctx context.Context) ([]models.Tenant, error)
}

// CustomerStore and VehicleStore return a tenant's records in a stable order.
type CustomerStore interface {
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Customer, error)
}

type VehicleStore interface {
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.Vehicle, error)
}

type TemplateStore interface {
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.ReminderTemplate, error)
	// Upsert keeps one row per (tenant, category).
	Upsert(ctx context.Context, tpl *models.ReminderTemplate) error
	Delete(ctx context.Context, tenantID uuid.UUID, category models.Category) (bool, error)
}

type SentLogStore interface {
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]models.SentLog, error)
	// InsertBatch writes all rows in one operation. Rows colliding with an
	// existing natural key are skipped without failing the batch.
	InsertBatch(ctx context.Context, rows []models.SentLog) error
}
