package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is a single shop. Every other record is partitioned by TenantID.
type Tenant struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Customers         []Customer         `gorm:"foreignKey:TenantID" json:"-"`
	Vehicles          []Vehicle          `gorm:"foreignKey:TenantID" json:"-"`
	ReminderTemplates []ReminderTemplate `gorm:"foreignKey:TenantID" json:"-"`
}
