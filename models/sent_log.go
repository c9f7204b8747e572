package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SentLog records that a reminder was dispatched. Rows are append-only and
// the natural key is (tenant, customer, car, date, category).
type SentLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	TenantID   uuid.UUID  `gorm:"type:uuid;index;not null" json:"tenantId"`
	CustomerID *uuid.UUID `gorm:"type:uuid" json:"customerId,omitempty"`
	CarID      *uuid.UUID `gorm:"type:uuid" json:"carId,omitempty"`
	Date       time.Time  `gorm:"type:date;not null" json:"date"`
	Category   Category   `gorm:"type:varchar(20);not null" json:"category"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func (r *SentLog) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
