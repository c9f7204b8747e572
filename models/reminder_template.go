package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderTemplate holds a tenant's message body for one category. A missing
// row means the built-in default text is used.
type ReminderTemplate struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TenantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_template_tenant_type,priority:1" json:"tenantId"`
	Type      Category  `gorm:"type:varchar(20);not null;uniqueIndex:idx_template_tenant_type,priority:2" json:"type"`
	Title     string    `json:"title,omitempty"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Note      string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (t *ReminderTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
