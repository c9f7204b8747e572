package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	TenantID uuid.UUID `gorm:"type:uuid;index;not null" json:"tenantId"`

	LastName  string `gorm:"not null" json:"lastName"`
	FirstName string `json:"firstName"`
	// Birthday is matched on month and day only.
	Birthday    *time.Time `gorm:"type:date" json:"birthday,omitempty"`
	MessagingID string     `gorm:"index" json:"messagingId,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	PostalCode  string     `json:"postalCode,omitempty"`
	Address     string     `json:"address,omitempty"`

	Vehicles []Vehicle `gorm:"foreignKey:CustomerID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DisplayName is family name first, as printed on shop correspondence.
func (c Customer) DisplayName() string {
	return strings.TrimSpace(c.LastName + " " + c.FirstName)
}
