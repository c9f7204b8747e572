package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCustomReminderPair = errors.New("customReminderDate and customDaysBefore must be set together")

type Vehicle struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	TenantID   uuid.UUID `gorm:"type:uuid;index;not null" json:"tenantId"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`

	Name               string `gorm:"not null" json:"name"`
	RegistrationNumber string `json:"registrationNumber"`

	ShakenDate         *time.Time `gorm:"type:date;index" json:"shakenDate,omitempty"`
	InspectionDate     *time.Time `gorm:"type:date;index" json:"inspectionDate,omitempty"`
	CustomReminderDate *time.Time `gorm:"type:date" json:"customReminderDate,omitempty"`
	CustomDaysBefore   *int       `json:"customDaysBefore,omitempty"`

	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasCustomReminder reports whether both halves of the custom pair are set.
func (v Vehicle) HasCustomReminder() bool {
	return v.CustomReminderDate != nil && v.CustomDaysBefore != nil
}

func (v *Vehicle) BeforeSave(tx *gorm.DB) error {
	if (v.CustomReminderDate == nil) != (v.CustomDaysBefore == nil) {
		return ErrCustomReminderPair
	}
	return nil
}
