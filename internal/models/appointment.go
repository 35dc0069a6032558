package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	BusinessID string   `gorm:"size:36;index" json:"business_id"`
	Business   Business `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"business"`

	AppointmentTypeID string          `gorm:"size:36;index" json:"appointment_type_id"`
	AppointmentType   AppointmentType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"appointment_type"`

	LeadID string `gorm:"size:36;index" json:"lead_id"`
	Lead   Lead   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"lead"`

	Subject string    `gorm:"size:150" json:"subject"`
	Date    time.Time `gorm:"index" json:"date"`

	Status string `gorm:"size:20;default:'PENDIENTE'" json:"status"`

	Notes       string     `gorm:"size:255" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
