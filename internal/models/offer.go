package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Offer is a catalog entry linking a business to the appointment types it
// currently books through the public widget.
type Offer struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	BusinessID string `gorm:"size:36;index" json:"business_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	Active      bool   `gorm:"default:true" json:"active"`

	AppointmentTypes []AppointmentType `gorm:"many2many:offer_appointment_types;" json:"appointment_types,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
