package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Weekday is stored as the Spanish day name, matching what the
// assistant-facing integrations send and what operators configure.
type Weekday string

const (
	WeekdayLunes     Weekday = "LUNES"
	WeekdayMartes    Weekday = "MARTES"
	WeekdayMiercoles Weekday = "MIERCOLES"
	WeekdayJueves    Weekday = "JUEVES"
	WeekdayViernes   Weekday = "VIERNES"
	WeekdaySabado    Weekday = "SABADO"
	WeekdayDomingo   Weekday = "DOMINGO"
)

// BusinessHours holds the recurring weekly window for one weekday.
// At most one row per (business, weekday); times are HH:MM wall-clock
// strings in the business timezone.
type BusinessHours struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	BusinessID string `gorm:"size:36;index:idx_business_weekday,unique" json:"business_id"`

	Weekday   Weekday `gorm:"size:12;index:idx_business_weekday,unique" json:"weekday"`
	StartTime string  `gorm:"size:5" json:"start_time"`
	EndTime   string  `gorm:"size:5" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *BusinessHours) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}
