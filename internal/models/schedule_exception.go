package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleException overrides the recurring hours for one calendar day.
// Date is stored as YYYY-MM-DD in the business timezone so the lookup is
// a plain string match, immune to the server's local zone.
type ScheduleException struct {
	ID         string `gorm:"primaryKey;size:36" json:"id"`
	BusinessID string `gorm:"size:36;index:idx_business_date,unique" json:"business_id"`

	Date         string `gorm:"size:10;index:idx_business_date,unique" json:"date"`
	IsNonWorking bool   `json:"is_non_working"`
	StartTime    string `gorm:"size:5" json:"start_time"`
	EndTime      string `gorm:"size:5" json:"end_time"`
	Note         string `gorm:"size:255" json:"note"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *ScheduleException) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
