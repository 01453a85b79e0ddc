package models

import "time"

// SubjectGeneral is the catch-all subject applied when a module is
// created without one.
const SubjectGeneral = "General"

// Module is a course unit. Modules are immutable once created; there are
// no update or delete routes.
type Module struct {
	ID          string   `json:"id" gorm:"primaryKey;size:255"`
	Title       string   `json:"title" gorm:"not null;size:200"`
	Content     string   `json:"content" gorm:"not null;type:text"`
	Subject     string   `json:"subject" gorm:"size:100;default:General"`
	CreatedBy   UserRole `json:"created_by" gorm:"size:20"`
	CreatedByID string   `json:"created_by_id" gorm:"size:255;index"`

	CreatedAt time.Time `json:"created_at"`
}

func (Module) TableName() string {
	return "modules"
}
