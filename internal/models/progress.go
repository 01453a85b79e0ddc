package models

import "time"

// ProgressRefType tags which kind of key a progress record is attached to.
// Keeping the tag separate from the key means a free-text topic can never
// collide with a module id that happens to contain the same characters.
type ProgressRefType string

const (
	ProgressRefModule ProgressRefType = "module"
	ProgressRefTopic  ProgressRefType = "topic"
)

const (
	ProgressStatusCompleted  = "Completed"
	ProgressStatusInProgress = "In-progress"
)

// ProgressRecord holds the most recent quiz attempt for one (user, key)
// pair. The application upserts on the composite natural key; the most
// recent submission always wins.
type ProgressRecord struct {
	ID       string          `json:"id" gorm:"primaryKey;size:255"`
	UserID   string          `json:"user_id" gorm:"not null;size:255;uniqueIndex:idx_progress_user_key"`
	RefType  ProgressRefType `json:"ref_type" gorm:"not null;size:10;uniqueIndex:idx_progress_user_key"`
	RefKey   string          `json:"ref_key" gorm:"not null;size:255;uniqueIndex:idx_progress_user_key"`
	Topic    string          `json:"topic" gorm:"size:200"`
	Status   string          `json:"status" gorm:"size:50;default:Completed"`
	Score    float64         `json:"score"`

	LastUpdated time.Time `json:"last_updated" gorm:"index"`
}

func (ProgressRecord) TableName() string {
	return "progress_records"
}
