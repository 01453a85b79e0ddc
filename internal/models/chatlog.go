package models

import "time"

// ChatLog is an append-only record of a tutor chat exchange. Rows are only
// removed when the owning user is deleted.
type ChatLog struct {
	ID      string `json:"id" gorm:"primaryKey;size:255"`
	UserID  string `json:"user_id" gorm:"not null;size:255;index"`
	Message string `json:"message" gorm:"type:text"`
	Reply   string `json:"reply" gorm:"type:text"`

	Timestamp time.Time `json:"timestamp" gorm:"index"`
}

func (ChatLog) TableName() string {
	return "chat_logs"
}
