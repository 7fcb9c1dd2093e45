package models

import (
	"time"
)

// ChatMessage is one persisted relay message. Rows are append-only; the
// auto-increment id doubles as the tiebreak when timestamps collide.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	MessageID string    `gorm:"size:64;not null;uniqueIndex" json:"id"`
	Room      string    `gorm:"size:50;not null;index" json:"room"`
	UserID    string    `gorm:"size:100;not null" json:"user_id"`
	Nickname  string    `gorm:"size:100;not null" json:"nickname"`
	Avatar    string    `gorm:"size:200" json:"avatar,omitempty"`
	Text      string    `gorm:"size:500;not null" json:"text"`
	CreatedAt time.Time `json:"timestamp"`
}
