package models

import (
	"time"
)

type Poll struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	PostID        uint         `gorm:"uniqueIndex;not null" json:"post_id"`
	Question      string       `gorm:"size:200;not null" json:"question"`
	AllowMultiple bool         `gorm:"default:false" json:"allow_multiple"`
	EndsAt        *time.Time   `json:"ends_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	Options       []PollOption `json:"options,omitempty"`
}

type PollOption struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	PollID    uint   `gorm:"index;not null" json:"poll_id"`
	Text      string `gorm:"size:200;not null" json:"text"`
	SortOrder int    `gorm:"default:0" json:"sort_order"`
}

// PollVote records one ballot entry. A user voting again replaces all
// of their previous rows for the poll.
type PollVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PollID    uint      `gorm:"not null;index:idx_poll_option_voter,unique" json:"poll_id"`
	OptionID  uint      `gorm:"not null;index:idx_poll_option_voter,unique" json:"option_id"`
	UserID    uint      `gorm:"not null;index:idx_poll_option_voter,unique" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Closed reports whether the poll deadline has passed.
func (p *Poll) Closed(now time.Time) bool {
	return p.EndsAt != nil && p.EndsAt.Before(now)
}
