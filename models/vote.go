package models

import (
	"time"
)

const (
	VoteLike    = "like"
	VoteDislike = "dislike"
)

type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index:idx_post_voter,unique" json:"post_id"`
	UserID    uint      `gorm:"not null;index:idx_post_voter,unique" json:"user_id"`
	VoteType  string    `gorm:"size:10;not null" json:"vote_type"` // like, dislike
	CreatedAt time.Time `json:"created_at"`
}
