package models

import (
	"time"
)

// User is an anonymous board identity keyed by a client-held opaque id.
// There is no registration or login; a row is created the first time an
// anonymous id shows up.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AnonymousID string    `gorm:"size:100;not null;uniqueIndex" json:"anonymous_id"`
	Username    string    `gorm:"size:100" json:"username"`
	LastActive  time.Time `json:"last_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
