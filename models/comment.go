package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	PostID    uint           `gorm:"index;not null" json:"post_id"`
	UserID    uint           `json:"user_id"`
	Author    string         `gorm:"size:100;not null" json:"author"`
	Content   string         `gorm:"size:500;not null" json:"content"`
	Password  string         `gorm:"size:255" json:"-"`
	Instagram string         `gorm:"size:100" json:"instagram,omitempty"`
	IsBlinded bool           `gorm:"default:false" json:"is_blinded"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hashes the deletion password before the comment is stored.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		c.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword compares the provided password against the stored hash.
func (c *Comment) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(c.Password), []byte(password))
}
