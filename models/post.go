package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Post struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CategoryID    uint           `json:"category_id"`
	Category      Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	UserID        uint           `json:"user_id"`
	Title         string         `gorm:"size:200;not null" json:"title"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	Author        string         `gorm:"size:100;not null" json:"author"`
	Password      string         `gorm:"size:255" json:"-"`
	Instagram     string         `gorm:"size:100" json:"instagram,omitempty"`
	Views         int            `gorm:"default:0" json:"views"`
	LikesCount    int            `gorm:"default:0" json:"likes_count"`
	DislikesCount int            `gorm:"default:0" json:"dislikes_count"`
	IsPinned      bool           `gorm:"default:false" json:"is_pinned"`
	IsBlinded     bool           `gorm:"default:false" json:"is_blinded"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Comments      []Comment      `json:"comments,omitempty"`
	Poll          *Poll          `json:"poll,omitempty"`
}

// BeforeCreate hashes the deletion password before the post is stored.
// Hashing happens on create only so counter updates never re-hash.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		p.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword compares the provided password against the stored hash.
func (p *Post) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(password))
}
