package websocket

import (
	"fmt"

	"github.com/athletetime/community_backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// DefaultHistoryLimit is how many messages a joining connection receives.
	DefaultHistoryLimit = 50

	// MaxHistoryLimit caps explicit history requests over REST.
	MaxHistoryLimit = 200

	// MaxMessageLength is the per-message rune cap.
	MaxMessageLength = 500
)

// MessageStore persists chat messages. Rows are append-only; there is no
// deletion in the hot path.
type MessageStore struct {
	db *gorm.DB
}

// NewMessageStore creates a store backed by the given database handle.
func NewMessageStore(db *gorm.DB) *MessageStore {
	return &MessageStore{db: db}
}

// Append stores one message and returns it with its generated id and
// timestamp. A storage fault is returned to the caller; there is no
// silent retry.
func (s *MessageStore) Append(room, userID, nickname, avatar, text string) (models.ChatMessage, error) {
	message := models.ChatMessage{
		MessageID: fmt.Sprintf("msg_%s", uuid.NewString()),
		Room:      room,
		UserID:    userID,
		Nickname:  nickname,
		Avatar:    avatar,
		Text:      text,
	}

	if err := s.db.Create(&message).Error; err != nil {
		return models.ChatMessage{}, err
	}
	return message, nil
}

// History returns up to limit messages for a room, oldest to newest.
// Ties on created_at are broken by the auto-increment id so concurrent
// sends keep a stable order.
func (s *MessageStore) History(room string, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	var messages []models.ChatMessage
	if err := s.db.Where("room = ?", room).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}

	// Query is newest-first for the LIMIT; flip to oldest-first.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// CountByRoom returns the number of stored messages for a room.
func (s *MessageStore) CountByRoom(room string) (int64, error) {
	var count int64
	err := s.db.Model(&models.ChatMessage{}).Where("room = ?", room).Count(&count).Error
	return count, err
}

// Count returns the total number of stored messages.
func (s *MessageStore) Count() (int64, error) {
	var count int64
	err := s.db.Model(&models.ChatMessage{}).Count(&count).Error
	return count, err
}
