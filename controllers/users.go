package controllers

import (
	"os"
	"time"

	"github.com/athletetime/community_backend/database"
	"github.com/athletetime/community_backend/middleware"
	"github.com/athletetime/community_backend/models"
	"github.com/athletetime/community_backend/utils"
)

const (
	rateLimitMaxPosts    = 3
	rateLimitMaxComments = 10
)

var limiter = middleware.NewLimiter(time.Minute)

// Broadcaster pushes board activity notices to connected chat clients.
type Broadcaster interface {
	BroadcastAll(eventType string, data interface{})
}

var notifier Broadcaster

// SetNotifier wires the chat hub in for board activity notices. Safe to
// leave unset in tests.
func SetNotifier(b Broadcaster) {
	notifier = b
}

func notifyAll(eventType string, data interface{}) {
	if notifier != nil {
		notifier.BroadcastAll(eventType, data)
	}
}

// getOrCreateUser resolves a client-held anonymous id to a user row,
// creating one on first sight and refreshing last_active otherwise.
func getOrCreateUser(anonymousID, username string) (models.User, error) {
	if anonymousID == "" {
		anonymousID = utils.NewAnonymousID()
	}
	if username == "" {
		username = "익명"
	}

	var user models.User
	err := database.DB.Where("anonymous_id = ?", anonymousID).First(&user).Error
	if err == nil {
		database.DB.Model(&user).UpdateColumn("last_active", time.Now())
		return user, nil
	}

	user = models.User{
		AnonymousID: anonymousID,
		Username:    username,
		LastActive:  time.Now(),
	}
	if err := database.DB.Create(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// adminPassword is the fixed moderation override for deletions.
func adminPassword() string {
	if pw := os.Getenv("ADMIN_PASSWORD"); pw != "" {
		return pw
	}
	return "admin"
}
