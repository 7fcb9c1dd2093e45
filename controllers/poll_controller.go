package controllers

import (
	"math"
	"net/http"
	"time"

	"github.com/athletetime/community_backend/database"
	"github.com/athletetime/community_backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PollVoteInput struct {
	UserID    string `json:"userId" binding:"required"`
	OptionIDs []uint `json:"optionIds" binding:"required,min=1"`
}

type PollUnvoteInput struct {
	UserID string `json:"userId" binding:"required"`
}

// PollOptionResult is one option's tally.
type PollOptionResult struct {
	ID         uint   `json:"id"`
	Text       string `json:"text"`
	Votes      int64  `json:"votes"`
	Percentage int    `json:"percentage"`
}

// PollResults is the full tally for a poll.
type PollResults struct {
	PollID      uint               `json:"poll_id"`
	Question    string             `json:"question"`
	TotalVoters int64              `json:"totalVoters"`
	Options     []PollOptionResult `json:"options"`
}

func loadPollForPost(postID string) (*models.Poll, int, string) {
	var post models.Post
	if err := database.DB.First(&post, postID).Error; err != nil {
		return nil, http.StatusNotFound, "Post not found"
	}

	var poll models.Poll
	if err := database.DB.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC")
	}).Where("post_id = ?", post.ID).First(&poll).Error; err != nil {
		return nil, http.StatusNotFound, "This post has no poll"
	}

	return &poll, 0, ""
}

// VotePoll godoc
// @Summary Submit or change a poll ballot
// @Description A revote replaces the user's previous ballot; closed polls reject votes
// @Tags polls
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param ballot body PollVoteInput true "Ballot"
// @Success 200 {object} map[string]interface{} "Updated poll results"
// @Failure 400 {object} map[string]interface{} "Invalid ballot"
// @Failure 403 {object} map[string]interface{} "Poll closed"
// @Failure 404 {object} map[string]interface{} "Post or poll not found"
// @Router /api/posts/{id}/poll/vote [post]
func VotePoll(c *gin.Context) {
	var input PollVoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	poll, status, msg := loadPollForPost(c.Param("id"))
	if poll == nil {
		c.JSON(status, gin.H{"success": false, "message": msg})
		return
	}

	if poll.Closed(time.Now()) {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Poll is closed", "ends_at": poll.EndsAt})
		return
	}

	seen := make(map[uint]bool, len(input.OptionIDs))
	for _, id := range input.OptionIDs {
		if seen[id] {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Duplicate options in ballot"})
			return
		}
		seen[id] = true
	}

	if !poll.AllowMultiple && len(input.OptionIDs) > 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "This poll allows a single choice"})
		return
	}

	valid := make(map[uint]bool, len(poll.Options))
	for _, option := range poll.Options {
		valid[option.ID] = true
	}
	for _, id := range input.OptionIDs {
		if !valid[id] {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unknown option id"})
			return
		}
	}

	user, err := getOrCreateUser(input.UserID, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to resolve user"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("poll_id = ? AND user_id = ?", poll.ID, user.ID).
			Delete(&models.PollVote{}).Error; err != nil {
			return err
		}
		for _, optionID := range input.OptionIDs {
			ballot := models.PollVote{PollID: poll.ID, OptionID: optionID, UserID: user.ID}
			if err := tx.Create(&ballot).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to record ballot"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "poll": tallyPoll(poll)})
}

// UnvotePoll godoc
// @Summary Withdraw a poll ballot
// @Tags polls
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param body body PollUnvoteInput true "User"
// @Success 200 {object} map[string]interface{} "Updated poll results"
// @Failure 404 {object} map[string]interface{} "Post or poll not found"
// @Router /api/posts/{id}/poll/vote [delete]
func UnvotePoll(c *gin.Context) {
	var input PollUnvoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	poll, status, msg := loadPollForPost(c.Param("id"))
	if poll == nil {
		c.JSON(status, gin.H{"success": false, "message": msg})
		return
	}

	user, err := getOrCreateUser(input.UserID, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to resolve user"})
		return
	}

	if err := database.DB.Where("poll_id = ? AND user_id = ?", poll.ID, user.ID).
		Delete(&models.PollVote{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to withdraw ballot"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "poll": tallyPoll(poll)})
}

// GetPollResults godoc
// @Summary Get poll results
// @Tags polls
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]interface{} "Poll results"
// @Failure 404 {object} map[string]interface{} "Post or poll not found"
// @Router /api/posts/{id}/poll/results [get]
func GetPollResults(c *gin.Context) {
	poll, status, msg := loadPollForPost(c.Param("id"))
	if poll == nil {
		c.JSON(status, gin.H{"success": false, "message": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "poll": tallyPoll(poll)})
}

// tallyPoll counts ballots per option and computes integer percentages
// of the total ballot entries.
func tallyPoll(poll *models.Poll) PollResults {
	counts := make(map[uint]int64, len(poll.Options))
	var total int64

	var rows []struct {
		OptionID uint
		Count    int64
	}
	database.DB.Model(&models.PollVote{}).
		Select("option_id, COUNT(*) as count").
		Where("poll_id = ?", poll.ID).
		Group("option_id").
		Scan(&rows)

	for _, row := range rows {
		counts[row.OptionID] = row.Count
		total += row.Count
	}

	var voters int64
	database.DB.Model(&models.PollVote{}).
		Where("poll_id = ?", poll.ID).
		Distinct("user_id").
		Count(&voters)

	results := PollResults{
		PollID:      poll.ID,
		Question:    poll.Question,
		TotalVoters: voters,
		Options:     make([]PollOptionResult, 0, len(poll.Options)),
	}

	for _, option := range poll.Options {
		count := counts[option.ID]
		percentage := 0
		if total > 0 {
			percentage = int(math.Round(float64(count) / float64(total) * 100))
		}
		results.Options = append(results.Options, PollOptionResult{
			ID:         option.ID,
			Text:       option.Text,
			Votes:      count,
			Percentage: percentage,
		})
	}

	return results
}
