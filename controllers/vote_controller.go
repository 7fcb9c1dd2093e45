package controllers

import (
	"net/http"

	"github.com/athletetime/community_backend/database"
	"github.com/athletetime/community_backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VoteInput struct {
	UserID string `json:"userId"`
	Type   string `json:"type" binding:"required"`
}

// VotePost godoc
// @Summary Like or dislike a post
// @Description Voting the same type again cancels the vote; the other type switches it
// @Tags votes
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param vote body VoteInput true "Vote"
// @Success 200 {object} map[string]interface{} "Updated post"
// @Failure 400 {object} map[string]interface{} "Invalid vote type"
// @Failure 404 {object} map[string]interface{} "Post not found"
// @Router /api/posts/{id}/vote [post]
func VotePost(c *gin.Context) {
	var input VoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if input.Type != models.VoteLike && input.Type != models.VoteDislike {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid vote type"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Post not found"})
		return
	}

	user, err := getOrCreateUser(input.UserID, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to resolve user"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		lookupErr := tx.Where("post_id = ? AND user_id = ?", post.ID, user.ID).First(&existing).Error

		var likeDelta, dislikeDelta int

		switch {
		case lookupErr == nil && existing.VoteType == input.Type:
			// Same vote again cancels it.
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			if input.Type == models.VoteLike {
				likeDelta = -1
			} else {
				dislikeDelta = -1
			}
		case lookupErr == nil:
			// Switch vote type.
			existing.VoteType = input.Type
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			if input.Type == models.VoteLike {
				likeDelta, dislikeDelta = 1, -1
			} else {
				likeDelta, dislikeDelta = -1, 1
			}
		default:
			vote := models.Vote{PostID: post.ID, UserID: user.ID, VoteType: input.Type}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			if input.Type == models.VoteLike {
				likeDelta = 1
			} else {
				dislikeDelta = 1
			}
		}

		// Counter updates are relative in SQL; concurrent votes serialize
		// on the row instead of overwriting each other's reads. Floored
		// at zero in the same expression.
		return tx.Model(&models.Post{}).Where("id = ?", post.ID).UpdateColumns(map[string]interface{}{
			"likes_count":    gorm.Expr("CASE WHEN likes_count + ? < 0 THEN 0 ELSE likes_count + ? END", likeDelta, likeDelta),
			"dislikes_count": gorm.Expr("CASE WHEN dislikes_count + ? < 0 THEN 0 ELSE dislikes_count + ? END", dislikeDelta, dislikeDelta),
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to record vote"})
		return
	}

	database.DB.First(&post, post.ID)

	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}
