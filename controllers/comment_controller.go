package controllers

import (
	"net/http"

	"github.com/athletetime/community_backend/database"
	"github.com/athletetime/community_backend/models"
	"github.com/gin-gonic/gin"
)

const maxCommentLength = 500

type CreateCommentInput struct {
	Author    string `json:"author" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Password  string `json:"password"`
	Instagram string `json:"instagram"`
	UserID    string `json:"userId"`
}

// CreateComment godoc
// @Summary Comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param comment body CreateCommentInput true "Comment"
// @Success 201 {object} map[string]interface{} "Created comment"
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 404 {object} map[string]interface{} "Post not found"
// @Failure 429 {object} map[string]interface{} "Rate limited"
// @Router /api/posts/{id}/comments [post]
func CreateComment(c *gin.Context) {
	var input CreateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if len([]rune(input.Content)) > maxCommentLength {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Comment exceeds 500 characters"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Post not found"})
		return
	}

	user, err := getOrCreateUser(input.UserID, input.Author)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to resolve user"})
		return
	}

	if !limiter.Allow("comment:"+user.AnonymousID, rateLimitMaxComments) {
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "Too many comments, try again later"})
		return
	}

	comment := models.Comment{
		PostID:    post.ID,
		UserID:    user.ID,
		Author:    input.Author,
		Content:   input.Content,
		Password:  input.Password,
		Instagram: input.Instagram,
	}

	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create comment"})
		return
	}

	// Broadcast the notice to all chat clients, skipped when the author
	// commented on their own post.
	if post.UserID != user.ID {
		notifyAll("new_comment", gin.H{
			"postId":  post.ID,
			"title":   post.Title,
			"author":  comment.Author,
			"content": comment.Content,
		})
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "comment": comment})
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Soft-deletes a comment when the password matches the stored hash or the admin override
// @Tags comments
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param commentId path int true "Comment ID"
// @Param body body DeleteInput true "Deletion password"
// @Success 200 {object} map[string]interface{} "Deleted"
// @Failure 403 {object} map[string]interface{} "Wrong password"
// @Failure 404 {object} map[string]interface{} "Comment not found"
// @Router /api/posts/{id}/comments/{commentId} [delete]
func DeleteComment(c *gin.Context) {
	var input DeleteInput
	c.ShouldBindJSON(&input)

	var comment models.Comment
	if err := database.DB.Where("post_id = ?", c.Param("id")).
		First(&comment, c.Param("commentId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Comment not found"})
		return
	}

	if comment.Password != "" {
		if err := comment.CheckPassword(input.Password); err != nil && input.Password != adminPassword() {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Wrong password"})
			return
		}
	}

	if err := database.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Comment deleted"})
}
