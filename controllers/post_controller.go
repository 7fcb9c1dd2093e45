package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/athletetime/community_backend/database"
	"github.com/athletetime/community_backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	maxTitleLength   = 200
	maxContentLength = 10000
	defaultPageSize  = 20
	maxPageSize      = 100
)

type CreatePostInput struct {
	Category  string           `json:"category"`
	Title     string           `json:"title" binding:"required"`
	Content   string           `json:"content" binding:"required"`
	Author    string           `json:"author" binding:"required"`
	Password  string           `json:"password"`
	Instagram string           `json:"instagram"`
	UserID    string           `json:"userId"`
	Poll      *CreatePollInput `json:"poll"`
}

type CreatePollInput struct {
	Question      string     `json:"question" binding:"required"`
	Options       []string   `json:"options" binding:"required,min=2,max=10"`
	AllowMultiple bool       `json:"allowMultiple"`
	EndsAt        *time.Time `json:"endsAt"`
}

type DeleteInput struct {
	Password string `json:"password"`
}

func pollOptionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC")
}

// GetPosts godoc
// @Summary List board posts
// @Description Returns posts filtered by category and search term, sorted and paginated
// @Tags posts
// @Accept json
// @Produce json
// @Param category query string false "Category name"
// @Param search query string false "Search term"
// @Param sort query string false "Sort order: recent, popular, views"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]interface{} "List of posts"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /api/posts [get]
func GetPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}

	query := database.DB.Model(&models.Post{}).Where("is_blinded = ?", false)

	if category := c.Query("category"); category != "" {
		query = query.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.name = ?", category)
	}

	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch posts"})
		return
	}

	switch c.DefaultQuery("sort", "recent") {
	case "popular":
		query = query.Order("(likes_count - dislikes_count) DESC, created_at DESC")
	case "views":
		query = query.Order("views DESC, created_at DESC")
	default:
		query = query.Order("is_pinned DESC, created_at DESC")
	}

	var posts []models.Post
	if err := query.Preload("Category").Preload("Poll.Options", pollOptionOrder).
		Limit(limit).Offset((page - 1) * limit).
		Find(&posts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"posts":   posts,
		"pagination": gin.H{
			"page":       page,
			"limit":      limit,
			"total":      total,
			"totalPages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

// GetPost godoc
// @Summary Get one post
// @Description Returns a post with its comments, poll, and voter lists; increments the view counter
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]interface{} "Post detail"
// @Failure 404 {object} map[string]interface{} "Post not found"
// @Router /api/posts/{id} [get]
func GetPost(c *gin.Context) {
	id := c.Param("id")

	var post models.Post
	if err := database.DB.Where("is_blinded = ?", false).
		Preload("Category").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_blinded = ?", false).Order("created_at ASC")
		}).
		Preload("Poll.Options", pollOptionOrder).
		First(&post, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Post not found"})
		return
	}

	// Count the view only once the post is known to be visible.
	database.DB.Model(&models.Post{}).Where("id = ?", post.ID).
		UpdateColumn("views", gorm.Expr("views + 1"))
	post.Views++

	var votes []models.Vote
	database.DB.Where("post_id = ?", post.ID).Find(&votes)

	likes := make([]uint, 0)
	dislikes := make([]uint, 0)
	for _, vote := range votes {
		if vote.VoteType == models.VoteLike {
			likes = append(likes, vote.UserID)
		} else {
			dislikes = append(dislikes, vote.UserID)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"post":     post,
		"likes":    likes,
		"dislikes": dislikes,
	})
}

// CreatePost godoc
// @Summary Create a post
// @Description Creates a board post, optionally with a poll and a deletion password
// @Tags posts
// @Accept json
// @Produce json
// @Param post body CreatePostInput true "Post"
// @Success 201 {object} map[string]interface{} "Created post"
// @Failure 400 {object} map[string]interface{} "Invalid input"
// @Failure 429 {object} map[string]interface{} "Rate limited"
// @Failure 500 {object} map[string]interface{} "Server error"
// @Router /api/posts [post]
func CreatePost(c *gin.Context) {
	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if len([]rune(input.Title)) > maxTitleLength || len([]rune(input.Content)) > maxContentLength {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Title or content too long"})
		return
	}

	user, err := getOrCreateUser(input.UserID, input.Author)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to resolve user"})
		return
	}

	if !limiter.Allow("post:"+user.AnonymousID, rateLimitMaxPosts) {
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "message": "Too many posts, try again later"})
		return
	}

	categoryName := input.Category
	if categoryName == "" {
		categoryName = "자유"
	}
	var category models.Category
	if err := database.DB.Where("name = ? AND is_active = ?", categoryName, true).First(&category).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unknown category"})
		return
	}

	post := models.Post{
		CategoryID: category.ID,
		UserID:     user.ID,
		Title:      input.Title,
		Content:    input.Content,
		Author:     input.Author,
		Password:   input.Password,
		Instagram:  input.Instagram,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&post).Error; err != nil {
			return err
		}
		if input.Poll != nil {
			poll := models.Poll{
				PostID:        post.ID,
				Question:      input.Poll.Question,
				AllowMultiple: input.Poll.AllowMultiple,
				EndsAt:        input.Poll.EndsAt,
			}
			if err := tx.Create(&poll).Error; err != nil {
				return err
			}
			for i, text := range input.Poll.Options {
				option := models.PollOption{PollID: poll.ID, Text: text, SortOrder: i}
				if err := tx.Create(&option).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create post"})
		return
	}

	database.DB.Preload("Category").Preload("Poll.Options", pollOptionOrder).First(&post, post.ID)

	notifyAll("new_post", gin.H{
		"id":       post.ID,
		"title":    post.Title,
		"author":   post.Author,
		"category": category.Name,
	})

	c.JSON(http.StatusCreated, gin.H{"success": true, "post": post})
}

// UpdatePostViews godoc
// @Summary Increment a post's view counter
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} map[string]interface{} "Updated view count"
// @Failure 404 {object} map[string]interface{} "Post not found"
// @Router /api/posts/{id}/views [put]
func UpdatePostViews(c *gin.Context) {
	id := c.Param("id")

	result := database.DB.Model(&models.Post{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update views"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Post not found"})
		return
	}

	var post models.Post
	database.DB.Select("views").First(&post, id)

	c.JSON(http.StatusOK, gin.H{"success": true, "views": post.Views})
}

// DeletePost godoc
// @Summary Delete a post
// @Description Soft-deletes a post when the password matches the stored hash or the admin override
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param body body DeleteInput true "Deletion password"
// @Success 200 {object} map[string]interface{} "Deleted"
// @Failure 403 {object} map[string]interface{} "Wrong password"
// @Failure 404 {object} map[string]interface{} "Post not found"
// @Router /api/posts/{id} [delete]
func DeletePost(c *gin.Context) {
	id := c.Param("id")

	var input DeleteInput
	c.ShouldBindJSON(&input)

	var post models.Post
	if err := database.DB.First(&post, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Post not found"})
		return
	}

	if post.Password != "" {
		if err := post.CheckPassword(input.Password); err != nil && input.Password != adminPassword() {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "Wrong password"})
			return
		}
	}

	if err := database.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post deleted"})
}
