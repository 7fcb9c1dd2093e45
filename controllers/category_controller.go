package controllers

import (
	"net/http"

	"github.com/athletetime/community_backend/database"
	"github.com/athletetime/community_backend/models"
	"github.com/gin-gonic/gin"
)

// GetCategories godoc
// @Summary List board categories
// @Description Returns active categories with live post counts
// @Tags categories
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Category list"
// @Router /api/categories [get]
func GetCategories(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Where("is_active = ?", true).
		Order("sort_order ASC").
		Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch categories"})
		return
	}

	response := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		var postCount int64
		database.DB.Model(&models.Post{}).
			Where("category_id = ? AND is_blinded = ?", category.ID, false).
			Count(&postCount)

		response = append(response, gin.H{
			"id":         category.ID,
			"name":       category.Name,
			"icon":       category.Icon,
			"color":      category.Color,
			"sort_order": category.SortOrder,
			"post_count": postCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "categories": response})
}
