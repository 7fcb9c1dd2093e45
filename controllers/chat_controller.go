package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/athletetime/community_backend/database"
	"github.com/athletetime/community_backend/models"
	"github.com/athletetime/community_backend/websocket"
	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// ChatController serves the REST views of the chat relay: room catalog,
// history, stats, and health. It holds the same hub and store the
// websocket handler uses.
type ChatController struct {
	hub   *websocket.Hub
	store *websocket.MessageStore
}

// NewChatController wires the chat REST endpoints to a hub and store.
func NewChatController(hub *websocket.Hub, store *websocket.MessageStore) *ChatController {
	return &ChatController{hub: hub, store: store}
}

// GetRooms godoc
// @Summary List chat rooms
// @Description Returns the room catalog with live member and message counts
// @Tags chat
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Room list"
// @Router /api/chat/rooms [get]
func (cc *ChatController) GetRooms(c *gin.Context) {
	counts := cc.hub.RoomCounts()

	rooms := make([]gin.H, 0)
	for _, room := range websocket.RoomList() {
		messageCount, err := cc.store.CountByRoom(room.ID)
		if err != nil {
			log.Printf("error counting messages for room %s: %v", room.ID, err)
		}
		rooms = append(rooms, gin.H{
			"id":           room.ID,
			"name":         room.Name,
			"icon":         room.Icon,
			"userCount":    counts[room.ID],
			"messageCount": messageCount,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "rooms": rooms})
}

// GetMessages godoc
// @Summary Get chat history for a room
// @Description Returns up to limit messages, oldest to newest
// @Tags chat
// @Accept json
// @Produce json
// @Param room query string true "Room ID"
// @Param limit query int false "Max messages (default 50, cap 200)"
// @Success 200 {object} map[string]interface{} "Message history"
// @Failure 400 {object} map[string]interface{} "Unknown room"
// @Router /api/chat/messages [get]
func (cc *ChatController) GetMessages(c *gin.Context) {
	roomID := c.Query("room")
	if _, ok := websocket.RoomByID(roomID); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unknown room"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	messages, err := cc.store.History(roomID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "room": roomID, "messages": messages})
}

// GetStats godoc
// @Summary Service statistics
// @Description Board totals plus live chat connection counts
// @Tags stats
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Statistics"
// @Router /api/stats [get]
func (cc *ChatController) GetStats(c *gin.Context) {
	var totalPosts, totalComments int64
	database.DB.Model(&models.Post{}).Where("is_blinded = ?", false).Count(&totalPosts)
	database.DB.Model(&models.Comment{}).Where("is_blinded = ?", false).Count(&totalComments)

	var totalViews int64
	database.DB.Model(&models.Post{}).Select("COALESCE(SUM(views), 0)").Scan(&totalViews)

	var activeUsers int64
	database.DB.Model(&models.User{}).
		Where("last_active > ?", time.Now().AddDate(0, 0, -7)).
		Count(&activeUsers)

	totalMessages, err := cc.store.Count()
	if err != nil {
		log.Printf("error counting chat messages: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats": gin.H{
			"totalPosts":    totalPosts,
			"totalComments": totalComments,
			"totalViews":    totalViews,
			"activeUsers":   activeUsers,
			"chat": gin.H{
				"connections":   cc.hub.ClientCount(),
				"totalMessages": totalMessages,
				"rooms":         cc.hub.RoomCounts(),
			},
		},
	})
}

// HealthCheck godoc
// @Summary Health check
// @Tags stats
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Healthy"
// @Failure 500 {object} map[string]interface{} "Unhealthy"
// @Router /api/health [get]
func (cc *ChatController) HealthCheck(c *gin.Context) {
	sqlDB, err := database.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"status":  "unhealthy",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"status":            "healthy",
		"uptime":            time.Since(startTime).Seconds(),
		"timestamp":         time.Now().UTC().Format(time.RFC3339),
		"activeConnections": cc.hub.ClientCount(),
	})
}
