package main

import (
	"log"
	"os"

	"github.com/athletetime/community_backend/controllers"
	"github.com/athletetime/community_backend/database"
	"github.com/athletetime/community_backend/docs"
	"github.com/athletetime/community_backend/websocket"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Athlete Time API
// @version         1.0
// @description     Community board and chat relay for runners
// @host            localhost:8080
// @BasePath        /
// @schemes         http
func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize database
	database.Connect()
	database.Migrate()

	// Set up Swagger info
	docs.SwaggerInfo.Title = "Athlete Time API"
	docs.SwaggerInfo.Description = "Community board and chat relay for runners"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:" + os.Getenv("PORT")
	if docs.SwaggerInfo.Host == "localhost:" {
		docs.SwaggerInfo.Host = "localhost:8080"
	}
	docs.SwaggerInfo.BasePath = "/"
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Chat relay services
	hub := websocket.NewHub()
	go hub.Run()
	store := websocket.NewMessageStore(database.DB)
	wsHandler := websocket.NewHandler(hub, store)
	chat := controllers.NewChatController(hub, store)
	controllers.SetNotifier(hub)

	// Set up router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	{
		// Board routes
		api.GET("/posts", controllers.GetPosts)
		api.POST("/posts", controllers.CreatePost)
		api.GET("/posts/:id", controllers.GetPost)
		api.PUT("/posts/:id/views", controllers.UpdatePostViews)
		api.DELETE("/posts/:id", controllers.DeletePost)
		api.POST("/posts/:id/comments", controllers.CreateComment)
		api.DELETE("/posts/:id/comments/:commentId", controllers.DeleteComment)
		api.POST("/posts/:id/vote", controllers.VotePost)
		api.POST("/posts/:id/poll/vote", controllers.VotePoll)
		api.DELETE("/posts/:id/poll/vote", controllers.UnvotePoll)
		api.GET("/posts/:id/poll/results", controllers.GetPollResults)
		api.GET("/categories", controllers.GetCategories)

		// Chat REST routes
		api.GET("/chat/rooms", chat.GetRooms)
		api.GET("/chat/messages", chat.GetMessages)
		api.GET("/stats", chat.GetStats)
		api.GET("/health", chat.HealthCheck)
	}

	// WebSocket route
	router.GET("/ws", wsHandler.HandleConnection)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server running on port %s", port)
	log.Printf("Swagger documentation available at http://localhost:%s/swagger/index.html", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
