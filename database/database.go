package database

import (
	"fmt"
	"log"
	"os"

	"github.com/athletetime/community_backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect establishes a connection to the database
func Connect() {
	var err error

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "localhost"
	}

	user := os.Getenv("DB_USER")
	if user == "" {
		user = "postgres"
	}

	password := os.Getenv("DB_PASS")
	if password == "" {
		password = "postgres"
	}

	dbname := os.Getenv("DB_NAME")
	if dbname == "" {
		dbname = "athletetime"
	}

	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		host, user, password, dbname, port)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	log.Println("Database connection established")
}

// Migrate automatically migrates the database schema
func Migrate() {
	DB.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
		&models.Poll{},
		&models.PollOption{},
		&models.PollVote{},
		&models.ChatMessage{},
	)
	seedCategories()
	log.Println("Database migration completed")
}

// seedCategories inserts the default board categories if missing.
func seedCategories() {
	defaults := []models.Category{
		{Name: "자유", Icon: "💬", Color: "#3B82F6", SortOrder: 1},
		{Name: "훈련", Icon: "🏃", Color: "#10B981", SortOrder: 2},
		{Name: "대회", Icon: "🏆", Color: "#F59E0B", SortOrder: 3},
		{Name: "장터", Icon: "🛒", Color: "#8B5CF6", SortOrder: 4},
		{Name: "질문", Icon: "❓", Color: "#EF4444", SortOrder: 5},
	}

	for _, category := range defaults {
		var existing models.Category
		if err := DB.Where("name = ?", category.Name).First(&existing).Error; err != nil {
			DB.Create(&category)
		}
	}
}
