package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/athletetime/community_backend/database"
	"github.com/athletetime/community_backend/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupBoardTest points the package at a fresh in-memory database and
// returns a router with the board routes mounted.
func setupBoardTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database shared across the
	// pool, so parallel requests in a test hit the same data.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
		&models.Poll{},
		&models.PollOption{},
		&models.PollVote{},
	))

	require.NoError(t, db.Create(&models.Category{Name: "자유", Icon: "💬", SortOrder: 1}).Error)
	require.NoError(t, db.Create(&models.Category{Name: "훈련", Icon: "🏃", SortOrder: 2}).Error)

	database.DB = db
	limiter.Reset()

	router := gin.New()
	api := router.Group("/api")
	{
		api.GET("/posts", GetPosts)
		api.POST("/posts", CreatePost)
		api.GET("/posts/:id", GetPost)
		api.PUT("/posts/:id/views", UpdatePostViews)
		api.DELETE("/posts/:id", DeletePost)
		api.POST("/posts/:id/comments", CreateComment)
		api.DELETE("/posts/:id/comments/:commentId", DeleteComment)
		api.POST("/posts/:id/vote", VotePost)
		api.POST("/posts/:id/poll/vote", VotePoll)
		api.DELETE("/posts/:id/poll/vote", UnvotePoll)
		api.GET("/posts/:id/poll/results", GetPollResults)
		api.GET("/categories", GetCategories)
	}
	return router
}

func performRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), out))
}

type postEnvelope struct {
	Success bool `json:"success"`
	Post    struct {
		ID            uint   `json:"id"`
		Title         string `json:"title"`
		Author        string `json:"author"`
		Views         int    `json:"views"`
		LikesCount    int    `json:"likes_count"`
		DislikesCount int    `json:"dislikes_count"`
		Poll          *struct {
			ID      uint `json:"id"`
			Options []struct {
				ID   uint   `json:"id"`
				Text string `json:"text"`
			} `json:"options"`
		} `json:"poll"`
	} `json:"post"`
}

type listEnvelope struct {
	Success bool `json:"success"`
	Posts   []struct {
		ID    uint   `json:"id"`
		Title string `json:"title"`
	} `json:"posts"`
	Pagination struct {
		Total int64 `json:"total"`
	} `json:"pagination"`
}

func createPost(t *testing.T, router *gin.Engine, body gin.H) postEnvelope {
	t.Helper()
	recorder := performRequest(t, router, http.MethodPost, "/api/posts", body)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var envelope postEnvelope
	decodeBody(t, recorder, &envelope)
	require.True(t, envelope.Success)
	return envelope
}
