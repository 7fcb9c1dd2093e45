package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/athletetime/community_backend/database"
	"github.com/athletetime/community_backend/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func votePost(t *testing.T, router *gin.Engine, postID uint, userID, voteType string) postEnvelope {
	t.Helper()
	recorder := performRequest(t, router, http.MethodPost,
		fmt.Sprintf("/api/posts/%d/vote", postID),
		gin.H{"userId": userID, "type": voteType})
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var envelope postEnvelope
	decodeBody(t, recorder, &envelope)
	return envelope
}

func TestVoteLikeThenCancel(t *testing.T) {
	router := setupBoardTest(t)
	post := createPost(t, router, gin.H{"title": "t", "content": "c", "author": "a"})

	result := votePost(t, router, post.Post.ID, "anon_bob", "like")
	assert.Equal(t, 1, result.Post.LikesCount)

	// Same vote again cancels it.
	result = votePost(t, router, post.Post.ID, "anon_bob", "like")
	assert.Equal(t, 0, result.Post.LikesCount)
}

func TestVoteSwitchType(t *testing.T) {
	router := setupBoardTest(t)
	post := createPost(t, router, gin.H{"title": "t", "content": "c", "author": "a"})

	votePost(t, router, post.Post.ID, "anon_bob", "like")
	result := votePost(t, router, post.Post.ID, "anon_bob", "dislike")

	assert.Equal(t, 0, result.Post.LikesCount)
	assert.Equal(t, 1, result.Post.DislikesCount)
}

func TestVotesFromDifferentUsersAccumulate(t *testing.T) {
	router := setupBoardTest(t)
	post := createPost(t, router, gin.H{"title": "t", "content": "c", "author": "a"})

	votePost(t, router, post.Post.ID, "anon_bob", "like")
	result := votePost(t, router, post.Post.ID, "anon_carol", "like")

	assert.Equal(t, 2, result.Post.LikesCount)
}

func TestConcurrentVotesKeepCountersConsistent(t *testing.T) {
	router := setupBoardTest(t)
	post := createPost(t, router, gin.H{"title": "t", "content": "c", "author": "a"})

	const voters = 4
	votePath := fmt.Sprintf("/api/posts/%d/vote", post.Post.ID)

	recorders := make([]*httptest.ResponseRecorder, voters)
	var wg sync.WaitGroup
	for i := 0; i < voters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			body, _ := json.Marshal(gin.H{"userId": fmt.Sprintf("anon_voter_%d", i), "type": "like"})
			req := httptest.NewRequest(http.MethodPost, votePath, bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			recorders[i] = httptest.NewRecorder()
			router.ServeHTTP(recorders[i], req)
		}(i)
	}
	wg.Wait()

	for _, recorder := range recorders {
		require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	}

	// The counter must agree with the vote rows no matter how the
	// requests interleaved.
	var voteRows int64
	require.NoError(t, database.DB.Model(&models.Vote{}).
		Where("post_id = ?", post.Post.ID).Count(&voteRows).Error)
	assert.Equal(t, int64(voters), voteRows)

	var updated models.Post
	require.NoError(t, database.DB.First(&updated, post.Post.ID).Error)
	assert.Equal(t, voters, updated.LikesCount)
}

func TestVoteInvalidType(t *testing.T) {
	router := setupBoardTest(t)
	post := createPost(t, router, gin.H{"title": "t", "content": "c", "author": "a"})

	recorder := performRequest(t, router, http.MethodPost,
		fmt.Sprintf("/api/posts/%d/vote", post.Post.ID),
		gin.H{"userId": "anon_bob", "type": "meh"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestVoteOnMissingPost(t *testing.T) {
	router := setupBoardTest(t)

	recorder := performRequest(t, router, http.MethodPost, "/api/posts/999/vote",
		gin.H{"userId": "anon_bob", "type": "like"})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
