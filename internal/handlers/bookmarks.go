package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/k4lib3/stackover/backend/internal/models"
	"github.com/k4lib3/stackover/backend/internal/repository"
)

// BookmarkHandler manages a user's saved questions. All three operations
// are self-only; bookmarks belong to the path-specified user and nobody
// else may touch them.
type BookmarkHandler struct {
	bookmarks repository.BookmarkRepo
}

func NewBookmarkHandler(bookmarks repository.BookmarkRepo) *BookmarkHandler {
	return &BookmarkHandler{bookmarks: bookmarks}
}

// bookmarkOwner parses the path user id and checks it against the caller.
func (h *BookmarkHandler) bookmarkOwner(c *gin.Context) (int, bool) {
	callerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, false
	}

	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil || callerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only manage your own bookmarks"})
		return 0, false
	}

	return userID, true
}

// AddBookmark saves a question to the user's bookmarks. Adding an existing
// bookmark is a no-op, not an error.
func (h *BookmarkHandler) AddBookmark(c *gin.Context) {
	userID, ok := h.bookmarkOwner(c)
	if !ok {
		return
	}

	questionID, err := strconv.Atoi(c.Param("qid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	created, err := h.bookmarks.Add(c.Request.Context(), userID, questionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add bookmark"})
		return
	}

	if !created {
		c.JSON(http.StatusOK, gin.H{"message": "Already bookmarked"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Bookmark added"})
}

// RemoveBookmark deletes a bookmark
func (h *BookmarkHandler) RemoveBookmark(c *gin.Context) {
	userID, ok := h.bookmarkOwner(c)
	if !ok {
		return
	}

	questionID, err := strconv.Atoi(c.Param("qid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bookmark not found"})
		return
	}

	if err := h.bookmarks.Remove(c.Request.Context(), userID, questionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bookmark not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove bookmark"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bookmark removed"})
}

// ListBookmarks returns the questions the user bookmarked, skipping any
// whose question was deleted since.
func (h *BookmarkHandler) ListBookmarks(c *gin.Context) {
	userID, ok := h.bookmarkOwner(c)
	if !ok {
		return
	}

	questions, err := h.bookmarks.Questions(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookmarks"})
		return
	}

	if questions == nil {
		questions = []models.Question{}
	}

	c.JSON(http.StatusOK, questions)
}
