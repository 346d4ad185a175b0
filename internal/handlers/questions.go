package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/k4lib3/stackover/backend/internal/models"
	"github.com/k4lib3/stackover/backend/internal/repository"
)

type QuestionHandler struct {
	questions repository.QuestionRepo
}

func NewQuestionHandler(questions repository.QuestionRepo) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

// GetQuestions returns all questions ranked by net score
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	questions, err := h.questions.Ranked(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}

	// If no questions, return empty array not null
	if questions == nil {
		questions = []models.Question{}
	}

	c.JSON(http.StatusOK, questions)
}

// SearchQuestions filters by title substring, then ranks. The match is
// case-insensitive.
func (h *QuestionHandler) SearchQuestions(c *gin.Context) {
	title := c.Query("title")

	questions, err := h.questions.SearchByTitle(c.Request.Context(), title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search questions"})
		return
	}

	if questions == nil {
		questions = []models.Question{}
	}

	c.JSON(http.StatusOK, questions)
}

// CreateQuestion creates a new question (PROTECTED - requires authentication)
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var input models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and description are required"})
		return
	}

	authorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	question := models.Question{
		Title:       input.Title,
		Description: input.Description,
		AuthorID:    authorID,
	}

	if err := h.questions.Create(c.Request.Context(), &question); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	if author, err := h.questions.GetAuthor(c.Request.Context(), &question); err == nil {
		question.User = *author
	}

	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion updates a question's title/description (PROTECTED). A
// question that does not exist and a question owned by someone else produce
// the same 404, so callers cannot probe for existence.
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	authorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	var input models.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string]any{}
	if input.Title != "" {
		fields["title"] = input.Title
	}
	if input.Description != "" {
		fields["description"] = input.Description
	}

	question, err := h.questions.UpdateOwned(c.Request.Context(), questionID, authorID, fields)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update question"})
		return
	}

	if author, err := h.questions.GetAuthor(c.Request.Context(), question); err == nil {
		question.User = *author
	}

	c.JSON(http.StatusOK, question)
}

// DeleteQuestion deletes a question (PROTECTED - requires ownership).
// Unlike update, delete distinguishes a missing question (404) from one
// owned by someone else (403).
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	authorID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	question, err := h.questions.GetByID(c.Request.Context(), questionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch question"})
		return
	}

	if question.AuthorID != authorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own questions"})
		return
	}

	if err := h.questions.Delete(c.Request.Context(), question); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}
