package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/k4lib3/stackover/backend/internal/models"
	"github.com/k4lib3/stackover/backend/internal/repository"
)

// VoteHandler exposes the one-shot vote endpoints. A vote is final: casting
// against a target the user already voted on is rejected with 409 whichever
// polarity is asked for.
type VoteHandler struct {
	votes repository.VoteRepo
}

func NewVoteHandler(votes repository.VoteRepo) *VoteHandler {
	return &VoteHandler{votes: votes}
}

func (h *VoteHandler) LikeQuestion(c *gin.Context) {
	h.castQuestionVote(c, models.Upvote)
}

func (h *VoteHandler) DislikeQuestion(c *gin.Context) {
	h.castQuestionVote(c, models.Downvote)
}

func (h *VoteHandler) LikeComment(c *gin.Context) {
	h.castCommentVote(c, models.Upvote)
}

func (h *VoteHandler) DislikeComment(c *gin.Context) {
	h.castCommentVote(c, models.Downvote)
}

func (h *VoteHandler) castQuestionVote(c *gin.Context, voteType int) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	questionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	err = h.votes.CastQuestionVote(c.Request.Context(), userID, questionID, voteType)
	h.respond(c, err, "Question not found")
}

func (h *VoteHandler) castCommentVote(c *gin.Context, voteType int) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	commentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	err = h.votes.CastCommentVote(c.Request.Context(), userID, commentID, voteType)
	h.respond(c, err, "Comment not found")
}

func (h *VoteHandler) respond(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Vote recorded"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
	case errors.Is(err, repository.ErrDuplicateVote):
		c.JSON(http.StatusConflict, gin.H{"error": "You have already voted"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record vote"})
	}
}
