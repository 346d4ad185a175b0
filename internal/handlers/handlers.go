package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/k4lib3/stackover/backend/internal/config"
	"github.com/k4lib3/stackover/backend/internal/repository"
)

// Handler combines all handler types
type Handler struct {
	Auth     *AuthHandler
	Question *QuestionHandler
	Comment  *CommentHandler
	Vote     *VoteHandler
	User     *UserHandler
	Bookmark *BookmarkHandler
	Upload   *UploadHandler
}

// NewHandler creates a unified handler with all sub-handlers sharing the
// same set of repositories.
func NewHandler(db *gorm.DB, cfg *config.Config) *Handler {
	users := repository.NewUserRepo(db)
	questions := repository.NewQuestionRepo(db)
	comments := repository.NewCommentRepo(db)
	votes := repository.NewVoteRepo(db)
	bookmarks := repository.NewBookmarkRepo(db)

	return &Handler{
		Auth:     NewAuthHandler(users, []byte(cfg.JWTSecret)),
		Question: NewQuestionHandler(questions),
		Comment:  NewCommentHandler(comments, questions, users),
		Vote:     NewVoteHandler(votes),
		User:     NewUserHandler(users, questions),
		Bookmark: NewBookmarkHandler(bookmarks),
		Upload:   NewUploadHandler(users, cfg.UploadDir),
	}
}

// currentUserID reads the authenticated user id set by the auth middleware.
func currentUserID(c *gin.Context) (int, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return v, true
	case uint:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
