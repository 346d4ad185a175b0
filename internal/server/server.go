package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/k4lib3/stackover/backend/internal/config"
	"github.com/k4lib3/stackover/backend/internal/database"
	"github.com/k4lib3/stackover/backend/internal/handlers"
	"github.com/k4lib3/stackover/backend/internal/middleware"
)

type Server struct {
	cfg     *config.Config
	db      database.Service
	handler *handlers.Handler
}

// NewServer creates and configures a new server
func NewServer(cfg *config.Config) *http.Server {
	db, err := database.New(cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	handler := handlers.NewHandler(db.DB(), cfg)

	newServer := &Server{
		cfg:     cfg,
		db:      db,
		handler: handler,
	}

	router := newServer.RegisterRoutes()

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s\n", cfg.Port)
	fmt.Println("📝 Press Ctrl+C to stop the server")

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	return NewRouter(s.handler, s.db.Health, s.cfg)
}

// NewRouter builds the gin engine for the given handler set. Split out so
// tests can mount the routes on their own database.
func NewRouter(handler *handlers.Handler, health func() map[string]string, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// Multipart uploads are capped; anything larger is rejected by the
	// upload handler before this buffer limit matters.
	r.MaxMultipartMemory = config.MaxUploadBytes

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, health())
	})

	// Public routes
	r.POST("/register", handler.Auth.Register)
	r.POST("/login", handler.Auth.Login)

	r.GET("/questions", handler.Question.GetQuestions)
	r.GET("/questions/search", handler.Question.SearchQuestions)
	r.GET("/questions/:id/comments", handler.Comment.GetComments)

	// Protected routes (authentication required)
	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware([]byte(cfg.JWTSecret)))
	{
		protected.POST("/questions", handler.Question.CreateQuestion)
		protected.PUT("/questions/:id", handler.Question.UpdateQuestion)
		protected.DELETE("/questions/:id", handler.Question.DeleteQuestion)
		protected.POST("/questions/:id/like", handler.Vote.LikeQuestion)
		protected.POST("/questions/:id/dislike", handler.Vote.DislikeQuestion)
		protected.POST("/questions/:id/comments", handler.Comment.CreateComment)

		protected.PUT("/comments/:id", handler.Comment.UpdateComment)
		protected.DELETE("/comments/:id", handler.Comment.DeleteComment)
		protected.POST("/comments/:id/like", handler.Vote.LikeComment)
		protected.POST("/comments/:id/dislike", handler.Vote.DislikeComment)

		protected.PUT("/user/:id", handler.User.UpdateProfile)
		protected.GET("/user/:id/history", handler.User.History)
		protected.GET("/user/:id/bookmarks", handler.Bookmark.ListBookmarks)
		protected.POST("/user/:id/bookmarks/:qid", handler.Bookmark.AddBookmark)
		protected.DELETE("/user/:id/bookmarks/:qid", handler.Bookmark.RemoveBookmark)

		protected.POST("/upload/:id", handler.Upload.Upload)
	}

	return r
}
