package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/k4lib3/stackover/backend/internal/config"
	"github.com/k4lib3/stackover/backend/internal/repository"
)

// maxMultipartOverhead is the slack allowed on top of the file size limit
// for multipart boundaries and part headers.
const maxMultipartOverhead = 4 << 10

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// UploadHandler stores profile pictures on disk and records the relative
// path on the user. The file is written first, then the record updated; a
// crash in between leaves an orphan file, which is accepted.
type UploadHandler struct {
	users     repository.UserRepo
	uploadDir string
}

func NewUploadHandler(users repository.UserRepo, uploadDir string) *UploadHandler {
	return &UploadHandler{users: users, uploadDir: uploadDir}
}

// allowedExtension reports whether the filename carries an accepted image
// extension. The check is case-insensitive.
func allowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// sanitizeFilename regenerates the stored name from the user id and a
// timestamp; only the extension of the client's filename survives.
func sanitizeFilename(userID int, original string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	return fmt.Sprintf("user_%d_%d%s", userID, time.Now().UnixNano(), ext)
}

// Upload handles profile picture upload (PROTECTED - self only)
func (h *UploadHandler) Upload(c *gin.Context) {
	callerID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if callerID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only upload your own profile picture"})
		return
	}

	// Cap the request body before multipart parsing so an oversized
	// upload is cut off at the transport instead of being spooled to
	// temp files first. The slack covers multipart framing overhead.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, config.MaxUploadBytes+maxMultipartOverhead)

	file, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 16 MiB limit"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected"})
		return
	}

	if !allowedExtension(file.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed (png, jpg, jpeg, gif)"})
		return
	}

	if file.Size > config.MaxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 16 MiB limit"})
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	filename := sanitizeFilename(userID, file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	relPath := filepath.ToSlash(filepath.Join(filepath.Base(h.uploadDir), filename))
	if err := h.users.SetProfilePicture(c.Request.Context(), userID, relPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile picture"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Profile picture uploaded",
		"profile_picture": relPath,
	})
}
