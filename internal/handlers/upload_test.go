package handlers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/k4lib3/stackover/backend/internal/config"
	"github.com/k4lib3/stackover/backend/internal/models"
)

func doUpload(t *testing.T, r *gin.Engine, userID int, token, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/upload/%d", userID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUploadProfilePicture(t *testing.T) {
	r, cfg := newTestRouterCfg(t)
	aliceID, alice := signupAndLogin(t, r, "a@x.com", "Alice", "secret")

	w := doUpload(t, r, aliceID, alice, "photo.png", []byte("png-bytes"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decodeBody[struct {
		ProfilePicture string `json:"profile_picture"`
	}](t, w)
	assert.True(t, strings.HasSuffix(resp.ProfilePicture, ".png"))

	// The file landed in the upload dir under the regenerated name.
	entries, err := os.ReadDir(cfg.UploadDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), fmt.Sprintf("user_%d_", aliceID)))
	assert.Equal(t, ".png", filepath.Ext(entries[0].Name()))

	// And is recorded on the user.
	var user models.User
	require.NoError(t, requireDB(t).First(&user, aliceID).Error)
	assert.Equal(t, resp.ProfilePicture, user.ProfilePicture)
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	r := newTestRouter(t)
	aliceID, alice := signupAndLogin(t, r, "a@x.com", "Alice", "secret")

	w := doUpload(t, r, aliceID, alice, "photo.exe", []byte("MZ..."))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRejectsMissingFile(t *testing.T) {
	r := newTestRouter(t)
	aliceID, alice := signupAndLogin(t, r, "a@x.com", "Alice", "secret")

	w := doUpload(t, r, aliceID, alice, "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	r := newTestRouter(t)
	aliceID, alice := signupAndLogin(t, r, "a@x.com", "Alice", "secret")

	oversized := bytes.Repeat([]byte("x"), config.MaxUploadBytes+1)
	w := doUpload(t, r, aliceID, alice, "photo.png", oversized)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// A body far past the limit is cut off while parsing, before any bytes
// are spooled to disk, and still reports the size error.
func TestUploadRejectsOversizedBody(t *testing.T) {
	r, cfg := newTestRouterCfg(t)
	aliceID, alice := signupAndLogin(t, r, "a@x.com", "Alice", "secret")

	oversized := bytes.Repeat([]byte("x"), config.MaxUploadBytes*2)
	w := doUpload(t, r, aliceID, alice, "photo.png", oversized)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "16 MiB")

	entries, err := os.ReadDir(cfg.UploadDir)
	if err == nil {
		assert.Empty(t, entries)
	}
}

func TestUploadSelfOnly(t *testing.T) {
	r := newTestRouter(t)
	aliceID, _ := signupAndLogin(t, r, "a@x.com", "Alice", "secret")
	_, bob := signupAndLogin(t, r, "b@x.com", "Bob", "secret")

	w := doUpload(t, r, aliceID, bob, "photo.png", []byte("png-bytes"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doUpload(t, r, aliceID, "", "photo.png", []byte("png-bytes"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
