package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/k4lib3/stackover/backend/internal/config"
	"github.com/k4lib3/stackover/backend/internal/handlers"
	"github.com/k4lib3/stackover/backend/internal/models"
	"github.com/k4lib3/stackover/backend/internal/server"
)

// newTestRouter wipes the database and mounts the full route set on it.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	r, _ := newTestRouterCfg(t)
	return r
}

func newTestRouterCfg(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	db := requireDB(t)

	err := db.Exec(`TRUNCATE users, questions, comments, question_votes, comment_votes, bookmarks RESTART IDENTITY CASCADE`).Error
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret: "test-secret",
		UploadDir: t.TempDir(),
	}

	handler := handlers.NewHandler(db, cfg)
	health := func() map[string]string { return map[string]string{"status": "up"} }

	return server.NewRouter(handler, health, cfg), cfg
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
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
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerUser creates an account and returns its id.
func registerUser(t *testing.T, r *gin.Engine, email, name, password string) int {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/register", "", models.RegisterRequest{
		Email:           email,
		Name:            name,
		Age:             30,
		Password:        password,
		ConfirmPassword: password,
	})
	require.Equal(t, http.StatusCreated, w.Code, "register %s: %s", email, w.Body.String())

	var resp struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.User.ID
}

// loginUser returns a bearer token for the given credentials.
func loginUser(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/login", "", models.LoginRequest{
		Email:    email,
		Password: password,
	})
	require.Equal(t, http.StatusOK, w.Code, "login %s: %s", email, w.Body.String())

	resp := decodeBody[models.AuthResponse](t, w)
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// signupAndLogin is the common two-step fixture.
func signupAndLogin(t *testing.T, r *gin.Engine, email, name, password string) (int, string) {
	t.Helper()
	id := registerUser(t, r, email, name, password)
	return id, loginUser(t, r, email, password)
}

// createQuestion posts a question and returns the decoded entity.
func createQuestion(t *testing.T, r *gin.Engine, token, title, description string) models.Question {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/questions", token, models.CreateQuestionRequest{
		Title:       title,
		Description: description,
	})
	require.Equal(t, http.StatusCreated, w.Code, "create question: %s", w.Body.String())
	return decodeBody[models.Question](t, w)
}

// createComment posts a comment on a question and returns the entity.
func createComment(t *testing.T, r *gin.Engine, token string, questionID int, content string) models.Comment {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, fmt.Sprintf("/questions/%d/comments", questionID), token,
		models.CreateCommentRequest{Content: content})
	require.Equal(t, http.StatusCreated, w.Code, "create comment: %s", w.Body.String())
	return decodeBody[models.Comment](t, w)
}
