package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/k4lib3/stackover/backend/internal/models"
)

func TestRegister(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/register", "", models.RegisterRequest{
		Email:           "a@x.com",
		Name:            "Alice",
		Age:             28,
		Password:        "secret",
		ConfirmPassword: "secret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decodeBody[struct {
		User models.User `json:"user"`
	}](t, w)
	assert.NotZero(t, resp.User.ID)
	assert.Equal(t, "a@x.com", resp.User.Email)
	assert.Equal(t, "users-profiles/default.png", resp.User.ProfilePicture)
	assert.NotContains(t, w.Body.String(), "password", "credential must never be serialized")
}

func TestRegisterPasswordMismatch(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/register", "", models.RegisterRequest{
		Email:           "a@x.com",
		Name:            "Alice",
		Password:        "secret",
		ConfirmPassword: "different",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r := newTestRouter(t)
	registerUser(t, r, "a@x.com", "Alice", "secret")

	w := doJSON(t, r, http.MethodPost, "/register", "", models.RegisterRequest{
		Email:           "a@x.com",
		Name:            "Impostor",
		Password:        "other",
		ConfirmPassword: "other",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin(t *testing.T) {
	r := newTestRouter(t)
	registerUser(t, r, "a@x.com", "Alice", "secret")

	token := loginUser(t, r, "a@x.com", "secret")
	assert.NotEmpty(t, token)
}

func TestLoginInvalidCredentials(t *testing.T) {
	r := newTestRouter(t)
	registerUser(t, r, "a@x.com", "Alice", "secret")

	// Wrong password and unknown email must be indistinguishable.
	wrongPw := doJSON(t, r, http.MethodPost, "/login", "", models.LoginRequest{
		Email: "a@x.com", Password: "wrong",
	})
	unknown := doJSON(t, r, http.MethodPost, "/login", "", models.LoginRequest{
		Email: "nobody@x.com", Password: "secret",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.JSONEq(t, wrongPw.Body.String(), unknown.Body.String())
}
