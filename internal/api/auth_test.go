package api_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkitchen/recipeshare/internal/middleware"
	"github.com/openkitchen/recipeshare/internal/models"
)

func TestSignupCreatesUserAndSession(t *testing.T) {
	engine, db, store := setupTestApp(t)

	w := doPost(engine, "/signup", url.Values{
		"email":         {"bob@example.com"},
		"email_confirm": {"bob@example.com"},
		"username":      {"bob"},
		"password":      {"hunter22"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "bob@example.com").Error)
	assert.Equal(t, "bob", user.Username)

	// The response cookie resolves to an authenticated session.
	var token string
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			token = c.Value
		}
	}
	require.NotEmpty(t, token)
	data, err := store.Get(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", data.Email)
}

func TestSignupDuplicateEmailRejected(t *testing.T) {
	engine, db, _ := setupTestApp(t)
	signupUser(t, db, "bob@example.com", "bob", "hunter22")

	w := doPost(engine, "/signup", url.Values{
		"email":         {"bob@example.com"},
		"email_confirm": {"bob@example.com"},
		"username":      {"impostor"},
		"password":      {"other"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "An account already exists with that email.")

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSignupEmailConfirmMismatch(t *testing.T) {
	engine, db, _ := setupTestApp(t)

	w := doPost(engine, "/signup", url.Values{
		"email":         {"bob@example.com"},
		"email_confirm": {"bbo@example.com"},
		"username":      {"bob"},
		"password":      {"hunter22"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Email confirmation does not match.")

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLoginSuccess(t *testing.T) {
	engine, db, store := setupTestApp(t)
	signupUser(t, db, "bob@example.com", "bob", "hunter22")

	w := doPost(engine, "/login", url.Values{
		"email":    {"bob@example.com"},
		"password": {"hunter22"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var token string
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			token = c.Value
		}
	}
	require.NotEmpty(t, token)
	data, err := store.Get(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", data.Email)
}

func TestLoginUnknownEmail(t *testing.T) {
	engine, _, _ := setupTestApp(t)

	w := doPost(engine, "/login", url.Values{
		"email":    {"nobody@example.com"},
		"password": {"whatever"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Email not found.")
}

func TestLoginWrongPassword(t *testing.T) {
	engine, db, _ := setupTestApp(t)
	signupUser(t, db, "bob@example.com", "bob", "hunter22")

	w := doPost(engine, "/login", url.Values{
		"email":    {"bob@example.com"},
		"password": {"not-the-password"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect password.")
}

func TestAccountRequiresLogin(t *testing.T) {
	engine, _, _ := setupTestApp(t)

	w := doGet(engine, "/account")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestAccountShowsUserDetails(t *testing.T) {
	engine, db, store := setupTestApp(t)
	signupUser(t, db, "bob@example.com", "bob", "hunter22")
	cookie := sessionFor(t, store, "bob@example.com")

	w := doGet(engine, "/account", cookie)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bob@example.com")
	assert.Contains(t, w.Body.String(), "bob")
}

func TestLogoutClearsIdentity(t *testing.T) {
	engine, db, store := setupTestApp(t)
	signupUser(t, db, "bob@example.com", "bob", "hunter22")
	cookie := sessionFor(t, store, "bob@example.com")

	w := doGet(engine, "/logout", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	data, err := store.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.Empty(t, data.Email)
}
