package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openkitchen/recipeshare/internal/models"
)

func TestSignupAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	user, err := svc.Signup(ctx, "bob@example.com", "bob@example.com", "bob", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", user.Email)
	assert.NotEqual(t, "hunter22", user.PasswordHash)

	// The account is retrievable by email and the password verifies.
	got, err := svc.Login(ctx, "bob@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)
}

func TestSignupEmailConfirmMismatch(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)

	_, err := svc.Signup(context.Background(), "bob@example.com", "bbo@example.com", "bob", "hunter22")
	assert.ErrorIs(t, err, ErrEmailMismatch)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "bob@example.com", "bob@example.com", "bob", "hunter22")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "bob@example.com", "bob@example.com", "bob2", "other")
	assert.ErrorIs(t, err, ErrEmailTaken)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLoginUnknownEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrEmailNotFound)
}

func TestLoginWrongPassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAuthService(db)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "bob@example.com", "bob@example.com", "bob", "hunter22")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "bob@example.com", "not-the-password")
	assert.ErrorIs(t, err, ErrWrongPassword)
}
