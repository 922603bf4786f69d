package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openkitchen/recipeshare/internal/models"
)

// setupTestDB opens a fresh in-memory sqlite database for one test. The
// shared-cache DSN keeps the database alive across pooled connections.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.Ingredient{},
		&models.Rating{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email, username string) models.User {
	t.Helper()
	user := models.User{Email: email, Username: username, PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}
