package repository

import (
	"context"
	"fmt"
	"testing"

	"conduit/internal/database"
	"conduit/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB returns a migrated, private in-memory sqlite database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return gormDB, mock
}

func createUser(t *testing.T, repo UserRepository, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: fmt.Sprintf("%s@example.com", name)}
	require.NoError(t, u.SetPassword("password"))
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func createArticle(t *testing.T, repo ArticleRepository, author *models.User, title string, tags ...string) *models.Article {
	t.Helper()
	a := &models.Article{Title: title, Description: "d", Body: "b", AuthorID: author.ID}
	a.SetTags(tags)
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}
