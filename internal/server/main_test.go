package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"conduit/internal/config"
	"conduit/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		JWTSecret:      "test-secret-test-secret-test-secret",
		Env:            "test",
		AllowedOrigins: "*",
		RateLimitMax:   10000,
	}
}

// setupApp returns a full application backed by a private in-memory sqlite database.
func setupApp(t *testing.T) *fiber.App {
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

	return NewServer(testConfig(), db, nil).App()
}

// call performs one request. body is JSON-encoded when non-nil.
func call(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	res, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = res.Body.Close() }()
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

type userEnvelope struct {
	User struct {
		Username string  `json:"username"`
		Email    string  `json:"email"`
		Token    string  `json:"token"`
		Bio      *string `json:"bio"`
		Image    *string `json:"image"`
	} `json:"user"`
}

type profileBody struct {
	Username  string `json:"username"`
	Image     string `json:"image"`
	Following bool   `json:"following"`
}

type articleBody struct {
	Slug           string      `json:"slug"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Body           string      `json:"body"`
	TagList        []string    `json:"tagList"`
	Favorited      bool        `json:"favorited"`
	FavoritesCount int         `json:"favoritesCount"`
	Author         profileBody `json:"author"`
}

type articleEnvelope struct {
	Article articleBody `json:"article"`
}

type articleListEnvelope struct {
	Articles      []articleBody `json:"articles"`
	ArticlesCount int64         `json:"articlesCount"`
}

type commentBody struct {
	ID     uint        `json:"id"`
	Body   string      `json:"body"`
	Author profileBody `json:"author"`
}

type errorsEnvelope struct {
	Errors map[string]string `json:"errors"`
}

// register creates a user and returns its token.
func register(t *testing.T, app *fiber.App, username string) string {
	t.Helper()
	res, raw := call(t, app, http.MethodPost, "/users", "", fiber.Map{"user": fiber.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	}})
	require.Equal(t, http.StatusOK, res.StatusCode, string(raw))
	return decode[userEnvelope](t, raw).User.Token
}

func createArticle(t *testing.T, app *fiber.App, token, title string, tags ...string) articleBody {
	t.Helper()
	res, raw := call(t, app, http.MethodPost, "/articles", token, fiber.Map{"article": fiber.Map{
		"title":       title,
		"description": "d",
		"body":        "b",
		"tagList":     tags,
	}})
	require.Equal(t, http.StatusOK, res.StatusCode, string(raw))
	return decode[articleEnvelope](t, raw).Article
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
