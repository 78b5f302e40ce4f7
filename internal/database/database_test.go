package database

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"conduit/internal/config"
	"conduit/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestDialector(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url     string
		dialect string
		wantErr bool
	}{
		{url: "postgres://u:p@localhost:5432/conduit", dialect: "postgres"},
		{url: "postgresql://localhost/conduit", dialect: "postgres"},
		{url: "sqlite://conduit.db", dialect: "sqlite"},
		{url: "file:test.db?cache=shared", dialect: "sqlite"},
		{url: ":memory:", dialect: "sqlite"},
		{url: "", wantErr: true},
		{url: "mongodb://localhost/conduit", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			t.Parallel()
			d, err := Dialector(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.dialect, d.Name())
		})
	}
}

func TestSqliteDSN(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ":memory:?_foreign_keys=on", sqliteDSN(":memory:"))
	assert.Equal(t, "file:x.db?cache=shared&_foreign_keys=on", sqliteDSN("file:x.db?cache=shared"))
	assert.Equal(t, "x.db?_foreign_keys=off", sqliteDSN("x.db?_foreign_keys=off"))
}

func TestConnectAndMigrate(t *testing.T) {
	cfg := &config.Config{DatabaseURL: ":memory:", Env: "test"}
	db, err := Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db))
	for _, table := range []string{"users", "follows", "articles", "article_tags", "favorites", "comments"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestSlogLogger_Trace(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewSlogLogger(observability.NewLogger(&buf, true, slog.LevelDebug), logger.Warn)
	ctx := context.Background()
	query := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(ctx, time.Now(), query, nil)
	assert.Empty(t, buf.String(), "fast queries are not logged at Warn")

	l.Trace(ctx, time.Now(), query, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String(), "record not found is ignored")

	l.Trace(ctx, time.Now(), query, errors.New("boom"))
	assert.Contains(t, buf.String(), "GORM query error")
	buf.Reset()

	l.Trace(ctx, time.Now().Add(-time.Second), query, nil)
	assert.Contains(t, buf.String(), "GORM slow query")
	buf.Reset()

	verbose := l.LogMode(logger.Info)
	verbose.Trace(ctx, time.Now(), query, nil)
	assert.Contains(t, buf.String(), "GORM query")

	buf.Reset()
	l.LogMode(logger.Silent).Trace(ctx, time.Now(), query, errors.New("boom"))
	assert.Empty(t, buf.String())
}
