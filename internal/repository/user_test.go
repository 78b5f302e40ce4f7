package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"conduit/internal/models"
	"conduit/internal/validation"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	u := &models.User{Username: "Alice", Email: "Alice@Example.com"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)

	byEmail, err := repo.GetByEmail(ctx, "ALICE@example.COM")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)
	assert.Equal(t, "alice@example.com", byEmail.Email)

	byName, err := repo.GetByUsername(ctx, "aLiCe")
	require.NoError(t, err)
	assert.Equal(t, "alice", byName.Username)

	_, err = repo.GetByID(ctx, 999)
	assert.True(t, models.IsNotFound(err))
	_, err = repo.GetByUsername(ctx, "ghost")
	assert.True(t, models.IsNotFound(err))
}

func TestUserRepository_DuplicateEmailAnyCase(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Username: "alice", Email: "a@x.com"}))
	err := repo.Create(ctx, &models.User{Username: "bob", Email: "A@X.COM"})

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeValidation, appErr.Code)
	assert.Equal(t, map[string]string{"email": validation.MsgTaken}, appErr.Fields)

	err = repo.Create(ctx, &models.User{Username: "ALICE", Email: "other@x.com"})
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, map[string]string{"username": validation.MsgTaken}, appErr.Fields)
}

func TestUserRepository_FollowIsIdempotent(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	alice := createUser(t, repo, "alice")
	bob := createUser(t, repo, "bob")

	require.NoError(t, repo.Follow(ctx, alice, bob.ID))
	require.NoError(t, repo.Follow(ctx, alice, bob.ID))
	assert.Equal(t, []uint{bob.ID}, alice.FollowingIDs)

	reloaded, err := repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	require.NoError(t, repo.LoadRelations(ctx, reloaded))
	assert.Equal(t, []uint{bob.ID}, reloaded.FollowingIDs)

	// Follows are directed.
	require.NoError(t, repo.LoadRelations(ctx, bob))
	assert.Empty(t, bob.FollowingIDs)

	require.NoError(t, repo.Unfollow(ctx, alice, bob.ID))
	require.NoError(t, repo.Unfollow(ctx, alice, bob.ID))
	require.NoError(t, repo.LoadRelations(ctx, reloaded))
	assert.Empty(t, reloaded.FollowingIDs)
}

func TestUserRepository_Update(t *testing.T) {
	t.Parallel()

	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	alice := createUser(t, repo, "alice")
	createUser(t, repo, "bob")

	alice.Bio = "hello"
	require.NoError(t, repo.Update(ctx, alice))
	got, err := repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Bio)
	assert.NotEmpty(t, got.Hash)

	got.Username = "Bob"
	err = repo.Update(ctx, got)
	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
}

func TestUserRepository_UniqueViolationPostgres(t *testing.T) {
	t.Parallel()

	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.User{Username: "alice", Email: "a@x.com"})
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, map[string]string{"email": validation.MsgTaken}, appErr.Fields)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FavoriteUsesOnConflict(t *testing.T) {
	t.Parallel()

	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "favorites" .* ON CONFLICT DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	user := &models.User{ID: 1}
	require.NoError(t, repo.Favorite(context.Background(), user, 7))
	assert.Equal(t, []uint{7}, user.FavoriteIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueConstraintError(t *testing.T) {
	t.Parallel()

	assert.False(t, isUniqueConstraintError(nil))
	assert.True(t, isUniqueConstraintError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueConstraintError(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isUniqueConstraintError(errors.New("UNIQUE constraint failed: users.email")))
	assert.False(t, isUniqueConstraintError(errors.New("connection refused")))
}
