package repository

import (
	"context"
	"testing"

	"betbook/domain"
	"betbook/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		user := testutil.CreateTestUser("alice")

		err := repo.Create(ctx, user)
		require.NoError(t, err)

		assert.NotEmpty(t, user.ID)
		assert.False(t, user.CreatedAt.IsZero())
		assert.False(t, user.UpdatedAt.IsZero())
	})

	t.Run("duplicate username", func(t *testing.T) {
		user := testutil.CreateTestUser("bob")
		require.NoError(t, repo.Create(ctx, user))

		duplicate := testutil.CreateTestUser("bob")
		err := repo.Create(ctx, duplicate)
		assert.ErrorIs(t, err, domain.ErrUsernameTaken)
	})
}

func TestUserRepository_GetByUsername(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("user not found", func(t *testing.T) {
		user, err := repo.GetByUsername(ctx, "nobody")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("user found", func(t *testing.T) {
		created := testutil.CreateTestUser("carol")
		require.NoError(t, repo.Create(ctx, created))

		user, err := repo.GetByUsername(ctx, "carol")
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, created.ID, user.ID)
		assert.Equal(t, created.Username, user.Username)
		assert.Equal(t, created.Balance, user.Balance)
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("user not found", func(t *testing.T) {
		user, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("user found", func(t *testing.T) {
		created := testutil.CreateTestUser("dave")
		require.NoError(t, repo.Create(ctx, created))

		user, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "dave", user.Username)
	})
}

func TestUserRepository_AdjustBalance(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewUserRepository(testDB.DB)
	ctx := context.Background()

	t.Run("credit and debit", func(t *testing.T) {
		user := testutil.CreateTestUser("erin")
		require.NoError(t, repo.Create(ctx, user))

		balance, err := repo.AdjustBalance(ctx, user.ID, 500)
		require.NoError(t, err)
		assert.Equal(t, int64(1500), balance)

		balance, err = repo.AdjustBalance(ctx, user.ID, -700)
		require.NoError(t, err)
		assert.Equal(t, int64(800), balance)
	})

	t.Run("overdraft rejected", func(t *testing.T) {
		user := testutil.CreateTestUser("frank")
		require.NoError(t, repo.Create(ctx, user))

		_, err := repo.AdjustBalance(ctx, user.ID, -5000)
		assert.ErrorIs(t, err, domain.ErrInsufficientBalance)

		// Balance must be unchanged after the failed debit
		stored, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1000), stored.Balance)
	})

	t.Run("user not found", func(t *testing.T) {
		_, err := repo.AdjustBalance(ctx, "00000000-0000-0000-0000-000000000000", 100)
		assert.True(t, domain.IsNotFound(err))
	})
}
