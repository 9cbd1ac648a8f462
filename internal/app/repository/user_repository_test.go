package repository

import (
	"context"
	"testing"

	"github.com/ikkim/meesho-backend/internal/app/model"
	"github.com/ikkim/meesho-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserTest(t *testing.T) UserRepository {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return NewUserRepository(testDB)
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := setupUserTest(t)
	ctx := context.Background()

	user := &model.User{
		Name:         "Test User",
		Phone:        "9876543210",
		PasswordHash: "hash",
		Address:      model.Address{City: "Jaipur"},
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jaipur", byID.Address.City)

	byPhone, err := repo.FindByPhone(ctx, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byPhone.ID)

	_, err = repo.FindByPhone(ctx, "0000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepository_DuplicatePhone(t *testing.T) {
	repo := setupUserTest(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Name: "A", Phone: "111", PasswordHash: "x"}))
	err := repo.Create(ctx, &model.User{Name: "B", Phone: "111", PasswordHash: "y"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUserRepository_UpdateAndList(t *testing.T) {
	repo := setupUserTest(t)
	ctx := context.Background()

	user := &model.User{Name: "A", Phone: "111", PasswordHash: "x"}
	require.NoError(t, repo.Create(ctx, user))

	user.Name = "Renamed"
	require.NoError(t, repo.Update(ctx, user))

	users, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Renamed", users[0].Name)
}

func TestCategoryRepository_FindAllOrdered(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	defer db.CleanupTestDB(testDB)

	repo := NewCategoryRepository(testDB)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &model.Category{Name: "Men", Order: 3}))
	require.NoError(t, repo.Create(ctx, &model.Category{Name: "Women Ethnic", Order: 1}))

	categories, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Women Ethnic", categories[0].Name)
	assert.Equal(t, "Men", categories[1].Name)
}
