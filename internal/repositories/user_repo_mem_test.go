package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microshop/internal/models"
	"microshop/internal/repositories"
)

func seedUsers(t *testing.T, repo repositories.UserRepository, n int) []models.User {
	t.Helper()
	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		user := models.User{
			Name:      fmt.Sprintf("User %d", i),
			Email:     fmt.Sprintf("user%d@example.com", i),
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, repo.Create(&user))
		users = append(users, user)
	}
	return users
}

func TestMemoryUserRepository_CreateAssignsID(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()

	user := models.User{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, repo.Create(&user))
	assert.NotEmpty(t, user.ID)

	got, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestMemoryUserRepository_GetByID_NotFound(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()

	_, err := repo.GetByID("missing")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestMemoryUserRepository_GetByEmail_CaseExact(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	seedUsers(t, repo, 1)

	got, err := repo.GetByEmail("user0@example.com")
	require.NoError(t, err)
	assert.Equal(t, "User 0", got.Name)

	// Case differs, so no match.
	_, err = repo.GetByEmail("USER0@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestMemoryUserRepository_ListInsertionOrder(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	seeded := seedUsers(t, repo, 5)

	listed, err := repo.List(0, 100)
	require.NoError(t, err)
	require.Len(t, listed, 5)
	for i, user := range listed {
		assert.Equal(t, seeded[i].ID, user.ID)
	}
}

func TestMemoryUserRepository_ListPagination(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	seeded := seedUsers(t, repo, 5)

	tests := []struct {
		name        string
		skip, limit int
		wantIDs     []string
	}{
		{"window", 1, 2, []string{seeded[1].ID, seeded[2].ID}},
		{"truncated at end", 4, 10, []string{seeded[4].ID}},
		{"skip past end", 10, 5, []string{}},
		{"negative skip", -3, 2, []string{seeded[0].ID, seeded[1].ID}},
		{"negative limit", 0, -1, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listed, err := repo.List(tt.skip, tt.limit)
			require.NoError(t, err)
			ids := make([]string, 0, len(listed))
			for _, user := range listed {
				ids = append(ids, user.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestMemoryUserRepository_Update(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	seeded := seedUsers(t, repo, 1)

	updated := seeded[0]
	updated.Name = "Renamed"
	require.NoError(t, repo.Update(&updated))

	got, err := repo.GetByID(seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)

	missing := models.User{ID: "missing"}
	assert.ErrorIs(t, repo.Update(&missing), repositories.ErrNotFound)
}

func TestMemoryUserRepository_Delete(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	seeded := seedUsers(t, repo, 3)

	require.NoError(t, repo.Delete(seeded[1].ID))

	_, err := repo.GetByID(seeded[1].ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	// Remaining users keep their relative order.
	listed, err := repo.List(0, 100)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, seeded[0].ID, listed[0].ID)
	assert.Equal(t, seeded[2].ID, listed[1].ID)

	assert.ErrorIs(t, repo.Delete(seeded[1].ID), repositories.ErrNotFound)
}

func TestMemoryUserRepository_Count(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()
	seedUsers(t, repo, 4)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}
