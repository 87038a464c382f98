package users

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleUser(email string) *models.User {
	return &models.User{
		ID:           "id-" + email,
		Name:         "Alice",
		Email:        email,
		PasswordHash: "$2a$04$hash",
		Role:         models.RoleUser,
	}
}

// runRepositoryContract checks the behaviour every backend must share.
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) Repository) {
	ctx := context.Background()

	t.Run("absent email is empty result", func(t *testing.T) {
		repo := newRepo(t)
		u, found, err := repo.FindByEmail(ctx, "ghost@x.com")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, u)
	})

	t.Run("save then find", func(t *testing.T) {
		repo := newRepo(t)
		want := sampleUser("a@x.com")
		require.NoError(t, repo.Save(ctx, want))

		got, found, err := repo.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, want, got)
	})

	t.Run("duplicate email rejected and original kept", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Save(ctx, sampleUser("a@x.com")))

		other := sampleUser("a@x.com")
		other.ID = "other-id"
		other.Role = models.RoleAdmin
		assert.ErrorIs(t, repo.Save(ctx, other), common.ErrEmailAlreadyInUse)

		got, found, err := repo.FindByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "id-a@x.com", got.ID)
		assert.Equal(t, models.RoleUser, got.Role)
	})

	t.Run("email is case-sensitive", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Save(ctx, sampleUser("a@x.com")))
		require.NoError(t, repo.Save(ctx, sampleUser("A@x.com")))

		_, found, err := repo.FindByEmail(ctx, "A@X.COM")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("concurrent saves of one email have one winner", func(t *testing.T) {
		repo := newRepo(t)

		const n = 16
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
			conflicts int
		)
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := repo.Save(ctx, sampleUser("race@x.com"))
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					succeeded++
				case assert.ErrorIs(t, err, common.ErrEmailAlreadyInUse):
					conflicts++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, succeeded)
		assert.Equal(t, n-1, conflicts)
	})

	t.Run("store exists by email", func(t *testing.T) {
		store := NewStore(newRepo(t))

		ok, err := store.ExistsByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, store.Save(ctx, sampleUser("a@x.com")))

		ok, err = store.ExistsByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
