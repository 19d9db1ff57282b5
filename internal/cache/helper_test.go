package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type cachedRecipe struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func TestAsideMissThenHit(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetchCalls := 0
	fetch := func(dest *cachedRecipe) func() error {
		return func() error {
			fetchCalls++
			dest.ID = 1
			dest.Name = "Pancakes"
			return nil
		}
	}

	var first cachedRecipe
	err := Aside(ctx, RecipeKey(1), &first, RecipeTTL, fetch(&first))
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", first.Name)
	assert.Equal(t, 1, fetchCalls)

	// Second read is served from the cache.
	var second cachedRecipe
	err = Aside(ctx, RecipeKey(1), &second, RecipeTTL, fetch(&second))
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", second.Name)
	assert.Equal(t, 1, fetchCalls)
}

func TestAsideFetchErrorNotCached(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	var dest cachedRecipe
	wantErr := assert.AnError
	err := Aside(ctx, RecipeKey(2), &dest, RecipeTTL, func() error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.False(t, mr.Exists(RecipeKey(2)))
}

func TestAsideWithoutClient(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	fetchCalls := 0
	var dest cachedRecipe
	for i := 0; i < 2; i++ {
		err := Aside(ctx, RecipeKey(3), &dest, RecipeTTL, func() error {
			fetchCalls++
			dest.Name = "Stew"
			return nil
		})
		require.NoError(t, err)
	}
	// Every read goes to the source when there is no cache.
	assert.Equal(t, 2, fetchCalls)
	assert.Equal(t, "Stew", dest.Name)
}

func TestInvalidate(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, RecipeKey(1), cachedRecipe{ID: 1, Name: "Pancakes"}, RecipeTTL))
	require.True(t, mr.Exists(RecipeKey(1)))

	InvalidateRecipe(ctx, 1)
	assert.False(t, mr.Exists(RecipeKey(1)))

	// Invalidating an absent key is a no-op.
	InvalidateUser(ctx, 42)
}

func TestSetJSONTTL(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, UserKey(1), cachedRecipe{ID: 1}, UserTTL))
	assert.Equal(t, UserTTL, mr.TTL(UserKey(1)))

	// Expired entries are treated as misses.
	mr.FastForward(UserTTL + time.Second)
	var dest cachedRecipe
	found, err := GetJSON(ctx, UserKey(1), &dest)
	require.NoError(t, err)
	assert.False(t, found)
}
