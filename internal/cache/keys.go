package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	RecipeKeyPrefix = "recipe:%d"
	UserKeyPrefix   = "user:%d"
	TagsKey         = "tags:all"
)

const (
	RecipeTTL = 30 * time.Minute
	UserTTL   = 5 * time.Minute
	TagsTTL   = 12 * time.Hour
)

func RecipeKey(recipeID uint) string {
	return fmt.Sprintf(RecipeKeyPrefix, recipeID)
}

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateRecipe(ctx context.Context, recipeID uint) {
	Invalidate(ctx, RecipeKey(recipeID))
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}
