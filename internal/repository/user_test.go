package repository

import (
	"context"
	"testing"
	"time"

	"forkful/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserGetByEmailMiss(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	user, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserGetByEmailHit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	created := createTestUser(t, db, "alice")
	user, err := repo.GetByEmail(context.Background(), created.Email)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, created.ID, user.ID)
}

func TestUserGetProfileSubscribedAnnotation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	follower := createTestUser(t, db, "follower")
	author := createTestUser(t, db, "author")
	require.NoError(t, db.Create(&models.Subscription{UserID: follower.ID, AuthorID: author.ID}).Error)

	profile, err := repo.GetProfile(ctx, author.ID, follower.ID)
	require.NoError(t, err)
	assert.True(t, profile.IsSubscribed)

	// Anonymous callers always see false.
	profile, err = repo.GetProfile(ctx, author.ID, 0)
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)

	// So does the author viewing the follower.
	profile, err = repo.GetProfile(ctx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)
}

func TestUserGetProfileNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetProfile(context.Background(), 999, 0)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestGetSubscribedAuthors(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	follower := createTestUser(t, db, "follower")
	author := createTestUser(t, db, "author")
	stranger := createTestUser(t, db, "stranger")
	tag := createTestTag(t, db, "Dinner", "#8775D2", "dinner")
	flour := createTestIngredient(t, db, "flour", "g")

	older := createTestRecipe(t, db, author.ID, "Older", []models.Tag{*tag},
		[]models.IngredientAmount{{IngredientID: flour.ID, Amount: 100}})
	db.Model(older).Update("created_at", time.Now().Add(-time.Hour))
	newer := createTestRecipe(t, db, author.ID, "Newer", []models.Tag{*tag},
		[]models.IngredientAmount{{IngredientID: flour.ID, Amount: 100}})
	createTestRecipe(t, db, stranger.ID, "Unrelated", []models.Tag{*tag},
		[]models.IngredientAmount{{IngredientID: flour.ID, Amount: 100}})

	require.NoError(t, db.Create(&models.Subscription{UserID: follower.ID, AuthorID: author.ID}).Error)

	authors, err := repo.GetSubscribedAuthors(ctx, follower.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, authors, 1)
	assert.Equal(t, author.ID, authors[0].ID)
	assert.True(t, authors[0].IsSubscribed)
	assert.Equal(t, 2, authors[0].RecipesCount)
	require.Len(t, authors[0].Recipes, 2)
	assert.Equal(t, newer.ID, authors[0].Recipes[0].ID)
	assert.Equal(t, older.ID, authors[0].Recipes[1].ID)
}

func TestGetAuthorWithRecipes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	follower := createTestUser(t, db, "follower")
	author := createTestUser(t, db, "author")
	tag := createTestTag(t, db, "Dinner", "#8775D2", "dinner")
	flour := createTestIngredient(t, db, "flour", "g")
	createTestRecipe(t, db, author.ID, "Stew", []models.Tag{*tag},
		[]models.IngredientAmount{{IngredientID: flour.ID, Amount: 100}})

	require.NoError(t, db.Create(&models.Subscription{UserID: follower.ID, AuthorID: author.ID}).Error)

	fetched, err := repo.GetAuthorWithRecipes(ctx, author.ID, follower.ID)
	require.NoError(t, err)
	assert.True(t, fetched.IsSubscribed)
	assert.Equal(t, 1, fetched.RecipesCount)
	require.Len(t, fetched.Recipes, 1)
	assert.Equal(t, "Stew", fetched.Recipes[0].Name)
}

func TestUserListAnnotations(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	follower := createTestUser(t, db, "follower")
	author := createTestUser(t, db, "author")
	createTestUser(t, db, "stranger")
	require.NoError(t, db.Create(&models.Subscription{UserID: follower.ID, AuthorID: author.ID}).Error)

	users, err := repo.List(ctx, 10, 0, follower.ID)
	require.NoError(t, err)
	require.Len(t, users, 3)

	byUsername := make(map[string]models.User, len(users))
	for _, u := range users {
		byUsername[u.Username] = u
	}
	assert.True(t, byUsername["author"].IsSubscribed)
	assert.False(t, byUsername["stranger"].IsSubscribed)
	assert.False(t, byUsername["follower"].IsSubscribed)
}
