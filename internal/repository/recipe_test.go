package repository

import (
	"context"
	"testing"
	"time"

	"forkful/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestRecipe(t *testing.T, db *gorm.DB, authorID uint, name string, tags []models.Tag, amounts []models.IngredientAmount) *models.Recipe {
	t.Helper()
	repo := NewRecipeRepository(db)
	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        name,
		Text:        "Instructions for " + name,
		Image:       "images/" + name + ".jpg",
		CookingTime: 30,
	}
	if err := repo.Create(context.Background(), recipe, tags, amounts); err != nil {
		t.Fatalf("Failed to create recipe %s: %v", name, err)
	}
	return recipe
}

func TestRecipeCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	breakfast := createTestTag(t, db, "Breakfast", "#E26C2D", "breakfast")
	flour := createTestIngredient(t, db, "flour", "g")
	sugar := createTestIngredient(t, db, "sugar", "g")

	recipe := createTestRecipe(t, db, author.ID, "Pancakes",
		[]models.Tag{*breakfast},
		[]models.IngredientAmount{
			{IngredientID: flour.ID, Amount: 200},
			{IngredientID: sugar.ID, Amount: 50},
		})

	fetched, err := repo.GetByID(ctx, recipe.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", fetched.Name)
	assert.Equal(t, author.ID, fetched.Author.ID)
	require.Len(t, fetched.Tags, 1)
	assert.Equal(t, "breakfast", fetched.Tags[0].Slug)
	require.Len(t, fetched.Ingredients, 2)
	assert.Equal(t, "flour", fetched.Ingredients[0].Ingredient.Name)
	assert.False(t, fetched.IsFavorited)
	assert.False(t, fetched.IsInShoppingCart)
}

func TestRecipeListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	tag := createTestTag(t, db, "Dinner", "#8775D2", "dinner")
	flour := createTestIngredient(t, db, "flour", "g")
	amounts := []models.IngredientAmount{{IngredientID: flour.ID, Amount: 100}}

	older := createTestRecipe(t, db, author.ID, "Older", []models.Tag{*tag}, amounts)
	db.Model(older).Update("created_at", time.Now().Add(-time.Hour))
	newer := createTestRecipe(t, db, author.ID, "Newer", []models.Tag{*tag},
		[]models.IngredientAmount{{IngredientID: flour.ID, Amount: 100}})

	recipes, err := repo.List(ctx, RecipeFilter{}, 10, 0, 0)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, newer.ID, recipes[0].ID)
	assert.Equal(t, older.ID, recipes[1].ID)
}

func TestRecipeListTagFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	breakfast := createTestTag(t, db, "Breakfast", "#E26C2D", "breakfast")
	dinner := createTestTag(t, db, "Dinner", "#8775D2", "dinner")
	dessert := createTestTag(t, db, "Dessert", "#F9A62B", "dessert")
	flour := createTestIngredient(t, db, "flour", "g")

	pancakes := createTestRecipe(t, db, author.ID, "Pancakes", []models.Tag{*breakfast},
		[]models.IngredientAmount{{IngredientID: flour.ID, Amount: 100}})
	stew := createTestRecipe(t, db, author.ID, "Stew", []models.Tag{*dinner},
		[]models.IngredientAmount{{IngredientID: flour.ID, Amount: 100}})
	createTestRecipe(t, db, author.ID, "Cake", []models.Tag{*dessert},
		[]models.IngredientAmount{{IngredientID: flour.ID, Amount: 100}})

	// Multiple tag slugs are OR semantics.
	recipes, err := repo.List(ctx, RecipeFilter{TagSlugs: []string{"breakfast", "dinner"}}, 10, 0, 0)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	ids := []uint{recipes[0].ID, recipes[1].ID}
	assert.Contains(t, ids, pancakes.ID)
	assert.Contains(t, ids, stew.ID)

	// Unknown slug matches nothing.
	recipes, err = repo.List(ctx, RecipeFilter{TagSlugs: []string{"nope"}}, 10, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestRecipeListOwnershipFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	viewer := createTestUser(t, db, "viewer")
	tag := createTestTag(t, db, "Dinner", "#8775D2", "dinner")
	flour := createTestIngredient(t, db, "flour", "g")

	liked := createTestRecipe(t, db, author.ID, "Liked", []models.Tag{*tag},
		[]models.IngredientAmount{{IngredientID: flour.ID, Amount: 100}})
	createTestRecipe(t, db, author.ID, "Other", []models.Tag{*tag},
		[]models.IngredientAmount{{IngredientID: flour.ID, Amount: 100}})

	require.NoError(t, db.Create(&models.Favorite{UserID: viewer.ID, RecipeID: liked.ID}).Error)

	// Favorited filter scoped to the viewer.
	recipes, err := repo.List(ctx, RecipeFilter{OnlyFavorited: true}, 10, 0, viewer.ID)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, liked.ID, recipes[0].ID)
	assert.True(t, recipes[0].IsFavorited)

	// The same filter is empty for anonymous callers, not an error.
	recipes, err = repo.List(ctx, RecipeFilter{OnlyFavorited: true}, 10, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, recipes)

	// And empty for a user who favorited nothing.
	recipes, err = repo.List(ctx, RecipeFilter{OnlyFavorited: true}, 10, 0, author.ID)
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestRecipeListAuthorFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	tag := createTestTag(t, db, "Dinner", "#8775D2", "dinner")
	flour := createTestIngredient(t, db, "flour", "g")

	createTestRecipe(t, db, alice.ID, "Alices", []models.Tag{*tag},
		[]models.IngredientAmount{{IngredientID: flour.ID, Amount: 100}})
	bobs := createTestRecipe(t, db, bob.ID, "Bobs", []models.Tag{*tag},
		[]models.IngredientAmount{{IngredientID: flour.ID, Amount: 100}})

	recipes, err := repo.List(ctx, RecipeFilter{AuthorID: bob.ID}, 10, 0, 0)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, bobs.ID, recipes[0].ID)
}

func TestRecipeUpdateReplacesIngredientsAndTags(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	breakfast := createTestTag(t, db, "Breakfast", "#E26C2D", "breakfast")
	dinner := createTestTag(t, db, "Dinner", "#8775D2", "dinner")
	flour := createTestIngredient(t, db, "flour", "g")
	sugar := createTestIngredient(t, db, "sugar", "g")

	recipe := createTestRecipe(t, db, author.ID, "Pancakes", []models.Tag{*breakfast},
		[]models.IngredientAmount{{IngredientID: flour.ID, Amount: 200}})

	recipe.Name = "Crepes"
	recipe.CookingTime = 15
	err := repo.Update(ctx, recipe,
		[]models.Tag{*dinner},
		[]models.IngredientAmount{{IngredientID: sugar.ID, Amount: 50}})
	require.NoError(t, err)

	fetched, err := repo.GetByID(ctx, recipe.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, "Crepes", fetched.Name)
	assert.Equal(t, 15, fetched.CookingTime)
	require.Len(t, fetched.Tags, 1)
	assert.Equal(t, "dinner", fetched.Tags[0].Slug)
	require.Len(t, fetched.Ingredients, 1)
	assert.Equal(t, sugar.ID, fetched.Ingredients[0].IngredientID)
	assert.Equal(t, 50, fetched.Ingredients[0].Amount)
}

func TestRecipeDeleteCleansRelations(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "author")
	viewer := createTestUser(t, db, "viewer")
	tag := createTestTag(t, db, "Dinner", "#8775D2", "dinner")
	flour := createTestIngredient(t, db, "flour", "g")

	recipe := createTestRecipe(t, db, author.ID, "Stew", []models.Tag{*tag},
		[]models.IngredientAmount{{IngredientID: flour.ID, Amount: 100}})
	require.NoError(t, db.Create(&models.Favorite{UserID: viewer.ID, RecipeID: recipe.ID}).Error)
	require.NoError(t, db.Create(&models.CartItem{UserID: viewer.ID, RecipeID: recipe.ID}).Error)

	require.NoError(t, repo.Delete(ctx, recipe.ID))

	_, err := repo.GetByID(ctx, recipe.ID, 0)
	assert.Error(t, err)

	var count int64
	db.Model(&models.Favorite{}).Where("recipe_id = ?", recipe.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.CartItem{}).Where("recipe_id = ?", recipe.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.IngredientAmount{}).Where("recipe_id = ?", recipe.ID).Count(&count)
	assert.Zero(t, count)
}
