package models

import "time"

// MaxRecipeNameLength is the longest accepted recipe name.
const MaxRecipeNameLength = 200

// Recipe is the central aggregate: a recipe owned by one author with a set
// of tags and per-recipe ingredient amounts. Listing order is newest first.
type Recipe struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	AuthorID    uint   `gorm:"not null;index" json:"author_id"`
	Author      User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Name        string `gorm:"size:200;not null" json:"name"`
	Text        string `gorm:"type:text;not null" json:"text"`
	Image       string `json:"image"`
	CookingTime int    `gorm:"not null" json:"cooking_time"`

	Tags        []Tag              `gorm:"many2many:recipe_tags" json:"tags"`
	Ingredients []IngredientAmount `gorm:"foreignKey:RecipeID" json:"ingredients"`

	// IsFavorited indicates whether the current requesting user favorited
	// this recipe (computed at query time).
	IsFavorited bool `gorm:"->" json:"is_favorited"`
	// IsInShoppingCart is not persisted; computed at query time.
	IsInShoppingCart bool `gorm:"->" json:"is_in_shopping_cart"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Recipe) TableName() string {
	return "recipes"
}

// IngredientAmount is a per-recipe (ingredient, quantity) fact. It is never
// shared across recipes: on recipe update the whole set is replaced.
// Each ingredient appears at most once per recipe.
type IngredientAmount struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	RecipeID     uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uint       `gorm:"not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"ingredient"`
	Amount       int        `gorm:"not null" json:"amount"`
}

// TableName specifies the table name for GORM
func (IngredientAmount) TableName() string {
	return "ingredient_amounts"
}
