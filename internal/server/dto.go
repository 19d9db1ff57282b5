package server

import (
	"forkful/internal/models"
)

// Response DTOs decouple the wire format from the GORM models. Recipe images
// are stored as media-relative paths and exposed as /media URLs.

type UserResponse struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

type UserWithRecipesResponse struct {
	UserResponse
	Recipes      []ReducedRecipeResponse `json:"recipes"`
	RecipesCount int                     `json:"recipes_count"`
}

type TagResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

type IngredientResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	MeasureUnit string `json:"measure_unit"`
}

// IngredientAmountResponse flattens the ingredient and its per-recipe amount
// into a single object, keyed by the ingredient's own ID.
type IngredientAmountResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	MeasureUnit string `json:"measure_unit"`
	Amount      int    `json:"amount"`
}

type RecipeResponse struct {
	ID               uint                       `json:"id"`
	Tags             []TagResponse              `json:"tags"`
	Author           UserResponse               `json:"author"`
	Ingredients      []IngredientAmountResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

// ReducedRecipeResponse is the short recipe form embedded in toggle responses
// and subscription listings.
type ReducedRecipeResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

func mediaURL(path string) string {
	if path == "" {
		return ""
	}
	return "/media/" + path
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: u.IsSubscribed,
	}
}

func toUserWithRecipesResponse(u *models.User) UserWithRecipesResponse {
	recipes := make([]ReducedRecipeResponse, 0, len(u.Recipes))
	for i := range u.Recipes {
		recipes = append(recipes, toReducedRecipeResponse(&u.Recipes[i]))
	}
	return UserWithRecipesResponse{
		UserResponse: toUserResponse(u),
		Recipes:      recipes,
		RecipesCount: u.RecipesCount,
	}
}

func toTagResponse(t *models.Tag) TagResponse {
	return TagResponse{
		ID:    t.ID,
		Name:  t.Name,
		Color: t.Color,
		Slug:  t.Slug,
	}
}

func toIngredientResponse(i *models.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:          i.ID,
		Name:        i.Name,
		MeasureUnit: i.MeasureUnit,
	}
}

func toRecipeResponse(r *models.Recipe) RecipeResponse {
	tags := make([]TagResponse, 0, len(r.Tags))
	for i := range r.Tags {
		tags = append(tags, toTagResponse(&r.Tags[i]))
	}
	ingredients := make([]IngredientAmountResponse, 0, len(r.Ingredients))
	for i := range r.Ingredients {
		ia := &r.Ingredients[i]
		ingredients = append(ingredients, IngredientAmountResponse{
			ID:          ia.IngredientID,
			Name:        ia.Ingredient.Name,
			MeasureUnit: ia.Ingredient.MeasureUnit,
			Amount:      ia.Amount,
		})
	}
	return RecipeResponse{
		ID:               r.ID,
		Tags:             tags,
		Author:           toUserResponse(&r.Author),
		Ingredients:      ingredients,
		IsFavorited:      r.IsFavorited,
		IsInShoppingCart: r.IsInShoppingCart,
		Name:             r.Name,
		Image:            mediaURL(r.Image),
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
}

func toReducedRecipeResponse(r *models.Recipe) ReducedRecipeResponse {
	return ReducedRecipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       mediaURL(r.Image),
		CookingTime: r.CookingTime,
	}
}

func toRecipeResponses(recipes []models.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, toRecipeResponse(&recipes[i]))
	}
	return out
}
