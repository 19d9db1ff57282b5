package repository

import (
	"context"
	"errors"
	"strings"

	"forkful/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IngredientRepository defines the interface for ingredient data operations
type IngredientRepository interface {
	List(ctx context.Context) ([]models.Ingredient, error)
	GetByID(ctx context.Context, id uint) (*models.Ingredient, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error)
	Search(ctx context.Context, name string) ([]models.Ingredient, error)
	GetOrCreate(ctx context.Context, name, measureUnit string) (*models.Ingredient, bool, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) List(ctx context.Context) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.db.WithContext(ctx).Order("name").Find(&ingredients).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ingredients, nil
}

func (r *ingredientRepository) GetByID(ctx context.Context, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Ingredient", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []models.Ingredient
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&ingredients).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ingredients, nil
}

// Search performs a case-insensitive substring match on ingredient names.
// Results are ranked: exact matches first, then prefix matches, then any
// other substring match, alphabetically within each tier.
func (r *ingredientRepository) Search(ctx context.Context, name string) ([]models.Ingredient, error) {
	if strings.TrimSpace(name) == "" {
		return r.List(ctx)
	}

	lowered := strings.ToLower(name)
	var ingredients []models.Ingredient
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", "%"+lowered+"%").
		Order(clause.OrderBy{Expression: clause.Expr{
			SQL:                "CASE WHEN LOWER(name) = ? THEN 2 WHEN LOWER(name) LIKE ? THEN 1 ELSE 0 END DESC, name ASC",
			Vars:               []interface{}{lowered, lowered + "%"},
			WithoutParentheses: true,
		}}).
		Find(&ingredients).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ingredients, nil
}

// GetOrCreate finds an ingredient by its (name, measure unit) identity or
// creates it. The second return value reports whether a new row was created.
func (r *ingredientRepository) GetOrCreate(ctx context.Context, name, measureUnit string) (*models.Ingredient, bool, error) {
	var ingredient models.Ingredient
	err := r.db.WithContext(ctx).
		Where("name = ? AND measure_unit = ?", name, measureUnit).
		First(&ingredient).Error
	if err == nil {
		return &ingredient, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, models.NewInternalError(err)
	}

	ingredient = models.Ingredient{Name: name, MeasureUnit: measureUnit}
	if err := r.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, false, models.NewInternalError(err)
	}
	return &ingredient, true, nil
}
