// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"forkful/internal/cache"
	"forkful/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, limit, offset int, currentUserID uint) ([]models.User, error)
	GetProfile(ctx context.Context, id, currentUserID uint) (*models.User, error)
	GetSubscribedAuthors(ctx context.Context, userID uint, limit, offset int) ([]models.User, error)
	GetAuthorWithRecipes(ctx context.Context, authorID, currentUserID uint) (*models.User, error)
}

// userRepository implements UserRepository
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, limit, offset int, currentUserID uint) ([]models.User, error) {
	var users []models.User
	if err := applyUserDetails(r.db.WithContext(ctx), currentUserID).
		Order("id").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// GetProfile returns a single user annotated with whether the current user
// follows them.
func (r *userRepository) GetProfile(ctx context.Context, id, currentUserID uint) (*models.User, error) {
	var user models.User

	fetch := func() error {
		return applyUserDetails(r.db.WithContext(ctx), currentUserID).
			First(&user, id).Error
	}

	var err error
	if currentUserID == 0 {
		// Only the anonymous projection (is_subscribed always false) is
		// cacheable.
		err = cache.Aside(ctx, cache.UserKey(id), &user, cache.UserTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// GetSubscribedAuthors returns the authors the given user follows, annotated
// with their total recipe count and with their recipes preloaded newest first.
func (r *userRepository) GetSubscribedAuthors(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	var authors []models.User
	if err := r.db.WithContext(ctx).
		Select("users.*, "+
			"(SELECT COUNT(*) FROM recipes WHERE recipes.author_id = users.id) AS recipes_count, "+
			"TRUE AS is_subscribed").
		Joins("JOIN subscriptions ON subscriptions.author_id = users.id").
		Where("subscriptions.user_id = ?", userID).
		Order("users.id").
		Limit(limit).
		Offset(offset).
		Preload("Recipes", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipes.created_at DESC")
		}).
		Find(&authors).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return authors, nil
}

// GetAuthorWithRecipes returns a single followed author annotated the same
// way GetSubscribedAuthors annotates list rows.
func (r *userRepository) GetAuthorWithRecipes(ctx context.Context, authorID, currentUserID uint) (*models.User, error) {
	var author models.User
	if err := r.db.WithContext(ctx).
		Select("users.*, "+
			"(SELECT COUNT(*) FROM recipes WHERE recipes.author_id = users.id) AS recipes_count, "+
			"EXISTS(SELECT 1 FROM subscriptions WHERE subscriptions.author_id = users.id AND subscriptions.user_id = ?) AS is_subscribed",
			currentUserID).
		Preload("Recipes", func(db *gorm.DB) *gorm.DB {
			return db.Order("recipes.created_at DESC")
		}).
		First(&author, authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", authorID)
		}
		return nil, models.NewInternalError(err)
	}
	return &author, nil
}

// applyUserDetails annotates each user row with whether the current
// requesting user follows them. Anonymous callers always see false.
func applyUserDetails(db *gorm.DB, currentUserID uint) *gorm.DB {
	if currentUserID != 0 {
		return db.Select("users.*, "+
			"EXISTS(SELECT 1 FROM subscriptions WHERE subscriptions.author_id = users.id AND subscriptions.user_id = ?) AS is_subscribed",
			currentUserID)
	}
	return db.Select("users.*, FALSE AS is_subscribed")
}
