// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Field length limits for user attributes.
const (
	MaxEmailLength    = 254
	MaxUsernameLength = 150
	MaxNameLength     = 150
	MaxPasswordLength = 150
)

// User represents a registered account that can publish recipes, favorite
// them, keep a shopping cart, and follow other authors.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"size:150;unique;not null" json:"username"`
	Email     string         `gorm:"size:254;unique;not null" json:"email"`
	FirstName string         `gorm:"size:150" json:"first_name"`
	LastName  string         `gorm:"size:150" json:"last_name"`
	Password  string         `gorm:"not null" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Recipes []Recipe `gorm:"foreignKey:AuthorID" json:"recipes,omitempty"`

	// IsSubscribed indicates whether the current requesting user follows this
	// author (computed at query time).
	IsSubscribed bool `gorm:"->" json:"is_subscribed"`
	// RecipesCount is not persisted; computed at query time.
	RecipesCount int `gorm:"->" json:"recipes_count,omitempty"`
}
