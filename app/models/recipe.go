package models

import (
	"time"

	"gorm.io/gorm"
)

// Recipe represents a bakery recipe with its ordered list of ingredients
type Recipe struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Name      string         `gorm:"not null" json:"name"`
	Category  string         `json:"category"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
}

// RecipeIngredient is one row of a recipe: how much of an ingredient one batch
// consumes, expressed in the row's own unit (converted to the ingredient's base
// unit at planning time)
type RecipeIngredient struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	RecipeID     uint      `gorm:"not null;index" json:"recipe_id"`
	IngredientID uint      `gorm:"not null;index" json:"ingredient_id"`
	UnitID       uint      `gorm:"not null" json:"unit_id"`
	Quantity     float64   `gorm:"not null" json:"quantity"` // per batch, > 0
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Ingredient *Ingredient      `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
	Unit       *MeasurementUnit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}

// TableName specifies the table name for Recipe
func (Recipe) TableName() string {
	return "recipes"
}

// TableName specifies the table name for RecipeIngredient
func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
