package services

import (
	"BakeryApp/app/models"

	"gorm.io/gorm"
)

// RecipeService handles recipe management and ingredient resolution
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new recipe service
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// GetAllRecipes retrieves all recipes owned by the user
func (s *RecipeService) GetAllRecipes(userID uint) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
		return db.Order("recipe_ingredients.display_order ASC")
	}).
		Preload("Ingredients.Ingredient").
		Preload("Ingredients.Unit").
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&recipes).Error
	return recipes, err
}

// GetRecipe retrieves a single recipe with its ordered ingredient list
func (s *RecipeService) GetRecipe(userID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
		return db.Order("recipe_ingredients.display_order ASC")
	}).
		Preload("Ingredients.Ingredient").
		Preload("Ingredients.Unit").
		Where("user_id = ?", userID).
		First(&recipe, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, &RecipeNotFoundError{RecipeID: id}
	}
	return &recipe, err
}

// CreateRecipe creates a recipe together with its ingredient rows
func (s *RecipeService) CreateRecipe(userID uint, recipe *models.Recipe) error {
	if recipe.Name == "" {
		return &ValidationError{Field: "name", Message: "required"}
	}
	if err := s.validateIngredientRows(userID, recipe.Ingredients); err != nil {
		return err
	}

	recipe.UserID = userID
	rows := recipe.Ingredients
	recipe.Ingredients = nil

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		return s.setRecipeIngredients(tx, recipe.ID, rows)
	})
}

// UpdateRecipe updates a recipe and replaces its ingredient rows
func (s *RecipeService) UpdateRecipe(userID uint, recipe *models.Recipe) error {
	if _, err := s.GetRecipe(userID, recipe.ID); err != nil {
		return err
	}
	if err := s.validateIngredientRows(userID, recipe.Ingredients); err != nil {
		return err
	}

	recipe.UserID = userID
	rows := recipe.Ingredients
	recipe.Ingredients = nil

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(recipe).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return s.setRecipeIngredients(tx, recipe.ID, rows)
	})
}

// DeleteRecipe soft deletes a recipe and removes its ingredient rows
func (s *RecipeService) DeleteRecipe(userID, id uint) error {
	if _, err := s.GetRecipe(userID, id); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
}

// ResolveIngredients returns the recipe's ordered ingredient rows with the
// ingredient and unit records resolved. An empty list is a valid outcome: a
// recipe without ingredients simply consumes no stock.
func (s *RecipeService) ResolveIngredients(userID, recipeID uint) ([]models.RecipeIngredient, error) {
	return s.resolveIngredients(s.db, userID, recipeID)
}

// resolveIngredients is the transaction-scoped variant used by the planner
func (s *RecipeService) resolveIngredients(db *gorm.DB, userID, recipeID uint) ([]models.RecipeIngredient, error) {
	var recipe models.Recipe
	if err := db.Where("user_id = ?", userID).First(&recipe, recipeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &RecipeNotFoundError{RecipeID: recipeID}
		}
		return nil, err
	}

	var rows []models.RecipeIngredient
	err := db.Preload("Ingredient").
		Preload("Ingredient.Unit").
		Preload("Unit").
		Where("recipe_id = ?", recipeID).
		Order("display_order ASC").
		Find(&rows).Error
	return rows, err
}

// setRecipeIngredients inserts the given rows for a recipe (replaces nothing;
// callers delete old rows first when updating)
func (s *RecipeService) setRecipeIngredients(tx *gorm.DB, recipeID uint, rows []models.RecipeIngredient) error {
	for i := range rows {
		rows[i].ID = 0
		rows[i].RecipeID = recipeID
		if err := tx.Create(&rows[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// validateIngredientRows checks quantities and ownership of referenced
// ingredients and units
func (s *RecipeService) validateIngredientRows(userID uint, rows []models.RecipeIngredient) error {
	for _, row := range rows {
		if row.Quantity <= 0 {
			return &ValidationError{Field: "quantity", Message: "must be greater than zero"}
		}
		var count int64
		if err := s.db.Model(&models.Ingredient{}).
			Where("id = ? AND user_id = ?", row.IngredientID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return &InvalidReferenceError{Entity: "ingredient", ID: row.IngredientID}
		}
		if err := s.db.Model(&models.MeasurementUnit{}).
			Where("id = ? AND user_id = ?", row.UnitID, userID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return &InvalidReferenceError{Entity: "unit", ID: row.UnitID}
		}
	}
	return nil
}
