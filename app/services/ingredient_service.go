package services

import (
	"BakeryApp/app/models"

	"gorm.io/gorm"
)

// IngredientService handles ingredient management
type IngredientService struct {
	db *gorm.DB
}

// NewIngredientService creates a new ingredient service
func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// GetAllIngredients retrieves all ingredients owned by the user
func (s *IngredientService) GetAllIngredients(userID uint) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := s.db.Preload("Unit").
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&ingredients).Error
	return ingredients, err
}

// GetIngredient retrieves a single ingredient by ID
func (s *IngredientService) GetIngredient(userID, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := s.db.Preload("Unit").Where("user_id = ?", userID).First(&ingredient, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, &InvalidReferenceError{Entity: "ingredient", ID: id}
	}
	return &ingredient, err
}

// CreateIngredient creates a new ingredient. A positive initial stock is
// recorded as an entrada movement so the ledger invariant holds from day one.
func (s *IngredientService) CreateIngredient(userID uint, ingredient *models.Ingredient) error {
	if ingredient.Name == "" {
		return &ValidationError{Field: "name", Message: "required"}
	}
	if ingredient.CurrentStock < 0 {
		return &ValidationError{Field: "current_stock", Message: "must not be negative"}
	}

	var unit models.MeasurementUnit
	if err := s.db.Where("user_id = ?", userID).First(&unit, ingredient.UnitID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return &InvalidReferenceError{Entity: "unit", ID: ingredient.UnitID}
		}
		return err
	}

	ingredient.UserID = userID
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(ingredient).Error; err != nil {
			return err
		}

		if ingredient.CurrentStock > 0 {
			movement := models.StockMovement{
				UserID:       userID,
				IngredientID: ingredient.ID,
				Type:         models.MovementEntrada,
				Quantity:     ingredient.CurrentStock,
				Reason:       "Initial stock",
			}
			if err := tx.Create(&movement).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// UpdateIngredient updates an ingredient's attributes. Changing CurrentStock
// here is an administrative correction: it bypasses movement history, so the
// ledger is the wrong tool to audit it.
func (s *IngredientService) UpdateIngredient(userID uint, ingredient *models.Ingredient) error {
	if _, err := s.GetIngredient(userID, ingredient.ID); err != nil {
		return err
	}
	if ingredient.CurrentStock < 0 {
		return &ValidationError{Field: "current_stock", Message: "must not be negative"}
	}
	ingredient.UserID = userID
	return s.db.Save(ingredient).Error
}

// DeleteIngredient deletes an ingredient when no recipe or movement references remain
func (s *IngredientService) DeleteIngredient(userID, id uint) error {
	if _, err := s.GetIngredient(userID, id); err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.RecipeIngredient{}).Where("ingredient_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &ValidationError{Field: "ingredient", Message: "ingredient is used by recipes"}
	}
	if err := s.db.Model(&models.StockMovement{}).Where("ingredient_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &ValidationError{Field: "ingredient", Message: "ingredient has movement history"}
	}

	return s.db.Delete(&models.Ingredient{}, id).Error
}

// GetLowStockIngredients gets ingredients with stock at or below minimum
func (s *IngredientService) GetLowStockIngredients(userID uint) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := s.db.Preload("Unit").
		Where("user_id = ? AND current_stock <= min_stock", userID).
		Order("current_stock ASC").
		Find(&ingredients).Error
	return ingredients, err
}
