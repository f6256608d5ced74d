package services

import (
	"BakeryApp/app/models"

	"gorm.io/gorm"
)

// UnitService handles measurement unit management and conversion
type UnitService struct {
	db *gorm.DB
}

// NewUnitService creates a new unit service
func NewUnitService(db *gorm.DB) *UnitService {
	return &UnitService{db: db}
}

// ToBaseQuantity converts a quantity to the base unit of its family using a
// linear conversion factor. Pure function, no side effects.
func ToBaseQuantity(quantity, conversionFactor float64) (float64, error) {
	if conversionFactor <= 0 {
		return 0, &InvalidUnitError{Factor: conversionFactor}
	}
	return quantity * conversionFactor, nil
}

// CheckCompatible verifies that two units belong to the same family.
// Cross-family conversion (weight to volume) is never attempted.
func CheckCompatible(ingredientName string, stockUnit, recipeUnit *models.MeasurementUnit) error {
	if stockUnit.Family != recipeUnit.Family {
		return &UnitMismatchError{
			IngredientName: ingredientName,
			IngredientUnit: stockUnit.Family,
			RecipeUnit:     recipeUnit.Family,
		}
	}
	return nil
}

// GetAllUnits retrieves all units owned by the user
func (s *UnitService) GetAllUnits(userID uint) ([]models.MeasurementUnit, error) {
	var units []models.MeasurementUnit
	err := s.db.Where("user_id = ?", userID).Order("family ASC, conversion_factor ASC").Find(&units).Error
	return units, err
}

// GetUnit retrieves a single unit by ID
func (s *UnitService) GetUnit(userID, id uint) (*models.MeasurementUnit, error) {
	var unit models.MeasurementUnit
	err := s.db.Where("user_id = ?", userID).First(&unit, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, &InvalidReferenceError{Entity: "unit", ID: id}
	}
	return &unit, err
}

// CreateUnit creates a new measurement unit
func (s *UnitService) CreateUnit(userID uint, unit *models.MeasurementUnit) error {
	if unit.Name == "" {
		return &ValidationError{Field: "name", Message: "required"}
	}
	if !models.ValidFamily(unit.Family) {
		return &ValidationError{Field: "family", Message: "must be one of weight, volume, count, length"}
	}
	if unit.ConversionFactor <= 0 {
		return &InvalidUnitError{Factor: unit.ConversionFactor}
	}
	unit.UserID = userID
	return s.db.Create(unit).Error
}

// UpdateUnit updates an existing unit. Historical movements are not
// reinterpreted; the new factor affects only future conversions.
func (s *UnitService) UpdateUnit(userID uint, unit *models.MeasurementUnit) error {
	existing, err := s.GetUnit(userID, unit.ID)
	if err != nil {
		return err
	}
	if unit.ConversionFactor <= 0 {
		return &InvalidUnitError{Factor: unit.ConversionFactor}
	}
	if unit.Family != existing.Family && !models.ValidFamily(unit.Family) {
		return &ValidationError{Field: "family", Message: "must be one of weight, volume, count, length"}
	}
	unit.UserID = userID
	return s.db.Save(unit).Error
}

// DeleteUnit deletes a unit when nothing references it
func (s *UnitService) DeleteUnit(userID, id uint) error {
	if _, err := s.GetUnit(userID, id); err != nil {
		return err
	}

	var count int64
	if err := s.db.Model(&models.Ingredient{}).Where("unit_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &ValidationError{Field: "unit", Message: "unit is referenced by ingredients"}
	}
	if err := s.db.Model(&models.RecipeIngredient{}).Where("unit_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return &ValidationError{Field: "unit", Message: "unit is referenced by recipes"}
	}

	return s.db.Delete(&models.MeasurementUnit{}, id).Error
}
