package services

import (
	"log"

	"BakeryApp/app/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Notifier receives events worth pushing to connected clients. Implemented by
// the websocket hub; a nil notifier disables broadcasting.
type Notifier interface {
	NotifyStockAlert(ingredient models.Ingredient)
	NotifyProductionCreated(production models.Production, movements int)
}

// StockService is the stock ledger: it owns ingredient balances and their
// movement history. Every mutation writes the movement row and the new balance
// inside the same transaction.
type StockService struct {
	db       *gorm.DB
	notifier Notifier
}

// NewStockService creates a new stock service
func NewStockService(db *gorm.DB) *StockService {
	return &StockService{db: db}
}

// SetNotifier sets the event notifier
func (s *StockService) SetNotifier(n Notifier) {
	s.notifier = n
}

// scopedIngredient loads an ingredient for update inside tx. On PostgreSQL the
// row is locked so concurrent productions cannot both pass the balance check.
func (s *StockService) scopedIngredient(tx *gorm.DB, userID, ingredientID uint) (*models.Ingredient, error) {
	query := tx.Where("user_id = ?", userID)
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var ingredient models.Ingredient
	if err := query.First(&ingredient, ingredientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &InvalidReferenceError{Entity: "ingredient", ID: ingredientID}
		}
		return nil, err
	}
	return &ingredient, nil
}

// applyDelta validates one movement against the current balance and persists
// the updated balance inside tx. Saída movements that would drive the balance
// negative fail with InsufficientStockError; the persisted balance is still
// clamped at zero as a last-resort floor against concurrent races.
func (s *StockService) applyDelta(tx *gorm.DB, userID, ingredientID uint, movementType models.MovementType, quantity float64) (float64, error) {
	if movementType != models.MovementEntrada && movementType != models.MovementSaida {
		return 0, &ValidationError{Field: "type", Message: "must be entrada or saida"}
	}
	if quantity <= 0 {
		return 0, &ValidationError{Field: "quantity", Message: "must be greater than zero"}
	}

	ingredient, err := s.scopedIngredient(tx, userID, ingredientID)
	if err != nil {
		return 0, err
	}

	delta := quantity
	if movementType == models.MovementSaida {
		delta = -quantity
	}

	newBalance := ingredient.CurrentStock + delta
	if movementType == models.MovementSaida && newBalance < 0 {
		return 0, &InsufficientStockError{Shortfalls: []StockShortfall{{
			IngredientID:   ingredient.ID,
			IngredientName: ingredient.Name,
			Needed:         quantity,
			Available:      ingredient.CurrentStock,
			Unit:           unitAbbreviation(tx, ingredient.UnitID),
		}}}
	}
	if newBalance < 0 {
		newBalance = 0
	}

	if err := tx.Model(&models.Ingredient{}).
		Where("id = ?", ingredient.ID).
		Update("current_stock", newBalance).Error; err != nil {
		return 0, err
	}
	return newBalance, nil
}

// ApplyMovement records one stock movement and the resulting balance inside
// the caller's transaction.
func (s *StockService) ApplyMovement(tx *gorm.DB, userID, ingredientID uint, movementType models.MovementType, quantity float64, reason, reference string) (*models.StockMovement, float64, error) {
	newBalance, err := s.applyDelta(tx, userID, ingredientID, movementType, quantity)
	if err != nil {
		return nil, 0, err
	}

	movement := models.StockMovement{
		UserID:       userID,
		IngredientID: ingredientID,
		Type:         movementType,
		Quantity:     quantity,
		Reason:       reason,
		Reference:    reference,
	}
	if err := tx.Create(&movement).Error; err != nil {
		return nil, 0, err
	}

	return &movement, newBalance, nil
}

// ReverseMovement applies the inverse delta of a previously applied movement
// inside the caller's transaction and returns the restored balance. The
// movement row itself is left to the caller (deleted or rewritten).
func (s *StockService) ReverseMovement(tx *gorm.DB, movement *models.StockMovement) (float64, error) {
	ingredient, err := s.scopedIngredient(tx, movement.UserID, movement.IngredientID)
	if err != nil {
		return 0, err
	}

	newBalance := ingredient.CurrentStock - movement.Delta()
	if newBalance < 0 {
		newBalance = 0
	}

	if err := tx.Model(&models.Ingredient{}).
		Where("id = ?", ingredient.ID).
		Update("current_stock", newBalance).Error; err != nil {
		return 0, err
	}
	return newBalance, nil
}

// CreateMovement records a manual stock movement (purchase, correction, waste)
func (s *StockService) CreateMovement(userID, ingredientID uint, movementType models.MovementType, quantity float64, reason, reference string) (*models.StockMovement, error) {
	var movement *models.StockMovement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		movement, _, err = s.ApplyMovement(tx, userID, ingredientID, movementType, quantity, reason, reference)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.AlertLowStock(userID, []uint{ingredientID})
	return movement, nil
}

// UpdateMovement rewrites a movement: the old delta is reversed and the new
// one applied as one atomic step. Both commit together or neither does.
func (s *StockService) UpdateMovement(userID, movementID uint, movementType models.MovementType, quantity float64, reason, reference string) (*models.StockMovement, error) {
	var updated *models.StockMovement
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.getMovement(tx, userID, movementID)
		if err != nil {
			return err
		}

		if _, err := s.ReverseMovement(tx, existing); err != nil {
			return err
		}
		if _, err := s.applyDelta(tx, userID, existing.IngredientID, movementType, quantity); err != nil {
			return err
		}

		// Keep the original row id and timestamp; only the derived fields change
		existing.Type = movementType
		existing.Quantity = quantity
		existing.Reason = reason
		existing.Reference = reference
		if err := tx.Save(existing).Error; err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.AlertLowStock(userID, []uint{updated.IngredientID})
	return updated, nil
}

// DeleteMovement removes a movement and restores the ingredient balance
func (s *StockService) DeleteMovement(userID, movementID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		movement, err := s.getMovement(tx, userID, movementID)
		if err != nil {
			return err
		}
		if _, err := s.ReverseMovement(tx, movement); err != nil {
			return err
		}
		return tx.Delete(&models.StockMovement{}, movement.ID).Error
	})
}

// GetMovements retrieves all movements for an ingredient, newest first
func (s *StockService) GetMovements(userID, ingredientID uint) ([]models.StockMovement, error) {
	var movements []models.StockMovement
	err := s.db.Preload("Ingredient").
		Where("user_id = ? AND ingredient_id = ?", userID, ingredientID).
		Order("created_at DESC").
		Find(&movements).Error
	return movements, err
}

// AlertLowStock notifies about ingredients at or below their minimum after a
// committed ledger write. Failures are logged, never propagated.
func (s *StockService) AlertLowStock(userID uint, ingredientIDs []uint) {
	if s.notifier == nil || len(ingredientIDs) == 0 {
		return
	}

	var ingredients []models.Ingredient
	if err := s.db.Preload("Unit").
		Where("user_id = ? AND id IN ? AND current_stock <= min_stock", userID, ingredientIDs).
		Find(&ingredients).Error; err != nil {
		log.Printf("Error loading low-stock ingredients for alert: %v", err)
		return
	}

	for _, ingredient := range ingredients {
		s.notifier.NotifyStockAlert(ingredient)
	}
}

// unitAbbreviation resolves a unit's short label for error messages; a lookup
// failure degrades to an empty string rather than masking the real error
func unitAbbreviation(tx *gorm.DB, unitID uint) string {
	var unit models.MeasurementUnit
	if err := tx.First(&unit, unitID).Error; err != nil {
		return ""
	}
	return unit.Abbreviation
}

func (s *StockService) getMovement(tx *gorm.DB, userID, movementID uint) (*models.StockMovement, error) {
	var movement models.StockMovement
	err := tx.Where("user_id = ?", userID).First(&movement, movementID).Error
	if err == gorm.ErrRecordNotFound {
		return nil, &InvalidReferenceError{Entity: "stock movement", ID: movementID}
	}
	if err != nil {
		return nil, err
	}
	return &movement, nil
}
