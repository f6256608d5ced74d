package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"BakeryApp/app/models"

	"gorm.io/gorm"
)

// createProductionTimeout bounds the production-creation transaction; hitting
// it surfaces as TransactionTimeoutError instead of hanging the request.
const createProductionTimeout = 10 * time.Second

// statusLabels maps accepted human-readable labels (including Portuguese
// aliases) to canonical statuses. Unknown labels are rejected, never defaulted.
var statusLabels = map[string]models.ProductionStatus{
	"planned":      models.ProductionPlanned,
	"planejado":    models.ProductionPlanned,
	"planejada":    models.ProductionPlanned,
	"in_progress":  models.ProductionInProgress,
	"in progress":  models.ProductionInProgress,
	"em_andamento": models.ProductionInProgress,
	"em andamento": models.ProductionInProgress,
	"completed":    models.ProductionCompleted,
	"concluido":    models.ProductionCompleted,
	"concluída":    models.ProductionCompleted,
	"concluida":    models.ProductionCompleted,
	"cancelled":    models.ProductionCancelled,
	"canceled":     models.ProductionCancelled,
	"cancelado":    models.ProductionCancelled,
	"cancelada":    models.ProductionCancelled,
}

// ParseProductionStatus maps a status label to the internal enum
func ParseProductionStatus(label string) (models.ProductionStatus, error) {
	status, ok := statusLabels[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return "", &InvalidStatusError{Label: label}
	}
	return status, nil
}

// ProductionInput is the payload for creating or updating a production run
type ProductionInput struct {
	RecipeID         uint     `json:"recipe_id"`
	ProductID        uint     `json:"product_id"`
	BatchNumber      string   `json:"batch_number"`
	QuantityPlanned  float64  `json:"quantity_planned"`
	QuantityProduced *float64 `json:"quantity_produced"`
	LossPercentage   float64  `json:"loss_percentage"`
	LossWeight       float64  `json:"loss_weight"`
	ProductionDate   string   `json:"production_date"`
	ExpirationDate   string   `json:"expiration_date"`
	Notes            string   `json:"notes"`
	Status           string   `json:"status"`
}

// PlannedMovement is one ingredient deduction a consumption plan calls for,
// expressed in the ingredient's base unit
type PlannedMovement struct {
	IngredientID uint    `json:"ingredient_id"`
	Quantity     float64 `json:"quantity"`
}

// ConsumptionPlan is the planner's verdict for one production run. A non-empty
// Insufficient list rejects the whole plan: consumption is all-or-nothing.
type ConsumptionPlan struct {
	Movements    []PlannedMovement `json:"movements"`
	Insufficient []StockShortfall  `json:"insufficient"`
}

// ProductionResult is returned from CreateProduction
type ProductionResult struct {
	Production     *models.Production     `json:"production"`
	StockMovements []models.StockMovement `json:"stock_movements"`
	Message        string                 `json:"message"`
}

// ProductionService orchestrates production lifecycle and stock consumption
type ProductionService struct {
	db      *gorm.DB
	recipes *RecipeService
	stock   *StockService
}

// NewProductionService creates a new production service
func NewProductionService(db *gorm.DB, recipes *RecipeService, stock *StockService) *ProductionService {
	return &ProductionService{db: db, recipes: recipes, stock: stock}
}

// GetAllProductions retrieves all production runs owned by the user
func (s *ProductionService) GetAllProductions(userID uint) ([]models.Production, error) {
	var productions []models.Production
	err := s.db.Preload("Recipe").Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&productions).Error
	return productions, err
}

// GetProduction retrieves a single production run
func (s *ProductionService) GetProduction(userID, id uint) (*models.Production, error) {
	var production models.Production
	err := s.db.Preload("Recipe").Preload("Product").
		Where("user_id = ?", userID).
		First(&production, id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, &InvalidReferenceError{Entity: "production", ID: id}
	}
	return &production, err
}

// BuildPlan computes the per-ingredient consumption for producing
// quantityPlanned batches of a recipe. Quantities scale linearly and are
// converted to each ingredient's base unit; every shortfall is collected, never
// just the first. The read is not locked: callers re-validate at apply time.
func (s *ProductionService) BuildPlan(tx *gorm.DB, userID, recipeID uint, quantityPlanned float64) (*ConsumptionPlan, error) {
	rows, err := s.recipes.resolveIngredients(tx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	plan := &ConsumptionPlan{}
	for _, row := range rows {
		if row.Ingredient == nil || row.Unit == nil || row.Ingredient.Unit == nil {
			return nil, &InvalidReferenceError{Entity: "recipe ingredient", ID: row.ID}
		}
		if err := CheckCompatible(row.Ingredient.Name, row.Ingredient.Unit, row.Unit); err != nil {
			return nil, err
		}

		perBatch, err := ToBaseQuantity(row.Quantity, row.Unit.ConversionFactor)
		if err != nil {
			return nil, err
		}
		needed := perBatch * quantityPlanned

		if row.Ingredient.CurrentStock < needed {
			plan.Insufficient = append(plan.Insufficient, StockShortfall{
				IngredientID:   row.IngredientID,
				IngredientName: row.Ingredient.Name,
				Needed:         needed,
				Available:      row.Ingredient.CurrentStock,
				Unit:           row.Ingredient.Unit.Abbreviation,
			})
			continue
		}

		plan.Movements = append(plan.Movements, PlannedMovement{
			IngredientID: row.IngredientID,
			Quantity:     needed,
		})
	}

	return plan, nil
}

// CreateProduction validates the input, inserts the production record and,
// when the resolved status consumes stock, applies the consumption plan. The
// whole operation runs in one transaction: any failure, including a mid-loop
// insufficient-stock discovery, rolls back every write.
func (s *ProductionService) CreateProduction(userID uint, input *ProductionInput) (*ProductionResult, error) {
	if err := validateProductionInput(input); err != nil {
		return nil, err
	}
	status, err := ParseProductionStatus(input.Status)
	if err != nil {
		return nil, err
	}

	production := &models.Production{
		UserID:           userID,
		RecipeID:         input.RecipeID,
		ProductID:        input.ProductID,
		BatchNumber:      input.BatchNumber,
		QuantityPlanned:  input.QuantityPlanned,
		QuantityProduced: input.QuantityProduced,
		LossPercentage:   input.LossPercentage,
		LossWeight:       input.LossWeight,
		Status:           status,
		ProductionDate:   NormalizeDate(input.ProductionDate),
		ExpirationDate:   NormalizeDate(input.ExpirationDate),
		Notes:            input.Notes,
	}

	ctx, cancel := context.WithTimeout(context.Background(), createProductionTimeout)
	defer cancel()

	var movements []models.StockMovement
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkReferences(tx, userID, input); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Production{}).
			Where("user_id = ? AND batch_number = ?", userID, input.BatchNumber).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &DuplicateBatchError{BatchNumber: input.BatchNumber}
		}

		if err := tx.Create(production).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return &DuplicateBatchError{BatchNumber: input.BatchNumber}
			}
			if errors.Is(err, gorm.ErrForeignKeyViolated) {
				return &InvalidReferenceError{Entity: "production reference", ID: production.ID}
			}
			return err
		}

		if !status.ConsumesStock() {
			return nil
		}

		plan, err := s.BuildPlan(tx, userID, input.RecipeID, input.QuantityPlanned)
		if err != nil {
			return err
		}
		if len(plan.Insufficient) > 0 {
			return &InsufficientStockError{Shortfalls: plan.Insufficient}
		}

		reason := fmt.Sprintf("Production - %s", input.BatchNumber)
		for _, planned := range plan.Movements {
			movement, _, err := s.stock.ApplyMovement(tx, userID,
				planned.IngredientID, models.MovementSaida, planned.Quantity,
				reason, input.BatchNumber)
			if err != nil {
				return err
			}
			movements = append(movements, *movement)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TransactionTimeoutError{Operation: "production creation"}
		}
		return nil, err
	}

	result := &ProductionResult{
		Production:     production,
		StockMovements: movements,
		Message:        consumptionMessage(status, len(movements)),
	}

	s.notifyCreated(userID, production, movements)
	return result, nil
}

// UpdateProduction re-validates and re-maps the status, then updates the
// record. Consumption is not re-run: status changes after creation neither
// consume nor release stock.
func (s *ProductionService) UpdateProduction(userID, id uint, input *ProductionInput) (*models.Production, error) {
	production, err := s.GetProduction(userID, id)
	if err != nil {
		return nil, err
	}
	if err := validateProductionInput(input); err != nil {
		return nil, err
	}
	status, err := ParseProductionStatus(input.Status)
	if err != nil {
		return nil, err
	}

	if input.BatchNumber != production.BatchNumber {
		var count int64
		if err := s.db.Model(&models.Production{}).
			Where("user_id = ? AND batch_number = ? AND id <> ?", userID, input.BatchNumber, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, &DuplicateBatchError{BatchNumber: input.BatchNumber}
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.checkReferences(tx, userID, input); err != nil {
			return err
		}

		production.RecipeID = input.RecipeID
		production.ProductID = input.ProductID
		production.BatchNumber = input.BatchNumber
		production.QuantityPlanned = input.QuantityPlanned
		production.QuantityProduced = input.QuantityProduced
		production.LossPercentage = input.LossPercentage
		production.LossWeight = input.LossWeight
		production.Status = status
		production.ProductionDate = NormalizeDate(input.ProductionDate)
		production.ExpirationDate = NormalizeDate(input.ExpirationDate)
		production.Notes = input.Notes

		return tx.Save(production).Error
	})
	if err != nil {
		return nil, err
	}
	return production, nil
}

// DeleteProduction deletes the production row. Movements it triggered are
// kept: deletion does not reverse consumption.
func (s *ProductionService) DeleteProduction(userID, id uint) error {
	if _, err := s.GetProduction(userID, id); err != nil {
		return err
	}
	return s.db.Delete(&models.Production{}, id).Error
}

// checkReferences verifies that recipe and product exist and belong to the user
func (s *ProductionService) checkReferences(tx *gorm.DB, userID uint, input *ProductionInput) error {
	var count int64
	if err := tx.Model(&models.Recipe{}).
		Where("id = ? AND user_id = ?", input.RecipeID, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &InvalidReferenceError{Entity: "recipe", ID: input.RecipeID}
	}
	if err := tx.Model(&models.Product{}).
		Where("id = ? AND user_id = ?", input.ProductID, userID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &InvalidReferenceError{Entity: "product", ID: input.ProductID}
	}
	return nil
}

func (s *ProductionService) notifyCreated(userID uint, production *models.Production, movements []models.StockMovement) {
	if s.stock.notifier != nil {
		s.stock.notifier.NotifyProductionCreated(*production, len(movements))
	}
	if len(movements) == 0 {
		return
	}
	ids := make([]uint, 0, len(movements))
	for _, m := range movements {
		ids = append(ids, m.IngredientID)
	}
	s.stock.AlertLowStock(userID, ids)
}

// consumptionMessage distinguishes an applied deduction, a consuming status
// over an ingredient-less recipe, and statuses that never consume
func consumptionMessage(status models.ProductionStatus, deducted int) string {
	switch {
	case deducted > 0:
		return fmt.Sprintf("%d ingredients deducted automatically", deducted)
	case status.ConsumesStock():
		return "no stock deduction required"
	default:
		return fmt.Sprintf("no stock movements for status %q", status)
	}
}

func validateProductionInput(input *ProductionInput) error {
	if input == nil {
		return &ValidationError{Message: "missing request body"}
	}
	if input.RecipeID == 0 {
		return &ValidationError{Field: "recipe_id", Message: "required"}
	}
	if input.ProductID == 0 {
		return &ValidationError{Field: "product_id", Message: "required"}
	}
	if strings.TrimSpace(input.BatchNumber) == "" {
		return &ValidationError{Field: "batch_number", Message: "required"}
	}
	if input.QuantityPlanned <= 0 {
		return &ValidationError{Field: "quantity_planned", Message: "must be greater than zero"}
	}
	if input.QuantityProduced != nil && *input.QuantityProduced < 0 {
		return &ValidationError{Field: "quantity_produced", Message: "must not be negative"}
	}
	if input.LossPercentage < 0 || input.LossPercentage > 100 {
		return &ValidationError{Field: "loss_percentage", Message: "must be between 0 and 100"}
	}
	if input.LossWeight < 0 {
		return &ValidationError{Field: "loss_weight", Message: "must not be negative"}
	}
	if strings.TrimSpace(input.Status) == "" {
		return &ValidationError{Field: "status", Message: "required"}
	}
	return nil
}

// dateLayouts are the ISO-like formats accepted for production dates
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NormalizeDate parses an ISO-like date string. Invalid, empty, or
// out-of-range values (year before 1900 or after 2100) normalize to absent
// rather than being rejected.
func NormalizeDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		if t.Year() < 1900 || t.Year() > 2100 {
			return nil
		}
		return &t
	}
	return nil
}
