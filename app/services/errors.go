package services

import (
	"fmt"
	"strings"

	"BakeryApp/app/models"
)

// ValidationError indicates malformed or missing input. Field carries the
// offending field name when known.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// InvalidStatusError indicates an unrecognized production status label
type InvalidStatusError struct {
	Label string
}

func (e *InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid production status %q", e.Label)
}

// InvalidUnitError indicates a non-positive unit conversion factor
type InvalidUnitError struct {
	Factor float64
}

func (e *InvalidUnitError) Error() string {
	return fmt.Sprintf("invalid unit conversion factor %.4f (must be > 0)", e.Factor)
}

// UnitMismatchError indicates a recipe row unit whose family differs from the
// family of the ingredient's stock unit
type UnitMismatchError struct {
	IngredientName string
	IngredientUnit models.UnitFamily
	RecipeUnit     models.UnitFamily
}

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("unit family mismatch for %s: recipe uses %s, stock is kept in %s",
		e.IngredientName, e.RecipeUnit, e.IngredientUnit)
}

// RecipeNotFoundError indicates an unknown recipe id for the requesting user
type RecipeNotFoundError struct {
	RecipeID uint
}

func (e *RecipeNotFoundError) Error() string {
	return fmt.Sprintf("recipe %d not found", e.RecipeID)
}

// InvalidReferenceError indicates a dangling foreign key in the input
type InvalidReferenceError struct {
	Entity string
	ID     uint
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("referenced %s %d does not exist", e.Entity, e.ID)
}

// DuplicateBatchError indicates a batch number already used by the same user
type DuplicateBatchError struct {
	BatchNumber string
}

func (e *DuplicateBatchError) Error() string {
	return fmt.Sprintf("batch number %q already exists", e.BatchNumber)
}

// TransactionTimeoutError indicates the production-creation transaction hit
// its deadline before committing
type TransactionTimeoutError struct {
	Operation string
}

func (e *TransactionTimeoutError) Error() string {
	return fmt.Sprintf("transaction timed out during %s", e.Operation)
}

// StockShortfall is one ingredient a consumption plan could not cover
type StockShortfall struct {
	IngredientID   uint    `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name"`
	Needed         float64 `json:"needed"`
	Available      float64 `json:"available"`
	Unit           string  `json:"unit"`
}

// InsufficientStockError carries every shortfall of a rejected plan, never
// just the first failing ingredient
type InsufficientStockError struct {
	Shortfalls []StockShortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, fmt.Sprintf("%s (needed %.2f, available %.2f %s)",
			s.IngredientName, s.Needed, s.Available, s.Unit))
	}
	return "insufficient stock: " + strings.Join(parts, "; ")
}
