package services

import (
	"testing"

	"BakeryApp/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productionInput(recipe models.Recipe, product models.Product, batch string, planned float64, status string) *ProductionInput {
	return &ProductionInput{
		RecipeID:        recipe.ID,
		ProductID:       product.ID,
		BatchNumber:     batch,
		QuantityPlanned: planned,
		Status:          status,
	}
}

func TestBuildPlanScalesLinearly(t *testing.T) {
	f := newFixture(t)
	a := f.createIngredient(t, "A", 10000, 0)
	b := f.createIngredient(t, "B", 10000, 0)
	recipe := f.createRecipe(t, "Bread",
		models.RecipeIngredient{IngredientID: a.ID, UnitID: f.gram.ID, Quantity: 100},
		models.RecipeIngredient{IngredientID: b.ID, UnitID: f.gram.ID, Quantity: 10},
	)

	plan, err := f.productions.BuildPlan(f.db, f.user.ID, recipe.ID, 5)
	require.NoError(t, err)

	require.Empty(t, plan.Insufficient)
	require.Len(t, plan.Movements, 2)
	assert.Equal(t, a.ID, plan.Movements[0].IngredientID)
	assert.Equal(t, 500.0, plan.Movements[0].Quantity)
	assert.Equal(t, b.ID, plan.Movements[1].IngredientID)
	assert.Equal(t, 50.0, plan.Movements[1].Quantity)
}

func TestBuildPlanConvertsRecipeUnits(t *testing.T) {
	f := newFixture(t)
	flour := f.createIngredient(t, "Flour", 2500, 0)
	// Recipe calls for 2 kg; flour stock is tracked in grams
	recipe := f.createRecipe(t, "Bread",
		models.RecipeIngredient{IngredientID: flour.ID, UnitID: f.kilogram.ID, Quantity: 2},
	)

	plan, err := f.productions.BuildPlan(f.db, f.user.ID, recipe.ID, 1)
	require.NoError(t, err)

	require.Empty(t, plan.Insufficient)
	require.Len(t, plan.Movements, 1)
	assert.Equal(t, 2000.0, plan.Movements[0].Quantity)
}

func TestBuildPlanRejectsUnitFamilyMismatch(t *testing.T) {
	f := newFixture(t)
	flour := f.createIngredient(t, "Flour", 1000, 0)
	recipe := f.createRecipe(t, "Broken",
		models.RecipeIngredient{IngredientID: flour.ID, UnitID: f.milliliter.ID, Quantity: 100},
	)

	_, err := f.productions.BuildPlan(f.db, f.user.ID, recipe.ID, 1)

	var mismatchErr *UnitMismatchError
	require.ErrorAs(t, err, &mismatchErr)
	assert.Equal(t, "Flour", mismatchErr.IngredientName)
}

func TestBuildPlanCollectsEveryShortfall(t *testing.T) {
	f := newFixture(t)
	a := f.createIngredient(t, "A", 10, 0)
	b := f.createIngredient(t, "B", 5, 0)
	recipe := f.createRecipe(t, "Cake",
		models.RecipeIngredient{IngredientID: a.ID, UnitID: f.gram.ID, Quantity: 100},
		models.RecipeIngredient{IngredientID: b.ID, UnitID: f.gram.ID, Quantity: 100},
	)

	plan, err := f.productions.BuildPlan(f.db, f.user.ID, recipe.ID, 1)
	require.NoError(t, err)

	require.Len(t, plan.Insufficient, 2)
	assert.Empty(t, plan.Movements)
}

func TestCreateProductionConsumesStock(t *testing.T) {
	f := newFixture(t)
	flour := f.createIngredient(t, "Flour", 1000, 0)
	recipe := f.createRecipe(t, "Sourdough",
		models.RecipeIngredient{IngredientID: flour.ID, UnitID: f.gram.ID, Quantity: 1000},
	)
	product := f.createProduct(t, "Sourdough Loaf")

	result, err := f.productions.CreateProduction(f.user.ID,
		productionInput(recipe, product, "LOTE-001", 1, "in_progress"))
	require.NoError(t, err)

	assert.Equal(t, models.ProductionInProgress, result.Production.Status)
	assert.Equal(t, "1 ingredients deducted automatically", result.Message)
	require.Len(t, result.StockMovements, 1)
	assert.Equal(t, models.MovementSaida, result.StockMovements[0].Type)
	assert.Equal(t, 1000.0, result.StockMovements[0].Quantity)
	assert.Equal(t, "Production - LOTE-001", result.StockMovements[0].Reason)
	assert.Equal(t, "LOTE-001", result.StockMovements[0].Reference)

	assert.Equal(t, 0.0, f.currentStock(t, flour.ID))
	f.assertLedgerInvariant(t, flour.ID)
}

func TestCreateProductionInsufficientStock(t *testing.T) {
	f := newFixture(t)
	flour := f.createIngredient(t, "Flour", 1000, 0)
	recipe := f.createRecipe(t, "Sourdough",
		models.RecipeIngredient{IngredientID: flour.ID, UnitID: f.gram.ID, Quantity: 1000},
	)
	product := f.createProduct(t, "Sourdough Loaf")

	_, err := f.productions.CreateProduction(f.user.ID,
		productionInput(recipe, product, "LOTE-002", 2, "in_progress"))

	var insufficientErr *InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)
	require.Len(t, insufficientErr.Shortfalls, 1)
	assert.Equal(t, "Flour", insufficientErr.Shortfalls[0].IngredientName)
	assert.Equal(t, 2000.0, insufficientErr.Shortfalls[0].Needed)
	assert.Equal(t, 1000.0, insufficientErr.Shortfalls[0].Available)
	assert.Equal(t, "g", insufficientErr.Shortfalls[0].Unit)

	// The whole transaction rolled back: no production row, balance intact
	assert.Equal(t, 1000.0, f.currentStock(t, flour.ID))
	var count int64
	require.NoError(t, f.db.Model(&models.Production{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCreateProductionAllOrNothing(t *testing.T) {
	f := newFixture(t)
	plenty := f.createIngredient(t, "Plenty", 10000, 0)
	scarce := f.createIngredient(t, "Scarce", 1, 0)
	recipe := f.createRecipe(t, "Mixed",
		models.RecipeIngredient{IngredientID: plenty.ID, UnitID: f.gram.ID, Quantity: 100},
		models.RecipeIngredient{IngredientID: scarce.ID, UnitID: f.gram.ID, Quantity: 100},
	)
	product := f.createProduct(t, "Mixed Batch")

	_, err := f.productions.CreateProduction(f.user.ID,
		productionInput(recipe, product, "LOTE-003", 1, "completed"))

	var insufficientErr *InsufficientStockError
	require.ErrorAs(t, err, &insufficientErr)

	// Nothing was consumed, not even the coverable ingredient
	assert.Equal(t, 10000.0, f.currentStock(t, plenty.ID))
	assert.Equal(t, 1.0, f.currentStock(t, scarce.ID))
}

func TestCreateProductionPlannedSkipsConsumption(t *testing.T) {
	f := newFixture(t)
	flour := f.createIngredient(t, "Flour", 1000, 0)
	recipe := f.createRecipe(t, "Sourdough",
		models.RecipeIngredient{IngredientID: flour.ID, UnitID: f.gram.ID, Quantity: 1000},
	)
	product := f.createProduct(t, "Sourdough Loaf")

	result, err := f.productions.CreateProduction(f.user.ID,
		productionInput(recipe, product, "LOTE-004", 5, "planned"))
	require.NoError(t, err)

	assert.Empty(t, result.StockMovements)
	assert.Equal(t, `no stock movements for status "planned"`, result.Message)
	assert.Equal(t, 1000.0, f.currentStock(t, flour.ID))
}

func TestCreateProductionEmptyRecipe(t *testing.T) {
	f := newFixture(t)
	recipe := f.createRecipe(t, "Water Bread")
	product := f.createProduct(t, "Water Loaf")

	result, err := f.productions.CreateProduction(f.user.ID,
		productionInput(recipe, product, "LOTE-005", 3, "completed"))
	require.NoError(t, err)

	assert.Empty(t, result.StockMovements)
	assert.Equal(t, "no stock deduction required", result.Message)
}

func TestCreateProductionDuplicateBatch(t *testing.T) {
	f := newFixture(t)
	flour := f.createIngredient(t, "Flour", 5000, 0)
	recipe := f.createRecipe(t, "Sourdough",
		models.RecipeIngredient{IngredientID: flour.ID, UnitID: f.gram.ID, Quantity: 100},
	)
	product := f.createProduct(t, "Sourdough Loaf")

	_, err := f.productions.CreateProduction(f.user.ID,
		productionInput(recipe, product, "LOTE-006", 1, "in_progress"))
	require.NoError(t, err)
	balanceAfterFirst := f.currentStock(t, flour.ID)

	_, err = f.productions.CreateProduction(f.user.ID,
		productionInput(recipe, product, "LOTE-006", 1, "in_progress"))

	var duplicateErr *DuplicateBatchError
	require.ErrorAs(t, err, &duplicateErr)
	assert.Equal(t, "LOTE-006", duplicateErr.BatchNumber)

	// Second attempt left no trace
	assert.Equal(t, balanceAfterFirst, f.currentStock(t, flour.ID))
	var count int64
	require.NoError(t, f.db.Model(&models.Production{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateProductionValidation(t *testing.T) {
	f := newFixture(t)
	recipe := f.createRecipe(t, "Sourdough")
	product := f.createProduct(t, "Sourdough Loaf")

	var validationErr *ValidationError

	_, err := f.productions.CreateProduction(f.user.ID,
		productionInput(recipe, product, "", 1, "planned"))
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "batch_number", validationErr.Field)

	_, err = f.productions.CreateProduction(f.user.ID,
		productionInput(recipe, product, "LOTE-007", 0, "planned"))
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "quantity_planned", validationErr.Field)

	negative := -1.0
	input := productionInput(recipe, product, "LOTE-007", 1, "planned")
	input.QuantityProduced = &negative
	_, err = f.productions.CreateProduction(f.user.ID, input)
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "quantity_produced", validationErr.Field)
}

func TestCreateProductionInvalidStatus(t *testing.T) {
	f := newFixture(t)
	recipe := f.createRecipe(t, "Sourdough")
	product := f.createProduct(t, "Sourdough Loaf")

	_, err := f.productions.CreateProduction(f.user.ID,
		productionInput(recipe, product, "LOTE-008", 1, "paused"))

	var statusErr *InvalidStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "paused", statusErr.Label)
}

func TestCreateProductionInvalidReferences(t *testing.T) {
	f := newFixture(t)
	recipe := f.createRecipe(t, "Sourdough")
	product := f.createProduct(t, "Sourdough Loaf")

	var referenceErr *InvalidReferenceError

	input := productionInput(recipe, product, "LOTE-009", 1, "planned")
	input.RecipeID = 9999
	_, err := f.productions.CreateProduction(f.user.ID, input)
	require.ErrorAs(t, err, &referenceErr)
	assert.Equal(t, "recipe", referenceErr.Entity)

	input = productionInput(recipe, product, "LOTE-009", 1, "planned")
	input.ProductID = 9999
	_, err = f.productions.CreateProduction(f.user.ID, input)
	require.ErrorAs(t, err, &referenceErr)
	assert.Equal(t, "product", referenceErr.Entity)
}

func TestParseProductionStatusAliases(t *testing.T) {
	cases := map[string]models.ProductionStatus{
		"planned":      models.ProductionPlanned,
		"Planejado":    models.ProductionPlanned,
		"IN_PROGRESS":  models.ProductionInProgress,
		"em andamento": models.ProductionInProgress,
		"Completed":    models.ProductionCompleted,
		"concluido":    models.ProductionCompleted,
		"canceled":     models.ProductionCancelled,
		"cancelado":    models.ProductionCancelled,
		" cancelled ":  models.ProductionCancelled,
	}
	for label, want := range cases {
		got, err := ParseProductionStatus(label)
		require.NoError(t, err, "label %q", label)
		assert.Equal(t, want, got, "label %q", label)
	}

	var statusErr *InvalidStatusError
	_, err := ParseProductionStatus("done")
	require.ErrorAs(t, err, &statusErr)
	_, err = ParseProductionStatus("")
	require.ErrorAs(t, err, &statusErr)
}

func TestUpdateProductionDoesNotConsumeStock(t *testing.T) {
	f := newFixture(t)
	flour := f.createIngredient(t, "Flour", 1000, 0)
	recipe := f.createRecipe(t, "Sourdough",
		models.RecipeIngredient{IngredientID: flour.ID, UnitID: f.gram.ID, Quantity: 1000},
	)
	product := f.createProduct(t, "Sourdough Loaf")

	result, err := f.productions.CreateProduction(f.user.ID,
		productionInput(recipe, product, "LOTE-010", 1, "planned"))
	require.NoError(t, err)

	// Moving to a consuming status after creation does not deduct stock
	input := productionInput(recipe, product, "LOTE-010", 1, "in_progress")
	updated, err := f.productions.UpdateProduction(f.user.ID, result.Production.ID, input)
	require.NoError(t, err)

	assert.Equal(t, models.ProductionInProgress, updated.Status)
	assert.Equal(t, 1000.0, f.currentStock(t, flour.ID))
}

func TestDeleteProductionKeepsMovements(t *testing.T) {
	f := newFixture(t)
	flour := f.createIngredient(t, "Flour", 1000, 0)
	recipe := f.createRecipe(t, "Sourdough",
		models.RecipeIngredient{IngredientID: flour.ID, UnitID: f.gram.ID, Quantity: 1000},
	)
	product := f.createProduct(t, "Sourdough Loaf")

	result, err := f.productions.CreateProduction(f.user.ID,
		productionInput(recipe, product, "LOTE-011", 1, "completed"))
	require.NoError(t, err)
	require.Equal(t, 0.0, f.currentStock(t, flour.ID))

	require.NoError(t, f.productions.DeleteProduction(f.user.ID, result.Production.ID))

	// Deletion does not reverse consumption
	assert.Equal(t, 0.0, f.currentStock(t, flour.ID))
	movements, err := f.stock.GetMovements(f.user.ID, flour.ID)
	require.NoError(t, err)
	assert.Len(t, movements, 2) // initial stock + production saida
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		value  string
		absent bool
	}{
		{"2026-01-15", false},
		{"2026-01-15T08:30:00", false},
		{"2026-01-15T08:30:00Z", false},
		{"", true},
		{"   ", true},
		{"not-a-date", true},
		{"15/01/2026", true},
		{"1850-01-01", true},
		{"2150-01-01", true},
	}
	for _, tc := range cases {
		got := NormalizeDate(tc.value)
		if tc.absent {
			assert.Nil(t, got, "value %q", tc.value)
		} else {
			require.NotNil(t, got, "value %q", tc.value)
			assert.Equal(t, 2026, got.Year())
		}
	}
}

func TestProductionsScopedByUser(t *testing.T) {
	f := newFixture(t)
	recipe := f.createRecipe(t, "Sourdough")
	product := f.createProduct(t, "Sourdough Loaf")

	result, err := f.productions.CreateProduction(f.user.ID,
		productionInput(recipe, product, "LOTE-012", 1, "planned"))
	require.NoError(t, err)

	other := models.User{Name: "Intruder", Email: "intruder@example.com", PasswordHash: "x"}
	require.NoError(t, f.db.Create(&other).Error)

	var referenceErr *InvalidReferenceError
	_, err = f.productions.GetProduction(other.ID, result.Production.ID)
	require.ErrorAs(t, err, &referenceErr)
	err = f.productions.DeleteProduction(other.ID, result.Production.ID)
	require.ErrorAs(t, err, &referenceErr)
}
