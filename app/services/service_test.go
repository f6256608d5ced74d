package services

import (
	"testing"

	"BakeryApp/app/database"
	"BakeryApp/app/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixture is the shared test world: one user with gram/kilogram/milliliter
// units on an isolated in-memory database
type fixture struct {
	db         *gorm.DB
	user       models.User
	gram       models.MeasurementUnit
	kilogram   models.MeasurementUnit
	milliliter models.MeasurementUnit

	units       *UnitService
	ingredients *IngredientService
	recipes     *RecipeService
	products    *ProductService
	stock       *StockService
	productions *ProductionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := database.OpenMemory()
	require.NoError(t, err)

	f := &fixture{db: db}
	f.units = NewUnitService(db)
	f.ingredients = NewIngredientService(db)
	f.recipes = NewRecipeService(db)
	f.products = NewProductService(db)
	f.stock = NewStockService(db)
	f.productions = NewProductionService(db, f.recipes, f.stock)

	f.user = models.User{Name: "Baker", Email: "baker@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&f.user).Error)

	f.gram = f.createUnit(t, "Gram", "g", models.FamilyWeight, 1)
	f.kilogram = f.createUnit(t, "Kilogram", "kg", models.FamilyWeight, 1000)
	f.milliliter = f.createUnit(t, "Milliliter", "ml", models.FamilyVolume, 1)

	return f
}

func (f *fixture) createUnit(t *testing.T, name, abbr string, family models.UnitFamily, factor float64) models.MeasurementUnit {
	t.Helper()
	unit := models.MeasurementUnit{Name: name, Abbreviation: abbr, Family: family, ConversionFactor: factor}
	require.NoError(t, f.units.CreateUnit(f.user.ID, &unit))
	return unit
}

func (f *fixture) createIngredient(t *testing.T, name string, stock, minStock float64) models.Ingredient {
	t.Helper()
	ingredient := models.Ingredient{Name: name, UnitID: f.gram.ID, CurrentStock: stock, MinStock: minStock}
	require.NoError(t, f.ingredients.CreateIngredient(f.user.ID, &ingredient))
	return ingredient
}

// createRecipe builds a recipe from (ingredientID, unitID, quantity) triples
// in the given order
func (f *fixture) createRecipe(t *testing.T, name string, rows ...models.RecipeIngredient) models.Recipe {
	t.Helper()
	for i := range rows {
		rows[i].DisplayOrder = i
	}
	recipe := models.Recipe{Name: name, Category: "bread", Ingredients: rows}
	require.NoError(t, f.recipes.CreateRecipe(f.user.ID, &recipe))
	return recipe
}

func (f *fixture) createProduct(t *testing.T, name string) models.Product {
	t.Helper()
	product := models.Product{Name: name, SalePrice: 10}
	require.NoError(t, f.products.CreateProduct(f.user.ID, &product))
	return product
}

// currentStock reloads an ingredient's balance
func (f *fixture) currentStock(t *testing.T, ingredientID uint) float64 {
	t.Helper()
	var ingredient models.Ingredient
	require.NoError(t, f.db.First(&ingredient, ingredientID).Error)
	return ingredient.CurrentStock
}

// assertLedgerInvariant verifies currentStock == sum(entrada) - sum(saida)
// and that the balance never went negative
func (f *fixture) assertLedgerInvariant(t *testing.T, ingredientID uint) {
	t.Helper()

	movements, err := f.stock.GetMovements(f.user.ID, ingredientID)
	require.NoError(t, err)

	var sum float64
	for _, m := range movements {
		sum += m.Delta()
	}

	balance := f.currentStock(t, ingredientID)
	require.InDelta(t, sum, balance, 1e-9)
	require.GreaterOrEqual(t, balance, 0.0)
}
