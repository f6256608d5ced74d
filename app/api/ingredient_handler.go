package api

import (
	"net/http"

	"BakeryApp/app/models"
	"BakeryApp/app/services"

	"github.com/gin-gonic/gin"
)

// IngredientController manages ingredient endpoints
type IngredientController struct {
	ingredients *services.IngredientService
	stock       *services.StockService
}

// NewIngredientController creates a new ingredient controller
func NewIngredientController(ingredients *services.IngredientService, stock *services.StockService) *IngredientController {
	return &IngredientController{ingredients: ingredients, stock: stock}
}

// List returns all ingredients for the current user
// GET /api/v1/ingredients
func (ic *IngredientController) List(c *gin.Context) {
	ingredients, err := ic.ingredients.GetAllIngredients(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients, "count": len(ingredients)})
}

// Get returns a single ingredient
// GET /api/v1/ingredients/:id
func (ic *IngredientController) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	ingredient, err := ic.ingredients.GetIngredient(currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredient": ingredient})
}

// Create adds a new ingredient
// POST /api/v1/ingredients
func (ic *IngredientController) Create(c *gin.Context) {
	var ingredient models.Ingredient
	if err := c.ShouldBindJSON(&ingredient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := ic.ingredients.CreateIngredient(currentUserID(c), &ingredient); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ingredient": ingredient})
}

// Update modifies an existing ingredient (administrative edit, bypasses the ledger)
// PUT /api/v1/ingredients/:id
func (ic *IngredientController) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	var ingredient models.Ingredient
	if err := c.ShouldBindJSON(&ingredient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	ingredient.ID = id

	if err := ic.ingredients.UpdateIngredient(currentUserID(c), &ingredient); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredient": ingredient})
}

// Delete removes an ingredient without recipe or movement references
// DELETE /api/v1/ingredients/:id
func (ic *IngredientController) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	if err := ic.ingredients.DeleteIngredient(currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// LowStock returns ingredients at or below their minimum
// GET /api/v1/ingredients/low-stock
func (ic *IngredientController) LowStock(c *gin.Context) {
	ingredients, err := ic.ingredients.GetLowStockIngredients(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients, "count": len(ingredients)})
}

// Movements returns the movement history for an ingredient, newest first
// GET /api/v1/ingredients/:id/movements
func (ic *IngredientController) Movements(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	movements, err := ic.stock.GetMovements(currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"movements": movements, "count": len(movements)})
}
