package api

import (
	"net/http"

	"BakeryApp/app/models"
	"BakeryApp/app/services"

	"github.com/gin-gonic/gin"
)

// RecipeController manages recipe endpoints
type RecipeController struct {
	recipes *services.RecipeService
}

// NewRecipeController creates a new recipe controller
func NewRecipeController(recipes *services.RecipeService) *RecipeController {
	return &RecipeController{recipes: recipes}
}

// List returns all recipes with their ingredient lists
// GET /api/v1/recipes
func (rc *RecipeController) List(c *gin.Context) {
	recipes, err := rc.recipes.GetAllRecipes(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes, "count": len(recipes)})
}

// Get returns a single recipe
// GET /api/v1/recipes/:id
func (rc *RecipeController) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	recipe, err := rc.recipes.GetRecipe(currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// Create adds a new recipe with its ingredient rows
// POST /api/v1/recipes
func (rc *RecipeController) Create(c *gin.Context) {
	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := rc.recipes.CreateRecipe(currentUserID(c), &recipe); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recipe": recipe})
}

// Update modifies a recipe, replacing its ingredient rows
// PUT /api/v1/recipes/:id
func (rc *RecipeController) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	recipe.ID = id

	if err := rc.recipes.UpdateRecipe(currentUserID(c), &recipe); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// Delete removes a recipe
// DELETE /api/v1/recipes/:id
func (rc *RecipeController) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	if err := rc.recipes.DeleteRecipe(currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
