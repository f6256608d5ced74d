package api

import (
	"net/http"

	"BakeryApp/app/services"

	"github.com/gin-gonic/gin"
)

// ProductionController manages production run endpoints
type ProductionController struct {
	productions *services.ProductionService
}

// NewProductionController creates a new production controller
func NewProductionController(productions *services.ProductionService) *ProductionController {
	return &ProductionController{productions: productions}
}

// List returns all production runs for the current user
// GET /api/v1/productions
func (pc *ProductionController) List(c *gin.Context) {
	productions, err := pc.productions.GetAllProductions(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"productions": productions, "count": len(productions)})
}

// Get returns a single production run
// GET /api/v1/productions/:id
func (pc *ProductionController) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	production, err := pc.productions.GetProduction(currentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"production": production})
}

// Create inserts a production run, deducting ingredient stock when the status
// consumes it. Insufficient stock rejects the whole request with every
// shortfall listed.
// POST /api/v1/productions
func (pc *ProductionController) Create(c *gin.Context) {
	var input services.ProductionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := pc.productions.CreateProduction(currentUserID(c), &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"production":      result.Production,
		"stock_movements": result.StockMovements,
		"message":         result.Message,
	})
}

// Update modifies a production run. Stock consumption is not re-run.
// PUT /api/v1/productions/:id
func (pc *ProductionController) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	var input services.ProductionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	production, err := pc.productions.UpdateProduction(currentUserID(c), id, &input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"production": production})
}

// Delete removes a production run. Movements it triggered are kept.
// DELETE /api/v1/productions/:id
func (pc *ProductionController) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	if err := pc.productions.DeleteProduction(currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
