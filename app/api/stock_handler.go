package api

import (
	"net/http"

	"BakeryApp/app/models"
	"BakeryApp/app/services"

	"github.com/gin-gonic/gin"
)

// StockController manages manual stock movement endpoints
type StockController struct {
	stock *services.StockService
}

// NewStockController creates a new stock controller
func NewStockController(stock *services.StockService) *StockController {
	return &StockController{stock: stock}
}

type movementRequest struct {
	IngredientID uint    `json:"ingredient_id"`
	Type         string  `json:"type"`
	Quantity     float64 `json:"quantity"`
	Reason       string  `json:"reason"`
	Reference    string  `json:"reference"`
}

// CreateMovement records a manual entrada or saída
// POST /api/v1/stock/movements
func (sc *StockController) CreateMovement(c *gin.Context) {
	var request movementRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	movement, err := sc.stock.CreateMovement(currentUserID(c),
		request.IngredientID, models.MovementType(request.Type),
		request.Quantity, request.Reason, request.Reference)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"movement": movement})
}

// UpdateMovement rewrites a movement, re-deriving the ledger delta
// PUT /api/v1/stock/movements/:id
func (sc *StockController) UpdateMovement(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	var request movementRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	movement, err := sc.stock.UpdateMovement(currentUserID(c), id,
		models.MovementType(request.Type), request.Quantity,
		request.Reason, request.Reference)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"movement": movement})
}

// DeleteMovement removes a movement and restores the ingredient balance
// DELETE /api/v1/stock/movements/:id
func (sc *StockController) DeleteMovement(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	if err := sc.stock.DeleteMovement(currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
