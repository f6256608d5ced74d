package api

import (
	"net/http"
	"strconv"

	"BakeryApp/app/models"
	"BakeryApp/app/services"

	"github.com/gin-gonic/gin"
)

// UnitController manages measurement unit endpoints
type UnitController struct {
	units *services.UnitService
}

// NewUnitController creates a new unit controller
func NewUnitController(units *services.UnitService) *UnitController {
	return &UnitController{units: units}
}

// List returns all units for the current user
// GET /api/v1/units
func (uc *UnitController) List(c *gin.Context) {
	units, err := uc.units.GetAllUnits(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"units": units, "count": len(units)})
}

// Create adds a new measurement unit
// POST /api/v1/units
func (uc *UnitController) Create(c *gin.Context) {
	var unit models.MeasurementUnit
	if err := c.ShouldBindJSON(&unit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := uc.units.CreateUnit(currentUserID(c), &unit); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"unit": unit})
}

// Update modifies an existing unit
// PUT /api/v1/units/:id
func (uc *UnitController) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	var unit models.MeasurementUnit
	if err := c.ShouldBindJSON(&unit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	unit.ID = id

	if err := uc.units.UpdateUnit(currentUserID(c), &unit); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unit": unit})
}

// Delete removes a unit
// DELETE /api/v1/units/:id
func (uc *UnitController) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	if err := uc.units.DeleteUnit(currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// pathID parses the :id path parameter; on failure it writes the 400 itself
func pathID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, err
	}
	return uint(id), nil
}
