package api

import (
	"net/http"

	"BakeryApp/app/models"
	"BakeryApp/app/services"

	"github.com/gin-gonic/gin"
)

// ProductController manages finished-product endpoints
type ProductController struct {
	products *services.ProductService
}

// NewProductController creates a new product controller
func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

// List returns all products for the current user
// GET /api/v1/products
func (pc *ProductController) List(c *gin.Context) {
	products, err := pc.products.GetAllProducts(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products, "count": len(products)})
}

// Create adds a new product
// POST /api/v1/products
func (pc *ProductController) Create(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := pc.products.CreateProduct(currentUserID(c), &product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// Update modifies an existing product
// PUT /api/v1/products/:id
func (pc *ProductController) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	product.ID = id

	if err := pc.products.UpdateProduct(currentUserID(c), &product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// Delete removes a product without production history
// DELETE /api/v1/products/:id
func (pc *ProductController) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		return
	}

	if err := pc.products.DeleteProduct(currentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
