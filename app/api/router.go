package api

import (
	"net/http"

	"BakeryApp/app/services"
	"BakeryApp/app/websocket"

	"github.com/gin-gonic/gin"
)

// Controllers bundles everything the router needs
type Controllers struct {
	Auth        *services.AuthService
	Units       *services.UnitService
	Ingredients *services.IngredientService
	Recipes     *services.RecipeService
	Products    *services.ProductService
	Stock       *services.StockService
	Productions *services.ProductionService
	Hub         *websocket.Hub
}

// NewRouter builds the gin engine with all routes registered
func NewRouter(c Controllers) *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authController := NewAuthController(c.Auth)
	unitController := NewUnitController(c.Units)
	ingredientController := NewIngredientController(c.Ingredients, c.Stock)
	recipeController := NewRecipeController(c.Recipes)
	productController := NewProductController(c.Products)
	stockController := NewStockController(c.Stock)
	productionController := NewProductionController(c.Productions)

	v1 := router.Group("/api/v1")

	v1.POST("/auth/register", authController.Register)
	v1.POST("/auth/login", authController.Login)

	authorized := v1.Group("", AuthRequired(c.Auth))
	{
		authorized.GET("/units", unitController.List)
		authorized.POST("/units", unitController.Create)
		authorized.PUT("/units/:id", unitController.Update)
		authorized.DELETE("/units/:id", unitController.Delete)

		authorized.GET("/ingredients", ingredientController.List)
		authorized.POST("/ingredients", ingredientController.Create)
		authorized.GET("/ingredients/low-stock", ingredientController.LowStock)
		authorized.GET("/ingredients/:id", ingredientController.Get)
		authorized.PUT("/ingredients/:id", ingredientController.Update)
		authorized.DELETE("/ingredients/:id", ingredientController.Delete)
		authorized.GET("/ingredients/:id/movements", ingredientController.Movements)

		authorized.GET("/recipes", recipeController.List)
		authorized.POST("/recipes", recipeController.Create)
		authorized.GET("/recipes/:id", recipeController.Get)
		authorized.PUT("/recipes/:id", recipeController.Update)
		authorized.DELETE("/recipes/:id", recipeController.Delete)

		authorized.GET("/products", productController.List)
		authorized.POST("/products", productController.Create)
		authorized.PUT("/products/:id", productController.Update)
		authorized.DELETE("/products/:id", productController.Delete)

		authorized.POST("/stock/movements", stockController.CreateMovement)
		authorized.PUT("/stock/movements/:id", stockController.UpdateMovement)
		authorized.DELETE("/stock/movements/:id", stockController.DeleteMovement)

		authorized.GET("/productions", productionController.List)
		authorized.POST("/productions", productionController.Create)
		authorized.GET("/productions/:id", productionController.Get)
		authorized.PUT("/productions/:id", productionController.Update)
		authorized.DELETE("/productions/:id", productionController.Delete)
	}

	if c.Hub != nil {
		router.GET("/ws", func(ctx *gin.Context) {
			c.Hub.HandleConnection(ctx.Writer, ctx.Request)
		})
	}

	return router
}
