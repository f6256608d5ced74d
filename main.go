package main

import (
	"log"

	"BakeryApp/app/api"
	"BakeryApp/app/config"
	"BakeryApp/app/database"
	"BakeryApp/app/services"
	"BakeryApp/app/websocket"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set variables directly
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	cfg := config.Load()

	if err := database.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	db := database.GetDB()

	hub := websocket.NewHub()
	go hub.Run()

	authService := services.NewAuthService(db, cfg.TokenTTL)
	unitService := services.NewUnitService(db)
	ingredientService := services.NewIngredientService(db)
	recipeService := services.NewRecipeService(db)
	productService := services.NewProductService(db)
	stockService := services.NewStockService(db)
	stockService.SetNotifier(hub)
	productionService := services.NewProductionService(db, recipeService, stockService)

	router := api.NewRouter(api.Controllers{
		Auth:        authService,
		Units:       unitService,
		Ingredients: ingredientService,
		Recipes:     recipeService,
		Products:    productService,
		Stock:       stockService,
		Productions: productionService,
		Hub:         hub,
	})

	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
