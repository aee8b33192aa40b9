package main

import (
	"context"
	"log"

	"github.com/01moynul/travelschedule-golang/internal/ai"
	"github.com/01moynul/travelschedule-golang/internal/auth"
	"github.com/01moynul/travelschedule-golang/internal/config"
	"github.com/01moynul/travelschedule-golang/internal/database"
	"github.com/01moynul/travelschedule-golang/internal/handlers"
	"github.com/01moynul/travelschedule-golang/internal/itinerary"
	"github.com/01moynul/travelschedule-golang/internal/routes"
	"github.com/01moynul/travelschedule-golang/internal/store"
)

func main() {
	// 0. --- Load Configuration (.env + environment) ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("CRITICAL ERROR: %v", err)
	}

	// 1. --- Database Connection & Schema ---
	db, err := database.OpenDB(cfg.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to primary database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// --- Application Setup ---
	app := &handlers.Handlers{
		Store:     store.New(db),
		Validator: itinerary.NewValidator(cfg.Location),
		Issuer:    auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL),
		UploadDir: cfg.UploadDir,
		BaseURL:   cfg.BaseURL,
	}

	// 2. --- AI Service Initialization (optional) ---
	if cfg.GeminiAPIKey == "" {
		log.Println("WARNING: GEMINI_API_KEY is not set. Itinerary advice is disabled.")
	} else {
		aiService, err := ai.NewAIService(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Fatalf("Failed to initialize AI Service: %v", err)
		}
		defer aiService.Close()
		app.AIService = aiService
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app, cfg)

	// --- Start Server ---
	log.Printf("Starting travel schedule API server on port %s (time zone %s)...", cfg.Port, cfg.Location)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
