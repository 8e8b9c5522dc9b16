package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"nutriscan/internal/auth"
	"nutriscan/internal/db"
	"nutriscan/internal/history"
	"nutriscan/internal/meallog"
	"nutriscan/internal/product"
	"nutriscan/internal/profile"
	"nutriscan/internal/registry"
	"nutriscan/internal/router"
	"nutriscan/internal/scan"
	"nutriscan/internal/vision"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"DATABASE_URL",
		"GEMINI_API_KEY",
		"GEMINI_MODEL",
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── REPOS ─────────────────────────
	userRepo := auth.NewPostgresUserRepository(pgDB)
	productRepo := product.NewPostgresRepository(pgDB)
	mealRepo := meallog.NewPostgresRepository(pgDB)
	profileRepo := profile.NewPostgresRepository(pgDB)

	// ───────────────────────── EXTERNAL CLIENTS ─────────────────────────
	offClient := registry.NewClient(os.Getenv("OFF_BASE_URL"))
	geminiClient := vision.NewGeminiClient()

	// ───────────────────────── SERVICES ─────────────────────────
	authService := auth.NewService(userRepo)
	profileService := profile.NewService(profileRepo)
	mealService := meallog.NewService(mealRepo)

	scanService := scan.NewService(
		product.NewResolver(productRepo, offClient),
		vision.NewExtractor(geminiClient),
		offClient,
		productRepo,
		profileService,
	)

	// ───────────────────────── ROUTER ─────────────────────────
	r := router.NewRouter(router.Handlers{
		Auth:    auth.NewHandler(authService),
		Scan:    scan.NewHandler(scanService),
		History: history.NewHandler(history.NewAggregator(productRepo, mealRepo)),
		MealLog: meallog.NewHandler(mealService, productRepo, profileService),
		Profile: profile.NewHandler(profileService),
	})

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Printf("🚀 API running at http://localhost:%s", port)
	r.Run(":" + port)
}
