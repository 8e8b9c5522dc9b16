package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	log.Println("Connected to PostgreSQL")

	if err := initSchema(db); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return db
}

// initSchema creates or updates the database schema
func initSchema(db *pgxpool.Pool) error {
	ctx := context.Background()

	// -------------------------------
	// USERS
	// -------------------------------
	usersSQL := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, usersSQL); err != nil {
		return err
	}

	// -------------------------------
	// PRODUCTS (local barcode cache + scan records)
	// -------------------------------
	productsSQL := `
		CREATE TABLE IF NOT EXISTS products (
			barcode VARCHAR(64) PRIMARY KEY,
			name VARCHAR(500) NOT NULL,
			scanned_by UUID,
			doc JSONB NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_products_scanned_by
			ON products (scanned_by, created_at DESC);
	`
	if _, err := db.Exec(ctx, productsSQL); err != nil {
		return err
	}

	// -------------------------------
	// MEAL LOGS
	// -------------------------------
	mealLogsSQL := `
		CREATE TABLE IF NOT EXISTS meal_logs (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			name VARCHAR(500) NOT NULL,
			barcode VARCHAR(64),
			quantity_grams DOUBLE PRECISION NOT NULL,
			meal_period VARCHAR(20) NOT NULL,
			calories DOUBLE PRECISION NOT NULL,
			protein DOUBLE PRECISION NOT NULL,
			carbs DOUBLE PRECISION NOT NULL,
			fat DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id)
		);
		CREATE INDEX IF NOT EXISTS idx_meal_logs_user
			ON meal_logs (user_id, created_at DESC);
	`
	if _, err := db.Exec(ctx, mealLogsSQL); err != nil {
		return err
	}

	// -------------------------------
	// USER PLANS + QUESTIONNAIRES
	// -------------------------------
	profileSQL := `
		CREATE TABLE IF NOT EXISTS user_plans (
			user_id UUID PRIMARY KEY REFERENCES users(id),
			daily_calories DOUBLE PRECISION NOT NULL DEFAULT 0,
			daily_protein DOUBLE PRECISION NOT NULL DEFAULT 0,
			daily_carbs DOUBLE PRECISION NOT NULL DEFAULT 0,
			daily_fat DOUBLE PRECISION NOT NULL DEFAULT 0,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS user_questionnaires (
			user_id UUID PRIMARY KEY REFERENCES users(id),
			allergies JSONB NOT NULL DEFAULT '[]',
			dietary_style VARCHAR(50) NOT NULL DEFAULT '',
			kosher BOOLEAN NOT NULL DEFAULT FALSE,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := db.Exec(ctx, profileSQL); err != nil {
		return err
	}

	log.Println("Schema initialized successfully")
	return nil
}
