package main

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	conn := os.Getenv("DB_CONNECTION_STRING")
	if conn == "" {
		log.Fatal("DB_CONNECTION_STRING is required")
	}

	db, err := sql.Open("pgx", conn)
	if err != nil {
		log.Fatalf("Could not open database: %v", err)
	}
	defer db.Close()

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("Could not get working directory: %v", err)
	}
	migrationsDir := filepath.Join(wd, "migrations")

	log.Printf("Applying migrations from %s", migrationsDir)
	if err := goose.Up(db, migrationsDir); err != nil {
		log.Fatalf("Migrations failed: %v", err)
	}
	log.Println("Migrations applied")
}
