package main

import (
	"log"
	"os"

	"gembreak-be/internal/model"
	"gembreak-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting GORM migration...")

	// gen_random_uuid lives in pgcrypto
	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	models := []interface{}{
		&model.User{},
		&model.InviteCode{},
		&model.ChatSession{},
		&model.ChatMessage{},
		&model.HiddenChat{},
		&model.SystemPrompt{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		color.Red("AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	color.Green("Success: Database migration completed.")
}
