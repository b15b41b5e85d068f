package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"

	"gembreak-be/internal/entity"
	"gembreak-be/internal/repository/implementation"
	"gembreak-be/internal/repository/specification"
	"gembreak-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

// Registration is invite-gated, so a fresh deployment needs one admin code
// before anyone can sign up. This mints it.
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

	ctx := context.Background()
	codeRepo := implementation.NewInviteCodeRepository(db)

	var code string
	for {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			log.Fatal("Error: Failed to generate invite code:", err)
		}
		code = hex.EncodeToString(buf)

		existing, err := codeRepo.FindOne(ctx, specification.ByCode{Code: code})
		if err != nil {
			log.Fatal("Error: Failed to check invite code:", err)
		}
		if existing == nil {
			break
		}
	}

	invite := &entity.InviteCode{Code: code, CreatedBy: "admin"}
	if err := codeRepo.Create(ctx, invite); err != nil {
		color.Red("Failed to insert invite code: %v", err)
		os.Exit(1)
	}

	color.Green("Bootstrap invite code created:")
	color.Yellow("  %s", invite.Code)
}
