package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Admin    AdminConfig
	Gemini   GeminiConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	ActivityLogPath    string
	CorsAllowedOrigins string
	JWTSecret          string
}

type DatabaseConfig struct {
	Connection string
}

// AdminConfig holds the fixed admin credential pair. There is no admin user
// row in the database; the console is guarded by this pair alone.
type AdminConfig struct {
	Username string
	Password string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			ActivityLogPath:    getEnv("ACTIVITY_LOG_PATH", "logs/activity.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Admin: AdminConfig{
			Username: getEnv("ADMIN_USERNAME", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-1.5-flash-latest"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
