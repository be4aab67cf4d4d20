package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabasePath    string
	DatabaseURL     string
	MigrationsPath  string
	AudioCacheDir   string
	SessionDuration time.Duration

	// AuthorPasscodeHash is the bcrypt hash of the author-mode passcode.
	// AuthorPasscode is the plain fallback hashed at startup when no hash is set.
	AuthorPasscodeHash string
	AuthorPasscode     string
	JWTSecret          string

	// Google Cloud TTS: an API key, or a service-account credentials file
	// used to mint OAuth2 tokens
	GoogleTTSKey          string
	GoogleCredentialsFile string

	// SeedContent controls first-run seeding of the starter modules
	SeedContent bool
}

// Load reads configuration from the environment (and .env, if present)
// with sensible defaults
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	return &Config{
		ServerPort:            getEnv("PORT", "8080"),
		DatabaseType:          getEnv("DB_TYPE", "sqlite"),
		DatabasePath:          getEnv("DB_PATH", "./kannadabaruthe.db"),
		DatabaseURL:           getEnv("DB_URL", ""),
		MigrationsPath:        getEnv("MIGRATIONS_PATH", "./migrations"),
		AudioCacheDir:         getEnv("AUDIO_CACHE_DIR", "./audio-cache"),
		SessionDuration:       24 * time.Hour,
		AuthorPasscodeHash:    getEnv("AUTHOR_PASSCODE_HASH", ""),
		AuthorPasscode:        getEnv("AUTHOR_PASSCODE", "1104"),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		GoogleTTSKey:          getEnv("GOOGLE_TTS_KEY", ""),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),
		SeedContent:           getEnv("SEED_CONTENT", "true") == "true",
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
