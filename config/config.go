package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	TgToken    string
	DbDsn      string // optional run-history database, empty disables it
	ListenAddr string
	PublicURL  string
	UploadDir  string
}

var (
	config *Config
	once   sync.Once
)

// GetConfig loads .env once and returns the singleton configuration.
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file, using process environment")
		}

		config = &Config{
			TgToken:    os.Getenv("TG_TOKEN"),
			DbDsn:      os.Getenv("DB_DSN"),
			ListenAddr: envOr("LISTEN_ADDR", ":8005"),
			PublicURL:  envOr("PUBLIC_URL", "http://localhost:8005"),
			UploadDir:  envOr("UPLOAD_DIR", "upload"),
		}
	})
	return config
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
