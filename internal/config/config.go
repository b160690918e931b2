package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN           string
	ServerPort      string
	SessionSecret   string
	FrontendBaseURL string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBDSN:           os.Getenv("DB_DSN"),
		ServerPort:      os.Getenv("SERVER_PORT"),
		SessionSecret:   os.Getenv("SESSION_SECRET"),
		FrontendBaseURL: os.Getenv("FRONTEND_BASE_URL"),
	}

	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN is not set")
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is not set")
	}
	if cfg.FrontendBaseURL == "" {
		// ссылки в QR-кодах ведут на фронтенд
		cfg.FrontendBaseURL = "http://localhost:3000"
	}

	return cfg
}
