package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	TelegramBotToken  string `envconfig:"TELEGRAM_BOT_TOKEN"  required:"true"`
	SuperAdminID      int64  `envconfig:"SUPER_ADMIN_ID"      required:"true"`
	DatabasePath      string `envconfig:"DATABASE_PATH"       default:"scranbot.db"`
	DefaultLanguage   string `envconfig:"DEFAULT_LANGUAGE"    default:"ru"`
	SessionTTLHours   int    `envconfig:"SESSION_TTL_HOURS"   default:"24"`
	CandidatePoolSize int    `envconfig:"CANDIDATE_POOL_SIZE" default:"50"`
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, reading from environment variables")
	}

	var cfg Config
	err = envconfig.Process("", &cfg)
	if err != nil {
		log.Fatalf("Failed to process configuration: %v", err)
	}

	return cfg
}
