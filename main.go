package main

import (
	"embed"
	"log"

	"scran-bot/config"
	"scran-bot/internal/bot"
	"scran-bot/internal/localization"
	"scran-bot/internal/scheduler"
	"scran-bot/internal/storage"
	"scran-bot/internal/suggest"
	"scran-bot/internal/voting"
)

//go:embed locales
var localeFiles embed.FS

func main() {
	log.Println("Starting Scran Suggestion Bot...")

	cfg := config.LoadConfig()

	dbStorage, err := storage.NewStorage(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer dbStorage.Close()

	localizer := localization.NewLocalizer(localeFiles)
	sessions := suggest.NewSessionStore()
	wizard := suggest.NewWizard(sessions, dbStorage)
	selector := voting.NewSelector(dbStorage, cfg.CandidatePoolSize)
	recorder := voting.NewRecorder(dbStorage)

	appScheduler, err := scheduler.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	telegramBot, err := bot.NewBot(&cfg, localizer, dbStorage, wizard, selector, recorder, appScheduler)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}
	log.Println("Bot is running...")
	telegramBot.Start()
}
