package bot

import (
	"log"
	"time"

	"scran-bot/config"
	"scran-bot/internal/localization"
	"scran-bot/internal/scheduler"
	"scran-bot/internal/storage"
	"scran-bot/internal/suggest"
	"scran-bot/internal/voting"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type TelegramBot struct {
	api       *tgbotapi.BotAPI
	cfg       *config.Config
	localizer *localization.Localizer
	storage   *storage.Storage
	wizard    *suggest.Wizard
	selector  *voting.Selector
	recorder  *voting.Recorder
	scheduler *scheduler.Scheduler
}

func NewBot(
	cfg *config.Config,
	localizer *localization.Localizer,
	storage *storage.Storage,
	wizard *suggest.Wizard,
	selector *voting.Selector,
	recorder *voting.Recorder,
	scheduler *scheduler.Scheduler,
) (*TelegramBot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, err
	}
	return &TelegramBot{
		api:       api,
		cfg:       cfg,
		localizer: localizer,
		storage:   storage,
		wizard:    wizard,
		selector:  selector,
		recorder:  recorder,
		scheduler: scheduler,
	}, nil
}

func (b *TelegramBot) Start() {
	b.api.Debug = false
	log.Printf("Authorized on account %s", b.api.Self.UserName)
	b.scheduleSessionEviction()
	b.scheduler.Start()
	b.listenForUpdates()
}

func (b *TelegramBot) scheduleSessionEviction() {
	ttl := time.Duration(b.cfg.SessionTTLHours) * time.Hour
	log.Printf("Scheduling wizard session eviction. TTL: %d hours", b.cfg.SessionTTLHours)
	b.scheduler.AddJob(time.Hour, func() {
		if evicted := b.wizard.EvictIdle(ttl); evicted > 0 {
			log.Printf("Evicted %d idle wizard sessions", evicted)
		}
	})
}

func (b *TelegramBot) listenForUpdates() {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	for update := range updates {
		if update.CallbackQuery != nil {
			b.handleCallbackQuery(update.CallbackQuery)
			continue
		}
		if update.Message == nil || update.Message.From == nil {
			continue
		}
		if update.Message.IsCommand() {
			b.handleCommand(update.Message)
			continue
		}
		b.handleChatMessage(update.Message)
	}
}
