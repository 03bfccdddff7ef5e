package bot

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/avdeyev/healthdiary/internal/config"
	"github.com/avdeyev/healthdiary/internal/export"
	"github.com/avdeyev/healthdiary/internal/storage"
)

// Bot owns the wired application: store, engine and Telegram transport.
// This is the composition root: concrete implementations are created
// here and injected, no business logic.
type Bot struct {
	tg *telegram
}

// New wires the bot from configuration.
//
// The returned cleanup function closes the store's database connection and
// must be called on shutdown (typically via defer). It is always non-nil
// and safe to call.
func New(cfg *config.Config, log *slog.Logger) (*Bot, func(), error) {
	store, err := storage.New(storage.Config{
		Path:     cfg.Database.Path,
		Location: cfg.Diary.Location(),
	})
	if err != nil {
		return nil, func() {}, fmt.Errorf("opening store: %w", err)
	}
	cleanup := func() {
		if err := store.Close(); err != nil {
			log.Warn("closing store", "err", err)
		}
	}

	engine := NewEngine(store, export.PDFRenderer{}, log, cfg.Diary.Location(), cfg.Diary.PageSize)

	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("connecting to telegram: %w", err)
	}
	api.Debug = cfg.Bot.Debug
	log.Info("authorized", "bot", api.Self.UserName)

	return &Bot{tg: &telegram{
		api:     api,
		engine:  engine,
		log:     log,
		timeout: int(cfg.Bot.PollTimeout.Seconds()),
	}}, cleanup, nil
}

// Run serves updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	return b.tg.run(ctx)
}
