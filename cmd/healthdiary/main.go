// Healthdiary: a Telegram health diary bot.
//
// Users record timestamped health entries (a severity score and free
// text) in a chat, browse them by year, month and day, delete them, and
// export filtered subsets as TXT or PDF.
//
// Usage:
//
//	healthdiary serve    # Start the bot (long polling)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/avdeyev/healthdiary/internal/app"
	"github.com/avdeyev/healthdiary/internal/bot"
	"github.com/avdeyev/healthdiary/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	// Local .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := app.NewLogger(cfg.Log)

	b, cleanup, err := bot.New(cfg, log)
	if err != nil {
		return fmt.Errorf("creating bot: %w", err)
	}
	defer cleanup()

	// Graceful shutdown on interrupt.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("serving updates")
	return b.Run(ctx)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Healthdiary - Telegram health diary bot

Usage:
  healthdiary serve    Start the bot (long polling)

Configuration (environment or config.yaml via CONFIG_PATH):
  BOT_TOKEN         Telegram bot token (required)
  DB_PATH           SQLite database path (default notes.db)
  TZ_OFFSET_HOURS   Fixed zone offset for record timestamps (default 3)
  PAGE_SIZE         Day buttons per page (default 5)
  LOG_LEVEL         debug|info|warn|error (default info)
  LOG_FORMAT        text|json (default text)
`)
}
