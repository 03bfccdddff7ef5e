// Package config holds the application configuration, loaded from an
// optional YAML file and the environment via cleanenv.
package config

import (
	"fmt"
	"time"

	"github.com/avdeyev/healthdiary/internal/diary"
)

// Config is the root application configuration.
type Config struct {
	Bot      BotConfig      `yaml:"bot"`
	Database DatabaseConfig `yaml:"database"`
	Diary    DiaryConfig    `yaml:"diary"`
	Log      LogConfig      `yaml:"log"`
}

// BotConfig holds Telegram transport settings. A missing token is a fatal
// startup error.
type BotConfig struct {
	Token       string        `yaml:"token"        env:"BOT_TOKEN" env-required:"true"`
	PollTimeout time.Duration `yaml:"poll_timeout" env:"BOT_POLL_TIMEOUT" env-default:"30s"`
	Debug       bool          `yaml:"debug"        env:"BOT_DEBUG" env-default:"false"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	Path string `yaml:"path" env:"DB_PATH" env-default:"notes.db"`
}

// DiaryConfig holds domain settings.
type DiaryConfig struct {
	TZOffsetHours int `yaml:"tz_offset_hours" env:"TZ_OFFSET_HOURS" env-default:"3"`
	PageSize      int `yaml:"page_size"       env:"PAGE_SIZE"       env-default:"5"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// Location returns the fixed zone records are stamped with.
func (c DiaryConfig) Location() *time.Location {
	return diary.Zone(c.TZOffsetHours)
}

// Validate checks settings cleanenv tags cannot express.
func (c *Config) Validate() error {
	if c.Diary.PageSize < 1 {
		return fmt.Errorf("page_size must be positive, got %d", c.Diary.PageSize)
	}
	if c.Diary.TZOffsetHours < -12 || c.Diary.TZOffsetHours > 14 {
		return fmt.Errorf("tz_offset_hours %d is not a real offset", c.Diary.TZOffsetHours)
	}
	return nil
}
