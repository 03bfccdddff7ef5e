package config

import (
	"os"
	"testing"
)

func validConfig() *Config {
	return &Config{
		Bot:   BotConfig{Token: "123:abc"},
		Diary: DiaryConfig{TZOffsetHours: 3, PageSize: 5},
		Log:   LogConfig{Level: "info", Format: "text"},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidate_BadPageSize(t *testing.T) {
	cfg := validConfig()
	cfg.Diary.PageSize = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("page_size 0 should be rejected")
	}
}

func TestValidate_BadOffset(t *testing.T) {
	cfg := validConfig()
	cfg.Diary.TZOffsetHours = 99
	if err := cfg.Validate(); err == nil {
		t.Fatal("offset 99 should be rejected")
	}
}

func TestLocation(t *testing.T) {
	loc := DiaryConfig{TZOffsetHours: 3}.Location()
	if loc.String() != "UTC+3" {
		t.Fatalf("zone = %q, want UTC+3", loc)
	}
}

func TestLoad_MissingTokenFails(t *testing.T) {
	// No BOT_TOKEN in the environment and no config file: startup must fail
	// before serving anything.
	t.Setenv("BOT_TOKEN", "placeholder") // register restore
	os.Unsetenv("BOT_TOKEN")
	t.Setenv("CONFIG_PATH", "placeholder")
	os.Unsetenv("CONFIG_PATH")
	if _, err := Load(); err == nil {
		t.Fatal("Load without BOT_TOKEN should fail")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("DB_PATH", "/tmp/test-notes.db")
	t.Setenv("PAGE_SIZE", "7")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bot.Token != "123:abc" {
		t.Errorf("token = %q", cfg.Bot.Token)
	}
	if cfg.Database.Path != "/tmp/test-notes.db" {
		t.Errorf("db path = %q", cfg.Database.Path)
	}
	if cfg.Diary.PageSize != 7 {
		t.Errorf("page size = %d", cfg.Diary.PageSize)
	}
}
