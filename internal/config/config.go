package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config keeps runtime settings for the bot.
type Config struct {
	BotToken      string
	DatabaseURL   string
	Port          int
	ChecklistTime string
}

// Load reads configuration from environment variables with sane defaults.
// A missing BOT_TOKEN is the only fatal condition.
func Load() (Config, error) {
	cfg := Config{
		BotToken:      strings.TrimSpace(os.Getenv("BOT_TOKEN")),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		Port:          parsePort(strings.TrimSpace(os.Getenv("PORT"))),
		ChecklistTime: strings.TrimSpace(os.Getenv("CHECKLIST_TIME")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "daily_tasks.db"
	}

	if cfg.ChecklistTime == "" {
		cfg.ChecklistTime = "08:00"
	}

	if cfg.BotToken == "" {
		return cfg, fmt.Errorf("BOT_TOKEN is required")
	}

	return cfg, nil
}

func parsePort(raw string) int {
	if raw == "" {
		return 10000
	}
	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 || port > 65535 {
		return 10000
	}
	return port
}
