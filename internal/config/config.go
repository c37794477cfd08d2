package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variable names
const (
	KeyBotToken          = "TELEGRAM_BOT_TOKEN"
	KeyDownloadDir       = "DOWNLOAD_DESTINATION_DIR"
	KeyDeleteAfterUpload = "DELETE_DOWNLOADED_FILES_AFTER_UPLOAD"
	KeyChannelID         = "TELEGRAM_CHANNEL_ID"
	KeyDownloadTimeout   = "EXTERNAL_TOOL_TIMEOUT_SECONDS"
	KeyProbeTimeout      = "VIDEO_PARSE_TIMEOUT_SECONDS"
	KeyYTDLPPath         = "YTDLP_PATH"
)

// Default values
const (
	DefaultDeleteAfterUpload      = true
	DefaultDownloadTimeoutSeconds = 300
	DefaultProbeTimeoutSeconds    = 15
	DefaultYTDLPPath              = "yt-dlp"
)

// Config is the startup configuration. The core treats all of it as opaque
// input; nothing here is reloaded at runtime.
type Config struct {
	BotToken          string
	DownloadDir       string
	DeleteAfterUpload bool
	ChannelID         string        // numeric id or @username, empty disables the mirror
	DownloadTimeout   time.Duration // 0 disables the per-download deadline
	ProbeTimeout      time.Duration
	YTDLPPath         string
}

// Load reads configuration from the environment, with an optional .env file
// merged in first
func Load() (*Config, error) {
	// A missing .env file is fine; the environment alone may be complete.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault(KeyDeleteAfterUpload, DefaultDeleteAfterUpload)
	v.SetDefault(KeyDownloadTimeout, DefaultDownloadTimeoutSeconds)
	v.SetDefault(KeyProbeTimeout, DefaultProbeTimeoutSeconds)
	v.SetDefault(KeyYTDLPPath, DefaultYTDLPPath)

	cfg := &Config{
		BotToken:          v.GetString(KeyBotToken),
		DownloadDir:       v.GetString(KeyDownloadDir),
		DeleteAfterUpload: v.GetBool(KeyDeleteAfterUpload),
		ChannelID:         v.GetString(KeyChannelID),
		DownloadTimeout:   time.Duration(v.GetInt(KeyDownloadTimeout)) * time.Second,
		ProbeTimeout:      time.Duration(v.GetInt(KeyProbeTimeout)) * time.Second,
		YTDLPPath:         v.GetString(KeyYTDLPPath),
	}

	if cfg.BotToken == "" {
		return nil, fmt.Errorf("%s is not set", KeyBotToken)
	}
	if cfg.DownloadDir == "" {
		return nil, fmt.Errorf("%s is not set", KeyDownloadDir)
	}
	if cfg.DownloadTimeout < 0 {
		cfg.DownloadTimeout = 0
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = DefaultProbeTimeoutSeconds * time.Second
	}

	return cfg, nil
}
