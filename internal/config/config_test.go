package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv(KeyBotToken, "123:token")
	t.Setenv(KeyDownloadDir, "/downloads")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.BotToken != "123:token" {
		t.Errorf("Expected bot token to load, got %q", cfg.BotToken)
	}
	if cfg.DownloadDir != "/downloads" {
		t.Errorf("Expected download dir to load, got %q", cfg.DownloadDir)
	}
	if !cfg.DeleteAfterUpload {
		t.Error("Expected delete-after-upload to default to true")
	}
	if cfg.ChannelID != "" {
		t.Errorf("Expected empty channel by default, got %q", cfg.ChannelID)
	}
	if cfg.DownloadTimeout != DefaultDownloadTimeoutSeconds*time.Second {
		t.Errorf("Expected default download timeout, got %s", cfg.DownloadTimeout)
	}
	if cfg.ProbeTimeout != DefaultProbeTimeoutSeconds*time.Second {
		t.Errorf("Expected default probe timeout, got %s", cfg.ProbeTimeout)
	}
	if cfg.YTDLPPath != DefaultYTDLPPath {
		t.Errorf("Expected default tool path, got %q", cfg.YTDLPPath)
	}
}

func TestLoad_MissingToken(t *testing.T) {
	t.Setenv(KeyBotToken, "")
	t.Setenv(KeyDownloadDir, "/downloads")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), KeyBotToken) {
		t.Errorf("Expected missing-token error, got %v", err)
	}
}

func TestLoad_MissingDownloadDir(t *testing.T) {
	t.Setenv(KeyBotToken, "123:token")
	t.Setenv(KeyDownloadDir, "")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), KeyDownloadDir) {
		t.Errorf("Expected missing-dir error, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv(KeyDeleteAfterUpload, "false")
	t.Setenv(KeyChannelID, "@archive")
	t.Setenv(KeyDownloadTimeout, "600")
	t.Setenv(KeyProbeTimeout, "30")
	t.Setenv(KeyYTDLPPath, "/opt/bin/yt-dlp")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.DeleteAfterUpload {
		t.Error("Expected delete-after-upload override to false")
	}
	if cfg.ChannelID != "@archive" {
		t.Errorf("Expected channel @archive, got %q", cfg.ChannelID)
	}
	if cfg.DownloadTimeout != 600*time.Second {
		t.Errorf("Expected 600s download timeout, got %s", cfg.DownloadTimeout)
	}
	if cfg.ProbeTimeout != 30*time.Second {
		t.Errorf("Expected 30s probe timeout, got %s", cfg.ProbeTimeout)
	}
	if cfg.YTDLPPath != "/opt/bin/yt-dlp" {
		t.Errorf("Expected tool path override, got %q", cfg.YTDLPPath)
	}
}

func TestLoad_ZeroTimeoutDisablesDeadline(t *testing.T) {
	setRequired(t)
	t.Setenv(KeyDownloadTimeout, "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if cfg.DownloadTimeout != 0 {
		t.Errorf("Expected timeout 0 to stay 0 (unlimited), got %s", cfg.DownloadTimeout)
	}
}
