package bot

import (
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ytget/tg-video-bot/internal/delivery"
)

// TelegramSender sends delivery results through the Telegram API.
type TelegramSender struct {
	api API
}

// NewSender creates a TelegramSender backed by the given API client.
func NewSender(api API) *TelegramSender {
	return &TelegramSender{api: api}
}

// SendText sends a plain text message to a chat.
func (s *TelegramSender) SendText(chatID int64, text string) error {
	_, err := s.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// SendVideo uploads a video file to a chat.
func (s *TelegramSender) SendVideo(chatID int64, video delivery.VideoMessage) error {
	cfg := tgbotapi.NewVideo(chatID, tgbotapi.FilePath(video.Path))
	cfg.Caption = video.Caption
	cfg.SupportsStreaming = true
	if video.ThumbnailPath != "" {
		cfg.Thumb = tgbotapi.FilePath(video.ThumbnailPath)
	}
	_, err := s.api.Send(cfg)
	return err
}

// SendVideoToChannel uploads a video to a channel addressed either by a
// numeric chat ID or by @username.
func (s *TelegramSender) SendVideoToChannel(channel string, video delivery.VideoMessage) error {
	cfg := tgbotapi.VideoConfig{
		BaseFile: tgbotapi.BaseFile{
			BaseChat: tgbotapi.BaseChat{},
			File:     tgbotapi.FilePath(video.Path),
		},
		Caption:           video.Caption,
		SupportsStreaming: true,
	}
	if video.ThumbnailPath != "" {
		cfg.Thumb = tgbotapi.FilePath(video.ThumbnailPath)
	}
	if id, err := strconv.ParseInt(channel, 10, 64); err == nil {
		cfg.ChatID = id
	} else {
		cfg.ChannelUsername = ensureUsernamePrefix(channel)
	}
	_, err := s.api.Send(cfg)
	return err
}

func ensureUsernamePrefix(channel string) string {
	if strings.HasPrefix(channel, "@") {
		return channel
	}
	return "@" + channel
}
