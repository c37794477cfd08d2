package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ytget/tg-video-bot/internal/bot"
	"github.com/ytget/tg-video-bot/internal/config"
	"github.com/ytget/tg-video-bot/internal/delivery"
	"github.com/ytget/tg-video-bot/internal/extractor"
	"github.com/ytget/tg-video-bot/internal/model"
	"github.com/ytget/tg-video-bot/internal/platform"
	"github.com/ytget/tg-video-bot/internal/queue"
	"github.com/ytget/tg-video-bot/internal/session"
	"github.com/ytget/tg-video-bot/internal/thumbnail"
	"github.com/ytget/tg-video-bot/internal/worker"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppName = "TG Video Bot"

	// SelfUpdateTimeout bounds the yt-dlp self-update attempt at startup.
	SelfUpdateTimeout = 60 * time.Second

	// UpdatePollTimeout is the long-poll timeout for getUpdates, in seconds.
	UpdatePollTimeout = 30
)

// deliveryFunc adapts a function to the worker's Delivery interface.
type deliveryFunc func(ctx context.Context, job *model.Job)

func (f deliveryFunc) Deliver(ctx context.Context, job *model.Job) { f(ctx, job) }

func main() {
	log.Printf("%s v%s starting...", AppName, version)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if err := platform.CreateDirectoryIfNotExists(cfg.DownloadDir); err != nil {
		log.Fatalf("Failed to ensure download dir %s: %v", cfg.DownloadDir, err)
	}
	if removed, err := platform.RemoveStaleArtifacts(cfg.DownloadDir); err != nil {
		log.Printf("Stale artifact cleanup failed: %v", err)
	} else if removed > 0 {
		log.Printf("Removed %d stale download artifact(s)", removed)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ytdlp := extractor.New(cfg.YTDLPPath)
	ytdlp.SetProbeTimeout(cfg.ProbeTimeout)
	selfUpdate(ctx, ytdlp)

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("Failed to connect to Telegram: %v", err)
	}
	log.Printf("Authorized as @%s", api.Self.UserName)

	var thumbnailer delivery.Thumbnailer
	if svc := thumbnail.NewService(); svc.IsAvailable() {
		thumbnailer = svc
	} else {
		log.Printf("ffmpeg not found, videos will be sent without thumbnails")
	}

	sender := bot.NewSender(api)
	router := delivery.NewRouter(sender, thumbnailer, cfg.ChannelID, cfg.DeleteAfterUpload)

	jobs := queue.New()
	sessions := session.NewStore()

	w := worker.New(jobs, ytdlp, deliveryFunc(func(ctx context.Context, job *model.Job) {
		router.Deliver(ctx, job)
	}), cfg.DownloadDir, cfg.DownloadTimeout)
	go w.Run(ctx)

	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = UpdatePollTimeout

	handler := bot.NewHandler(api, ytdlp, sessions, jobs)
	handler.Run(ctx, api.GetUpdatesChan(updateCfg))

	log.Printf("Shutting down")
}

// selfUpdate asks yt-dlp to update itself. Failure is logged and ignored so
// an offline or read-only install still serves requests.
func selfUpdate(ctx context.Context, ytdlp *extractor.YTDLP) {
	updateCtx, cancel := context.WithTimeout(ctx, SelfUpdateTimeout)
	defer cancel()
	if out, err := ytdlp.SelfUpdate(updateCtx); err != nil {
		log.Printf("yt-dlp self-update failed: %v", err)
	} else if out != "" {
		log.Printf("yt-dlp self-update: %s", out)
	}
}
