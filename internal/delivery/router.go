package delivery

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/ytget/tg-video-bot/internal/model"
)

// NativeVideoSizeLimit is the Bot API ceiling for native video sends. It is a
// capability limit of the messaging side, not tunable business logic.
const NativeVideoSizeLimit = 50 * 1024 * 1024

// ChannelCaptionPrefix marks videos mirrored to the configured channel
const ChannelCaptionPrefix = "[mirror] "

// Result classifies what the router did with a job
type Result string

const (
	// ResultSent means the video reached the originating chat
	ResultSent Result = "Sent"

	// ResultSizeLimit means the file was at or above the native video ceiling
	ResultSizeLimit Result = "SizeLimit"

	// ResultFailed means the job arrived already failed and the user was told
	ResultFailed Result = "Failed"

	// ResultSendError means the messaging API rejected the send
	ResultSendError Result = "SendError"
)

// Router decides how each finished job leaves the system
type Router struct {
	sender            Sender
	thumbnailer       Thumbnailer // nil disables thumbnails
	channel           string      // empty disables the mirror
	deleteAfterUpload bool
}

// NewRouter creates a delivery router
func NewRouter(sender Sender, thumbnailer Thumbnailer, channel string, deleteAfterUpload bool) *Router {
	return &Router{
		sender:            sender,
		thumbnailer:       thumbnailer,
		channel:           channel,
		deleteAfterUpload: deleteAfterUpload,
	}
}

// Deliver routes one finished job. Every outcome ends in a chat message; the
// router never retries and never blocks the worker on a messaging failure.
func (r *Router) Deliver(ctx context.Context, job *model.Job) Result {
	if job.Status == model.JobStatusFailed {
		r.sendText(job.ChatID, fmt.Sprintf("Download failed for %s. Please check the link and try again.", job.GetDisplayTitle()))
		return ResultFailed
	}

	info, err := os.Stat(job.OutputPath)
	if err != nil {
		job.Status = model.JobStatusFailed
		job.LastError = err.Error()
		log.Printf("[%d] job %s: downloaded file missing: %v", job.ChatID, job.ID, err)
		r.sendText(job.ChatID, fmt.Sprintf("Download failed for %s: the output file could not be found.", job.GetDisplayTitle()))
		return ResultFailed
	}
	job.FileSize = info.Size()

	if job.FileSize >= NativeVideoSizeLimit {
		job.Status = model.JobStatusFailed
		job.LastError = fmt.Sprintf("file size %d exceeds the %dMB video limit", job.FileSize, NativeVideoSizeLimit/model.BytesPerMB)
		r.sendText(job.ChatID, fmt.Sprintf(
			"%s is %.1fMB, above the %dMB limit for video messages. Try a lower resolution.",
			job.GetDisplayTitle(), float64(job.FileSize)/float64(model.BytesPerMB), NativeVideoSizeLimit/model.BytesPerMB))
		r.cleanup(job.OutputPath, "")
		return ResultSizeLimit
	}

	thumbnailPath := r.extractThumbnail(ctx, job)

	video := VideoMessage{
		Path:          job.OutputPath,
		Caption:       fmt.Sprintf("Video: %s", job.GetDisplayTitle()),
		ThumbnailPath: thumbnailPath,
	}

	if err := r.sender.SendVideo(job.ChatID, video); err != nil {
		log.Printf("[%d] job %s: video send failed: %v", job.ChatID, job.ID, err)
		r.sendText(job.ChatID, fmt.Sprintf("Sending %s failed. You can re-submit the link to try again.", job.GetDisplayTitle()))
		r.cleanup(job.OutputPath, thumbnailPath)
		return ResultSendError
	}
	log.Printf("[%d] job %s: video delivered", job.ChatID, job.ID)

	if r.channel != "" {
		mirror := video
		mirror.Caption = ChannelCaptionPrefix + video.Caption
		if err := r.sender.SendVideoToChannel(r.channel, mirror); err != nil {
			// The user already has the file; a mirror failure is log-only.
			log.Printf("[%d] job %s: channel mirror failed: %v", job.ChatID, job.ID, err)
		}
	}

	r.cleanup(job.OutputPath, thumbnailPath)
	return ResultSent
}

// extractThumbnail is best effort; a missing preview never fails delivery
func (r *Router) extractThumbnail(ctx context.Context, job *model.Job) string {
	if r.thumbnailer == nil {
		return ""
	}
	path, err := r.thumbnailer.Extract(ctx, job.OutputPath)
	if err != nil {
		log.Printf("[%d] job %s: thumbnail extraction failed: %v", job.ChatID, job.ID, err)
		return ""
	}
	return path
}

// cleanup honors the retention flag for the media file; thumbnails are
// always transient
func (r *Router) cleanup(videoPath, thumbnailPath string) {
	if r.deleteAfterUpload && videoPath != "" {
		if err := os.Remove(videoPath); err != nil && !os.IsNotExist(err) {
			log.Printf("Failed to delete %s: %v", videoPath, err)
		}
	}
	if thumbnailPath != "" {
		if err := os.Remove(thumbnailPath); err != nil && !os.IsNotExist(err) {
			log.Printf("Failed to delete thumbnail %s: %v", thumbnailPath, err)
		}
	}
}

func (r *Router) sendText(chatID int64, text string) {
	if err := r.sender.SendText(chatID, text); err != nil {
		log.Printf("[%d] text send failed: %v", chatID, err)
	}
}
