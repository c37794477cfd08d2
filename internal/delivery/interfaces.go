package delivery

import "context"

// VideoMessage is an outbound native video send
type VideoMessage struct {
	Path          string
	Caption       string
	ThumbnailPath string // optional
}

// Sender is the outbound half of the messaging API
type Sender interface {
	SendText(chatID int64, text string) error
	SendVideo(chatID int64, video VideoMessage) error

	// SendVideoToChannel accepts a numeric chat id or an @username
	SendVideoToChannel(channel string, video VideoMessage) error
}

// Thumbnailer produces a preview image for a downloaded video
type Thumbnailer interface {
	Extract(ctx context.Context, videoPath string) (string, error)
}
