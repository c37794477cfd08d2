package extractor

import (
	"context"

	"github.com/ytget/tg-video-bot/internal/model"
)

// ProbeResult is what the probe step learned about a URL
type ProbeResult struct {
	Title   string
	Options []model.FormatOption
}

// Extractor defines the two operations the bot needs from the external tool
type Extractor interface {
	// Probe lists the format options available for a URL
	Probe(ctx context.Context, url string) (*ProbeResult, error)

	// Download fetches the URL at the chosen format into destDir and returns
	// the path of the resulting file
	Download(ctx context.Context, url, formatID, destDir string) (string, error)
}
