package extractor

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/ytget/tg-video-bot/internal/model"
)

// Option list constants
const (
	// MaxResolutionOptions caps the per-height options offered to the user;
	// the "best" fallback is added on top of these
	MaxResolutionOptions = 5

	// BestFormatID is the tool's default selector, always offered first
	BestFormatID = "best"

	// BestFormatLabel is the label for the default selector
	BestFormatLabel = "Best available"
)

// Format selection scoring
const (
	ScoreForMP4       = 2
	ScoreForKnownSize = 1
)

// Extensions that never make a playable option (storyboards etc.)
var skippedFormatExts = map[string]bool{
	"mhtml": true,
}

// probeInfo mirrors the fields of the tool's --dump-json output the bot needs
type probeInfo struct {
	Title   string        `json:"title"`
	Formats []probeFormat `json:"formats"`
}

type probeFormat struct {
	FormatID string `json:"format_id"`
	Ext      string `json:"ext"`
	VCodec   string `json:"vcodec"`
	ACodec   string `json:"acodec"`
	Height   int    `json:"height"`

	// The tool estimates filesize_approx from bitrate and duration, so it
	// arrives as a fractional number for many extractors.
	Filesize       float64 `json:"filesize"`
	FilesizeApprox float64 `json:"filesize_approx"`
}

// parseProbeOutput decodes a single --dump-json document
func parseProbeOutput(data []byte) (*probeInfo, error) {
	var info probeInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("unparseable tool output: %w", err)
	}
	return &info, nil
}

// estimatedSize prefers the exact size over the tool's approximation,
// truncated to whole bytes
func (f probeFormat) estimatedSize() int64 {
	if f.Filesize > 0 {
		return int64(f.Filesize)
	}
	return int64(f.FilesizeApprox)
}

// isVideo reports whether the format carries a video stream worth offering
func (f probeFormat) isVideo() bool {
	return f.VCodec != "" && f.VCodec != "none" && f.Height > 0 && !skippedFormatExts[f.Ext]
}

// selector returns the -f expression for the format. Video-only formats are
// paired with the best audio stream so the result stays playable.
func (f probeFormat) selector() string {
	if f.ACodec == "" || f.ACodec == "none" {
		return fmt.Sprintf("%s+bestaudio/%s", f.FormatID, f.FormatID)
	}
	return f.FormatID
}

// score ranks formats competing for the same height
func (f probeFormat) score() int {
	score := 0
	if f.Ext == "mp4" {
		score += ScoreForMP4
	}
	if f.estimatedSize() > 0 {
		score += ScoreForKnownSize
	}
	return score
}

// buildOptions reduces the probed format list to a small enumerated choice:
// one option per distinct height, highest first, capped, with the tool's
// "best" selector always offered as the first entry.
func buildOptions(info *probeInfo) []model.FormatOption {
	byHeight := make(map[int]probeFormat)
	for _, f := range info.Formats {
		if !f.isVideo() {
			continue
		}
		current, exists := byHeight[f.Height]
		if !exists || f.score() > current.score() {
			byHeight[f.Height] = f
		}
	}

	heights := make([]int, 0, len(byHeight))
	for h := range byHeight {
		heights = append(heights, h)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(heights)))

	if len(heights) > MaxResolutionOptions {
		heights = heights[:MaxResolutionOptions]
	}

	options := make([]model.FormatOption, 0, len(heights)+1)
	options = append(options, model.FormatOption{ID: BestFormatID, Label: BestFormatLabel})
	for _, h := range heights {
		f := byHeight[h]
		options = append(options, model.FormatOption{
			ID:       f.selector(),
			Label:    fmt.Sprintf("%dp (%s)", h, f.Ext),
			FileSize: f.estimatedSize(),
		})
	}
	return options
}
