package thumbnail

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// FFmpeg constants for thumbnail extraction
const (
	// Executable and argument constants
	FFmpegCommand = "ffmpeg"
	SeekPosition  = "00:00:01"
	FrameCount    = "1"
	JPEGQuality   = "2"

	// Output suffix appended to the video path
	OutputSuffix = ".jpg"

	// MaxDiagnosticLen caps ffmpeg stderr carried inside error values
	MaxDiagnosticLen = 400
)

// Service extracts a first-frame preview image from downloaded videos
type Service struct {
	ffmpegPath string
}

// NewService creates a thumbnail service using ffmpeg from PATH
func NewService() *Service {
	return &Service{ffmpegPath: FFmpegCommand}
}

// IsAvailable reports whether ffmpeg can be found
func (s *Service) IsAvailable() bool {
	_, err := exec.LookPath(s.ffmpegPath)
	return err == nil
}

// Extract writes a JPEG of the frame at one second into the video and returns
// its path. The output lives next to the video file.
func (s *Service) Extract(ctx context.Context, videoPath string) (string, error) {
	outputPath := generateOutputPath(videoPath)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, s.ffmpegPath, buildArgs(videoPath, outputPath)...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		diagnostic := strings.TrimSpace(stderr.String())
		if len(diagnostic) > MaxDiagnosticLen {
			diagnostic = "..." + diagnostic[len(diagnostic)-MaxDiagnosticLen:]
		}
		return "", fmt.Errorf("ffmpeg failed for %s: %w: %s", videoPath, err, diagnostic)
	}

	if _, err := os.Stat(outputPath); err != nil {
		return "", fmt.Errorf("ffmpeg produced no thumbnail for %s: %w", videoPath, err)
	}
	return outputPath, nil
}

// generateOutputPath places the thumbnail next to the video
func generateOutputPath(videoPath string) string {
	return videoPath + OutputSuffix
}

// buildArgs assembles the ffmpeg command line: one frame at the seek position,
// original size, fixed JPEG quality
func buildArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",
		"-ss", SeekPosition,
		"-i", inputPath,
		"-vframes", FrameCount,
		"-q:v", JPEGQuality,
		outputPath,
	}
}
