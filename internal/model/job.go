package model

import (
	"strings"
	"time"
)

// Job represents a single queued request to download a URL at a chosen format
type Job struct {
	ID         string
	ChatID     int64
	URL        string
	FormatID   string
	Title      string // video title from the probe step, may be empty
	Status     JobStatus
	OutputPath string // path to the downloaded file once known
	FileSize   int64  // actual file size in bytes once known
	LastError  string // last error message if any
	EnqueuedAt time.Time
	StartedAt  time.Time
	FinishedAt time.Time
}

// GetDisplayTitle returns title, filename, or URL in order of preference
func (j *Job) GetDisplayTitle() string {
	if j.Title != "" && !strings.HasPrefix(j.Title, "http") {
		return j.Title
	}

	if j.OutputPath != "" {
		parts := strings.FieldsFunc(j.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}

	return j.URL
}
