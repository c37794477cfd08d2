package model

import "fmt"

// Size formatting constants
const (
	BytesPerMB = 1024 * 1024
)

// FormatOption is a single resolution/format choice produced by the probe
// step. Options live only inside conversation state until the user picks one.
type FormatOption struct {
	ID       string // format selector understood by the external tool
	Label    string // human readable description, e.g. "720p (mp4)"
	FileSize int64  // estimated size in bytes, 0 if unknown
}

// ButtonLabel returns the label shown on the selection button, including the
// estimated size when known
func (fo FormatOption) ButtonLabel() string {
	if fo.FileSize <= 0 {
		return fo.Label
	}
	return fmt.Sprintf("%s ~%.1fMB", fo.Label, float64(fo.FileSize)/float64(BytesPerMB))
}
