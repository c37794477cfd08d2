package extractor

// Package extractor is the process boundary to the external yt-dlp tool. The
// tool owns site compatibility, format negotiation, and network retries; this
// package only builds command lines, enforces timeouts, and parses the tool's
// JSON probe output into format options.
