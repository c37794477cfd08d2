package extractor

import "fmt"

// ProbeError means the URL could not be probed: unsupported site, unreachable
// host, or unparseable tool output. Terminal; the user must re-submit.
type ProbeError struct {
	URL    string
	Output string // trimmed tool diagnostics, may be empty
	Err    error
}

func (e *ProbeError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("probe failed for %s: %v: %s", e.URL, e.Err, e.Output)
	}
	return fmt.Sprintf("probe failed for %s: %v", e.URL, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}

// DownloadError means the external tool failed mid-download. Terminal; the
// job is marked Failed and never retried.
type DownloadError struct {
	URL      string
	FormatID string
	Output   string // trimmed tool diagnostics, may be empty
	Err      error
}

func (e *DownloadError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("download failed for %s (format %s): %v: %s", e.URL, e.FormatID, e.Err, e.Output)
	}
	return fmt.Sprintf("download failed for %s (format %s): %v", e.URL, e.FormatID, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}
