package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Tool invocation constants
const (
	// DefaultBinary is the external tool looked up on PATH
	DefaultBinary = "yt-dlp"

	// DefaultProbeTimeout bounds the format-listing step
	DefaultProbeTimeout = 15 * time.Second

	// OutputTemplate names downloaded files after the video title
	OutputTemplate = "%(title)s.%(ext)s"

	// MaxDiagnosticLen caps tool stderr carried inside error values
	MaxDiagnosticLen = 700
)

// YTDLP invokes the external tool as a subprocess. It is safe for concurrent
// probes; downloads are serialized by the single worker, not here.
type YTDLP struct {
	binary       string
	probeTimeout time.Duration
}

// New creates an extractor around the given tool binary. An empty binary
// falls back to the PATH lookup default.
func New(binary string) *YTDLP {
	if binary == "" {
		binary = DefaultBinary
	}
	return &YTDLP{
		binary:       binary,
		probeTimeout: DefaultProbeTimeout,
	}
}

// SetProbeTimeout overrides the probe step timeout
func (y *YTDLP) SetProbeTimeout(timeout time.Duration) {
	if timeout > 0 {
		y.probeTimeout = timeout
	}
}

// Probe asks the tool for the available formats of a URL
func (y *YTDLP) Probe(ctx context.Context, url string) (*ProbeResult, error) {
	ctx, cancel := context.WithTimeout(ctx, y.probeTimeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, y.binary, probeArgs(url)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("timed out after %s: %w", y.probeTimeout, err)
		}
		return nil, &ProbeError{URL: url, Output: trimDiagnostic(stderr.String()), Err: err}
	}

	info, err := parseProbeOutput(stdout.Bytes())
	if err != nil {
		return nil, &ProbeError{URL: url, Err: err}
	}

	return &ProbeResult{
		Title:   info.Title,
		Options: buildOptions(info),
	}, nil
}

// Download fetches the URL at the chosen format into destDir. The deadline, if
// any, comes in on ctx from the worker. The final file path is taken from the
// tool's own after-move report rather than guessed from the template.
func (y *YTDLP) Download(ctx context.Context, url, formatID, destDir string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, y.binary, downloadArgs(url, formatID, destDir)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("timed out: %w", err)
		}
		return "", &DownloadError{URL: url, FormatID: formatID, Output: trimDiagnostic(stderr.String()), Err: err}
	}

	path := lastNonEmptyLine(stdout.String())
	if path == "" {
		return "", &DownloadError{URL: url, FormatID: formatID, Err: fmt.Errorf("tool reported no output file")}
	}
	if _, err := os.Stat(path); err != nil {
		return "", &DownloadError{URL: url, FormatID: formatID, Err: fmt.Errorf("reported file missing: %w", err)}
	}
	return path, nil
}

// SelfUpdate runs the tool's own update check. Failures are reported but are
// not fatal for the bot.
func (y *YTDLP) SelfUpdate(ctx context.Context) (string, error) {
	output, err := exec.CommandContext(ctx, y.binary, "-U").CombinedOutput()
	return strings.TrimSpace(string(output)), err
}

func probeArgs(url string) []string {
	return []string{
		"--dump-json",
		"--skip-download",
		"--no-playlist",
		"--no-warnings",
		url,
	}
}

func downloadArgs(url, formatID, destDir string) []string {
	return []string{
		"-f", formatID,
		"-o", filepath.Join(destDir, OutputTemplate),
		"--no-playlist",
		"--restrict-filenames",
		"--no-warnings",
		"--no-simulate",
		"--print", "after_move:filepath",
		url,
	}
}

// lastNonEmptyLine returns the final non-blank stdout line, which holds the
// printed file path
func lastNonEmptyLine(output string) string {
	lines := strings.Split(output, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

// trimDiagnostic keeps the tail of tool stderr, where the actual error lives
func trimDiagnostic(output string) string {
	output = strings.TrimSpace(output)
	if len(output) > MaxDiagnosticLen {
		output = "..." + output[len(output)-MaxDiagnosticLen:]
	}
	return output
}
