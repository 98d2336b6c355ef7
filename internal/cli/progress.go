package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
)

// ScanProgress shows a descending week scan as a progress bar.
type ScanProgress struct {
	bar    *progressbar.ProgressBar
	writer io.Writer
	tried  int
}

// NewScanProgress creates a bar over maxWeek attempts.
func NewScanProgress(w io.Writer, maxWeek int) *ScanProgress {
	if w == nil {
		w = os.Stderr
	}
	bar := progressbar.NewOptions(maxWeek,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("[cyan][bold]Scanning weeks...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
	return &ScanProgress{bar: bar, writer: w}
}

// Attempt records that week is being tried.
func (p *ScanProgress) Attempt(week int) {
	p.tried++
	p.bar.Describe(fmt.Sprintf("[cyan][bold]Trying week %d...[reset]", week))
	if err := p.bar.Add(1); err != nil {
		slog.Warn("Failed to update progress bar", "error", err)
	}
}

// Tried returns how many weeks were attempted.
func (p *ScanProgress) Tried() int {
	return p.tried
}

// Finish completes the bar regardless of how many weeks were tried.
func (p *ScanProgress) Finish() {
	if err := p.bar.Finish(); err != nil {
		slog.Warn("Failed to finish progress bar", "error", err)
	}
}
