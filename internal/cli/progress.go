package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// progressWriter keeps bar output on stderr so the report on stdout
// stays machine-readable.
func progressWriter() io.Writer { return os.Stderr }

// ProgressReporter renders a progress bar while files are being checked.
type ProgressReporter struct {
	quiet     bool
	bar       *progressbar.ProgressBar
	startTime time.Time
	mu        sync.Mutex
}

// NewProgressReporter creates a reporter for a run over totalFiles files.
// Quiet runs and single-file runs report nothing.
func NewProgressReporter(quiet bool, totalFiles int) *ProgressReporter {
	p := &ProgressReporter{
		quiet:     quiet,
		startTime: time.Now(),
	}
	if quiet || totalFiles < 2 {
		return p
	}

	p.bar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetDescription("Checking files"),
		progressbar.OptionSetWriter(progressWriter()),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(progressWriter())
		}),
	)
	return p
}

// OnFileChecked marks one file as completed. Called from the lint
// worker goroutines, so it serializes access to the bar.
func (p *ProgressReporter) OnFileChecked(path string) {
	if p.quiet || p.bar == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bar.Add(1)
}

// Finish completes the bar so the report starts on a clean line.
func (p *ProgressReporter) Finish() {
	if p.quiet || p.bar == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bar.Finish()
}
