package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Options configures the progress reporter.
type Options struct {
	// Total is the total number of tiles.
	Total int

	// Workers is the number of parallel workers, shown in the header.
	// Zero hides the worker count.
	Workers int

	// Source is the survey or file being processed (for display).
	Source string

	// Output is where to write progress output.
	// Default: os.Stderr
	Output io.Writer

	// UpdateInterval is how often to update the progress display.
	// Default: 500ms
	UpdateInterval time.Duration
}

// Reporter outputs human-readable progress information.
type Reporter struct {
	opts Options

	completedBytes atomic.Int64
	completed      atomic.Int32
	inProgress     atomic.Int32

	mu        sync.Mutex
	startTime time.Time
	stopCh    chan struct{}
	stopped   bool
}

// NewReporter creates a new progress reporter.
func NewReporter(opts Options) *Reporter {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.UpdateInterval == 0 {
		opts.UpdateInterval = 500 * time.Millisecond
	}

	return &Reporter{
		opts:   opts,
		stopCh: make(chan struct{}),
	}
}

// Start begins outputting progress information.
func (r *Reporter) Start() {
	r.startTime = time.Now()

	fmt.Fprintf(r.opts.Output, "[hips] Fetching tiles: %s\n", r.opts.Source)
	if r.opts.Workers > 0 {
		fmt.Fprintf(r.opts.Output, "[hips] Tiles: %d | Workers: %d\n", r.opts.Total, r.opts.Workers)
	} else {
		fmt.Fprintf(r.opts.Output, "[hips] Tiles: %d\n", r.opts.Total)
	}

	go r.updateLoop()
}

// Stop stops the progress reporter.
func (r *Reporter) Stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	r.mu.Unlock()

	close(r.stopCh)
}

// TileStarted marks a tile fetch as in progress.
func (r *Reporter) TileStarted() {
	r.inProgress.Add(1)
}

// TileCompleted marks a tile as completed with its payload size.
func (r *Reporter) TileCompleted(size int64) {
	r.completedBytes.Add(size)
	r.completed.Add(1)
	r.inProgress.Add(-1)
}

// TileFailed marks a tile as failed (removes from in-progress).
func (r *Reporter) TileFailed() {
	r.inProgress.Add(-1)
}

// Completed returns the number of completed tiles.
func (r *Reporter) Completed() int {
	return int(r.completed.Load())
}

// updateLoop periodically updates the progress display.
func (r *Reporter) updateLoop() {
	ticker := time.NewTicker(r.opts.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopCh:
			r.printFinalStatus()
			return
		case <-ticker.C:
			r.printProgress()
		}
	}
}

// printProgress outputs the current progress.
func (r *Reporter) printProgress() {
	completed := int(r.completed.Load())
	inProgress := int(r.inProgress.Load())
	bytes := r.completedBytes.Load()
	elapsed := time.Since(r.startTime)

	fmt.Fprintf(r.opts.Output, "\r[hips] Progress: %d/%d tiles | %d in-flight | %s | Elapsed: %s    ",
		completed,
		r.opts.Total,
		inProgress,
		formatBytes(bytes),
		formatDuration(elapsed),
	)
}

// printFinalStatus outputs the final status.
func (r *Reporter) printFinalStatus() {
	completed := int(r.completed.Load())
	bytes := r.completedBytes.Load()
	duration := time.Since(r.startTime)

	fmt.Fprintf(r.opts.Output, "\r[hips] Done: %d/%d tiles | %s | Total time: %s    \n",
		completed,
		r.opts.Total,
		formatBytes(bytes),
		formatDuration(duration),
	)
}

// formatBytes formats bytes as a human-readable string.
func formatBytes(b int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case b >= GB:
		return fmt.Sprintf("%.2f GB", float64(b)/float64(GB))
	case b >= MB:
		return fmt.Sprintf("%.2f MB", float64(b)/float64(MB))
	case b >= KB:
		return fmt.Sprintf("%.2f KB", float64(b)/float64(KB))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

// formatDuration formats a duration as a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}
