package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		input    int64
		expected string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
	}

	for _, tt := range tests {
		result := formatBytes(tt.input)
		if result != tt.expected {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		input    time.Duration
		expected string
	}{
		{5 * time.Second, "5s"},
		{90 * time.Second, "1m 30s"},
		{3725 * time.Second, "1h 2m 5s"},
	}

	for _, tt := range tests {
		result := formatDuration(tt.input)
		if result != tt.expected {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestReporterTileTracking(t *testing.T) {
	reporter := NewReporter(Options{
		Total:          4,
		Workers:        2,
		UpdateInterval: 100 * time.Millisecond,
	})

	// Test tile tracking without starting the reporter
	reporter.TileStarted()
	if reporter.inProgress.Load() != 1 {
		t.Errorf("expected 1 in-progress, got %d", reporter.inProgress.Load())
	}

	reporter.TileCompleted(256)
	if reporter.inProgress.Load() != 0 {
		t.Errorf("expected 0 in-progress after complete, got %d", reporter.inProgress.Load())
	}
	if reporter.Completed() != 1 {
		t.Errorf("expected 1 completed, got %d", reporter.Completed())
	}
	if reporter.completedBytes.Load() != 256 {
		t.Errorf("expected 256 bytes, got %d", reporter.completedBytes.Load())
	}

	reporter.TileStarted()
	reporter.TileFailed()
	if reporter.inProgress.Load() != 0 {
		t.Errorf("expected 0 in-progress after fail, got %d", reporter.inProgress.Load())
	}
}

func TestReporterStartStop(t *testing.T) {
	var out bytes.Buffer
	reporter := NewReporter(Options{
		Total:          4,
		Workers:        2,
		UpdateInterval: 10 * time.Millisecond,
		Source:         "https://example.org/survey",
		Output:         &out,
	})

	reporter.Start()

	reporter.TileStarted()
	reporter.TileCompleted(1024)

	reporter.TileStarted()
	reporter.TileCompleted(1024)

	time.Sleep(50 * time.Millisecond) // Let updates run

	reporter.Stop()

	if reporter.Completed() != 2 {
		t.Errorf("expected 2 completed tiles, got %d", reporter.Completed())
	}
	if reporter.completedBytes.Load() != 2048 {
		t.Errorf("expected 2048 bytes completed, got %d", reporter.completedBytes.Load())
	}
	if !strings.Contains(out.String(), "https://example.org/survey") {
		t.Error("header should mention the source")
	}
}

func TestReporterStopTwice(t *testing.T) {
	reporter := NewReporter(Options{Total: 1, Output: &bytes.Buffer{}})
	reporter.Start()
	reporter.Stop()
	reporter.Stop() // must not panic
}
