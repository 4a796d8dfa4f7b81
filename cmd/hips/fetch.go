package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/cdeil/hips/internal/config"
	"github.com/cdeil/hips/internal/fetcher"
	"github.com/cdeil/hips/internal/progress"
	"github.com/cdeil/hips/pkg/healpix"
	"github.com/cdeil/hips/pkg/tile"
)

// runFetch downloads tiles from a remote HiPS survey and stores them in a
// local tree using the same layout as the remote server, so the output
// directory can itself be served as a survey.
func runFetch(args []string) int {
	fs := newFlagSet("fetch", `Usage: hips fetch [options]

Download tiles from a remote HiPS survey into a local tree.

Tile indices are given as a comma-separated list; each entry is either a
single index or an inclusive range like 100-200. If -indices is omitted,
all tiles of the requested order are fetched.

Options:`)

	survey := fs.String("survey", "", "Survey root URL (required)")
	order := fs.Int("order", -1, "HiPS order of the tiles to fetch (required)")
	indices := fs.String("indices", "", "Tile indices to fetch")
	format := fs.String("format", "", "Tile file format: fits, jpg or png")
	out := fs.String("out", "", "Output directory or bucket URL (required)")
	workers := fs.Int("workers", 0, "Number of parallel workers")
	strategy := fs.String("strategy", "", "Fetch strategy: pool or concurrent")
	timeout := fs.Duration("timeout", 0, "Per-request timeout")
	showProgress := fs.Bool("progress", false, "Show progress output")
	configPath := fs.String("config", "", "Optional YAML config file")

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	cfg, code := loadConfig(*configPath)
	if code != ExitSuccess {
		return code
	}
	cfg = cfg.Merge(config.Config{
		Survey:   *survey,
		Format:   *format,
		Out:      *out,
		Workers:  *workers,
		Strategy: *strategy,
		Timeout:  *timeout,
		Progress: *showProgress || cfg.Progress,
	})
	if *order >= 0 {
		cfg.Order = *order
	}

	if cfg.Survey == "" || cfg.Out == "" {
		fmt.Fprintln(os.Stderr, "Error: -survey and -out are required")
		fs.Usage()
		return ExitInvalidArgs
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		return ExitInvalidArgs
	}

	tileFormat, err := tile.ParseFormat(cfg.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	tileIndices, err := parseIndices(*indices, cfg.Order)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -indices: %v\n", err)
		return ExitInvalidArgs
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\n[hips] Received interrupt, shutting down...")
		cancel()
	}()

	surveyProps, err := fetcher.FetchSurvey(ctx, cfg.Survey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching survey properties: %v\n", err)
		return ExitFetchError
	}

	bkt, err := openBucket(ctx, cfg.Out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening output: %v\n", err)
		return ExitStorageError
	}
	defer bkt.Close()

	var reporter *progress.Reporter
	if cfg.Progress {
		reporter = progress.NewReporter(progress.Options{
			Total:   len(tileIndices),
			Workers: cfg.Workers,
			Source:  cfg.Survey,
		})
		reporter.Start()
		defer reporter.Stop()
	}

	f := fetcher.New(surveyProps, fetcher.Options{
		Order:    cfg.Order,
		Format:   tileFormat,
		Workers:  cfg.Workers,
		Strategy: fetcher.Strategy(cfg.Strategy),
		Timeout:  cfg.Timeout,
		Progress: reporter,
	})

	start := time.Now()
	tiles, err := f.Fetch(ctx, tileIndices)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fetch failed: %v\n", err)
		return ExitFetchError
	}

	// Mirror the survey descriptor so the output tree is servable.
	if err := bkt.WriteAll(ctx, "properties", surveyProps.Encode(), nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing properties: %v\n", err)
		return ExitStorageError
	}
	for _, t := range tiles {
		if err := bkt.WriteAll(ctx, t.Meta.Path(), t.Raw, nil); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", t.Meta.Path(), err)
			return ExitStorageError
		}
	}

	fmt.Fprintf(os.Stderr, "[hips] Done: %d tiles written to %s in %s\n",
		len(tiles), cfg.Out, time.Since(start).Round(time.Millisecond))
	return ExitSuccess
}

// parseIndices parses a comma-separated list of tile indices and inclusive
// ranges. An empty spec expands to all tiles of the given order.
func parseIndices(spec string, order int) ([]int, error) {
	if spec == "" {
		indices := make([]int, healpix.NsideToNpix(healpix.OrderToNside(order)))
		for i := range indices {
			indices[i] = i
		}
		return indices, nil
	}

	var indices []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			first, err := strconv.Atoi(strings.TrimSpace(lo))
			if err != nil {
				return nil, fmt.Errorf("bad range start %q", lo)
			}
			last, err := strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, fmt.Errorf("bad range end %q", hi)
			}
			if first > last {
				return nil, fmt.Errorf("range %q is reversed", part)
			}
			for i := first; i <= last; i++ {
				indices = append(indices, i)
			}
			continue
		}
		i, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("bad index %q", part)
		}
		indices = append(indices, i)
	}
	if len(indices) == 0 {
		return nil, fmt.Errorf("no indices in %q", spec)
	}
	return indices, nil
}
