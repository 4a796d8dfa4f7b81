package fetcher

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/samber/lo"

	hipshttp "github.com/cdeil/hips/internal/http"
	"github.com/cdeil/hips/internal/progress"
	"github.com/cdeil/hips/pkg/tile"
)

// Strategy selects how fetches are executed.
type Strategy string

const (
	// StrategyPool runs fetches on a bounded worker pool of Options.Workers
	// goroutines.
	StrategyPool Strategy = "pool"

	// StrategyConcurrent starts one goroutine per tile; concurrency equals
	// the number of requested tiles. Prefer StrategyPool for large batches.
	StrategyConcurrent Strategy = "concurrent"
)

// Options configures a Fetcher.
type Options struct {
	// Order is the HiPS order of the requested tiles.
	Order int

	// Format is the tile file format to request.
	Format tile.Format

	// Workers is the worker pool size for StrategyPool.
	// Default: 10
	Workers int

	// Strategy selects the execution strategy.
	// Default: StrategyPool
	Strategy Strategy

	// Timeout is the per-request timeout.
	// Default: 10s
	Timeout time.Duration

	// Progress is an optional progress reporter.
	Progress *progress.Reporter
}

// Fetcher downloads tiles of one survey.
type Fetcher struct {
	survey *tile.Properties
	client *hipshttp.Client
	opts   Options
}

// New creates a Fetcher for a survey. The survey must have a base URL, set
// either from hips_service_url or by FetchSurvey.
func New(survey *tile.Properties, opts Options) *Fetcher {
	if opts.Workers <= 0 {
		opts.Workers = 10
	}
	if opts.Strategy == "" {
		opts.Strategy = StrategyPool
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	httpOpts := hipshttp.DefaultOptions()
	httpOpts.Timeout = opts.Timeout

	return &Fetcher{
		survey: survey,
		client: hipshttp.NewClient(httpOpts),
		opts:   opts,
	}
}

// Fetch downloads the tiles with the given nested pixel indices. Tiles are
// returned in the order of the indices, whatever order the downloads
// complete in. The first failure aborts the batch and no tiles are
// returned.
func (f *Fetcher) Fetch(ctx context.Context, indices []int) ([]tile.Tile, error) {
	frame, err := f.survey.Frame()
	if err != nil {
		return nil, err
	}
	// Width is informational on fetched tiles; not all surveys declare it.
	width, _ := f.survey.TileWidth()

	metas := lo.Map(indices, func(ipix int, _ int) tile.Meta {
		return tile.Meta{
			Order:  f.opts.Order,
			Ipix:   ipix,
			Format: f.opts.Format,
			Frame:  frame,
			Width:  width,
		}
	})

	urls := make([]string, len(metas))
	for i, meta := range metas {
		url, err := f.survey.TileURL(meta)
		if err != nil {
			return nil, err
		}
		urls[i] = url
	}

	var raw [][]byte
	switch f.opts.Strategy {
	case StrategyPool:
		raw, err = f.fetchPool(ctx, urls)
	case StrategyConcurrent:
		raw, err = f.fetchConcurrent(ctx, urls)
	default:
		return nil, fmt.Errorf("fetcher: unknown strategy %q", f.opts.Strategy)
	}
	if err != nil {
		return nil, err
	}

	tiles := make([]tile.Tile, len(raw))
	for i, body := range raw {
		tiles[i] = *tile.New(metas[i], body)
	}
	return tiles, nil
}

// fetchPool downloads all URLs on a bounded worker pool.
func (f *Fetcher) fetchPool(ctx context.Context, urls []string) ([][]byte, error) {
	pool, err := ants.NewPool(f.opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	return f.run(ctx, urls, func(task func()) error {
		return pool.Submit(task)
	})
}

// fetchConcurrent downloads all URLs with one goroutine per URL.
func (f *Fetcher) fetchConcurrent(ctx context.Context, urls []string) ([][]byte, error) {
	return f.run(ctx, urls, func(task func()) error {
		go task()
		return nil
	})
}

// run submits one fetch task per URL through submit and collects the
// payloads into per-index slots. On the first error the batch context is
// cancelled and the error is returned after all tasks have finished.
func (f *Fetcher) run(ctx context.Context, urls []string, submit func(func()) error) ([][]byte, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	raw := make([][]byte, len(urls))
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
			cancel()
		}
		mu.Unlock()
	}

	for i, url := range urls {
		i, url := i, url
		wg.Add(1)
		task := func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			body, err := f.fetchTile(ctx, url)
			if err != nil {
				fail(err)
				return
			}
			raw[i] = body
		}
		if err := submit(task); err != nil {
			wg.Done()
			fail(fmt.Errorf("submit fetch task: %w", err))
			break
		}
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return raw, nil
}

// fetchTile downloads one tile payload, reporting progress if configured.
func (f *Fetcher) fetchTile(ctx context.Context, url string) ([]byte, error) {
	if r := f.opts.Progress; r != nil {
		r.TileStarted()
	}

	body, err := f.client.Get(ctx, url)
	if err != nil {
		if r := f.opts.Progress; r != nil {
			r.TileFailed()
		}
		return nil, fmt.Errorf("fetch tile: %w", err)
	}

	if r := f.opts.Progress; r != nil {
		r.TileCompleted(int64(len(body)))
	}
	return body, nil
}

// FetchSurvey downloads and parses a remote survey descriptor. The URL may
// point at the survey root or directly at its properties file; the survey
// base URL for tile construction is remembered either way.
func FetchSurvey(ctx context.Context, url string) (*tile.Properties, error) {
	base := strings.TrimSuffix(strings.TrimSuffix(url, "/"), "/properties")

	client := hipshttp.NewClient(hipshttp.DefaultOptions())
	body, err := client.Get(ctx, base+"/properties")
	if err != nil {
		return nil, fmt.Errorf("fetch survey properties: %w", err)
	}

	props, err := tile.ParseProperties(body)
	if err != nil {
		return nil, err
	}
	props.SetBaseURL(base)
	return props, nil
}
