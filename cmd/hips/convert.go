package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cdeil/hips/internal/config"
	"github.com/cdeil/hips/pkg/skymap"
	"github.com/cdeil/hips/pkg/tile"
)

// runConvert reads a HEALPix all-sky map from a FITS file and writes the
// full HiPS tile tree (properties file plus one file per tile) to the
// output directory or bucket.
func runConvert(args []string) int {
	fs := newFlagSet("convert", `Usage: hips convert [options]

Convert a HEALPix all-sky FITS map into a HiPS tile tree.

Options:`)

	input := fs.String("input", "", "Input all-sky FITS map (required)")
	out := fs.String("out", "", "Output directory or bucket URL (required)")
	name := fs.String("name", "", "Survey name for the index.html preview page")
	width := fs.Int("width", 0, "Tile width in pixels (power of two)")
	format := fs.String("format", "", "Tile file format: fits, jpg or png")
	frame := fs.String("frame", "", "Sky coordinate frame: icrs, galactic or ecliptic")
	showProgress := fs.Bool("progress", false, "Print each tile as it is written")
	configPath := fs.String("config", "", "Optional YAML config file")

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}

	cfg, code := loadConfig(*configPath)
	if code != ExitSuccess {
		return code
	}
	cfg = cfg.Merge(config.Config{
		Out:       *out,
		TileWidth: *width,
		Format:    *format,
		Frame:     *frame,
		Progress:  *showProgress || cfg.Progress,
	})

	if *input == "" || cfg.Out == "" {
		fmt.Fprintln(os.Stderr, "Error: -input and -out are required")
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
	skyFrame, err := tile.ParseFrame(cfg.Frame)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
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

	m, err := readMap(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input map: %v\n", err)
		return ExitConvertError
	}

	bkt, err := openBucket(ctx, cfg.Out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening output: %v\n", err)
		return ExitStorageError
	}
	defer bkt.Close()

	nTiles := m.Npix() / (cfg.TileWidth * cfg.TileWidth)
	fmt.Fprintf(os.Stderr, "[hips] Converting %s: %d pixels, %d tiles of %dx%d\n",
		*input, m.Npix(), nTiles, cfg.TileWidth, cfg.TileWidth)

	opts := skymap.ConvertOptions{Name: *name}
	if cfg.Progress {
		opts.OnTile = func(meta tile.Meta) {
			fmt.Fprintf(os.Stderr, "[hips] Wrote %s\n", meta.Path())
		}
	}

	start := time.Now()
	if err := skymap.Convert(ctx, m, cfg.TileWidth, bkt, tileFormat, skyFrame, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Conversion failed: %v\n", err)
		return ExitConvertError
	}

	fmt.Fprintf(os.Stderr, "[hips] Done: %d tiles written to %s in %s\n",
		nTiles, cfg.Out, time.Since(start).Round(time.Millisecond))
	return ExitSuccess
}

// readMap loads an all-sky HEALPix map from a FITS image. A 1-d image is a
// scalar map; a 2-d image with 3 or 4 samples along the fastest axis is a
// color map.
func readMap(path string) (*skymap.Map, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	pix, axes, err := tile.DecodeFITS(raw)
	if err != nil {
		return nil, err
	}

	switch len(axes) {
	case 1:
		return skymap.NewScalar(pix), nil
	case 2:
		return skymap.NewColor(pix, axes[0])
	default:
		return nil, fmt.Errorf("unsupported map dimensionality: %d axes", len(axes))
	}
}
