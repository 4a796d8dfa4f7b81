package skymap

import (
	"errors"
	"testing"

	"github.com/cdeil/hips/pkg/tile"
)

// makeMap builds a nested-order test map for nside=4 (192 pixels) with
// pixel i carrying value i, plus i+1, i+2, i+3 on extra channels.
func makeMap(t *testing.T, format tile.Format) *Map {
	t.Helper()

	const npix = 192
	channels := format.Channels()
	if channels == 0 {
		values := make([]float64, npix)
		for i := range values {
			values[i] = float64(i)
		}
		return NewScalar(values)
	}

	values := make([]float64, npix*channels)
	for i := 0; i < npix; i++ {
		for ch := 0; ch < channels; ch++ {
			values[i*channels+ch] = float64(i + ch)
		}
	}
	m, err := NewColor(values, channels)
	if err != nil {
		t.Fatalf("NewColor: %v", err)
	}
	return m
}

func TestExtractFITS(t *testing.T) {
	m := makeMap(t, tile.FormatFITS)

	tl, err := Extract(m, 2, 0, tile.FormatFITS, tile.FrameICRS)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if tl.Meta.Order != 1 {
		t.Errorf("order: got %d, want 1", tl.Meta.Order)
	}
	if tl.Meta.Ipix != 0 {
		t.Errorf("ipix: got %d, want 0", tl.Meta.Ipix)
	}
	if tl.Meta.Format != tile.FormatFITS {
		t.Errorf("format: got %q, want fits", tl.Meta.Format)
	}
	if tl.Meta.Frame != tile.FrameICRS {
		t.Errorf("frame: got %q, want icrs", tl.Meta.Frame)
	}
	if tl.Meta.Width != 2 {
		t.Errorf("width: got %d, want 2", tl.Meta.Width)
	}

	// Rotated 2x2 buffer [[1 3] [0 2]] in row-major order.
	want := []float64{1, 3, 0, 2}
	for i := range want {
		if tl.Pix[i] != want[i] {
			t.Errorf("pix %d: got %v, want %v", i, tl.Pix[i], want[i])
		}
	}
}

func TestExtractFITSTile2(t *testing.T) {
	m := makeMap(t, tile.FormatFITS)

	tl, err := Extract(m, 2, 2, tile.FormatFITS, tile.FrameICRS)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := []float64{9, 11, 8, 10}
	for i := range want {
		if tl.Pix[i] != want[i] {
			t.Errorf("pix %d: got %v, want %v", i, tl.Pix[i], want[i])
		}
	}
}

func TestExtractPNG(t *testing.T) {
	m := makeMap(t, tile.FormatPNG)

	tl, err := Extract(m, 2, 0, tile.FormatPNG, tile.FrameICRS)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if tl.Meta.Order != 1 {
		t.Errorf("order: got %d, want 1", tl.Meta.Order)
	}
	if len(tl.Pix) != 2*2*4 {
		t.Fatalf("buffer length: got %d, want 16", len(tl.Pix))
	}

	// Channel 0 matches the scalar layout, channel ch is offset by ch.
	want := []float64{1, 3, 0, 2}
	for ch := 0; ch < 4; ch++ {
		for i := range want {
			got := tl.Pix[i*4+ch]
			if got != want[i]+float64(ch) {
				t.Errorf("cell %d channel %d: got %v, want %v", i, ch, got, want[i]+float64(ch))
			}
		}
	}
}

func TestExtractJPG(t *testing.T) {
	m := makeMap(t, tile.FormatJPG)

	tl, err := Extract(m, 2, 0, tile.FormatJPG, tile.FrameGalactic)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(tl.Pix) != 2*2*3 {
		t.Fatalf("buffer length: got %d, want 12", len(tl.Pix))
	}
	if tl.Meta.Frame != tile.FrameGalactic {
		t.Errorf("frame: got %q, want galactic", tl.Meta.Frame)
	}
}

func TestExtractShapeErrors(t *testing.T) {
	tests := []struct {
		name   string
		m      *Map
		format tile.Format
	}{
		{"fits on color map", makeMap(t, tile.FormatPNG), tile.FormatFITS},
		{"jpg on scalar map", makeMap(t, tile.FormatFITS), tile.FormatJPG},
		{"jpg on 4-channel map", makeMap(t, tile.FormatPNG), tile.FormatJPG},
		{"png on scalar map", makeMap(t, tile.FormatFITS), tile.FormatPNG},
		{"png on 3-channel map", makeMap(t, tile.FormatJPG), tile.FormatPNG},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.m, 2, 0, tt.format, tile.FrameICRS)
			if !errors.Is(err, ErrShape) {
				t.Errorf("expected ErrShape, got %v", err)
			}
		})
	}
}

func TestExtractUnknownFormat(t *testing.T) {
	m := makeMap(t, tile.FormatFITS)
	_, err := Extract(m, 2, 0, tile.Format("gif"), tile.FrameICRS)
	if !errors.Is(err, tile.ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}

func TestExtractInvalidArguments(t *testing.T) {
	m := makeMap(t, tile.FormatFITS)

	if _, err := Extract(m, 3, 0, tile.FormatFITS, tile.FrameICRS); err == nil {
		t.Error("expected error for non power-of-two width")
	}
	if _, err := Extract(m, 2, -1, tile.FormatFITS, tile.FrameICRS); err == nil {
		t.Error("expected error for negative tile index")
	}
	if _, err := Extract(m, 2, 48, tile.FormatFITS, tile.FrameICRS); err == nil {
		t.Error("expected error for tile index past map end")
	}
}

func TestExtractOrderDerivation(t *testing.T) {
	m := makeMap(t, tile.FormatFITS) // 192 pixels

	// width 2: 48 tiles -> nside 2 -> order 1
	tl, err := Extract(m, 2, 0, tile.FormatFITS, tile.FrameICRS)
	if err != nil {
		t.Fatalf("Extract width 2: %v", err)
	}
	if tl.Meta.Order != 1 {
		t.Errorf("width 2 order: got %d, want 1", tl.Meta.Order)
	}

	// width 4: 12 tiles -> nside 1 -> order 0
	tl, err = Extract(m, 4, 0, tile.FormatFITS, tile.FrameICRS)
	if err != nil {
		t.Fatalf("Extract width 4: %v", err)
	}
	if tl.Meta.Order != 0 {
		t.Errorf("width 4 order: got %d, want 0", tl.Meta.Order)
	}
}

// Every source pixel must land in exactly one tile.
func TestExtractPartition(t *testing.T) {
	m := makeMap(t, tile.FormatFITS)
	const nTiles = 48

	seen := make([]int, m.Npix())
	for idx := 0; idx < nTiles; idx++ {
		tl, err := Extract(m, 2, idx, tile.FormatFITS, tile.FrameICRS)
		if err != nil {
			t.Fatalf("Extract(%d): %v", idx, err)
		}
		for _, v := range tl.Pix {
			seen[int(v)]++
		}
	}

	for i, n := range seen {
		if n != 1 {
			t.Errorf("pixel %d gathered %d times, want 1", i, n)
		}
	}
}

// Undoing the rotation and the permutation gather recovers the contiguous
// source block of each tile.
func TestExtractRoundTrip(t *testing.T) {
	m := makeMap(t, tile.FormatFITS)
	const width = 2

	for idx := 0; idx < 48; idx++ {
		tl, err := Extract(m, width, idx, tile.FormatFITS, tile.FrameICRS)
		if err != nil {
			t.Fatalf("Extract(%d): %v", idx, err)
		}

		// Inverse of the CCW rotation: gathered[y][x] = rot[width-1-x][y].
		gathered := make([]float64, width*width)
		for y := 0; y < width; y++ {
			for x := 0; x < width; x++ {
				gathered[y*width+x] = tl.Pix[(width-1-x)*width+y]
			}
		}

		// Scatter through the permutation back to source offsets.
		perm := []int{0, 1, 2, 3}
		recovered := make([]float64, width*width)
		for cell, off := range perm {
			recovered[off] = gathered[cell]
		}

		for off, v := range recovered {
			want := float64(idx*width*width + off)
			if v != want {
				t.Errorf("tile %d offset %d: got %v, want %v", idx, off, v, want)
			}
		}
	}
}
