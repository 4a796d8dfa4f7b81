package skymap

import (
	"fmt"

	"github.com/cdeil/hips/pkg/healpix"
	"github.com/cdeil/hips/pkg/tile"
)

// Extract cuts tile tileIndex out of a full-sky map.
//
// tileWidth must be a power of two. The map shape must match the format:
// scalar for FITS, 3 channels for JPEG, 4 for PNG; a mismatch returns an
// error wrapping [ErrShape]. The tile's resolution order is derived from
// the map length, so the map must hold a whole number of tiles forming a
// valid nested HEALPix map.
//
// The returned tile holds an independent pixel buffer rotated 90° to the
// on-disk HiPS orientation; the input map is never aliased or modified.
func Extract(m *Map, tileWidth, tileIndex int, format tile.Format, frame tile.Frame) (*tile.Tile, error) {
	shiftOrder, err := healpix.Log2(tileWidth)
	if err != nil {
		return nil, fmt.Errorf("skymap: tile width must be a power of two, got %d", tileWidth)
	}
	if tileIndex < 0 {
		return nil, fmt.Errorf("skymap: tile index must be non-negative, got %d", tileIndex)
	}

	switch format {
	case tile.FormatFITS:
		if m.channels != 0 {
			return nil, fmt.Errorf("%w: %d channels, need a scalar map for format %q", ErrShape, m.channels, format)
		}
	case tile.FormatJPG:
		if m.channels != 3 {
			return nil, fmt.Errorf("%w: %d channels, need 3 (RGB) for format %q", ErrShape, m.channels, format)
		}
	case tile.FormatPNG:
		if m.channels != 4 {
			return nil, fmt.Errorf("%w: %d channels, need 4 (RGBA) for format %q", ErrShape, m.channels, format)
		}
	default:
		return nil, fmt.Errorf("%w: %q", tile.ErrUnknownFormat, format)
	}

	tileArea := tileWidth * tileWidth
	ipix, err := healpix.TileIndexArray(shiftOrder)
	if err != nil {
		return nil, err
	}

	offset := tileIndex * tileArea
	if offset+tileArea > m.npix {
		return nil, fmt.Errorf("skymap: tile %d out of range for map with %d pixels", tileIndex, m.npix)
	}
	if m.npix%tileArea != 0 {
		return nil, fmt.Errorf("%w: %d pixels is not a multiple of tile area %d", ErrShape, m.npix, tileArea)
	}

	// One tile per pixel of the order we are after, so the tile grid
	// itself is a HEALPix map with npix/tileWidth^2 pixels.
	order, err := healpix.NpixToOrder(m.npix / tileArea)
	if err != nil {
		return nil, fmt.Errorf("skymap: map length %d: %w", m.npix, err)
	}

	sw := m.sampleWidth()
	gathered := make([]float64, tileArea*sw)
	for cell, off := range ipix {
		src := offset + off
		for ch := 0; ch < sw; ch++ {
			gathered[cell*sw+ch] = m.at(src, ch)
		}
	}

	meta := tile.Meta{
		Order:  order,
		Ipix:   tileIndex,
		Format: format,
		Frame:  frame,
		Width:  tileWidth,
	}
	return tile.FromPixels(meta, rot90(gathered, tileWidth, sw))
}

// rot90 rotates a row-major width×width buffer (sw samples per cell) 90°
// counter-clockwise into a fresh buffer, matching the HiPS tile orientation
// convention.
func rot90(in []float64, width, sw int) []float64 {
	out := make([]float64, len(in))
	for y := 0; y < width; y++ {
		for x := 0; x < width; x++ {
			src := (x*width + (width - 1 - y)) * sw
			dst := (y*width + x) * sw
			copy(out[dst:dst+sw], in[src:src+sw])
		}
	}
	return out
}
