package tile

import "fmt"

// Tile is a single HiPS tile: metadata plus payload.
//
// The payload is either Raw (encoded bytes, as fetched from a server or read
// from disk) or Pix (a decoded sample buffer, as produced by local
// extraction), whichever the producing side had. Encode works from either.
type Tile struct {
	Meta Meta

	// Raw is the encoded tile payload (FITS, JPEG or PNG bytes).
	Raw []byte

	// Pix holds decoded samples in row-major order, channel-interleaved:
	// Width*Width values for scalar tiles, Width*Width*channels otherwise.
	Pix []float64
}

// New wraps raw encoded bytes in a Tile. Used by the fetcher; the payload is
// not decoded or validated here.
func New(meta Meta, raw []byte) *Tile {
	return &Tile{Meta: meta, Raw: raw}
}

// FromPixels wraps a decoded sample buffer in a Tile. The buffer length must
// match the tile geometry implied by the meta.
func FromPixels(meta Meta, pix []float64) (*Tile, error) {
	want := meta.Width * meta.Width
	if ch := meta.Format.Channels(); ch > 0 {
		want *= ch
	}
	if len(pix) != want {
		return nil, fmt.Errorf("tile: pixel buffer has %d samples, want %d for %s", len(pix), want, meta)
	}
	return &Tile{Meta: meta, Pix: pix}, nil
}

// Encode returns the tile payload in its on-disk format. If the tile was
// constructed from raw bytes those are returned as-is; otherwise the pixel
// buffer is encoded with the codec for the tile format.
func (t *Tile) Encode() ([]byte, error) {
	if t.Raw != nil {
		return t.Raw, nil
	}
	return encodePixels(t.Meta, t.Pix)
}

// Decode returns the tile's sample buffer, decoding the raw payload if the
// tile does not carry decoded pixels already.
func (t *Tile) Decode() ([]float64, error) {
	if t.Pix != nil {
		return t.Pix, nil
	}
	return decodePixels(t.Meta, t.Raw)
}
