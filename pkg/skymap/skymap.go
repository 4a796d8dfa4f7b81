package skymap

import (
	"errors"
	"fmt"
)

// ErrShape is returned when a map's shape does not match the requested tile
// format: FITS needs a scalar map, JPEG a 3-channel map, PNG a 4-channel map.
var ErrShape = errors.New("skymap: map shape does not match format")

// Map is an immutable full-sky pixel array in nested HEALPix ordering.
type Map struct {
	values   []float64
	npix     int
	channels int // 0 for scalar maps
}

// NewScalar wraps a scalar map, one value per pixel. The slice is not
// copied; callers must not mutate it afterwards.
func NewScalar(values []float64) *Map {
	return &Map{values: values, npix: len(values)}
}

// NewColor wraps a color map with channel-interleaved values, channels
// values per pixel. channels must be 3 (RGB) or 4 (RGBA).
func NewColor(values []float64, channels int) (*Map, error) {
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("skymap: channels must be 3 or 4, got %d", channels)
	}
	if len(values)%channels != 0 {
		return nil, fmt.Errorf("skymap: %d values do not divide into %d channels", len(values), channels)
	}
	return &Map{values: values, npix: len(values) / channels, channels: channels}, nil
}

// Npix returns the number of pixels in the map.
func (m *Map) Npix() int {
	return m.npix
}

// Channels returns the number of color channels, 0 for scalar maps.
func (m *Map) Channels() int {
	return m.channels
}

// sampleWidth returns the number of stored values per pixel.
func (m *Map) sampleWidth() int {
	if m.channels == 0 {
		return 1
	}
	return m.channels
}

// at returns channel ch of pixel ipix.
func (m *Map) at(ipix, ch int) float64 {
	return m.values[ipix*m.sampleWidth()+ch]
}
