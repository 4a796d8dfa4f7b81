package tile

import (
	"errors"
	"fmt"
)

// ErrUnknownFormat is returned for a tile format this package does not know.
var ErrUnknownFormat = errors.New("tile: unknown file format")

// Format is a HiPS tile file format.
type Format string

// Supported tile formats.
const (
	FormatFITS Format = "fits"
	FormatJPG  Format = "jpg"
	FormatPNG  Format = "png"
)

// ParseFormat parses a tile format string. "jpeg" is accepted as an alias
// for "jpg".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "fits":
		return FormatFITS, nil
	case "jpg", "jpeg":
		return FormatJPG, nil
	case "png":
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Channels returns the number of color channels per pixel: 0 for scalar
// FITS tiles, 3 for RGB JPEG, 4 for RGBA PNG.
func (f Format) Channels() int {
	switch f {
	case FormatJPG:
		return 3
	case FormatPNG:
		return 4
	default:
		return 0
	}
}

// Ext returns the file extension (without dot) used for tiles of this format.
func (f Format) Ext() string {
	return string(f)
}

// Valid reports whether f is a supported format.
func (f Format) Valid() bool {
	switch f {
	case FormatFITS, FormatJPG, FormatPNG:
		return true
	}
	return false
}

// Frame is a sky coordinate frame.
type Frame string

// Supported coordinate frames.
const (
	FrameICRS     Frame = "icrs"
	FrameGalactic Frame = "galactic"
	FrameEcliptic Frame = "ecliptic"
)

// ParseFrame parses a coordinate frame string. "equatorial", the value used
// by the hips_frame property on many surveys, is accepted as an alias for
// "icrs".
func ParseFrame(s string) (Frame, error) {
	switch s {
	case "icrs", "equatorial":
		return FrameICRS, nil
	case "galactic":
		return FrameGalactic, nil
	case "ecliptic":
		return FrameEcliptic, nil
	default:
		return "", fmt.Errorf("tile: unknown frame %q", s)
	}
}
