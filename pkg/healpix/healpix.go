package healpix

import (
	"errors"
	"fmt"
)

// ErrInvalidNpix is returned when a pixel count does not correspond to a
// valid nested HEALPix map (npix = 12 * nside^2 with nside a power of two).
var ErrInvalidNpix = errors.New("healpix: invalid pixel count")

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Log2 returns log2(n) for a positive power of two n.
func Log2(n int) (int, error) {
	if !IsPowerOfTwo(n) {
		return 0, fmt.Errorf("healpix: %d is not a power of two", n)
	}
	order := 0
	for n > 1 {
		n >>= 1
		order++
	}
	return order, nil
}

// OrderToNside returns the nside parameter for a resolution order.
func OrderToNside(order int) int {
	return 1 << order
}

// NsideToNpix returns the total pixel count of a full-sky map at nside.
func NsideToNpix(nside int) int {
	return 12 * nside * nside
}

// NpixToNside returns the nside parameter for a full-sky pixel count.
// The count must equal 12 * nside^2 for a power-of-two nside.
func NpixToNside(npix int) (int, error) {
	if npix <= 0 || npix%12 != 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidNpix, npix)
	}
	nside2 := npix / 12
	nside := 1
	for nside*nside < nside2 {
		nside <<= 1
	}
	if nside*nside != nside2 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidNpix, npix)
	}
	return nside, nil
}

// NpixToOrder returns the resolution order for a full-sky pixel count.
func NpixToOrder(npix int) (int, error) {
	nside, err := NpixToNside(npix)
	if err != nil {
		return 0, err
	}
	return Log2(nside)
}

// TileIndexArray returns the nested pixel offsets of a tile of width
// 2^shiftOrder, one offset per tile cell in row-major order. The offset at
// cell (y, x) is the bit-interleave of x and y, which is how the nested
// scheme numbers pixels within a block.
func TileIndexArray(shiftOrder int) ([]int, error) {
	if shiftOrder < 0 {
		return nil, fmt.Errorf("healpix: shift order must be non-negative, got %d", shiftOrder)
	}
	if shiftOrder > 14 {
		return nil, fmt.Errorf("healpix: shift order %d too large (max 14)", shiftOrder)
	}

	width := 1 << shiftOrder
	ipix := make([]int, width*width)
	for y := 0; y < width; y++ {
		for x := 0; x < width; x++ {
			ipix[y*width+x] = spreadBits(x) | spreadBits(y)<<1
		}
	}
	return ipix, nil
}

// spreadBits inserts a zero bit between each bit of v.
func spreadBits(v int) int {
	r := 0
	for i := 0; v != 0; i++ {
		r |= (v & 1) << (2 * i)
		v >>= 1
	}
	return r
}
