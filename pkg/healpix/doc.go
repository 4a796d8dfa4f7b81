// Package healpix provides index arithmetic for nested-scheme HEALPix maps.
//
// This package does not implement sky-coordinate math. It covers the small
// amount of pixel indexing the rest of the module needs:
//   - conversions between npix, nside and order
//   - the nested-order index permutation used to lay out a HiPS tile
//
// # Tile index array
//
// A HiPS tile of width w = 2^shiftOrder covers w*w consecutive pixels of a
// nested-ordered map. TileIndexArray returns, for each tile-local cell in
// row-major order, the nested pixel offset within that block:
//
//	ipix, _ := healpix.TileIndexArray(1)
//	// ipix == []int{0, 1, 2, 3} laid out as [[0 1] [2 3]]
//
// The array depends only on shiftOrder and can be reused across all tiles
// of the same width.
package healpix
