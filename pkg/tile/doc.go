// Package tile provides HiPS tile types: metadata, survey properties and
// the on-disk codecs.
//
// A HiPS survey stores one file per tile, organised by resolution order and
// nested pixel index:
//
//	Norder{order}/Dir{(ipix/10000)*10000}/Npix{ipix}.{ext}
//
// plus a "properties" descriptor at the tree root with key = value lines.
//
// # Types
//
//   - [Meta]: immutable tile coordinates (order, ipix, format, frame, width)
//     and the canonical relative path they imply
//   - [Tile]: Meta plus payload, either raw encoded bytes (as fetched from a
//     server) or a decoded pixel buffer (as produced locally)
//   - [Properties]: the survey descriptor, with tile URL construction for
//     remote surveys
//
// # Codecs
//
// FITS tiles are encoded with github.com/astrogo/fitsio, JPEG and PNG tiles
// with the standard library image codecs.
package tile
