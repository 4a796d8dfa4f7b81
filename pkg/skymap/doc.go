// Package skymap converts full-sky HEALPix pixel arrays into HiPS tiles.
//
// A [Map] holds one value per pixel (scalar, for FITS tiles) or an RGB/RGBA
// tuple per pixel (for JPEG/PNG tiles), in nested HEALPix ordering.
//
// [Extract] cuts a single tile out of a map; [Convert] runs extraction over
// every tile covering the map and writes a complete HiPS tree, survey
// descriptor included, to a gocloud.dev blob bucket:
//
//	m := skymap.NewScalar(values)
//	err := skymap.Convert(ctx, m, 512, bucket, tile.FormatFITS, tile.FrameICRS, skymap.ConvertOptions{})
//
// Buckets work over local directories (fileblob), memory (memblob) and
// object stores, so the same code serves tests and production trees.
package skymap
