package tile

import "fmt"

// Meta identifies a single HiPS tile. Values are immutable once constructed.
type Meta struct {
	// Order is the HEALPix resolution order (log2 of nside).
	Order int

	// Ipix is the nested HEALPix pixel index of the tile.
	Ipix int

	// Format is the tile file format.
	Format Format

	// Frame is the sky coordinate frame of the survey.
	Frame Frame

	// Width is the tile width in pixels (a power of two).
	Width int
}

// Dir returns the directory bucket for the tile: pixel indices are grouped
// in directories of 10000, the standard HiPS server layout.
func (m Meta) Dir() int {
	return m.Ipix / 10000 * 10000
}

// Filename returns the tile file name, e.g. "Npix2.fits".
func (m Meta) Filename() string {
	return fmt.Sprintf("Npix%d.%s", m.Ipix, m.Format.Ext())
}

// Path returns the canonical tile path relative to the survey root,
// e.g. "Norder1/Dir0/Npix2.fits".
func (m Meta) Path() string {
	return fmt.Sprintf("Norder%d/Dir%d/%s", m.Order, m.Dir(), m.Filename())
}

// String implements fmt.Stringer.
func (m Meta) String() string {
	return fmt.Sprintf("tile order=%d ipix=%d format=%s", m.Order, m.Ipix, m.Format)
}
