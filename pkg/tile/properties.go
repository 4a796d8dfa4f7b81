package tile

import (
	"fmt"
	"strconv"
	"strings"
)

// Well-known survey property keys.
const (
	KeyTileFormat = "hips_tile_format"
	KeyTileWidth  = "hips_tile_width"
	KeyFrame      = "hips_frame"
	KeyServiceURL = "hips_service_url"
)

// Properties is a HiPS survey descriptor: an ordered set of key = value
// entries, written to the "properties" file at the survey root.
type Properties struct {
	keys    []string
	entries map[string]string

	// baseURL is the survey root URL, set when the descriptor was fetched
	// from a remote server. Falls back to hips_service_url for tile URLs.
	baseURL string
}

// NewProperties returns a descriptor with the given tile format, width and
// frame, the three keys a locally generated survey records.
func NewProperties(format Format, width int, frame Frame) *Properties {
	p := &Properties{entries: make(map[string]string)}
	p.Set(KeyTileFormat, string(format))
	p.Set(KeyTileWidth, strconv.Itoa(width))
	p.Set(KeyFrame, string(frame))
	return p
}

// ParseProperties parses a properties file. Lines are "key = value"; blank
// lines and lines starting with '#' are skipped.
func ParseProperties(data []byte) (*Properties, error) {
	p := &Properties{entries: make(map[string]string)}
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("tile: properties line %d: missing '=': %q", i+1, line)
		}
		p.Set(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return p, nil
}

// Get returns the value for key.
func (p *Properties) Get(key string) (string, bool) {
	v, ok := p.entries[key]
	return v, ok
}

// Set stores a key, preserving first-insertion order for encoding.
func (p *Properties) Set(key, value string) {
	if _, ok := p.entries[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.entries[key] = value
}

// SetBaseURL records the survey root URL for TileURL construction.
func (p *Properties) SetBaseURL(u string) {
	p.baseURL = strings.TrimSuffix(u, "/")
}

// BaseURL returns the survey root URL: the URL the descriptor was fetched
// from if known, else the hips_service_url property.
func (p *Properties) BaseURL() (string, error) {
	if p.baseURL != "" {
		return p.baseURL, nil
	}
	if u, ok := p.Get(KeyServiceURL); ok && u != "" {
		return strings.TrimSuffix(u, "/"), nil
	}
	return "", fmt.Errorf("tile: survey has no base URL (missing %s)", KeyServiceURL)
}

// TileURL returns the remote URL for a tile of this survey.
func (p *Properties) TileURL(m Meta) (string, error) {
	base, err := p.BaseURL()
	if err != nil {
		return "", err
	}
	return base + "/" + m.Path(), nil
}

// TileWidth returns the hips_tile_width property.
func (p *Properties) TileWidth() (int, error) {
	v, ok := p.Get(KeyTileWidth)
	if !ok {
		return 0, fmt.Errorf("tile: survey has no %s", KeyTileWidth)
	}
	width, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("tile: parse %s: %w", KeyTileWidth, err)
	}
	return width, nil
}

// TileFormat returns the first format listed in hips_tile_format.
func (p *Properties) TileFormat() (Format, error) {
	v, ok := p.Get(KeyTileFormat)
	if !ok {
		return "", fmt.Errorf("tile: survey has no %s", KeyTileFormat)
	}
	// Surveys may list several formats separated by spaces.
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return "", fmt.Errorf("tile: empty %s", KeyTileFormat)
	}
	return ParseFormat(fields[0])
}

// Frame returns the hips_frame property, defaulting to ICRS when absent.
func (p *Properties) Frame() (Frame, error) {
	v, ok := p.Get(KeyFrame)
	if !ok {
		return FrameICRS, nil
	}
	return ParseFrame(v)
}

// Encode renders the descriptor as a properties file.
func (p *Properties) Encode() []byte {
	var b strings.Builder
	for _, key := range p.keys {
		fmt.Fprintf(&b, "%s = %s\n", key, p.entries[key])
	}
	return []byte(b.String())
}
