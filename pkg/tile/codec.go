package tile

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/astrogo/fitsio"
)

// encodePixels serializes a sample buffer in the tile's on-disk format.
func encodePixels(meta Meta, pix []float64) ([]byte, error) {
	switch meta.Format {
	case FormatFITS:
		return encodeFITS(meta, pix)
	case FormatJPG:
		return encodeJPEG(meta, pix)
	case FormatPNG:
		return encodePNG(meta, pix)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, meta.Format)
	}
}

// decodePixels parses an encoded tile payload back into samples.
func decodePixels(meta Meta, raw []byte) ([]float64, error) {
	switch meta.Format {
	case FormatFITS:
		pix, _, err := DecodeFITS(raw)
		return pix, err
	case FormatJPG, FormatPNG:
		return decodeImage(meta, raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, meta.Format)
	}
}

func encodeFITS(meta Meta, pix []float64) ([]byte, error) {
	var buf bytes.Buffer
	f, err := fitsio.Create(&buf)
	if err != nil {
		return nil, fmt.Errorf("create fits: %w", err)
	}

	img := fitsio.NewImage(-64, []int{meta.Width, meta.Width})
	defer img.Close()

	data := make([]float64, len(pix))
	copy(data, pix)
	if err := img.Write(&data); err != nil {
		f.Close()
		return nil, fmt.Errorf("write fits image: %w", err)
	}
	if err := f.Write(img); err != nil {
		f.Close()
		return nil, fmt.Errorf("write fits hdu: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close fits: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeFITS parses the primary image HDU of a FITS byte payload into a
// float64 sample buffer, returning the buffer and the image axes.
func DecodeFITS(raw []byte) ([]float64, []int, error) {
	f, err := fitsio.Open(bytes.NewReader(raw))
	if err != nil {
		return nil, nil, fmt.Errorf("open fits: %w", err)
	}
	defer f.Close()

	hdu := f.HDU(0)
	img, ok := hdu.(fitsio.Image)
	if !ok {
		return nil, nil, fmt.Errorf("fits: primary HDU is not an image")
	}

	hdr := img.Header()
	axes := hdr.Axes()
	n := 1
	for _, ax := range axes {
		n *= ax
	}

	pix := make([]float64, n)
	switch hdr.Bitpix() {
	case 8:
		data := make([]uint8, n)
		if err := img.Read(&data); err != nil {
			return nil, nil, fmt.Errorf("read fits data: %w", err)
		}
		for i, v := range data {
			pix[i] = float64(v)
		}
	case 16:
		data := make([]int16, n)
		if err := img.Read(&data); err != nil {
			return nil, nil, fmt.Errorf("read fits data: %w", err)
		}
		for i, v := range data {
			pix[i] = float64(v)
		}
	case 32:
		data := make([]int32, n)
		if err := img.Read(&data); err != nil {
			return nil, nil, fmt.Errorf("read fits data: %w", err)
		}
		for i, v := range data {
			pix[i] = float64(v)
		}
	case 64:
		data := make([]int64, n)
		if err := img.Read(&data); err != nil {
			return nil, nil, fmt.Errorf("read fits data: %w", err)
		}
		for i, v := range data {
			pix[i] = float64(v)
		}
	case -32:
		data := make([]float32, n)
		if err := img.Read(&data); err != nil {
			return nil, nil, fmt.Errorf("read fits data: %w", err)
		}
		for i, v := range data {
			pix[i] = float64(v)
		}
	case -64:
		if err := img.Read(&pix); err != nil {
			return nil, nil, fmt.Errorf("read fits data: %w", err)
		}
	default:
		return nil, nil, fmt.Errorf("fits: unsupported bitpix %d", hdr.Bitpix())
	}

	return pix, axes, nil
}

func encodeJPEG(meta Meta, pix []float64) ([]byte, error) {
	img := toNRGBA(meta.Width, 3, pix)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func encodePNG(meta Meta, pix []float64) ([]byte, error) {
	img := toNRGBA(meta.Width, 4, pix)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// toNRGBA packs a channel-interleaved sample buffer into an NRGBA image.
// For 3-channel data alpha is fully opaque.
func toNRGBA(width, channels int, pix []float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, width))
	for y := 0; y < width; y++ {
		for x := 0; x < width; x++ {
			base := (y*width + x) * channels
			c := color.NRGBA{
				R: clampByte(pix[base]),
				G: clampByte(pix[base+1]),
				B: clampByte(pix[base+2]),
				A: 255,
			}
			if channels == 4 {
				c.A = clampByte(pix[base+3])
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func decodeImage(meta Meta, raw []byte) ([]float64, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", meta.Format, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	channels := meta.Format.Channels()

	pix := make([]float64, width*height*channels)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			base := (y*width + x) * channels
			pix[base] = float64(c.R)
			pix[base+1] = float64(c.G)
			pix[base+2] = float64(c.B)
			if channels == 4 {
				pix[base+3] = float64(c.A)
			}
		}
	}
	return pix, nil
}

func clampByte(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
