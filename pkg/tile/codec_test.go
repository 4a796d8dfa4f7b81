package tile

import (
	"testing"
)

func TestFromPixelsLengthCheck(t *testing.T) {
	meta := Meta{Order: 1, Ipix: 0, Format: FormatFITS, Width: 2}
	if _, err := FromPixels(meta, make([]float64, 3)); err == nil {
		t.Error("expected error for short buffer")
	}
	if _, err := FromPixels(meta, make([]float64, 4)); err != nil {
		t.Errorf("FromPixels: %v", err)
	}

	meta.Format = FormatPNG
	if _, err := FromPixels(meta, make([]float64, 4)); err == nil {
		t.Error("expected error: png tile needs 4 channels")
	}
	if _, err := FromPixels(meta, make([]float64, 16)); err != nil {
		t.Errorf("FromPixels: %v", err)
	}
}

func TestPNGRoundTrip(t *testing.T) {
	meta := Meta{Order: 1, Ipix: 0, Format: FormatPNG, Width: 2}
	pix := []float64{
		10, 11, 12, 255,
		20, 21, 22, 255,
		30, 31, 32, 128,
		40, 41, 42, 0,
	}

	tl, err := FromPixels(meta, pix)
	if err != nil {
		t.Fatalf("FromPixels: %v", err)
	}
	raw, err := tl.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	back, err := New(meta, raw).Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(back) != len(pix) {
		t.Fatalf("decoded %d samples, want %d", len(back), len(pix))
	}
	for i := range pix {
		if back[i] != pix[i] {
			t.Errorf("sample %d: got %v, want %v", i, back[i], pix[i])
		}
	}
}

func TestFITSRoundTrip(t *testing.T) {
	meta := Meta{Order: 1, Ipix: 3, Format: FormatFITS, Width: 2}
	pix := []float64{1.5, -2.25, 3000, 0}

	tl, err := FromPixels(meta, pix)
	if err != nil {
		t.Fatalf("FromPixels: %v", err)
	}
	raw, err := tl.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	back, axes, err := DecodeFITS(raw)
	if err != nil {
		t.Fatalf("DecodeFITS: %v", err)
	}
	if len(axes) != 2 || axes[0] != 2 || axes[1] != 2 {
		t.Errorf("axes: got %v, want [2 2]", axes)
	}
	for i := range pix {
		if back[i] != pix[i] {
			t.Errorf("sample %d: got %v, want %v", i, back[i], pix[i])
		}
	}
}

func TestJPEGEncodeDecode(t *testing.T) {
	meta := Meta{Order: 1, Ipix: 0, Format: FormatJPG, Width: 2}
	pix := []float64{
		100, 100, 100,
		100, 100, 100,
		100, 100, 100,
		100, 100, 100,
	}

	tl, err := FromPixels(meta, pix)
	if err != nil {
		t.Fatalf("FromPixels: %v", err)
	}
	raw, err := tl.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// JPEG is lossy, only check geometry.
	back, err := New(meta, raw).Decode()
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(back) != len(pix) {
		t.Errorf("decoded %d samples, want %d", len(back), len(pix))
	}
}

func TestEncodeRawPassthrough(t *testing.T) {
	raw := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	tl := New(Meta{Order: 1, Ipix: 0, Format: FormatFITS, Width: 2}, raw)

	got, err := tl.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if string(got) != string(raw) {
		t.Error("raw payload not passed through unchanged")
	}
}
