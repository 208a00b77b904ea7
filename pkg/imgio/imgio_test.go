package imgio

import (
	"image"
	"image/color"
	"math"
	"path/filepath"
	"testing"

	"imageparam/pkg/tensor"
)

// TestFromImage verifies the image-to-tensor conversion on a constructed
// RGBA image
func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(1, 0, color.RGBA{G: 255, A: 255})
	img.SetRGBA(0, 1, color.RGBA{B: 255, A: 255})
	img.SetRGBA(1, 1, color.RGBA{R: 128, G: 128, B: 128, A: 255})

	tr := FromImage(img)
	if tr.Channels != 3 || tr.Height != 2 || tr.Width != 2 {
		t.Fatalf("Expected shape 3x2x2, got %dx%dx%d", tr.Channels, tr.Height, tr.Width)
	}

	if math.Abs(tr.At(0, 0, 0)-1) > 1e-3 || tr.At(1, 0, 0) != 0 || tr.At(2, 0, 0) != 0 {
		t.Errorf("Pixel (0,0) not converted to pure red: %f %f %f",
			tr.At(0, 0, 0), tr.At(1, 0, 0), tr.At(2, 0, 0))
	}
	if math.Abs(tr.At(1, 0, 1)-1) > 1e-3 {
		t.Errorf("Pixel (0,1) not converted to pure green: %f", tr.At(1, 0, 1))
	}
	if math.Abs(tr.At(2, 1, 0)-1) > 1e-3 {
		t.Errorf("Pixel (1,0) not converted to pure blue: %f", tr.At(2, 1, 0))
	}
}

// TestToImageChannelValidation verifies that only 3-channel tensors can be
// converted
func TestToImageChannelValidation(t *testing.T) {
	if _, err := ToImage(tensor.New(4, 2, 2)); err == nil {
		t.Errorf("Expected error for 4-channel tensor, got nil")
	}
}

// TestSaveLoadRoundTrip verifies that a tensor survives PNG encode/decode
// within 8-bit quantization tolerance
func TestSaveLoadRoundTrip(t *testing.T) {
	tr := tensor.New(3, 8, 8)
	for i := range tr.Data {
		tr.Data[i] = 0.05 + 0.9*math.Abs(math.Sin(float64(i)/5))
	}

	path := filepath.Join(t.TempDir(), "roundtrip.png")
	if err := Save(path, tr); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if back.Channels != 3 || back.Height != 8 || back.Width != 8 {
		t.Fatalf("Expected shape 3x8x8, got %dx%dx%d", back.Channels, back.Height, back.Width)
	}

	for i := range tr.Data {
		if math.Abs(back.Data[i]-tr.Data[i]) > 1.0/255+1e-6 {
			t.Errorf("Element %d differs beyond quantization: %f != %f", i, back.Data[i], tr.Data[i])
			break
		}
	}
}

// TestToImageClamping verifies that out-of-range values clamp instead of
// wrapping
func TestToImageClamping(t *testing.T) {
	tr := tensor.New(3, 1, 2)
	tr.Set(0, 0, 0, -0.5)
	tr.Set(0, 0, 1, 1.5)

	img, err := ToImage(tr)
	if err != nil {
		t.Fatalf("ToImage failed: %v", err)
	}

	r0, _, _, _ := img.At(0, 0).RGBA()
	r1, _, _, _ := img.At(1, 0).RGBA()
	if r0 != 0 {
		t.Errorf("Expected negative value to clamp to 0, got %d", r0)
	}
	if r1 != 0xffff {
		t.Errorf("Expected value above 1 to clamp to 255, got %d", r1)
	}
}

// TestLoadMissingFile verifies the error path
func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Errorf("Expected error for missing file, got nil")
	}
}
