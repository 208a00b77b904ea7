// Package imgio converts between image files and the CHW tensors consumed
// by the parameterization pipeline. It exists so the library core stays
// free of file I/O: load an image, feed it to SetImage, optimize, read
// Forward, save.
package imgio

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	_ "image/jpeg"

	"imageparam/pkg/tensor"
)

// Load reads a PNG or JPEG file and converts it to a 3-channel CHW tensor
// with values scaled into [0, 1].
func Load(path string) (*tensor.Tensor, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("error decoding image %s: %w", path, err)
	}
	return FromImage(img), nil
}

// FromImage converts a decoded image to a 3-channel CHW tensor with values
// in [0, 1].
func FromImage(img image.Image) *tensor.Tensor {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	t := tensor.New(3, height, width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			t.Set(0, y, x, float64(r)/65535)
			t.Set(1, y, x, float64(g)/65535)
			t.Set(2, y, x, float64(b)/65535)
		}
	}
	return t
}

// ToImage converts a 3-channel CHW tensor to an 8-bit RGBA image, clamping
// values into [0, 1].
func ToImage(t *tensor.Tensor) (image.Image, error) {
	if t.Channels != 3 {
		return nil, fmt.Errorf("expected 3 channels for image conversion, got %d", t.Channels)
	}

	img := image.NewRGBA(image.Rect(0, 0, t.Width, t.Height))
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: quantize(t.At(0, y, x)),
				G: quantize(t.At(1, y, x)),
				B: quantize(t.At(2, y, x)),
				A: 255,
			})
		}
	}
	return img, nil
}

// Save writes a 3-channel CHW tensor to a PNG file, creating parent
// directories as needed.
func Save(path string, t *tensor.Tensor) error {
	img, err := ToImage(t)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating image file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("error encoding PNG: %w", err)
	}
	return nil
}

// quantize maps a [0,1] value to an 8-bit channel, clamping out-of-range
// input.
func quantize(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v*255 + 0.5)
}
