package param

import (
	"fmt"
	"math/rand"

	"imageparam/pkg/tensor"
)

// PixelImage parameterizes an image directly in pixel space. It is the
// identity transform, included for API symmetry and as a baseline for
// comparing against the frequency parameterization.
type PixelImage struct {
	image *tensor.Tensor
}

// NewPixelImage creates a pixel parameterization with random initial values
// centered at 0.5. src may be nil to use the shared math/rand source.
func NewPixelImage(height, width, channels int, src *rand.Rand) *PixelImage {
	img := tensor.New(channels, height, width)
	for i := range img.Data {
		img.Data[i] = normFloat64(src)/10 + 0.5
	}
	return &PixelImage{image: img}
}

// NewPixelImageFrom creates a pixel parameterization seeded with an
// explicit image, which must have exactly 3 channels.
func NewPixelImageFrom(init *tensor.Tensor) (*PixelImage, error) {
	if init.Channels != 3 {
		return nil, fmt.Errorf("pixel seed image must have 3 channels, got %d", init.Channels)
	}
	return &PixelImage{image: init.Clone()}, nil
}

// Forward returns the stored image. The returned tensor shares storage with
// the trainable buffer.
func (p *PixelImage) Forward() *tensor.Tensor {
	return p.image
}

// SetImage replaces the stored image. As with FFTImage, the buffer identity
// changes, invalidating any optimizer state bound to the old buffer.
func (p *PixelImage) SetImage(img *tensor.Tensor) error {
	if img.Channels != p.image.Channels || img.Height != p.image.Height || img.Width != p.image.Width {
		return fmt.Errorf("image dimensions %dx%dx%d do not match parameterization %dx%dx%d",
			img.Channels, img.Height, img.Width, p.image.Channels, p.image.Height, p.image.Width)
	}
	p.image = img.Clone()
	return nil
}

// Parameters returns the flat pixel buffer. The slice is the live buffer,
// not a copy.
func (p *PixelImage) Parameters() []float64 {
	return p.image.Data
}

// Backward is the identity: the gradient on the output is the gradient on
// the pixel buffer.
func (p *PixelImage) Backward(grad *tensor.Tensor) []float64 {
	out := make([]float64, len(grad.Data))
	copy(out, grad.Data)
	return out
}
