package param

import (
	"fmt"
	"math/rand"

	"imageparam/pkg/spectral"
	"imageparam/pkg/tensor"
)

// initDamping divides the random initial coefficients so the first Forward
// produces a near-uniform image instead of structured noise.
const initDamping = 50

// FFTImage parameterizes an image as scaled coefficients of an inverse real
// 2D FFT. The latent buffer holds the real and imaginary parts of the
// non-redundant half-spectrum, laid out as (channels, height, width/2+1, 2)
// in row-major order. Each coefficient is multiplied by a per-frequency
// scale before the inverse transform, which compensates for the natural 1/f
// energy falloff of real-world images and gives every frequency band
// comparable gradient sensitivity. Without that rescaling, gradient ascent
// in frequency space degenerates into the same high-frequency noise as
// pixel-space optimization.
type FFTImage struct {
	height   int
	width    int
	channels int

	// coeffs is the sole trainable state, mutated only by the optimizer's
	// gradient step or replaced wholesale by SetImage.
	coeffs []float64

	// scale holds the per-frequency factors, height x (width/2+1),
	// computed once at construction and read-only afterwards.
	scale []float64
}

// NewFFTImage creates a frequency parameterization of the given size with
// small random initial coefficients. src may be nil to use the shared
// math/rand source.
func NewFFTImage(height, width, channels int, src *rand.Rand) *FFTImage {
	cols := spectral.HalfWidth(width)
	coeffs := make([]float64, channels*height*cols*2)
	for i := range coeffs {
		coeffs[i] = normFloat64(src) / initDamping
	}
	return &FFTImage{
		height:   height,
		width:    width,
		channels: channels,
		coeffs:   coeffs,
		scale:    spectral.SpectrumScale(height, width),
	}
}

// Forward rescales the latent coefficients by the spectrum scale, applies
// the inverse real 2D FFT per channel, and returns the resulting
// (channels, height, width) spatial image.
func (f *FFTImage) Forward() *tensor.Tensor {
	cols := spectral.HalfWidth(f.width)
	perChannel := f.height * cols

	out := tensor.New(f.channels, f.height, f.width)
	scaled := make([]complex128, perChannel)
	for c := 0; c < f.channels; c++ {
		base := c * perChannel * 2
		for i := 0; i < perChannel; i++ {
			s := f.scale[i]
			scaled[i] = complex(f.coeffs[base+2*i]*s, f.coeffs[base+2*i+1]*s)
		}
		copy(out.Channel(c), spectral.IRFFT2(scaled, f.height, f.width))
	}
	return out
}

// SetImage replaces the latent coefficients with the forward FFT of the
// given image divided by the spectrum scale, so that Forward reproduces the
// image exactly. The coefficient buffer is replaced, not updated in place:
// optimizer state bound to the previous buffer is invalid afterwards.
func (f *FFTImage) SetImage(img *tensor.Tensor) error {
	if img.Channels != f.channels || img.Height != f.height || img.Width != f.width {
		return fmt.Errorf("image dimensions %dx%dx%d do not match parameterization %dx%dx%d",
			img.Channels, img.Height, img.Width, f.channels, f.height, f.width)
	}

	cols := spectral.HalfWidth(f.width)
	perChannel := f.height * cols

	coeffs := make([]float64, f.channels*perChannel*2)
	for c := 0; c < f.channels; c++ {
		spectrum := spectral.RFFT2(img.Channel(c), f.height, f.width)
		base := c * perChannel * 2
		for i, v := range spectrum {
			coeffs[base+2*i] = real(v) / f.scale[i]
			coeffs[base+2*i+1] = imag(v) / f.scale[i]
		}
	}
	f.coeffs = coeffs
	return nil
}

// Parameters returns the flat latent coefficient buffer. The slice is the
// live buffer, not a copy.
func (f *FFTImage) Parameters() []float64 {
	return f.coeffs
}

// Backward computes the gradient of the latent coefficients given a
// gradient with respect to the Forward output. The adjoint of the inverse
// real FFT is the forward real FFT scaled by 1/(height*width) and by the
// conjugate-symmetry multiplicity of each half-spectrum column; the
// spectrum scale then chains through as an elementwise factor.
func (f *FFTImage) Backward(grad *tensor.Tensor) []float64 {
	cols := spectral.HalfWidth(f.width)
	perChannel := f.height * cols
	weights := spectral.AdjointWeights(f.width)
	norm := 1.0 / float64(f.height*f.width)

	out := make([]float64, len(f.coeffs))
	for c := 0; c < f.channels; c++ {
		spectrum := spectral.RFFT2(grad.Channel(c), f.height, f.width)
		base := c * perChannel * 2
		for i, v := range spectrum {
			w := weights[i%cols] * norm * f.scale[i]
			out[base+2*i] = real(v) * w
			out[base+2*i+1] = imag(v) * w
		}
	}
	return out
}

// Size returns the spatial dimensions of the parameterization.
func (f *FFTImage) Size() (height, width int) {
	return f.height, f.width
}
