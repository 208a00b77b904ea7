// Package param implements differentiable, invertible image
// parameterizations for gradient-based image optimization. An image is
// represented not as raw pixels but as a latent buffer (Fourier
// half-spectrum coefficients or direct pixels) whose gradient updates
// produce visually smoother results than pixel-space optimization.
//
// The exported surface follows a small contract: Forward produces the
// current (channels, height, width) image, SetImage inverts the pipeline to
// load an image into latent space, Parameters exposes the sole trainable
// buffer, and Backward maps a gradient on the output image to a gradient on
// that buffer.
package param

import (
	"fmt"
	"math"
	"math/rand"

	"imageparam/pkg/tensor"
)

// Parameterization kinds accepted by New.
const (
	KindPixel     = "pixel"
	KindFrequency = "frequency"
)

// LogitEpsilon is the clamp applied before inverting the sigmoid in
// NaturalImage.SetImage. Values at exactly 0 or 1 are mapped to the clamp
// boundary rather than to infinity, so round-trip fidelity is only
// guaranteed for inputs strictly inside (LogitEpsilon, 1-LogitEpsilon).
const LogitEpsilon = 1e-4

// Parameterization is a latent image representation optimized by an
// external gradient loop.
//
// Parameters returns the trainable latent buffer itself, not a copy; the
// optimizer updates it in place. SetImage replaces that buffer, so any
// optimizer state bound to the old buffer (momentum, step counts) is
// invalidated and must be reset by the caller.
type Parameterization interface {
	// Forward produces the current image as a (channels, height, width)
	// tensor.
	Forward() *tensor.Tensor

	// SetImage loads an image into the latent buffer such that a
	// subsequent Forward reproduces it (within transform tolerance).
	SetImage(img *tensor.Tensor) error

	// Parameters returns the flat trainable latent buffer.
	Parameters() []float64

	// Backward maps a gradient with respect to the Forward output onto a
	// gradient with respect to Parameters, aligned index for index.
	Backward(grad *tensor.Tensor) []float64
}

// New constructs a bare parameterization of the given kind with random
// initial state. src may be nil, in which case the shared math/rand source
// is used.
func New(kind string, height, width, channels int, src *rand.Rand) (Parameterization, error) {
	if height <= 0 || width <= 0 || channels <= 0 {
		return nil, fmt.Errorf("invalid parameterization size %dx%dx%d", channels, height, width)
	}
	switch kind {
	case KindPixel:
		return NewPixelImage(height, width, channels, src), nil
	case KindFrequency:
		return NewFFTImage(height, width, channels, src), nil
	default:
		return nil, fmt.Errorf("unknown parameterization kind %q: must be %q or %q",
			kind, KindPixel, KindFrequency)
	}
}

// Sigmoid applies the logistic function elementwise, returning a new
// tensor with values in (0, 1).
func Sigmoid(t *tensor.Tensor) *tensor.Tensor {
	return t.Clone().Map(func(v float64) float64 {
		return 1 / (1 + math.Exp(-v))
	})
}

// Logit applies the inverse sigmoid elementwise, returning a new tensor.
// Inputs are clamped into [eps, 1-eps] first, so Logit(0) and Logit(1) are
// finite and equal to Logit(eps) and Logit(1-eps) respectively.
func Logit(t *tensor.Tensor, eps float64) *tensor.Tensor {
	return t.Clone().Map(func(v float64) float64 {
		if v < eps {
			v = eps
		}
		if v > 1-eps {
			v = 1 - eps
		}
		return math.Log(v / (1 - v))
	})
}

// normFloat64 draws a standard normal sample from src, or from the shared
// source when src is nil.
func normFloat64(src *rand.Rand) float64 {
	if src == nil {
		return rand.NormFloat64()
	}
	return src.NormFloat64()
}
