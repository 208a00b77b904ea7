package param

import (
	"fmt"
	"math/rand"

	"imageparam/pkg/decorrelate"
	"imageparam/pkg/tensor"
)

// NaturalImage composes a latent parameterization with a fixed color
// decorrelation and a sigmoid squash, producing displayable images with
// values in [0, 1]. This is the externally visible contract of the whole
// subsystem: the optimization loop reads pixels through Forward, computes a
// loss, and backpropagates into the latent coefficients via Backward.
//
// A NaturalImage instance is single-threaded state: each instance belongs
// to exactly one optimization run, and concurrent runs must use independent
// instances.
type NaturalImage struct {
	parameterization Parameterization
	decorrelation    *decorrelate.Transform

	// lastSquashed caches the most recent Forward output for the sigmoid
	// derivative in Backward.
	lastSquashed *tensor.Tensor
}

// NewNaturalImage constructs a composite image of the given size and
// parameterization kind, decorrelated with the named preset ("klt" in the
// default configuration). channels must be 3, or 4 for an extra alpha plane
// that bypasses the decorrelation. src may be nil to use the shared
// math/rand source.
func NewNaturalImage(height, width, channels int, kind, preset string, src *rand.Rand) (*NaturalImage, error) {
	if channels != 3 && channels != 4 {
		return nil, fmt.Errorf("natural image requires 3 or 4 channels, got %d", channels)
	}
	d, err := decorrelate.New(preset)
	if err != nil {
		return nil, err
	}
	p, err := New(kind, height, width, channels, src)
	if err != nil {
		return nil, err
	}
	return &NaturalImage{parameterization: p, decorrelation: d}, nil
}

// NewNaturalImageOf wraps an existing parameterization with the named
// decorrelation preset.
func NewNaturalImageOf(p Parameterization, preset string) (*NaturalImage, error) {
	d, err := decorrelate.New(preset)
	if err != nil {
		return nil, err
	}
	return &NaturalImage{parameterization: p, decorrelation: d}, nil
}

// Forward produces the current image: latent forward pass, decorrelation
// into displayable RGB, then an elementwise sigmoid bounding the result
// into [0, 1].
func (n *NaturalImage) Forward() *tensor.Tensor {
	img := n.parameterization.Forward()
	img, err := n.decorrelation.Apply(img, false)
	if err != nil {
		// Channel counts are validated at construction.
		panic(fmt.Sprintf("natural image forward: %v", err))
	}
	n.lastSquashed = Sigmoid(img)
	return n.lastSquashed
}

// SetImage loads an image with values in (0, 1) into the latent buffer by
// inverting the pipeline: logit with an epsilon clamp, inverse
// decorrelation, then the parameterization's own inverse transform. Values
// at or beyond the [0,1] boundary are clamped rather than rejected, so the
// round trip is only faithful for values strictly inside the open interval.
// Round-trip accuracy through the decorrelation is bounded by how close the
// preset basis is to orthonormal, since the inverse direction uses the
// transpose.
func (n *NaturalImage) SetImage(img *tensor.Tensor) error {
	logits := Logit(img, LogitEpsilon)
	correlated, err := n.decorrelation.Apply(logits, true)
	if err != nil {
		return err
	}
	return n.parameterization.SetImage(correlated)
}

// Parameters returns the latent parameterization's trainable buffer.
func (n *NaturalImage) Parameters() []float64 {
	return n.parameterization.Parameters()
}

// Backward chains the gradient of the Forward output back onto the latent
// buffer: sigmoid derivative from the cached activation, the transpose
// decorrelation, then the parameterization's adjoint. Forward must have
// been called at least once since the last SetImage.
func (n *NaturalImage) Backward(grad *tensor.Tensor) []float64 {
	if n.lastSquashed == nil {
		panic("natural image backward called before forward")
	}
	chained := grad.Clone()
	for i, v := range chained.Data {
		s := n.lastSquashed.Data[i]
		chained.Data[i] = v * s * (1 - s)
	}
	chained, err := n.decorrelation.Apply(chained, true)
	if err != nil {
		panic(fmt.Sprintf("natural image backward: %v", err))
	}
	return n.parameterization.Backward(chained)
}

// Parameterization returns the underlying latent parameterization.
func (n *NaturalImage) Parameterization() Parameterization {
	return n.parameterization
}
