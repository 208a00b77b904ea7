// Package decorrelate implements the fixed linear color change-of-basis
// applied between an image parameterization and displayable RGB. Gradient
// updates in the decorrelated basis behave more like updates to
// statistically independent natural-image components than raw RGB channels.
//
// Two presets are available: "klt", the Karhunen-Loeve transform measured
// on ImageNet channel statistics, and "i1i2i3", the natural-image
// approximation of Ohta et al.
package decorrelate

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"imageparam/pkg/tensor"
)

// Preset names accepted by New.
const (
	PresetKLT    = "klt"
	PresetI1I2I3 = "i1i2i3"
)

// Transform applies a fixed 3x3 change of basis along the channel axis.
// The matrix is constant for the lifetime of the instance; the inverse
// direction uses its transpose, which is the exact inverse for an
// orthonormal basis and an approximation otherwise.
type Transform struct {
	matrix *mat.Dense
}

// kltMatrix builds the KLT basis measured on ImageNet. The raw matrix is
// divided by its single largest column L2 norm; this global normalization
// (rather than per-column) keeps the historical numeric scale that
// downstream consumers depend on, at the cost of the transpose being only
// an approximate inverse.
func kltMatrix() *mat.Dense {
	m := mat.NewDense(3, 3, []float64{
		0.26, 0.09, 0.02,
		0.27, 0.00, -0.05,
		0.27, -0.09, 0.03,
	})

	maxNorm := 0.0
	col := make([]float64, 3)
	for j := 0; j < 3; j++ {
		mat.Col(col, j, m)
		norm := floats.Norm(col, 2)
		if norm > maxNorm {
			maxNorm = norm
		}
	}
	m.Scale(1/maxNorm, m)
	return m
}

// i1i2i3Matrix builds the I1I2I3 basis of Ohta et al.
func i1i2i3Matrix() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1.0 / 3, 1.0 / 3, 1.0 / 3,
		1.0 / 2, 0, -1.0 / 2,
		-1.0 / 4, 1.0 / 2, -1.0 / 4,
	})
}

// New creates a decorrelation transform for the named preset. An
// unrecognized name is a configuration error and leaves no partial state.
func New(preset string) (*Transform, error) {
	switch preset {
	case PresetKLT:
		return &Transform{matrix: kltMatrix()}, nil
	case PresetI1I2I3:
		return &Transform{matrix: i1i2i3Matrix()}, nil
	default:
		return nil, fmt.Errorf("unknown decorrelation preset %q: must be %q or %q",
			preset, PresetKLT, PresetI1I2I3)
	}
}

// Apply transforms the channel axis of x by the preset matrix (or its
// transpose when inverse is true), leaving the spatial layout unchanged.
//
// A 4-channel input has its alpha plane split off first and re-attached
// bit-identical afterwards; the transform itself only ever applies to
// exactly 3 channels, and any other channel count after alpha removal is a
// caller contract violation.
func (t *Transform) Apply(x *tensor.Tensor, inverse bool) (*tensor.Tensor, error) {
	var alpha *tensor.Tensor
	if x.Channels == 4 {
		var err error
		x, alpha, err = x.SplitAlpha()
		if err != nil {
			return nil, err
		}
	}
	if x.Channels != 3 {
		return nil, fmt.Errorf("decorrelation requires 3 channels, got %d", x.Channels)
	}

	// View the CHW data as a 3 x (H*W) matrix and multiply along the
	// channel axis.
	spatial := x.Height * x.Width
	flat := mat.NewDense(3, spatial, x.Data)

	var basis mat.Matrix = t.matrix
	if inverse {
		basis = t.matrix.T()
	}

	var product mat.Dense
	product.Mul(basis, flat)

	out := tensor.New(3, x.Height, x.Width)
	copy(out.Data, product.RawMatrix().Data)

	if alpha != nil {
		return tensor.ConcatAlpha(out, alpha)
	}
	return out, nil
}

// Matrix returns a copy of the 3x3 basis matrix, primarily for inspection
// and tests.
func (t *Transform) Matrix() *mat.Dense {
	var m mat.Dense
	m.CloneFrom(t.matrix)
	return &m
}
