// Package tensor provides the CHW float64 tensor used throughout the image
// parameterization pipeline. Data is stored in row-major order with a fixed
// axis order of {channel, height, width}; all axis manipulation happens
// through explicit index arithmetic rather than named-axis lookup.
package tensor

import (
	"fmt"
)

// Tensor represents a dense (channels, height, width) array of float64 values.
type Tensor struct {
	// Data holds the values in row-major CHW order:
	// Data[c*H*W + y*W + x] is the value of channel c at row y, column x.
	Data []float64

	// Channels is the number of channels (typically 3 for an RGB-like basis).
	Channels int

	// Height is the number of rows.
	Height int

	// Width is the number of columns.
	Width int
}

// New creates a zero-valued tensor with the given dimensions.
func New(channels, height, width int) *Tensor {
	return &Tensor{
		Data:     make([]float64, channels*height*width),
		Channels: channels,
		Height:   height,
		Width:    width,
	}
}

// FromData wraps an existing slice as a tensor. The slice is used directly,
// not copied. An error is returned if the length does not match the
// requested dimensions.
func FromData(data []float64, channels, height, width int) (*Tensor, error) {
	if len(data) != channels*height*width {
		return nil, fmt.Errorf("tensor data length %d does not match %dx%dx%d",
			len(data), channels, height, width)
	}
	return &Tensor{
		Data:     data,
		Channels: channels,
		Height:   height,
		Width:    width,
	}, nil
}

// At returns the value of channel c at row y, column x.
func (t *Tensor) At(c, y, x int) float64 {
	return t.Data[c*t.Height*t.Width+y*t.Width+x]
}

// Set assigns the value of channel c at row y, column x.
func (t *Tensor) Set(c, y, x int, v float64) {
	t.Data[c*t.Height*t.Width+y*t.Width+x] = v
}

// Channel returns the H*W sub-slice holding channel c. The slice shares
// storage with the tensor.
func (t *Tensor) Channel(c int) []float64 {
	plane := t.Height * t.Width
	return t.Data[c*plane : (c+1)*plane]
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	data := make([]float64, len(t.Data))
	copy(data, t.Data)
	return &Tensor{
		Data:     data,
		Channels: t.Channels,
		Height:   t.Height,
		Width:    t.Width,
	}
}

// Fill sets every element to v and returns the tensor for chaining.
func (t *Tensor) Fill(v float64) *Tensor {
	for i := range t.Data {
		t.Data[i] = v
	}
	return t
}

// Map applies f to every element in place and returns the tensor for
// chaining.
func (t *Tensor) Map(f func(float64) float64) *Tensor {
	for i, v := range t.Data {
		t.Data[i] = f(v)
	}
	return t
}

// SplitAlpha separates the 4th channel from a 4-channel tensor, returning
// the first three channels and the alpha plane. The returned tensors share
// storage with the input. An error is returned if the tensor does not have
// exactly 4 channels.
func (t *Tensor) SplitAlpha() (rgb, alpha *Tensor, err error) {
	if t.Channels != 4 {
		return nil, nil, fmt.Errorf("expected 4 channels for alpha split, got %d", t.Channels)
	}
	plane := t.Height * t.Width
	rgb = &Tensor{Data: t.Data[:3*plane], Channels: 3, Height: t.Height, Width: t.Width}
	alpha = &Tensor{Data: t.Data[3*plane:], Channels: 1, Height: t.Height, Width: t.Width}
	return rgb, alpha, nil
}

// ConcatAlpha appends an alpha plane to a 3-channel tensor, producing a new
// 4-channel tensor. The alpha data is copied bit-identically.
func ConcatAlpha(rgb, alpha *Tensor) (*Tensor, error) {
	if rgb.Channels != 3 {
		return nil, fmt.Errorf("expected 3 channels before alpha concat, got %d", rgb.Channels)
	}
	if alpha.Channels != 1 || alpha.Height != rgb.Height || alpha.Width != rgb.Width {
		return nil, fmt.Errorf("alpha plane dimensions %dx%dx%d do not match image %dx%d",
			alpha.Channels, alpha.Height, alpha.Width, rgb.Height, rgb.Width)
	}
	out := New(4, rgb.Height, rgb.Width)
	copy(out.Data, rgb.Data)
	copy(out.Data[3*rgb.Height*rgb.Width:], alpha.Data)
	return out, nil
}
