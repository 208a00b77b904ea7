// Package optimize provides a small gradient-ascent loop over an image
// parameterization. The loop owns no model: an Objective callback scores
// the current image and supplies the gradient of that score with respect to
// the pixels, and the optimizer backpropagates it into the latent buffer.
package optimize

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"imageparam/pkg/param"
	"imageparam/pkg/tensor"
)

// Objective scores an image for gradient ascent. It returns the scalar
// objective value and its gradient with respect to the image pixels, shaped
// like the image.
type Objective func(img *tensor.Tensor) (value float64, grad *tensor.Tensor)

// ProgressCallback receives the current step, total steps, and objective
// value during a run.
type ProgressCallback func(step, total int, value float64)

// Config holds the gradient-ascent hyperparameters.
type Config struct {
	// Steps is the number of ascent iterations.
	Steps int

	// LearningRate scales each gradient step.
	LearningRate float64

	// Momentum is the exponential decay factor of the velocity buffer;
	// zero disables momentum.
	Momentum float64
}

// DefaultConfig returns ascent parameters that behave reasonably for
// feature-visualization style objectives.
func DefaultConfig() Config {
	return Config{
		Steps:        256,
		LearningRate: 0.05,
		Momentum:     0.9,
	}
}

// Optimizer performs gradient ascent with momentum over a parameterization.
// The latent buffer exposed by Parameters is the only state it mutates.
type Optimizer struct {
	cfg      Config
	progress ProgressCallback

	// velocity is keyed to the parameter buffer it was accumulated for.
	// SetImage on the parameterization replaces that buffer, and the
	// stale velocity is discarded rather than applied to the new one.
	velocity    []float64
	velocityFor *float64
}

// New creates an optimizer with the given configuration.
func New(cfg Config) *Optimizer {
	return &Optimizer{cfg: cfg}
}

// SetProgressCallback registers a callback invoked after every step.
func (o *Optimizer) SetProgressCallback(cb ProgressCallback) {
	o.progress = cb
}

// Run performs the configured number of ascent steps on p against the
// objective and returns the final objective value.
func (o *Optimizer) Run(p param.Parameterization, objective Objective) (float64, error) {
	if o.cfg.Steps <= 0 {
		return 0, fmt.Errorf("optimizer requires a positive step count, got %d", o.cfg.Steps)
	}
	if o.cfg.LearningRate <= 0 {
		return 0, fmt.Errorf("optimizer requires a positive learning rate, got %g", o.cfg.LearningRate)
	}

	var value float64
	for step := 0; step < o.cfg.Steps; step++ {
		img := p.Forward()
		var grad *tensor.Tensor
		value, grad = objective(img)
		latentGrad := p.Backward(grad)

		o.step(p.Parameters(), latentGrad)

		if o.progress != nil {
			o.progress(step+1, o.cfg.Steps, value)
		}
	}
	return value, nil
}

// step applies one momentum ascent update to params in place.
func (o *Optimizer) step(params, grad []float64) {
	if o.velocity == nil || o.velocityFor != &params[0] || len(o.velocity) != len(params) {
		o.velocity = make([]float64, len(params))
		o.velocityFor = &params[0]
	}
	for i := range params {
		o.velocity[i] = o.cfg.Momentum*o.velocity[i] + grad[i]
		params[i] += o.cfg.LearningRate * o.velocity[i]
	}
}

// MatchImage returns an objective that is maximized when the image equals
// the target: the negated mean squared error and its pixel gradient. An
// image whose shape differs from the target scores zero with a zero
// gradient, since an Objective has no error channel to report the mismatch.
func MatchImage(target *tensor.Tensor) Objective {
	return func(img *tensor.Tensor) (float64, *tensor.Tensor) {
		grad := tensor.New(img.Channels, img.Height, img.Width)
		if img.Channels != target.Channels || img.Height != target.Height || img.Width != target.Width {
			return 0, grad
		}

		n := len(target.Data)
		sq := make([]float64, n)
		for i, v := range img.Data {
			diff := target.Data[i] - v
			sq[i] = diff * diff
			grad.Data[i] = 2 * diff / float64(n)
		}
		return -stat.Mean(sq, nil), grad
	}
}

// ChannelMean returns an objective that maximizes the mean activation of
// one channel.
func ChannelMean(channel int) Objective {
	return func(img *tensor.Tensor) (float64, *tensor.Tensor) {
		plane := img.Channel(channel)
		grad := tensor.New(img.Channels, img.Height, img.Width)
		g := grad.Channel(channel)
		for i := range g {
			g[i] = 1 / float64(len(plane))
		}
		return stat.Mean(plane, nil), grad
	}
}
