// Package spectral implements the 2D frequency-domain machinery behind the
// FFT image parameterization: DFT sample-frequency grids, the per-frequency
// spectrum scale that equalizes gradient sensitivity across frequency bands,
// and the half-spectrum real 2D FFT pair built on Gonum.
package spectral

import (
	"math"
)

// fftFreq returns the standard DFT sample frequencies for n points:
// [0, 1, ..., ceil(n/2)-1, -floor(n/2), ..., -1] / n.
func fftFreq(n int) []float64 {
	freqs := make([]float64, n)
	half := (n + 1) / 2
	for i := 0; i < half; i++ {
		freqs[i] = float64(i) / float64(n)
	}
	for i := half; i < n; i++ {
		freqs[i] = float64(i-n) / float64(n)
	}
	return freqs
}

// HalfWidth returns the number of non-redundant columns in the half-spectrum
// of a real 2D FFT over width w.
func HalfWidth(w int) int {
	return w/2 + 1
}

// FrequencyGrid computes the 2D spectrum frequency magnitudes for a real
// input of the given spatial size. The result has height rows. Row
// frequencies use the full DFT sample-frequency sequence; column frequencies
// use only the first width/2+1 entries, or width/2+2 when width is odd so
// the extra Nyquist-adjacent term needed for exact inverse reconstruction is
// retained. Entry (i,j) is sqrt(fy[i]^2 + fx[j]^2); the DC entry (0,0) is
// exactly zero.
func FrequencyGrid(height, width int) [][]float64 {
	fy := fftFreq(height)

	cols := HalfWidth(width)
	if width%2 == 1 {
		cols++
	}
	fx := fftFreq(width)[:cols]

	grid := make([][]float64, height)
	for i := 0; i < height; i++ {
		row := make([]float64, cols)
		for j := 0; j < cols; j++ {
			row[j] = math.Sqrt(fy[i]*fy[i] + fx[j]*fx[j])
		}
		grid[i] = row
	}
	return grid
}

// SpectrumScale computes the per-frequency scale factors for the given
// spatial size, flattened row-major as height x (width/2+1). Each entry is
// sqrt(height*width) / max(magnitude, 1/max(height,width)); the floor term
// keeps the DC entry finite. Natural images carry most of their energy in
// low frequencies, so without this rescaling low-frequency coefficients
// would dominate every gradient step.
//
// Only the first width/2+1 grid columns are used so the scale aligns with
// the half-spectrum coefficient layout; the extra odd-width grid column of
// FrequencyGrid is a frequency-accounting detail that has no stored
// coefficient.
func SpectrumScale(height, width int) []float64 {
	grid := FrequencyGrid(height, width)

	maxDim := height
	if width > maxDim {
		maxDim = width
	}
	floor := 1.0 / float64(maxDim)
	norm := math.Sqrt(float64(height * width))

	cols := HalfWidth(width)
	scale := make([]float64, height*cols)
	for i := 0; i < height; i++ {
		for j := 0; j < cols; j++ {
			mag := grid[i][j]
			if mag < floor {
				mag = floor
			}
			scale[i*cols+j] = norm / mag
		}
	}
	return scale
}

// AdjointWeights returns the per-column conjugate-symmetry multiplicity of
// the half-spectrum: 1 for the self-conjugate columns (the DC column and,
// for even width, the Nyquist column), 2 for columns whose conjugate partner
// was dropped from the stored half. These weights turn the forward real FFT
// of a spatial gradient into the exact adjoint of IRFFT2.
func AdjointWeights(width int) []float64 {
	cols := HalfWidth(width)
	weights := make([]float64, cols)
	for j := range weights {
		weights[j] = 2
	}
	weights[0] = 1
	if width%2 == 0 {
		weights[cols-1] = 1
	}
	return weights
}
