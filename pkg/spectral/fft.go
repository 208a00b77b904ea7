package spectral

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// RFFT2 performs the forward 2D Fourier transform of a real-valued image,
// returning the non-redundant half-spectrum as a row-major
// height x (width/2+1) array of complex coefficients.
//
// The transform runs a real FFT along each row and a complex FFT along each
// resulting column, exploiting the conjugate symmetry of real input to halve
// the stored coefficients. The transform is unnormalized: IRFFT2 applies the
// 1/(height*width) factor so the pair round-trips exactly.
//
// Parameters:
//   - data: input image as a 1D array (row-major order), length height*width
//   - height, width: spatial dimensions
//
// Returns:
//   - The half-spectrum coefficients as a 1D array of length
//     height*(width/2+1)
func RFFT2(data []float64, height, width int) []complex128 {
	cols := HalfWidth(width)
	result := make([]complex128, height*cols)

	// Row-wise real FFT: each row of W real samples becomes W/2+1
	// complex coefficients.
	rowFFT := fourier.NewFFT(width)
	rowOutput := make([]complex128, cols)
	for i := 0; i < height; i++ {
		rowFFT.Coefficients(rowOutput, data[i*width:(i+1)*width])
		copy(result[i*cols:(i+1)*cols], rowOutput)
	}

	// Column-wise complex FFT over the half-spectrum columns.
	colFFT := fourier.NewCmplxFFT(height)
	colInput := make([]complex128, height)
	colOutput := make([]complex128, height)
	for j := 0; j < cols; j++ {
		for i := 0; i < height; i++ {
			colInput[i] = result[i*cols+j]
		}
		colFFT.Coefficients(colOutput, colInput)
		for i := 0; i < height; i++ {
			result[i*cols+j] = colOutput[i]
		}
	}

	return result
}

// IRFFT2 performs the inverse of RFFT2, reconstructing a real-valued image
// of the given spatial size from its half-spectrum coefficients. The result
// is normalized by height*width so IRFFT2(RFFT2(x)) == x to floating-point
// accuracy, for even and odd widths alike.
func IRFFT2(coeffs []complex128, height, width int) []float64 {
	cols := HalfWidth(width)

	// Column-wise inverse complex FFT.
	work := make([]complex128, height*cols)
	colFFT := fourier.NewCmplxFFT(height)
	colInput := make([]complex128, height)
	colOutput := make([]complex128, height)
	for j := 0; j < cols; j++ {
		for i := 0; i < height; i++ {
			colInput[i] = coeffs[i*cols+j]
		}
		colFFT.Sequence(colOutput, colInput)
		for i := 0; i < height; i++ {
			work[i*cols+j] = colOutput[i]
		}
	}

	// Row-wise inverse real FFT, then normalize. Gonum's transforms are
	// unnormalized, so the round trip scales by height*width.
	result := make([]float64, height*width)
	rowFFT := fourier.NewFFT(width)
	rowOutput := make([]float64, width)
	norm := 1.0 / float64(height*width)
	for i := 0; i < height; i++ {
		rowFFT.Sequence(rowOutput, work[i*cols:(i+1)*cols])
		for j := 0; j < width; j++ {
			result[i*width+j] = rowOutput[j] * norm
		}
	}

	return result
}
