package spectral

import (
	"math"
	"math/cmplx"
	"testing"
)

// testSignal builds a deterministic smooth test image of the given size
func testSignal(height, width int) []float64 {
	data := make([]float64, height*width)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			data[y*width+x] = math.Sin(float64(3*x+2*y)/5) + 0.25*math.Cos(float64(x*y)/7)
		}
	}
	return data
}

// TestRFFT2Impulse verifies that the transform of an impulse at the origin
// is constant across the half-spectrum
func TestRFFT2Impulse(t *testing.T) {
	height, width := 4, 4
	data := make([]float64, height*width)
	data[0] = 1

	result := RFFT2(data, height, width)

	expectedLen := height * HalfWidth(width)
	if len(result) != expectedLen {
		t.Fatalf("Expected %d coefficients, got %d", expectedLen, len(result))
	}

	for i, v := range result {
		if cmplx.Abs(v-1) > 1e-12 {
			t.Errorf("Coefficient %d: expected 1, got %v", i, v)
		}
	}
}

// TestRFFT2DCTerm verifies that the DC coefficient equals the sum of all
// samples
func TestRFFT2DCTerm(t *testing.T) {
	height, width := 6, 8
	data := testSignal(height, width)

	sum := 0.0
	for _, v := range data {
		sum += v
	}

	result := RFFT2(data, height, width)
	if cmplx.Abs(result[0]-complex(sum, 0)) > 1e-9 {
		t.Errorf("Expected DC coefficient %f, got %v", sum, result[0])
	}
}

// TestRoundTrip verifies that IRFFT2(RFFT2(x)) reproduces the input for
// even and odd dimensions alike
func TestRoundTrip(t *testing.T) {
	for _, size := range []struct{ h, w int }{{8, 8}, {8, 9}, {7, 6}, {5, 5}, {32, 32}, {1, 4}, {4, 1}} {
		data := testSignal(size.h, size.w)

		result := IRFFT2(RFFT2(data, size.h, size.w), size.h, size.w)

		if len(result) != len(data) {
			t.Fatalf("Round trip %dx%d: expected length %d, got %d",
				size.h, size.w, len(data), len(result))
		}
		for i := range data {
			if math.Abs(result[i]-data[i]) > 1e-9 {
				t.Errorf("Round trip %dx%d: element %d differs: expected %f, got %f",
					size.h, size.w, i, data[i], result[i])
				break
			}
		}
	}
}

// TestIRFFT2Constant verifies that a lone DC coefficient reconstructs a
// constant image with the expected normalization
func TestIRFFT2Constant(t *testing.T) {
	height, width := 8, 8
	coeffs := make([]complex128, height*HalfWidth(width))
	coeffs[0] = complex(float64(height*width), 0)

	result := IRFFT2(coeffs, height, width)
	for i, v := range result {
		if math.Abs(v-1) > 1e-12 {
			t.Errorf("Element %d: expected 1, got %f", i, v)
		}
	}
}
