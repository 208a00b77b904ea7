package spectral

import (
	"math"
	"testing"
)

// TestFrequencyGridDC verifies that the zero-frequency (DC) entry has zero
// magnitude
func TestFrequencyGridDC(t *testing.T) {
	grid := FrequencyGrid(8, 8)
	if grid[0][0] != 0 {
		t.Errorf("Expected DC magnitude 0, got %f", grid[0][0])
	}
}

// TestFrequencyGridShape verifies the half-spectrum column counts for even
// and odd widths; odd widths retain one extra Nyquist-adjacent column
func TestFrequencyGridShape(t *testing.T) {
	testCases := []struct {
		height, width int
		expectedCols  int
	}{
		{8, 8, 5},  // even: 8/2+1
		{8, 9, 6},  // odd: 9/2+2
		{7, 6, 4},  // even: 6/2+1
		{5, 5, 4},  // odd: 5/2+2
		{32, 32, 17},
	}

	for _, tc := range testCases {
		grid := FrequencyGrid(tc.height, tc.width)
		if len(grid) != tc.height {
			t.Errorf("FrequencyGrid(%d,%d): expected %d rows, got %d",
				tc.height, tc.width, tc.height, len(grid))
		}
		for i, row := range grid {
			if len(row) != tc.expectedCols {
				t.Errorf("FrequencyGrid(%d,%d): expected %d columns in row %d, got %d",
					tc.height, tc.width, tc.expectedCols, i, len(row))
				break
			}
		}
	}
}

// TestFrequencyGridValues checks a few known magnitudes against the DFT
// sample-frequency definition
func TestFrequencyGridValues(t *testing.T) {
	grid := FrequencyGrid(4, 4)

	// Pure row frequency: (1,0) should be 1/4
	if math.Abs(grid[1][0]-0.25) > 1e-12 {
		t.Errorf("Expected grid[1][0]=0.25, got %f", grid[1][0])
	}

	// Pure column frequency: (0,1) should be 1/4
	if math.Abs(grid[0][1]-0.25) > 1e-12 {
		t.Errorf("Expected grid[0][1]=0.25, got %f", grid[0][1])
	}

	// Diagonal: (1,1) should be sqrt(2)/4
	expected := math.Sqrt(2) / 4
	if math.Abs(grid[1][1]-expected) > 1e-12 {
		t.Errorf("Expected grid[1][1]=%f, got %f", expected, grid[1][1])
	}
}

// TestSpectrumScalePositive verifies that every scale entry is finite and
// strictly positive, including the DC entry protected by the floor term
func TestSpectrumScalePositive(t *testing.T) {
	for _, size := range []struct{ h, w int }{{8, 8}, {7, 9}, {32, 32}, {16, 5}} {
		scale := SpectrumScale(size.h, size.w)

		expectedLen := size.h * HalfWidth(size.w)
		if len(scale) != expectedLen {
			t.Fatalf("SpectrumScale(%d,%d): expected length %d, got %d",
				size.h, size.w, expectedLen, len(scale))
		}

		for i, s := range scale {
			if math.IsNaN(s) || math.IsInf(s, 0) {
				t.Errorf("SpectrumScale(%d,%d)[%d] is not finite: %f", size.h, size.w, i, s)
			}
			if s <= 0 {
				t.Errorf("SpectrumScale(%d,%d)[%d] is not positive: %f", size.h, size.w, i, s)
			}
		}
	}
}

// TestSpectrumScaleDC checks that the DC entry uses the 1/max(h,w) floor:
// scale = sqrt(h*w) * max(h,w)
func TestSpectrumScaleDC(t *testing.T) {
	scale := SpectrumScale(8, 16)
	expected := math.Sqrt(8*16) * 16
	if math.Abs(scale[0]-expected) > 1e-9 {
		t.Errorf("Expected DC scale %f, got %f", expected, scale[0])
	}
}

// TestAdjointWeights verifies the conjugate-symmetry multiplicities for
// even and odd widths
func TestAdjointWeights(t *testing.T) {
	even := AdjointWeights(8)
	expectedEven := []float64{1, 2, 2, 2, 1}
	if len(even) != len(expectedEven) {
		t.Fatalf("Expected %d weights for width 8, got %d", len(expectedEven), len(even))
	}
	for i, w := range even {
		if w != expectedEven[i] {
			t.Errorf("AdjointWeights(8)[%d]: expected %f, got %f", i, expectedEven[i], w)
		}
	}

	odd := AdjointWeights(9)
	expectedOdd := []float64{1, 2, 2, 2, 2}
	if len(odd) != len(expectedOdd) {
		t.Fatalf("Expected %d weights for width 9, got %d", len(expectedOdd), len(odd))
	}
	for i, w := range odd {
		if w != expectedOdd[i] {
			t.Errorf("AdjointWeights(9)[%d]: expected %f, got %f", i, expectedOdd[i], w)
		}
	}
}
