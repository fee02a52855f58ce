package scratchoff

import "fmt"

// CoverageSampler measures how much of a raster has been erased. It keeps the
// detection policy (stride, threshold) independent from the rendering
// backend.
type CoverageSampler interface {
	// Coverage returns the fraction of sampled pixels whose alpha is exactly 0.
	Coverage(r Raster) (float64, error)
}

// StrideSampler reads the alpha byte of every Stride-th pixel.
type StrideSampler struct {
	Stride int
}

// Coverage implements CoverageSampler. The denominator is the nominal sample
// count len(pix)/(4·Stride), so a raster with no pixels reports 0.
func (s StrideSampler) Coverage(r Raster) (float64, error) {
	pix, err := r.Pixels()
	if err != nil {
		return 0, fmt.Errorf("read pixels: %w", err)
	}
	return ErasedFraction(pix, s.Stride), nil
}

// ErasedFraction samples the alpha channel of premultiplied RGBA bytes at the
// given pixel stride and returns the fraction of zeros.
func ErasedFraction(pix []byte, stride int) float64 {
	if stride < 1 {
		stride = 1
	}
	step := 4 * stride
	sampled := float64(len(pix)) / float64(step)
	if sampled == 0 {
		return 0
	}
	cleared := 0
	for i := 3; i < len(pix); i += step {
		if pix[i] == 0 {
			cleared++
		}
	}
	// Rasters smaller than one stride would otherwise exceed 1.
	return min(float64(cleared)/sampled, 1)
}
