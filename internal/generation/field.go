package generation

import "math"

// Field is a 2D grid of normalized scalar samples, indexed [y][x]
type Field struct {
	Width, Height int
	Values        [][]float64
}

// NewField creates a zeroed field
func NewField(width, height int) Field {
	values := make([][]float64, height)
	for y := range values {
		values[y] = make([]float64, width)
	}
	return Field{Width: width, Height: height, Values: values}
}

// At returns the sample at local coordinates
func (f Field) At(x, y int) float64 {
	return f.Values[y][x]
}

// Map applies fn to every sample in place
func (f Field) Map(fn func(v float64) float64) {
	for y := 0; y < f.Height; y++ {
		row := f.Values[y]
		for x := range row {
			row[x] = fn(row[x])
		}
	}
}

// Crop returns a copy of the width×height window starting at (offX, offY)
func (f Field) Crop(offX, offY, width, height int) Field {
	out := NewField(width, height)
	for y := 0; y < height; y++ {
		copy(out.Values[y], f.Values[offY+y][offX:offX+width])
	}
	return out
}

// BlurRadius is the kernel half-width used for a given sigma.
func BlurRadius(sigma float64) int {
	if sigma <= 0 {
		return 0
	}
	return int(math.Ceil(3 * sigma))
}

func gaussianKernel(sigma float64) []float64 {
	r := BlurRadius(sigma)
	kernel := make([]float64, 2*r+1)
	sum := 0.0
	for i := -r; i <= r; i++ {
		w := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		kernel[i+r] = w
		sum += w
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// Blur returns a Gaussian-smoothed copy of f using a separable kernel.
// Samples past the edge clamp to the nearest edge sample, so only cells
// within BlurRadius(sigma) of the edge depend on the window; callers that
// need window-independent output sample a halo of that width and crop it.
func Blur(f Field, sigma float64) Field {
	if sigma <= 0 {
		return f.Crop(0, 0, f.Width, f.Height)
	}
	kernel := gaussianKernel(sigma)
	r := len(kernel) / 2

	horiz := NewField(f.Width, f.Height)
	for y := 0; y < f.Height; y++ {
		src := f.Values[y]
		for x := 0; x < f.Width; x++ {
			acc := 0.0
			for k := -r; k <= r; k++ {
				acc += src[clampIndex(x+k, f.Width)] * kernel[k+r]
			}
			horiz.Values[y][x] = acc
		}
	}

	out := NewField(f.Width, f.Height)
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			acc := 0.0
			for k := -r; k <= r; k++ {
				acc += horiz.Values[clampIndex(y+k, f.Height)][x] * kernel[k+r]
			}
			out.Values[y][x] = acc
		}
	}
	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
