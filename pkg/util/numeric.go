package util

import "math"

// Linspace returns n evenly spaced values covering [start, stop].
func Linspace(start, stop float64, n int) []float64 {
	if n <= 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean := Mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}

func MinMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// GaussianKernel builds a normalized Gaussian of the given sigma sampled
// at spacing dx, truncated at 5 sigma. Returns nil when the kernel would
// be too narrow to matter.
func GaussianKernel(sigma, dx float64) []float64 {
	halfWidth := int(5 * sigma / dx)
	if halfWidth < 3 {
		return nil
	}

	kernel := make([]float64, 2*halfWidth+1)
	sum := 0.0
	for i := range kernel {
		x := float64(i-halfWidth) * dx
		kernel[i] = math.Exp(-(x * x) / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// Convolve applies kernel to data keeping the input length. Edges reuse
// the nearest sample so total dose is approximately preserved.
func Convolve(data, kernel []float64) []float64 {
	if len(kernel) == 0 {
		return data
	}

	half := len(kernel) / 2
	out := make([]float64, len(data))
	for i := range data {
		acc := 0.0
		for k, kv := range kernel {
			j := i + k - half
			if j < 0 {
				j = 0
			}
			if j >= len(data) {
				j = len(data) - 1
			}
			acc += data[j] * kv
		}
		out[i] = acc
	}
	return out
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
