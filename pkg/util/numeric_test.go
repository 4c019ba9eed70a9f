package util

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLinspace(t *testing.T) {
	v := Linspace(0, 10, 11)
	require.Len(t, v, 11)
	require.Equal(t, 0.0, v[0])
	require.Equal(t, 10.0, v[10])
	require.InDelta(t, 5.0, v[5], 1e-12)
}

func TestGaussianKernelNormalized(t *testing.T) {
	kernel := GaussianKernel(10, 1)
	require.NotNil(t, kernel)
	require.Equal(t, 1, len(kernel)%2, "kernel must have odd length")

	sum := 0.0
	for _, k := range kernel {
		sum += k
	}
	require.InDelta(t, 1.0, sum, 1e-9)
}

func TestGaussianKernelNegligibleSigma(t *testing.T) {
	require.Nil(t, GaussianKernel(0.1, 1), "sub-grid sigma should yield no kernel")
}

func TestConvolvePreservesArea(t *testing.T) {
	data := make([]float64, 200)
	for i := 80; i < 120; i++ {
		data[i] = 1.0
	}
	kernel := GaussianKernel(5, 1)
	require.NotNil(t, kernel)

	out := Convolve(data, kernel)
	require.Len(t, out, len(data))

	var before, after float64
	for i := range data {
		before += data[i]
		after += out[i]
	}
	require.InDelta(t, before, after, before*0.01, "edge-clamped convolution should conserve area away from edges")
}

func TestStdDev(t *testing.T) {
	require.Equal(t, 0.0, StdDev([]float64{3, 3, 3}))
	require.InDelta(t, math.Sqrt(2.0/3.0), StdDev([]float64{1, 2, 3}), 1e-12)
}

func TestClamp(t *testing.T) {
	require.Equal(t, 0.5, Clamp(0.5, 0, 1))
	require.Equal(t, 0.0, Clamp(-3, 0, 1))
	require.Equal(t, 1.0, Clamp(7, 0, 1))
	require.Equal(t, 5, ClampInt(9, 0, 5))
}
