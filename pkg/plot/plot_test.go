package plot

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edp1096/toy-fab/pkg/util"
	"github.com/edp1096/toy-fab/pkg/wafer"
)

func TestLineChartWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "chart.png")

	x := util.Linspace(0, 10, 50)
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = v * v
	}

	err := LineChart(path, "x", "y", Series{Name: "parabola", X: x, Y: y})
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	require.Equal(t, 800, cfg.Width)
	require.Equal(t, 500, cfg.Height)
}

func TestLogLineChartClipsFloor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.png")

	x := []float64{0, 1, 2, 3}
	y := []float64{1e20, 1e15, 0, -5} // zeros and negatives clip to the floor

	err := LogLineChart(path, "depth", "concentration", 1e12, Series{Name: "profile", X: x, Y: y})
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "table.csv")

	err := WriteCSV(path, []string{"x", "y"}, [][]float64{{0, 1}, {1, 2.5}})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "x,y\n0,1\n1,2.5\n", string(data))
}

func TestWriteCSVRowLengthMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.csv")
	err := WriteCSV(path, []string{"x", "y"}, [][]float64{{1, 2, 3}})
	require.Error(t, err)
}

func TestCrossSectionFlipsSubstrateToBottom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "section.png")

	// row 0 = silicon substrate, row 1 = vacuum above
	grid := [][]wafer.Material{
		{wafer.Silicon, wafer.Silicon},
		{wafer.Vacuum, wafer.Vacuum},
	}
	require.NoError(t, CrossSection(path, grid, 4))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, 8, img.Bounds().Dx())
	require.Equal(t, 8, img.Bounds().Dy())

	r, g, b, _ := img.At(0, 0).RGBA() // top-left pixel is the vacuum row
	require.Equal(t, uint32(0xFFFF), r)
	require.Equal(t, uint32(0xFFFF), g)
	require.Equal(t, uint32(0xFFFF), b)

	r, g, b, _ = img.At(0, 7).RGBA() // bottom is substrate gray
	require.Equal(t, uint32(0x8080), r)
	require.Equal(t, uint32(0x8080), g)
	require.Equal(t, uint32(0x8080), b)
}

func TestCrossSectionEmptyGrid(t *testing.T) {
	err := CrossSection(filepath.Join(t.TempDir(), "x.png"), nil, 1)
	require.Error(t, err)
}
