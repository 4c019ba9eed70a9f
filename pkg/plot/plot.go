// Package plot renders simulation results as PNG images and CSV
// tables under an output directory.
package plot

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Series is one labeled curve on a line chart.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

var seriesPalette = []drawing.Color{
	chart.ColorBlue,
	chart.ColorRed,
	chart.ColorGreen,
	{R: 255, G: 165, B: 0, A: 255},
	{R: 128, G: 0, B: 128, A: 255},
	chart.ColorCyan,
}

// LineChart renders the series to a PNG file, creating the output
// directory if needed.
func LineChart(path, xLabel, yLabel string, series ...Series) error {
	chartSeries := make([]chart.Series, len(series))
	for i, s := range series {
		chartSeries[i] = chart.ContinuousSeries{
			Name:    s.Name,
			XValues: s.X,
			YValues: s.Y,
			Style: chart.Style{
				StrokeColor: seriesPalette[i%len(seriesPalette)],
				StrokeWidth: 2.0,
			},
		}
	}

	graph := chart.Chart{
		Width:  800,
		Height: 500,
		XAxis: chart.XAxis{
			Name:  xLabel,
			Style: chart.Style{FontSize: 10.0},
		},
		YAxis: chart.YAxis{
			Name:  yLabel,
			Style: chart.Style{FontSize: 10.0},
		},
		Series: chartSeries,
	}
	if len(series) > 1 {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}

	buffer := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return errors.Wrap(err, "render chart")
	}
	return writeFile(path, buffer.Bytes())
}

// LogLineChart plots log10(Y) against X, for dopant profiles and other
// quantities spanning decades. Non-positive Y values are clipped to
// the floor value.
func LogLineChart(path, xLabel, yLabel string, floor float64, series ...Series) error {
	logged := make([]Series, len(series))
	for i, s := range series {
		y := make([]float64, len(s.Y))
		for j, v := range s.Y {
			if v < floor {
				v = floor
			}
			y[j] = math.Log10(v)
		}
		logged[i] = Series{Name: s.Name, X: s.X, Y: y}
	}
	return LineChart(path, xLabel, "log10 "+yLabel, logged...)
}

// WriteCSV writes a header row plus float rows.
func WriteCSV(path string, header []string, rows [][]float64) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create dir for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "write header")
	}
	record := make([]string, len(header))
	for i, row := range rows {
		if len(row) != len(header) {
			return fmt.Errorf("row %d has %d columns, header has %d", i, len(row), len(header))
		}
		for j, v := range row {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return errors.Wrapf(err, "write row %d", i)
		}
	}
	w.Flush()
	return errors.Wrap(w.Error(), "flush csv")
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create dir for %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
