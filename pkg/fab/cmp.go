package fab

import (
	"github.com/edp1096/toy-fab/pkg/util"
	"github.com/edp1096/toy-fab/pkg/wafer"
)

// CMPPolisher removes material from topography peaks. Pressure is
// synthetic: proportional to a column's height above the mean surface.
// Copper removal gets a dishing boost proportional to local line width.
type CMPPolisher struct {
	BaseTool
}

func NewCMPPolisher(w *wafer.Wafer) *CMPPolisher {
	return &CMPPolisher{BaseTool: NewBaseTool("cmp-polisher", w)}
}

// PolishStep removes one timestep of material from every column surface
// at base rate x material selectivity x (1 + pressure).
func (c *CMPPolisher) PolishStep(dt float64) {
	w := c.Wafer()
	params := c.Params()

	heights := w.SurfaceHeights()
	pressure := c.pressureField(heights)

	for col := 0; col < w.Resolution; col++ {
		surface := w.SurfaceRow(col)
		if surface < 0 {
			continue
		}

		var selectivity float64
		switch w.At(surface, col) {
		case wafer.Copper:
			selectivity = params.CMPSelectivityCu
			// Wide copper areas dish more
			selectivity *= 1 + params.DishingFactor*c.widthFactor(col, surface)
		case wafer.Barrier:
			selectivity = params.CMPSelectivityBarrier
		case wafer.Oxide:
			selectivity = params.CMPSelectivityOxide
		default:
			selectivity = 0.5
		}

		removalRate := params.CMPRemovalRate * selectivity * (1 + pressure[col])
		removalPixels := int(removalRate * dt / w.Dy)

		for dy := 0; dy < removalPixels; dy++ {
			if surface-dy >= 0 {
				w.Set(surface-dy, col, wafer.Vacuum)
			}
		}
	}
}

// pressureField maps heights above the mean to a normalized [0,1] field.
func (c *CMPPolisher) pressureField(heights []float64) []float64 {
	mean := util.Mean(heights)

	pressure := make([]float64, len(heights))
	maxP := 0.0
	for i, h := range heights {
		if p := h - mean; p > 0 {
			pressure[i] = p
			if p > maxP {
				maxP = p
			}
		}
	}
	for i := range pressure {
		pressure[i] /= maxP + 1e-9
	}
	return pressure
}

// widthFactor counts consecutive copper cells around (row, col) and
// normalizes to 50 columns: wider lines dish more.
func (c *CMPPolisher) widthFactor(col, row int) float64 {
	w := c.Wafer()
	width := 1

	for dc := 1; dc < 50; dc++ {
		if col-dc < 0 || w.At(row, col-dc) != wafer.Copper {
			break
		}
		width++
	}
	for dc := 1; dc < 50; dc++ {
		if col+dc >= w.Resolution || w.At(row, col+dc) != wafer.Copper {
			break
		}
		width++
	}

	return util.Clamp(float64(width)/50.0, 0, 1)
}

// IsPlanar reports whether max-min surface height is below tolerance.
func (c *CMPPolisher) IsPlanar(tolerance float64) bool {
	min, max := util.MinMax(c.Wafer().SurfaceHeights())
	return max-min < tolerance
}

// EndpointReached reports whether at least fraction of the column
// surfaces expose oxide. Polishing past the dielectric endpoint only
// dishes the inlaid copper.
func (c *CMPPolisher) EndpointReached(fraction float64) bool {
	w := c.Wafer()

	oxide := 0
	for col := 0; col < w.Resolution; col++ {
		if surface := w.SurfaceRow(col); surface >= 0 && w.At(surface, col) == wafer.Oxide {
			oxide++
		}
	}
	return float64(oxide) >= fraction*float64(w.Resolution)
}
