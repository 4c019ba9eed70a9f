package fab

import (
	"github.com/edp1096/toy-fab/pkg/util"
	"github.com/edp1096/toy-fab/pkg/wafer"
)

// Depth used to normalize the recess factor to [0,1].
const featureDepthScale = 200e-9

// Electroplater grows copper with a superconformal bottom-up-fill
// heuristic: an accelerator field accumulates in recesses and a
// suppressor field depletes, biasing the local rate toward feature
// bottoms. Phenomenological, not derived.
type Electroplater struct {
	BaseTool
	accelerator [][]float64
	suppressor  [][]float64
}

func NewElectroplater(w *wafer.Wafer) *Electroplater {
	p := &Electroplater{BaseTool: NewBaseTool("electroplater", w)}

	p.accelerator = make([][]float64, w.Resolution)
	p.suppressor = make([][]float64, w.Resolution)
	for row := 0; row < w.Resolution; row++ {
		p.accelerator[row] = make([]float64, w.Resolution)
		p.suppressor[row] = make([]float64, w.Resolution)
		for col := range p.suppressor[row] {
			p.suppressor[row][col] = 1.0
		}
	}
	return p
}

// PlateStep advances plating by dt: updates the additive fields, then
// deposits copper upward from every seed/copper surface at the local
// rate. Termination is polled externally from surface-height spread.
func (p *Electroplater) PlateStep(dt float64) {
	w := p.Wafer()
	params := p.Params()

	p.updateAdditives(dt)

	for col := 0; col < w.Resolution; col++ {
		surface := p.copperSurface(col)
		if surface < 0 {
			continue
		}

		depthFactor := p.depthFactor(col, surface)
		enhancement := 1.0 + params.PlatingEnhancement*depthFactor
		localRate := params.PlatingRateBase * enhancement *
			(p.accelerator[surface][col] / p.suppressor[surface][col])

		growthPixels := int(localRate * dt / w.Dy)
		for dy := 0; dy < growthPixels; dy++ {
			row := surface + dy + 1
			if row >= w.Resolution {
				break
			}
			if w.At(row, col) == wafer.Vacuum {
				w.Set(row, col, wafer.Copper)
			}
		}
	}
}

// updateAdditives accumulates accelerator in recesses and slowly
// depletes suppressor there. Both fields are clamped.
func (p *Electroplater) updateAdditives(dt float64) {
	w := p.Wafer()
	params := p.Params()

	for col := 0; col < w.Resolution; col++ {
		surface := p.copperSurface(col)
		if surface < 0 {
			continue
		}

		recess := p.depthFactor(col, surface)
		if recess > 0 {
			acc := p.accelerator[surface][col] + dt*recess/params.DiffusionLength
			p.accelerator[surface][col] = util.Clamp(acc, 0, 10)
			p.suppressor[surface][col] = util.Clamp(p.suppressor[surface][col]*0.99, 0.1, 1)
		}
	}
}

// copperSurface returns the topmost seed or plated copper row, -1 if none.
func (p *Electroplater) copperSurface(col int) int {
	w := p.Wafer()
	for row := w.Resolution - 1; row >= 0; row-- {
		if m := w.At(row, col); m == wafer.CopperSeed || m == wafer.Copper {
			return row
		}
	}
	return -1
}

// depthFactor reports how recessed a point is relative to the tallest
// surface in a 5-column neighborhood, normalized to [0,1].
func (p *Electroplater) depthFactor(col, row int) float64 {
	w := p.Wafer()
	const neighborhood = 5

	maxHeight := row
	for dc := -neighborhood; dc <= neighborhood; dc++ {
		c := col + dc
		if c < 0 || c >= w.Resolution {
			continue
		}
		if s := w.SurfaceRow(c); s > maxHeight {
			maxHeight = s
		}
	}

	depth := float64(maxHeight-row) * w.Dy
	return util.Clamp(depth/featureDepthScale, 0, 1)
}
