package fab

import (
	"math/rand"

	"github.com/edp1096/toy-fab/pkg/wafer"
)

// Etch-stop survival threshold for nitride-target etches. Oxide-target
// etches use 1.0 so the stop layer always holds.
const nitrideSelectivity = 0.05

// PlasmaEtcher removes material column by column inside a lateral
// window, with an anisotropy-derived lateral bias and a probabilistic
// etch-stop passthrough. The RNG is injected so runs are reproducible.
type PlasmaEtcher struct {
	BaseTool
	rng *rand.Rand
}

func NewPlasmaEtcher(w *wafer.Wafer, seed int64) *PlasmaEtcher {
	return &PlasmaEtcher{
		BaseTool: NewBaseTool("plasma-etcher", w),
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// EtchFeature etches one timestep of a via or trench window centered at
// centerX. Returns true once the deepest removal in the window reached
// 95% of targetDepth.
func (e *PlasmaEtcher) EtchFeature(centerX, width, targetDepth, dt float64, target wafer.Material) bool {
	w := e.Wafer()
	params := e.Params()

	centerIdx := int(centerX / w.Dx)
	widthIdx := int(width / w.Dx)

	startCol := centerIdx - widthIdx/2
	endCol := centerIdx + widthIdx/2
	if startCol < 0 {
		startCol = 0
	}
	if endCol > w.Resolution {
		endCol = w.Resolution
	}

	etchRate := params.EtchRateOxide
	etchSelectivity := 1.0
	if target != wafer.Oxide {
		etchRate = params.EtchRateNitride
		etchSelectivity = nitrideSelectivity
	}

	etchPixels := int(etchRate * dt / w.Dy)
	lateralEtch := int(float64(etchPixels) * (1 - params.EtchAnisotropy))

	currentDepth := 0.0

	for col := startCol; col < endCol; col++ {
		surface := w.SurfaceRow(col)
		if surface < 0 {
			continue
		}

		// Etch downward
		for dy := 0; dy < etchPixels; dy++ {
			row := surface - dy
			if row < 0 {
				break
			}

			switch m := w.At(row, col); {
			case m == wafer.Nitride:
				// Etch stop: survives oxide-target etches outright, passes
				// through a nitride-target etch by the selectivity fraction
				if e.rng.Float64() > etchSelectivity {
					w.Set(row, col, wafer.Vacuum)
				}
			case m == target || m == wafer.Oxide:
				w.Set(row, col, wafer.Vacuum)
				if d := float64(dy) * w.Dy; d > currentDepth {
					currentDepth = d
				}
			}
		}

		// Lateral etching (slight)
		if lateralEtch > 0 && surface >= lateralEtch {
			e.etchSidewall(col-lateralEtch, surface, lateralEtch, target)
			e.etchSidewall(col+lateralEtch, surface, lateralEtch, target)
		}
	}

	return currentDepth >= targetDepth*0.95
}

func (e *PlasmaEtcher) etchSidewall(col, surface, lateralEtch int, target wafer.Material) {
	w := e.Wafer()
	if col < 0 || col >= w.Resolution {
		return
	}
	for dy := 0; dy < lateralEtch; dy++ {
		row := surface - dy
		if row < 0 {
			break
		}
		if w.At(row, col) == target {
			w.Set(row, col, wafer.Vacuum)
		}
	}
}
