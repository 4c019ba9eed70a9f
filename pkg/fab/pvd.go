package fab

import "github.com/edp1096/toy-fab/pkg/wafer"

// PVDDepositor adds a layer on top surfaces at full thickness and on
// sidewall discontinuities at a reduced thickness set by step coverage.
// The sidewall pass reuses the per-column height model, so it is a
// projection of the real 3D geometry, not a volumetric deposit.
type PVDDepositor struct {
	BaseTool
}

func NewPVDDepositor(w *wafer.Wafer) *PVDDepositor {
	return &PVDDepositor{BaseTool: NewBaseTool("pvd-depositor", w)}
}

// DepositConformal deposits material with the given thickness and step
// coverage. Coverage 1.0 is perfectly conformal, 0.0 is line-of-sight
// only. Columns with no surface are silently skipped.
func (d *PVDDepositor) DepositConformal(material wafer.Material, thickness, stepCoverage float64) {
	w := d.Wafer()
	targetPixels := int(thickness / w.Dy)

	for col := 0; col < w.Resolution; col++ {
		surface := w.SurfaceRow(col)
		if surface < 0 {
			continue
		}

		// Top surface, full thickness
		for dy := 0; dy < targetPixels; dy++ {
			w.Set(surface+dy+1, col, material)
		}

		// Sidewalls, scaled by step coverage
		sidewallPixels := int(float64(targetPixels) * stepCoverage)
		if surface >= w.Resolution-10 {
			continue
		}

		d.depositSidewall(col, surface, col-1, sidewallPixels, material)
		d.depositSidewall(col, surface, col+1, sidewallPixels, material)
	}
}

// depositSidewall fills vacuum above surface when the neighbor column
// stands higher, up to the sidewall thickness or the height step.
func (d *PVDDepositor) depositSidewall(col, surface, neighborCol, sidewallPixels int, material wafer.Material) {
	w := d.Wafer()
	if neighborCol < 0 || neighborCol >= w.Resolution {
		return
	}

	neighborSurface := w.SurfaceRow(neighborCol)
	if neighborSurface <= surface {
		return
	}

	limit := sidewallPixels
	if step := neighborSurface - surface; step < limit {
		limit = step
	}
	for dy := 0; dy < limit; dy++ {
		row := surface + dy
		if w.At(row, col) == wafer.Vacuum {
			w.Set(row, col, material)
		}
	}
}
