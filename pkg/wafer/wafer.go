// Package wafer holds the 2D cross-section state shared by every
// damascene process tool. The grid is a per-column height model
// projected onto 2D for visualization; there is no volumetric
// consistency beyond "topmost cell is the surface".
package wafer

import "fmt"

// Material is a per-cell material tag.
type Material int

const (
	Vacuum Material = iota
	Silicon
	Oxide
	Nitride
	Barrier
	CopperSeed
	Copper
	Photoresist
)

var materialNames = map[Material]string{
	Vacuum:      "Vacuum",
	Silicon:     "Silicon",
	Oxide:       "Oxide",
	Nitride:     "Nitride",
	Barrier:     "Barrier",
	CopperSeed:  "CopperSeed",
	Copper:      "Copper",
	Photoresist: "Photoresist",
}

func (m Material) String() string {
	if name, ok := materialNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Material(%d)", int(m))
}

// Wafer is the mutable cross-section grid. cells[row][col], row 0 at the
// substrate bottom. Owned by one process run; never shared or serialized.
type Wafer struct {
	Params     ProcessParameters
	Resolution int
	Dx         float64 // lateral cell pitch (m)
	Dy         float64 // vertical cell pitch (m)
	Time       float64 // accumulated process time (s)
	Step       string  // current stage label

	cells [][]Material
}

func New(params ProcessParameters, resolution int) *Wafer {
	w := &Wafer{
		Params:     params,
		Resolution: resolution,
		Dx:         params.WaferWidth / float64(resolution),
		Dy:         params.WaferHeight / float64(resolution),
		Step:       "Initial",
	}

	w.cells = make([][]Material, resolution)
	for row := range w.cells {
		w.cells[row] = make([]Material, resolution)
	}
	w.initializeLayers()

	return w
}

// initializeLayers builds the starting stack: thin silicon substrate,
// bottom ILD oxide, nitride etch stop, top ILD oxide.
func (w *Wafer) initializeLayers() {
	yBottomOxide := int(w.Params.BottomOxide / w.Dy)
	yNitride := int((w.Params.BottomOxide + w.Params.NitrideEtchStop) / w.Dy)
	yTop := int((w.Params.BottomOxide + w.Params.NitrideEtchStop + w.Params.TopOxide) / w.Dy)

	w.fillRows(0, 10, Silicon)
	w.fillRows(10, yBottomOxide, Oxide)
	w.fillRows(yBottomOxide, yNitride, Nitride)
	w.fillRows(yNitride, yTop, Oxide)
}

func (w *Wafer) fillRows(from, to int, m Material) {
	if from < 0 {
		from = 0
	}
	if to > w.Resolution {
		to = w.Resolution
	}
	for row := from; row < to; row++ {
		for col := 0; col < w.Resolution; col++ {
			w.cells[row][col] = m
		}
	}
}

// At returns the material at (row, col). Out-of-bounds reads are Vacuum.
func (w *Wafer) At(row, col int) Material {
	if row < 0 || row >= w.Resolution || col < 0 || col >= w.Resolution {
		return Vacuum
	}
	return w.cells[row][col]
}

// Set writes the material at (row, col). Out-of-bounds writes are dropped.
func (w *Wafer) Set(row, col int, m Material) {
	if row < 0 || row >= w.Resolution || col < 0 || col >= w.Resolution {
		return
	}
	w.cells[row][col] = m
}

// SurfaceRow returns the row index of the topmost non-vacuum cell of a
// column, or -1 when the column is empty.
func (w *Wafer) SurfaceRow(col int) int {
	if col < 0 || col >= w.Resolution {
		return -1
	}
	for row := w.Resolution - 1; row >= 0; row-- {
		if w.cells[row][col] != Vacuum {
			return row
		}
	}
	return -1
}

// SurfaceHeights returns the wafer topography in meters, per column.
func (w *Wafer) SurfaceHeights() []float64 {
	heights := make([]float64, w.Resolution)
	for col := 0; col < w.Resolution; col++ {
		if row := w.SurfaceRow(col); row >= 0 {
			heights[col] = float64(row) * w.Dy
		}
	}
	return heights
}

// Snapshot copies the grid for stage-boundary visualization.
func (w *Wafer) Snapshot() [][]Material {
	snap := make([][]Material, w.Resolution)
	for row := range w.cells {
		snap[row] = make([]Material, w.Resolution)
		copy(snap[row], w.cells[row])
	}
	return snap
}

// CountMaterial returns the number of cells holding m.
func (w *Wafer) CountMaterial(m Material) int {
	count := 0
	for row := range w.cells {
		for col := range w.cells[row] {
			if w.cells[row][col] == m {
				count++
			}
		}
	}
	return count
}
