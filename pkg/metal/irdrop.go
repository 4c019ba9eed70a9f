package metal

import (
	"fmt"

	"github.com/edp1096/toy-fab/pkg/matrix"
)

// PowerGridIRDrop solves a rows x cols resistive mesh with a supply at
// the (0,0) corner and a uniform current draw per node. Segment
// resistances come from the layer geometry and the wire lengths (um).
// Returns the voltage drop at each node in mV.
func (s *InterconnectSimulator) PowerGridIRDrop(layer MetalLayer, rows, cols int, hLength, vLength, totalCurrent float64) ([][]float64, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("invalid grid size %dx%d", rows, cols)
	}

	rHorizontal := s.LineResistance(layer, hLength, 300)
	rVertical := s.LineResistance(layer, vLength, 300)
	gH := 1 / rHorizontal
	gV := 1 / rVertical

	// The supply corner is the ground node; all other nodes get a
	// 1-based matrix index in row-major order.
	nodeIndex := func(r, c int) int {
		return r*cols + c // (0,0) maps to 0 = ground
	}

	size := rows*cols - 1
	if size == 0 {
		return [][]float64{{0}}, nil
	}

	mat, err := matrix.New(size)
	if err != nil {
		return nil, fmt.Errorf("building ir-drop mesh: %v", err)
	}
	defer mat.Destroy()

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				mat.StampConductance(nodeIndex(r, c), nodeIndex(r, c+1), gH)
			}
			if r+1 < rows {
				mat.StampConductance(nodeIndex(r, c), nodeIndex(r+1, c), gV)
			}
		}
	}

	// Uniform current draw, in A, sunk at every non-supply node
	iPerNode := totalCurrent * 1e-3 / float64(rows*cols)
	for idx := 1; idx <= size; idx++ {
		mat.AddRHS(idx, -iPerNode)
	}

	if err := mat.Solve(); err != nil {
		return nil, fmt.Errorf("solving ir-drop mesh: %v", err)
	}
	solution := mat.Solution()

	drop := make([][]float64, rows)
	for r := range drop {
		drop[r] = make([]float64, cols)
		for c := range drop[r] {
			idx := nodeIndex(r, c)
			if idx == 0 {
				continue // supply corner, zero drop
			}
			drop[r][c] = -solution[idx] * 1e3 // V below supply, in mV
		}
	}
	return drop, nil
}
