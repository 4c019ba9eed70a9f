// Package matrix wraps the sparse LU solver for real-valued nodal
// problems such as the power-grid resistive mesh. Indices are 1-based;
// node 0 is ground and is not stored.
package matrix

import (
	"fmt"

	"github.com/edp1096/sparse"
)

type NodalMatrix struct {
	Size     int
	matrix   *sparse.Matrix
	rhs      []float64
	solution []float64
	config   *sparse.Configuration
}

func New(size int) (*NodalMatrix, error) {
	config := &sparse.Configuration{
		Real:           true,
		Complex:        false,
		Expandable:     true,
		Translate:      true,
		ModifiedNodal:  true,
		TiesMultiplier: 5,
		PrinterWidth:   140,
		Annotate:       0,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("creating sparse matrix: %v", err)
	}

	m := &NodalMatrix{
		Size:     size,
		matrix:   mat,
		rhs:      make([]float64, size+1), // 1-based indexing
		solution: make([]float64, size+1),
		config:   config,
	}
	m.setupElements()
	return m, nil
}

// setupElements preallocates every element up front. Factoring reorders
// the matrix internally; elements created before the first Factor stay
// addressable, so Clear and restamp cycles are safe.
func (m *NodalMatrix) setupElements() {
	for i := 1; i <= m.Size; i++ {
		for j := 1; j <= m.Size; j++ {
			m.matrix.GetElement(int64(i), int64(j))
		}
	}
}

func (m *NodalMatrix) AddElement(i, j int, value float64) {
	if i <= 0 || j <= 0 || i > m.Size || j > m.Size {
		return
	}
	m.matrix.GetElement(int64(i), int64(j)).Real += value
}

func (m *NodalMatrix) AddRHS(i int, value float64) {
	if i <= 0 || i > m.Size {
		return
	}
	m.rhs[i] += value
}

// StampConductance stamps a conductance between nodes i and j. Node 0
// is ground: only the diagonal of the non-ground node is touched.
func (m *NodalMatrix) StampConductance(i, j int, g float64) {
	if i > 0 {
		m.AddElement(i, i, g)
	}
	if j > 0 {
		m.AddElement(j, j, g)
	}
	if i > 0 && j > 0 {
		m.AddElement(i, j, -g)
		m.AddElement(j, i, -g)
	}
}

func (m *NodalMatrix) Clear() {
	m.matrix.Clear()
	for i := range m.rhs {
		m.rhs[i] = 0
	}
}

func (m *NodalMatrix) Solve() error {
	err := m.matrix.Factor()
	if err != nil {
		return fmt.Errorf("matrix factorization failed: %v", err)
	}

	m.solution, err = m.matrix.Solve(m.rhs)
	if err != nil {
		return fmt.Errorf("matrix solve failed: %v", err)
	}
	return nil
}

// Solution returns the solved node vector, 1-based; index 0 is unused.
func (m *NodalMatrix) Solution() []float64 {
	return m.solution
}

func (m *NodalMatrix) Destroy() {
	if m.matrix != nil {
		m.matrix.Destroy()
	}
}
