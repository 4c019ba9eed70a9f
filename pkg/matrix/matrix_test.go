package matrix

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResistorLadderSolve(t *testing.T) {
	// 1A into node 1, 1S between nodes 1-2, 1S from node 2 to ground:
	// v1 = 2V, v2 = 1V.
	m, err := New(2)
	require.NoError(t, err)
	defer m.Destroy()

	m.StampConductance(1, 2, 1.0)
	m.StampConductance(2, 0, 1.0)
	m.AddRHS(1, 1.0)

	require.NoError(t, m.Solve())

	sol := m.Solution()
	require.InDelta(t, 2.0, sol[1], 1e-9)
	require.InDelta(t, 1.0, sol[2], 1e-9)
}

func TestOutOfRangeStampsIgnored(t *testing.T) {
	m, err := New(1)
	require.NoError(t, err)
	defer m.Destroy()

	m.AddElement(5, 5, 1.0) // dropped
	m.AddRHS(3, 1.0)        // dropped

	m.StampConductance(1, 0, 2.0)
	m.AddRHS(1, 4.0)

	require.NoError(t, m.Solve())
	require.InDelta(t, 2.0, m.Solution()[1], 1e-9)
}

func TestClearResetsSystem(t *testing.T) {
	m, err := New(1)
	require.NoError(t, err)
	defer m.Destroy()

	m.StampConductance(1, 0, 1.0)
	m.AddRHS(1, 1.0)
	require.NoError(t, m.Solve())

	m.Clear()
	m.StampConductance(1, 0, 4.0)
	m.AddRHS(1, 2.0)
	require.NoError(t, m.Solve())
	require.InDelta(t, 0.5, m.Solution()[1], 1e-9)
}
