package wafer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestWafer(t *testing.T) *Wafer {
	t.Helper()
	return New(DefaultParameters(), 200)
}

func TestInitialLayerStack(t *testing.T) {
	w := newTestWafer(t)

	// Dy = 1.5um/200 = 7.5nm
	require.InDelta(t, 7.5e-9, w.Dy, 1e-15)

	require.Equal(t, Silicon, w.At(0, 100))
	require.Equal(t, Silicon, w.At(9, 100))
	require.Equal(t, Oxide, w.At(10, 100))
	require.Equal(t, Oxide, w.At(65, 100))
	require.Equal(t, Nitride, w.At(66, 100))
	require.Equal(t, Nitride, w.At(72, 100))
	require.Equal(t, Oxide, w.At(73, 100))
	require.Equal(t, Oxide, w.At(139, 100))
	require.Equal(t, Vacuum, w.At(140, 100))
}

func TestSurfaceRow(t *testing.T) {
	w := newTestWafer(t)

	for col := 0; col < w.Resolution; col++ {
		require.Equal(t, 139, w.SurfaceRow(col), "initial stack is flat")
	}

	w.Set(150, 42, Copper)
	require.Equal(t, 150, w.SurfaceRow(42))

	require.Equal(t, -1, w.SurfaceRow(-1))
	require.Equal(t, -1, w.SurfaceRow(w.Resolution))
}

func TestOutOfBoundsAccess(t *testing.T) {
	w := newTestWafer(t)

	require.Equal(t, Vacuum, w.At(-1, 0))
	require.Equal(t, Vacuum, w.At(0, 500))

	w.Set(-5, 3, Copper) // dropped
	w.Set(3, 500, Copper)
	require.Equal(t, 0, w.CountMaterial(Copper))
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	w := newTestWafer(t)
	snap := w.Snapshot()

	w.Set(139, 50, Copper)
	require.Equal(t, Oxide, snap[139][50], "snapshot must not alias the live grid")
}

func TestCountMaterial(t *testing.T) {
	w := newTestWafer(t)
	require.Equal(t, 10*200, w.CountMaterial(Silicon))
	require.Equal(t, 7*200, w.CountMaterial(Nitride))
}
