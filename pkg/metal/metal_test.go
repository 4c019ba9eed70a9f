package metal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEffectiveResistivitySizeEffect(t *testing.T) {
	sim := NewInterconnectSimulator(Node7nm())

	m2 := sim.Node.Layers["M2"]
	m8 := sim.Node.Layers["M8"]

	rhoM2 := sim.EffectiveResistivity(m2, 300)
	rhoM8 := sim.EffectiveResistivity(m8, 300)

	require.Greater(t, rhoM2, m2.ResistivityBulk, "narrow lines scatter above bulk")
	require.Greater(t, rhoM8, m8.ResistivityBulk)
	require.Greater(t, rhoM2, 2*rhoM8, "50nm lines suffer far more than 1um lines")
}

func TestResistivityRisesWithTemperature(t *testing.T) {
	sim := NewInterconnectSimulator(Node7nm())
	m2 := sim.Node.Layers["M2"]

	require.Greater(t, sim.EffectiveResistivity(m2, 378), sim.EffectiveResistivity(m2, 300))
}

func TestLineResistanceScalesWithLength(t *testing.T) {
	sim := NewInterconnectSimulator(Node7nm())
	m2 := sim.Node.Layers["M2"]

	r10 := sim.LineResistance(m2, 10, 300)
	r100 := sim.LineResistance(m2, 100, 300)
	require.Greater(t, r10, 0.0)
	require.InEpsilon(t, 10.0, r100/r10, 1e-9)
}

func TestLineCapacitanceFringing(t *testing.T) {
	sim := NewInterconnectSimulator(Node7nm())
	m2 := sim.Node.Layers["M2"]

	base := sim.LineCapacitance(m2, 100, false)
	fringe := sim.LineCapacitance(m2, 100, true)
	require.Greater(t, base, 0.0)
	require.Greater(t, fringe, base)
}

func TestElmoreDelayGrowsQuadratically(t *testing.T) {
	sim := NewInterconnectSimulator(Node7nm())
	m2 := sim.Node.Layers["M2"]

	d10 := sim.ElmoreDelay(m2, 10, 0)
	d100 := sim.ElmoreDelay(m2, 100, 0)
	require.Greater(t, d10, 0.0)
	require.InEpsilon(t, 100.0, d100/d10, 1e-9, "R and C both scale with length")
}

func TestEMLifetimeCurrentAndTemperature(t *testing.T) {
	sim := NewInterconnectSimulator(Node7nm())
	m2 := sim.Node.Layers["M2"]

	require.Greater(t, sim.EMLifetime(m2, 0.5, 378), sim.EMLifetime(m2, 1.0, 378))
	require.Greater(t, sim.EMLifetime(m2, 1.0, 350), sim.EMLifetime(m2, 1.0, 400))
}

func TestMaxCurrentInvertsLifetime(t *testing.T) {
	sim := NewInterconnectSimulator(Node7nm())
	m2 := sim.Node.Layers["M2"]

	iMax := sim.MaxCurrent(m2, 10, 378)
	require.Greater(t, iMax, 0.0)
	require.InEpsilon(t, 10.0, sim.EMLifetime(m2, iMax, 378), 1e-6)
}

func TestOptimalRepeatersLongLine(t *testing.T) {
	sim := NewInterconnectSimulator(Node7nm())
	m2 := sim.Node.Layers["M2"]

	n, delay := sim.OptimalRepeaters(m2, 1000, 1000, 1.0)
	require.Greater(t, n, 0, "a 1mm minimum-pitch line needs repeaters")
	require.Greater(t, delay, 0.0)

	nShort, _ := sim.OptimalRepeaters(m2, 1, 1000, 1.0)
	require.Equal(t, 0, nShort)
}

func TestCrosstalkMillerFactors(t *testing.T) {
	sim := NewInterconnectSimulator(Node7nm())
	m2 := sim.Node.Layers["M2"]

	opp := sim.Crosstalk(m2, 100, SwitchOpposite)
	same := sim.Crosstalk(m2, 100, SwitchSame)
	static := sim.Crosstalk(m2, 100, SwitchStatic)

	require.Equal(t, 2.0, opp.MillerFactor)
	require.Equal(t, 0.0, same.MillerFactor)
	require.Equal(t, 1.0, static.MillerFactor)

	require.Greater(t, opp.CEffective, static.CEffective)
	require.Greater(t, static.CEffective, same.CEffective)

	require.Greater(t, opp.DelayRatio, 1.0)
	require.InDelta(t, 1.0, static.DelayRatio, 1e-12)
	require.Less(t, same.DelayRatio, 1.0)
}

func TestViaResistanceParallel(t *testing.T) {
	sim := NewInterconnectSimulator(Node7nm())

	r1 := sim.ViaResistance(40, 80, 1)
	r2 := sim.ViaResistance(40, 80, 2)
	require.Greater(t, r1, 0.0)
	require.InEpsilon(t, 2.0, r1/r2, 1e-9)
}

func TestScalingAnalysisDelayWorsens(t *testing.T) {
	points := ScalingAnalysis(90e-9)
	require.Len(t, points, 5)

	for i := 1; i < len(points); i++ {
		require.Greater(t, points[i].DelayPs, points[i-1].DelayPs,
			"wire RC dominates as cross-sections shrink")
		require.Greater(t, points[i].ResistanceKO, points[i-1].ResistanceKO)
	}
}

func TestPowerGridIRDrop(t *testing.T) {
	sim := NewInterconnectSimulator(Node7nm())
	m8 := sim.Node.Layers["M8"]

	drop, err := sim.PowerGridIRDrop(m8, 4, 4, 50, 50, 10)
	require.NoError(t, err)
	require.Len(t, drop, 4)

	require.Equal(t, 0.0, drop[0][0], "supply corner is the reference")
	require.Greater(t, drop[0][1], 0.0)
	require.Greater(t, drop[3][3], drop[0][1], "far corner sees the worst drop")

	_, err = sim.PowerGridIRDrop(m8, 0, 4, 50, 50, 10)
	require.Error(t, err)
}
