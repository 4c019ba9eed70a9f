package mems

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edp1096/toy-fab/pkg/util"
)

func testBeam() *CantileverBeam {
	return NewCantileverBeam(200e-6, 20e-6, 2e-6, DefaultMaterial())
}

func TestCantileverLumpedProperties(t *testing.T) {
	b := testBeam()

	// k = 3EI/L^3 with I = wt^3/12
	require.InEpsilon(t, 0.8, b.K, 1e-9)
	require.Greater(t, b.Fn, 0.0)

	// halving the length stiffens the beam eightfold
	short := NewCantileverBeam(100e-6, 20e-6, 2e-6, DefaultMaterial())
	require.InEpsilon(t, 8.0, short.K/b.K, 1e-9)
	require.Greater(t, short.Fn, b.Fn)
}

func TestStaticDeflectionMatchesCompliance(t *testing.T) {
	b := testBeam()
	require.InEpsilon(t, 1e-6/b.K, b.StaticDeflection(1e-6), 1e-12)
}

func TestResidualStressCurlsCompressiveFilmDown(t *testing.T) {
	b := testBeam()
	deflection, radius := b.ResidualStressDeflection()
	require.Less(t, radius, 0.0, "compressive stress bends toward the substrate")
	require.Less(t, deflection, 0.0)
}

func TestPullInVoltageScalesWithGap(t *testing.T) {
	b := testBeam()
	v2 := b.PullInVoltage(2e-6)
	v4 := b.PullInVoltage(4e-6)
	require.Greater(t, v2, 0.0)
	require.InEpsilon(t, math.Sqrt(8), v4/v2, 1e-9, "Vpi goes as gap^1.5")
}

func TestFrequencyResponsePeaksAtResonance(t *testing.T) {
	b := testBeam()

	freqs := []float64{b.Fn / 2, b.Fn, 2 * b.Fn}
	disp := b.FrequencyResponse(freqs, 1e-9)
	require.Greater(t, disp[1], disp[0])
	require.Greater(t, disp[1], disp[2])

	// static limit is F/k
	static := b.FrequencyResponse([]float64{1e-3}, 1e-9)
	require.InEpsilon(t, 1e-9/b.K, static[0], 1e-3)
}

func TestStictionNumberGrowsWithLength(t *testing.T) {
	long := AnalyzeStiction(testBeam(), 2e-6, 5e-9)
	short := AnalyzeStiction(NewCantileverBeam(50e-6, 20e-6, 2e-6, DefaultMaterial()), 2e-6, 5e-9)

	require.Greater(t, long.StictionNumber, short.StictionNumber,
		"compliance wins over adhesion area as beams lengthen")
	require.Greater(t, long.CapillaryForce, 0.0)
	require.Greater(t, long.VdwForce, 0.0)
	require.Greater(t, long.CriticalLength, 0.0)
}

func TestReleaseTimeShrinksWithHoles(t *testing.T) {
	etcher := &ReleaseEtcher{Mat: DefaultMaterial()}

	solid := etcher.ReleaseTime(100e-6, 100e-6, 0)
	require.InEpsilon(t, 500.0, solid, 1e-9) // 50um undercut at 100nm/s

	holed := etcher.ReleaseTime(100e-6, 100e-6, 25)
	require.InEpsilon(t, 100.0, holed, 1e-9)
}

func TestOptimizeReleaseHolesMeetsTarget(t *testing.T) {
	etcher := &ReleaseEtcher{Mat: DefaultMaterial()}

	plan := etcher.OptimizeReleaseHoles(100e-6, 100e-6, 120, 2e-6)
	require.Equal(t, 25, plan.NumHoles)
	require.LessOrEqual(t, plan.ActualTime, 120.0)
	require.Greater(t, plan.AreaFraction, 0.0)
	require.Less(t, plan.AreaFraction, 0.1)
}

func testResonator(t *testing.T, damping DampingModel) *Resonator {
	t.Helper()
	geom := ResonatorGeometry{
		BeamLength:    200e-6,
		BeamWidth:     2e-6,
		BeamThickness: 2e-6,
		NumBeams:      4,
		AnchorGap:     2e-6,
		MassLength:    100e-6,
		MassWidth:     100e-6,
		MassThickness: 2e-6,
	}
	r, err := NewResonator(geom, SiliconResonatorMaterial(), damping)
	require.NoError(t, err)
	return r
}

func TestResonatorGeometryValidation(t *testing.T) {
	_, err := NewResonator(ResonatorGeometry{}, SiliconResonatorMaterial(), DefaultDamping())
	require.Error(t, err)

	geom := ResonatorGeometry{BeamLength: 100e-6, BeamWidth: 2e-6, BeamThickness: 2e-6, AnchorGap: 2e-6}
	_, err = NewResonator(geom, SiliconResonatorMaterial(), DefaultDamping())
	require.Error(t, err, "zero suspension beams")
}

func TestConstantQDamping(t *testing.T) {
	r := testResonator(t, DefaultDamping())

	q, err := r.QualityFactor()
	require.NoError(t, err)
	require.InDelta(t, 100.0, q, 1e-9)
}

func TestUnknownDampingModel(t *testing.T) {
	d := DefaultDamping()
	d.Type = "acoustic"
	r := testResonator(t, d)

	_, err := r.DampingCoefficient()
	require.Error(t, err)
	_, err = r.QualityFactor()
	require.Error(t, err)
	_, err = r.TransferFunction([]float64{1000})
	require.Error(t, err)
}

func TestSqueezeFilmDampsHarderThanSlide(t *testing.T) {
	r := testResonator(t, DefaultDamping())

	r.Damping.Type = DampingSqueezeFilm
	bSqueeze, err := r.DampingCoefficient()
	require.NoError(t, err)

	r.Damping.Type = DampingSlideFilm
	bSlide, err := r.DampingCoefficient()
	require.NoError(t, err)

	require.Greater(t, bSqueeze, bSlide)
}

func TestTransferFunctionPeaksAtResonance(t *testing.T) {
	r := testResonator(t, DefaultDamping())
	f0 := r.ResonantFrequency()

	mag, err := r.ResponseMagnitude([]float64{f0 / 2, f0, 2 * f0})
	require.NoError(t, err)
	require.Greater(t, mag[1], mag[0])
	require.Greater(t, mag[1], mag[2])

	// static limit is 1/k
	static, err := r.ResponseMagnitude([]float64{f0 / 1000})
	require.NoError(t, err)
	require.InEpsilon(t, 1/r.SpringConstant(), static[0], 1e-3)
}

func TestDuffingBackboneStiffens(t *testing.T) {
	r := testResonator(t, DefaultDamping())

	alpha := r.CubicStiffness()
	require.Greater(t, alpha, 0.0)

	w0 := r.AngularFrequency()
	amps := util.Linspace(0, 1e-6, 5)
	backbone := DuffingBackbone(amps, w0, alpha)

	require.InDelta(t, w0, backbone[0], 1e-6)
	for i := 1; i < len(backbone); i++ {
		require.Greater(t, backbone[i], backbone[i-1], "hardening spring shifts the peak up")
	}
}

func TestSensitivitySweepRestoresGeometry(t *testing.T) {
	r := testResonator(t, DefaultDamping())
	nominal := r.Geom.BeamLength

	values, freqs, err := r.SensitivitySweep("beam_length", 10, 5)
	require.NoError(t, err)
	require.Len(t, values, 5)
	require.Len(t, freqs, 5)
	require.Equal(t, nominal, r.Geom.BeamLength)

	// longer beams resonate lower
	require.Greater(t, freqs[0], freqs[4])

	_, _, err = r.SensitivitySweep("anchor_gap", 10, 5)
	require.Error(t, err)
}

func TestThermalActuatorOperatingPoint(t *testing.T) {
	a := NewThermalActuator()
	res := a.Analyze()

	require.InEpsilon(t, 1000.0, res.ResistanceTotal, 1e-9) // 2x 500 Ohm beams
	require.InEpsilon(t, 3e-3, res.Current, 1e-9)

	require.Greater(t, res.DeltaTAvg, 0.0)
	require.InEpsilon(t, 2.5, res.DeltaTMax/res.DeltaTAvg, 1e-9)

	require.Greater(t, res.Displacement, 0.0)
	require.Greater(t, res.SafetyFactor, 1.0)
	require.Greater(t, res.Bandwidth, 0.0)
}

func TestThermalActuatorVoltageSweep(t *testing.T) {
	a := NewThermalActuator()

	disp := a.VoltageSweep([]float64{1, 2, 3})
	require.InEpsilon(t, 4.0, disp[1]/disp[0], 1e-9, "displacement follows V^2")
	require.InEpsilon(t, 9.0, disp[2]/disp[0], 1e-9)
	require.Equal(t, 3.0, a.Voltage, "sweep restores the operating point")
}

func TestTemperatureProfileAnchorsAtAmbient(t *testing.T) {
	a := NewThermalActuator()

	xs, temps := a.TemperatureProfile(51)
	require.Len(t, xs, 51)
	require.InDelta(t, a.AmbientTemp, temps[0], 1e-6, "anchors are heat sinks")
	require.InDelta(t, a.AmbientTemp, temps[50], 1e-6)
}

func testAccelerometer(pressure float64) *Accelerometer {
	return NewAccelerometer(AccelerometerConfig{
		Length:    400e-6,
		Width:     400e-6,
		Thickness: 2e-6,
		Pressure:  pressure,
	})
}

func TestAccelerometerDefaults(t *testing.T) {
	a := testAccelerometer(0) // falls back to 1 atm

	require.Greater(t, a.Mass, 0.0)
	require.Greater(t, a.KSpring, 0.0)
	require.Greater(t, a.Fn, 0.0)
	require.Less(t, a.Q, 1.0, "large plates squeeze-film damp heavily in air")
}

func TestAccelerometerSensitivity(t *testing.T) {
	a := testAccelerometer(0)
	require.InEpsilon(t, a.Mass*9.81/a.KSpring, a.Sensitivity(), 1e-12)

	// quasi-static response equals the DC sensitivity
	disp, phase := a.FrequencyResponse([]float64{0.01})
	require.InEpsilon(t, a.Sensitivity(), disp[0], 0.01)
	require.InDelta(t, 0.0, phase[0], 5.0)
}

func TestAccelerometerStepResponseSettles(t *testing.T) {
	a := testAccelerometer(1.0) // near-vacuum, ringing dies within a few ms

	const (
		dt = 1e-6
		n  = 10001
	)
	accel := make([]float64, n)
	for i := range accel {
		accel[i] = 9.81
	}

	disp, vel := a.TimeResponse(accel, dt)
	require.Len(t, disp, n)
	require.InEpsilon(t, a.Sensitivity(), disp[n-1], 0.05)
	require.InDelta(t, 0.0, vel[n-1], a.Sensitivity()*a.OmegaN*0.05)
}
