package oxide

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func dryAnalyzer(t *testing.T, temperatureC, initialNm float64) *Analyzer {
	t.Helper()
	an, err := NewAnalyzer(Parameters{
		Ambient:      Dry,
		Temperature:  temperatureC + 273.15,
		Pressure:     1.0,
		Orientation:  Orient100,
		InitialOxide: initialNm,
	})
	require.NoError(t, err)
	return an
}

func TestNewAnalyzerValidation(t *testing.T) {
	_, err := NewAnalyzer(Parameters{Ambient: "plasma", Orientation: Orient100})
	require.Error(t, err)

	_, err = NewAnalyzer(Parameters{Ambient: Dry, Orientation: "<123>"})
	require.Error(t, err)
}

func TestThicknessStartsAtInitialOxide(t *testing.T) {
	an := dryAnalyzer(t, 1000, 25)
	require.InDelta(t, 25, an.Thickness(0), 1e-6, "tau offsets growth to the initial thickness")
}

func TestThicknessMonotonicGrowth(t *testing.T) {
	an := dryAnalyzer(t, 1000, 0)

	prev := 0.0
	for _, minutes := range []float64{10, 30, 60, 120, 480} {
		x := an.Thickness(minutes)
		require.Greater(t, x, prev)
		prev = x
	}
}

func TestTimeForThicknessInverts(t *testing.T) {
	an := dryAnalyzer(t, 1100, 10)

	target := 80.0
	minutes := an.TimeForThickness(target)
	require.InDelta(t, target, an.Thickness(minutes), 1e-6)
}

func TestWetGrowsFasterThanDry(t *testing.T) {
	dry := dryAnalyzer(t, 1000, 0)

	wet, err := NewAnalyzer(Parameters{
		Ambient:     Wet,
		Temperature: 1273.15,
		Pressure:    1.0,
		Orientation: Orient100,
	})
	require.NoError(t, err)

	require.Greater(t, wet.Thickness(60), dry.Thickness(60),
		"wet oxidation is much faster at the same temperature")
}

func TestPressureAcceleratesGrowth(t *testing.T) {
	atm := dryAnalyzer(t, 1000, 0)

	hipox, err := NewAnalyzer(Parameters{
		Ambient:     Dry,
		Temperature: 1273.15,
		Pressure:    10.0,
		Orientation: Orient100,
	})
	require.NoError(t, err)

	require.Greater(t, hipox.Thickness(60), atm.Thickness(60))
}

func TestOrientationFactor(t *testing.T) {
	base := dryAnalyzer(t, 1000, 0)

	o111, err := NewAnalyzer(Parameters{
		Ambient:     Dry,
		Temperature: 1273.15,
		Pressure:    1.0,
		Orientation: Orient111,
	})
	require.NoError(t, err)

	require.InDelta(t, 1.20, o111.ParabolicRateConstant()/base.ParabolicRateConstant(), 1e-9)
}

func TestRegimeClassification(t *testing.T) {
	an := dryAnalyzer(t, 1000, 0)

	tTransition := an.Coeffs.A * an.Coeffs.A / (4 * an.Coeffs.B)
	require.Equal(t, RegimeLinear, an.IdentifyRegime(tTransition*0.01))
	require.Equal(t, RegimeTransition, an.IdentifyRegime(tTransition))
	require.Equal(t, RegimeParabolic, an.IdentifyRegime(tTransition*100))
}

func TestGrowthRateDecreasesWithThickness(t *testing.T) {
	an := dryAnalyzer(t, 1000, 0)
	require.Greater(t, an.GrowthRate(1), an.GrowthRate(480),
		"parabolic regime slows as the diffusion path lengthens")
}

func TestSiliconConsumed(t *testing.T) {
	an := dryAnalyzer(t, 1000, 0)
	require.InDelta(t, 44.0, an.SiliconConsumed(100), 1e-9)
}
