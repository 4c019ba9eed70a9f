// Package mems covers surface-micromachined structure mechanics:
// cantilever beams, stiction, sacrificial release, beam resonators,
// V-beam thermal actuators and spring-mass accelerometers.
package mems

import (
	"math"

	"github.com/edp1096/toy-fab/internal/consts"
)

// MaterialProperties for polysilicon MEMS films plus the environment.
type MaterialProperties struct {
	EPoly         float64 // Young's modulus (Pa)
	NuPoly        float64 // Poisson's ratio
	RhoPoly       float64 // density (kg/m^3)
	SigmaResidual float64 // residual stress (Pa), negative = compressive

	EtchRateOxide float64 // HF etch of sacrificial SiO2 (m/s)

	Temperature      float64 // K
	Pressure         float64 // Pa
	RelativeHumidity float64 // 0..1

	GammaWater   float64 // surface tension of water (N/m)
	ThetaContact float64 // contact angle (rad)
}

func DefaultMaterial() MaterialProperties {
	return MaterialProperties{
		EPoly:         160e9,
		NuPoly:        0.22,
		RhoPoly:       2330,
		SigmaResidual: -50e6,

		EtchRateOxide: 100e-9,

		Temperature:      300,
		Pressure:         consts.P_ATM,
		RelativeHumidity: 0.5,

		GammaWater:   0.072,
		ThetaContact: 0,
	}
}

// CantileverBeam with derived lumped properties computed at build time.
type CantileverBeam struct {
	L, W, T float64
	Mat     MaterialProperties

	I    float64 // second moment of area (m^4)
	Area float64 // cross-section (m^2)
	Mass float64 // kg
	K    float64 // tip spring constant (N/m)
	Fn   float64 // natural frequency (Hz)
	Q    float64 // quality factor, vacuum-typical
}

func NewCantileverBeam(length, width, thickness float64, mat MaterialProperties) *CantileverBeam {
	b := &CantileverBeam{L: length, W: width, T: thickness, Mat: mat}

	b.I = width * math.Pow(thickness, 3) / 12
	b.Area = width * thickness
	b.Mass = mat.RhoPoly * length * b.Area
	b.K = 3 * mat.EPoly * b.I / math.Pow(length, 3)
	b.Fn = 1 / (2 * math.Pi) * math.Sqrt(b.K/b.Mass)
	b.Q = 1000

	return b
}

// StaticDeflection of the tip under a point load (m).
func (b *CantileverBeam) StaticDeflection(force float64) float64 {
	return force * math.Pow(b.L, 3) / (3 * b.Mat.EPoly * b.I)
}

// ResidualStressDeflection returns tip deflection and radius of
// curvature from the film's residual stress (Stoney).
func (b *CantileverBeam) ResidualStressDeflection() (float64, float64) {
	radius := b.Mat.EPoly * b.T / (6 * b.Mat.SigmaResidual * (1 - b.Mat.NuPoly))
	deflection := b.L * b.L / (2 * radius)
	return deflection, radius
}

// PullInVoltage is the electrostatic collapse voltage over the given
// gap; pull-in occurs at one third of the gap.
func (b *CantileverBeam) PullInVoltage(gap float64) float64 {
	return math.Sqrt(8 * b.K * math.Pow(gap, 3) / (27 * consts.EPSILON0 * b.W * b.L))
}

// FrequencyResponse returns displacement amplitude (m) at each
// frequency for a harmonic force of the given amplitude.
func (b *CantileverBeam) FrequencyResponse(freqs []float64, forceAmplitude float64) []float64 {
	omegaN := 2 * math.Pi * b.Fn

	disp := make([]float64, len(freqs))
	for i, f := range freqs {
		omega := 2 * math.Pi * f
		ratio := omega / omegaN
		h := 1 / math.Sqrt(math.Pow(1-ratio*ratio, 2)+math.Pow(ratio/b.Q, 2))
		disp[i] = forceAmplitude / b.K * h
	}
	return disp
}
