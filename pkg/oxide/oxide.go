// Package oxide implements the Deal-Grove thermal oxidation model:
// linear regime for thin films, parabolic for thick ones, with
// ambient, pressure, orientation and initial-oxide corrections.
package oxide

import (
	"fmt"
	"math"

	"github.com/edp1096/toy-fab/internal/consts"
)

type Ambient string

const (
	Dry   Ambient = "dry"
	Wet   Ambient = "wet"
	Steam Ambient = "steam"
)

type Orientation string

const (
	Orient100 Orientation = "<100>"
	Orient110 Orientation = "<110>"
	Orient111 Orientation = "<111>"
)

// Parameters for one oxidation run. Thicknesses in nm, time in minutes.
type Parameters struct {
	Temperature  float64 // K
	Ambient      Ambient
	Pressure     float64 // atm
	Orientation  Orientation
	InitialOxide float64 // nm
}

// Coefficients are the Deal-Grove A (nm), B (nm^2/min) and the
// initial-oxide time offset tau (min) solving x^2 + Ax = B(t + tau).
type Coefficients struct {
	A   float64
	B   float64
	Tau float64
}

type Analyzer struct {
	Params Parameters
	Coeffs Coefficients
}

func NewAnalyzer(params Parameters) (*Analyzer, error) {
	switch params.Ambient {
	case Dry, Wet, Steam:
	default:
		return nil, fmt.Errorf("ambient must be dry, wet or steam, got %q", params.Ambient)
	}
	switch params.Orientation {
	case Orient100, Orient110, Orient111:
	default:
		return nil, fmt.Errorf("orientation must be <100>, <110> or <111>, got %q", params.Orientation)
	}

	a := &Analyzer{Params: params}
	a.Coeffs = a.calculateCoefficients()
	return a, nil
}

// calculateCoefficients evaluates the empirical Arrhenius fits for the
// selected ambient, then applies pressure and orientation factors.
func (a *Analyzer) calculateCoefficients() Coefficients {
	t := a.Params.Temperature

	var eaB, eaA, b0, a0 float64
	switch a.Params.Ambient {
	case Dry:
		eaB, eaA = 1.23, 2.0
		b0, a0 = 7.72e7, 6.23e6
	case Wet:
		eaB, eaA = 0.78, 2.05
		b0, a0 = 3.86e8, 3.71e6
	default: // steam
		eaB, eaA = 0.78, 2.0
		b0, a0 = 5e8, 4e6
	}

	b := b0 * math.Exp(-eaB*consts.CHARGE/(consts.BOLTZMANN*t))
	aCoeff := a0 * math.Exp(-eaA*consts.CHARGE/(consts.BOLTZMANN*t))

	b *= a.Params.Pressure
	aCoeff *= a.Params.Pressure

	switch a.Params.Orientation {
	case Orient110:
		b *= 1.68
	case Orient111:
		b *= 1.20
	}

	tau := 0.0
	if xi := a.Params.InitialOxide; xi > 0 {
		tau = (xi*xi + aCoeff*xi) / b
	}

	return Coefficients{A: aCoeff, B: b, Tau: tau}
}

// Thickness returns the oxide thickness (nm) after time minutes.
func (a *Analyzer) Thickness(time float64) float64 {
	c := a.Coeffs
	discriminant := c.A*c.A + 4*c.B*(time+c.Tau)
	if discriminant < 0 {
		return 0
	}
	return math.Max(0, (-c.A+math.Sqrt(discriminant))/2)
}

// GrowthRate returns dx/dt (nm/min) at the given time.
func (a *Analyzer) GrowthRate(time float64) float64 {
	x := a.Thickness(time)
	if x < 1e-10 {
		return a.Coeffs.B / a.Coeffs.A // linear regime limit
	}
	return a.Coeffs.B / (2*x + a.Coeffs.A)
}

// TimeForThickness inverts the growth equation for a target nm.
func (a *Analyzer) TimeForThickness(target float64) float64 {
	c := a.Coeffs
	return math.Max(0, (target*target+c.A*target)/c.B-c.Tau)
}

type Regime string

const (
	RegimeLinear     Regime = "linear"
	RegimeTransition Regime = "transition"
	RegimeParabolic  Regime = "parabolic"
)

// IdentifyRegime classifies the growth at the given time against the
// transition time A^2/4B.
func (a *Analyzer) IdentifyRegime(time float64) Regime {
	tTransition := a.Coeffs.A * a.Coeffs.A / (4 * a.Coeffs.B)
	switch {
	case time < 0.1*tTransition:
		return RegimeLinear
	case time > 10*tTransition:
		return RegimeParabolic
	default:
		return RegimeTransition
	}
}

// LinearRateConstant is B/A (nm/min), valid for thin oxide.
func (a *Analyzer) LinearRateConstant() float64 {
	return a.Coeffs.B / a.Coeffs.A
}

// ParabolicRateConstant is B (nm^2/min), valid for thick oxide.
func (a *Analyzer) ParabolicRateConstant() float64 {
	return a.Coeffs.B
}

// SiliconConsumed returns substrate thickness consumed by a grown
// oxide, from the molar volume ratio.
func (a *Analyzer) SiliconConsumed(oxideThickness float64) float64 {
	return oxideThickness * consts.OXIDE_SI_RATIO
}

// Stress estimates the compressive film stress in MPa: thermal
// mismatch on cool-down plus a typical growth term. Very simplified.
func (a *Analyzer) Stress() float64 {
	const (
		deltaAlpha   = 0.5e-6 // 1/K, SiO2 - Si expansion mismatch
		eOxide       = 70e3   // MPa
		poisson      = 0.17
		growthStress = 300 // MPa, typical compressive
	)

	deltaT := a.Params.Temperature - 300
	thermal := eOxide / (1 - poisson) * deltaAlpha * deltaT
	return thermal + growthStress
}
