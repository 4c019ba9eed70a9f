// Package mosfet evaluates long-channel MOSFET I-V characteristics
// with a piecewise linear/saturation/subthreshold model, body effect,
// channel length modulation and a simplified DIBL term.
package mosfet

import (
	"fmt"
	"math"

	"github.com/edp1096/toy-fab/internal/consts"
)

type DeviceType string

const (
	NMOS DeviceType = "nmos"
	PMOS DeviceType = "pmos"
)

// Geometry of the device. Lengths in meters, doping in cm^-3.
type Geometry struct {
	ChannelLength   float64
	ChannelWidth    float64
	OxideThickness  float64
	JunctionDepth   float64
	SubstrateDoping float64
}

func (g Geometry) validate() error {
	if g.ChannelLength <= 0 || g.ChannelWidth <= 0 {
		return fmt.Errorf("channel length and width must be positive")
	}
	if g.OxideThickness <= 0 {
		return fmt.Errorf("oxide thickness must be positive")
	}
	if g.SubstrateDoping <= 0 {
		return fmt.Errorf("substrate doping must be positive")
	}
	return nil
}

// Parameters are the electrical model parameters.
type Parameters struct {
	DeviceType        DeviceType
	ThresholdVoltage  float64 // V
	Mobility          float64 // cm^2/V*s
	Lambda            float64 // channel length modulation, 1/V
	Gamma             float64 // body effect, V^0.5
	PhiF              float64 // Fermi potential, V
	SubthresholdSwing float64 // mV/decade
	Temperature       float64 // K
}

func DefaultParameters() Parameters {
	return Parameters{
		DeviceType:        NMOS,
		ThresholdVoltage:  0.5,
		Mobility:          400.0,
		Lambda:            0.05,
		Gamma:             0.4,
		PhiF:              0.35,
		SubthresholdSwing: 80.0,
		Temperature:       300.0,
	}
}

type Analyzer struct {
	Geom   Geometry
	Params Parameters

	cOx      float64 // F/m^2
	vThermal float64 // V
}

func NewAnalyzer(geom Geometry, params Parameters) (*Analyzer, error) {
	if err := geom.validate(); err != nil {
		return nil, err
	}
	if params.DeviceType != NMOS && params.DeviceType != PMOS {
		return nil, fmt.Errorf("device type must be nmos or pmos, got %q", params.DeviceType)
	}

	return &Analyzer{
		Geom:     geom,
		Params:   params,
		cOx:      consts.EPSILON0 * consts.EPSILON_OX / geom.OxideThickness,
		vThermal: consts.BOLTZMANN * params.Temperature / consts.CHARGE,
	}, nil
}

// DrainCurrent returns I_D in amps for the given terminal voltages.
func (a *Analyzer) DrainCurrent(vGS, vDS, vBS float64) float64 {
	vTh := a.ThresholdWithBodyEffect(vBS)

	sign := 1.0
	if a.Params.DeviceType == PMOS {
		sign = -1.0
	}
	vGSeff := sign * vGS
	vDSeff := sign * vDS

	vOD := vGSeff - vTh

	if vOD < -3*a.vThermal {
		return a.subthresholdCurrent(vGSeff, vDSeff, vTh)
	}
	if vOD <= 0 {
		return 0
	}

	beta := a.Params.Mobility * 1e-4 * a.cOx * (a.Geom.ChannelWidth / a.Geom.ChannelLength)

	var iD float64
	if vDSeff < vOD {
		iD = beta * (vOD*vDSeff - 0.5*vDSeff*vDSeff)
	} else {
		iD = 0.5 * beta * vOD * vOD
	}
	iD *= 1 + a.Params.Lambda*vDSeff // CLM

	return sign * iD
}

func (a *Analyzer) subthresholdCurrent(vGS, vDS, vTh float64) float64 {
	const i0 = 1e-12 // leakage scale (A)

	n := (a.Params.SubthresholdSwing * 1e-3) / (2.3 * a.vThermal)
	iSub := i0 * math.Exp((vGS-vTh)/(n*a.vThermal))

	return iSub * (1 + 0.1*vDS) // simplified DIBL
}

// ThresholdWithBodyEffect applies
// Vth = Vth0 + gamma*(sqrt(|2phiF - Vbs|) - sqrt(|2phiF|)).
func (a *Analyzer) ThresholdWithBodyEffect(vBS float64) float64 {
	p := a.Params
	body := p.Gamma * (math.Sqrt(math.Abs(2*p.PhiF-vBS)) - math.Sqrt(math.Abs(2*p.PhiF)))
	return p.ThresholdVoltage + body
}

// Transconductance g_m by central difference.
func (a *Analyzer) Transconductance(vGS, vDS, vBS float64) float64 {
	const dv = 1e-6
	return (a.DrainCurrent(vGS+dv, vDS, vBS) - a.DrainCurrent(vGS-dv, vDS, vBS)) / (2 * dv)
}

// OutputConductance g_ds by central difference.
func (a *Analyzer) OutputConductance(vGS, vDS, vBS float64) float64 {
	const dv = 1e-6
	return (a.DrainCurrent(vGS, vDS+dv, vBS) - a.DrainCurrent(vGS, vDS-dv, vBS)) / (2 * dv)
}

// IntrinsicGain g_m/g_ds; +Inf when the output conductance vanishes.
func (a *Analyzer) IntrinsicGain(vGS, vDS, vBS float64) float64 {
	gds := a.OutputConductance(vGS, vDS, vBS)
	if gds <= 0 {
		return math.Inf(1)
	}
	return a.Transconductance(vGS, vDS, vBS) / gds
}

// ExtractThresholdConstantCurrent finds Vgs where I_D = iRef * W/L by
// bisection at Vds = 0.1V.
func (a *Analyzer) ExtractThresholdConstantCurrent(iRef float64) float64 {
	iTarget := iRef * a.Geom.ChannelWidth / a.Geom.ChannelLength

	vLow, vHigh := 0.0, 2.0
	for i := 0; i < 50; i++ {
		vMid := (vLow + vHigh) / 2
		if math.Abs(a.DrainCurrent(vMid, 0.1, 0)) < iTarget {
			vLow = vMid
		} else {
			vHigh = vMid
		}
	}
	return (vLow + vHigh) / 2
}

// ExtractThresholdLinearExtrapolation extrapolates I_D to zero from the
// maximum-g_m point at the given Vds. Returns the extracted Vth and the
// Vgs of maximum g_m.
func (a *Analyzer) ExtractThresholdLinearExtrapolation(vDS float64) (float64, float64) {
	const points = 100

	vGSMax, gmMax := 0.0, 0.0
	for i := 0; i < points; i++ {
		v := 1.5 * float64(i) / float64(points-1)
		if gm := a.Transconductance(v, vDS, 0); gm > gmMax {
			gmMax = gm
			vGSMax = v
		}
	}
	if gmMax == 0 {
		return 0, vGSMax
	}

	iDMax := a.DrainCurrent(vGSMax, vDS, 0)
	return vGSMax - iDMax/gmMax, vGSMax
}
