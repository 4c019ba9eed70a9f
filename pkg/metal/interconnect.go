package metal

import (
	"math"

	"github.com/edp1096/toy-fab/internal/consts"
)

// Cu surface-scattering parameters
const (
	meanFreePath = 40.0 // nm, Cu at room temperature
	specularity  = 0.5  // Cu with barrier liner
	gbReflection = 0.3  // grain boundary reflection coefficient
	rhoBarrier   = 200  // uOhm*cm, Ta/TaN
)

type InterconnectSimulator struct {
	Node ProcessNode
}

func NewInterconnectSimulator(node ProcessNode) *InterconnectSimulator {
	return &InterconnectSimulator{Node: node}
}

// EffectiveResistivity includes surface scattering (Fuchs-Sondheimer),
// grain boundary scattering (Mayadas-Shatzkes) and the barrier area
// loss. Returns uOhm*cm.
func (s *InterconnectSimulator) EffectiveResistivity(layer MetalLayer, temperature float64) float64 {
	const (
		t0      = 300.0
		alphaCu = 0.0039 // temperature coefficient
	)
	rhoBulk := layer.ResistivityBulk * (1 + alphaCu*(temperature-t0))

	wEff := layer.Width - 2*layer.BarrierThickness
	tEff := layer.Thickness - 2*layer.BarrierThickness

	fsCorrection := 1.0
	if wEff > 0 && tEff > 0 {
		fsCorrection = 1 + (3*meanFreePath/8)*((1-specularity)/wEff+(1-specularity)/tEff)
	}

	// Grain size ~ line width for damascene Cu
	alpha := 0.0
	if wEff > 0 {
		alpha = meanFreePath / wEff
	}
	gbCorrection := 1.0
	if alpha > 0 {
		if alpha < 10 {
			gbCorrection = (1 - 3*alpha/2 + 3*alpha*alpha -
				3*alpha*alpha*alpha*math.Log(1+1/alpha)) / (1 - alpha)
		} else {
			gbCorrection = 1 + gbReflection*alpha
		}
	}

	cuArea := 1e-6
	if wEff > 0 && tEff > 0 {
		cuArea = wEff * tEff
	}
	totalArea := layer.Width * layer.Thickness

	if cuArea <= 0 {
		return rhoBarrier // extremely narrow line
	}
	return rhoBulk * fsCorrection * gbCorrection * totalArea / cuArea
}

// LineResistance returns Ohms for a line of the given length in um.
func (s *InterconnectSimulator) LineResistance(layer MetalLayer, length, temperature float64) float64 {
	rhoEff := s.EffectiveResistivity(layer, temperature)
	rhoSI := rhoEff * 1e-8 // uOhm*cm -> Ohm*m

	wEff := math.Max(layer.Width-2*layer.BarrierThickness, 1)
	tEff := math.Max(layer.Thickness-2*layer.BarrierThickness, 1)
	area := wEff * tEff * 1e-18 // m^2

	return rhoSI * (length * 1e-6) / area
}

// LineCapacitance returns fF: ground plus coupling term, optionally
// with fringing corrections.
func (s *InterconnectSimulator) LineCapacitance(layer MetalLayer, length float64, includeFringing bool) float64 {
	h := layer.Thickness
	w := layer.Width
	sp := layer.Spacing()
	k := layer.KDielectric

	// fF/um to the plane below
	cGround := consts.EPSILON0 * k * (w * 1e-9) / (h * 1e-9) * 1e15 / 1e6
	if includeFringing {
		cGround *= 1 + (2*h/(math.Pi*w))*math.Log(1+w/h)
	}

	cCoupling := 0.0
	if sp > 0 {
		cCoupling = consts.EPSILON0 * k * (layer.Thickness * 1e-9) / (sp * 1e-9) * 1e15 / 1e6
		if includeFringing {
			cCoupling *= 1 + sp/layer.Thickness
		}
	}

	return (cGround + cCoupling) * length
}

// ElmoreDelay returns ps for a distributed RC line plus load.
func (s *InterconnectSimulator) ElmoreDelay(layer MetalLayer, length, loadCap float64) float64 {
	r := s.LineResistance(layer, length, 300)
	c := s.LineCapacitance(layer, length, true) + loadCap

	// Distributed line: 0.38 RC (0.69 RC would be the lumped value)
	return 0.38 * r * c // Ohm * fF = ps
}

// EMLifetime returns the Black's-equation median time to failure in
// years at the given DC current (mA) and temperature (K).
func (s *InterconnectSimulator) EMLifetime(layer MetalLayer, current, temperature float64) float64 {
	areaCm2 := layer.Width * layer.Thickness * 1e-14
	jMA := (current * 1e-3) / areaCm2 / 1e6

	ea := s.Node.EMActivationEnergy
	n := s.Node.EMExponent

	// Normalized so max-density at 400K gives about a 10 year MTF
	aNorm := 10 * math.Pow(s.Node.MaxCurrentDensity, n) / math.Exp(ea/(consts.BOLTZEV*400))

	return aNorm * math.Pow(jMA, -n) * math.Exp(ea/(consts.BOLTZEV*temperature))
}

// MaxCurrent inverts Black's equation for a target lifetime, in mA.
func (s *InterconnectSimulator) MaxCurrent(layer MetalLayer, lifetimeYears, temperature float64) float64 {
	ea := s.Node.EMActivationEnergy
	n := s.Node.EMExponent

	aNorm := 10 * math.Pow(s.Node.MaxCurrentDensity, n) / math.Exp(ea/(consts.BOLTZEV*400))
	jMA := math.Pow(aNorm*math.Exp(ea/(consts.BOLTZEV*temperature))/lifetimeYears, 1/n)

	areaCm2 := layer.Width * layer.Thickness * 1e-14
	return jMA * 1e6 * areaCm2 * 1e3
}

// OptimalRepeaters returns the repeater count from Bakoglu's optimum
// segment length and the resulting total delay in ps.
func (s *InterconnectSimulator) OptimalRepeaters(layer MetalLayer, length, driverR, driverC float64) (int, float64) {
	rWire := s.LineResistance(layer, 1.0, 300) // Ohm/um
	cWire := s.LineCapacitance(layer, 1.0, true)

	lOpt := math.Sqrt((driverR * driverC) / (rWire * cWire))

	nRepeaters := int(length/lOpt) - 1
	if nRepeaters < 0 {
		nRepeaters = 0
	}

	lSegment := length
	if nRepeaters > 0 {
		lSegment = length / float64(nRepeaters+1)
	}

	rSegment := rWire * lSegment
	cSegment := cWire * lSegment
	delayPerSegment := 0.69 * (driverR*(driverC+cSegment) + rSegment*cSegment/2)

	return nRepeaters, delayPerSegment * float64(nRepeaters+1)
}

// SwitchingPattern selects the aggressor activity for crosstalk analysis.
type SwitchingPattern int

const (
	SwitchOpposite SwitchingPattern = iota
	SwitchSame
	SwitchStatic
)

type CrosstalkResult struct {
	CGround      float64 // fF
	CCoupling    float64 // fF
	MillerFactor float64
	CEffective   float64 // fF
	DelayPs      float64
	DelayRatio   float64
}

// Crosstalk computes Miller-effect capacitance and delay for a victim
// line between two aggressors.
func (s *InterconnectSimulator) Crosstalk(layer MetalLayer, length float64, pattern SwitchingPattern) CrosstalkResult {
	cGround := consts.EPSILON0 * layer.KDielectric * (layer.Width * 1e-9) /
		(layer.Thickness * 1e-9) * 1e15 / 1e6 * length

	cCoupling := 0.0
	if sp := layer.Spacing(); sp > 0 {
		cCoupling = consts.EPSILON0 * layer.KDielectric * (layer.Thickness * 1e-9) /
			(sp * 1e-9) * 1e15 / 1e6 * length
	}

	r := s.LineResistance(layer, length, 300)

	var cEff, miller float64
	switch pattern {
	case SwitchOpposite:
		cEff = cGround + 2*cCoupling
		miller = 2.0
	case SwitchSame:
		cEff = cGround
		miller = 0.0
	default:
		cEff = cGround + cCoupling
		miller = 1.0
	}

	result := CrosstalkResult{
		CGround:      cGround,
		CCoupling:    cCoupling,
		MillerFactor: miller,
		CEffective:   cEff,
		DelayPs:      0.69 * r * cEff,
		DelayRatio:   1,
	}
	if total := cGround + cCoupling; total > 0 {
		result.DelayRatio = cEff / total
	}
	return result
}

// ViaResistance returns Ohms for num parallel vias of the given
// diameter and height in nm.
func (s *InterconnectSimulator) ViaResistance(diameter, height float64, numVias int) float64 {
	const (
		rhoVia   = 2.5e-8 // Ohm*m, worse than bulk from via grain structure
		rContact = 1e-8   // Ohm*m^2 specific contact resistivity
	)

	area := math.Pi * math.Pow(diameter*1e-9/2, 2)
	rSingle := rhoVia * (height * 1e-9) / area
	rInterface := 2 * rContact / area // top and bottom

	if numVias < 1 {
		numVias = 1
	}
	return (rSingle + rInterface) / float64(numVias)
}
