package mems

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/edp1096/toy-fab/internal/consts"
	"github.com/edp1096/toy-fab/pkg/util"
)

// ResonatorGeometry describes a single-mode beam resonator with an
// optional attached proof mass.
type ResonatorGeometry struct {
	BeamLength    float64
	BeamWidth     float64
	BeamThickness float64
	NumBeams      int
	AnchorGap     float64

	MassLength    float64
	MassWidth     float64
	MassThickness float64
}

func (g *ResonatorGeometry) Validate() error {
	if g.BeamLength <= 0 || g.BeamWidth <= 0 || g.BeamThickness <= 0 || g.AnchorGap <= 0 {
		return fmt.Errorf("beam dimensions and anchor gap must be positive")
	}
	if g.NumBeams < 1 {
		return fmt.Errorf("need at least one suspension beam, got %d", g.NumBeams)
	}
	return nil
}

func (g *ResonatorGeometry) HasProofMass() bool {
	return g.MassLength > 0 && g.MassWidth > 0 && g.MassThickness > 0
}

// ResonatorMaterial defaults to <100> silicon.
type ResonatorMaterial struct {
	YoungsModulus  float64
	Density        float64
	PoissonsRatio  float64
	ResidualStress float64
}

func SiliconResonatorMaterial() ResonatorMaterial {
	return ResonatorMaterial{
		YoungsModulus: 169e9,
		Density:       2329,
		PoissonsRatio: 0.22,
	}
}

// DampingModelType selects how the damping coefficient is obtained.
type DampingModelType string

const (
	DampingSqueezeFilm  DampingModelType = "squeeze"
	DampingSlideFilm    DampingModelType = "slide"
	DampingConstantQ    DampingModelType = "constant_Q"
	DampingConstantZeta DampingModelType = "constant_zeta"
)

type DampingModel struct {
	Type          DampingModelType
	QualityFactor float64 // used by constant_Q
	DampingRatio  float64 // used by constant_zeta
	Gap           float64 // film gap
	Pressure      float64
}

func DefaultDamping() DampingModel {
	return DampingModel{
		Type:          DampingConstantQ,
		QualityFactor: 100,
		DampingRatio:  0.005,
		Gap:           2e-6,
		Pressure:      consts.P_ATM,
	}
}

// Resonator performs lumped-parameter extraction and single-DOF
// frequency response for the beam resonator.
type Resonator struct {
	Geom    ResonatorGeometry
	Mat     ResonatorMaterial
	Damping DampingModel
}

func NewResonator(geom ResonatorGeometry, mat ResonatorMaterial, damping DampingModel) (*Resonator, error) {
	if err := geom.Validate(); err != nil {
		return nil, fmt.Errorf("resonator geometry: %v", err)
	}
	return &Resonator{Geom: geom, Mat: mat, Damping: damping}, nil
}

// EffectiveMass lumps 17/35 of each fixed-guided beam plus the full
// proof mass (kg).
func (r *Resonator) EffectiveMass() float64 {
	g := r.Geom
	mBeam := float64(g.NumBeams) * (17.0 / 35.0) * r.Mat.Density *
		g.BeamWidth * g.BeamThickness * g.BeamLength

	var mProof float64
	if g.HasProofMass() {
		mProof = r.Mat.Density * g.MassLength * g.MassWidth * g.MassThickness
	}
	return mBeam + mProof
}

// SpringConstant for fixed-guided beams in parallel (N/m).
func (r *Resonator) SpringConstant() float64 {
	g := r.Geom
	momI := g.BeamWidth * math.Pow(g.BeamThickness, 3) / 12
	kSingle := 12 * r.Mat.YoungsModulus * momI / math.Pow(g.BeamLength, 3)
	return float64(g.NumBeams) * kSingle
}

// ResonantFrequency in Hz.
func (r *Resonator) ResonantFrequency() float64 {
	return 1 / (2 * math.Pi) * math.Sqrt(r.SpringConstant()/r.EffectiveMass())
}

func (r *Resonator) AngularFrequency() float64 {
	return 2 * math.Pi * r.ResonantFrequency()
}

func (r *Resonator) squeezeFilmDamping() float64 {
	g := r.Geom
	area := g.BeamLength * g.BeamThickness
	bSingle := 12 * consts.MU_AIR * area * area / math.Pow(r.Damping.Gap, 3)
	return float64(g.NumBeams) * bSingle * 2 // two faces
}

func (r *Resonator) slideFilmDamping() float64 {
	g := r.Geom
	area := g.BeamLength * g.BeamWidth
	return float64(g.NumBeams) * consts.MU_AIR * area / r.Damping.Gap * 2 // top + bottom
}

// DampingCoefficient b (N*s/m) per the selected model.
func (r *Resonator) DampingCoefficient() (float64, error) {
	switch r.Damping.Type {
	case DampingSqueezeFilm:
		return r.squeezeFilmDamping(), nil
	case DampingSlideFilm:
		return r.slideFilmDamping(), nil
	case DampingConstantQ:
		return r.EffectiveMass() * r.AngularFrequency() / r.Damping.QualityFactor, nil
	case DampingConstantZeta:
		return 2 * r.Damping.DampingRatio * r.EffectiveMass() * r.AngularFrequency(), nil
	default:
		return 0, fmt.Errorf("unknown damping model: %s", r.Damping.Type)
	}
}

// QualityFactor Q = m*w0/b for the selected damping model.
func (r *Resonator) QualityFactor() (float64, error) {
	b, err := r.DampingCoefficient()
	if err != nil {
		return 0, err
	}
	return r.EffectiveMass() * r.AngularFrequency() / b, nil
}

// TransferFunction H(f) = 1/(k - m*w^2 + j*b*w) at each frequency.
func (r *Resonator) TransferFunction(freqs []float64) ([]complex128, error) {
	k := r.SpringConstant()
	m := r.EffectiveMass()
	b, err := r.DampingCoefficient()
	if err != nil {
		return nil, err
	}

	resp := make([]complex128, len(freqs))
	for i, f := range freqs {
		w := 2 * math.Pi * f
		resp[i] = 1 / complex(k-m*w*w, b*w)
	}
	return resp, nil
}

// ResponseMagnitude returns |H(f)| for plotting.
func (r *Resonator) ResponseMagnitude(freqs []float64) ([]float64, error) {
	h, err := r.TransferFunction(freqs)
	if err != nil {
		return nil, err
	}
	mag := make([]float64, len(h))
	for i, v := range h {
		mag[i] = cmplx.Abs(v)
	}
	return mag, nil
}

// DuffingBackbone returns the peak-locus frequency (rad/s) of a
// Duffing oscillator at each amplitude.
func DuffingBackbone(amplitudes []float64, omega0, alpha float64) []float64 {
	out := make([]float64, len(amplitudes))
	for i, a := range amplitudes {
		out[i] = omega0 * math.Sqrt(1+(3*alpha/(4*omega0*omega0))*a*a)
	}
	return out
}

// CubicStiffness estimates the mid-plane stretching nonlinearity
// alpha (N/m^3) for an axially constrained beam.
func (r *Resonator) CubicStiffness() float64 {
	g := r.Geom
	return math.Pow(math.Pi, 4) * r.Mat.YoungsModulus * g.BeamWidth * g.BeamThickness /
		(8 * math.Pow(g.BeamLength, 3))
}

// SensitivitySweep varies one geometry dimension over +/- tolerancePct
// and returns the swept values with the resulting resonant frequency.
func (r *Resonator) SensitivitySweep(param string, tolerancePct float64, points int) ([]float64, []float64, error) {
	get, set, err := r.geomAccessor(param)
	if err != nil {
		return nil, nil, err
	}
	nominal := get()

	values := util.Linspace(nominal*(1-tolerancePct/100), nominal*(1+tolerancePct/100), points)
	freqs := make([]float64, len(values))
	for i, v := range values {
		set(v)
		freqs[i] = r.ResonantFrequency()
	}
	set(nominal)

	return values, freqs, nil
}

func (r *Resonator) geomAccessor(param string) (func() float64, func(float64), error) {
	switch param {
	case "beam_length":
		return func() float64 { return r.Geom.BeamLength }, func(v float64) { r.Geom.BeamLength = v }, nil
	case "beam_width":
		return func() float64 { return r.Geom.BeamWidth }, func(v float64) { r.Geom.BeamWidth = v }, nil
	case "beam_thickness":
		return func() float64 { return r.Geom.BeamThickness }, func(v float64) { r.Geom.BeamThickness = v }, nil
	default:
		return nil, nil, fmt.Errorf("unknown geometry parameter: %s", param)
	}
}
