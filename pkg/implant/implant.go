// Package implant models ion implantation doping profiles with the
// Gaussian range approximation plus anneal diffusion and
// solubility-limited activation.
package implant

import (
	"fmt"
	"math"
	"strings"

	"github.com/edp1096/toy-fab/internal/consts"
	"github.com/edp1096/toy-fab/pkg/util"
)

// IonSpecies carries the empirical range parameters of a dopant,
// Rp = a * E^b / M^c with E in keV, Rp in nm.
type IonSpecies struct {
	Name          string
	Symbol        string
	Mass          float64 // amu
	A, B, C       float64
	StraggleRatio float64 // dRp/Rp

	// Arrhenius diffusivity in Si
	D0 float64 // cm^2/s
	Ea float64 // eV

	// Solid solubility prefactor near 1273K
	SolubilityC0    float64 // atoms/cm^3
	SolubilitySlope float64 // 1/K
}

var (
	Boron      = IonSpecies{"Boron", "B", 11, 3.0, 1.0, 0.5, 0.35, 0.76, 3.46, 5e20, 0.0003}
	BF2        = IonSpecies{"Boron Difluoride", "BF2", 49, 1.2, 1.0, 0.5, 0.30, 0.76, 3.46, 5e20, 0.0003}
	Phosphorus = IonSpecies{"Phosphorus", "P", 31, 2.0, 1.0, 0.5, 0.38, 3.85, 3.66, 1.5e21, 0.0002}
	Arsenic    = IonSpecies{"Arsenic", "As", 75, 1.1, 1.0, 0.5, 0.40, 0.066, 3.44, 2e21, 0.0002}
)

// SpeciesByName resolves a dopant by name or symbol, case-insensitive.
func SpeciesByName(name string) (IonSpecies, error) {
	switch strings.ToLower(name) {
	case "boron", "b":
		return Boron, nil
	case "bf2":
		return BF2, nil
	case "phosphorus", "p":
		return Phosphorus, nil
	case "arsenic", "as":
		return Arsenic, nil
	default:
		return IonSpecies{}, fmt.Errorf("unknown dopant species %q", name)
	}
}

type Simulator struct {
	SubstrateDoping float64 // atoms/cm^3
	SubstrateType   string  // "p" or "n"
}

func NewSimulator(substrateDoping float64, substrateType string) (*Simulator, error) {
	if substrateType != "p" && substrateType != "n" {
		return nil, fmt.Errorf("substrate type must be p or n, got %q", substrateType)
	}
	return &Simulator{SubstrateDoping: substrateDoping, SubstrateType: substrateType}, nil
}

// Range returns projected range and straggle in nm for the given
// implant energy in keV.
func (s *Simulator) Range(energyKeV float64, ion IonSpecies) (float64, float64) {
	rp := ion.A * math.Pow(energyKeV, ion.B) / math.Pow(ion.Mass, ion.C)
	return rp, ion.StraggleRatio * rp
}

// Profile evaluates the Gaussian concentration (atoms/cm^3) over the
// given depth grid (nm) for a dose in atoms/cm^2.
func (s *Simulator) Profile(depth []float64, dose, energyKeV float64, ion IonSpecies) []float64 {
	rp, dRp := s.Range(energyKeV, ion)

	rpCm := rp * 1e-7
	dRpCm := dRp * 1e-7

	norm := 1 / (math.Sqrt(2*math.Pi) * dRpCm)
	conc := make([]float64, len(depth))
	for i, d := range depth {
		dCm := d * 1e-7
		exponent := -math.Pow(dCm-rpCm, 2) / (2 * dRpCm * dRpCm)
		conc[i] = dose * norm * math.Exp(exponent)
	}
	return conc
}

// JunctionDepth finds where the profile tail crosses the substrate
// doping, with linear interpolation between samples. Returns the last
// depth when the junction lies past the grid.
func (s *Simulator) JunctionDepth(depth, concentration []float64, criterion float64) float64 {
	if criterion <= 0 {
		criterion = s.SubstrateDoping
	}
	if len(depth) == 0 {
		return 0
	}

	peakIdx := 0
	for i, c := range concentration {
		if c > concentration[peakIdx] {
			peakIdx = i
		}
	}

	for i := peakIdx; i < len(concentration); i++ {
		if concentration[i] < criterion {
			if i == peakIdx {
				return depth[i]
			}
			x1, x2 := depth[i-1], depth[i]
			y1, y2 := concentration[i-1], concentration[i]
			return x1 + (criterion-y1)*(x2-x1)/(y2-y1)
		}
	}
	return depth[len(depth)-1]
}

// AnnealDiffusion broadens the profile by the Gaussian kernel
// equivalent to Fickian diffusion at the given temperature (degC) and
// time (s). Negligible diffusion returns the input unchanged.
func (s *Simulator) AnnealDiffusion(depth, concentration []float64, temperatureC, timeSec float64, ion IonSpecies) []float64 {
	tK := temperatureC + consts.KELVIN
	d := ion.D0 * math.Exp(-ion.Ea*consts.CHARGE/(consts.BOLTZMANN*tK)) // cm^2/s

	lDiffNm := math.Sqrt(4*d*timeSec) * 1e7
	if len(depth) < 2 {
		return concentration
	}

	dx := depth[1] - depth[0]
	sigma := lDiffNm / math.Sqrt2

	kernel := util.GaussianKernel(sigma, dx)
	if kernel == nil {
		return concentration // negligible diffusion
	}
	return util.Convolve(concentration, kernel)
}

// Activation clamps the profile to the solid solubility at the anneal
// temperature and applies a typical activation efficiency.
func (s *Simulator) Activation(concentration []float64, temperatureC float64, ion IonSpecies) []float64 {
	const efficiency = 0.90

	tK := temperatureC + consts.KELVIN
	cMax := ion.SolubilityC0 * math.Exp(ion.SolubilitySlope*(tK-1273))

	activated := make([]float64, len(concentration))
	for i, c := range concentration {
		activated[i] = math.Min(c, cMax) * efficiency
	}
	return activated
}

// Dose integrates a profile (atoms/cm^3 over nm depth) back to
// atoms/cm^2 with the trapezoid rule.
func Dose(depth, concentration []float64) float64 {
	sum := 0.0
	for i := 1; i < len(depth); i++ {
		dxCm := (depth[i] - depth[i-1]) * 1e-7
		sum += 0.5 * (concentration[i] + concentration[i-1]) * dxCm
	}
	return sum
}
