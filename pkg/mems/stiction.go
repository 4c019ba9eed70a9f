package mems

import "math"

const hamakerConstant = 2.0e-19 // polysilicon-water-polysilicon (J)

// StictionAnalysis compares restoring force to surface adhesion for a
// released beam over its gap.
type StictionAnalysis struct {
	CapillaryPressure float64 // Pa
	CapillaryForce    float64 // N
	VdwForce          float64 // N at close approach
	RestoringForce    float64 // N at full gap
	StictionNumber    float64 // capillary / restoring, >1 means stuck
	CriticalLength    float64 // m, longest beam that releases free
}

// AnalyzeStiction evaluates drying-induced stiction for the beam over
// gap. vdwSeparation is the surface separation used for the van der
// Waals estimate, typically a few nm.
func AnalyzeStiction(b *CantileverBeam, gap, vdwSeparation float64) StictionAnalysis {
	mat := b.Mat
	area := b.L * b.W

	pCap := 2 * mat.GammaWater * math.Cos(mat.ThetaContact) / gap
	fCap := pCap * area

	fVdw := hamakerConstant * area / (6 * math.Pi * math.Pow(vdwSeparation, 3))

	fRestore := b.K * gap

	lCrit := math.Sqrt(mat.EPoly * math.Pow(b.T, 3) * gap * gap /
		(12 * mat.GammaWater * math.Cos(mat.ThetaContact)))

	return StictionAnalysis{
		CapillaryPressure: pCap,
		CapillaryForce:    fCap,
		VdwForce:          fVdw,
		RestoringForce:    fRestore,
		StictionNumber:    fCap / fRestore,
		CriticalLength:    lCrit,
	}
}
