package metal

import "github.com/edp1096/toy-fab/internal/consts"

// ScalingPoint is one technology node row of the scaling table.
type ScalingPoint struct {
	NodeNm        float64
	ResistanceKO  float64 // kOhm
	CapacitanceFF float64 // fF
	DelayPs       float64
}

const rhoCuBulk = 1.7e-8 // Ohm*m

// WireResistance is the plain geometric resistance, no size effects.
// All dimensions in meters.
func WireResistance(length, width, height float64) float64 {
	return rhoCuBulk * length / (width * height)
}

// WireCapacitance is a parallel-plate estimate, dimensions in meters.
func WireCapacitance(length, width, spacing, kEff float64) float64 {
	return kEff * consts.EPSILON0 * length * width / spacing
}

// RCDelay returns seconds for a wire of the given geometry.
func RCDelay(length, width, height, spacing, kEff float64) float64 {
	return WireResistance(length, width, height) * WireCapacitance(length, width, spacing, kEff)
}

// ScalingAnalysis evaluates wire RC across shrinking nodes starting
// from baseFeatureSize (m). Wire length grows with chip size while the
// cross-section shrinks; the dielectric constant improves per node.
func ScalingAnalysis(baseFeatureSize float64) []ScalingPoint {
	scalingFactors := []float64{1, 0.7, 0.5, 0.35, 0.25}
	kValues := []float64{4.0, 3.6, 3.0, 2.7, 2.5}

	const (
		baseLength  = 1000e-9
		baseHeight  = 180e-9
		baseSpacing = 90e-9
	)
	baseWidth := baseFeatureSize

	points := make([]ScalingPoint, 0, len(scalingFactors))
	for i, s := range scalingFactors {
		length := baseLength / s
		width := baseWidth * s
		height := baseHeight * s
		spacing := baseSpacing * s

		r := WireResistance(length, width, height)
		c := WireCapacitance(length, width, spacing, kValues[i])

		points = append(points, ScalingPoint{
			NodeNm:        baseFeatureSize / s * 1e9,
			ResistanceKO:  r / 1e3,
			CapacitanceFF: c / 1e-15,
			DelayPs:       r * c / 1e-12,
		})
	}
	return points
}
