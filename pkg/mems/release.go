package mems

import "math"

// ReleasePlan holds the outcome of release-hole optimization for a
// target wet-etch release time.
type ReleasePlan struct {
	NumHoles     int
	NumX, NumY   int
	Spacing      float64 // m
	AreaFraction float64 // structural area lost to holes
	ActualTime   float64 // s
}

// ReleaseEtcher models HF removal of the sacrificial oxide under a
// plate structure.
type ReleaseEtcher struct {
	Mat MaterialProperties
}

// ReleaseTime returns the time to undercut a length x width plate.
// With no holes the etch front advances laterally from the edges;
// with holes the worst-case distance is half the hole spacing.
func (r *ReleaseEtcher) ReleaseTime(length, width float64, numHoles int) float64 {
	var maxDistance float64
	if numHoles == 0 {
		maxDistance = math.Min(length, width) / 2
	} else {
		areaPerHole := length * width / float64(numHoles)
		spacing := math.Sqrt(areaPerHole)
		maxDistance = spacing / 2
	}
	return maxDistance / r.Mat.EtchRateOxide
}

// OptimizeReleaseHoles places a square grid of holes so the structure
// releases within targetTime.
func (r *ReleaseEtcher) OptimizeReleaseHoles(length, width, targetTime, holeDiameter float64) ReleasePlan {
	distance := targetTime * r.Mat.EtchRateOxide
	spacing := 2 * distance

	nx := int(math.Ceil(length / spacing))
	ny := int(math.Ceil(width / spacing))
	n := nx * ny

	holeArea := float64(n) * math.Pi * math.Pow(holeDiameter/2, 2)
	areaFraction := holeArea / (length * width)

	return ReleasePlan{
		NumHoles:     n,
		NumX:         nx,
		NumY:         ny,
		Spacing:      spacing,
		AreaFraction: areaFraction,
		ActualTime:   r.ReleaseTime(length, width, n),
	}
}
