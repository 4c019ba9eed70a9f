// Package metal models BEOL copper interconnect electrical behavior:
// size-effect resistivity, RC delay, electromigration, repeaters,
// crosstalk and power-grid IR drop.
package metal

// MetalLayer holds one wiring level's geometry and materials.
// Dimensions in nm, resistivity in uOhm*cm.
type MetalLayer struct {
	Name             string
	Width            float64
	Thickness        float64
	Pitch            float64
	BarrierThickness float64
	ResistivityBulk  float64
	KDielectric      float64
}

// Spacing is the gap between adjacent lines.
func (l MetalLayer) Spacing() float64 {
	return l.Pitch - l.Width
}

// ProcessNode bundles the metal stack of one technology node with its
// electromigration characteristics.
type ProcessNode struct {
	Name               string
	Layers             map[string]MetalLayer
	EMActivationEnergy float64 // eV
	EMExponent         float64
	MaxCurrentDensity  float64 // MA/cm^2
}

func Node7nm() ProcessNode {
	return ProcessNode{
		Name: "7nm",
		Layers: map[string]MetalLayer{
			"M1": {"M1", 40, 80, 80, 4, 1.7, 2.5},
			"M2": {"M2", 50, 100, 100, 4, 1.7, 2.5},
			"M3": {"M3", 80, 150, 160, 5, 1.7, 2.7},
			"M5": {"M5", 200, 400, 450, 5, 1.7, 3.0},
			"M8": {"M8", 1000, 1500, 2000, 8, 1.7, 3.5},
		},
		EMActivationEnergy: 1.2,
		EMExponent:         1.5,
		MaxCurrentDensity:  15.0,
	}
}

func Node28nm() ProcessNode {
	return ProcessNode{
		Name: "28nm",
		Layers: map[string]MetalLayer{
			"M1": {"M1", 80, 160, 160, 5, 1.7, 2.8},
			"M2": {"M2", 100, 200, 200, 5, 1.7, 2.8},
			"M3": {"M3", 150, 300, 320, 6, 1.7, 3.0},
			"M5": {"M5", 400, 800, 900, 8, 1.7, 3.2},
		},
		EMActivationEnergy: 1.0,
		EMExponent:         1.5,
		MaxCurrentDensity:  10.0,
	}
}
