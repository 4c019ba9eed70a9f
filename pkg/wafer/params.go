package wafer

// ProcessParameters is the immutable configuration read by every stage.
// Lengths in meters, rates in m/s.
type ProcessParameters struct {
	// Geometry
	WaferWidth  float64
	WaferHeight float64

	// Layer thicknesses
	BottomOxide     float64
	NitrideEtchStop float64
	TopOxide        float64

	// Feature dimensions
	ViaWidth    float64
	TrenchWidth float64
	TrenchDepth float64

	// Etch
	EtchRateOxide   float64
	EtchRateNitride float64
	EtchAnisotropy  float64 // 0..1, higher is more anisotropic

	// Barrier deposition (PVD)
	BarrierThickness    float64
	BarrierStepCoverage float64

	// Seed layer (PVD)
	SeedThickness    float64
	SeedStepCoverage float64

	// Electroplating
	PlatingRateBase    float64
	PlatingEnhancement float64
	DiffusionLength    float64

	// CMP
	CMPRemovalRate        float64
	CMPSelectivityCu      float64
	CMPSelectivityBarrier float64
	CMPSelectivityOxide   float64
	DishingFactor         float64
}

// DefaultParameters mirrors a 2um x 1.5um dual damascene cross-section
// with 150nm via and 300nm trench.
func DefaultParameters() ProcessParameters {
	return ProcessParameters{
		WaferWidth:  2.0e-6,
		WaferHeight: 1.5e-6,

		BottomOxide:     500e-9,
		NitrideEtchStop: 50e-9,
		TopOxide:        500e-9,

		ViaWidth:    150e-9,
		TrenchWidth: 300e-9,
		TrenchDepth: 300e-9,

		EtchRateOxide:   100e-9,
		EtchRateNitride: 5e-9,
		EtchAnisotropy:  0.95,

		BarrierThickness:    10e-9,
		BarrierStepCoverage: 0.7,

		SeedThickness:    50e-9,
		SeedStepCoverage: 0.6,

		PlatingRateBase:    50e-9,
		PlatingEnhancement: 5.0,
		DiffusionLength:    100e-9,

		CMPRemovalRate:        200e-9,
		CMPSelectivityCu:      1.0,
		CMPSelectivityBarrier: 0.5,
		CMPSelectivityOxide:   0.1,
		DishingFactor:         0.05,
	}
}
