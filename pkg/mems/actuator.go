package mems

import "math"

// ActuatorMaterial holds doped polysilicon properties for the
// electrothermal model.
type ActuatorMaterial struct {
	RhoElec    float64 // electrical resistivity (Ohm*m)
	KThermal   float64 // thermal conductivity (W/m/K)
	Alpha      float64 // thermal expansion coefficient (1/K)
	E          float64 // Young's modulus (Pa)
	Nu         float64 // Poisson's ratio
	RhoMass    float64 // density (kg/m^3)
	Cp         float64 // specific heat (J/kg/K)
	SigmaYield float64 // yield strength (Pa)
}

func DopedPolysilicon() ActuatorMaterial {
	return ActuatorMaterial{
		RhoElec:    2e-5,
		KThermal:   34,
		Alpha:      2.6e-6,
		E:          169e9,
		Nu:         0.22,
		RhoMass:    2329,
		Cp:         712,
		SigmaYield: 7e9,
	}
}

// ThermalActuatorResult collects electrical, thermal, mechanical and
// transient figures for one operating point.
type ThermalActuatorResult struct {
	// Electrical
	ResistanceBeam  float64 // Ohm, single beam
	ResistanceTotal float64 // Ohm, two beams in series
	Current         float64 // A
	PowerTotal      float64 // W
	PowerBeam       float64 // W per beam
	PowerDensity    float64 // W/m^3

	// Thermal
	TempAvg   float64 // K
	TempMax   float64 // K
	DeltaTAvg float64 // K
	DeltaTMax float64 // K

	// Mechanical
	ThermalStrain float64
	Elongation    float64 // m per beam
	Displacement  float64 // m, shuttle output
	StressThermal float64 // Pa
	StressBending float64 // Pa
	StressMax     float64 // Pa
	SafetyFactor  float64

	// Transient
	TimeConstant float64 // s
	Bandwidth    float64 // Hz
}

// ThermalActuator is a V-beam (chevron) electrothermal actuator: two
// angled beams carrying current expand and push the shuttle forward.
type ThermalActuator struct {
	L     float64 // beam length (m)
	W     float64 // beam width (m)
	T     float64 // beam thickness (m)
	Theta float64 // V-angle (rad)

	Voltage        float64 // V
	AmbientTemp    float64 // K
	ConvectionCoef float64 // W/m^2/K

	Mat ActuatorMaterial

	area      float64
	perimeter float64
}

// NewThermalActuator with the common 200um x 4um x 2um, 2 degree,
// 3 V operating point.
func NewThermalActuator() *ThermalActuator {
	a := &ThermalActuator{
		L:              200e-6,
		W:              4e-6,
		T:              2e-6,
		Theta:          2 * math.Pi / 180,
		Voltage:        3.0,
		AmbientTemp:    293.15,
		ConvectionCoef: 10,
		Mat:            DopedPolysilicon(),
	}
	a.updateGeometry()
	return a
}

func (a *ThermalActuator) updateGeometry() {
	a.area = a.W * a.T
	a.perimeter = 2 * (a.W + a.T)
}

// Analyze runs the full electro-thermo-mechanical chain at the current
// operating point.
func (a *ThermalActuator) Analyze() ThermalActuatorResult {
	a.updateGeometry()
	var r ThermalActuatorResult

	r.ResistanceBeam = a.Mat.RhoElec * a.L / a.area
	r.ResistanceTotal = 2 * r.ResistanceBeam
	r.Current = a.Voltage / r.ResistanceTotal
	r.PowerTotal = a.Voltage * r.Current
	r.PowerBeam = r.PowerTotal / 2
	r.PowerDensity = r.PowerBeam / (a.L * a.area)

	// Conduction to both anchors in parallel with surface convection.
	rCond := a.L / (2 * a.Mat.KThermal * a.area)
	rConv := 1 / (a.ConvectionCoef * a.perimeter * a.L)
	rThermal := rCond * rConv / (rCond + rConv)

	r.DeltaTAvg = r.PowerBeam * rThermal
	r.DeltaTMax = 2.5 * r.DeltaTAvg
	r.TempAvg = a.AmbientTemp + r.DeltaTAvg
	r.TempMax = a.AmbientTemp + r.DeltaTMax

	r.ThermalStrain = a.Mat.Alpha * r.DeltaTAvg
	r.Elongation = r.ThermalStrain * a.L
	r.Displacement = 2 * r.Elongation / math.Tan(a.Theta)

	r.StressThermal = a.Mat.E * a.Mat.Alpha * r.DeltaTAvg / (1 - a.Mat.Nu)
	r.StressBending = a.Mat.E * a.Mat.Alpha * r.DeltaTAvg * a.T / (2 * a.L)
	r.StressMax = r.StressThermal + r.StressBending
	if r.StressMax > 0 {
		r.SafetyFactor = a.Mat.SigmaYield / r.StressMax
	} else {
		r.SafetyFactor = math.Inf(1)
	}

	cThermal := a.Mat.RhoMass * a.Mat.Cp * a.L * a.area
	rCondSingle := a.L / (a.Mat.KThermal * a.area)
	rConvFull := 1 / (a.ConvectionCoef * a.L * a.perimeter)
	r.TimeConstant = cThermal * (rCondSingle + rConvFull)
	r.Bandwidth = 1 / (2 * math.Pi * r.TimeConstant)

	return r
}

// TemperatureProfile returns the steady-state fin-equation temperature
// along the beam at the current drive, sampled at points positions.
func (a *ThermalActuator) TemperatureProfile(points int) ([]float64, []float64) {
	a.updateGeometry()
	res := a.Analyze()

	m := math.Sqrt(a.ConvectionCoef * a.perimeter / (a.Mat.KThermal * a.area))
	scale := res.PowerDensity / (a.ConvectionCoef * a.perimeter)

	xs := make([]float64, points)
	temps := make([]float64, points)
	for i := 0; i < points; i++ {
		x := a.L * float64(i) / float64(points-1)
		xs[i] = x
		temps[i] = a.AmbientTemp + scale*
			(math.Cosh(m*(x-a.L/2))/math.Cosh(m*a.L/2)-1)
	}
	return xs, temps
}

// VoltageSweep returns shuttle displacement (m) over a voltage range.
func (a *ThermalActuator) VoltageSweep(voltages []float64) []float64 {
	original := a.Voltage
	disp := make([]float64, len(voltages))
	for i, v := range voltages {
		a.Voltage = v
		disp[i] = a.Analyze().Displacement
	}
	a.Voltage = original
	return disp
}
