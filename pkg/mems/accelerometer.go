package mems

import (
	"math"

	"github.com/edp1096/toy-fab/internal/consts"
)

// Accelerometer is a lumped spring-mass-damper model of a comb-drive
// accelerometer with folded suspension springs.
type Accelerometer struct {
	Mass    float64 // proof mass (kg)
	KSpring float64 // N/m
	Damping float64 // N*s/m
	OmegaN  float64 // rad/s
	Fn      float64 // Hz
	Q       float64

	MassLength   float64
	MassWidth    float64
	Thickness    float64
	SpringLength float64
	SpringWidth  float64
}

// AccelerometerConfig sets the geometry; zero-valued optional fields
// fall back to typical values.
type AccelerometerConfig struct {
	Length       float64 // proof mass length (m)
	Width        float64 // proof mass width (m)
	Thickness    float64 // structural layer thickness (m)
	NumSprings   int     // folded springs, default 4
	SpringLength float64 // default 200 um
	SpringWidth  float64 // default 2 um
	Pressure     float64 // Pa, default 1e5, scales damping
}

const accelGap = 2e-6 // sense gap

func NewAccelerometer(cfg AccelerometerConfig) *Accelerometer {
	if cfg.NumSprings == 0 {
		cfg.NumSprings = 4
	}
	if cfg.SpringLength == 0 {
		cfg.SpringLength = 200e-6
	}
	if cfg.SpringWidth == 0 {
		cfg.SpringWidth = 2e-6
	}
	if cfg.Pressure == 0 {
		cfg.Pressure = 1e5
	}

	a := &Accelerometer{
		MassLength:   cfg.Length,
		MassWidth:    cfg.Width,
		Thickness:    cfg.Thickness,
		SpringLength: cfg.SpringLength,
		SpringWidth:  cfg.SpringWidth,
	}

	mat := SiliconResonatorMaterial()
	a.Mass = mat.Density * cfg.Length * cfg.Width * cfg.Thickness

	kSingle := mat.YoungsModulus * cfg.SpringWidth * math.Pow(cfg.Thickness, 3) /
		(4 * math.Pow(cfg.SpringLength, 3))
	a.KSpring = float64(cfg.NumSprings) * kSingle

	area := cfg.Length * cfg.Width
	a.Damping = consts.MU_AIR * area * area / math.Pow(accelGap, 3) * (cfg.Pressure / 1e5)

	a.OmegaN = math.Sqrt(a.KSpring / a.Mass)
	a.Fn = a.OmegaN / (2 * math.Pi)
	a.Q = a.Mass * a.OmegaN / a.Damping

	return a
}

// FrequencyResponse returns displacement amplitude (m) and phase
// (degrees) at each frequency for a 1 g acceleration drive.
func (a *Accelerometer) FrequencyResponse(freqs []float64) ([]float64, []float64) {
	f0 := a.Mass * 9.81

	disp := make([]float64, len(freqs))
	phase := make([]float64, len(freqs))
	for i, f := range freqs {
		w := 2 * math.Pi * f
		den := math.Sqrt(math.Pow(a.KSpring-a.Mass*w*w, 2) + math.Pow(a.Damping*w, 2))
		disp[i] = f0 / den
		phase[i] = math.Atan2(a.Damping*w, a.KSpring-a.Mass*w*w) * 180 / math.Pi
	}
	return disp, phase
}

// TimeResponse integrates the spring-mass-damper equation over the
// uniformly sampled acceleration input using RK4. Returns proof-mass
// displacement (m) and velocity (m/s) at each sample.
func (a *Accelerometer) TimeResponse(accel []float64, dt float64) ([]float64, []float64) {
	n := len(accel)
	disp := make([]float64, n)
	vel := make([]float64, n)
	if n == 0 {
		return disp, vel
	}

	accelAt := func(t float64) float64 {
		idx := t / dt
		i := int(idx)
		if i >= n-1 {
			return accel[n-1]
		}
		frac := idx - float64(i)
		return accel[i] + frac*(accel[i+1]-accel[i])
	}

	deriv := func(t, x, v float64) (float64, float64) {
		force := a.Mass * accelAt(t)
		return v, (force - a.Damping*v - a.KSpring*x) / a.Mass
	}

	var x, v float64
	for i := 1; i < n; i++ {
		t := float64(i-1) * dt

		k1x, k1v := deriv(t, x, v)
		k2x, k2v := deriv(t+dt/2, x+dt/2*k1x, v+dt/2*k1v)
		k3x, k3v := deriv(t+dt/2, x+dt/2*k2x, v+dt/2*k2v)
		k4x, k4v := deriv(t+dt, x+dt*k3x, v+dt*k3v)

		x += dt / 6 * (k1x + 2*k2x + 2*k3x + k4x)
		v += dt / 6 * (k1v + 2*k2v + 2*k3v + k4v)

		disp[i] = x
		vel[i] = v
	}
	return disp, vel
}

// Sensitivity is the static displacement per 1 g (m).
func (a *Accelerometer) Sensitivity() float64 {
	return a.Mass * 9.81 / a.KSpring
}
