// Package damascene sequences the dual damascene flow over a wafer
// grid: via etch, trench etch, barrier and seed deposition, copper
// electroplating, CMP. Stages run bounded loops; a stage that fails to
// converge logs a warning and the flow continues.
package damascene

import (
	"log/slog"

	"github.com/edp1096/toy-fab/pkg/fab"
	"github.com/edp1096/toy-fab/pkg/util"
	"github.com/edp1096/toy-fab/pkg/wafer"
)

// StageNames is the fixed stage order of a full process run.
var StageNames = []string{
	"Initial State",
	"Via Etch",
	"Trench Etch",
	"Barrier Deposition",
	"Seed Layer Deposition",
	"Copper Electroplating",
	"CMP Polish",
	"Final Structure",
}

// Stage is a grid snapshot recorded at a stage boundary.
type Stage struct {
	Name string
	Time float64 // accumulated process time at the boundary (s)
	Grid [][]wafer.Material
}

type Process struct {
	params wafer.ProcessParameters
	wfr    *wafer.Wafer

	etcher *fab.PlasmaEtcher
	pvd    *fab.PVDDepositor
	plater *fab.Electroplater
	cmp    *fab.CMPPolisher

	stages []Stage
	logger *slog.Logger
}

// Option configures a Process.
type Option func(*options)

type options struct {
	resolution int
	seed       int64
	logger     *slog.Logger
}

func WithResolution(resolution int) Option {
	return func(o *options) { o.resolution = resolution }
}

// WithSeed fixes the etch-stop RNG seed for reproducible runs.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func New(params wafer.ProcessParameters, opts ...Option) *Process {
	o := options{resolution: 200, seed: 1, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	w := wafer.New(params, o.resolution)
	return &Process{
		params: params,
		wfr:    w,
		etcher: fab.NewPlasmaEtcher(w, o.seed),
		pvd:    fab.NewPVDDepositor(w),
		plater: fab.NewElectroplater(w),
		cmp:    fab.NewCMPPolisher(w),
		logger: o.logger,
	}
}

func (p *Process) Wafer() *wafer.Wafer {
	return p.wfr
}

// Stages returns the snapshots recorded so far, in stage order.
func (p *Process) Stages() []Stage {
	return p.stages
}

// RunFullProcess executes the complete flow and returns the 8 stage
// snapshots. Convergence failures are warnings, never errors; the run
// always completes.
func (p *Process) RunFullProcess() ([]Stage, error) {
	viaCenter := p.params.WaferWidth / 2
	trenchCenter := p.params.WaferWidth / 2

	steps := []struct {
		name string
		run  func()
	}{
		{"Initial State", nil},
		{"Via Etch", func() { p.etchVia(viaCenter) }},
		{"Trench Etch", func() { p.etchTrench(trenchCenter) }},
		{"Barrier Deposition", p.depositBarrier},
		{"Seed Layer Deposition", p.depositSeed},
		{"Copper Electroplating", p.electroplate},
		{"CMP Polish", p.performCMP},
		{"Final Structure", nil},
	}

	p.stages = p.stages[:0]
	for _, step := range steps {
		p.wfr.Step = step.name
		p.logger.Info("damascene stage", "stage", step.name, "time", p.wfr.Time)

		if step.run != nil {
			step.run()
		}
		p.recordStage(step.name)
	}

	return p.stages, nil
}

func (p *Process) recordStage(name string) {
	p.stages = append(p.stages, Stage{
		Name: name,
		Time: p.wfr.Time,
		Grid: p.wfr.Snapshot(),
	})
}

// etchVia etches through the top oxide and the nitride etch stop.
func (p *Process) etchVia(centerX float64) {
	const (
		dt      = 0.1
		maxTime = 20.0
	)
	targetDepth := p.params.TopOxide + p.params.NitrideEtchStop

	for elapsed := 0.0; elapsed < maxTime; {
		finished := p.etcher.EtchFeature(centerX, p.params.ViaWidth, targetDepth, dt, wafer.Oxide)
		elapsed += dt
		p.wfr.Time += dt

		if finished {
			p.logger.Info("via etch complete", "elapsed", elapsed)
			return
		}
	}
	p.logger.Warn("via etch did not reach target depth", "maxTime", maxTime)
}

func (p *Process) etchTrench(centerX float64) {
	const (
		dt      = 0.1
		maxTime = 10.0
	)

	for elapsed := 0.0; elapsed < maxTime; {
		finished := p.etcher.EtchFeature(centerX, p.params.TrenchWidth, p.params.TrenchDepth, dt, wafer.Oxide)
		elapsed += dt
		p.wfr.Time += dt

		if finished {
			p.logger.Info("trench etch complete", "elapsed", elapsed)
			return
		}
	}
	p.logger.Warn("trench etch did not reach target depth", "maxTime", maxTime)
}

func (p *Process) depositBarrier() {
	p.pvd.DepositConformal(wafer.Barrier, p.params.BarrierThickness, p.params.BarrierStepCoverage)
}

func (p *Process) depositSeed() {
	p.pvd.DepositConformal(wafer.CopperSeed, p.params.SeedThickness, p.params.SeedStepCoverage)
}

// electroplate fills the features bottom-up until the surface height
// spread collapses or the time budget runs out.
func (p *Process) electroplate() {
	const (
		dt       = 0.01
		maxTime  = 30.0
		flatness = 10e-9 // surface sigma target (m)
	)

	for elapsed := 0.0; elapsed < maxTime; {
		p.plater.PlateStep(dt)
		elapsed += dt
		p.wfr.Time += dt

		if util.StdDev(p.wfr.SurfaceHeights()) < flatness {
			p.logger.Info("electroplating complete", "elapsed", elapsed)
			return
		}
	}
	p.logger.Warn("electroplating stopped at max time", "maxTime", maxTime)
}

// performCMP polishes until the surface is planar or the field oxide is
// exposed. Oxide barely erodes, so once the endpoint clears the field
// the only remaining removal is copper dishing.
func (p *Process) performCMP() {
	const (
		dt            = 0.05
		maxTime       = 20.0
		tolerance     = 5e-9
		fieldFraction = 0.5
	)

	for elapsed := 0.0; elapsed < maxTime; {
		p.cmp.PolishStep(dt)
		elapsed += dt
		p.wfr.Time += dt

		if p.cmp.IsPlanar(tolerance) {
			p.logger.Info("cmp complete", "elapsed", elapsed)
			return
		}
		if p.cmp.EndpointReached(fieldFraction) {
			p.logger.Info("cmp endpoint reached", "elapsed", elapsed)
			return
		}
	}
	p.logger.Warn("cmp stopped at max time before planarity", "maxTime", maxTime)
}
