package main // import "fab"

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/edp1096/toy-fab/pkg/damascene"
	"github.com/edp1096/toy-fab/pkg/implant"
	"github.com/edp1096/toy-fab/pkg/metal"
	"github.com/edp1096/toy-fab/pkg/mosfet"
	"github.com/edp1096/toy-fab/pkg/oxide"
	"github.com/edp1096/toy-fab/pkg/plot"
	"github.com/edp1096/toy-fab/pkg/recipe"
	"github.com/edp1096/toy-fab/pkg/util"
	"github.com/edp1096/toy-fab/pkg/wafer"
)

var (
	outDir  = flag.String("out", "images", "output directory for plots and tables")
	verbose = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatal("Usage: fab [-out dir] [-v] <recipe.yaml>")
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	rcp, err := recipe.Load(flag.Arg(0))
	if err != nil {
		log.Fatalf("Error reading recipe: %v", err)
	}
	if rcp.Title != "" {
		fmt.Printf("Recipe: %s\n", rcp.Title)
	}

	ran := 0
	if rcp.Damascene != nil {
		runDamascene(logger, rcp.Damascene)
		ran++
	}
	if rcp.Implant != nil {
		runImplant(rcp.Implant)
		ran++
	}
	if rcp.Oxidation != nil {
		runOxidation(rcp.Oxidation)
		ran++
	}
	if rcp.Metal != nil {
		runMetal(rcp.Metal)
		ran++
	}
	if rcp.Mosfet != nil {
		runMosfet(rcp.Mosfet)
		ran++
	}
	if ran == 0 {
		log.Fatal("Recipe has no process sections")
	}
}

func runDamascene(logger *slog.Logger, rcp *recipe.DamasceneRecipe) {
	fmt.Println("\nDual Damascene Process:")
	fmt.Println("=======================")

	params := wafer.DefaultParameters()
	rcp.Apply(&params)

	opts := []damascene.Option{damascene.WithLogger(logger)}
	if rcp.Resolution > 0 {
		opts = append(opts, damascene.WithResolution(rcp.Resolution))
	}
	if rcp.Seed != 0 {
		opts = append(opts, damascene.WithSeed(rcp.Seed))
	}

	proc := damascene.New(params, opts...)
	stages, err := proc.RunFullProcess()
	if err != nil {
		log.Fatalf("Process failed: %v", err)
	}

	fmt.Printf("%-4s %-24s %s\n", "No.", "Stage", "Time")
	for i, stage := range stages {
		fmt.Printf("%-4d %-24s %s\n", i, stage.Name, util.FormatValueFactor(stage.Time, "s"))

		name := fmt.Sprintf("stage_%d_%s.png", i, slugify(stage.Name))
		if err := plot.CrossSection(filepath.Join(*outDir, name), stage.Grid, 3); err != nil {
			log.Fatalf("Error writing %s: %v", name, err)
		}
	}
	fmt.Printf("\nCross-sections written to %s/\n", *outDir)
}

func runImplant(rcp *recipe.ImplantRecipe) {
	fmt.Println("\nIon Implantation:")
	fmt.Println("=================")

	species, err := implant.SpeciesByName(rcp.Species)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	doping := rcp.SubstrateDoping
	if doping == 0 {
		doping = 1e15
	}
	subType := rcp.SubstrateType
	if subType == "" {
		subType = "p"
	}
	sim, err := implant.NewSimulator(doping, subType)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	depths := util.Linspace(0, 500, 501) // nm
	profile := sim.Profile(depths, rcp.Dose, rcp.EnergyKeV, species)

	rp, straggle := sim.Range(rcp.EnergyKeV, species)
	fmt.Printf("Species:          %s at %g keV, dose %.3g cm^-2\n", species.Name, rcp.EnergyKeV, rcp.Dose)
	fmt.Printf("Projected range:  %s\n", util.FormatLengthNano(rp*1e-9))
	fmt.Printf("Straggle:         %s\n", util.FormatLengthNano(straggle*1e-9))
	fmt.Printf("Junction depth:   %s\n", util.FormatLengthNano(sim.JunctionDepth(depths, profile, 0)*1e-9))

	series := []plot.Series{{Name: "as-implanted", X: depths, Y: profile}}

	if rcp.AnnealTempC > 0 && rcp.AnnealTimeSec > 0 {
		annealed := sim.AnnealDiffusion(depths, profile, rcp.AnnealTempC, rcp.AnnealTimeSec, species)
		active := sim.Activation(annealed, rcp.AnnealTempC, species)
		fmt.Printf("After %gC/%gs anneal, junction: %s\n", rcp.AnnealTempC, rcp.AnnealTimeSec,
			util.FormatLengthNano(sim.JunctionDepth(depths, annealed, 0)*1e-9))
		series = append(series,
			plot.Series{Name: "annealed", X: depths, Y: annealed},
			plot.Series{Name: "active", X: depths, Y: active})
	}

	path := filepath.Join(*outDir, "implant_profile.png")
	if err := plot.LogLineChart(path, "depth (nm)", "concentration (cm^-3)", 1e12, series...); err != nil {
		log.Fatalf("Error writing profile plot: %v", err)
	}
	fmt.Printf("Profile written to %s\n", path)
}

func runOxidation(rcp *recipe.OxidationRecipe) {
	fmt.Println("\nThermal Oxidation:")
	fmt.Println("==================")

	pressure := rcp.PressureAtm
	if pressure == 0 {
		pressure = 1.0
	}
	orientation := oxide.Orientation(rcp.Orientation)
	if orientation == "" {
		orientation = oxide.Orient100
	}

	an, err := oxide.NewAnalyzer(oxide.Parameters{
		Ambient:      oxide.Ambient(rcp.Ambient),
		Temperature:  rcp.TemperatureC + 273.15,
		Pressure:     pressure,
		Orientation:  orientation,
		InitialOxide: rcp.InitialOxide.F() * 1e9,
	})
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	minutes := rcp.TimeMinutes
	if minutes == 0 {
		minutes = 60
	}

	thickness := an.Thickness(minutes) // nm
	fmt.Printf("Ambient:            %s at %gC, %g atm, %s\n", rcp.Ambient, rcp.TemperatureC, pressure, orientation)
	fmt.Printf("Oxide after %gmin:  %s\n", minutes, util.FormatLengthNano(thickness*1e-9))
	fmt.Printf("Growth regime:      %s\n", an.IdentifyRegime(minutes))
	fmt.Printf("Silicon consumed:   %s\n", util.FormatLengthNano(an.SiliconConsumed(thickness)*1e-9))

	times := util.Linspace(0, minutes, 200)
	grown := make([]float64, len(times))
	for i, t := range times {
		grown[i] = an.Thickness(t)
	}
	path := filepath.Join(*outDir, "oxide_growth.png")
	if err := plot.LineChart(path, "time (min)", "thickness (nm)",
		plot.Series{Name: "oxide", X: times, Y: grown}); err != nil {
		log.Fatalf("Error writing growth plot: %v", err)
	}
	fmt.Printf("Growth curve written to %s\n", path)
}

func runMetal(rcp *recipe.MetalRecipe) {
	fmt.Println("\nInterconnect Analysis:")
	fmt.Println("======================")

	var node metal.ProcessNode
	switch rcp.Node {
	case "", "7nm":
		node = metal.Node7nm()
	case "28nm":
		node = metal.Node28nm()
	default:
		log.Fatalf("Unknown process node: %s", rcp.Node)
	}

	layerName := rcp.LayerName
	if layerName == "" {
		layerName = "M1"
	}
	layer, ok := node.Layers[layerName]
	if !ok {
		log.Fatalf("Unknown layer %s on %s node", layerName, node.Name)
	}

	length := rcp.LineLength
	if length == 0 {
		length = 10 // um
	}
	tempK := rcp.TempC + 273.15
	if rcp.TempC == 0 {
		tempK = 300
	}

	sim := metal.NewInterconnectSimulator(node)
	rho := sim.EffectiveResistivity(layer, tempK)
	res := sim.LineResistance(layer, length, tempK)
	cap := sim.LineCapacitance(layer, length, true)

	fmt.Printf("Layer %s (%s node), %g um line at %.0f K:\n", layer.Name, node.Name, length, tempK)
	fmt.Printf("Effective resistivity: %.2f uOhm*cm (bulk %.2f)\n", rho, layer.ResistivityBulk)
	fmt.Printf("Resistance:            %s\n", util.FormatValueFactor(res, "Ohm"))
	fmt.Printf("Capacitance:           %.3f fF\n", cap)
	fmt.Printf("Elmore delay:          %.3f ps\n", sim.ElmoreDelay(layer, length, 0))
	fmt.Printf("EM lifetime at 1 mA, 378 K: %s years\n", util.FormatMagnitude(sim.EMLifetime(layer, 1.0, 378)))

	drop, err := sim.PowerGridIRDrop(layer, 8, 8, 50, 50, 10)
	if err != nil {
		log.Fatalf("IR drop solve failed: %v", err)
	}
	worst := 0.0
	for _, row := range drop {
		for _, v := range row {
			if v > worst {
				worst = v
			}
		}
	}
	fmt.Printf("Worst IR drop (8x8 grid, 10 mA): %.3f mV\n", worst)
}

func runMosfet(rcp *recipe.MosfetRecipe) {
	fmt.Println("\nMOSFET I-V:")
	fmt.Println("===========")

	widthUm := rcp.WidthUm
	if widthUm == 0 {
		widthUm = 10
	}
	lengthUm := rcp.LengthUm
	if lengthUm == 0 {
		lengthUm = 1
	}
	toxNm := rcp.ToxNm
	if toxNm == 0 {
		toxNm = 5
	}

	geom := mosfet.Geometry{
		ChannelWidth:    widthUm * 1e-6,
		ChannelLength:   lengthUm * 1e-6,
		OxideThickness:  toxNm * 1e-9,
		SubstrateDoping: 1e17,
	}

	params := mosfet.DefaultParameters()
	if strings.EqualFold(rcp.Type, "pmos") {
		params.DeviceType = mosfet.PMOS
	}
	if rcp.VthVolt != 0 {
		params.ThresholdVoltage = rcp.VthVolt
	}
	vdd := rcp.VddVolt
	if vdd == 0 {
		vdd = 1.8
	}

	an, err := mosfet.NewAnalyzer(geom, params)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	vds := util.Linspace(0, vdd, 100)
	var series []plot.Series
	for _, vgs := range util.Linspace(0.8, vdd, 4) {
		ids := make([]float64, len(vds))
		for i, v := range vds {
			ids[i] = an.DrainCurrent(vgs, v, 0) * 1e3 // mA
		}
		series = append(series, plot.Series{
			Name: fmt.Sprintf("Vgs=%.2fV", vgs), X: vds, Y: ids,
		})
	}

	path := filepath.Join(*outDir, "mosfet_iv.png")
	if err := plot.LineChart(path, "Vds (V)", "Id (mA)", series...); err != nil {
		log.Fatalf("Error writing I-V plot: %v", err)
	}

	idSat := an.DrainCurrent(vdd, vdd, 0)
	gm := an.Transconductance(vdd/2, 0.1, 0)
	fmt.Printf("W/L = %g/%g um, tox %g nm\n", widthUm, lengthUm, toxNm)
	fmt.Printf("Id at Vgs=Vds=%gV: %s\n", vdd, util.FormatValueFactor(idSat, "A"))
	fmt.Printf("gm at Vgs=%gV:     %s\n", vdd/2, util.FormatValueFactor(gm, "S"))
	fmt.Printf("I-V curves written to %s\n", path)
}

func slugify(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
