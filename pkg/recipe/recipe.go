// Package recipe loads process recipes from YAML files. Dimension
// fields accept engineering suffixes ("150n", "2u", "1.5meg") so
// recipes read like process travelers.
package recipe

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/edp1096/toy-fab/pkg/wafer"
)

var unitMap = map[string]float64{
	"T":   1e12,
	"G":   1e9,
	"meg": 1e6,
	"K":   1e3,
	"k":   1e3,
	"m":   1e-3,
	"u":   1e-6,
	"n":   1e-9,
	"p":   1e-12,
	"f":   1e-15,
}

var valueRe = regexp.MustCompile(`^([-+]?\d*\.?\d+(?:[eE][-+]?\d+)?)(meg|[TGMKkmunpf])?$`)

// ParseValue converts "150n" style strings to float64.
func ParseValue(val string) (float64, error) {
	matches := valueRe.FindStringSubmatch(strings.TrimSpace(val))
	if matches == nil {
		return 0, fmt.Errorf("invalid value format: %s", val)
	}

	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, err
	}

	if matches[2] != "" {
		if multiplier, ok := unitMap[matches[2]]; ok {
			num *= multiplier
		}
	}
	return num, nil
}

// Value is a float64 that unmarshals from either a YAML number or a
// suffixed string.
type Value float64

func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseValue(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %v", node.Line, err)
	}
	*v = Value(parsed)
	return nil
}

func (v Value) F() float64 { return float64(v) }

// DamasceneRecipe overrides the default process parameters. Zero
// fields keep their defaults.
type DamasceneRecipe struct {
	Resolution int   `yaml:"resolution"`
	Seed       int64 `yaml:"seed"`

	WaferWidth      Value `yaml:"wafer_width"`
	WaferHeight     Value `yaml:"wafer_height"`
	BottomOxide     Value `yaml:"bottom_oxide"`
	NitrideEtchStop Value `yaml:"nitride_etch_stop"`
	TopOxide        Value `yaml:"top_oxide"`

	ViaWidth    Value `yaml:"via_width"`
	TrenchWidth Value `yaml:"trench_width"`
	TrenchDepth Value `yaml:"trench_depth"`

	EtchRateOxide   Value `yaml:"etch_rate_oxide"`
	EtchRateNitride Value `yaml:"etch_rate_nitride"`
	EtchAnisotropy  Value `yaml:"etch_anisotropy"`

	BarrierThickness Value `yaml:"barrier_thickness"`
	BarrierCoverage  Value `yaml:"barrier_coverage"`
	SeedThickness    Value `yaml:"seed_thickness"`
	SeedCoverage     Value `yaml:"seed_coverage"`

	PlatingRateBase    Value `yaml:"plating_rate_base"`
	PlatingEnhancement Value `yaml:"plating_enhancement"`
	DiffusionLength    Value `yaml:"diffusion_length"`

	CMPRemovalRate Value `yaml:"cmp_removal_rate"`
	CMPSelectivity Value `yaml:"cmp_selectivity_cu"`
	DishingFactor  Value `yaml:"dishing_factor"`
}

// Apply writes non-zero recipe fields over params.
func (r *DamasceneRecipe) Apply(params *wafer.ProcessParameters) {
	set := func(dst *float64, v Value) {
		if v != 0 {
			*dst = v.F()
		}
	}
	set(&params.WaferWidth, r.WaferWidth)
	set(&params.WaferHeight, r.WaferHeight)
	set(&params.BottomOxide, r.BottomOxide)
	set(&params.NitrideEtchStop, r.NitrideEtchStop)
	set(&params.TopOxide, r.TopOxide)
	set(&params.ViaWidth, r.ViaWidth)
	set(&params.TrenchWidth, r.TrenchWidth)
	set(&params.TrenchDepth, r.TrenchDepth)
	set(&params.EtchRateOxide, r.EtchRateOxide)
	set(&params.EtchRateNitride, r.EtchRateNitride)
	set(&params.EtchAnisotropy, r.EtchAnisotropy)
	set(&params.BarrierThickness, r.BarrierThickness)
	set(&params.BarrierStepCoverage, r.BarrierCoverage)
	set(&params.SeedThickness, r.SeedThickness)
	set(&params.SeedStepCoverage, r.SeedCoverage)
	set(&params.PlatingRateBase, r.PlatingRateBase)
	set(&params.PlatingEnhancement, r.PlatingEnhancement)
	set(&params.DiffusionLength, r.DiffusionLength)
	set(&params.CMPRemovalRate, r.CMPRemovalRate)
	set(&params.CMPSelectivityCu, r.CMPSelectivity)
	set(&params.DishingFactor, r.DishingFactor)
}

// ImplantRecipe describes one implant plus optional anneal.
type ImplantRecipe struct {
	Species         string  `yaml:"species"` // boron, bf2, phosphorus, arsenic
	EnergyKeV       float64 `yaml:"energy_kev"`
	Dose            float64 `yaml:"dose"` // cm^-2
	SubstrateDoping float64 `yaml:"substrate_doping"`
	SubstrateType   string  `yaml:"substrate_type"` // p or n

	AnnealTempC   float64 `yaml:"anneal_temp_c"`
	AnnealTimeSec float64 `yaml:"anneal_time_sec"`
}

// OxidationRecipe describes one thermal oxidation step.
type OxidationRecipe struct {
	Ambient      string  `yaml:"ambient"` // dry, wet, steam
	TemperatureC float64 `yaml:"temperature_c"`
	PressureAtm  float64 `yaml:"pressure_atm"`
	Orientation  string  `yaml:"orientation"` // <100>, <110>, <111>
	InitialOxide Value   `yaml:"initial_oxide"`
	TimeMinutes  float64 `yaml:"time_minutes"`
}

// MetalRecipe selects a process node for interconnect analysis.
type MetalRecipe struct {
	Node       string  `yaml:"node"` // 7nm or 28nm
	LayerName  string  `yaml:"layer"`
	LineLength float64 `yaml:"line_length_um"`
	TempC      float64 `yaml:"temperature_c"`
}

// MosfetRecipe describes a device for I-V sweeps.
type MosfetRecipe struct {
	Type     string  `yaml:"type"` // nmos or pmos
	WidthUm  float64 `yaml:"width_um"`
	LengthUm float64 `yaml:"length_um"`
	ToxNm    float64 `yaml:"tox_nm"`
	VthVolt  float64 `yaml:"vth"`
	VddVolt  float64 `yaml:"vdd"`
}

// Recipe is the top-level document. Absent sections are nil.
type Recipe struct {
	Title     string           `yaml:"title"`
	Damascene *DamasceneRecipe `yaml:"damascene"`
	Implant   *ImplantRecipe   `yaml:"implant"`
	Oxidation *OxidationRecipe `yaml:"oxidation"`
	Metal     *MetalRecipe     `yaml:"metal"`
	Mosfet    *MosfetRecipe    `yaml:"mosfet"`
}

// Load reads and parses a recipe file.
func Load(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read recipe %s", path)
	}
	return Parse(data)
}

// Parse decodes recipe YAML.
func Parse(data []byte) (*Recipe, error) {
	var r Recipe
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, errors.Wrap(err, "parse recipe")
	}
	return &r, nil
}
