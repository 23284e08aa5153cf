package generation

import (
	"fmt"
	"math"
)

// Biomes assigned by the hardcoded precedence tiers, plus the fallback.
const (
	BiomeRiver      = "river"
	BiomeOcean      = "ocean"
	BiomeDeepOcean  = "deep_ocean"
	BiomeBeach      = "beach"
	BiomeMountain   = "mountain"
	BiomeSnowyPeaks = "snowy_peaks"
	BiomeVolcanic   = "volcanic"
	BiomeGrassland  = "grassland"
)

// TierBiomes lists every biome the classifier can return without consulting
// the rule table. A world needs an appearance for each of them.
var TierBiomes = []string{
	BiomeRiver, BiomeOcean, BiomeDeepOcean, BiomeBeach,
	BiomeMountain, BiomeSnowyPeaks, BiomeVolcanic, BiomeGrassland,
}

// isWaterTier reports biomes that climate rules must never select
func isWaterTier(id string) bool {
	switch id {
	case BiomeRiver, BiomeOcean, BiomeDeepOcean, BiomeBeach:
		return true
	}
	return false
}

// Range is an inclusive [Min, Max] interval
type Range struct {
	Min, Max float64
}

// Contains checks if v lies within the range
func (r Range) Contains(v float64) bool {
	return r.Min <= v && v <= r.Max
}

func (r Range) validate() error {
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) {
		return fmt.Errorf("range bound is NaN")
	}
	if r.Min > r.Max {
		return fmt.Errorf("range [%v, %v] is inverted", r.Min, r.Max)
	}
	return nil
}

// BiomeRule defines when a biome applies and how its tiles look
type BiomeRule struct {
	ID string

	// Elevation is optional; nil matches any elevation
	Elevation   *Range
	Temperature Range
	Humidity    Range

	Chars  []string
	Colors []RGB
}

// Matches checks the climate values against every range of the rule
func (r BiomeRule) Matches(elevation, temperature, humidity float64) bool {
	if r.Elevation != nil && !r.Elevation.Contains(elevation) {
		return false
	}
	return r.Temperature.Contains(temperature) && r.Humidity.Contains(humidity)
}

// RuleTable is the immutable, ordered set of biome rules
type RuleTable struct {
	rules []BiomeRule
	index map[string]int
}

// NewRuleTable validates rules and freezes them in the given order
func NewRuleTable(rules []BiomeRule) (*RuleTable, error) {
	t := &RuleTable{
		rules: make([]BiomeRule, 0, len(rules)),
		index: make(map[string]int, len(rules)),
	}

	for _, r := range rules {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: biome rule without a name", ErrConfiguration)
		}
		if _, dup := t.index[r.ID]; dup {
			return nil, fmt.Errorf("%w: biome %q declared twice", ErrConfiguration, r.ID)
		}
		if err := validateRule(r); err != nil {
			return nil, fmt.Errorf("%w: biome %q: %v", ErrConfiguration, r.ID, err)
		}

		// Copy slices so callers cannot mutate the table afterwards
		r.Chars = append([]string(nil), r.Chars...)
		r.Colors = append([]RGB(nil), r.Colors...)
		if r.Elevation != nil {
			e := *r.Elevation
			r.Elevation = &e
		}

		t.index[r.ID] = len(t.rules)
		t.rules = append(t.rules, r)
	}

	return t, nil
}

func validateRule(r BiomeRule) error {
	if r.Elevation != nil {
		if err := r.Elevation.validate(); err != nil {
			return fmt.Errorf("elevation: %v", err)
		}
	}
	if err := r.Temperature.validate(); err != nil {
		return fmt.Errorf("temperature: %v", err)
	}
	if err := r.Humidity.validate(); err != nil {
		return fmt.Errorf("humidity: %v", err)
	}
	if len(r.Chars) == 0 {
		return fmt.Errorf("no chars")
	}
	if len(r.Colors) == 0 {
		return fmt.Errorf("no colors")
	}
	return nil
}

// Len returns the number of rules
func (t *RuleTable) Len() int {
	return len(t.rules)
}

// Rules returns the rules in declaration order
func (t *RuleTable) Rules() []BiomeRule {
	return append([]BiomeRule(nil), t.rules...)
}

// Get returns a rule by biome name
func (t *RuleTable) Get(id string) (BiomeRule, bool) {
	i, ok := t.index[id]
	if !ok {
		return BiomeRule{}, false
	}
	return t.rules[i], true
}

// Require fails if any of the named biomes is missing from the table
func (t *RuleTable) Require(ids ...string) error {
	for _, id := range ids {
		if _, ok := t.index[id]; !ok {
			return fmt.Errorf("%w: rule table is missing referenced biome %q", ErrConfiguration, id)
		}
	}
	return nil
}

// Thresholds are the elevation/temperature cut-offs of the precedence tiers
type Thresholds struct {
	Ocean     float64 `json:"ocean"`
	BeachBand float64 `json:"beach_band"`
	Mountain  float64 `json:"mountain"`
	ColdPeak  float64 `json:"cold_peak"`
	HotPeak   float64 `json:"hot_peak"`
}

// DefaultThresholds returns the standard tier cut-offs
func DefaultThresholds() Thresholds {
	return Thresholds{
		Ocean:     0.2,
		BeachBand: 0.05,
		Mountain:  0.6,
		ColdPeak:  0.3,
		HotPeak:   0.8,
	}
}

// Validate checks that the tiers are ordered
func (th Thresholds) Validate() error {
	switch {
	case !finite(th.Ocean) || !finite(th.BeachBand) || !finite(th.Mountain) ||
		!finite(th.ColdPeak) || !finite(th.HotPeak):
		return fmt.Errorf("%w: thresholds must be finite", ErrConfiguration)
	case th.BeachBand < 0:
		return fmt.Errorf("%w: beach band must not be negative", ErrConfiguration)
	case th.Mountain < th.Ocean+th.BeachBand:
		return fmt.Errorf("%w: mountain threshold %v below the beach band", ErrConfiguration, th.Mountain)
	case th.ColdPeak > th.HotPeak:
		return fmt.Errorf("%w: cold peak %v above hot peak %v", ErrConfiguration, th.ColdPeak, th.HotPeak)
	}
	return nil
}

// Cell is the per-cell input to classification
type Cell struct {
	Elevation   float64
	Temperature float64
	Humidity    float64
	River       bool

	// Regional drift added to the climate before the rule table is consulted
	TemperatureDrift float64
	HumidityDrift    float64
}

// Classifier maps cells to biome names
type Classifier struct {
	rules      *RuleTable
	thresholds Thresholds
}

// NewClassifier creates a classifier over an immutable rule table
func NewClassifier(rules *RuleTable, th Thresholds) *Classifier {
	return &Classifier{rules: rules, thresholds: th}
}

// Classify picks a biome for a cell without regional drift
func (c *Classifier) Classify(elevation, temperature, humidity float64, isRiver bool) string {
	return c.ClassifyCell(Cell{
		Elevation:   elevation,
		Temperature: temperature,
		Humidity:    humidity,
		River:       isRiver,
	})
}

// ClassifyCell picks a biome. Water and elevation tiers always win over the
// rule table; the first matching rule wins over later ones; grassland is
// the fallback.
func (c *Classifier) ClassifyCell(cell Cell) string {
	th := c.thresholds

	if cell.River {
		return BiomeRiver
	}

	elev := cell.Elevation
	if elev < th.Ocean {
		if elev < th.Ocean/2 {
			return BiomeDeepOcean
		}
		return BiomeOcean
	}
	if elev < th.Ocean+th.BeachBand {
		return BiomeBeach
	}

	if elev > th.Mountain {
		switch {
		case cell.Temperature < th.ColdPeak:
			return BiomeSnowyPeaks
		case cell.Temperature > th.HotPeak:
			return BiomeVolcanic
		}
		return BiomeMountain
	}

	temp := cell.Temperature + cell.TemperatureDrift
	humid := cell.Humidity + cell.HumidityDrift
	if c.rules != nil {
		for _, r := range c.rules.rules {
			if isWaterTier(r.ID) {
				continue
			}
			if r.Matches(elev, temp, humid) {
				return r.ID
			}
		}
	}

	return BiomeGrassland
}
