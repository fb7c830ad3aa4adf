package brewing

import (
	"sort"
	"strconv"
	"strings"
)

const (
	// OtherID is the catalog id meaning "not in the list, use the custom value".
	OtherID = "other"
	// ManualMarker is the label fragment of the manual-entry option in process,
	// variety and brewer lists.
	ManualMarker = "Lainnya"
	// DefaultPPM is used whenever a water PPM cannot be resolved.
	DefaultPPM = 50
)

// Range is a (min, max) pair in the grinder's own unit.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// IsZero reports whether the range carries no calibration data.
func (r Range) IsZero() bool {
	return r.Min == 0 && r.Max == 0
}

// String renders the range the way baristas write it, e.g. "18 - 24".
func (r Range) String() string {
	return formatNumber(r.Min) + " - " + formatNumber(r.Max)
}

// GrinderProfile describes one grinder model.
type GrinderProfile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Unit   string `json:"unit"`
	Coarse Range  `json:"coarse"`
	Medium Range  `json:"medium"`
	Fine   Range  `json:"fine"`
}

// Calibrated is false for the "other" sentinel.
func (g GrinderProfile) Calibrated() bool {
	return !(g.Coarse.IsZero() && g.Medium.IsZero() && g.Fine.IsZero())
}

// WaterProfile describes a bottled water brand.
type WaterProfile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	PPM  int    `json:"ppm"`
}

// Dripper is a reference entry for pour-over brewers.
type Dripper struct {
	Name  string `json:"name"`
	Brand string `json:"brand"`
	Type  string `json:"type"`
}

// Catalog is a read-only lookup over grinders and water profiles. It is safe
// for concurrent readers and has no mutation methods.
type Catalog struct {
	grinders     map[string]GrinderProfile
	grinderOrder []string
	water        map[string]WaterProfile
	waterOrder   []string
	drippers     []Dripper
}

// NewCatalog builds a catalog from the given tables. Inputs are copied.
func NewCatalog(grinders []GrinderProfile, water []WaterProfile, drippers []Dripper) *Catalog {
	c := &Catalog{
		grinders: make(map[string]GrinderProfile, len(grinders)),
		water:    make(map[string]WaterProfile, len(water)),
		drippers: append([]Dripper(nil), drippers...),
	}
	for _, g := range grinders {
		if _, dup := c.grinders[g.ID]; !dup {
			c.grinderOrder = append(c.grinderOrder, g.ID)
		}
		c.grinders[g.ID] = g
	}
	for _, w := range water {
		if _, dup := c.water[w.ID]; !dup {
			c.waterOrder = append(c.waterOrder, w.ID)
		}
		c.water[w.ID] = w
	}
	return c
}

// DefaultCatalog returns the built-in reference tables.
func DefaultCatalog() *Catalog {
	return NewCatalog(defaultGrinders, defaultWater, defaultDrippers)
}

func (c *Catalog) Grinder(id string) (GrinderProfile, bool) {
	g, ok := c.grinders[id]
	return g, ok
}

func (c *Catalog) Water(id string) (WaterProfile, bool) {
	w, ok := c.water[id]
	return w, ok
}

// Grinders returns grinders in catalog order.
func (c *Catalog) Grinders() []GrinderProfile {
	out := make([]GrinderProfile, 0, len(c.grinderOrder))
	for _, id := range c.grinderOrder {
		out = append(out, c.grinders[id])
	}
	return out
}

func (c *Catalog) WaterProfiles() []WaterProfile {
	out := make([]WaterProfile, 0, len(c.waterOrder))
	for _, id := range c.waterOrder {
		out = append(out, c.water[id])
	}
	return out
}

// Drippers returns drippers sorted by name.
func (c *Catalog) Drippers() []Dripper {
	out := append([]Dripper(nil), c.drippers...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Options groups the selectable form values.
type Options struct {
	Processes []string         `json:"processes"`
	Varieties []string         `json:"varieties"`
	Brewers   []string         `json:"brewers"`
	Profiles  []ProfileOption  `json:"profiles"`
	Water     []WaterProfile   `json:"water"`
	Grinders  []GrinderProfile `json:"grinders"`
}

// ProfileOption is a target taste profile with its display label.
type ProfileOption struct {
	ID    Profile `json:"id"`
	Label string  `json:"label"`
}

// FormOptions returns everything a recipe form needs to render its selects.
func (c *Catalog) FormOptions() Options {
	return Options{
		Processes: append([]string(nil), ProcessOptions...),
		Varieties: append([]string(nil), VarietyOptions...),
		Brewers:   append([]string(nil), BrewerOptions...),
		Profiles:  append([]ProfileOption(nil), ProfileOptions...),
		Water:     c.WaterProfiles(),
		Grinders:  c.Grinders(),
	}
}

// FormatSetting renders a range with its unit for display in reference
// listings, e.g. "18 - 24 Klik".
func FormatSetting(r Range, unit string) string {
	if r.IsZero() {
		return "-"
	}
	return strings.TrimSpace(r.String() + " " + unit)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
