package brewing

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/brewlogic/BrewLogic/internal/pkg/apperror"
)

type Profile string

const (
	ProfileBalance Profile = "balance"
	ProfileSweet   Profile = "sweet"
	ProfileAcidity Profile = "acidity"
	ProfileBody    Profile = "body"
)

type TempMode string

const (
	ModeHot  TempMode = "hot"
	ModeIced TempMode = "iced"
)

// FlexString accepts either a JSON string or a JSON number.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// FormInput is the raw recipe form as submitted.
type FormInput struct {
	Origin        string     `json:"origin" form:"origin"`
	Process       string     `json:"process" form:"process"`
	CustomProcess string     `json:"customProcess" form:"customProcess"`
	Variety       string     `json:"variety" form:"variety"`
	CustomVariety string     `json:"customVariety" form:"customVariety"`
	WaterBrand    string     `json:"waterBrand" form:"waterBrand"`
	CustomPPM     FlexString `json:"customPPM" form:"customPPM"`
	Grinder       string     `json:"grinder" form:"grinder"`
	CustomGrinder string     `json:"customGrinder" form:"customGrinder"`
	Brewer        string     `json:"brewer" form:"brewer"`
	CustomBrewer  string     `json:"customBrewer" form:"customBrewer"`
	Profile       string     `json:"profile" form:"profile"`
	Dose          FlexString `json:"dose" form:"dose"`
	Temperature   string     `json:"temperature" form:"temperature"`
}

// GrinderSetting is the grinder part of a BrewRequest. Medium is nil when no
// calibration is available.
type GrinderSetting struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Unit   string `json:"unit"`
	Medium *Range `json:"medium,omitempty"`
}

// BrewRequest is the fully resolved input to recipe generation.
type BrewRequest struct {
	Origin    string         `json:"origin"`
	Process   string         `json:"process"`
	Variety   string         `json:"variety"`
	Profile   Profile        `json:"profile"`
	Brewer    string         `json:"brewer"`
	Grinder   GrinderSetting `json:"grinder"`
	PPM       int            `json:"effectivePPM"`
	DoseGrams float64        `json:"dose"`
	Mode      TempMode       `json:"temperature"`
}

// Normalizer resolves form input against a catalog.
type Normalizer struct {
	catalog *Catalog
}

func NewNormalizer(catalog *Catalog) *Normalizer {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Normalizer{catalog: catalog}
}

// Normalize turns raw form input into a BrewRequest. Unknown grinder or water
// ids never fail; a missing or non-numeric dose does.
func (n *Normalizer) Normalize(in FormInput) (BrewRequest, error) {
	dose, err := ParseDose(string(in.Dose))
	if err != nil {
		return BrewRequest{}, err
	}
	profile, err := parseProfile(in.Profile)
	if err != nil {
		return BrewRequest{}, err
	}
	mode, err := parseMode(in.Temperature)
	if err != nil {
		return BrewRequest{}, err
	}

	return BrewRequest{
		Origin:    strings.TrimSpace(in.Origin),
		Process:   ResolveManual(in.Process, in.CustomProcess),
		Variety:   ResolveManual(in.Variety, in.CustomVariety),
		Profile:   profile,
		Brewer:    ResolveManual(in.Brewer, in.CustomBrewer),
		Grinder:   n.resolveGrinder(in.Grinder, in.CustomGrinder),
		PPM:       n.EffectivePPM(in.WaterBrand, string(in.CustomPPM)),
		DoseGrams: dose,
		Mode:      mode,
	}, nil
}

// ResolveManual substitutes the custom text when the selected label is the
// manual-entry option.
func ResolveManual(selected, custom string) string {
	if strings.Contains(selected, ManualMarker) {
		return strings.TrimSpace(custom)
	}
	return strings.TrimSpace(selected)
}

// EffectivePPM returns the catalog PPM for brandID, the parsed custom value
// for "other", or DefaultPPM when neither resolves.
func (n *Normalizer) EffectivePPM(brandID, customPPM string) int {
	if brandID == OtherID {
		if v, ok := leadingInt(customPPM); ok && v >= 0 {
			return v
		}
		return DefaultPPM
	}
	if w, ok := n.catalog.Water(brandID); ok {
		return w.PPM
	}
	return DefaultPPM
}

func (n *Normalizer) resolveGrinder(id, custom string) GrinderSetting {
	g, ok := n.catalog.Grinder(id)
	if !ok {
		name := strings.TrimSpace(custom)
		if name == "" {
			name = strings.TrimSpace(id)
		}
		return GrinderSetting{ID: id, Name: name}
	}
	out := GrinderSetting{ID: g.ID, Name: g.Name, Unit: g.Unit}
	if id == OtherID && strings.TrimSpace(custom) != "" {
		out.Name = strings.TrimSpace(custom)
		out.Unit = ""
	}
	if g.Calibrated() {
		medium := g.Medium
		out.Medium = &medium
	}
	return out
}

// ParseDose accepts "15", "15.5" and "15,5".
func ParseDose(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, apperror.Invalid("dose", "dose is required")
	}
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperror.Invalid("dose", "dose must be a number")
	}
	if v <= 0 {
		return 0, apperror.Invalid("dose", "dose must be greater than zero")
	}
	return v, nil
}

func parseProfile(raw string) (Profile, error) {
	switch p := Profile(strings.ToLower(strings.TrimSpace(raw))); p {
	case "":
		return ProfileBalance, nil
	case ProfileBalance, ProfileSweet, ProfileAcidity, ProfileBody:
		return p, nil
	default:
		return "", apperror.Invalid("profile", "unknown taste profile")
	}
}

func parseMode(raw string) (TempMode, error) {
	switch m := TempMode(strings.ToLower(strings.TrimSpace(raw))); m {
	case "":
		return ModeHot, nil
	case ModeHot, ModeIced:
		return m, nil
	default:
		return "", apperror.Invalid("temperature", "temperature must be hot or iced")
	}
}

// leadingInt parses an optional sign followed by leading digits, ignoring any
// trailing text ("120 ppm" -> 120).
func leadingInt(raw string) (int, bool) {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	v, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return v, true
}
