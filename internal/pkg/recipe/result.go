package recipe

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/brewlogic/BrewLogic/internal/pkg/brewing"
)

const (
	// MinSteps is a bloom plus at least two pours.
	MinSteps = 3
	// IcedWaterTolerance bounds |brewingWater + iceAmount - totalWater| as a
	// fraction of totalWater.
	IcedWaterTolerance = 0.10
)

type Step struct {
	Time   string  `json:"time"`
	Action string  `json:"action"`
	Amount float64 `json:"amount"`
	Note   string  `json:"note"`
}

// Result is a validated recipe.
type Result struct {
	Temp         float64 `json:"temp"`
	Time         string  `json:"time"`
	Grind        string  `json:"grind"`
	TotalWater   float64 `json:"totalWater"`
	BrewingWater float64 `json:"brewingWater"`
	IceAmount    float64 `json:"iceAmount"`
	Ratio        string  `json:"ratio"`
	Steps        []Step  `json:"steps"`
	EffectivePPM int     `json:"effectivePPM"`
}

// ParseResult validates raw against ResponseSchema and the brewing rules for
// mode. Nothing is coerced: any mismatch is a ContractViolationError.
func ParseResult(raw []byte, mode brewing.TempMode, loc Locale) (*Result, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, violation("response is not valid JSON", err)
	}
	if err := ResponseSchema().VisitJSON(doc); err != nil {
		return nil, violation("response does not match schema", err)
	}

	var res Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, violation("response does not decode", err)
	}
	if err := checkSequence(res.Steps, loc); err != nil {
		return nil, err
	}
	if err := checkWater(&res, mode); err != nil {
		return nil, err
	}
	return &res, nil
}

func checkSequence(steps []Step, loc Locale) error {
	if len(steps) < MinSteps {
		return violation(fmt.Sprintf("expected a bloom and at least %d pours, got %d steps", MinSteps-1, len(steps)), nil)
	}
	if !loc.isBloom(steps[0].Action) {
		return violation("first step is not a bloom", nil)
	}
	return nil
}

func checkWater(res *Result, mode brewing.TempMode) error {
	switch mode {
	case brewing.ModeIced:
		if res.IceAmount <= 0 {
			return violation("iced recipe without ice", nil)
		}
		diff := math.Abs(res.BrewingWater + res.IceAmount - res.TotalWater)
		if diff > res.TotalWater*IcedWaterTolerance {
			return violation(fmt.Sprintf("brewingWater %.0f + iceAmount %.0f does not add up to totalWater %.0f", res.BrewingWater, res.IceAmount, res.TotalWater), nil)
		}
	default:
		if res.IceAmount != 0 {
			return violation("hot recipe with ice", nil)
		}
	}
	return nil
}

// ShareText renders a recipe as plain text for copying into chats.
func ShareText(req brewing.BrewRequest, res *Result) string {
	if res == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "BREWLOGIC AI-OPTIMIZED RECIPE\n%s | %s (%s)\n", req.Origin, req.Brewer, strings.ToUpper(string(req.Mode)))
	fmt.Fprintf(&b, "Target: %s | Temp: %s°C\n", strings.ToUpper(string(req.Profile)), num(res.Temp))
	fmt.Fprintf(&b, "Grind: %s | Ratio: %s\n", res.Grind, res.Ratio)
	if res.IceAmount > 0 {
		fmt.Fprintf(&b, "Ice in Server: %sg | Hot Water: %sml\n", num(res.IceAmount), num(res.BrewingWater))
	}
	b.WriteString("\nSteps:\n")
	for i, s := range res.Steps {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s: %s -> %sml\n   (%s)", s.Time, s.Action, num(s.Amount), s.Note)
	}
	fmt.Fprintf(&b, "\n\nTotal Estimated Time: %s", res.Time)
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
