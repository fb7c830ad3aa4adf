package recipe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/brewlogic/BrewLogic/internal/pkg/brewing"
)

// BuildPrompt renders the instruction sent to the completion service. Every
// normalized field of req appears in the text.
func BuildPrompt(req brewing.BrewRequest, loc Locale) string {
	var b strings.Builder

	b.WriteString("Act as a World Class Championship Barista and Coffee Scientist.\n")
	b.WriteString("Analyze the following coffee data and generate an optimized brewing recipe based on global specialty coffee standards:\n")
	fmt.Fprintf(&b, "- Bean Identity: %s\n", orUnknown(req.Origin))
	fmt.Fprintf(&b, "- Processing: %s\n", orUnknown(req.Process))
	fmt.Fprintf(&b, "- Variety: %s\n", orUnknown(req.Variety))
	fmt.Fprintf(&b, "- Target Taste Profile: %s (options are: acidity, sweet, body, balance)\n", req.Profile)
	fmt.Fprintf(&b, "- Hardware: %s\n", orUnknown(req.Brewer))
	fmt.Fprintf(&b, "- Grinder: %s\n", grinderLine(req.Grinder))
	fmt.Fprintf(&b, "- Water Chemistry: %d PPM\n", req.PPM)
	fmt.Fprintf(&b, "- Parameters: %sg coffee, %s brew.\n", strconv.FormatFloat(req.DoseGrams, 'f', -1, 64), strings.ToUpper(string(req.Mode)))

	b.WriteString("\nRules:\n")
	b.WriteString("1. For ICED brew, use a higher ratio (approx 1:15 total) but divide into ~60% hot water and ~40% ice in server.\n")
	b.WriteString("2. For HOT brew, adjust ratio between 1:15 to 1:17 based on profile. iceAmount must be 0 for HOT brew.\n")
	b.WriteString("3. Temperature should be between 80-99C.\n")
	if req.Grinder.Medium != nil {
		b.WriteString(`4. Grind setting MUST be a specific range (e.g., "14.5 - 15.5") within or slightly adjusted from the provided Medium Range for this grinder.` + "\n")
	} else {
		b.WriteString(`4. Grind setting MUST be a specific numeric range (e.g., "14.5 - 15.5"). No calibration is available for this grinder, so estimate a medium pour-over setting for it.` + "\n")
	}
	b.WriteString("5. Sequence must include a Bloom step and 2-3 subsequent pours.\n")
	b.WriteString("6. Each step note should be concise, clear, and professional.\n")
	fmt.Fprintf(&b, `7. MANDATORY: All instructions in "action" and "note" inside the "steps" array MUST be in %s.`+"\n", loc.Language)
	if terms := termList(loc.Terms); terms != "" {
		fmt.Fprintf(&b, "8. Use professional %s coffee terms: %s.", languageName(loc.Language), terms)
	}

	return strings.TrimRight(b.String(), "\n")
}

func grinderLine(g brewing.GrinderSetting) string {
	name := orUnknown(g.Name)
	if g.Medium == nil {
		return name + " (no calibration available)"
	}
	return fmt.Sprintf("%s (Standard Medium Range: %s)", name, strings.TrimSpace(g.Medium.String()+" "+g.Unit))
}

func termList(terms []Term) string {
	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		if t.From == "" || t.To == "" {
			continue
		}
		if t.From == t.To {
			parts = append(parts, fmt.Sprintf("%q can stay as %q", t.From, t.To))
			continue
		}
		parts = append(parts, fmt.Sprintf("%q instead of %q", t.To, t.From))
	}
	return strings.Join(parts, ", ")
}

// languageName strips the parenthetical from labels like
// "Indonesian (Bahasa Indonesia)".
func languageName(language string) string {
	if i := strings.Index(language, "("); i > 0 {
		return strings.TrimSpace(language[:i])
	}
	return language
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}
