package recipe

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2/log"
	"google.golang.org/genai"

	"github.com/brewlogic/BrewLogic/internal/pkg/brewing"
)

// Completer is a structured-completion backend.
type Completer interface {
	Complete(ctx context.Context, prompt string, schema *genai.Schema) ([]byte, error)
}

// Generator builds prompts, calls the completer once and validates the answer.
// It never retries on its own.
type Generator struct {
	completer Completer
	locales   *LocaleSet
	locale    string
}

func NewGenerator(completer Completer, locales *LocaleSet, defaultLocale string) *Generator {
	if defaultLocale == "" && locales != nil {
		defaultLocale = locales.Default()
	}
	return &Generator{completer: completer, locales: locales, locale: defaultLocale}
}

// Generate returns a validated recipe for req. Every failure wraps
// ErrAIGenerationFailed.
func (g *Generator) Generate(ctx context.Context, req brewing.BrewRequest, locale string) (*Result, error) {
	if locale == "" {
		locale = g.locale
	}
	loc := g.locales.Lookup(locale)
	prompt := BuildPrompt(req, loc)

	raw, err := g.completer.Complete(ctx, prompt, CompletionSchema())
	if err != nil {
		if !errors.Is(err, ErrAIGenerationFailed) {
			err = &TransportError{Err: err}
		}
		log.Warnf("[Recipe] completion failed: %v", err)
		return nil, err
	}

	res, err := ParseResult(raw, req.Mode, loc)
	if err != nil {
		log.Warnf("[Recipe] rejected completion: %v", err)
		return nil, err
	}
	res.EffectivePPM = req.PPM
	return res, nil
}
