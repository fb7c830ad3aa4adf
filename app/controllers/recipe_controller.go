package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/brewlogic/BrewLogic/internal/pkg/brewing"
	"github.com/brewlogic/BrewLogic/internal/pkg/recipe"
)

// RecipeGenerator produces a validated recipe for a normalized request.
type RecipeGenerator interface {
	Generate(ctx context.Context, req brewing.BrewRequest, locale string) (*recipe.Result, error)
}

// UsageRecorder counts successful generations.
type UsageRecorder interface {
	AddRecipe(ctx context.Context, brewer string) error
}

// RecipeController serves the brewing form options and recipe generation.
type RecipeController struct {
	catalog    *brewing.Catalog
	normalizer *brewing.Normalizer
	generator  RecipeGenerator
	usage      UsageRecorder
	timeout    time.Duration
}

func NewRecipeController(catalog *brewing.Catalog, generator RecipeGenerator, timeout time.Duration) *RecipeController {
	if catalog == nil {
		catalog = brewing.DefaultCatalog()
	}
	return &RecipeController{
		catalog:    catalog,
		normalizer: brewing.NewNormalizer(catalog),
		generator:  generator,
		timeout:    timeout,
	}
}

// WithUsage records each generated recipe in u.
func (rc *RecipeController) WithUsage(u UsageRecorder) *RecipeController {
	rc.usage = u
	return rc
}

type generateRequest struct {
	brewing.FormInput
	Locale string `json:"locale"`
}

// HandleOptions serves GET /api/brew/options.
func (rc *RecipeController) HandleOptions(c *fiber.Ctx) error {
	return c.JSON(rc.catalog.FormOptions())
}

// HandleGenerate serves POST /api/recipes/generate.
func (rc *RecipeController) HandleGenerate(c *fiber.Ctx) error {
	var req generateRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	brew, err := rc.normalizer.Normalize(req.FormInput)
	if err != nil {
		return respondError(c, err)
	}

	ctx := c.UserContext()
	if rc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, rc.timeout)
		defer cancel()
	}

	res, err := rc.generator.Generate(ctx, brew, req.Locale)
	if err != nil {
		if !errors.Is(err, recipe.ErrAIGenerationFailed) {
			return respondError(c, err)
		}
		body := fiber.Map{
			"error":     "ai_generation_failed",
			"message":   "Gagal membuat resep. Silakan coba lagi.",
			"retryable": recipe.Retryable(err),
		}
		var cv *recipe.ContractViolationError
		if errors.As(err, &cv) {
			body["reason"] = "contract_violation"
		}
		return c.Status(fiber.StatusBadGateway).JSON(body)
	}

	if rc.usage != nil {
		if err := rc.usage.AddRecipe(c.UserContext(), brew.Brewer); err != nil {
			log.Warnf("[Recipe] usage counter failed: %v", err)
		}
	}

	return c.JSON(fiber.Map{
		"recipe":     res,
		"request":    brew,
		"share_text": recipe.ShareText(brew, res),
	})
}
