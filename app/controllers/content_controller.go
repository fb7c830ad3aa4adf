package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brewlogic/BrewLogic/internal/pkg/apperror"
)

// ContentService serves the editable landing page copy.
type ContentService interface {
	All() map[string]any
	Section(name string) map[string]any
	UpdateSection(name string, patch map[string]any) (map[string]any, error)
}

type ContentController struct {
	content ContentService
}

func NewContentController(content ContentService) *ContentController {
	return &ContentController{content: content}
}

// HandleGetContent serves GET /api/content.
func (cc *ContentController) HandleGetContent(c *fiber.Ctx) error {
	return c.JSON(cc.content.All())
}

// HandleGetSection serves GET /api/content/:section.
func (cc *ContentController) HandleGetSection(c *fiber.Ctx) error {
	return c.JSON(cc.content.Section(c.Params("section")))
}

// HandleUpdateSection serves PUT /api/admin/content/:section.
func (cc *ContentController) HandleUpdateSection(c *fiber.Ctx) error {
	patch := map[string]any{}
	if err := parseBody(c, &patch); err != nil {
		return respondError(c, err)
	}
	if len(patch) == 0 {
		return respondError(c, apperror.Invalid("", "Tidak ada perubahan"))
	}
	sec, err := cc.content.UpdateSection(c.Params("section"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "section": sec})
}
