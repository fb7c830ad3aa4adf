package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/brewlogic/BrewLogic/app/models"
	"github.com/brewlogic/BrewLogic/app/repository"
	"github.com/brewlogic/BrewLogic/internal/pkg/apperror"
)

// CatalogController serves the grinder and dripper listings. It edits the
// datastore only; the in-process brewing catalog is read-only.
type CatalogController struct {
	grinders repository.GrinderRepository
	drippers repository.DripperRepository
	validate *validator.Validate
}

func NewCatalogController(repos *repository.Repositories) *CatalogController {
	return &CatalogController{grinders: repos.Grinder, drippers: repos.Dripper, validate: validator.New()}
}

type grinderRequest struct {
	Name   string `json:"name" validate:"required,max=150"`
	Type   string `json:"type" validate:"max=100"`
	Coarse string `json:"coarse" validate:"max=100"`
	Medium string `json:"medium" validate:"max=100"`
	Fine   string `json:"fine" validate:"max=100"`
}

type dripperRequest struct {
	Name  string `json:"name" validate:"required,max=150"`
	Brand string `json:"brand" validate:"max=100"`
	Type  string `json:"type" validate:"max=150"`
}

func (cc *CatalogController) HandleListGrinders(c *fiber.Ctx) error {
	grinders, err := cc.grinders.List()
	if err != nil {
		return respondError(c, apperror.External("datastore", err))
	}
	return c.JSON(grinders)
}

func (cc *CatalogController) HandleCreateGrinder(c *fiber.Ctx) error {
	var req grinderRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := cc.validate.Struct(req); err != nil {
		return respondError(c, apperror.FromValidator(err))
	}
	g := &models.Grinder{Name: req.Name, Type: req.Type, Coarse: req.Coarse, Medium: req.Medium, Fine: req.Fine}
	if err := cc.grinders.Create(g); err != nil {
		return respondError(c, apperror.External("datastore", err))
	}
	return c.Status(fiber.StatusCreated).JSON(g)
}

func (cc *CatalogController) HandleDeleteGrinder(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := cc.grinders.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (cc *CatalogController) HandleListDrippers(c *fiber.Ctx) error {
	drippers, err := cc.drippers.List()
	if err != nil {
		return respondError(c, apperror.External("datastore", err))
	}
	return c.JSON(drippers)
}

func (cc *CatalogController) HandleCreateDripper(c *fiber.Ctx) error {
	var req dripperRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := cc.validate.Struct(req); err != nil {
		return respondError(c, apperror.FromValidator(err))
	}
	d := &models.Dripper{Name: req.Name, Brand: req.Brand, Type: req.Type}
	if err := cc.drippers.Create(d); err != nil {
		return respondError(c, apperror.External("datastore", err))
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

func (cc *CatalogController) HandleDeleteDripper(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := cc.drippers.Delete(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}
