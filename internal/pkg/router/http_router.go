package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/brewlogic/BrewLogic/internal/pkg/middleware"
	"github.com/brewlogic/BrewLogic/internal/pkg/session"
)

type Router interface {
	InstallRouter(app *fiber.App)
}

// HttpRouter installs the cross-cutting middleware shared by all routes.
type HttpRouter struct {
	svc *Services
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware(h.svc.Repos.User))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
}

func NewHttpRouter(svc *Services) *HttpRouter {
	return &HttpRouter{svc: svc}
}
