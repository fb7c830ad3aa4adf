package router

import (
	"github.com/gofiber/fiber/v2"
)

// InstallRouter wires the application graph and registers every route.
func InstallRouter(app *fiber.App) *Services {
	svc := NewServices()
	// The HTTP router installs the session store and user context
	// middleware that the API guards depend on, so it goes first.
	setup(app, NewHttpRouter(svc), NewApiRouter(svc))
	return svc
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
