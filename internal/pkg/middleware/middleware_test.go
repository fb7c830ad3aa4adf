package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/brewlogic/BrewLogic/app/models"
	"github.com/brewlogic/BrewLogic/internal/pkg/session"
)

type fakeLoader map[uint]*models.User

func (f fakeLoader) GetByID(id uint) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newApp(t *testing.T, users fakeLoader) *fiber.App {
	t.Helper()
	session.UseStore(fibersession.New())
	t.Cleanup(func() { session.UseStore(nil) })

	app := fiber.New()
	app.Use(UserContextMiddleware(users))
	app.Post("/login/:id", func(c *fiber.Ctx) error {
		id, _ := c.ParamsInt("id")
		return session.Login(c, uint(id), false)
	})
	app.Get("/brew", RequireMember, func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/admin", RequireAdmin, func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/me", RequireLogin, func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func get(t *testing.T, app *fiber.App, path string, cookie string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func login(t *testing.T, app *fiber.App, id string) string {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("POST", "/login/"+id, nil), -1)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Cookies())
	c := resp.Cookies()[0]
	return c.Name + "=" + c.Value
}

func TestGuards(t *testing.T) {
	end := time.Now().Add(24 * time.Hour)
	past := time.Now().Add(-24 * time.Hour)
	active := &models.User{ID: 1, Username: "aktif", Role: models.ROLE_MEMBER, SubscriptionEnd: &end}
	active.SetPlan("Pro Brewer")
	expired := &models.User{ID: 2, Username: "lewat", Role: models.ROLE_MEMBER, SubscriptionEnd: &past}
	expired.SetPlan("Starter")
	admin := &models.User{ID: 3, Username: "admin", Role: models.ROLE_ADMIN}

	app := newApp(t, fakeLoader{1: active, 2: expired, 3: admin})

	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/brew", ""))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/admin", ""))
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", ""))

	c := login(t, app, "1")
	assert.Equal(t, fiber.StatusOK, get(t, app, "/brew", c))
	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/admin", c))
	assert.Equal(t, fiber.StatusOK, get(t, app, "/me", c))

	c = login(t, app, "2")
	assert.Equal(t, fiber.StatusForbidden, get(t, app, "/brew", c))

	c = login(t, app, "3")
	assert.Equal(t, fiber.StatusOK, get(t, app, "/brew", c))
	assert.Equal(t, fiber.StatusOK, get(t, app, "/admin", c))

	// A session pointing at a deleted account is treated as anonymous.
	c = login(t, app, "9")
	assert.Equal(t, fiber.StatusUnauthorized, get(t, app, "/me", c))
}
