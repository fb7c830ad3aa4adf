package controllers

import (
	"context"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewlogic/BrewLogic/app/models"
	"github.com/brewlogic/BrewLogic/internal/pkg/account"
	"github.com/brewlogic/BrewLogic/internal/pkg/apperror"
	"github.com/brewlogic/BrewLogic/internal/pkg/session"
	"github.com/brewlogic/BrewLogic/internal/pkg/usercontext"
)

type fakeAccounts struct {
	users      map[string]*models.User
	registered []account.RegisterRequest
	forgotFor  string
	resetErr   error
}

func (f *fakeAccounts) Register(_ context.Context, req account.RegisterRequest) (*models.User, error) {
	if _, ok := f.users[req.Username]; ok {
		return nil, apperror.ErrDuplicateUser
	}
	f.registered = append(f.registered, req)
	u := &models.User{ID: uint(len(f.registered)), Username: req.Username, Email: req.Email, Role: req.Role}
	if u.Role == "" {
		u.Role = models.ROLE_MEMBER
	}
	u.SetPlan(req.Plan)
	return u, nil
}

func (f *fakeAccounts) Login(_ context.Context, identifier, password string) (*models.User, error) {
	u, ok := f.users[identifier]
	if !ok {
		return nil, account.ErrUnknownUser
	}
	if password != "secret" {
		return nil, account.ErrWrongPassword
	}
	return u, nil
}

func (f *fakeAccounts) ForgotPassword(_ context.Context, identifier string) error {
	f.forgotFor = identifier
	return nil
}

func (f *fakeAccounts) VerifyOTP(_ context.Context, _, otp string) error {
	if otp != "123456" {
		return apperror.Invalid("otp", "Kode OTP salah atau kadaluarsa")
	}
	return nil
}

func (f *fakeAccounts) ResetPassword(_ context.Context, _, _, _ string) error {
	return f.resetErr
}

func newAuthApp(t *testing.T, accounts *fakeAccounts) *fiber.App {
	t.Helper()
	session.UseStore(fibersession.New(fibersession.Config{KeyLookup: "cookie:brewlogic_session"}))
	t.Cleanup(func() { session.UseStore(nil) })

	ac := NewAuthController(accounts)
	ac.now = func() time.Time { return time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC) }

	app := fiber.New()
	app.Post("/api/users", ac.HandleRegister)
	app.Post("/api/member-login", ac.HandleMemberLogin)
	app.Post("/api/admin/login", ac.HandleAdminLogin)
	app.Post("/api/member-logout", ac.HandleLogout)
	app.Post("/api/auth/forgot-password", ac.HandleForgotPassword)
	app.Post("/api/auth/verify-otp", ac.HandleVerifyOTP)
	app.Post("/api/auth/reset-password", ac.HandleResetPassword)
	return app
}

func TestHandleRegister(t *testing.T) {
	accounts := &fakeAccounts{users: map[string]*models.User{"taken@brew.id": {ID: 9, Username: "taken@brew.id"}}}
	app := newAuthApp(t, accounts)

	resp, body := doJSON(t, app, "POST", "/api/users", fiber.Map{"username": "new@brew.id", "password": "pw", "plan": "Pro Plan"}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "new@brew.id", user["username"])
	assert.NotContains(t, user, "password")
	require.Len(t, accounts.registered, 1)
	assert.Equal(t, "Pro Plan", accounts.registered[0].Plan)

	resp, body = doJSON(t, app, "POST", "/api/users", fiber.Map{"username": "taken@brew.id", "password": "pw"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Username already taken", body["error"])
}

func TestHandleRegisterIgnoresRoleForAnonymousCallers(t *testing.T) {
	accounts := &fakeAccounts{users: map[string]*models.User{}}
	app := newAuthApp(t, accounts)

	resp, body := doJSON(t, app, "POST", "/api/users", fiber.Map{"username": "evil@brew.id", "password": "pw", "role": "admin", "plan": "Lifetime Access"}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, models.ROLE_MEMBER, body["user"].(map[string]any)["role"])
	require.Len(t, accounts.registered, 1)
	assert.Equal(t, models.ROLE_MEMBER, accounts.registered[0].Role)
}

func TestHandleRegisterAdminSessionMayChooseRole(t *testing.T) {
	accounts := &fakeAccounts{users: map[string]*models.User{}}
	ac := NewAuthController(accounts)
	app := fiber.New()
	app.Post("/api/users", func(c *fiber.Ctx) error {
		usercontext.Set(c, usercontext.UserContext{UserID: 1, IsLoggedIn: true, IsAdmin: true})
		return c.Next()
	}, ac.HandleRegister)

	resp, _ := doJSON(t, app, "POST", "/api/users", fiber.Map{"username": "staff@brew.id", "password": "pw", "role": "admin"}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, accounts.registered, 1)
	assert.Equal(t, models.ROLE_ADMIN, accounts.registered[0].Role)
}

func TestHandleMemberLogin(t *testing.T) {
	plan := "Pro Plan"
	end := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	accounts := &fakeAccounts{users: map[string]*models.User{
		"ana": {ID: 1, Username: "ana", Role: models.ROLE_MEMBER, Plan: &plan, SubscriptionEnd: &end},
	}}
	app := newAuthApp(t, accounts)

	resp, body := doJSON(t, app, "POST", "/api/member-login", fiber.Map{"username": "ana", "password": "secret"}, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Cookies())
	membership := body["user"].(map[string]any)["membership"].(map[string]any)
	assert.Equal(t, "active", membership["status"])

	resp, body = doJSON(t, app, "POST", "/api/member-login", fiber.Map{"username": "ana", "password": "nope"}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Password salah", body["error"])

	resp, body = doJSON(t, app, "POST", "/api/member-login", fiber.Map{"email": "ghost", "password": "secret"}, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Username atau email tidak terdaftar", body["error"])
}

func TestHandleAdminLoginRejectsMembers(t *testing.T) {
	accounts := &fakeAccounts{users: map[string]*models.User{
		"ana":  {ID: 1, Username: "ana", Role: models.ROLE_MEMBER},
		"root": {ID: 2, Username: "root", Role: models.ROLE_ADMIN},
	}}
	app := newAuthApp(t, accounts)

	resp, body := doJSON(t, app, "POST", "/api/admin/login", fiber.Map{"username": "ana", "password": "secret"}, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "forbidden", body["code"])
	assert.Empty(t, resp.Cookies())

	resp, _ = doJSON(t, app, "POST", "/api/admin/login", fiber.Map{"username": "root", "password": "secret"}, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Cookies())
}

func TestHandleMe(t *testing.T) {
	ac := NewAuthController(&fakeAccounts{})
	app := fiber.New()
	app.Get("/anon", ac.HandleMe)
	app.Get("/me", func(c *fiber.Ctx) error {
		usercontext.Set(c, usercontext.UserContext{UserID: 3, IsLoggedIn: true, User: &models.User{ID: 3, Username: "budi"}})
		return c.Next()
	}, ac.HandleMe)

	resp, _ := doJSON(t, app, "GET", "/anon", nil, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, body := doJSON(t, app, "GET", "/me", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]any)
	assert.Equal(t, "budi", user["username"])
	assert.Equal(t, "none", user["membership"].(map[string]any)["status"])
}

func TestPasswordResetEndpoints(t *testing.T) {
	accounts := &fakeAccounts{}
	app := newAuthApp(t, accounts)

	resp, _ := doJSON(t, app, "POST", "/api/auth/forgot-password", fiber.Map{"email": "ana@brew.id"}, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ana@brew.id", accounts.forgotFor)

	resp, body := doJSON(t, app, "POST", "/api/auth/verify-otp", fiber.Map{"email": "ana@brew.id", "otp": "000000"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "otp", body["field"])

	resp, _ = doJSON(t, app, "POST", "/api/auth/verify-otp", fiber.Map{"email": "ana@brew.id", "otp": "123456"}, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	accounts.resetErr = apperror.Invalid("otp", "Invalid or expired OTP")
	resp, body = doJSON(t, app, "POST", "/api/auth/reset-password", fiber.Map{"email": "ana@brew.id", "otp": "1", "newPassword": "x"}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid or expired OTP", body["error"])
}
