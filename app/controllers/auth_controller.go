package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/brewlogic/BrewLogic/app/models"
	"github.com/brewlogic/BrewLogic/internal/pkg/account"
	"github.com/brewlogic/BrewLogic/internal/pkg/apperror"
	"github.com/brewlogic/BrewLogic/internal/pkg/entitlements"
	"github.com/brewlogic/BrewLogic/internal/pkg/session"
	"github.com/brewlogic/BrewLogic/internal/pkg/usercontext"
)

// AccountService is the account flow behind the auth endpoints.
type AccountService interface {
	Register(ctx context.Context, req account.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, identifier, password string) (*models.User, error)
	ForgotPassword(ctx context.Context, identifier string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}

// AuthController handles registration, sessions and password resets.
type AuthController struct {
	accounts AccountService
	now      func() time.Time
}

func NewAuthController(accounts AccountService) *AuthController {
	return &AuthController{accounts: accounts, now: time.Now}
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) identifier() string {
	if r.Username != "" {
		return r.Username
	}
	return r.Email
}

type otpRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

// userResponse renders a user without the password hash, plus membership.
func userResponse(u *models.User, now time.Time) fiber.Map {
	return fiber.Map{
		"id":                 u.ID,
		"username":           u.Username,
		"email":              u.Email,
		"name":               u.Name,
		"phone":              u.Phone,
		"role":               u.Role,
		"plan":               u.Plan,
		"subscription_start": u.SubscriptionStart,
		"subscription_end":   u.SubscriptionEnd,
		"last_login_at":      u.LastLoginAt,
		"created_at":         u.CreatedAt,
		"membership":         entitlements.MembershipStatus(u, now),
	}
}

// HandleRegister serves POST /api/users. Only an admin session may choose
// the role; every other caller registers a member.
func (ac *AuthController) HandleRegister(c *fiber.Ctx) error {
	var req account.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	if !usercontext.IsAdmin(c) {
		if req.Role != "" && req.Role != models.ROLE_MEMBER {
			log.Warnf("[Auth] public registration asked for role %q, using member", req.Role)
		}
		req.Role = models.ROLE_MEMBER
	}
	user, err := ac.accounts.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": userResponse(user, ac.now())})
}

// HandleMemberLogin serves POST /api/member-login.
func (ac *AuthController) HandleMemberLogin(c *fiber.Ctx) error {
	user, err := ac.login(c)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": userResponse(user, ac.now())})
}

// HandleAdminLogin serves POST /api/admin/login. Non-admin accounts are
// rejected before a session is created.
func (ac *AuthController) HandleAdminLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	user, err := ac.accounts.Login(c.UserContext(), req.identifier(), req.Password)
	if err != nil {
		return respondError(c, err)
	}
	if !user.IsAdmin() {
		log.Warnf("[Auth] admin login refused for %s", user.Username)
		return respondError(c, apperror.ErrForbidden)
	}
	if err := session.Login(c, user.ID, true); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "user": userResponse(user, ac.now())})
}

func (ac *AuthController) login(c *fiber.Ctx) (*models.User, error) {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return nil, err
	}
	user, err := ac.accounts.Login(c.UserContext(), req.identifier(), req.Password)
	if err != nil {
		return nil, err
	}
	if err := session.Login(c, user.ID, user.IsAdmin()); err != nil {
		return nil, err
	}
	return user, nil
}

// HandleLogout serves both logout endpoints.
func (ac *AuthController) HandleLogout(c *fiber.Ctx) error {
	if err := session.Logout(c); err != nil {
		log.Warnf("[Auth] logout: %v", err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleMe serves GET /api/me.
func (ac *AuthController) HandleMe(c *fiber.Ctx) error {
	user := usercontext.GetUser(c)
	if user == nil {
		return respondError(c, apperror.ErrUnauthorized)
	}
	return c.JSON(fiber.Map{"user": userResponse(user, ac.now())})
}

// HandleForgotPassword serves POST /api/auth/forgot-password.
func (ac *AuthController) HandleForgotPassword(c *fiber.Ctx) error {
	var req otpRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := ac.accounts.ForgotPassword(c.UserContext(), req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Kode OTP telah dikirim ke email Anda"})
}

// HandleVerifyOTP serves POST /api/auth/verify-otp.
func (ac *AuthController) HandleVerifyOTP(c *fiber.Ctx) error {
	var req otpRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := ac.accounts.VerifyOTP(c.UserContext(), req.Email, req.OTP); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleResetPassword serves POST /api/auth/reset-password.
func (ac *AuthController) HandleResetPassword(c *fiber.Ctx) error {
	var req otpRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := ac.accounts.ResetPassword(c.UserContext(), req.Email, req.OTP, req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "Password berhasil diubah"})
}
