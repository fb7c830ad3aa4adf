package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/brewlogic/BrewLogic/app/models"
	"github.com/brewlogic/BrewLogic/app/repository"
	"github.com/brewlogic/BrewLogic/internal/pkg/account"
	"github.com/brewlogic/BrewLogic/internal/pkg/apperror"
	"github.com/brewlogic/BrewLogic/internal/pkg/billing"
	"github.com/brewlogic/BrewLogic/internal/pkg/payment"
	"github.com/brewlogic/BrewLogic/internal/pkg/statistics"
)

// Registrar creates accounts.
type Registrar interface {
	Register(ctx context.Context, req account.RegisterRequest) (*models.User, error)
}

// BillingService covers the admin-side plan operations.
type BillingService interface {
	VerifyPendingUser(ctx context.Context, userID uint) (*models.User, error)
	ConfirmTransaction(ctx context.Context, txID string) (*models.Transaction, *models.User, error)
	RecordManualGrant(ctx context.Context, user *models.User, plan string, amount int64) (*models.Transaction, error)
}

// DashboardService returns and invalidates the admin overview.
type DashboardService interface {
	GetDashboard(ctx context.Context) (*statistics.Dashboard, error)
	Invalidate(ctx context.Context)
}

// AdminController handles the back-office JSON API.
type AdminController struct {
	repos    *repository.Repositories
	accounts Registrar
	billing  BillingService
	stats    DashboardService
	validate *validator.Validate
	now      func() time.Time
}

func NewAdminController(repos *repository.Repositories, accounts Registrar, b BillingService, stats DashboardService) *AdminController {
	return &AdminController{
		repos:    repos,
		accounts: accounts,
		billing:  b,
		stats:    stats,
		validate: validator.New(),
		now:      time.Now,
	}
}

// AdminUserCreate is the add-user form. Amount is what the member paid
// offline for Plan.
type AdminUserCreate struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	Plan     string `json:"plan"`
	Amount   int64  `json:"amount" validate:"gte=0"`
}

// AdminUserUpdateRequest lists the fields an admin may change. Nil fields
// are left alone; an empty plan clears the membership.
type AdminUserUpdateRequest struct {
	Name *string `json:"name" validate:"omitempty,max=150"`
	Role *string `json:"role" validate:"omitempty,oneof=member admin"`
	Plan *string `json:"plan" validate:"omitempty,max=150"`
}

// HandleDashboard serves GET /api/admin/dashboard.
func (ac *AdminController) HandleDashboard(c *fiber.Ctx) error {
	d, err := ac.stats.GetDashboard(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(d)
}

// HandleListUsers serves GET /api/admin/users.
func (ac *AdminController) HandleListUsers(c *fiber.Ctx) error {
	users, err := ac.repos.User.List()
	if err != nil {
		return respondError(c, err)
	}
	now := ac.now()
	out := make([]fiber.Map, 0, len(users))
	for i := range users {
		out = append(out, userResponse(&users[i], now))
	}
	return c.JSON(fiber.Map{"users": out})
}

// HandleCreateUser serves POST /api/admin/users. A non-pending plan is
// granted right away and recorded as a manual_success transaction.
func (ac *AdminController) HandleCreateUser(c *fiber.Ctx) error {
	var req AdminUserCreate
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := ac.validate.Struct(req); err != nil {
		return respondError(c, apperror.FromValidator(err))
	}

	ctx := c.UserContext()
	user, err := ac.accounts.Register(ctx, account.RegisterRequest{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     req.Role,
		Plan:     req.Plan,
	})
	if err != nil {
		return respondError(c, err)
	}

	if plan := user.PlanName(); plan != "" && !billing.IsPending(plan) {
		if _, err := ac.billing.RecordManualGrant(ctx, user, plan, req.Amount); err != nil {
			log.Warnf("[Admin] manual grant record for %s failed: %v", user.Username, err)
		}
	}
	ac.stats.Invalidate(ctx)
	log.Infof("[Admin] user %s created", user.Username)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "user": userResponse(user, ac.now())})
}

// HandleUpdateUser serves PUT /api/admin/users/:id.
func (ac *AdminController) HandleUpdateUser(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var req AdminUserUpdateRequest
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	if err := ac.validate.Struct(req); err != nil {
		return respondError(c, apperror.FromValidator(err))
	}

	user, err := ac.repos.User.GetByID(id)
	if err != nil {
		return respondError(c, err)
	}
	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Plan != nil {
		plan := strings.TrimSpace(*req.Plan)
		if plan != user.PlanName() {
			billing.ApplyPlan(user, plan, ac.now())
		}
	}
	if err := ac.repos.User.Save(user); err != nil {
		return respondError(c, apperror.External("datastore", err))
	}
	ac.stats.Invalidate(c.UserContext())
	return c.JSON(fiber.Map{"success": true, "user": userResponse(user, ac.now())})
}

// HandleDeleteUser serves DELETE /api/admin/users/:id.
func (ac *AdminController) HandleDeleteUser(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	if err := ac.repos.User.Delete(id); err != nil {
		return respondError(c, err)
	}
	ac.stats.Invalidate(c.UserContext())
	log.Infof("[Admin] user %d deleted", id)
	return c.JSON(fiber.Map{"success": true})
}

// HandleVerifyUser serves POST /api/admin/users/:id/verify.
func (ac *AdminController) HandleVerifyUser(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	user, err := ac.billing.VerifyPendingUser(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	ac.stats.Invalidate(c.UserContext())
	log.Infof("[Admin] user %s verified on %s", user.Username, user.PlanName())
	return c.JSON(fiber.Map{"success": true, "user": userResponse(user, ac.now())})
}

// HandleListTransactions serves GET /api/admin/transactions, newest first.
func (ac *AdminController) HandleListTransactions(c *fiber.Ctx) error {
	txs, err := ac.repos.Transaction.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"transactions": txs})
}

// HandleConfirmTransaction serves POST /api/admin/transactions/:id/confirm.
func (ac *AdminController) HandleConfirmTransaction(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return respondError(c, apperror.Invalid("id", "is required"))
	}
	tx, user, err := ac.billing.ConfirmTransaction(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	ac.stats.Invalidate(c.UserContext())

	body := fiber.Map{"success": true, "transaction": tx}
	if user != nil {
		body["user"] = userResponse(user, ac.now())
	}
	return c.JSON(body)
}

// HandleDeleteTransaction serves DELETE /api/admin/transactions/:id.
func (ac *AdminController) HandleDeleteTransaction(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if err := ac.repos.Transaction.Delete(id); err != nil {
		return respondError(c, err)
	}
	ac.stats.Invalidate(c.UserContext())
	return c.JSON(fiber.Map{"success": true})
}

// HandleGetPaymentSettings serves GET /api/admin/settings/payment.
func (ac *AdminController) HandleGetPaymentSettings(c *fiber.Ctx) error {
	settings, err := payment.RawSettings(ac.repos.SiteConfig)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(settings)
}

// HandleUpdatePaymentSettings serves PUT /api/admin/settings/payment.
func (ac *AdminController) HandleUpdatePaymentSettings(c *fiber.Ctx) error {
	patch := map[string]any{}
	if err := parseBody(c, &patch); err != nil {
		return respondError(c, err)
	}
	merged, err := payment.UpdateSettings(ac.repos.SiteConfig, patch)
	if err != nil {
		return respondError(c, apperror.External("datastore", err))
	}
	log.Info("[Admin] payment settings updated")
	return c.JSON(fiber.Map{"success": true, "settings": merged})
}
