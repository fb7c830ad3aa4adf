package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/brewlogic/BrewLogic/internal/pkg/env"
	"github.com/brewlogic/BrewLogic/internal/pkg/middleware"
)

type ApiRouter struct {
	svc *Services
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New(limiter.Config{
		Max:        env.GetEnvInt("API_RATE_LIMIT", 120),
		Expiration: time.Minute,
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	h.registerPublicRoutes(api)
	h.registerMemberRoutes(api)
	h.registerAdminRoutes(api)

	api.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route " + c.Method() + " " + c.Path() + " not found on this server.",
		})
	})
}

func NewApiRouter(svc *Services) *ApiRouter {
	return &ApiRouter{svc: svc}
}

func (h ApiRouter) registerPublicRoutes(api fiber.Router) {
	ctl := h.svc.Controllers

	// accounts
	api.Post("/users", ctl.Auth.HandleRegister)
	api.Post("/member-login", ctl.Auth.HandleMemberLogin)
	api.Post("/member-logout", ctl.Auth.HandleLogout)
	api.Post("/auth/forgot-password", ctl.Auth.HandleForgotPassword)
	api.Post("/auth/verify-otp", ctl.Auth.HandleVerifyOTP)
	api.Post("/auth/reset-password", ctl.Auth.HandleResetPassword)
	// Registered before the admin group so its guard does not run for them.
	api.Post("/admin/login", ctl.Auth.HandleAdminLogin)
	api.Post("/admin/logout", ctl.Auth.HandleLogout)

	// brewing catalog
	api.Get("/brew/options", ctl.Recipe.HandleOptions)
	api.Get("/grinders", ctl.Catalog.HandleListGrinders)
	api.Get("/drippers", ctl.Catalog.HandleListDrippers)

	// shop
	api.Get("/products", ctl.Shop.HandleListProducts)
	api.Post("/vouchers/redeem", ctl.Shop.HandleRedeemVoucher)
	api.Get("/payment-info", ctl.Shop.HandlePaymentInfo)
	api.Get("/content", ctl.Content.HandleGetContent)
	api.Get("/content/:section", ctl.Content.HandleGetSection)

	// payments
	api.Post("/checkout", ctl.Checkout.HandleCheckout)
	api.Post("/create-transaction", ctl.Checkout.HandleCreateTransaction)
	api.Post("/transaction-success", ctl.Checkout.HandleTransactionSuccess)
	api.Post("/webhooks/notification", ctl.Webhook.HandleNotification)
}

func (h ApiRouter) registerMemberRoutes(api fiber.Router) {
	ctl := h.svc.Controllers

	api.Get("/me", middleware.RequireLogin, ctl.Auth.HandleMe)
	api.Post("/recipes/generate", middleware.RequireMember, ctl.Recipe.HandleGenerate)
}

func (h ApiRouter) registerAdminRoutes(api fiber.Router) {
	ctl := h.svc.Controllers
	admin := api.Group("/admin", middleware.RequireAdmin)

	admin.Get("/dashboard", ctl.Admin.HandleDashboard)

	// users
	admin.Get("/users", ctl.Admin.HandleListUsers)
	admin.Post("/users", ctl.Admin.HandleCreateUser)
	admin.Put("/users/:id", ctl.Admin.HandleUpdateUser)
	admin.Delete("/users/:id", ctl.Admin.HandleDeleteUser)
	admin.Post("/users/:id/verify", ctl.Admin.HandleVerifyUser)

	// transactions
	admin.Get("/transactions", ctl.Admin.HandleListTransactions)
	admin.Post("/transactions/:id/confirm", ctl.Admin.HandleConfirmTransaction)
	admin.Delete("/transactions/:id", ctl.Admin.HandleDeleteTransaction)

	// products and vouchers
	admin.Post("/products", ctl.Shop.HandleSaveProduct)
	admin.Delete("/products/:id", ctl.Shop.HandleDeleteProduct)
	admin.Post("/products/:id/move/:direction", ctl.Shop.HandleMoveProduct)
	admin.Get("/vouchers", ctl.Shop.HandleListVouchers)
	admin.Post("/vouchers", ctl.Shop.HandleCreateVoucher)
	admin.Delete("/vouchers/:id", ctl.Shop.HandleDeleteVoucher)

	// manual payment details
	admin.Get("/bank-accounts", ctl.Shop.HandleListBankAccounts)
	admin.Post("/bank-accounts", ctl.Shop.HandleCreateBankAccount)
	admin.Delete("/bank-accounts/:id", ctl.Shop.HandleDeleteBankAccount)
	admin.Post("/qris", ctl.Shop.HandleUploadQRIS)

	// hardware listing
	admin.Post("/grinders", ctl.Catalog.HandleCreateGrinder)
	admin.Delete("/grinders/:id", ctl.Catalog.HandleDeleteGrinder)
	admin.Post("/drippers", ctl.Catalog.HandleCreateDripper)
	admin.Delete("/drippers/:id", ctl.Catalog.HandleDeleteDripper)

	// settings and content
	admin.Get("/settings/payment", ctl.Admin.HandleGetPaymentSettings)
	admin.Put("/settings/payment", ctl.Admin.HandleUpdatePaymentSettings)
	admin.Put("/content/:section", ctl.Content.HandleUpdateSection)
}
