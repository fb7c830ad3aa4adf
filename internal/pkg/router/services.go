package router

import (
	"context"

	"github.com/gofiber/fiber/v2/log"

	"github.com/brewlogic/BrewLogic/app/controllers"
	"github.com/brewlogic/BrewLogic/app/repository"
	"github.com/brewlogic/BrewLogic/internal/pkg/account"
	"github.com/brewlogic/BrewLogic/internal/pkg/billing"
	"github.com/brewlogic/BrewLogic/internal/pkg/brewing"
	"github.com/brewlogic/BrewLogic/internal/pkg/cache"
	"github.com/brewlogic/BrewLogic/internal/pkg/checkout"
	"github.com/brewlogic/BrewLogic/internal/pkg/database"
	"github.com/brewlogic/BrewLogic/internal/pkg/mail"
	"github.com/brewlogic/BrewLogic/internal/pkg/metrics/counter"
	"github.com/brewlogic/BrewLogic/internal/pkg/objectstore"
	"github.com/brewlogic/BrewLogic/internal/pkg/payment"
	"github.com/brewlogic/BrewLogic/internal/pkg/recipe"
	"github.com/brewlogic/BrewLogic/internal/pkg/sitecontent"
	"github.com/brewlogic/BrewLogic/internal/pkg/statistics"
)

// Controllers holds every HTTP handler set.
type Controllers struct {
	Auth     *controllers.AuthController
	Recipe   *controllers.RecipeController
	Catalog  *controllers.CatalogController
	Shop     *controllers.ShopController
	Checkout *controllers.CheckoutController
	Webhook  *controllers.WebhookController
	Admin    *controllers.AdminController
	Content  *controllers.ContentController
}

// Services is the application graph built from the shared database and
// cache connections.
type Services struct {
	Repos       *repository.Repositories
	Controllers Controllers
}

// NewServices wires repositories, domain services and controllers. Missing
// optional integrations (email, object storage, AI key) are logged and
// replaced by stand-ins that fail per request.
func NewServices() *Services {
	repository.InitializeFactory(database.GetDB())
	repos := repository.GetGlobalRepositories()
	store := cache.NewStore(cache.GetClient())

	var sender mail.Sender = mail.Disabled{}
	if cfg, err := mail.LoadConfig(); err != nil {
		log.Warnf("[Router] email disabled: %v", err)
	} else {
		sender = mail.NewEmailJS(cfg)
	}

	var uploads checkout.Uploader
	bucket := ""
	if cfg, err := objectstore.LoadConfig(); err != nil {
		log.Warnf("[Router] object storage disabled: %v", err)
		uploads = objectstore.Unavailable{Err: err}
	} else if client, err := objectstore.NewClient(context.Background(), cfg); err != nil {
		log.Errorf("[Router] object storage unavailable: %v", err)
		uploads = objectstore.Unavailable{Err: err}
	} else {
		uploads = client
		bucket = client.DefaultBucket()
	}

	aiCfg := recipe.LoadConfig()
	if !aiCfg.IsConfigured() {
		log.Warn("[Router] GEMINI_API_KEY missing, recipe generation will fail")
	}
	locales, err := recipe.LoadLocales()
	if err != nil {
		log.Fatalf("[Router] recipe locales: %v", err)
	}
	generator := recipe.NewGenerator(recipe.NewGeminiClient(aiCfg), locales, aiCfg.DefaultLocale)

	accounts := account.NewService(repos.User, store, sender)
	payments := payment.NewService(repos.Transaction, repos.SiteConfig)
	bill := billing.NewServiceFromDB(database.GetDB()).WithNotifier(mail.PlanNotifier{Sender: sender})
	usage := counter.New(cache.GetClient())
	stats := statistics.NewService(repos.User, repos.Transaction, store).WithUsage(usage)
	orchestrator := checkout.NewOrchestrator(checkout.Deps{
		Accounts: accounts,
		Proofs:   uploads,
		Payments: payments,
		Products: repos.Product,
		Vouchers: repos.Voucher,
		Bucket:   bucket,
	})

	return &Services{
		Repos: repos,
		Controllers: Controllers{
			Auth:     controllers.NewAuthController(accounts),
			Recipe:   controllers.NewRecipeController(brewing.DefaultCatalog(), generator, aiCfg.Timeout).WithUsage(usage),
			Catalog:  controllers.NewCatalogController(repos),
			Shop:     controllers.NewShopController(repos, orchestrator, uploads, bucket),
			Checkout: controllers.NewCheckoutController(orchestrator, payments, bill, store).WithWebhookSecrets(payments),
			Webhook:  controllers.NewWebhookController(bill, payments),
			Admin:    controllers.NewAdminController(repos, accounts, bill, stats),
			Content:  controllers.NewContentController(sitecontent.NewService(repos.SiteConfig)),
		},
	}
}
